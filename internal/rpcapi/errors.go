package rpcapi

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/as207960/eppproxy/internal/epperr"
	"github.com/as207960/eppproxy/internal/rpcapi/pb"
)

// toErrorDetail converts the core's six-kind error taxonomy into the
// wire ErrorDetail message, preserving the kind string so a caller can
// branch without depending on the grpc status code mapping below.
func toErrorDetail(err *epperr.Error) *pb.ErrorDetail {
	if err == nil {
		return nil
	}
	return &pb.ErrorDetail{
		Kind:          err.Kind().String(),
		Message:       err.Error(),
		CorrelationID: err.CorrelationID,
		Retriable:     err.Retriable(),
	}
}

// toStatus maps an epperr.Error onto the nearest grpc/codes.Code so
// generic gRPC clients (load balancers, retry middleware) that never
// look past the status still behave sensibly; pb.ErrorDetail remains
// the source of truth for anything that does.
func toStatus(err *epperr.Error) error {
	if err == nil {
		return nil
	}
	var c codes.Code
	switch err.Kind() {
	case epperr.KindInput:
		c = codes.InvalidArgument
	case epperr.KindUnsupported:
		c = codes.Unimplemented
	case epperr.KindNotReady:
		c = codes.Unavailable
	case epperr.KindTimeout:
		c = codes.DeadlineExceeded
	case epperr.KindRegistry:
		c = codes.FailedPrecondition
	case epperr.KindServerInternal:
		c = codes.Internal
	default:
		c = codes.Unknown
	}
	return status.Error(c, err.Error())
}
