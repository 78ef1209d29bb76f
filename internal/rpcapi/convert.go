package rpcapi

import (
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"
)

// toPBTime converts a neutral-domain time.Time (internal/request uses
// time.Time throughout) into the wire Timestamp message, collapsing the
// zero value to nil so an unset field is sent as null rather than as
// 0001-01-01.
func toPBTime(t time.Time) *timestamppb.Timestamp {
	if t.IsZero() {
		return nil
	}
	return timestamppb.New(t)
}

// toGoTime is the inverse of toPBTime.
func toGoTime(ts *timestamppb.Timestamp) time.Time {
	if ts == nil {
		return time.Time{}
	}
	return ts.AsTime()
}
