// Package router implements C6: converting a neutral request into a
// registry-specific wire command (applying exactly the extensions the
// session's FeatureSet supports) and reconstructing a neutral response
// from whatever the registry returned (spec.md §4.6). One file per
// object type holds that type's encode/decode pair; this file holds
// the dispatch table and the shared result-code-to-error mapping.
package router

import (
	"fmt"

	"github.com/as207960/eppproxy/internal/codec/csvline"
	"github.com/as207960/eppproxy/internal/codec/eppxml"
	"github.com/as207960/eppproxy/internal/config"
	"github.com/as207960/eppproxy/internal/epperr"
	"github.com/as207960/eppproxy/internal/features"
	"github.com/as207960/eppproxy/internal/request"
)

// builder produces a command body (without the <epp>/<command>/<clTRID>
// envelope — EncodeCommand adds that) plus any extension fragments.
type builder func(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) (body []byte, extensions [][]byte, err error)

// decoder reconstructs a neutral result from a decoded response.
type decoder func(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error)

var builders = map[request.Kind]builder{}
var decoders = map[request.Kind]decoder{}

func register(kind request.Kind, b builder, d decoder) {
	builders[kind] = b
	decoders[kind] = d
}

// Build dispatches to the registered builder for kind and wraps the
// result in the full wire envelope with a fresh client transaction id.
func Build(kind request.Kind, params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile, clTRID string) ([]byte, error) {
	b, ok := builders[kind]
	if !ok {
		return nil, epperr.Unsupported("operation %s is not implemented for dialect %s", kind, profile.Dialect)
	}
	body, extensions, err := b(params, feats, profile)
	if err != nil {
		return nil, err
	}
	return eppxml.EncodeCommand(body, extensions, clTRID)
}

// Decode dispatches to the registered decoder for kind and wraps the
// result as a neutral Response.
func Decode(kind request.Kind, resp *eppxml.Response, feats *features.FeatureSet) (request.Response, error) {
	out := request.Response{
		ServerTRID: resp.ServerTRID,
		Pending:    resp.Pending(),
	}
	if len(resp.Results) > 0 {
		out.ExtraValues = resp.Results[0].Values
	}
	if !resp.Success() {
		return request.Response{}, resultError(resp)
	}
	d, ok := decoders[kind]
	if !ok || d == nil {
		// The command succeeded but we have no typed decoder for it
		// (operations whose result carries no resData, e.g. logout-
		// shaped commands): return the envelope-level fields only.
		return out, nil
	}
	result, err := d(resp, feats)
	if err != nil {
		return request.Response{}, err
	}
	out.Result = result
	return out, nil
}

// DecodeUnsolicited builds a poll-path Response for a message the
// correlator could not match to any pending request (spec.md §4.5).
func DecodeUnsolicited(resp *eppxml.Response, feats *features.FeatureSet) request.Response {
	out := request.Response{ServerTRID: resp.ServerTRID, Pending: resp.Pending()}
	result, err := decodePollMessage(resp, feats)
	if err != nil {
		out.Err = epperr.Registry(fmt.Sprintf("unsolicited message decode failed: %v", err))
		return out
	}
	out.Result = result
	return out
}

// resultError maps a non-success <result> to the closed error taxonomy
// (spec.md §7): 2xxx is a RegistryError, 2500-2599 is ServerInternal on
// the remote side, anything else falls back to RegistryError.
func resultError(resp *eppxml.Response) error {
	if len(resp.Results) == 0 {
		return epperr.Registry("response carried no result code")
	}
	r := resp.Results[0]
	switch {
	case r.Code >= 2500 && r.Code < 2600:
		return epperr.ServerInternal(resp.ClientTRID, "registry server error %d: %s", r.Code, r.Message)
	case r.Code >= 2000 && r.Code < 2600:
		return &registryError{code: r.Code, message: r.Message}
	default:
		return epperr.Registry(fmt.Sprintf("unexpected result code %d: %s", r.Code, r.Message))
	}
}

// registryError carries the original EPP result code through to the
// caller via epperr.Registry's message while letting the router attach
// richer context than a bare string would.
type registryError struct {
	code    int
	message string
}

func (e *registryError) Error() string {
	return fmt.Sprintf("registry error %d: %s", e.code, e.message)
}

// ToEppErr normalizes any error returned by this package into the
// six-kind taxonomy for delivery to the caller.
func ToEppErr(err error, clTRID string) *epperr.Error {
	if err == nil {
		return nil
	}
	if ee, ok := err.(*epperr.Error); ok {
		return ee
	}
	if re, ok := err.(*registryError); ok {
		return epperr.Registry(fmt.Sprintf("%d: %s", re.code, re.message))
	}
	return epperr.ServerInternal(clTRID, "%v", err)
}

// BuildDACQuery builds the outbound CSV line for a DAC-dialect request.
func BuildDACQuery(kind request.Kind, params interface{}) (string, error) {
	switch kind {
	case request.KindDACDomainQuery:
		p, ok := params.(*request.DACDomainQueryParams)
		if !ok {
			return "", epperr.Input("DAC domain query requires DACDomainQueryParams")
		}
		return csvline.EncodeDomainQuery(p.Domain), nil
	case request.KindDACUsageQuery:
		return csvline.EncodeUsageQuery(), nil
	default:
		return "", epperr.Unsupported("operation %s is not available over the DAC dialect", kind)
	}
}

// DecodeDAC reconstructs a neutral Response from a decoded CSV line.
func DecodeDAC(kind request.Kind, line *csvline.Line) (request.Response, error) {
	switch line.Kind {
	case csvline.KindInvalid:
		return request.Response{}, epperr.Registry("DAC server reported invalid query syntax")
	case csvline.KindDomainRealtime, csvline.KindDomainTimeDelay:
		return request.Response{Result: decodeDACDomain(line)}, nil
	case csvline.KindUsage, csvline.KindLimits:
		return request.Response{Result: decodeDACUsage(line)}, nil
	case csvline.KindAcceptableUseBlock:
		return request.Response{}, epperr.Registry(fmt.Sprintf("query blocked for %d seconds", line.BlockSeconds))
	default:
		return request.Response{}, epperr.ServerInternal("", "unrecognized DAC line kind %d", line.Kind)
	}
}

func decodeDACDomain(line *csvline.Line) *request.DACDomainQueryResult {
	state := request.DACAvailable
	switch line.State {
	case "Y":
		state = request.DACRegistered
	case "N":
		state = request.DACAvailable
	case "E":
		state = request.DACExcluded
	case "R":
		state = request.DACRequested
	}
	return &request.DACDomainQueryResult{
		State:     state,
		Detagged:  line.Detagged == "Y",
		Created:   line.Created,
		Expiry:    line.Expiry,
		Tag:       line.Tag,
		ClassCode: line.ClassCode,
	}
}

func decodeDACUsage(line *csvline.Line) *request.DACUsageQueryResult {
	return &request.DACUsageQueryResult{
		WindowSeconds:      line.WindowSeconds,
		Used:               line.Used,
		LimitWindowSeconds: line.LimitWindowSeconds,
		Limit:              line.Limit,
	}
}
