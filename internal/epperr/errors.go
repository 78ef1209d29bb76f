// Package epperr defines the six error kinds callers of the proxy can act
// on. Every error the core surfaces across the facade boundary is one of
// these; nothing else escapes §7 of the design.
package epperr

import "fmt"

// Kind discriminates the error classes a caller needs to distinguish in
// order to decide whether, and how, to retry.
type Kind int

const (
	// KindInput means the router rejected the request locally before it
	// ever reached the wire. Terminal.
	KindInput Kind = iota
	// KindUnsupported means this registry cannot perform the operation.
	// Terminal.
	KindUnsupported
	// KindNotReady means the session was not in the Ready state.
	// Retriable after a delay.
	KindNotReady
	// KindTimeout means the per-command deadline expired. Retriable, but
	// the caller must assume the command may still have been applied.
	KindTimeout
	// KindRegistry means the registry returned a non-success result
	// code; Message carries the human text verbatim.
	KindRegistry
	// KindServerInternal means decoding failed, the payload shape was
	// unexpected, or the registry returned a 2500-range code.
	KindServerInternal
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindUnsupported:
		return "unsupported"
	case KindNotReady:
		return "not_ready"
	case KindTimeout:
		return "timeout"
	case KindRegistry:
		return "registry"
	case KindServerInternal:
		return "server_internal"
	default:
		return "unknown"
	}
}

// Error is the concrete type every package in this module returns for a
// caller-facing failure. It never wraps a Go stdlib error directly so that
// a type switch at the facade boundary is sufficient to pick a gRPC code.
type Error struct {
	kind    Kind
	message string
	// CorrelationID is set by Timeout and ServerInternal so the failure
	// can be tied back to a logged frame pair.
	CorrelationID string
}

func (e *Error) Error() string {
	if e.CorrelationID != "" {
		return fmt.Sprintf("%s: %s (trid=%s)", e.kind, e.message, e.CorrelationID)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.message)
}

// Kind reports the error's class.
func (e *Error) Kind() Kind { return e.kind }

// Retriable reports whether a caller may resubmit the request as-is.
func (e *Error) Retriable() bool {
	switch e.kind {
	case KindNotReady, KindTimeout:
		return true
	default:
		return false
	}
}

func newf(k Kind, format string, args ...interface{}) *Error {
	return &Error{kind: k, message: fmt.Sprintf(format, args...)}
}

// Input builds an InputError.
func Input(format string, args ...interface{}) *Error { return newf(KindInput, format, args...) }

// Unsupported builds an Unsupported error.
func Unsupported(format string, args ...interface{}) *Error {
	return newf(KindUnsupported, format, args...)
}

// NotReady builds a NotReady error.
func NotReady(state string) *Error {
	return newf(KindNotReady, "session is not ready (state=%s)", state)
}

// Timeout builds a Timeout error.
func Timeout(trid string) *Error {
	e := newf(KindTimeout, "command %s timed out", trid)
	e.CorrelationID = trid
	return e
}

// Registry builds a RegistryError carrying the registry's own message.
func Registry(msg string) *Error { return newf(KindRegistry, "%s", msg) }

// ServerInternal builds a ServerInternal error, optionally tagged with the
// correlation id of the offending exchange for log cross-referencing.
func ServerInternal(trid string, format string, args ...interface{}) *Error {
	e := newf(KindServerInternal, format, args...)
	e.CorrelationID = trid
	return e
}

// Is reports whether err is an *Error of kind k. It is the idiomatic way
// for callers to branch without a direct type assertion.
func Is(err error, k Kind) bool {
	e, ok := err.(*Error)
	return ok && e.kind == k
}
