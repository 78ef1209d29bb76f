// Package request defines the neutral request/response surface the
// router (internal/router) and session engine (internal/session) speak
// between themselves and the facade (internal/facade). A Request is one
// of a closed set of kinds (spec.md §3); each carries a single-shot
// reply channel so the facade is fully fan-in (spec.md §4.7).
package request

import "github.com/as207960/eppproxy/internal/epperr"

// Kind is the closed tagged union of neutral operations. The router
// keeps one builder/decoder pair per Kind (DESIGN NOTES §9) in a table of
// function pairs indexed by this tag, without virtual dispatch. The
// table is filled at init time, so a Kind with no entry is not caught by
// the compiler; the router reports it as Unsupported at run time.
type Kind int

const (
	KindPoll Kind = iota
	KindPollAck

	KindDomainCheck
	KindDomainInfo
	KindDomainCreate
	KindDomainUpdate
	KindDomainDelete
	KindDomainRenew
	KindDomainTransferQuery
	KindDomainTransferRequest
	KindDomainTransferApprove
	KindDomainTransferReject
	KindDomainTransferCancel
	KindDomainRestoreRequest
	KindDomainRestoreReport

	KindHostCheck
	KindHostInfo
	KindHostCreate
	KindHostUpdate
	KindHostDelete

	KindContactCheck
	KindContactInfo
	KindContactCreate
	KindContactUpdate
	KindContactDelete
	KindContactTransferQuery
	KindContactTransferRequest
	KindContactTransferApprove
	KindContactTransferReject
	KindContactTransferCancel

	KindEmailForwardCheck
	KindEmailForwardInfo
	KindEmailForwardCreate
	KindEmailForwardUpdate
	KindEmailForwardDelete
	KindEmailForwardRenew

	KindMarkCheck
	KindMarkInfo
	KindMarkCreate
	KindMarkRenew
	KindMarkUpdate
	KindMarkTransfer
	KindTrexActivate
	KindTrexRenew

	KindNominetTagList
	KindNominetTagAccept
	KindNominetTagReject
	KindNominetTagRelease

	KindBalance
	KindMaintenanceList
	KindMaintenanceInfo

	KindDACDomainQuery
	KindDACUsageQuery

	KindISNICBulkVerify
)

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

var kindNames = map[Kind]string{
	KindPoll:                    "poll",
	KindPollAck:                 "poll-ack",
	KindDomainCheck:             "domain-check",
	KindDomainInfo:              "domain-info",
	KindDomainCreate:            "domain-create",
	KindDomainUpdate:            "domain-update",
	KindDomainDelete:            "domain-delete",
	KindDomainRenew:             "domain-renew",
	KindDomainTransferQuery:     "domain-transfer-query",
	KindDomainTransferRequest:   "domain-transfer-request",
	KindDomainTransferApprove:   "domain-transfer-approve",
	KindDomainTransferReject:    "domain-transfer-reject",
	KindDomainTransferCancel:    "domain-transfer-cancel",
	KindDomainRestoreRequest:    "domain-restore-request",
	KindDomainRestoreReport:     "domain-restore-report",
	KindHostCheck:               "host-check",
	KindHostInfo:                "host-info",
	KindHostCreate:              "host-create",
	KindHostUpdate:              "host-update",
	KindHostDelete:              "host-delete",
	KindContactCheck:            "contact-check",
	KindContactInfo:             "contact-info",
	KindContactCreate:           "contact-create",
	KindContactUpdate:           "contact-update",
	KindContactDelete:           "contact-delete",
	KindContactTransferQuery:    "contact-transfer-query",
	KindContactTransferRequest:  "contact-transfer-request",
	KindContactTransferApprove:  "contact-transfer-approve",
	KindContactTransferReject:   "contact-transfer-reject",
	KindContactTransferCancel:   "contact-transfer-cancel",
	KindEmailForwardCheck:       "email-forward-check",
	KindEmailForwardInfo:        "email-forward-info",
	KindEmailForwardCreate:      "email-forward-create",
	KindEmailForwardUpdate:      "email-forward-update",
	KindEmailForwardDelete:      "email-forward-delete",
	KindEmailForwardRenew:       "email-forward-renew",
	KindMarkCheck:               "mark-check",
	KindMarkInfo:                "mark-info",
	KindMarkCreate:              "mark-create",
	KindMarkRenew:               "mark-renew",
	KindMarkUpdate:              "mark-update",
	KindMarkTransfer:            "mark-transfer",
	KindTrexActivate:            "trex-activate",
	KindTrexRenew:               "trex-renew",
	KindNominetTagList:          "nominet-tag-list",
	KindNominetTagAccept:        "nominet-tag-accept",
	KindNominetTagReject:        "nominet-tag-reject",
	KindNominetTagRelease:       "nominet-tag-release",
	KindBalance:                 "balance",
	KindMaintenanceList:         "maintenance-list",
	KindMaintenanceInfo:         "maintenance-info",
	KindDACDomainQuery:          "dac-domain-query",
	KindDACUsageQuery:           "dac-usage-query",
	KindISNICBulkVerify:         "isnic-bulk-verify",
}

// Request is one neutral operation bound for a specific registry
// session. Params holds one of the Kind-specific structs in this
// package (domain.go, host.go, contact.go, ...). Reply is
// single-producer single-consumer and is written to exactly once
// (spec.md §3 Ownership, §8 invariant: exactly one outcome reaches the
// reply channel).
type Request struct {
	Kind      Kind
	Params    interface{}
	ClientTRID string
	Reply     chan Response
}

// NewRequest allocates a Request with a buffered, single-slot reply
// channel so the sender never blocks on delivery even if nobody is
// listening by the time the reply arrives.
func NewRequest(kind Kind, params interface{}) *Request {
	return &Request{
		Kind:   kind,
		Params: params,
		Reply:  make(chan Response, 1),
	}
}

// Response is the matching neutral result, or one of the six epperr
// kinds. Exactly one of Err or Result is meaningful.
type Response struct {
	Result        interface{}
	Err           *epperr.Error
	ClientTRID    string
	ServerTRID    string
	Pending       bool
	ExtraValues   []string
}

// Send delivers exactly one outcome to the reply channel, matching the
// single-producer contract. It never blocks: the channel is always
// buffered with capacity one.
func (r *Request) Send(resp Response) {
	resp.ClientTRID = r.ClientTRID
	r.Reply <- resp
}

// Fail is shorthand for Send with only an error populated.
func (r *Request) Fail(err *epperr.Error) {
	r.Send(Response{Err: err})
}
