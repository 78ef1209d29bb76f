package request

import "time"

// BalanceParams has no fields: a balance enquiry always targets the
// logged-in registrar account.
type BalanceParams struct{}

// BalanceResult is normalized regardless of which registry-specific
// dialect answered it (switch-balance, verisign-balance, unitedtld, or
// EURid-finance — spec.md §4.6 ordering/tie-break rule, §8 scenarios
// 3 and 4).
type BalanceResult struct {
	Balance          string
	Currency         string
	CreditLimit      string
	AvailableCredit  string
	CreditThreshold  *Percentage
}

// Percentage is a whole-number percent, e.g. the credit-threshold alert
// level in a Verisign balance response (spec.md §8 scenario 3).
type Percentage int

type MaintenanceListParams struct{}

type MaintenanceListResult struct {
	Items []MaintenanceSummary
}

type MaintenanceSummary struct {
	ID    string
	Start time.Time
	End   time.Time
}

type MaintenanceInfoParams struct {
	ID string
}

type MaintenanceInfoResult struct {
	ID          string
	Environment string
	Start       time.Time
	End         time.Time
	Systems     []string
	Detail      string
}

// NominetTagListParams/Result cover the ccTLD tag-list/accept/reject/
// release operations (spec.md §3).
type NominetTagListParams struct{}

type NominetTagListResult struct {
	Tags []string
}

type NominetTagAcceptParams struct {
	CaseID string
}

type NominetTagAcceptResult struct{}

type NominetTagRejectParams struct {
	CaseID string
	Reason string
}

type NominetTagRejectResult struct{}

type NominetTagReleaseParams struct {
	Domain string
	Tag    string
}

type NominetTagReleaseResult struct{}

// DACDomainQueryParams is the CSV-dialect availability query (spec.md
// §6). Environment is not read when the query is built or correlated:
// the session's profile (DACEnvironment) decides both.
type DACDomainQueryParams struct {
	Domain      string
	Environment string // "realtime" or "timedelay"
}

// DACDomainState mirrors the states the CSV grammar can report.
type DACDomainState string

const (
	DACRegistered DACDomainState = "registered"
	DACAvailable  DACDomainState = "available"
	DACExcluded   DACDomainState = "excluded"
	DACRequested  DACDomainState = "requested"
)

type DACDomainQueryResult struct {
	State     DACDomainState
	Detagged  bool
	Created   time.Time
	Expiry    time.Time
	Tag       string
	ClassCode int // time-delay dialect's 0|2|4|7 class
}

type DACUsageQueryParams struct{}

type DACUsageQueryResult struct {
	WindowSeconds int
	Used          int
	LimitWindowSeconds int
	Limit         int
}

// ISNICBulkVerifyParams covers the ISNIC bulk registrant-verification
// sub-block (original_source's proto/isnic.rs).
type ISNICBulkVerifyParams struct {
	ContactIDs []string
}

type ISNICBulkVerifyResult struct {
	Verified map[string]bool
}
