package request

import "time"

// DomainCheckParams requests availability for one or more domain names.
type DomainCheckParams struct {
	Names []string
	Fee   *FeeCheck // optional, per-name fee estimate request
}

// DomainCheckResult reports, for each requested name, availability and
// an optional reason and fee quote.
type DomainCheckResult struct {
	Domains []DomainAvailability
}

type DomainAvailability struct {
	Name      string
	Available bool
	Reason    string
	Fee       *FeeQuote
}

// DomainInfoParams requests the full registered state of one domain.
type DomainInfoParams struct {
	Name       string
	AuthInfo   string
	HostsForm  string // "all", "delegated", "subordinate", "none"
}

type DomainInfoResult struct {
	Name         string
	ROID         string
	Status       []string
	Registrant   string
	Contacts     []DomainContact
	Nameservers  []string
	Hosts        []string
	ClID         string
	CrID         string
	CrDate       time.Time
	UpID         string
	UpDate       time.Time
	ExDate       time.Time
	TrDate       time.Time
	AuthInfo     string
	SecDNS       *SecDNSData
	RGP          *RGPState
	Launch       *LaunchInfo
	NameStore    string
}

type DomainContact struct {
	Type string // "admin", "tech", "billing"
	ID   string
}

// DomainCreateParams creates a domain registration.
type DomainCreateParams struct {
	Name        string
	Period      int // years
	Nameservers []string
	Registrant  string
	Contacts    []DomainContact
	AuthInfo    string
	SecDNS      *SecDNSData
	Launch      *LaunchCreate
	Fee         *FeeAgreement
}

type DomainCreateResult struct {
	Name   string
	CrDate time.Time
	ExDate time.Time
	Fee    *FeeQuote
}

// DomainUpdateParams mutates an existing domain. At least one of Add,
// Remove, Change, or SecDNS must be populated (see HasChanges; spec.md
// §8 boundary behavior).
type DomainUpdateParams struct {
	Name      string
	Add       *DomainUpdateSet
	Remove    *DomainUpdateSet
	Change    *DomainUpdateChange
	SecDNS    *SecDNSUpdate
	RGPRestore bool
	Fee       *FeeAgreement
}

type DomainUpdateSet struct {
	Nameservers []string
	Contacts    []DomainContact
	Status      []string
}

type DomainUpdateChange struct {
	Registrant string
	AuthInfo   string
}

func (p *DomainUpdateParams) HasChanges() bool {
	return p.Add != nil || p.Remove != nil || p.Change != nil || p.SecDNS != nil
}

type DomainUpdateResult struct {
	Fee *FeeQuote
}

// DomainDeleteParams deletes (or, with CancelTraficom, requests
// cancellation of a pending delete per the Traficom erratum) a domain.
type DomainDeleteParams struct {
	Name            string
	CancelTraficom  bool
}

type DomainDeleteResult struct{}

type DomainRenewParams struct {
	Name          string
	CurrentExpiry time.Time
	Period        int
	Fee           *FeeAgreement
}

type DomainRenewResult struct {
	ExDate time.Time
	Fee    *FeeQuote
}

// DomainTransferParams covers query/request/approve/reject/cancel, all
// sharing one payload shape per RFC 5731 §3.2.
type DomainTransferParams struct {
	Name     string
	AuthInfo string
	Period   int // only meaningful for Request
	Fee      *FeeAgreement
}

type DomainTransferResult struct {
	Status       string
	RequestedBy  string
	RequestedAt  time.Time
	ActionBy     string
	ActionAt     time.Time
	ExDate       time.Time
}

// DomainRestoreRequestParams invokes the RGP restore request command
// (domain update with <rgp:restore op="request">).
type DomainRestoreRequestParams struct {
	Name string
}

type DomainRestoreRequestResult struct{}

// DomainRestoreReportParams supplies the post-restore RGP report.
type DomainRestoreReportParams struct {
	Name          string
	PreData       string
	PostData      string
	DeleteTime    time.Time
	RestoreTime   time.Time
	RestoreReason string
	Statements    []string
	Other         string
}

type DomainRestoreReportResult struct{}
