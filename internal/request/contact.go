package request

import "time"

type PostalInfo struct {
	Type    string // "int" or "loc"
	Name    string
	Org     string
	Street  []string
	City    string
	Province string
	PostalCode string
	CountryCode string
}

type ContactCheckParams struct {
	IDs []string
}

type ContactCheckResult struct {
	Contacts []ContactAvailability
}

type ContactAvailability struct {
	ID        string
	Available bool
	Reason    string
}

type ContactInfoParams struct {
	ID       string
	AuthInfo string
}

type ContactInfoResult struct {
	ID          string
	ROID        string
	Status      []string
	Postal      []PostalInfo
	Voice       string
	Fax         string
	Email       string
	ClID        string
	CrID        string
	CrDate      time.Time
	UpID        string
	UpDate      time.Time
	TrDate      time.Time
	AuthInfo    string
	Disclose    map[string]bool
	QualifiedLawyer *QualifiedLawyerInfo
}

// QualifiedLawyerInfo is the per-jurisdiction attorney-registration
// sub-block recognized for the qualified-lawyer erratum.
type QualifiedLawyerInfo struct {
	BarNumber string
	Jurisdiction string
}

type ContactCreateParams struct {
	ID       string
	Postal   []PostalInfo
	Voice    string
	Fax      string
	Email    string
	AuthInfo string
	Disclose map[string]bool
	Personal bool
	QualifiedLawyer *QualifiedLawyerInfo
}

type ContactCreateResult struct {
	ID     string
	CrDate time.Time
}

type ContactUpdateParams struct {
	ID     string
	Add    []string // status
	Remove []string // status
	Change *ContactUpdateChange
}

type ContactUpdateChange struct {
	Postal   []PostalInfo
	Voice    string
	Fax      string
	Email    string
	AuthInfo string
	Disclose map[string]bool
}

func (p *ContactUpdateParams) HasChanges() bool {
	return len(p.Add) > 0 || len(p.Remove) > 0 || p.Change != nil
}

type ContactUpdateResult struct{}

type ContactDeleteParams struct {
	ID string
}

type ContactDeleteResult struct{}

type ContactTransferParams struct {
	ID       string
	AuthInfo string
}

type ContactTransferResult struct {
	Status      string
	RequestedBy string
	RequestedAt time.Time
	ActionBy    string
	ActionAt    time.Time
}
