package request

import "time"

// Mark and trex request kinds are supplemented from
// original_source/src/client/tmch_client/{router,trex}.rs and
// src/proto/tmch/{trex,variation,brand_pulse}.rs, named but not detailed
// in the distilled spec's "trademark-mark" object and "TMCH sub-queries".

type MarkCheckParams struct {
	SMDIDs []string
}

type MarkCheckResult struct {
	Marks []MarkAvailability
}

type MarkAvailability struct {
	SMDID     string
	Available bool
	Reason    string
}

type MarkInfoParams struct {
	SMDID string
}

type MarkInfoResult struct {
	SMDID      string
	Status     []string
	MarkName   string
	Labels     []string
	CrDate     time.Time
	ExDate     time.Time
	Variations []MarkVariation
	BrandPulse *BrandPulseInfo
}

// MarkVariation is the TMCH variation sub-block (proto/tmch/variation.rs).
type MarkVariation struct {
	Label string
	Active bool
}

// BrandPulseInfo is the TMCH brand-pulse sub-block
// (proto/tmch/brand_pulse.rs): opt-in abuse/usage notifications for a
// registered mark.
type BrandPulseInfo struct {
	Enrolled bool
	ReportURL string
}

type MarkCreateParams struct {
	SMDID    string
	MarkName string
	Labels   []string
	Period   int
}

type MarkCreateResult struct {
	SMDID  string
	CrDate time.Time
	ExDate time.Time
}

type MarkRenewParams struct {
	SMDID  string
	Period int
}

type MarkRenewResult struct {
	ExDate time.Time
}

type MarkUpdateParams struct {
	SMDID  string
	Labels []string
}

func (p *MarkUpdateParams) HasChanges() bool { return len(p.Labels) > 0 }

type MarkUpdateResult struct{}

type MarkTransferParams struct {
	SMDID string
}

type MarkTransferResult struct {
	Status string
}

// TrexActivateParams activates a TM Registration Expansion (Trex) grant
// for a mark (proto/tmch/trex.rs).
type TrexActivateParams struct {
	SMDID string
	TLD   string
}

type TrexActivateResult struct {
	ExDate time.Time
}

type TrexRenewParams struct {
	SMDID string
	TLD   string
}

type TrexRenewResult struct {
	ExDate time.Time
}
