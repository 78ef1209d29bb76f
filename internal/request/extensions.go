package request

import "time"

// FeeCheck is the fee-extension portion of a domain check request: the
// caller supplies a command/period/currency and gets a quote back. The
// router picks the wire version (spec.md §4.6); callers never see one.
type FeeCheck struct {
	Command  string
	Period   int
	Currency string
}

// FeeQuote is the fee-extension portion of a response, merged from
// whichever version the registry actually used (spec.md §4.6 response
// decoding, §8 invariant: "a response parsed in version V is decoded
// without loss").
type FeeQuote struct {
	Currency string
	Amount   string
	Class    string
	Credit   bool
}

// FeeAgreement is attached to create/renew/transfer/update requests
// when the caller wants to assert the fee they expect to be charged.
type FeeAgreement struct {
	Currency string
	Amount   string
}

// SecDNSData is the DS-data or key-data form of a domain's DNSSEC
// delegation, as returned in info responses.
type SecDNSData struct {
	MaxSigLife int
	DSData     []DSDatum
	KeyData    []KeyDatum
}

type DSDatum struct {
	KeyTag     int
	Algorithm  int
	DigestType int
	Digest     string
}

type KeyDatum struct {
	Flags     int
	Protocol  int
	Algorithm int
	PublicKey string
}

// SecDNSUpdate carries add/remove sets for a domain update, in whichever
// of DS-data or key-data form the profile/operation requires.
type SecDNSUpdate struct {
	AddDS     []DSDatum
	AddKey    []KeyDatum
	RemoveDS  []DSDatum
	RemoveKey []KeyDatum
	RemoveAll bool
	MaxSigLife int
}

// LaunchCreate is the launch-phase block attached to a domain create
// during sunrise/landrush/claims/custom phases.
type LaunchCreate struct {
	Phase      string // "sunrise", "landrush", "claims", "open", "custom"
	SubPhase   string
	SignedMarks []string
	Codes       []string
	Notices     []LaunchNotice
}

type LaunchNotice struct {
	NoticeID    string
	ValidatorID string
	NotAfter    time.Time
	AcceptedAt  time.Time
}

// LaunchInfo is the launch-phase block returned on domain info.
type LaunchInfo struct {
	Phase       string
	Status      string
	ApplicationID string
}

// RGPState is the set of RGP lifecycle states a domain occupies,
// returned on domain info.
type RGPState struct {
	Status []string
}
