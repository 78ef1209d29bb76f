package request

import "time"

type PollParams struct{}

// PollResult is either empty (queue empty) or carries one message.
type PollResult struct {
	Empty     bool
	MessageID string
	EnqueuedAt time.Time
	Message   string
	QueueDepth int
	Data      PollData
}

// PollData is a closed set of structured payloads a poll message may
// carry, one per extension kind the router recognizes (spec.md §4.6
// Poll). At most one field is populated.
type PollData struct {
	RGPStateChange     *RGPStateChangeNotice
	LowBalance         *LowBalanceNotice
	NominetChange      *NominetPollNotice
	EURidEvent         *EURidPollNotice
	Maintenance        *MaintenanceNotice
	PersonalRegConsent *PersonalRegConsentNotice
}

type RGPStateChangeNotice struct {
	Domain string
	State  string
}

type LowBalanceNotice struct {
	RegistrarCredit string
	Threshold       string
	AvailableCredit string
}

// NominetPollNotice covers any Nominet notification (spec.md §4.6); the
// router does not map the notification type onto a fixed vocabulary.
type NominetPollNotice struct {
	Kind   string // local name of the notification's root element, as sent
	Domain string
	Detail string
}

type EURidPollNotice struct {
	Kind   string
	Domain string
	Detail string
}

type MaintenanceNotice struct {
	ID          string
	Environment string
	Start       time.Time
	End         time.Time
	Detail      string
}

type PersonalRegConsentNotice struct {
	ContactID string
	Granted   bool
}

type PollAckParams struct {
	MessageID string
}

type PollAckResult struct {
	QueueDepth int
	NextID     string
}
