package router

import "time"

// EPP dates are RFC 3339 (RFC 5730 §4.3). The registry is free to send
// either a bare date or a full timestamp; both parse under this layout
// list, tried in order.
var eppDateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05Z0700", "2006-01-02"}

func parseEPPDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range eppDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func formatEPPDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
