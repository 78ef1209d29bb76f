// Package csvline implements C2's CSV-line dialect: the DAC
// availability feed. Unlike eppxml, there is no envelope — each line is
// a complete query or answer, discriminated by field count and the
// content of the second field (spec.md §4.2, §6).
package csvline

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind discriminates a decoded inbound line.
type Kind int

const (
	KindUnknown Kind = iota
	KindDomainRealtime
	KindDomainTimeDelay
	KindUsage
	KindLimits
	KindAcceptableUseBlock
	KindInvalid
)

const dateLayout = "2006-01-02"

// Line is the neutral decoding of one inbound CSV line. The leading
// field in every domain-state line echoes the query (spec.md §8
// scenario 5: "example.co.uk,Y,N,2015-01-02,2026-01-02,EXAMPLE-TAG").
type Line struct {
	Kind Kind

	Query string // domain or query string echoed in field 1

	// Domain fields.
	State        string // "Y"/"N" (real-time) or "Y"/"N"/"E"/"R" (time-delay)
	Detagged     string // "Y"/"N"
	Quarantined  string // "Y"/"N", time-delay's second flag only
	Created      time.Time
	Expiry       time.Time
	ClassCode    int // time-delay class: 0, 2, 4, or 7
	Tag          string

	// Usage/limits fields.
	WindowSeconds      int
	Used               int
	LimitWindowSeconds int
	Limit              int

	// Acceptable-use block fields.
	BlockSeconds int
}

// Decode classifies and parses one CRLF-stripped inbound line.
//
// Field-count grammar (spec.md §4.2, §6), fields 1-indexed:
//   - domain response, untagged real-time:  query,Y|N                              (2 fields)
//   - domain response, tagged real-time:     query,Y|N,Y|N,YYYY-MM-DD,YYYY-MM-DD,TAG (6 fields)
//   - domain response, time-delay:           query,Y|N|E|R,Y|N,Y|N,YYYY-MM-DD,YYYY-MM-DD,0|2|4|7,TAG (8 fields)
//   - usage/limits:                          #usage|#limits,C,60,<n>,86400,<n>      (6 fields, field 2 == "C")
//   - acceptable-use block:                  query,B,<seconds>                      (3 fields, field 2 == "B")
//   - invalid syntax:                        any line with "I" in field 2
func Decode(line string) (*Line, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 2 {
		return nil, fmt.Errorf("csvline: line has too few fields: %q", line)
	}
	switch {
	case fields[1] == "I":
		return &Line{Kind: KindInvalid, Query: fields[0]}, nil
	case len(fields) == 6 && fields[1] == "C":
		return decodeUsageOrLimits(fields)
	case len(fields) == 3 && fields[1] == "B":
		return decodeAcceptableUseBlock(fields)
	case len(fields) == 2 || len(fields) == 6:
		return decodeRealtime(fields)
	case len(fields) == 8:
		return decodeTimeDelay(fields)
	default:
		return nil, fmt.Errorf("csvline: unexpected field count %d in %q", len(fields), line)
	}
}

func decodeRealtime(fields []string) (*Line, error) {
	l := &Line{Kind: KindDomainRealtime, Query: fields[0], State: fields[1]}
	if len(fields) == 6 {
		created, err := time.Parse(dateLayout, fields[3])
		if err != nil {
			return nil, fmt.Errorf("csvline: created date: %w", err)
		}
		expiry, err := time.Parse(dateLayout, fields[4])
		if err != nil {
			return nil, fmt.Errorf("csvline: expiry date: %w", err)
		}
		l.Detagged = fields[2]
		l.Created = created
		l.Expiry = expiry
		l.Tag = fields[5]
	}
	return l, nil
}

func decodeTimeDelay(fields []string) (*Line, error) {
	created, err := time.Parse(dateLayout, fields[4])
	if err != nil {
		return nil, fmt.Errorf("csvline: created date: %w", err)
	}
	expiry, err := time.Parse(dateLayout, fields[5])
	if err != nil {
		return nil, fmt.Errorf("csvline: expiry date: %w", err)
	}
	class, err := strconv.Atoi(fields[6])
	if err != nil {
		return nil, fmt.Errorf("csvline: class code: %w", err)
	}
	return &Line{
		Kind:        KindDomainTimeDelay,
		Query:       fields[0],
		State:       fields[1],
		Detagged:    fields[2],
		Quarantined: fields[3],
		Created:     created,
		Expiry:      expiry,
		ClassCode:   class,
		Tag:         fields[7],
	}, nil
}

func decodeUsageOrLimits(fields []string) (*Line, error) {
	window, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("csvline: window seconds: %w", err)
	}
	used, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, fmt.Errorf("csvline: used count: %w", err)
	}
	limitWindow, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, fmt.Errorf("csvline: limit window seconds: %w", err)
	}
	limit, err := strconv.Atoi(fields[5])
	if err != nil {
		return nil, fmt.Errorf("csvline: limit: %w", err)
	}
	kind := KindUsage
	if fields[0] == "#limits" {
		kind = KindLimits
	}
	return &Line{
		Kind:               kind,
		Query:              fields[0],
		WindowSeconds:      window,
		Used:               used,
		LimitWindowSeconds: limitWindow,
		Limit:              limit,
	}, nil
}

func decodeAcceptableUseBlock(fields []string) (*Line, error) {
	seconds, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("csvline: block seconds: %w", err)
	}
	return &Line{Kind: KindAcceptableUseBlock, Query: fields[0], BlockSeconds: seconds}, nil
}

// EncodeDomainQuery builds the outbound query line: the bare domain
// name. There is no Nominet-specific variant: Decode has no grammar for
// a "D" discriminator and parses Nominet answers like any other.
func EncodeDomainQuery(domain string) string {
	return domain
}

// EncodeUsageQuery builds the outbound usage query line.
func EncodeUsageQuery() string { return "#usage" }

// EncodeLimitsQuery builds the outbound limits query line.
func EncodeLimitsQuery() string { return "#limits" }
