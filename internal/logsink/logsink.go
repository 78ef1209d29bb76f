// Package logsink implements C8: best-effort raw-frame logging. Every
// byte actually sent or received on a session's wire is written to a
// file under a time-partitioned path, `<root>/YYYY/MM/DD/HH/
// <timestamp>_<dir>.xml` (spec.md §4.8), where <dir> is "send" or
// "recv" and the timestamp carries microsecond resolution to avoid
// collisions. Grounded on the teacher's ingest/log/rotate package for
// the "a log write must never abort the caller" discipline, generalized
// from size/count-based rotation to time-bucketed directories — a sink
// here never appends to or rotates an existing file, it creates exactly
// one new file per frame.
package logsink

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/as207960/eppproxy/internal/log"
)

// Sink writes raw frames under one root directory. The zero value is
// not usable; construct with New.
type Sink struct {
	root string
	log  *log.KVLogger
}

// New returns a Sink rooted at root. The caller's *log.KVLogger
// receives a Warn for every write that fails; Record itself never
// returns an error, matching spec.md §4.8's "best-effort" contract.
func New(root string, logger *log.KVLogger) *Sink {
	return &Sink{root: root, log: logger}
}

// clock is overridden in tests so output paths are deterministic;
// production code always uses time.Now.
var clock = time.Now

// Record persists one outbound ("send") or inbound ("recv") frame.
// Failures are logged and swallowed: a log sink outage must never take
// down the session it is observing.
func (s *Sink) Record(dir string, payload []byte) {
	if s == nil {
		return
	}
	now := clock().UTC()
	path := filepath.Join(s.root,
		fmt.Sprintf("%04d", now.Year()),
		fmt.Sprintf("%02d", now.Month()),
		fmt.Sprintf("%02d", now.Day()),
		fmt.Sprintf("%02d", now.Hour()),
	)
	if err := os.MkdirAll(path, 0o755); err != nil {
		s.warn(err)
		return
	}
	name := fmt.Sprintf("%s_%s.xml", now.Format("20060102T150405.000000"), dir)
	full := filepath.Join(path, name)
	if err := os.WriteFile(full, payload, 0o644); err != nil {
		s.warn(err)
		return
	}
}

func (s *Sink) warn(err error) {
	if s.log == nil {
		return
	}
	s.log.Warn("logsink: write failed", log.KVErr(err))
}
