// Package correlator implements C5: matching inbound responses to the
// in-flight request that caused them. EPP keys on the client-chosen
// transaction id; the CSV/DAC dialect has no transaction id and keys on
// the (environment, query string) pair instead (spec.md §4.5).
package correlator

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/as207960/eppproxy/internal/epperr"
	"github.com/as207960/eppproxy/internal/request"
)

// maxClTRIDLen is RFC 5730's 64-octet clTRID limit.
const maxClTRIDLen = 64

// NewClientTRID returns a UUID-derived client transaction id truncated
// to fit RFC 5730's clTRID length limit.
func NewClientTRID() string {
	id := uuid.New().String()
	if len(id) > maxClTRIDLen {
		id = id[:maxClTRIDLen]
	}
	return id
}

// Key identifies a pending entry. For EPP it is just the client
// transaction id; for CSV/DAC it combines the environment and the query
// string (see DACKey).
type Key string

type pendingEntry struct {
	req      *request.Request
	insertAt time.Time
}

// Table is the pending-request correlator for one session. At most one
// pending entry may exist per key; the table never leaks entries —
// every insertion is eventually matched, timed out, or drained.
type Table struct {
	mu      sync.Mutex
	pending map[Key]*pendingEntry
}

// NewTable constructs an empty correlator table.
func NewTable() *Table {
	return &Table{pending: make(map[Key]*pendingEntry)}
}

// ErrDuplicateKey is a programmer error: the session engine must never
// reuse a key (client transaction id or query string) for a new
// request while an earlier one with the same key is still pending.
var ErrDuplicateKey = fmt.Errorf("correlator: duplicate pending key")

// Insert records a pending request before its command is written to
// the transport.
func (t *Table) Insert(key Key, req *request.Request) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.pending[key]; exists {
		return ErrDuplicateKey
	}
	t.pending[key] = &pendingEntry{req: req, insertAt: time.Now()}
	return nil
}

// Match removes and returns the pending request for key, if any. ok is
// false when no request is pending under that key — for EPP this means
// the response is unsolicited (route to poll); for CSV/DAC dialects it
// is always a protocol violation.
func (t *Table) Match(key Key) (*request.Request, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	entry, ok := t.pending[key]
	if !ok {
		return nil, false
	}
	delete(t.pending, key)
	return entry.req, true
}

// Remove drops a pending entry without resolving it; used when the
// session is tearing down a request that was canceled before the
// response arrived.
func (t *Table) Remove(key Key) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.pending, key)
}

// Len reports the number of entries currently pending.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

// TimedOut returns the keys of entries inserted more than timeout ago;
// the caller (session engine) is responsible for removing and failing
// each one via DrainTimedOut.
func (t *Table) TimedOut(timeout time.Duration) []Key {
	t.mu.Lock()
	defer t.mu.Unlock()
	cutoff := time.Now().Add(-timeout)
	var keys []Key
	for k, e := range t.pending {
		if e.insertAt.Before(cutoff) {
			keys = append(keys, k)
		}
	}
	return keys
}

// DrainTimedOut removes every entry older than timeout and fails each
// with a Timeout error, returning how many were drained.
func (t *Table) DrainTimedOut(timeout time.Duration) int {
	keys := t.TimedOut(timeout)
	for _, k := range keys {
		t.mu.Lock()
		entry, ok := t.pending[k]
		if ok {
			delete(t.pending, k)
		}
		t.mu.Unlock()
		if ok {
			entry.req.Fail(epperr.Timeout(string(k)))
		}
	}
	return len(keys)
}

// DrainAll removes every pending entry and fails each with a NotReady
// error; used when a session disconnects with requests still in flight.
func (t *Table) DrainAll(state string) int {
	t.mu.Lock()
	entries := t.pending
	t.pending = make(map[Key]*pendingEntry)
	t.mu.Unlock()

	for _, e := range entries {
		e.req.Fail(epperr.NotReady(state))
	}
	return len(entries)
}

// DACKey builds the CSV/DAC correlation key from an environment label
// and the literal query string that was sent (spec.md §4.5).
func DACKey(environment, query string) Key {
	return Key(environment + "\x00" + query)
}
