package logsink

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/as207960/eppproxy/internal/log"
)

func TestRecordWritesTimePartitionedPath(t *testing.T) {
	dir := t.TempDir()
	fixed := time.Date(2026, 3, 5, 14, 22, 7, 123456000, time.UTC)
	clock = func() time.Time { return fixed }
	defer func() { clock = time.Now }()

	sink := New(dir, log.New(io.Discard, "test").With())
	sink.Record("send", []byte("<epp/>"))

	want := filepath.Join(dir, "2026", "03", "05", "14")
	entries, err := os.ReadDir(want)
	if err != nil {
		t.Fatalf("expected directory %s to exist: %v", want, err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one file, got %d", len(entries))
	}
	if got := entries[0].Name(); filepath.Ext(got) != ".xml" {
		t.Fatalf("expected .xml extension, got %q", got)
	}
	contents, err := os.ReadFile(filepath.Join(want, entries[0].Name()))
	if err != nil {
		t.Fatalf("reading written frame: %v", err)
	}
	if string(contents) != "<epp/>" {
		t.Fatalf("unexpected contents: %q", contents)
	}
}

func TestRecordNilSinkIsNoop(t *testing.T) {
	var s *Sink
	s.Record("send", []byte("x")) // must not panic
}

func TestRecordDistinguishesSendAndRecv(t *testing.T) {
	dir := t.TempDir()
	fixed := time.Date(2026, 3, 5, 14, 22, 7, 0, time.UTC)
	clock = func() time.Time { return fixed }
	defer func() { clock = time.Now }()

	sink := New(dir, nil)
	sink.Record("send", []byte("out"))
	sink.Record("recv", []byte("in"))

	want := filepath.Join(dir, "2026", "03", "05", "14")
	entries, err := os.ReadDir(want)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 files (clock is fixed, names disambiguate by dir suffix), got %d", len(entries))
	}
}
