// Package transport implements C1: length-prefixed message I/O over
// TLS, plus the CRLF-line framing the DAC dialect uses instead. The
// length-prefix scheme mirrors the teacher's ingest.StreamConfiguration/
// IngesterState wire helpers (a 32-bit size header read with
// encoding/binary, sanity-capped before the payload read), generalized
// from little-endian/JSON to big-endian/XML-or-CSV.
package transport

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"net"
	"unicode/utf8"
)

const (
	// maxFrameSize guards against a hostile or malfunctioning peer
	// claiming an enormous length prefix.
	maxFrameSize = 64 * 1024 * 1024
	lengthPrefixSize = 4
)

var (
	ErrFrameTooLarge = errors.New("transport: frame exceeds maximum size")
	ErrShortRead     = errors.New("transport: short read")
	ErrShortWrite    = errors.New("transport: short write")
	ErrNotUTF8       = errors.New("transport: frame is not valid UTF-8")
)

// FramedConn is C1's EPP/TMCH framing: a 32-bit big-endian length of
// N+4 followed by the N-byte payload, per RFC 5734 §4.
type FramedConn struct {
	conn net.Conn
	r    *bufio.Reader
}

// NewFramedConn wraps an already-established connection (plain or TLS).
func NewFramedConn(conn net.Conn) *FramedConn {
	return &FramedConn{conn: conn, r: bufio.NewReader(conn)}
}

// WriteFrame sends one length-prefixed message. The prefix value is the
// payload length plus the 4 bytes of the prefix itself, matching RFC
// 5734's "total length" framing (not just the payload length).
func (f *FramedConn) WriteFrame(payload []byte) error {
	hdr := make([]byte, lengthPrefixSize)
	binary.BigEndian.PutUint32(hdr, uint32(len(payload)+lengthPrefixSize))
	n, err := f.conn.Write(append(hdr, payload...))
	if err != nil {
		return err
	}
	if n != len(payload)+lengthPrefixSize {
		return ErrShortWrite
	}
	return nil
}

// ReadFrame blocks for the next length-prefixed message and returns its
// payload. A short read of either the length header or the payload is
// treated as a transport failure (spec.md §4.1).
func (f *FramedConn) ReadFrame() ([]byte, error) {
	var hdr [lengthPrefixSize]byte
	if _, err := io.ReadFull(f.r, hdr[:]); err != nil {
		return nil, shortReadErr(err)
	}
	total := binary.BigEndian.Uint32(hdr[:])
	if total < lengthPrefixSize {
		return nil, ErrShortRead
	}
	payloadLen := total - lengthPrefixSize
	if payloadLen > maxFrameSize {
		return nil, ErrFrameTooLarge
	}
	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(f.r, payload); err != nil {
		return nil, shortReadErr(err)
	}
	if !utf8.Valid(payload) {
		return nil, ErrNotUTF8
	}
	return payload, nil
}

func shortReadErr(err error) error {
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		return ErrShortRead
	}
	return err
}

// Close closes the underlying connection.
func (f *FramedConn) Close() error { return f.conn.Close() }

// Conn exposes the underlying net.Conn for deadline/keepalive tuning.
func (f *FramedConn) Conn() net.Conn { return f.conn }
