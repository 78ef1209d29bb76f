// Package log wraps RFC5424 structured logging with a KV-argument style
// API, matching the way the session engine and router log correlation
// ids, registry ids, and transaction ids alongside a short message.
package log

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/crewjam/rfc5424"
)

// Level is a logging verbosity threshold.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	CRITICAL
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case CRITICAL:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

var ErrNotOpen = errors.New("logger is not open")

// ParseLevel maps a config-file level name onto a Level, defaulting to
// INFO for an empty or unrecognized string.
func ParseLevel(s string) Level {
	switch s {
	case "DEBUG":
		return DEBUG
	case "WARN":
		return WARN
	case "ERROR":
		return ERROR
	case "CRITICAL":
		return CRITICAL
	default:
		return INFO
	}
}

// Logger emits RFC5424 structured-data log lines to a single writer. It is
// safe for concurrent use; the daemon holds one Logger and each session
// logs through a KVLogger derived from it with With.
type Logger struct {
	mtx  sync.Mutex
	wtr  io.Writer
	lvl  Level
	host string
	app  string
}

// New builds a Logger writing to wtr at INFO level.
func New(wtr io.Writer, appname string) *Logger {
	return &Logger{wtr: wtr, lvl: INFO, app: appname}
}

// SetLevel adjusts the verbosity threshold.
func (l *Logger) SetLevel(lvl Level) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	l.lvl = lvl
}

func (l *Logger) enabled(lvl Level) bool {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return lvl >= l.lvl
}

func (l *Logger) output(lvl Level, msg string, sds ...rfc5424.SDParam) error {
	if !l.enabled(lvl) {
		return nil
	}
	m := rfc5424.Message{
		Priority:  lvl.priority(),
		Timestamp: time.Now().UTC(),
		Hostname:  l.host,
		AppName:   l.app,
		MessageID: "eppproxy",
		Message:   []byte(msg),
	}
	if len(sds) > 0 {
		m.StructuredData = []rfc5424.StructuredData{{
			ID:         "meta@32473",
			Parameters: sds,
		}}
	}
	b, err := m.MarshalBinary()
	if err != nil {
		return err
	}
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if l.wtr == nil {
		return ErrNotOpen
	}
	_, err = l.wtr.Write(append(b, '\n'))
	return err
}

func (lvl Level) priority() rfc5424.Priority {
	switch lvl {
	case DEBUG:
		return rfc5424.Daemon | rfc5424.Debug
	case INFO:
		return rfc5424.Daemon | rfc5424.Info
	case WARN:
		return rfc5424.Daemon | rfc5424.Warning
	case ERROR:
		return rfc5424.Daemon | rfc5424.Error
	case CRITICAL:
		return rfc5424.Daemon | rfc5424.Crit
	default:
		return rfc5424.Daemon | rfc5424.Info
	}
}

func (l *Logger) Debug(msg string, sds ...rfc5424.SDParam) error { return l.output(DEBUG, msg, sds...) }
func (l *Logger) Info(msg string, sds ...rfc5424.SDParam) error  { return l.output(INFO, msg, sds...) }
func (l *Logger) Warn(msg string, sds ...rfc5424.SDParam) error  { return l.output(WARN, msg, sds...) }
func (l *Logger) Error(msg string, sds ...rfc5424.SDParam) error { return l.output(ERROR, msg, sds...) }
func (l *Logger) Critical(msg string, sds ...rfc5424.SDParam) error {
	return l.output(CRITICAL, msg, sds...)
}

// KV builds a structured-data parameter from an arbitrary value.
func KV(name string, value interface{}) rfc5424.SDParam {
	if s, ok := value.(string); ok {
		return rfc5424.SDParam{Name: name, Value: s}
	}
	return rfc5424.SDParam{Name: name, Value: fmt.Sprintf("%v", value)}
}

// KVErr is shorthand for KV("error", err).
func KVErr(err error) rfc5424.SDParam { return KV("error", err) }

// With returns a KVLogger that prepends the given fields to every call,
// used to bind a registry id and dialect to every log line a session
// engine emits without repeating them at every call site.
func (l *Logger) With(sds ...rfc5424.SDParam) *KVLogger {
	return &KVLogger{parent: l, bound: sds}
}

// KVLogger is a Logger with a fixed set of structured-data fields bound
// to it, mirroring the teacher's ingest/log KVLogger.
type KVLogger struct {
	parent *Logger
	bound  []rfc5424.SDParam
}

func (k *KVLogger) Debug(msg string, sds ...rfc5424.SDParam) error {
	return k.parent.Debug(msg, append(append([]rfc5424.SDParam{}, k.bound...), sds...)...)
}
func (k *KVLogger) Info(msg string, sds ...rfc5424.SDParam) error {
	return k.parent.Info(msg, append(append([]rfc5424.SDParam{}, k.bound...), sds...)...)
}
func (k *KVLogger) Warn(msg string, sds ...rfc5424.SDParam) error {
	return k.parent.Warn(msg, append(append([]rfc5424.SDParam{}, k.bound...), sds...)...)
}
func (k *KVLogger) Error(msg string, sds ...rfc5424.SDParam) error {
	return k.parent.Error(msg, append(append([]rfc5424.SDParam{}, k.bound...), sds...)...)
}
func (k *KVLogger) Critical(msg string, sds ...rfc5424.SDParam) error {
	return k.parent.Critical(msg, append(append([]rfc5424.SDParam{}, k.bound...), sds...)...)
}
