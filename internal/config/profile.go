// Package config loads the per-registry and global configuration files
// that drive the proxy, following the teacher's gcfg-stanza convention
// (Title_Case field names, one [Section] per concern, and a Verify()
// pass that fills defaults and rejects
// nonsensical values before the caller ever sees a usable struct).
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gravwell/gcfg"
)

// Dialect selects which wire codec a registry speaks.
type Dialect string

const (
	DialectEPP  Dialect = "epp"
	DialectDAC  Dialect = "dac"
	DialectTMCH Dialect = "tmch"
)

const (
	maxConfigSize = 4 * 1024 * 1024

	defaultKeepalive           = 60 * time.Second
	defaultReconnectBackoff    = 5 * time.Second
	defaultReconnectBackoffMax = 5 * time.Minute
	defaultCommandTimeout      = 30 * time.Second
	defaultGreetingTimeout     = 30 * time.Second
)

var (
	ErrMissingID          = errors.New("registry id is missing")
	ErrMissingHost        = errors.New("registry host is missing")
	ErrMissingCredentials = errors.New("registry has neither a password nor a client certificate configured")
	ErrInvalidDialect      = errors.New("unrecognized dialect")
	ErrInvalidDACEnv       = errors.New("unrecognized DAC environment")
)

// RegistryProfile is the immutable-after-load configuration of one
// registry endpoint (spec.md §3). The gcfg field names use the
// teacher's Title_Case convention so the on-disk stanza reads the same
// way the teacher's ingester configs do.
type RegistryProfile struct {
	ID   string
	Host string
	Port uint16

	// SourceAddress optionally binds the outbound dial to a local IP.
	SourceAddress string

	Dialect Dialect

	Password    string
	NewPassword string

	// PKCS#12 bundle path for the client certificate, mutually
	// exclusive with the PKCS#11 fields.
	ClientCertP12     string
	ClientCertP12Pass string

	// PKCS#11-resident key, identified by object id, with the chain
	// supplied separately as PEM (the HSM engine itself is external;
	// see internal/transport/hsm.go).
	PKCS11KeyID    string
	PKCS11CertPath string

	TrustAnchors       []string
	InsecureSkipVerify bool
	InsecureSkipHostnameVerify bool

	Errata []string

	UserAgentProduct string
	UserAgentVersion string
	UserAgentOS      string

	Keepalive           time.Duration
	GreetingTimeout      time.Duration
	ReconnectBackoff     time.Duration
	ReconnectBackoffMax time.Duration
	CommandTimeout      time.Duration

	// DACEnvironment selects the real-time vs time-delay CSV grammar
	// (spec.md §6); only meaningful when Dialect == DialectDAC.
	DACEnvironment string
}

// registryStanza is the gcfg-decoded shape of one profile file; Verify
// converts it into a RegistryProfile with defaults applied.
type registryStanza struct {
	Registry struct {
		ID                         string
		Host                       string
		Port                       uint16
		Source_Address             string
		Dialect                    string
		Password                   string
		New_Password               string
		Client_Cert_P12            string
		Client_Cert_P12_Password   string
		Pkcs11_Key_Id              string
		Pkcs11_Cert_Path           string
		Trust_Anchor               []string
		Insecure_Skip_Verify       bool
		Insecure_Skip_Hostname_Verify bool
		Erratum                    []string
		User_Agent_Product         string
		User_Agent_Version         string
		User_Agent_OS              string
		Keepalive_Interval         string
		Greeting_Timeout           string
		Reconnect_Backoff          string
		Reconnect_Backoff_Max      string
		Command_Timeout            string
		Dac_Environment            string
	}
}

// LoadRegistryProfile parses a gcfg .conf file into a validated
// RegistryProfile.
func LoadRegistryProfile(path string) (*RegistryProfile, error) {
	var st registryStanza
	if err := gcfg.ReadFileInto(&st, path); err != nil {
		return nil, err
	}
	return stanzaToProfile(st)
}

// LoadRegistryProfileBytes is the byte-slice counterpart, used by tests.
func LoadRegistryProfileBytes(b []byte) (*RegistryProfile, error) {
	if len(b) > maxConfigSize {
		return nil, fmt.Errorf("config exceeds %d bytes", maxConfigSize)
	}
	var st registryStanza
	if err := gcfg.ReadStringInto(&st, string(b)); err != nil {
		return nil, err
	}
	return stanzaToProfile(st)
}

func stanzaToProfile(st registryStanza) (*RegistryProfile, error) {
	r := st.Registry
	p := &RegistryProfile{
		ID:                         r.ID,
		Host:                       r.Host,
		Port:                       r.Port,
		SourceAddress:              r.Source_Address,
		Password:                   r.Password,
		NewPassword:                r.New_Password,
		ClientCertP12:              r.Client_Cert_P12,
		ClientCertP12Pass:          r.Client_Cert_P12_Password,
		PKCS11KeyID:                r.Pkcs11_Key_Id,
		PKCS11CertPath:             r.Pkcs11_Cert_Path,
		TrustAnchors:               r.Trust_Anchor,
		InsecureSkipVerify:         r.Insecure_Skip_Verify,
		InsecureSkipHostnameVerify: r.Insecure_Skip_Hostname_Verify,
		Errata:                     r.Erratum,
		UserAgentProduct:           r.User_Agent_Product,
		UserAgentVersion:           r.User_Agent_Version,
		UserAgentOS:                r.User_Agent_OS,
		DACEnvironment:             strings.ToLower(strings.TrimSpace(r.Dac_Environment)),
	}

	switch strings.ToLower(strings.TrimSpace(r.Dialect)) {
	case "", string(DialectEPP):
		p.Dialect = DialectEPP
	case string(DialectDAC):
		p.Dialect = DialectDAC
	case string(DialectTMCH):
		p.Dialect = DialectTMCH
	default:
		return nil, ErrInvalidDialect
	}

	var err error
	if p.Keepalive, err = durationOrDefault(r.Keepalive_Interval, defaultKeepalive); err != nil {
		return nil, err
	}
	if p.GreetingTimeout, err = durationOrDefault(r.Greeting_Timeout, defaultGreetingTimeout); err != nil {
		return nil, err
	}
	if p.ReconnectBackoff, err = durationOrDefault(r.Reconnect_Backoff, defaultReconnectBackoff); err != nil {
		return nil, err
	}
	if p.ReconnectBackoffMax, err = durationOrDefault(r.Reconnect_Backoff_Max, defaultReconnectBackoffMax); err != nil {
		return nil, err
	}
	if p.CommandTimeout, err = durationOrDefault(r.Command_Timeout, defaultCommandTimeout); err != nil {
		return nil, err
	}

	if err := p.Verify(); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadProfileDir parses every *.conf file in dir into a RegistryProfile,
// sorted by filename for deterministic startup ordering. One malformed
// file aborts the whole load: a daemon should never come up half
// configured (spec.md §6).
func LoadProfileDir(dir string) ([]*RegistryProfile, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.conf"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	profiles := make([]*RegistryProfile, 0, len(matches))
	for _, path := range matches {
		p, err := LoadRegistryProfile(path)
		if err != nil {
			return nil, fmt.Errorf("config: loading %s: %w", path, err)
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func durationOrDefault(s string, def time.Duration) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}

// Verify fills in remaining defaults and rejects an unusable profile.
func (p *RegistryProfile) Verify() error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(p.Host) == "" {
		return ErrMissingHost
	}
	if p.Port == 0 {
		if p.Dialect == DialectDAC {
			p.Port = 43
		} else {
			p.Port = 700
		}
	}
	if p.Password == "" && p.ClientCertP12 == "" && p.PKCS11KeyID == "" {
		return ErrMissingCredentials
	}
	if err := ValidateErrata(p.Errata); err != nil {
		return err
	}
	if p.Dialect == DialectDAC {
		switch p.DACEnvironment {
		case "", "realtime":
			p.DACEnvironment = "realtime"
		case "timedelay":
		default:
			return ErrInvalidDACEnv
		}
	}
	return nil
}

// HasErratum reports whether the profile declares the given erratum.
func (p *RegistryProfile) HasErratum(e Erratum) bool {
	for _, have := range p.Errata {
		if Erratum(have) == e {
			return true
		}
	}
	return false
}
