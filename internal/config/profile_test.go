package config

import "testing"

func TestLoadRegistryProfileBytesMinimal(t *testing.T) {
	const conf = `
[Registry]
ID = example-registry
Host = epp.example.com
Password = hunter2
`
	p, err := LoadRegistryProfileBytes([]byte(conf))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "example-registry" {
		t.Errorf("ID = %q, want example-registry", p.ID)
	}
	if p.Dialect != DialectEPP {
		t.Errorf("Dialect = %q, want epp (default)", p.Dialect)
	}
	if p.Port != 700 {
		t.Errorf("Port = %d, want default 700", p.Port)
	}
	if p.Keepalive != defaultKeepalive {
		t.Errorf("Keepalive = %v, want default %v", p.Keepalive, defaultKeepalive)
	}
}

func TestLoadRegistryProfileMissingCredentials(t *testing.T) {
	const conf = `
[Registry]
ID = example-registry
Host = epp.example.com
`
	if _, err := LoadRegistryProfileBytes([]byte(conf)); err != ErrMissingCredentials {
		t.Fatalf("err = %v, want ErrMissingCredentials", err)
	}
}

func TestLoadRegistryProfileUnknownErratum(t *testing.T) {
	const conf = `
[Registry]
ID = example-registry
Host = epp.example.com
Password = hunter2
Erratum = bogus-registry
`
	if _, err := LoadRegistryProfileBytes([]byte(conf)); err == nil {
		t.Fatal("expected an error for an unknown erratum")
	}
}

func TestLoadRegistryProfileDAC(t *testing.T) {
	const conf = `
[Registry]
ID = dac-feed
Host = dac.example.uk
Password = hunter2
Dialect = dac
`
	p, err := LoadRegistryProfileBytes([]byte(conf))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Port != 43 {
		t.Errorf("Port = %d, want default 43 for DAC", p.Port)
	}
	if p.DACEnvironment != "realtime" {
		t.Errorf("DACEnvironment = %q, want realtime default", p.DACEnvironment)
	}
}

func TestLoadRegistryProfileInvalidDACEnvironment(t *testing.T) {
	const conf = `
[Registry]
ID = dac-feed
Host = dac.example.uk
Password = hunter2
Dialect = dac
Dac_Environment = sometimes
`
	if _, err := LoadRegistryProfileBytes([]byte(conf)); err != ErrInvalidDACEnv {
		t.Fatalf("err = %v, want ErrInvalidDACEnv", err)
	}
}

func TestHasErratum(t *testing.T) {
	p := &RegistryProfile{Errata: []string{string(ErratumVerisignCom)}}
	if !p.HasErratum(ErratumVerisignCom) {
		t.Error("expected HasErratum(verisign-com) to be true")
	}
	if p.HasErratum(ErratumEURid) {
		t.Error("expected HasErratum(eurid) to be false")
	}
}
