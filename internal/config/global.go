package config

import (
	"errors"
	"strings"

	"github.com/gravwell/gcfg"
)

var ErrMissingLogRoot = errors.New("log root path is missing")

// GlobalConfig is the daemon-wide configuration: the log sink root, the
// RPC listen endpoint, and the optional HSM engine config path (§6).
type GlobalConfig struct {
	LogRoot        string
	LogLevel       string
	ProfileDir     string
	GRPCListen     string
	GRPCTLSCert    string
	GRPCTLSKey     string
	MetricsListen  string
	HSMEngineConfig string
}

type globalStanza struct {
	Global struct {
		Log_Root          string
		Log_Level         string
		Profile_Directory string
		GRPC_Listen       string
		GRPC_TLS_Cert     string
		GRPC_TLS_Key      string
		Metrics_Listen    string
		HSM_Engine_Config string
	}
}

// LoadGlobalConfig parses the daemon's own .conf file.
func LoadGlobalConfig(path string) (*GlobalConfig, error) {
	var st globalStanza
	if err := gcfg.ReadFileInto(&st, path); err != nil {
		return nil, err
	}
	g := &GlobalConfig{
		LogRoot:         st.Global.Log_Root,
		LogLevel:        strings.ToUpper(strings.TrimSpace(st.Global.Log_Level)),
		ProfileDir:      st.Global.Profile_Directory,
		GRPCListen:      st.Global.GRPC_Listen,
		GRPCTLSCert:     st.Global.GRPC_TLS_Cert,
		GRPCTLSKey:      st.Global.GRPC_TLS_Key,
		MetricsListen:   st.Global.Metrics_Listen,
		HSMEngineConfig: st.Global.HSM_Engine_Config,
	}
	if err := g.Verify(); err != nil {
		return nil, err
	}
	return g, nil
}

// Verify fills defaults and rejects an unusable global config.
func (g *GlobalConfig) Verify() error {
	if strings.TrimSpace(g.LogRoot) == "" {
		return ErrMissingLogRoot
	}
	if g.LogLevel == "" {
		g.LogLevel = "INFO"
	}
	if g.GRPCListen == "" {
		g.GRPCListen = "127.0.0.1:9651"
	}
	if g.MetricsListen == "" {
		g.MetricsListen = "127.0.0.1:9652"
	}
	return nil
}
