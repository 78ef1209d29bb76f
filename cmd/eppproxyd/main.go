// Command eppproxyd is the long-running proxy daemon (spec.md §1): it
// loads the global and per-registry configuration, starts one session
// per registry, and serves the gRPC facade boundary and a Prometheus
// metrics endpoint until signaled to stop. Flag and signal handling
// mirror the teacher's ingester daemons (fileFollow/main.go,
// netflow/main.go): a config-file-override flag, SIGINT/SIGTERM on a
// buffered channel, and an orderly close of every session before exit.
package main

import (
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"

	"github.com/as207960/eppproxy/internal/config"
	"github.com/as207960/eppproxy/internal/facade"
	"github.com/as207960/eppproxy/internal/log"
	"github.com/as207960/eppproxy/internal/logsink"
	"github.com/as207960/eppproxy/internal/metrics"
	"github.com/as207960/eppproxy/internal/rpcapi"
	"github.com/as207960/eppproxy/internal/session"
)

const defaultConfigLoc = `/opt/eppproxy/etc/eppproxyd.conf`

var (
	configOverride = flag.String("config-file-override", "", "Override location for the daemon configuration file")
)

func main() {
	flag.Parse()

	confLoc := defaultConfigLoc
	if *configOverride != "" {
		confLoc = *configOverride
	}

	gcfg, err := config.LoadGlobalConfig(confLoc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "eppproxyd: loading %s: %v\n", confLoc, err)
		os.Exit(1)
	}

	logFile, err := openDailyLog(gcfg.LogRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "eppproxyd: opening daemon log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	lg := log.New(logFile, "eppproxyd")
	lg.SetLevel(log.ParseLevel(gcfg.LogLevel))
	klg := lg.With()

	profiles, err := config.LoadProfileDir(gcfg.ProfileDir)
	if err != nil {
		klg.Critical("loading registry profiles", log.KVErr(err))
		os.Exit(1)
	}
	if len(profiles) == 0 {
		klg.Critical("no registry profiles found", log.KV("dir", gcfg.ProfileDir))
		os.Exit(1)
	}

	sink := logsink.New(gcfg.LogRoot, klg)
	mtr := metrics.New()
	fac := facade.New(klg)

	sessions := make([]*session.Session, 0, len(profiles))
	for _, p := range profiles {
		sessLog := lg.With(log.KV("registry", p.ID), log.KV("dialect", string(p.Dialect)))
		sess := session.New(p, sessLog, nil)
		sess.SetWireLog(sink)
		fac.AddRegistry(p, sess)
		sessions = append(sessions, sess)
	}

	go fac.Run()

	for _, sess := range sessions {
		go sess.Run()
		go watchSessionState(sess, mtr)
	}

	go serveMetrics(gcfg.MetricsListen, mtr, klg)

	grpcServer, err := startGRPC(gcfg, fac, mtr, klg)
	if err != nil {
		klg.Critical("starting gRPC listener", log.KVErr(err))
		os.Exit(1)
	}

	klg.Info("eppproxyd started", log.KV("registries", len(sessions)), log.KV("grpc", gcfg.GRPCListen))

	sch := make(chan os.Signal, 1)
	signal.Notify(sch, os.Interrupt, syscall.SIGTERM)
	<-sch

	klg.Info("shutting down")
	grpcServer.GracefulStop()
	fac.Close()
	for _, sess := range sessions {
		sess.Close()
	}
	klg.Info("shutdown complete")
}

func startGRPC(gcfg *config.GlobalConfig, fac *facade.Facade, mtr *metrics.Registry, klg *log.KVLogger) (*grpc.Server, error) {
	lis, err := net.Listen("tcp", gcfg.GRPCListen)
	if err != nil {
		return nil, err
	}
	var opts []grpc.ServerOption
	if gcfg.GRPCTLSCert != "" {
		creds, err := credentials.NewServerTLSFromFile(gcfg.GRPCTLSCert, gcfg.GRPCTLSKey)
		if err != nil {
			lis.Close()
			return nil, err
		}
		opts = append(opts, grpc.Creds(creds))
	}
	srv := grpc.NewServer(opts...)
	rpcapi.RegisterEppProxyServer(srv, rpcapi.New(fac, mtr, klg))
	go func() {
		if err := srv.Serve(lis); err != nil {
			klg.Warn("grpc server stopped", log.KVErr(err))
		}
	}()
	return srv, nil
}

func serveMetrics(addr string, mtr *metrics.Registry, klg *log.KVLogger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(mtr.Gatherer(), promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		klg.Warn("metrics server stopped", log.KVErr(err))
	}
}

// watchSessionState polls a session's lifecycle state into the gauge at
// a coarse interval; the session engine itself stays free of any
// Prometheus dependency (DESIGN.md: internal/session).
func watchSessionState(sess *session.Session, mtr *metrics.Registry) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		mtr.SessionState.WithLabelValues(sess.Profile().ID).Set(float64(sess.State()))
	}
}

func openDailyLog(root string) (*os.File, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(root, "eppproxyd.log")
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}
