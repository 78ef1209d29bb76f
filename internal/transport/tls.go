package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"os"
	"time"

	"software.sslmate.com/src/go-pkcs12"

	"github.com/as207960/eppproxy/internal/config"
)

// allowedCipherSuites excludes anonymous, NULL, export-grade, 3DES/DES/
// RC4/IDEA/SEED, and DSS/SRP/PSK suites, per spec.md §4.1. Go's stdlib
// tls package already refuses to negotiate most of those families, but
// the explicit allow-list keeps the intent visible and future-proofs
// against a stdlib default changing.
var allowedCipherSuites = []uint16{
	tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
	tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
	tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305,
	tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305,
	tls.TLS_AES_128_GCM_SHA256,
	tls.TLS_AES_256_GCM_SHA384,
	tls.TLS_CHACHA20_POLY1305_SHA256,
}

// hsmHandshakeMutex serializes any handshake that touches the HSM
// adapter, because a blocking PKCS#11 driver can stall for tens of
// seconds and must not be entered concurrently (spec.md §4.1, §9).
var hsmHandshakeMutex hsmMutex

// BuildTLSConfig constructs the *tls.Config for one registry profile:
// trust anchors, hostname verification, client identity, and the
// cipher/version floor from spec.md §4.1.
func BuildTLSConfig(p *config.RegistryProfile) (*tls.Config, error) {
	cfg := &tls.Config{
		MinVersion:             tls.VersionTLS12,
		CipherSuites:           allowedCipherSuites,
		ServerName:             p.Host,
		InsecureSkipVerify:     p.InsecureSkipVerify,
		SessionTicketsDisabled: true,
	}
	if len(p.TrustAnchors) > 0 {
		pool := x509.NewCertPool()
		for _, path := range p.TrustAnchors {
			pem, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("transport: reading trust anchor %s: %w", path, err)
			}
			if !pool.AppendCertsFromPEM(pem) {
				return nil, fmt.Errorf("transport: no certificates found in trust anchor %s", path)
			}
		}
		cfg.RootCAs = pool
	}
	if p.InsecureSkipHostnameVerify {
		cfg.InsecureSkipVerify = true
		cfg.VerifyPeerCertificate = verifyIgnoringHostname(cfg)
	}

	cert, err := loadClientIdentity(p)
	if err != nil {
		return nil, err
	}
	if cert != nil {
		cfg.Certificates = []tls.Certificate{*cert}
	}
	return cfg, nil
}

// verifyIgnoringHostname re-enables chain and expiry verification while
// skipping the hostname check, for profiles that disable only hostname
// verification but still want a valid chain.
func verifyIgnoringHostname(cfg *tls.Config) func([][]byte, [][]*x509.Certificate) error {
	return func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
		certs := make([]*x509.Certificate, len(rawCerts))
		for i, raw := range rawCerts {
			cert, err := x509.ParseCertificate(raw)
			if err != nil {
				return err
			}
			certs[i] = cert
		}
		opts := x509.VerifyOptions{Roots: cfg.RootCAs, Intermediates: x509.NewCertPool()}
		for _, c := range certs[1:] {
			opts.Intermediates.AddCert(c)
		}
		_, err := certs[0].Verify(opts)
		return err
	}
}

func loadClientIdentity(p *config.RegistryProfile) (*tls.Certificate, error) {
	switch {
	case p.ClientCertP12 != "":
		data, err := os.ReadFile(p.ClientCertP12)
		if err != nil {
			return nil, fmt.Errorf("transport: reading client certificate bundle: %w", err)
		}
		priv, leaf, chain, err := pkcs12.DecodeChain(data, p.ClientCertP12Pass)
		if err != nil {
			return nil, fmt.Errorf("transport: decoding PKCS#12 bundle: %w", err)
		}
		cert := &tls.Certificate{PrivateKey: priv, Leaf: leaf}
		cert.Certificate = append(cert.Certificate, leaf.Raw)
		for _, c := range chain {
			cert.Certificate = append(cert.Certificate, c.Raw)
		}
		return cert, nil
	case p.PKCS11KeyID != "":
		return loadHSMIdentity(p)
	default:
		return nil, nil
	}
}

// Dial opens a TCP connection to the profile's host:port, optionally
// bound to a source address, with a dial timeout and keep-alive set per
// the teacher's EnableKeepAlive helper.
func Dial(p *config.RegistryProfile, dialTimeout time.Duration) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: dialTimeout, KeepAlive: 30 * time.Second}
	if p.SourceAddress != "" {
		dialer.LocalAddr = &net.TCPAddr{IP: net.ParseIP(p.SourceAddress)}
	}
	addr := fmt.Sprintf("%s:%d", p.Host, p.Port)
	return dialer.Dial("tcp", addr)
}

// DialTLS dials then performs the TLS handshake. If the profile uses an
// HSM-resident key, the handshake is serialized behind the process-wide
// mutex (spec.md §4.1, §9).
func DialTLS(p *config.RegistryProfile, dialTimeout time.Duration) (*tls.Conn, error) {
	raw, err := Dial(p, dialTimeout)
	if err != nil {
		return nil, err
	}
	tlsCfg, err := BuildTLSConfig(p)
	if err != nil {
		raw.Close()
		return nil, err
	}
	conn := tls.Client(raw, tlsCfg)

	usesHSM := p.PKCS11KeyID != ""
	if usesHSM {
		hsmHandshakeMutex.Lock()
		defer hsmHandshakeMutex.Unlock()
	}
	if err := conn.HandshakeContext(context.Background()); err != nil {
		raw.Close()
		return nil, err
	}
	return conn, nil
}
