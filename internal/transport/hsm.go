package transport

import (
	"crypto"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/as207960/eppproxy/internal/config"
)

// hsmMutex is the process-wide lock serializing any operation that
// reaches into the HSM engine. A PKCS#11 driver is free to block for
// the length of a card handshake, and most engines are not safe for
// concurrent sessions from one process (spec.md §4.1, §9). This
// package never loads a PKCS#11 engine itself: the engine handle and
// its crypto.Signer are supplied by the caller, matching spec.md §1's
// "HSM access is an external collaborator" boundary.
type hsmMutex struct {
	mu sync.Mutex
}

func (h *hsmMutex) Lock()   { h.mu.Lock() }
func (h *hsmMutex) Unlock() { h.mu.Unlock() }

// HSMSigner is satisfied by whatever PKCS#11 binding the caller wires
// up; this package only needs crypto.Signer plus the certificate chain
// that accompanies the key.
type HSMSigner = crypto.Signer

// hsmRegistry maps a profile's PKCS11KeyID to a caller-registered
// signer. RegisterHSMSigner is the seam: nothing in this package dials a
// PKCS#11 module directly, and cmd/eppproxyd registers no signer, so a
// profile naming a PKCS11KeyID fails to dial with ErrHSMKeyNotRegistered
// unless the embedding program registers one.
var (
	hsmRegistryMu sync.RWMutex
	hsmRegistry   = map[string]HSMSigner{}
)

// RegisterHSMSigner associates a key identifier (as named by a
// profile's pkcs11_key_id) with a signer obtained from the HSM engine.
// Call this during daemon startup, before any profile using that key
// id attempts to dial.
func RegisterHSMSigner(keyID string, signer HSMSigner) {
	hsmRegistryMu.Lock()
	defer hsmRegistryMu.Unlock()
	hsmRegistry[keyID] = signer
}

var ErrHSMKeyNotRegistered = errors.New("transport: no HSM signer registered for this key id")

// loadHSMIdentity builds a tls.Certificate backed by an HSM-resident
// private key: the certificate chain is read from disk (HSMs hold
// keys, not certificates), but all signing operations are delegated to
// the registered crypto.Signer so the key material never leaves the
// engine.
func loadHSMIdentity(p *config.RegistryProfile) (*tls.Certificate, error) {
	hsmRegistryMu.RLock()
	signer, ok := hsmRegistry[p.PKCS11KeyID]
	hsmRegistryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrHSMKeyNotRegistered, p.PKCS11KeyID)
	}
	if p.PKCS11CertPath == "" {
		return nil, errors.New("transport: pkcs11_cert_path is required alongside pkcs11_key_id")
	}
	pemBytes, err := os.ReadFile(p.PKCS11CertPath)
	if err != nil {
		return nil, fmt.Errorf("transport: reading HSM certificate chain: %w", err)
	}
	chain, err := parseCertChain(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("transport: parsing HSM certificate chain: %w", err)
	}
	raw := make([][]byte, len(chain))
	for i, c := range chain {
		raw[i] = c.Raw
	}
	return &tls.Certificate{
		Certificate: raw,
		PrivateKey:  signer,
		Leaf:        chain[0],
	}, nil
}

func parseCertChain(pemBytes []byte) ([]*x509.Certificate, error) {
	var certs []*x509.Certificate
	rest := pemBytes
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, err
		}
		certs = append(certs, cert)
	}
	if len(certs) == 0 {
		return nil, errors.New("no CERTIFICATE blocks found")
	}
	return certs, nil
}
