package cryptox

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// GenerateEd25519Key generates a new Ed25519 private key.
// Returns the private key in PEM format (PKCS8).
func GenerateEd25519Key() ([]byte, error) {
	_, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to generate Ed25519 key: %w", err)
	}

	// Ed25519 keys are always marshaled as PKCS8
	der, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to marshal PKCS8 key: %w", err)
	}

	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}

// LoadOrGenerateEd25519Key reads a PEM signing key from path, generating and
// persisting a new one if the file doesn't exist. Keeping the key on disk lets
// admin sessions survive restarts.
func LoadOrGenerateEd25519Key(path string) ([]byte, error) {
	b, err := loadOrCreateSecretFile(path, GenerateEd25519Key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: signing key %q: %w", path, err)
	}
	return b, nil
}
