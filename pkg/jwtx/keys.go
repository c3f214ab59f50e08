package jwtx

import (
	"fmt"
	"time"
)

// Keys bundles the signing side and the verification side of a single
// EdDSA key. The API both issues and checks admin tokens, so one process
// owns both halves.
type Keys struct {
	Signer   Signer
	KeySet   *KeySet
	Verifier Verifier
	Issuer   string
}

// NewEdDSAKeys loads pemKey as the active signing key and publishes its
// public half.
func NewEdDSAKeys(pemKey []byte, issuer string) (*Keys, error) {
	signer, err := NewSignerEdDSA("", pemKey)
	if err != nil {
		return nil, err
	}
	if err := signer.Validate(); err != nil {
		return nil, err
	}

	ks := NewKeySet()
	if err := ks.AddSigner(signer); err != nil {
		return nil, fmt.Errorf("jwtx: register signer: %w", err)
	}

	return &Keys{
		Signer:   signer,
		KeySet:   ks,
		Verifier: NewCommonEdDSA(ks, issuer, nil),
		Issuer:   issuer,
	}, nil
}

// Issue signs an admin token valid for ttl from now.
func (k *Keys) Issue(subject, email, role string, ttl time.Duration, now time.Time) (string, Claims, error) {
	claims := NewAdminClaims(subject, email, role, k.Issuer, ttl, now)
	token, err := k.Signer.Sign(claims)
	if err != nil {
		return "", Claims{}, fmt.Errorf("jwtx: sign: %w", err)
	}
	return token, claims, nil
}
