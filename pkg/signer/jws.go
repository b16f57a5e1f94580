package signer

import (
	"crypto"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

// ErrMalformedJWS indicates the compact serialization is structurally
// invalid. ErrBadSignature covers every verification failure; callers
// must not surface a more specific reason.
var (
	ErrMalformedJWS = errors.New("malformed signed document")
	ErrBadSignature = errors.New("signature verification failed")
)

type jwsHeader struct {
	Alg string `json:"alg"`
	Kid string `json:"kid"`
	Typ string `json:"typ,omitempty"`
}

func b64(raw []byte) string {
	return base64.RawURLEncoding.EncodeToString(raw)
}

// SignCompact produces a compact JWS (header.payload.signature) over
// payload, signed with RS256. The key fingerprint is embedded as kid so
// verifiers can select the right public key.
func (k *Key) SignCompact(payload []byte, typ string) (string, error) {
	headerJSON, err := json.Marshal(jwsHeader{Alg: "RS256", Kid: k.Fingerprint(), Typ: typ})
	if err != nil {
		return "", err
	}

	signingInput := b64(headerJSON) + "." + b64(payload)
	signature, err := k.Sign([]byte(signingInput))
	if err != nil {
		return "", err
	}

	return signingInput + "." + b64(signature), nil
}

// VerifyCompact verifies a compact JWS against pub and returns its
// payload. Any structural problem yields ErrMalformedJWS; any
// cryptographic problem yields ErrBadSignature.
func VerifyCompact(pub *rsa.PublicKey, token string) ([]byte, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, ErrMalformedJWS
	}

	headerJSON, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, ErrMalformedJWS
	}
	var header jwsHeader
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return nil, ErrMalformedJWS
	}
	if header.Alg != "RS256" {
		return nil, ErrBadSignature
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, ErrMalformedJWS
	}
	signature, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, ErrMalformedJWS
	}

	signingInput := parts[0] + "." + parts[1]
	if err := rsa.VerifyPKCS1v15(pub, crypto.SHA256, sha256Digest([]byte(signingInput)), signature); err != nil {
		return nil, ErrBadSignature
	}

	return payload, nil
}

// CompactKid extracts the kid from a compact JWS without verifying it.
// Used to pick a key from the keystore before verification.
func CompactKid(token string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", ErrMalformedJWS
	}

	headerJSON, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", ErrMalformedJWS
	}
	var header jwsHeader
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return "", ErrMalformedJWS
	}
	return header.Kid, nil
}
