package signer

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
)

// Key wraps an RSA key pair used to sign credentials and device policy
// documents. The fingerprint doubles as the key id (kid) on anything the
// key signs.
type Key struct {
	privateKey  *rsa.PrivateKey
	fingerprint string // lazy; reset if privateKey ever changes
}

// NewKey restores a key from its PKCS1 DER encoding.
func NewKey(pkeyDer []byte) (*Key, error) {
	pkey, err := x509.ParsePKCS1PrivateKey(pkeyDer)
	if err != nil {
		return nil, err
	}

	return &Key{privateKey: pkey}, nil
}

// GenerateKey generates a new 2048-bit RSA signing key.
func GenerateKey() (*Key, error) {
	pkey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}

	return &Key{privateKey: pkey}, nil
}

// Serialize returns the DER-encoded private key.
func (k *Key) Serialize() ([]byte, error) {
	return x509.MarshalPKCS1PrivateKey(k.privateKey), nil
}

func sha256Digest(value []byte) []byte {
	hash := sha256.New()
	hash.Write(value)
	return hash.Sum(nil)
}

// PrivateRSAPem returns the private key in PEM form.
func (k *Key) PrivateRSAPem() []byte {
	return pem.EncodeToMemory(
		&pem.Block{
			Type:  "RSA PRIVATE KEY",
			Bytes: x509.MarshalPKCS1PrivateKey(k.privateKey),
		},
	)
}

// PublicPem returns the PKIX public key in PEM form. This is the key
// material handed to devices for offline policy verification.
func (k *Key) PublicPem() []byte {
	bytes, err := x509.MarshalPKIXPublicKey(&k.privateKey.PublicKey)
	if err != nil {
		panic(err)
	}
	return pem.EncodeToMemory(
		&pem.Block{
			Type:  "PUBLIC KEY",
			Bytes: bytes,
		},
	)
}

// Public returns the RSA public key.
func (k *Key) Public() *rsa.PublicKey {
	return &k.privateKey.PublicKey
}

// Private returns the RSA private key, for use with JWT signing.
func (k *Key) Private() *rsa.PrivateKey {
	return k.privateKey
}

// Sign signs value with RSASSA-PKCS1-v1_5 over SHA-256.
func (k *Key) Sign(value []byte) ([]byte, error) {
	return rsa.SignPKCS1v15(rand.Reader, k.privateKey, crypto.SHA256, sha256Digest(value))
}

// Verify checks a signature produced by Sign.
func (k *Key) Verify(value, signature []byte) error {
	return rsa.VerifyPKCS1v15(&k.privateKey.PublicKey, crypto.SHA256, sha256Digest(value), signature)
}

// Fingerprint returns the hex-encoded SHA-256 of the PKIX public key.
func (k *Key) Fingerprint() string {
	if len(k.fingerprint) > 0 {
		return k.fingerprint
	}

	der, err := x509.MarshalPKIXPublicKey(&k.privateKey.PublicKey)
	if err != nil {
		return ""
	}

	k.fingerprint = hex.EncodeToString(sha256Digest(der))
	return k.fingerprint
}
