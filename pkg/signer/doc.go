// Package signer provides the cryptographic primitives of the
// credential-trust core: an RSA signing key with a stable fingerprint,
// compact JWS signing and verification for device policy documents, and
// an AES-GCM cipher used to keep signing keys encrypted at rest.
package signer
