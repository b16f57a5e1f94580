package signer

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"
)

const ivSize = 12
const tagSize = aes.BlockSize
const versionMagic = byte('F')

// SymmetricCipher encrypts and decrypts with additional authenticated
// data. Used to keep signing keys encrypted at rest, with the key id as
// the AAD.
type SymmetricCipher interface {
	Decrypt(aad, packedText []byte) ([]byte, error)
	Encrypt(aad, plainText []byte) ([]byte, error)
}

// Symmetric is an AES-GCM SymmetricCipher.
type Symmetric struct {
	aesgcm cipher.AEAD
}

// NewSymmetric builds a cipher from a 16-, 24-, or 32-byte data key.
func NewSymmetric(key []byte) (SymmetricCipher, error) {
	c, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	aesgcm, err := cipher.NewGCM(c)
	if err != nil {
		return nil, err
	}

	return &Symmetric{aesgcm: aesgcm}, nil
}

func (s Symmetric) Decrypt(aad, packedText []byte) ([]byte, error) {
	if len(packedText) < 1+tagSize+ivSize {
		return nil, errors.New("ciphertext is too short")
	}
	if packedText[0] != versionMagic {
		return nil, errors.New("unknown ciphertext version")
	}

	cipherText, iv := unpackCipherData(packedText)

	return s.aesgcm.Open(nil, iv, cipherText, aad)
}

func (s Symmetric) Encrypt(aad, plainText []byte) ([]byte, error) {
	nonce, err := randomNonce()
	if err != nil {
		return nil, err
	}

	cipherTextWithTag := s.aesgcm.Seal(nil, nonce, plainText, aad)
	return packCipherData(cipherTextWithTag, nonce), nil
}

func randomNonce() ([]byte, error) {
	// Never reuse more than 2^32 random nonces with one key.
	return RandomBytes(ivSize)
}

// RandomBytes returns size cryptographically random bytes.
func RandomBytes(size int) ([]byte, error) {
	value := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, value); err != nil {
		return nil, err
	}

	return value, nil
}

// Packed layout: version byte, GCM tag, IV, ciphertext.
func packCipherData(cipherTextWithTag, iv []byte) []byte {
	iv = iv[:ivSize]

	tagStartIndex := len(cipherTextWithTag) - tagSize
	tag := cipherTextWithTag[tagStartIndex:]
	cipherText := cipherTextWithTag[:tagStartIndex]

	data := make([]byte, 1+tagSize+ivSize+len(cipherText))
	data[0] = versionMagic
	index := 1

	copy(data[index:], tag)
	index += tagSize

	copy(data[index:], iv)
	index += ivSize

	copy(data[index:], cipherText)

	return data
}

func unpackCipherData(packedText []byte) (cipherTextWithTag, iv []byte) {
	index := 1

	tag := packedText[index : index+tagSize]
	index += tagSize

	iv = packedText[index : index+ivSize]
	index += ivSize

	cipherText := packedText[index:]

	// GCM expects the tag appended to the ciphertext.
	combined := make([]byte, 0, len(cipherText)+tagSize)
	combined = append(combined, cipherText...)
	combined = append(combined, tag...)

	return combined, iv
}
