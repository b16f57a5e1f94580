// Package store persists signing keys encrypted at rest and serves them
// by id or fingerprint with an in-memory cache.
package store

import (
	"errors"
	"sync"

	"gorm.io/gorm"

	"github.com/fieldgate/fieldgate/pkg/signer"
)

// PolicySigningKeyID is the well-known id of the key that signs device
// policy documents and session credentials.
const PolicySigningKeyID = "policy-signing"

// ErrKeyNotFound indicates no stored key matched the query.
var ErrKeyNotFound = errors.New("signing key not found")

// Key pairs a decrypted signing key with its stored row.
type Key struct {
	Stored *StoredKey
	*signer.Key
}

// KeyStore loads signing keys from the database, decrypting them with
// the data-key cipher. Decrypted keys are cached by id and fingerprint;
// the cache is safe for concurrent use.
type KeyStore struct {
	db     *gorm.DB
	cipher signer.SymmetricCipher

	mu                sync.RWMutex
	keysByID          map[string]*Key
	keysByFingerprint map[string]*Key
}

// NewKeyStore builds a KeyStore around db using the supplied data key.
func NewKeyStore(db *gorm.DB, dataKey []byte) (*KeyStore, error) {
	cipher, err := signer.NewSymmetric(dataKey)
	if err != nil {
		return nil, err
	}

	return &KeyStore{
		db:                db,
		cipher:            cipher,
		keysByID:          map[string]*Key{},
		keysByFingerprint: map[string]*Key{},
	}, nil
}

// Cipher exposes the data-key cipher for callers that encrypt adjacent
// material (e.g. key generation in the CLI).
func (s *KeyStore) Cipher() signer.SymmetricCipher {
	return s.cipher
}

func (s *KeyStore) cached(query *StoredKey) (*Key, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if key, ok := s.keysByFingerprint[query.Fingerprint]; ok {
		return key, true
	}
	if key, ok := s.keysByID[query.ID]; ok {
		return key, true
	}
	return nil, false
}

func (s *KeyStore) fetchKey(query *StoredKey) (*Key, error) {
	if key, ok := s.cached(query); ok {
		return key, nil
	}

	var storedKey StoredKey
	tx := s.db.Where(query).First(&storedKey)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, tx.Error
	}

	decryptedKey, err := s.cipher.Decrypt([]byte(storedKey.ID), storedKey.Key)
	if err != nil {
		return nil, err
	}

	keyInstance, err := signer.NewKey(decryptedKey)
	if err != nil {
		return nil, err
	}

	if storedKey.Fingerprint != keyInstance.Fingerprint() {
		return nil, errors.New("signing key has bad stored fingerprint")
	}

	key := &Key{
		Stored: &storedKey,
		Key:    keyInstance,
	}

	s.mu.Lock()
	s.keysByID[storedKey.ID] = key
	s.keysByFingerprint[storedKey.Fingerprint] = key
	s.mu.Unlock()

	return key, nil
}

// ByID returns the key with the given id.
func (s *KeyStore) ByID(id string) (*Key, error) {
	return s.fetchKey(&StoredKey{ID: id})
}

// ByFingerprint returns the key with the given fingerprint (the kid of
// a signed document).
func (s *KeyStore) ByFingerprint(fingerprint string) (*Key, error) {
	return s.fetchKey(&StoredKey{Fingerprint: fingerprint})
}

// Generate creates a new signing key, persists it encrypted at rest
// under id, and returns it.
func (s *KeyStore) Generate(id string) (*Key, error) {
	keyInstance, err := signer.GenerateKey()
	if err != nil {
		return nil, err
	}

	der, err := keyInstance.Serialize()
	if err != nil {
		return nil, err
	}

	encrypted, err := s.cipher.Encrypt([]byte(id), der)
	if err != nil {
		return nil, err
	}

	storedKey := StoredKey{
		ID:          id,
		Fingerprint: keyInstance.Fingerprint(),
		Key:         encrypted,
		Active:      true,
	}
	if tx := s.db.Create(&storedKey); tx.Error != nil {
		return nil, tx.Error
	}

	key := &Key{Stored: &storedKey, Key: keyInstance}

	s.mu.Lock()
	s.keysByID[id] = key
	s.keysByFingerprint[storedKey.Fingerprint] = key
	s.mu.Unlock()

	return key, nil
}
