package store

import "time"

// StoredKey is a signing key encrypted at rest. Key holds the AES-GCM
// packed ciphertext of the PKCS1 DER private key, with the key id as
// additional authenticated data.
type StoredKey struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Fingerprint string    `gorm:"column:fingerprint;uniqueIndex"`
	Key         []byte    `gorm:"column:key;not null"`
	Active      bool      `gorm:"column:active;not null;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (StoredKey) TableName() string {
	return "signing_keys"
}
