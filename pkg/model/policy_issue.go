package model

import "time"

// PolicyIssue is the append-only audit trail of device policy issuance;
// one row per issued document.
type PolicyIssue struct {
	ID            string    `gorm:"column:id;primaryKey"`
	DeviceID      string    `gorm:"column:device_id;not null;index"`
	PolicyVersion int       `gorm:"column:policy_version;not null"`
	SigningKeyID  string    `gorm:"column:signing_key_id;not null"`
	Payload       string    `gorm:"column:payload;not null"`
	IssuedAt      time.Time `gorm:"column:issued_at;autoCreateTime"`
	ExpiresAt     time.Time `gorm:"column:expires_at;not null"`
	SourceIP      string    `gorm:"column:source_ip"`
}

func (PolicyIssue) TableName() string {
	return "policy_issues"
}
