package model

import "time"

// TokenRevocation is a ledger entry keyed by JTI. The ledger is
// append-only; rows are only removed by scheduled retention cleanup.
// A token is revoked iff a row exists with RevokedAt <= now.
type TokenRevocation struct {
	JTI       string    `gorm:"column:jti;primaryKey"`
	SessionID string    `gorm:"column:session_id;index"`
	UserID    string    `gorm:"column:user_id;index"`
	Reason    string    `gorm:"column:reason;not null"`
	RevokedBy string    `gorm:"column:revoked_by"`
	RevokedAt time.Time `gorm:"column:revoked_at;autoCreateTime"`
}

func (TokenRevocation) TableName() string {
	return "token_revocations"
}

// IssuedToken records an outstanding credential so that all tokens tied
// to a session can be revoked together on logout.
type IssuedToken struct {
	JTI       string    `gorm:"column:jti;primaryKey"`
	UserID    string    `gorm:"column:user_id;index"`
	SessionID string    `gorm:"column:session_id;index"`
	Type      string    `gorm:"column:type;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
	IssuedAt  time.Time `gorm:"column:issued_at;autoCreateTime"`
}

func (IssuedToken) TableName() string {
	return "issued_tokens"
}
