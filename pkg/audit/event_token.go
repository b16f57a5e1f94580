package audit

import "fmt"

// TokenRevokedEvent records a revocation-ledger append.
type TokenRevokedEvent struct {
	JTI       string
	UserID    string
	SessionID string
	Reason    string
	RevokedBy string
	ClientIP  string
}

func (e TokenRevokedEvent) MessageID() string {
	return "revoke"
}

func (e TokenRevokedEvent) Message() string {
	by := e.RevokedBy
	if by == "" {
		by = "system"
	}
	return fmt.Sprintf("token %s revoked by %s: %s", e.JTI, by, e.Reason)
}

func (e TokenRevokedEvent) Severity() Severity {
	return SeverityNotice
}

func (e TokenRevokedEvent) Facility() int {
	return FacilityAuth
}

func (e TokenRevokedEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user":       e.UserID,
			"session":    e.SessionID,
			"revoked_by": e.RevokedBy,
		},
		SDIDSubject: {
			"jti": e.JTI,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "revoke",
			"result":    "success",
			"reason":    e.Reason,
		},
	}
}

// VerifyEvent records a failed credential verification. Successful
// verifications are not audited; they happen on every request.
type VerifyEvent struct {
	UserID       string
	ClientIP     string
	ExpectedType string
	ErrorMessage string
}

func (e VerifyEvent) MessageID() string {
	return "verify"
}

func (e VerifyEvent) Message() string {
	return fmt.Sprintf("credential verification failed (%s expected): %s", e.ExpectedType, e.ErrorMessage)
}

func (e VerifyEvent) Severity() Severity {
	return SeverityWarning
}

func (e VerifyEvent) Facility() int {
	return FacilityAuth
}

func (e VerifyEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDSubject: {
			"expected_type": e.ExpectedType,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "verify",
			"result":    "failure",
			"reason":    e.ErrorMessage,
		},
	}
}
