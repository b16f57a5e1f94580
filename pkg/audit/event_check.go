package audit

import "fmt"

// CheckEvent represents a permission check audit event
type CheckEvent struct {
	UserID             string
	ClientIP           string
	RequestID          string
	RequiredPermission string
	Allowed            bool
	Reason             string
}

func (e CheckEvent) MessageID() string {
	return "check"
}

func (e CheckEvent) Message() string {
	if e.Allowed {
		return fmt.Sprintf("%s checked permission %s: allowed", e.UserID, e.RequiredPermission)
	}
	return fmt.Sprintf("%s checked permission %s: denied (%s)", e.UserID, e.RequiredPermission, e.Reason)
}

func (e CheckEvent) Severity() Severity {
	if e.Allowed {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e CheckEvent) Facility() int {
	return FacilityAuthPriv
}

func (e CheckEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Allowed {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDSubject: {
			"permission": e.RequiredPermission,
		},
		SDIDClient: {
			"ip":         e.ClientIP,
			"request_id": e.RequestID,
		},
		SDIDAction: {
			"operation": "check",
			"result":    result,
			"reason":    e.Reason,
		},
	}
}
