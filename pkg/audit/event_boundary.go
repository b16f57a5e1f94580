package audit

import "fmt"

// BoundaryEvent represents a team boundary enforcement audit event.
// Only decisions flagged requires-audit are logged.
type BoundaryEvent struct {
	UserID       string
	ClientIP     string
	RequestID    string
	TargetTeamID string
	Resource     string
	Action       string
	Allowed      bool
	Reason       string
	Scope        string
}

func (e BoundaryEvent) MessageID() string {
	return "boundary"
}

func (e BoundaryEvent) Message() string {
	verdict := "denied"
	if e.Allowed {
		verdict = "allowed"
	}
	return fmt.Sprintf("%s %s %s.%s on team %s (%s)", e.UserID, verdict, e.Resource, e.Action, e.TargetTeamID, e.Reason)
}

func (e BoundaryEvent) Severity() Severity {
	if e.Allowed {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e BoundaryEvent) Facility() int {
	return FacilityAuthPriv
}

func (e BoundaryEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Allowed {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDTenant: {
			"target_team": e.TargetTeamID,
			"scope":       e.Scope,
		},
		SDIDSubject: {
			"resource": e.Resource,
			"action":   e.Action,
		},
		SDIDClient: {
			"ip":         e.ClientIP,
			"request_id": e.RequestID,
		},
		SDIDAction: {
			"operation": "boundary",
			"result":    result,
			"reason":    e.Reason,
		},
	}
}

// EscalationEvent records a detected privilege escalation attempt.
type EscalationEvent struct {
	UserID         string
	ClientIP       string
	RequestedScope string
	ActualScope    string
}

func (e EscalationEvent) MessageID() string {
	return "escalation"
}

func (e EscalationEvent) Message() string {
	return fmt.Sprintf("%s requested scope %s beyond actual scope %s", e.UserID, e.RequestedScope, e.ActualScope)
}

func (e EscalationEvent) Severity() Severity {
	return SeverityAlert
}

func (e EscalationEvent) Facility() int {
	return FacilityAuthPriv
}

func (e EscalationEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDTenant: {
			"requested_scope": e.RequestedScope,
			"actual_scope":    e.ActualScope,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "escalation",
			"result":    "failure",
		},
	}
}
