package audit

import (
	"fmt"
	"strconv"
)

// PolicyIssueEvent records a device policy issuance attempt.
type PolicyIssueEvent struct {
	DeviceID      string
	TeamID        string
	PolicyVersion int
	SigningKeyID  string
	SourceIP      string
	Success       bool
	ErrorCode     string
}

func (e PolicyIssueEvent) MessageID() string {
	return "policy-issue"
}

func (e PolicyIssueEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("policy v%d issued to device %s", e.PolicyVersion, e.DeviceID)
	}
	return fmt.Sprintf("policy issuance failed for device %s: %s", e.DeviceID, e.ErrorCode)
}

func (e PolicyIssueEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e PolicyIssueEvent) Facility() int {
	return FacilityAuth
}

func (e PolicyIssueEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDPolicy: {
			"device":      e.DeviceID,
			"version":     strconv.Itoa(e.PolicyVersion),
			"signing_key": e.SigningKeyID,
		},
		SDIDTenant: {
			"team": e.TeamID,
		},
		SDIDClient: {
			"ip": e.SourceIP,
		},
		SDIDAction: {
			"operation": "policy-issue",
			"result":    result,
			"reason":    e.ErrorCode,
		},
	}
}
