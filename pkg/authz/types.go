package authz

import "time"

// Decision reason codes surfaced to audit logging and HTTP collaborators.
const (
	ReasonPermissionGranted       = "PERMISSION_GRANTED"
	ReasonNoPermissions           = "NO_PERMISSIONS"
	ReasonSystemSettingsCheck     = "SYSTEM_SETTINGS_CHECK_ERROR"
	ReasonSystemAdminAccess       = "SYSTEM_ADMIN_ACCESS"
	ReasonProjectDirectAssignment = "PROJECT_DIRECT_ASSIGNMENT"
	ReasonProjectTeamAssignment   = "PROJECT_TEAM_ASSIGNMENT"
)

// EffectivePermission is one resolved permission, tagged with the role
// it was inherited from.
type EffectivePermission struct {
	Resource      Resource `json:"resource"`
	Action        Action   `json:"action"`
	Scope         Scope    `json:"scope"`
	InheritedFrom string   `json:"inherited_from"`
	RoleName      string   `json:"role_name"`
	CrossTeam     bool     `json:"cross_team"`
}

// Key is the dedup key of a permission within an effective set.
func (p EffectivePermission) Key() string {
	return p.Resource.String() + "." + p.Action.String()
}

// EffectivePermissionSet is a user's fully resolved permission set with
// cache metadata. Never served past ExpiresAt.
type EffectivePermissionSet struct {
	UserID      string                `json:"user_id"`
	Permissions []EffectivePermission `json:"permissions"`
	ComputedAt  time.Time             `json:"computed_at"`
	ExpiresAt   time.Time             `json:"expires_at"`
	Version     int64                 `json:"version"`
}

// Find returns the permission matching resource and action, if any.
func (s *EffectivePermissionSet) Find(resource Resource, action Action) (EffectivePermission, bool) {
	for _, p := range s.Permissions {
		if p.Resource == resource && p.Action == action {
			return p, true
		}
	}
	return EffectivePermission{}, false
}

// Context carries the optional request context of a permission check.
type Context struct {
	TeamID         string `json:"team_id,omitempty"`
	ResourceID     string `json:"resource_id,omitempty"`
	OrganizationID string `json:"organization_id,omitempty"`
	RequestID      string `json:"request_id,omitempty"`
}

// CheckResult is the structured outcome of a permission check. Checks
// never return errors to callers; denial is expressed here.
type CheckResult struct {
	Allowed            bool          `json:"allowed"`
	Reason             string        `json:"reason"`
	GrantedBy          string        `json:"granted_by,omitempty"`
	RequiredPermission string        `json:"required_permission"`
	EvaluationTime     time.Duration `json:"evaluation_time"`
}
