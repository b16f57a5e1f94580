package boundary

import "github.com/fieldgate/fieldgate/pkg/authz"

//go:generate go run github.com/dmarkham/enumer -type AccessScope -trimprefix AccessScope -transform snake-upper -json -output accessscope.gen.go

// AccessScope is the tenancy breadth a user may operate across, derived
// from their highest-privilege role. Ordering matters: USER < TEAM <
// REGION < ORGANIZATION.
type AccessScope int

const (
	AccessScopeUser AccessScope = iota
	AccessScopeTeam
	AccessScopeRegion
	AccessScopeOrganization
)

// Exceeds reports whether s is broader than other.
func (s AccessScope) Exceeds(other AccessScope) bool {
	return s > other
}

// Boundary decision reason codes.
const (
	ReasonNoTeamAssignment           = "NO_TEAM_ASSIGNMENT"
	ReasonSystemAdminAccess          = "SYSTEM_ADMIN_ACCESS"
	ReasonNationalSupportCrossTeam   = "NATIONAL_SUPPORT_CROSS_TEAM_ACCESS"
	ReasonNationalSupportSysDenied   = "NATIONAL_SUPPORT_SYSTEM_ACCESS_DENIED"
	ReasonRegionalManagerAccess      = "REGIONAL_MANAGER_ACCESS"
	ReasonRegionalBoundaryViolation  = "REGIONAL_MANAGER_REGION_BOUNDARY_VIOLATION"
	ReasonStandardTeamAccess         = "STANDARD_TEAM_ACCESS_GRANTED"
	ReasonTeamBoundaryViolation      = "TEAM_BOUNDARY_VIOLATION"
	ReasonCrossTeamPermissionGranted = "CROSS_TEAM_PERMISSION_GRANTED"
	ReasonCrossTeamPermissionDenied  = "CROSS_TEAM_PERMISSION_DENIED"
	ReasonPrivilegeEscalation        = "PRIVILEGE_ESCALATION_DETECTED"
	ReasonEnforcementError           = "BOUNDARY_ENFORCEMENT_ERROR"
)

// TeamAccess is the resolved tenant reach of a user.
type TeamAccess struct {
	PrimaryTeamID       string      `json:"primary_team_id"`
	AccessibleTeamIDs   []string    `json:"accessible_team_ids"`
	AccessibleRegionIDs []string    `json:"accessible_region_ids"`
	CrossTeamRoles      []string    `json:"cross_team_roles"`
	IsSystemAdmin       bool        `json:"is_system_admin"`
	IsNationalSupport   bool        `json:"is_national_support"`
	IsRegionalManager   bool        `json:"is_regional_manager"`
	AccessScope         AccessScope `json:"access_scope"`
}

// CanReachTeam reports whether teamID is in the user's own team set.
func (a *TeamAccess) CanReachTeam(teamID string) bool {
	for _, id := range a.AccessibleTeamIDs {
		if id == teamID {
			return true
		}
	}
	return false
}

// Context is the transient input to a boundary enforcement; it is never
// persisted.
type Context struct {
	UserID         string         `json:"user_id"`
	TargetTeamID   string         `json:"target_team_id"`
	TargetRegionID string         `json:"target_region_id,omitempty"`
	Action         authz.Action   `json:"action"`
	ResourceType   authz.Resource `json:"resource_type"`
	RequestID      string         `json:"request_id,omitempty"`
}

// Decision is the structured outcome of boundary enforcement. Like
// permission checks, it is returned, never thrown.
type Decision struct {
	Allowed         bool        `json:"allowed"`
	Reason          string      `json:"reason"`
	Scope           AccessScope `json:"scope"`
	AccessedThrough string      `json:"accessed_through,omitempty"`
	RequiresAudit   bool        `json:"requires_audit"`
}
