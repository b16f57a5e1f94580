package authz

//go:generate go run github.com/dmarkham/enumer -type Resource -trimprefix Resource -transform snake-upper -json -output resource.gen.go

// Resource is the closed set of protected resource kinds. Adding a
// resource means extending this enum and the permission matrix, never
// ad-hoc string handling.
type Resource int

const (
	ResourceTeams Resource = iota
	ResourceUsers
	ResourceDevices
	ResourceSupervisorPins
	ResourceTelemetry
	ResourcePolicy
	ResourceAuth
	ResourceSystemSettings
	ResourceAuditLogs
	ResourceSupportTickets
	ResourceOrganization
	ResourceProjects
)

//go:generate go run github.com/dmarkham/enumer -type Action -trimprefix Action -transform snake-upper -json -output action.gen.go

// Action is the closed set of operations on a resource.
type Action int

const (
	ActionRead Action = iota
	ActionCreate
	ActionUpdate
	ActionDelete
	ActionList
	ActionManage
	ActionExecute
	ActionAudit
)

// IsManageClass reports whether the action requires strict hierarchy
// dominance when one role acts on another. Read-class actions are
// permitted between peers.
func (a Action) IsManageClass() bool {
	switch a {
	case ActionManage, ActionUpdate, ActionDelete, ActionCreate, ActionExecute:
		return true
	default:
		return false
	}
}

//go:generate go run github.com/dmarkham/enumer -type Scope -trimprefix Scope -transform snake-upper -json -output scope.gen.go

// Scope is the tenancy breadth a permission applies at.
type Scope int

const (
	ScopeTeam Scope = iota
	ScopeRegion
	ScopeOrganization
	ScopeSystem
)

// Broader reports whether s covers more tenancy than other.
func (s Scope) Broader(other Scope) bool {
	return s > other
}

//go:generate go run github.com/dmarkham/enumer -type RoleName -trimprefix Role -transform snake -json -output rolename.gen.go

// RoleName is one of the nine fixed platform roles.
type RoleName int

const (
	RoleMember RoleName = iota
	RoleFieldSupervisor
	RoleRegionalManager
	RoleSupportAgent
	RoleAuditor
	RoleDeviceManager
	RolePolicyAdmin
	RoleNationalSupport
	RoleSystemAdmin
)
