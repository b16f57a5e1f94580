package authz

// Hierarchy maps role names to hierarchy levels. Levels are a
// deployment-time constant table loaded from configuration; they never
// change at runtime. Higher means more privilege, and equal levels are
// peers, never subordinates.
type Hierarchy map[string]int

// DefaultHierarchy returns the default level table for the nine fixed
// roles. Deployments may override the numbers, not the names.
func DefaultHierarchy() Hierarchy {
	return Hierarchy{
		RoleMember.String():          10,
		RoleFieldSupervisor.String(): 20,
		RoleRegionalManager.String(): 30,
		RoleSupportAgent.String():    40,
		RoleAuditor.String():         50,
		RoleDeviceManager.String():   60,
		RolePolicyAdmin.String():     70,
		RoleNationalSupport.String(): 80,
		RoleSystemAdmin.String():     90,
	}
}

// Level returns the hierarchy level for a role name, or 0 for unknown
// names.
func (h Hierarchy) Level(roleName string) int {
	return h[roleName]
}

// CanRolePerformAction decides, from hierarchy levels alone, whether a
// role may perform an action on another role. Manage-class actions
// require strict dominance; read-class actions are permitted between
// peers. Unknown role names always deny. No I/O.
func (h Hierarchy) CanRolePerformAction(actor, target string, action Action) bool {
	actorLevel, ok := h[actor]
	if !ok {
		return false
	}
	targetLevel, ok := h[target]
	if !ok {
		return false
	}

	if action.IsManageClass() {
		return actorLevel > targetLevel
	}
	return actorLevel >= targetLevel
}
