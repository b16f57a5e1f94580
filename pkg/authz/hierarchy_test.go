package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultHierarchyLevels(t *testing.T) {
	h := DefaultHierarchy()

	assert.Equal(t, 10, h.Level("member"))
	assert.Equal(t, 90, h.Level("system_admin"))
	assert.Equal(t, 0, h.Level("intern"))
}

func TestManageClassRequiresStrictDominance(t *testing.T) {
	h := DefaultHierarchy()

	assert.True(t, h.CanRolePerformAction("system_admin", "member", ActionManage))
	assert.False(t, h.CanRolePerformAction("member", "system_admin", ActionManage))
	// Peers never manage each other.
	assert.False(t, h.CanRolePerformAction("auditor", "auditor", ActionManage))
}

func TestReadClassPermitsPeers(t *testing.T) {
	h := DefaultHierarchy()

	assert.True(t, h.CanRolePerformAction("auditor", "auditor", ActionRead))
	assert.True(t, h.CanRolePerformAction("policy_admin", "auditor", ActionList))
	assert.False(t, h.CanRolePerformAction("member", "auditor", ActionRead))
}

func TestUnknownRolesAlwaysDeny(t *testing.T) {
	h := DefaultHierarchy()

	assert.False(t, h.CanRolePerformAction("intern", "member", ActionRead))
	assert.False(t, h.CanRolePerformAction("system_admin", "intern", ActionManage))
}
