package endpoints

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldgate/fieldgate/pkg/boundary"
)

func TestEnforceEndpointStandardTeamAccess(t *testing.T) {
	ts := newTestServer(t)
	ts.allowTokenIssue()
	ts.memberAssignments("user-1", "team-1")

	rec := ts.request(t, "POST", "/boundary/enforce", ts.accessToken(t, "user-1"),
		`{"target_team_id":"team-1","resource":"DEVICES","action":"READ"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var decision boundary.Decision
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decision))
	assert.True(t, decision.Allowed)
	assert.Equal(t, boundary.ReasonStandardTeamAccess, decision.Reason)
}

func TestEnforceEndpointTeamViolation(t *testing.T) {
	ts := newTestServer(t)
	ts.allowTokenIssue()
	ts.memberAssignments("user-1", "team-1")

	rec := ts.request(t, "POST", "/boundary/enforce", ts.accessToken(t, "user-1"),
		`{"target_team_id":"team-9","resource":"DEVICES","action":"DELETE"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)

	var decision boundary.Decision
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decision))
	assert.False(t, decision.Allowed)
	assert.Equal(t, boundary.ReasonTeamBoundaryViolation, decision.Reason)
}

func TestEnforceEndpointCrossTeamDenied(t *testing.T) {
	// The member does hold DEVICES.READ, but the grant is not marked
	// cross-team, so it cannot carry them past the boundary.
	ts := newTestServer(t)
	ts.allowTokenIssue()
	ts.memberAssignments("user-1", "team-1")

	rec := ts.request(t, "POST", "/boundary/enforce", ts.accessToken(t, "user-1"),
		`{"target_team_id":"team-9","resource":"DEVICES","action":"READ"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)

	var decision boundary.Decision
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decision))
	assert.Equal(t, boundary.ReasonCrossTeamPermissionDenied, decision.Reason)
}

func TestEnforceEndpointEscalationDetected(t *testing.T) {
	ts := newTestServer(t)
	ts.allowTokenIssue()
	ts.memberAssignments("user-1", "team-1")

	rec := ts.request(t, "POST", "/boundary/enforce", ts.accessToken(t, "user-1"),
		`{"target_team_id":"team-1","resource":"DEVICES","action":"READ","requested_scope":"ORGANIZATION"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)

	var decision boundary.Decision
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decision))
	assert.False(t, decision.Allowed)
	assert.Equal(t, boundary.ReasonPrivilegeEscalation, decision.Reason)
}

func TestEnforceEndpointScopeWithinReach(t *testing.T) {
	ts := newTestServer(t)
	ts.allowTokenIssue()
	ts.memberAssignments("user-1", "team-1")

	rec := ts.request(t, "POST", "/boundary/enforce", ts.accessToken(t, "user-1"),
		`{"target_team_id":"team-1","resource":"DEVICES","action":"READ","requested_scope":"TEAM"}`)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestEnforceEndpointUnknownScope(t *testing.T) {
	ts := newTestServer(t)
	ts.allowTokenIssue()
	ts.memberAssignments("user-1", "team-1")

	rec := ts.request(t, "POST", "/boundary/enforce", ts.accessToken(t, "user-1"),
		`{"target_team_id":"team-1","resource":"DEVICES","action":"READ","requested_scope":"GALAXY"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEnforceEndpointUnknownAction(t *testing.T) {
	ts := newTestServer(t)
	ts.allowTokenIssue()

	rec := ts.request(t, "POST", "/boundary/enforce", ts.accessToken(t, "user-1"),
		`{"target_team_id":"team-1","resource":"DEVICES","action":"FROB"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTeamAccessEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.allowTokenIssue()
	ts.memberAssignments("user-1", "team-1")

	rec := ts.request(t, "GET", "/boundary/access", ts.accessToken(t, "user-1"), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var access boundary.TeamAccess
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &access))
	assert.Equal(t, "team-1", access.PrimaryTeamID)
	assert.Equal(t, boundary.AccessScopeTeam, access.AccessScope)
}
