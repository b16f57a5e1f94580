package endpoints

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldgate/fieldgate/pkg/authz"
)

func TestCheckEndpointAllowed(t *testing.T) {
	ts := newTestServer(t)
	ts.allowTokenIssue()
	ts.memberAssignments("user-1", "team-1")

	rec := ts.request(t, "POST", "/authz/check", ts.accessToken(t, "user-1"),
		`{"resource":"DEVICES","action":"READ"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result authz.CheckResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Allowed)
	assert.Equal(t, authz.ReasonPermissionGranted, result.Reason)
	assert.Equal(t, "DEVICES.READ", result.RequiredPermission)
}

func TestCheckEndpointDenied(t *testing.T) {
	ts := newTestServer(t)
	ts.allowTokenIssue()
	ts.memberAssignments("user-1", "team-1")

	rec := ts.request(t, "POST", "/authz/check", ts.accessToken(t, "user-1"),
		`{"resource":"DEVICES","action":"DELETE"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)

	var result authz.CheckResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Allowed)
	assert.Equal(t, authz.ReasonNoPermissions, result.Reason)
}

func TestCheckEndpointUnknownResource(t *testing.T) {
	ts := newTestServer(t)
	ts.allowTokenIssue()

	rec := ts.request(t, "POST", "/authz/check", ts.accessToken(t, "user-1"),
		`{"resource":"WIDGETS","action":"READ"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckEndpointRequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, "POST", "/authz/check", "", `{"resource":"DEVICES","action":"READ"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPermissionsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.allowTokenIssue()
	ts.memberAssignments("user-1", "team-1")

	rec := ts.request(t, "GET", "/authz/permissions", ts.accessToken(t, "user-1"), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var set authz.EffectivePermissionSet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &set))
	assert.Equal(t, "user-1", set.UserID)
	require.Len(t, set.Permissions, 1)
	assert.Equal(t, authz.ResourceDevices, set.Permissions[0].Resource)
}
