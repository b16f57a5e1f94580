package endpoints

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fieldgate/fieldgate/pkg/authz"
	"github.com/fieldgate/fieldgate/pkg/authz/cache"
	"github.com/fieldgate/fieldgate/pkg/boundary"
	"github.com/fieldgate/fieldgate/pkg/config"
	"github.com/fieldgate/fieldgate/pkg/policy"
	"github.com/fieldgate/fieldgate/pkg/server"
	"github.com/fieldgate/fieldgate/pkg/signer"
	"github.com/fieldgate/fieldgate/pkg/store"
	"github.com/fieldgate/fieldgate/pkg/token"
)

var testKey *signer.Key

func init() {
	var err error
	testKey, err = signer.GenerateKey()
	if err != nil {
		panic(err)
	}
}

// testServer bundles the server with the mocks behind it so tests can
// program expectations.
type testServer struct {
	srv      *server.Server
	roles    *MockRoleStore
	projects *MockProjectStore
	teams    *MockTeamStore
	devices  *MockDeviceStore
	issues   *MockPolicyIssueStore
	tokens   *MockTokenStore
	sessions *MockSessionStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ts := &testServer{
		roles:    NewMockRoleStore(),
		projects: NewMockProjectStore(),
		teams:    NewMockTeamStore(),
		devices:  NewMockDeviceStore(),
		issues:   NewMockPolicyIssueStore(),
		tokens:   NewMockTokenStore(),
		sessions: NewMockSessionStore(),
	}

	cfg := &config.Config{ListenAddress: ":0", MetricsEnabled: false}

	tokenService := token.NewService(testKey, ts.tokens, ts.sessions, token.DefaultTTLs())
	authzEngine := authz.NewEngine(ts.roles, ts.projects, cache.New(nil, time.Minute), nil)
	boundaryEngine := boundary.NewEngine(authzEngine, ts.teams)
	policyEngine := policy.NewEngine(ts.devices, ts.teams, ts.issues, testKey, policy.DefaultDefaults())

	ts.srv = server.NewServer(cfg, nil, tokenService, authzEngine, boundaryEngine, policyEngine)
	RegisterAll(ts.srv)
	return ts
}

// allowTokenIssue programs the token store for issue and verify.
func (ts *testServer) allowTokenIssue() {
	ts.tokens.On("RecordIssued", mock.Anything, mock.Anything).Return(nil)
	ts.tokens.On("IsRevoked", mock.Anything, mock.Anything).Return(false, nil)
}

func (ts *testServer) accessToken(t *testing.T, userID string) string {
	t.Helper()
	issued, err := ts.srv.Tokens.CreateToken(context.Background(), userID, "device-1", "session-1", "team-1", token.TypeAccess)
	require.NoError(t, err)
	return issued.Token
}

func (ts *testServer) request(t *testing.T, method, path, bearer, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	r := httptest.NewRequest(method, path, reader)
	if bearer != "" {
		r.Header.Set("Authorization", "Bearer "+bearer)
	}
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	ts.srv.Router.ServeHTTP(rec, r)
	return rec
}

// memberAssignments programs the role store with a plain team member.
func (ts *testServer) memberAssignments(userID, teamID string) {
	a := store.RoleAssignment{
		ID:             "assignment-1",
		UserID:         userID,
		RoleID:         "role-member",
		RoleName:       "member",
		HierarchyLevel: 10,
		TeamID:         teamID,
	}
	ts.roles.On("ActiveAssignments", mock.Anything, userID).
		Return([]store.RoleAssignment{a}, nil)
	ts.roles.On("InheritedRoleIDs", mock.Anything, []string{"role-member"}).
		Return([]string{"role-member"}, nil)
	ts.roles.On("PermissionsForRoles", mock.Anything, []string{"role-member"}).
		Return([]store.PermissionGrant{{
			PermissionID: "perm-1",
			RoleID:       "role-member",
			RoleName:     "member",
			Resource:     "DEVICES",
			Action:       "READ",
			Scope:        "TEAM",
		}}, nil)
}
