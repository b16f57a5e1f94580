package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/fieldgate/fieldgate/pkg/authz"
	"github.com/fieldgate/fieldgate/pkg/store"
	gormstore "github.com/fieldgate/fieldgate/pkg/store/gorm"
	"github.com/fieldgate/fieldgate/pkg/token"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	accessToken  string
	refreshToken string
	accessJTI    string
	sessionID    string
	userID       string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{tc: tc}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Background steps
	sc.Step(`^a Fieldgate server is running$`, s.aFieldgateServerIsRunning)
	sc.Step(`^a region "([^"]*)" exists$`, s.aRegionExists)
	sc.Step(`^a team "([^"]*)" exists in region "([^"]*)"$`, s.aTeamExistsInRegion)
	sc.Step(`^a device "([^"]*)" is enrolled to team "([^"]*)"$`, s.aDeviceIsEnrolledToTeam)
	sc.Step(`^role "([^"]*)" grants "([^"]*)" "([^"]*)" at "([^"]*)" scope$`, s.roleGrants)
	sc.Step(`^user "([^"]*)" is assigned role "([^"]*)" on team "([^"]*)"$`, s.userIsAssignedRole)

	// Credential steps
	sc.Step(`^I hold an access token for user "([^"]*)" on team "([^"]*)"$`, s.iHoldAnAccessToken)
	sc.Step(`^I hold a refresh token for user "([^"]*)" on team "([^"]*)"$`, s.iHoldARefreshToken)
	sc.Step(`^my access token is revoked$`, s.myAccessTokenIsRevoked)
	sc.Step(`^I refresh my session$`, s.iRefreshMySession)
	sc.Step(`^I refresh using my access token$`, s.iRefreshUsingMyAccessToken)
	sc.Step(`^I refresh with token "([^"]*)"$`, s.iRefreshWithToken)
	sc.Step(`^I should receive a new access token$`, s.iShouldReceiveANewAccessToken)

	// Authorization steps
	sc.Step(`^I check permission "([^"]*)" "([^"]*)"$`, s.iCheckPermission)
	sc.Step(`^I request my effective permissions$`, s.iRequestMyEffectivePermissions)
	sc.Step(`^the check should be allowed$`, s.theCheckShouldBeAllowed)
	sc.Step(`^the check should be denied with reason "([^"]*)"$`, s.theCheckShouldBeDenied)

	// Boundary steps
	sc.Step(`^I enforce the boundary against team "([^"]*)" for "([^"]*)" "([^"]*)"$`, s.iEnforceTheBoundary)
	sc.Step(`^the boundary decision reason should be "([^"]*)"$`, s.theBoundaryReasonShouldBe)

	// Policy steps
	sc.Step(`^I request a policy document for device "([^"]*)"$`, s.iRequestAPolicyDocument)
	sc.Step(`^the response should contain a signed policy document$`, s.theResponseShouldContainASignedPolicyDocument)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response error should be "([^"]*)"$`, s.theResponseErrorShouldBe)
}

// Background steps

func (s *StepsContext) aFieldgateServerIsRunning() error {
	// Server is already running via TestContext
	return nil
}

func (s *StepsContext) aRegionExists(regionID string) error {
	return s.tc.DB.Exec(`
		INSERT INTO regions (id, name, active) VALUES (?, ?, true)
		ON CONFLICT (id) DO NOTHING
	`, regionID, regionID).Error
}

func (s *StepsContext) aTeamExistsInRegion(teamID, regionID string) error {
	if err := s.aRegionExists(regionID); err != nil {
		return err
	}
	return s.tc.DB.Exec(`
		INSERT INTO teams (id, name, region_id, timezone, active) VALUES (?, ?, ?, 'UTC', true)
		ON CONFLICT (id) DO NOTHING
	`, teamID, teamID, regionID).Error
}

func (s *StepsContext) aDeviceIsEnrolledToTeam(deviceID, teamID string) error {
	return s.tc.DB.Exec(`
		INSERT INTO devices (id, team_id, name, active) VALUES (?, ?, ?, true)
		ON CONFLICT (id) DO NOTHING
	`, deviceID, teamID, deviceID).Error
}

func (s *StepsContext) roleGrants(roleName, resource, action, scope string) error {
	if _, err := authz.RoleNameString(roleName); err != nil {
		return fmt.Errorf("unknown role %q", roleName)
	}

	roleID := "role-" + roleName
	level := authz.DefaultHierarchy().Level(roleName)
	if err := s.tc.DB.Exec(`
		INSERT INTO roles (id, name, hierarchy_level, is_system_role, active) VALUES (?, ?, ?, false, true)
		ON CONFLICT (id) DO NOTHING
	`, roleID, roleName, level).Error; err != nil {
		return err
	}

	permID := strings.ToLower(fmt.Sprintf("perm-%s-%s-%s", resource, action, scope))
	if err := s.tc.DB.Exec(`
		INSERT INTO permissions (id, resource, action, scope, active) VALUES (?, ?, ?, ?, true)
		ON CONFLICT (id) DO NOTHING
	`, permID, resource, action, scope).Error; err != nil {
		return err
	}

	return s.tc.DB.Exec(`
		INSERT INTO role_permissions (role_id, permission_id, cross_team) VALUES (?, ?, false)
		ON CONFLICT DO NOTHING
	`, roleID, permID).Error
}

func (s *StepsContext) userIsAssignedRole(userID, roleName, teamID string) error {
	assignmentID := fmt.Sprintf("assign-%s-%s-%s", userID, roleName, teamID)
	return s.tc.DB.Exec(`
		INSERT INTO user_role_assignments (id, user_id, role_id, team_id, active) VALUES (?, ?, ?, ?, true)
		ON CONFLICT (id) DO NOTHING
	`, assignmentID, userID, "role-"+roleName, teamID).Error
}

// Credential steps

func (s *StepsContext) mintToken(userID, teamID string, typ token.Type) (*token.Issued, error) {
	s.userID = userID
	s.sessionID = "session-" + userID
	deviceID := "device-" + userID

	sessions := gormstore.NewSessionStore(s.tc.DB)
	_ = sessions.CreateSession(context.Background(), &store.Session{
		ID:        s.sessionID,
		UserID:    userID,
		TeamID:    teamID,
		DeviceID:  deviceID,
		Status:    "open",
		ExpiresAt: time.Now().Add(8 * time.Hour),
	})

	return s.tc.Tokens.CreateToken(context.Background(), userID, deviceID, s.sessionID, teamID, typ)
}

func (s *StepsContext) iHoldAnAccessToken(userID, teamID string) error {
	issued, err := s.mintToken(userID, teamID, token.TypeAccess)
	if err != nil {
		return err
	}
	s.accessToken = issued.Token
	s.accessJTI = issued.JTI
	return nil
}

func (s *StepsContext) iHoldARefreshToken(userID, teamID string) error {
	issued, err := s.mintToken(userID, teamID, token.TypeRefresh)
	if err != nil {
		return err
	}
	s.refreshToken = issued.Token
	return nil
}

func (s *StepsContext) myAccessTokenIsRevoked() error {
	return s.tc.Tokens.RevokeToken(context.Background(), s.accessJTI, "integration_test", "harness")
}

func (s *StepsContext) iRefreshMySession() error {
	return s.iRefreshWithToken(s.refreshToken)
}

func (s *StepsContext) iRefreshUsingMyAccessToken() error {
	return s.iRefreshWithToken(s.accessToken)
}

func (s *StepsContext) iRefreshWithToken(refreshToken string) error {
	body, _ := json.Marshal(map[string]string{"refresh_token": refreshToken})
	return s.doRequest("POST", "/tokens/refresh", body, false)
}

func (s *StepsContext) iShouldReceiveANewAccessToken() error {
	var resp map[string]any
	if err := json.Unmarshal(s.responseBody, &resp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	accessToken, _ := resp["access_token"].(string)
	if accessToken == "" {
		return fmt.Errorf("missing access_token in response: %s", string(s.responseBody))
	}
	if tokenType, _ := resp["token_type"].(string); tokenType != "Bearer" {
		return fmt.Errorf("expected token_type Bearer, got %q", tokenType)
	}
	return nil
}

// Authorization steps

func (s *StepsContext) iCheckPermission(resource, action string) error {
	body, _ := json.Marshal(map[string]string{"resource": resource, "action": action})
	return s.doRequest("POST", "/authz/check", body, true)
}

func (s *StepsContext) iRequestMyEffectivePermissions() error {
	return s.doRequest("GET", "/authz/permissions", nil, true)
}

func (s *StepsContext) theCheckShouldBeAllowed() error {
	var result map[string]any
	if err := json.Unmarshal(s.responseBody, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if allowed, _ := result["allowed"].(bool); !allowed {
		return fmt.Errorf("expected allowed check, got: %s", string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theCheckShouldBeDenied(reason string) error {
	var result map[string]any
	if err := json.Unmarshal(s.responseBody, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if allowed, _ := result["allowed"].(bool); allowed {
		return fmt.Errorf("expected denied check, got: %s", string(s.responseBody))
	}
	if actual, _ := result["reason"].(string); actual != reason {
		return fmt.Errorf("expected reason %q, got %q", reason, actual)
	}
	return nil
}

// Boundary steps

func (s *StepsContext) iEnforceTheBoundary(teamID, resource, action string) error {
	body, _ := json.Marshal(map[string]string{
		"target_team_id": teamID,
		"resource":       resource,
		"action":         action,
	})
	return s.doRequest("POST", "/boundary/enforce", body, true)
}

func (s *StepsContext) theBoundaryReasonShouldBe(reason string) error {
	var result map[string]any
	if err := json.Unmarshal(s.responseBody, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if actual, _ := result["reason"].(string); actual != reason {
		return fmt.Errorf("expected reason %q, got %q: %s", reason, actual, string(s.responseBody))
	}
	return nil
}

// Policy steps

func (s *StepsContext) iRequestAPolicyDocument(deviceID string) error {
	return s.doRequest("POST", "/devices/"+deviceID+"/policy", nil, true)
}

func (s *StepsContext) theResponseShouldContainASignedPolicyDocument() error {
	var result map[string]any
	if err := json.Unmarshal(s.responseBody, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	jws, _ := result["jws"].(string)
	if jws == "" {
		return fmt.Errorf("missing jws in response: %s", string(s.responseBody))
	}
	if strings.Count(jws, ".") != 2 {
		return fmt.Errorf("jws is not in compact form: %s", jws)
	}
	return nil
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(expectedStatus int) error {
	if s.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d: %s", expectedStatus, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseErrorShouldBe(expected string) error {
	var result map[string]any
	if err := json.Unmarshal(s.responseBody, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if actual, _ := result["error"].(string); actual != expected {
		return fmt.Errorf("expected error %q, got %q", expected, actual)
	}
	return nil
}

func (s *StepsContext) doRequest(method, path string, body []byte, authed bool) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, s.tc.ServerURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+s.accessToken)
	}

	s.response, err = s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}

	s.responseBody, err = io.ReadAll(s.response.Body)
	_ = s.response.Body.Close()
	return err
}
