// Package policy builds, signs, and records the device policy
// documents that tell field devices their allowed work windows, PIN
// rules, and GPS/telemetry cadence.
package policy

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/fieldgate/fieldgate/pkg/metrics"
	"github.com/fieldgate/fieldgate/pkg/store"
)

// Issuance error codes.
const (
	ErrCodeDeviceNotFound = "DEVICE_NOT_FOUND"
	ErrCodeTeamNotFound   = "TEAM_NOT_FOUND"
	ErrCodeSigningError   = "POLICY_SIGNING_ERROR"
	ErrCodeInternalError  = "INTERNAL_ERROR"
)

// jwsType is the typ header of signed policy documents.
const jwsType = "policy+jws"

// reissueWindow is how long an issued document is handed back verbatim
// to rapid repeated calls for the same device.
const reissueWindow = 30 * time.Second

// Signer is the slice of the credential signer the engine needs.
type Signer interface {
	SignCompact(payload []byte, typ string) (string, error)
	PublicPem() []byte
	Fingerprint() string
}

// IssueResult is the outcome of a policy issuance. Failures carry an
// error code, never a Go error; only the transport decides status.
type IssueResult struct {
	Success       bool       `json:"success"`
	JWS           string     `json:"jws,omitempty"`
	Payload       *Payload   `json:"payload,omitempty"`
	PolicyVersion int        `json:"policy_version,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	Error         string     `json:"error,omitempty"`
}

type cachedIssue struct {
	result   IssueResult
	cachedAt time.Time
}

// Engine assembles and signs policy documents. Safe for concurrent use;
// the per-device reissue cache and the live defaults are the only
// mutable state, both guarded by mu.
type Engine struct {
	devices  store.DeviceStore
	teams    store.TeamStore
	issues   store.PolicyIssueStore
	signer   Signer
	defaults Defaults

	mu     sync.Mutex
	recent map[string]cachedIssue

	// now is swapped in tests.
	now func() time.Time
}

func NewEngine(devices store.DeviceStore, teams store.TeamStore, issues store.PolicyIssueStore, signer Signer, defaults Defaults) *Engine {
	return &Engine{
		devices:  devices,
		teams:    teams,
		issues:   issues,
		signer:   signer,
		defaults: defaults,
		recent:   map[string]cachedIssue{},
		now:      time.Now,
	}
}

// IssuePolicy builds, signs, and records a policy document for a
// device. Rapid repeated calls within the reissue window return the
// previous document unchanged.
func (e *Engine) IssuePolicy(ctx context.Context, deviceID, sourceIP string) IssueResult {
	if cached, ok := e.cachedResult(deviceID); ok {
		return cached
	}

	result := e.issue(ctx, deviceID, sourceIP)
	metrics.ObservePolicyIssue(issueOutcome(result))

	if result.Success {
		e.mu.Lock()
		e.recent[deviceID] = cachedIssue{result: result, cachedAt: e.now()}
		e.mu.Unlock()
	}
	return result
}

func (e *Engine) issue(ctx context.Context, deviceID, sourceIP string) IssueResult {
	device, err := e.devices.FetchDevice(ctx, deviceID)
	if err != nil {
		log.Printf("policy: device lookup failed for %s: %v", deviceID, err)
		return IssueResult{Error: ErrCodeInternalError}
	}
	if device == nil || !device.Active {
		return IssueResult{Error: ErrCodeDeviceNotFound}
	}

	team, err := e.teams.FetchTeam(ctx, device.TeamID)
	if err != nil {
		log.Printf("policy: team lookup failed for %s: %v", device.TeamID, err)
		return IssueResult{Error: ErrCodeInternalError}
	}
	if team == nil || !team.Active {
		return IssueResult{Error: ErrCodeTeamNotFound}
	}

	defs := e.currentDefaults()
	now := e.now().UTC()
	expiresAt := now.Add(defs.DocumentTTL)

	payload := &Payload{
		SchemaVersion: SchemaVersion,
		DeviceID:      device.ID,
		TeamID:        team.ID,
		Timezone:      team.Timezone,
		ServerTime: TimeAnchor{
			NowUTC:              now,
			MaxClockSkewSeconds: defs.MaxClockSkewSeconds,
			MaxPolicyAgeSeconds: defs.MaxPolicyAgeSeconds,
		},
		Session:   defs.Session,
		PIN:       defs.PIN,
		GPS:       defs.GPS,
		Telemetry: defs.Telemetry,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}

	serialized, err := json.Marshal(payload)
	if err != nil {
		log.Printf("policy: payload serialization failed for %s: %v", deviceID, err)
		return IssueResult{Error: ErrCodeInternalError}
	}

	jws, err := e.signer.SignCompact(serialized, jwsType)
	if err != nil {
		log.Printf("policy: signing failed for %s: %v", deviceID, err)
		return IssueResult{Error: ErrCodeSigningError}
	}

	issue := &store.PolicyIssue{
		DeviceID:      device.ID,
		PolicyVersion: SchemaVersion,
		SigningKeyID:  e.signer.Fingerprint(),
		Payload:       string(serialized),
		IssuedAt:      now,
		ExpiresAt:     expiresAt,
		SourceIP:      sourceIP,
	}
	if err := e.issues.RecordIssue(ctx, issue); err != nil {
		log.Printf("policy: issuance record failed for %s: %v", deviceID, err)
		return IssueResult{Error: ErrCodeInternalError}
	}

	// Last-seen is advisory; a failed touch does not void the document.
	if err := e.devices.TouchLastSeen(ctx, device.ID, now); err != nil {
		log.Printf("policy: last-seen touch failed for %s: %v", deviceID, err)
	}

	return IssueResult{
		Success:       true,
		JWS:           jws,
		Payload:       payload,
		PolicyVersion: SchemaVersion,
		ExpiresAt:     &expiresAt,
	}
}

func (e *Engine) cachedResult(deviceID string) (IssueResult, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cached, ok := e.recent[deviceID]
	if !ok || e.now().Sub(cached.cachedAt) > reissueWindow {
		return IssueResult{}, false
	}
	return cached.result, true
}

// InvalidateDevice drops the reissue cache entry so the next call
// builds a fresh document.
func (e *Engine) InvalidateDevice(deviceID string) {
	e.mu.Lock()
	delete(e.recent, deviceID)
	e.mu.Unlock()
}

func (e *Engine) currentDefaults() Defaults {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.defaults
}

// SetDefaults swaps the live issuance defaults and drops every reissue
// cache entry; documents issued after the swap carry the new values.
func (e *Engine) SetDefaults(d Defaults) {
	e.mu.Lock()
	e.defaults = d
	e.recent = map[string]cachedIssue{}
	e.mu.Unlock()
}

// PublicKeyPem returns the signing key's public half for offline
// client-side verification.
func (e *Engine) PublicKeyPem() []byte {
	return e.signer.PublicPem()
}

// RecentIssues returns the newest issuance records for a device, newest
// first. Unknown devices yield an empty list.
func (e *Engine) RecentIssues(ctx context.Context, deviceID string, limit int) ([]store.PolicyIssue, error) {
	return e.issues.RecentIssues(ctx, deviceID, limit)
}

func issueOutcome(r IssueResult) string {
	if r.Success {
		return "issued"
	}
	return r.Error
}
