package policy

import "time"

// SchemaVersion is the current policy document schema. Devices refuse
// documents carrying any other version.
const SchemaVersion = 3

// PIN verification modes accepted by devices.
const (
	PINModeLocal    = "local"
	PINModeServer   = "server"
	PINModeDisabled = "disabled"
)

var pinModes = map[string]bool{
	PINModeLocal:    true,
	PINModeServer:   true,
	PINModeDisabled: true,
}

// Weekday keys of the work window table, Monday first.
var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// WorkWindow is one allowed work interval within a day, local to the
// team's timezone, "HH:MM" 24-hour clock.
type WorkWindow struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// TimeAnchor lets a device with a drifting clock judge document
// freshness against server time.
type TimeAnchor struct {
	NowUTC              time.Time `json:"now_utc"`
	MaxClockSkewSeconds int       `json:"max_clock_skew_seconds"`
	MaxPolicyAgeSeconds int       `json:"max_policy_age_seconds"`
}

// SessionPolicy bounds when and how long field sessions may run.
type SessionPolicy struct {
	WorkWindows        map[string][]WorkWindow `json:"work_windows" yaml:"work_windows"`
	GraceMinutes       int                     `json:"grace_minutes" yaml:"grace_minutes"`
	OverrideCapMinutes int                     `json:"override_cap_minutes" yaml:"override_cap_minutes"`
}

// PINPolicy governs supervisor PIN verification on the device.
type PINPolicy struct {
	Mode            string `json:"mode" yaml:"mode"`
	MinLength       int    `json:"min_length" yaml:"min_length"`
	RetryLimit      int    `json:"retry_limit" yaml:"retry_limit"`
	CooldownSeconds int    `json:"cooldown_seconds" yaml:"cooldown_seconds"`
}

// GPSPolicy sets the location fix cadence and quality thresholds.
type GPSPolicy struct {
	FixIntervalSeconds      int `json:"fix_interval_seconds" yaml:"fix_interval_seconds"`
	MinDisplacementMeters   int `json:"min_displacement_meters" yaml:"min_displacement_meters"`
	AccuracyThresholdMeters int `json:"accuracy_threshold_meters" yaml:"accuracy_threshold_meters"`
	MaxFixAgeSeconds        int `json:"max_fix_age_seconds" yaml:"max_fix_age_seconds"`
}

// TelemetryPolicy sets upload cadence and batching.
type TelemetryPolicy struct {
	HeartbeatSeconds      int `json:"heartbeat_seconds" yaml:"heartbeat_seconds"`
	MaxBatchSize          int `json:"max_batch_size" yaml:"max_batch_size"`
	RetryAttempts         int `json:"retry_attempts" yaml:"retry_attempts"`
	UploadIntervalSeconds int `json:"upload_interval_seconds" yaml:"upload_interval_seconds"`
}

// Payload is the device-facing policy document. The serialized form is
// what gets signed; field order is fixed by the struct.
type Payload struct {
	SchemaVersion int             `json:"schema_version"`
	DeviceID      string          `json:"device_id"`
	TeamID        string          `json:"team_id"`
	Timezone      string          `json:"timezone"`
	ServerTime    TimeAnchor      `json:"server_time"`
	Session       SessionPolicy   `json:"session"`
	PIN           PINPolicy       `json:"pin"`
	GPS           GPSPolicy       `json:"gps"`
	Telemetry     TelemetryPolicy `json:"telemetry"`
	IssuedAt      time.Time       `json:"issued_at"`
	ExpiresAt     time.Time       `json:"expires_at"`
}
