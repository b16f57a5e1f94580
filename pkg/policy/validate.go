package policy

import (
	"encoding/json"
	"fmt"
	"regexp"
)

var clockRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// requiredFields of the serialized payload, checked for presence before
// any range validation.
var requiredFields = []string{
	"schema_version", "device_id", "team_id", "timezone",
	"server_time", "session", "pin", "gps", "telemetry",
	"issued_at", "expires_at",
}

// ValidationResult reports structural payload problems. It does not
// verify a signature.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidatePayload structurally validates a serialized policy payload:
// required fields present, enum membership, numeric ranges.
func ValidatePayload(raw []byte) ValidationResult {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ValidationResult{Errors: []string{"payload is not a JSON object"}}
	}

	var errs []string
	for _, field := range requiredFields {
		if _, ok := fields[field]; !ok {
			errs = append(errs, fmt.Sprintf("missing required field %q", field))
		}
	}
	if len(errs) > 0 {
		return ValidationResult{Errors: errs}
	}

	var payload Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ValidationResult{Errors: []string{fmt.Sprintf("malformed payload: %v", err)}}
	}

	if payload.SchemaVersion != SchemaVersion {
		errs = append(errs, fmt.Sprintf("schema_version %d is not the current version %d", payload.SchemaVersion, SchemaVersion))
	}
	if payload.DeviceID == "" {
		errs = append(errs, "device_id is empty")
	}
	if payload.TeamID == "" {
		errs = append(errs, "team_id is empty")
	}
	if payload.Timezone == "" {
		errs = append(errs, "timezone is empty")
	}

	if !pinModes[payload.PIN.Mode] {
		errs = append(errs, fmt.Sprintf("pin mode %q is not one of local, server, disabled", payload.PIN.Mode))
	}
	if payload.PIN.MinLength < 4 || payload.PIN.MinLength > 12 {
		errs = append(errs, "pin min_length must be between 4 and 12")
	}
	if payload.PIN.RetryLimit < 1 {
		errs = append(errs, "pin retry_limit must be at least 1")
	}
	if payload.PIN.CooldownSeconds < 0 {
		errs = append(errs, "pin cooldown_seconds may not be negative")
	}

	if payload.Session.GraceMinutes < 0 {
		errs = append(errs, "session grace_minutes may not be negative")
	}
	if payload.Session.OverrideCapMinutes < 0 || payload.Session.OverrideCapMinutes > 120 {
		errs = append(errs, "session override_cap_minutes must be between 0 and 120")
	}
	for day, windows := range payload.Session.WorkWindows {
		known := false
		for _, w := range weekdays {
			if day == w {
				known = true
				break
			}
		}
		if !known {
			errs = append(errs, fmt.Sprintf("unknown weekday %q in work_windows", day))
			continue
		}
		for _, window := range windows {
			if !clockRe.MatchString(window.Start) || !clockRe.MatchString(window.End) {
				errs = append(errs, fmt.Sprintf("work window %s-%s on %s is not HH:MM", window.Start, window.End, day))
			}
		}
	}

	if payload.GPS.FixIntervalSeconds <= 0 {
		errs = append(errs, "gps fix_interval_seconds must be positive")
	}
	if payload.GPS.AccuracyThresholdMeters <= 0 {
		errs = append(errs, "gps accuracy_threshold_meters must be positive")
	}
	if payload.GPS.MaxFixAgeSeconds <= 0 {
		errs = append(errs, "gps max_fix_age_seconds must be positive")
	}

	if payload.Telemetry.HeartbeatSeconds <= 0 {
		errs = append(errs, "telemetry heartbeat_seconds must be positive")
	}
	if payload.Telemetry.MaxBatchSize <= 0 {
		errs = append(errs, "telemetry max_batch_size must be positive")
	}
	if payload.Telemetry.UploadIntervalSeconds <= 0 {
		errs = append(errs, "telemetry upload_interval_seconds must be positive")
	}

	if !payload.ExpiresAt.After(payload.IssuedAt) {
		errs = append(errs, "expires_at must be after issued_at")
	}
	if payload.ServerTime.MaxClockSkewSeconds <= 0 {
		errs = append(errs, "server_time max_clock_skew_seconds must be positive")
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
