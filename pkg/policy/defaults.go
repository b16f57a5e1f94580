package policy

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults is the deployment-tunable half of a policy document. Per-team
// overrides are layered on top of these when issuing.
type Defaults struct {
	DocumentTTL time.Duration `yaml:"document_ttl"`

	MaxClockSkewSeconds int `yaml:"max_clock_skew_seconds"`
	MaxPolicyAgeSeconds int `yaml:"max_policy_age_seconds"`

	Session   SessionPolicy   `yaml:"session"`
	PIN       PINPolicy       `yaml:"pin"`
	GPS       GPSPolicy       `yaml:"gps"`
	Telemetry TelemetryPolicy `yaml:"telemetry"`
}

// DefaultDefaults returns the built-in policy defaults used when no
// defaults file is configured.
func DefaultDefaults() Defaults {
	workdays := map[string][]WorkWindow{}
	for _, day := range weekdays[:5] {
		workdays[day] = []WorkWindow{{Start: "08:00", End: "18:00"}}
	}

	return Defaults{
		DocumentTTL:         24 * time.Hour,
		MaxClockSkewSeconds: 300,
		MaxPolicyAgeSeconds: 86400,
		Session: SessionPolicy{
			WorkWindows:        workdays,
			GraceMinutes:       15,
			OverrideCapMinutes: 120,
		},
		PIN: PINPolicy{
			Mode:            PINModeLocal,
			MinLength:       4,
			RetryLimit:      3,
			CooldownSeconds: 60,
		},
		GPS: GPSPolicy{
			FixIntervalSeconds:      60,
			MinDisplacementMeters:   25,
			AccuracyThresholdMeters: 50,
			MaxFixAgeSeconds:        300,
		},
		Telemetry: TelemetryPolicy{
			HeartbeatSeconds:      300,
			MaxBatchSize:          100,
			RetryAttempts:         3,
			UploadIntervalSeconds: 60,
		},
	}
}

// LoadDefaults reads a defaults file, layering it over the built-ins so
// partial files work.
func LoadDefaults(path string) (Defaults, error) {
	defaults := DefaultDefaults()

	raw, err := os.ReadFile(path)
	if err != nil {
		return defaults, fmt.Errorf("failed to read policy defaults %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &defaults); err != nil {
		return defaults, fmt.Errorf("failed to parse policy defaults %s: %w", path, err)
	}

	if errs := validateDefaults(defaults); len(errs) > 0 {
		return defaults, fmt.Errorf("invalid policy defaults %s: %s", path, errs[0])
	}
	return defaults, nil
}

func validateDefaults(d Defaults) []string {
	var errs []string
	if d.DocumentTTL <= 0 {
		errs = append(errs, "document_ttl must be positive")
	}
	if !pinModes[d.PIN.Mode] {
		errs = append(errs, fmt.Sprintf("pin mode %q is not one of local, server, disabled", d.PIN.Mode))
	}
	if d.Session.OverrideCapMinutes > 120 {
		errs = append(errs, "session override cap may not exceed 120 minutes")
	}
	for day := range d.Session.WorkWindows {
		known := false
		for _, w := range weekdays {
			if day == w {
				known = true
				break
			}
		}
		if !known {
			errs = append(errs, fmt.Sprintf("unknown weekday %q in work windows", day))
		}
	}
	return errs
}
