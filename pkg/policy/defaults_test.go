package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDefaultsFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadDefaultsLayersOverBuiltins(t *testing.T) {
	path := writeDefaultsFile(t, `
pin:
  mode: server
  min_length: 6
  retry_limit: 3
  cooldown_seconds: 120
gps:
  fix_interval_seconds: 30
  min_displacement_meters: 10
  accuracy_threshold_meters: 25
  max_fix_age_seconds: 120
`)

	defaults, err := LoadDefaults(path)
	require.NoError(t, err)

	assert.Equal(t, PINModeServer, defaults.PIN.Mode)
	assert.Equal(t, 6, defaults.PIN.MinLength)
	assert.Equal(t, 30, defaults.GPS.FixIntervalSeconds)
	// Untouched sections keep the built-ins.
	assert.Equal(t, DefaultDefaults().Telemetry, defaults.Telemetry)
	assert.Equal(t, DefaultDefaults().DocumentTTL, defaults.DocumentTTL)
}

func TestLoadDefaultsRejectsUnknownPINMode(t *testing.T) {
	path := writeDefaultsFile(t, "pin:\n  mode: faceid\n")

	_, err := LoadDefaults(path)
	assert.Error(t, err)
}

func TestLoadDefaultsRejectsOversizedOverrideCap(t *testing.T) {
	path := writeDefaultsFile(t, "session:\n  override_cap_minutes: 480\n")

	_, err := LoadDefaults(path)
	assert.Error(t, err)
}

func TestLoadDefaultsMissingFile(t *testing.T) {
	_, err := LoadDefaults(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}
