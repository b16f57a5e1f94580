package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/fieldgate/config"
	ConfigFileName    = "fieldgate.yml"
)

// OverrideTTLCapSeconds is the hard ceiling on supervisor-override
// token lifetime. Configuration may shorten it, never extend it.
const OverrideTTLCapSeconds = 7200

// Config holds all Fieldgate configuration settings
type Config struct {
	// ListenAddress is the HTTP bind address
	ListenAddress string `yaml:"listen_address" json:"listen_address"`

	// TrustedProxies is a list of CIDR ranges for trusted proxies
	TrustedProxies []string `yaml:"trusted_proxies" json:"trusted_proxies"`

	// AccessTokenTTLSeconds is the TTL for access tokens in seconds
	AccessTokenTTLSeconds int `yaml:"access_token_ttl" json:"access_token_ttl"`

	// RefreshTokenTTLSeconds is the TTL for refresh tokens in seconds
	RefreshTokenTTLSeconds int `yaml:"refresh_token_ttl" json:"refresh_token_ttl"`

	// OverrideTokenTTLSeconds is the TTL for supervisor-override tokens
	// in seconds, capped at OverrideTTLCapSeconds
	OverrideTokenTTLSeconds int `yaml:"override_token_ttl" json:"override_token_ttl"`

	// PermissionCacheTTLSeconds is the permission cache entry TTL in seconds
	PermissionCacheTTLSeconds int `yaml:"permission_cache_ttl" json:"permission_cache_ttl"`

	// CleanupIntervalSeconds is how often the cache/ledger cleanup runs
	CleanupIntervalSeconds int `yaml:"cleanup_interval" json:"cleanup_interval"`

	// RevocationRetentionDays is how long revocation ledger entries are kept
	RevocationRetentionDays int `yaml:"revocation_retention_days" json:"revocation_retention_days"`

	// PolicyDefaultsPath is an optional policy defaults YAML file
	PolicyDefaultsPath string `yaml:"policy_defaults_path" json:"policy_defaults_path"`

	// MetricsEnabled exposes the Prometheus metrics endpoint
	MetricsEnabled bool `yaml:"metrics_enabled" json:"metrics_enabled"`

	// RoleLevels overrides the deployment role level table; file only
	RoleLevels map[string]int `yaml:"role_levels" json:"role_levels"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			// Return defaults on error
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *Config {
	return &Config{
		ListenAddress:             ":8080",
		TrustedProxies:            []string{},
		AccessTokenTTLSeconds:     3600,
		RefreshTokenTTLSeconds:    604800,
		OverrideTokenTTLSeconds:   OverrideTTLCapSeconds,
		PermissionCacheTTLSeconds: 300,
		CleanupIntervalSeconds:    600,
		RevocationRetentionDays:   30,
		MetricsEnabled:            true,
		RoleLevels:                map[string]int{},
		sources:                   make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("FIELDGATE_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	// The override cap is not configurable upward.
	if config.OverrideTokenTTLSeconds > OverrideTTLCapSeconds {
		config.OverrideTokenTTLSeconds = OverrideTTLCapSeconds
	}

	return config, nil
}

func attributeNames() []string {
	return []string{
		"listen_address", "trusted_proxies", "access_token_ttl",
		"refresh_token_ttl", "override_token_ttl", "permission_cache_ttl",
		"cleanup_interval", "revocation_retention_days",
		"policy_defaults_path", "metrics_enabled", "role_levels",
	}
}

func (c *Config) applyFileConfig(file *Config) {
	if file.ListenAddress != "" {
		c.ListenAddress = file.ListenAddress
		c.sources["listen_address"] = "file"
	}
	if len(file.TrustedProxies) > 0 {
		c.TrustedProxies = file.TrustedProxies
		c.sources["trusted_proxies"] = "file"
	}
	if file.AccessTokenTTLSeconds != 0 {
		c.AccessTokenTTLSeconds = file.AccessTokenTTLSeconds
		c.sources["access_token_ttl"] = "file"
	}
	if file.RefreshTokenTTLSeconds != 0 {
		c.RefreshTokenTTLSeconds = file.RefreshTokenTTLSeconds
		c.sources["refresh_token_ttl"] = "file"
	}
	if file.OverrideTokenTTLSeconds != 0 {
		c.OverrideTokenTTLSeconds = file.OverrideTokenTTLSeconds
		c.sources["override_token_ttl"] = "file"
	}
	if file.PermissionCacheTTLSeconds != 0 {
		c.PermissionCacheTTLSeconds = file.PermissionCacheTTLSeconds
		c.sources["permission_cache_ttl"] = "file"
	}
	if file.CleanupIntervalSeconds != 0 {
		c.CleanupIntervalSeconds = file.CleanupIntervalSeconds
		c.sources["cleanup_interval"] = "file"
	}
	if file.RevocationRetentionDays != 0 {
		c.RevocationRetentionDays = file.RevocationRetentionDays
		c.sources["revocation_retention_days"] = "file"
	}
	if file.PolicyDefaultsPath != "" {
		c.PolicyDefaultsPath = file.PolicyDefaultsPath
		c.sources["policy_defaults_path"] = "file"
	}
	if len(file.RoleLevels) > 0 {
		c.RoleLevels = file.RoleLevels
		c.sources["role_levels"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("FIELDGATE_LISTEN_ADDRESS"); val != "" {
		c.ListenAddress = val
		c.sources["listen_address"] = "environment"
	}
	if val := os.Getenv("FIELDGATE_TRUSTED_PROXIES"); val != "" {
		c.TrustedProxies = splitAndTrim(val)
		c.sources["trusted_proxies"] = "environment"
	}
	if val := os.Getenv("FIELDGATE_ACCESS_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.AccessTokenTTLSeconds = i
			c.sources["access_token_ttl"] = "environment"
		}
	}
	if val := os.Getenv("FIELDGATE_REFRESH_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.RefreshTokenTTLSeconds = i
			c.sources["refresh_token_ttl"] = "environment"
		}
	}
	if val := os.Getenv("FIELDGATE_OVERRIDE_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.OverrideTokenTTLSeconds = i
			c.sources["override_token_ttl"] = "environment"
		}
	}
	if val := os.Getenv("FIELDGATE_PERMISSION_CACHE_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.PermissionCacheTTLSeconds = i
			c.sources["permission_cache_ttl"] = "environment"
		}
	}
	if val := os.Getenv("FIELDGATE_CLEANUP_INTERVAL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.CleanupIntervalSeconds = i
			c.sources["cleanup_interval"] = "environment"
		}
	}
	if val := os.Getenv("FIELDGATE_REVOCATION_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.RevocationRetentionDays = i
			c.sources["revocation_retention_days"] = "environment"
		}
	}
	if val := os.Getenv("FIELDGATE_POLICY_DEFAULTS_PATH"); val != "" {
		c.PolicyDefaultsPath = val
		c.sources["policy_defaults_path"] = "environment"
	}
	if val := os.Getenv("FIELDGATE_METRICS_ENABLED"); val != "" {
		c.MetricsEnabled = val == "true" || val == "1"
		c.sources["metrics_enabled"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// AccessTokenTTL returns the access token TTL as a duration
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenTTLSeconds) * time.Second
}

// RefreshTokenTTL returns the refresh token TTL as a duration
func (c *Config) RefreshTokenTTL() time.Duration {
	return time.Duration(c.RefreshTokenTTLSeconds) * time.Second
}

// OverrideTokenTTL returns the override token TTL as a duration
func (c *Config) OverrideTokenTTL() time.Duration {
	return time.Duration(c.OverrideTokenTTLSeconds) * time.Second
}

// PermissionCacheTTL returns the permission cache entry TTL as a duration
func (c *Config) PermissionCacheTTL() time.Duration {
	return time.Duration(c.PermissionCacheTTLSeconds) * time.Second
}

// CleanupInterval returns the cleanup cadence as a duration
func (c *Config) CleanupInterval() time.Duration {
	return time.Duration(c.CleanupIntervalSeconds) * time.Second
}

// RevocationRetention returns the ledger retention as a duration
func (c *Config) RevocationRetention() time.Duration {
	return time.Duration(c.RevocationRetentionDays) * 24 * time.Hour
}

// IsTrustedProxy checks if an IP is from a trusted proxy
func (c *Config) IsTrustedProxy(ip string) bool {
	if len(c.TrustedProxies) == 0 {
		return false
	}

	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return false
	}

	for _, cidr := range c.TrustedProxies {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			// Try as plain IP
			if net.ParseIP(cidr) != nil && cidr == ip {
				return true
			}
			continue
		}
		if network.Contains(parsedIP) {
			return true
		}
	}
	return false
}

// Validate validates the configuration
func (c *Config) Validate() error {
	for _, cidr := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			if net.ParseIP(cidr) == nil {
				return fmt.Errorf("invalid trusted_proxies value: %s", cidr)
			}
		}
	}

	if c.AccessTokenTTLSeconds <= 0 {
		return fmt.Errorf("access_token_ttl must be positive")
	}
	if c.RefreshTokenTTLSeconds <= 0 {
		return fmt.Errorf("refresh_token_ttl must be positive")
	}
	if c.OverrideTokenTTLSeconds <= 0 || c.OverrideTokenTTLSeconds > OverrideTTLCapSeconds {
		return fmt.Errorf("override_token_ttl must be between 1 and %d seconds", OverrideTTLCapSeconds)
	}
	if c.PermissionCacheTTLSeconds <= 0 {
		return fmt.Errorf("permission_cache_ttl must be positive")
	}

	for name, level := range c.RoleLevels {
		if level <= 0 {
			return fmt.Errorf("role level for %s must be positive", name)
		}
	}

	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *Config) Attributes() []Attribute {
	return []Attribute{
		{Name: "listen_address", Value: c.ListenAddress, Source: c.Source("listen_address")},
		{Name: "trusted_proxies", Value: strings.Join(c.TrustedProxies, ","), Source: c.Source("trusted_proxies")},
		{Name: "access_token_ttl", Value: strconv.Itoa(c.AccessTokenTTLSeconds), Source: c.Source("access_token_ttl")},
		{Name: "refresh_token_ttl", Value: strconv.Itoa(c.RefreshTokenTTLSeconds), Source: c.Source("refresh_token_ttl")},
		{Name: "override_token_ttl", Value: strconv.Itoa(c.OverrideTokenTTLSeconds), Source: c.Source("override_token_ttl")},
		{Name: "permission_cache_ttl", Value: strconv.Itoa(c.PermissionCacheTTLSeconds), Source: c.Source("permission_cache_ttl")},
		{Name: "cleanup_interval", Value: strconv.Itoa(c.CleanupIntervalSeconds), Source: c.Source("cleanup_interval")},
		{Name: "revocation_retention_days", Value: strconv.Itoa(c.RevocationRetentionDays), Source: c.Source("revocation_retention_days")},
		{Name: "policy_defaults_path", Value: c.PolicyDefaultsPath, Source: c.Source("policy_defaults_path")},
		{Name: "metrics_enabled", Value: strconv.FormatBool(c.MetricsEnabled), Source: c.Source("metrics_enabled")},
		{Name: "role_levels", Value: formatRoleLevels(c.RoleLevels), Source: c.Source("role_levels")},
	}
}

// FormatText returns a text representation of the configuration
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func formatRoleLevels(levels map[string]int) string {
	if len(levels) == 0 {
		return ""
	}

	pairs := make([]string, 0, len(levels))
	for name, level := range levels {
		pairs = append(pairs, fmt.Sprintf("%s=%d", name, level))
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
