// Package config loads the environment-variable and YAML-file settings that a
// Channel Access host application (not the core engine itself) uses to decide
// which peers to search, which ports to bind, and how much payload to accept.
//
// The sans-I/O engine in internal/wire, internal/command, internal/framer,
// internal/state, and internal/circuit never imports this package; per the
// core spec, name resolution policy and environment coupling belong to the
// caller. This package exists so host applications don't have to reinvent
// env-var parsing; no package in this module imports it.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	globalConfig *Config
	configMutex  sync.Mutex
)

// Config holds the settings a Channel Access client or server host needs at
// startup.
type Config struct {
	Discovery DiscoveryConfig `yaml:"discovery"`
	Ports     PortsConfig     `yaml:"ports"`
	Limits    LimitsConfig    `yaml:"limits"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoadOptions holds command-line override values layered on top of the file
// and environment configuration.
type LoadOptions struct {
	AddrList   string
	ConfigFile string
	LogLevel   string
}

// DiscoveryConfig controls which addresses a client searches.
//
// EPICS_CA_ADDR_LIST and EPICS_CA_AUTO_ADDR_LIST are the upstream CA
// environment variables (spec §6); the engine never reads them itself.
type DiscoveryConfig struct {
	AddrList     []string `yaml:"addrList" env:"EPICS_CA_ADDR_LIST" default:""`
	AutoAddrList bool     `yaml:"autoAddrList" env:"EPICS_CA_AUTO_ADDR_LIST" default:"true"`
}

// PortsConfig holds the default UDP/TCP ports used by CA peers.
type PortsConfig struct {
	RepeaterPort int `yaml:"repeaterPort" env:"EPICS_CA_REPEATER_PORT" default:"5065"`
	ServerPort   int `yaml:"serverPort" env:"EPICS_CA_SERVER_PORT" default:"5064"`
}

// LimitsConfig caps resource usage a host may want to enforce around the
// engine (the engine itself has no built-in payload cap; see spec §5).
type LimitsConfig struct {
	MaxArrayBytes int `yaml:"maxArrayBytes" env:"EPICS_CA_MAX_ARRAY_BYTES" default:"16384"`
}

// LoggingConfig controls the host's logging.Logger.
type LoggingConfig struct {
	Level string `yaml:"level" env:"CAPROTO_LOG_LEVEL" default:"info"`
}

// Load loads configuration from environment variables with defaults.
func Load() (*Config, error) {
	return LoadWithOverrides(LoadOptions{})
}

// LoadWithOverrides loads configuration from an optional YAML file, then
// layers environment variables, then command-line overrides on top.
func LoadWithOverrides(opts LoadOptions) (*Config, error) {
	cfg := &Config{Discovery: DiscoveryConfig{AutoAddrList: true}}

	if opts.ConfigFile != "" {
		loaded, err := LoadFile(opts.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
		cfg = loaded
	}

	cfg.Discovery.AddrList = getStringSliceWithDefault("EPICS_CA_ADDR_LIST", cfg.Discovery.AddrList)
	if opts.AddrList != "" {
		cfg.Discovery.AddrList = splitString(opts.AddrList, " ")
	}
	cfg.Discovery.AutoAddrList = getBoolWithDefault("EPICS_CA_AUTO_ADDR_LIST", cfg.Discovery.AutoAddrList)

	cfg.Ports.RepeaterPort = getIntWithDefault("EPICS_CA_REPEATER_PORT", intOrDefault(cfg.Ports.RepeaterPort, 5065))
	cfg.Ports.ServerPort = getIntWithDefault("EPICS_CA_SERVER_PORT", intOrDefault(cfg.Ports.ServerPort, 5064))

	cfg.Limits.MaxArrayBytes = getIntWithDefault("EPICS_CA_MAX_ARRAY_BYTES", intOrDefault(cfg.Limits.MaxArrayBytes, 16384))

	cfg.Logging.Level = getOverrideOrEnv(opts.LogLevel, "CAPROTO_LOG_LEVEL", stringOrDefault(cfg.Logging.Level, "info"))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	configMutex.Lock()
	globalConfig = cfg
	configMutex.Unlock()

	return cfg, nil
}

// LoadFile unmarshals a YAML configuration file without touching the
// environment. LoadWithOverrides calls this when opts.ConfigFile is set.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{Discovery: DiscoveryConfig{AutoAddrList: true}}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// GetGlobalConfig returns the configuration stored by the most recent Load
// call, or nil if none has run yet.
func GetGlobalConfig() *Config {
	configMutex.Lock()
	defer configMutex.Unlock()
	return globalConfig
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Ports.RepeaterPort < 1 || c.Ports.RepeaterPort > 65535 {
		return fmt.Errorf("invalid repeater port: %d", c.Ports.RepeaterPort)
	}
	if c.Ports.ServerPort < 1 || c.Ports.ServerPort > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Ports.ServerPort)
	}
	if c.Limits.MaxArrayBytes <= 0 {
		return fmt.Errorf("max array bytes must be positive")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getStringSliceWithDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return splitString(value, " ")
	}
	return defaultValue
}

func getOverrideOrEnv(override, envKey, defaultValue string) string {
	if override != "" {
		return override
	}
	return getEnvWithDefault(envKey, defaultValue)
}

func splitString(s, sep string) []string {
	if s == "" {
		return nil
	}
	var result []string
	for _, part := range strings.Split(s, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func boolOrDefault(v, d bool) bool {
	if v {
		return v
	}
	return d
}

func intOrDefault(v, d int) int {
	if v != 0 {
		return v
	}
	return d
}

func stringOrDefault(v, d string) string {
	if v != "" {
		return v
	}
	return d
}
