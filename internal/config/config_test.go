package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"EPICS_CA_ADDR_LIST",
		"EPICS_CA_AUTO_ADDR_LIST",
		"EPICS_CA_REPEATER_PORT",
		"EPICS_CA_SERVER_PORT",
		"EPICS_CA_MAX_ARRAY_BYTES",
		"CAPROTO_LOG_LEVEL",
	} {
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5065, cfg.Ports.RepeaterPort)
	assert.Equal(t, 5064, cfg.Ports.ServerPort)
	assert.Equal(t, 16384, cfg.Limits.MaxArrayBytes)
	assert.True(t, cfg.Discovery.AutoAddrList)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("EPICS_CA_ADDR_LIST", "10.0.0.1 10.0.0.2")
	t.Setenv("EPICS_CA_AUTO_ADDR_LIST", "false")
	t.Setenv("EPICS_CA_REPEATER_PORT", "6065")
	t.Setenv("EPICS_CA_SERVER_PORT", "6064")
	t.Setenv("EPICS_CA_MAX_ARRAY_BYTES", "65536")
	t.Setenv("CAPROTO_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.Discovery.AddrList)
	assert.False(t, cfg.Discovery.AutoAddrList)
	assert.Equal(t, 6065, cfg.Ports.RepeaterPort)
	assert.Equal(t, 6064, cfg.Ports.ServerPort)
	assert.Equal(t, 65536, cfg.Limits.MaxArrayBytes)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadWithOverrides(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadWithOverrides(LoadOptions{
		AddrList: "192.168.1.1 192.168.1.2",
		LogLevel: "warn",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"192.168.1.1", "192.168.1.2"}, cfg.Discovery.AddrList)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "caproto.yaml")
	contents := "discovery:\n  addrList:\n    - 10.1.1.1\n  autoAddrList: false\nports:\n  repeaterPort: 7065\n  serverPort: 7064\nlimits:\n  maxArrayBytes: 4096\nlogging:\n  level: error\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"10.1.1.1"}, cfg.Discovery.AddrList)
	assert.False(t, cfg.Discovery.AutoAddrList)
	assert.Equal(t, 7065, cfg.Ports.RepeaterPort)
	assert.Equal(t, 7064, cfg.Ports.ServerPort)
	assert.Equal(t, 4096, cfg.Limits.MaxArrayBytes)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("/nonexistent/caproto.yaml")
	require.Error(t, err)
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg := &Config{
		Ports:   PortsConfig{RepeaterPort: 70000, ServerPort: 5064},
		Limits:  LimitsConfig{MaxArrayBytes: 1024},
		Logging: LoggingConfig{Level: "info"},
	}
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsBadLogLevel(t *testing.T) {
	cfg := &Config{
		Ports:   PortsConfig{RepeaterPort: 5065, ServerPort: 5064},
		Limits:  LimitsConfig{MaxArrayBytes: 1024},
		Logging: LoggingConfig{Level: "verbose"},
	}
	require.Error(t, cfg.Validate())
}

func TestGetGlobalConfig(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)

	assert.Same(t, cfg, GetGlobalConfig())
}
