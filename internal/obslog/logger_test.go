package obslog

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsInfoWithTimestamp(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, zerolog.InfoLevel, cfg.Level)
	require.True(t, cfg.Timestamp)
}

func TestApplyEnvOverridesParsesLevelAndBools(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogNoColor, "true")
	t.Setenv(EnvLogBypass, "1")

	cfg := DefaultConfig()
	applyEnvOverrides(&cfg)
	require.Equal(t, zerolog.DebugLevel, cfg.Level)
	require.True(t, cfg.NoColor)
	require.True(t, cfg.Bypass)
}

func TestApplyEnvOverridesIgnoresUnparseable(t *testing.T) {
	t.Setenv(EnvLogLevel, "not-a-level")
	t.Setenv(EnvLogTimestamp, "not-a-bool")

	cfg := DefaultConfig()
	applyEnvOverrides(&cfg)
	require.Equal(t, zerolog.InfoLevel, cfg.Level)
	require.True(t, cfg.Timestamp)
}

func TestDefaultConfigForTestProfileIsDebugNoTimestamp(t *testing.T) {
	cfg := defaultConfig(ProfileTest)
	require.Equal(t, zerolog.DebugLevel, cfg.Level)
	require.False(t, cfg.Timestamp)
}
