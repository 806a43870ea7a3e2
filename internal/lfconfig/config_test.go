package lfconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFillsDefaultsAndValidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lfctl.toml")
	body := `
[[devices]]
name = "sim0"
transport = "pipe"
pointer_size = 4
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "lfctl", cfg.Name)
	require.Equal(t, ":9400", cfg.MetricsAddr)
	require.Len(t, cfg.Devices, 1)
	require.Equal(t, "sim0", cfg.Devices[0].Name)
}

func TestValidateRejectsUnknownTransport(t *testing.T) {
	cfg := HostConfig{Name: "h", Devices: []DeviceConfig{{Name: "d", Transport: "smoke-signal", PointerSize: 4}}}
	require.Error(t, Validate(cfg))
}

func TestValidateRejectsMissingAddrForNetworkTransport(t *testing.T) {
	cfg := HostConfig{Name: "h", Devices: []DeviceConfig{{Name: "d", Transport: "tcp", PointerSize: 4}}}
	require.Error(t, Validate(cfg))
}

func TestValidateRejectsBadPointerSize(t *testing.T) {
	cfg := HostConfig{Name: "h", Devices: []DeviceConfig{{Name: "d", Transport: "pipe", PointerSize: 8}}}
	require.Error(t, Validate(cfg))
}
