// Package lfconfig is the host process's TOML configuration, adapted
// from edgectl's internal/config: same load/validate shape, BurntSushi/
// toml in place of the teacher's pelletier/go-toml/v2 (both are pinned
// in the retrieved pack; BurntSushi is the dependency this module
// carries, see DESIGN.md).
package lfconfig

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// DeviceConfig names one device endpoint the host should attach at
// startup.
type DeviceConfig struct {
	Name        string `toml:"name"`
	Transport   string `toml:"transport"` // "pipe", "tcp", "serial"
	Addr        string `toml:"addr"`
	PointerSize uint8  `toml:"pointer_size"`
	BigEndian   bool   `toml:"big_endian"`
}

// HostConfig is the top-level lfctl configuration file.
type HostConfig struct {
	Name        string         `toml:"name"`
	MetricsAddr string         `toml:"metrics_addr"`
	Devices     []DeviceConfig `toml:"devices"`
}

// Load reads and validates a HostConfig from path.
func Load(path string) (HostConfig, error) {
	var cfg HostConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return HostConfig{}, fmt.Errorf("lfconfig: load failed (%s): %w", path, err)
	}
	if cfg.Name == "" {
		cfg.Name = "lfctl"
	}
	if cfg.MetricsAddr == "" {
		cfg.MetricsAddr = ":9400"
	}
	if err := Validate(cfg); err != nil {
		return HostConfig{}, err
	}
	return cfg, nil
}

// Validate checks the shape of a HostConfig without touching disk.
func Validate(cfg HostConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("lfconfig: missing name")
	}
	for i, dev := range cfg.Devices {
		if err := validateDevice(dev); err != nil {
			return fmt.Errorf("lfconfig: device[%d] invalid: %w", i, err)
		}
	}
	return nil
}

func validateDevice(dev DeviceConfig) error {
	if strings.TrimSpace(dev.Name) == "" {
		return fmt.Errorf("name is required")
	}
	switch dev.Transport {
	case "pipe", "tcp", "serial":
	default:
		return fmt.Errorf("unknown transport %q", dev.Transport)
	}
	if dev.Transport != "pipe" && strings.TrimSpace(dev.Addr) == "" {
		return fmt.Errorf("addr is required for transport %q", dev.Transport)
	}
	if dev.PointerSize != 2 && dev.PointerSize != 4 {
		return fmt.Errorf("pointer_size must be 2 or 4, got %d", dev.PointerSize)
	}
	return nil
}
