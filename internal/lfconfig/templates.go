package lfconfig

import (
	"fmt"
	"os"
)

// template is lfctl.toml's starting point: one embedded "pipe" device
// (the in-process simulator, see cmd/lfctl's descriptorFor) and one
// commented-out "tcp" example for a real out-of-process device.
const template = `name = "lfctl"
metrics_addr = ":9400"

[[devices]]
name = "sim0"
transport = "pipe"
pointer_size = 4
big_endian = false

# [[devices]]
# name = "board0"
# transport = "tcp"
# addr = "127.0.0.1:4242"
# pointer_size = 4
# big_endian = false
`

// WriteTemplate writes the starting lfctl.toml to path, refusing to
// overwrite an existing file unless force is set.
func WriteTemplate(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("lfconfig: config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}
