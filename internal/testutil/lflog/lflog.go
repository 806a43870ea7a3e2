// Package lflog is testlog's counterpart for this module: a one-line
// per-test logging hook tests call at the top of a Test function.
package lflog

import (
	"testing"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/lf/internal/obslog"
)

// Start installs the test-profile global logger once and emits one
// debug line naming the running test.
func Start(t *testing.T) {
	t.Helper()
	obslog.ConfigureTests("lf-test")
	log.Debug().Str("test", t.Name()).Msg("start")
}
