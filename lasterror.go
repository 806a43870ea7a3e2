package lf

import "github.com/danmuck/lf/internal/lferr"

// ErrorGet is the read-and-clear accessor over this process's latching
// error slot (spec §7: "the slot is latching... until explicitly
// read-and-cleared by lf_error_get"). The returned value is the
// on-device/on-host lferr.Code from the most recent failing operation.
func ErrorGet() lferr.Code {
	return engine.Slot.GetAndClear()
}
