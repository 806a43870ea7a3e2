package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/danmuck/lf/internal/wire"
)

var tagNames = map[string]wire.Tag{
	"u8": wire.U8, "u16": wire.U16, "void": wire.Void, "u32": wire.U32,
	"uint": wire.Uint, "ptr": wire.Ptr, "u64": wire.U64,
	"i8": wire.I8, "i16": wire.I16, "i32": wire.I32, "i64": wire.I64,
}

// parseTag maps a CLI-friendly type name (u8, i32, ptr, ...) to its wire
// tag, the only lfctl-specific text format spec.md's binary ABI needs.
func parseTag(name string) (wire.Tag, error) {
	tag, ok := tagNames[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown type %q", name)
	}
	return tag, nil
}

// parseTaggedArg splits a "type:value" argument, e.g. "u8:200".
func parseTaggedArg(raw string) (wire.Tag, uint64, error) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("argument %q must be type:value", raw)
	}
	tag, err := parseTag(parts[0])
	if err != nil {
		return 0, 0, err
	}
	value, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("argument %q: %w", raw, err)
	}
	return tag, value, nil
}
