package wire

import "errors"

var (
	// ErrIllegalType is returned whenever a tag is not one of the 11 tags
	// spec.md §3 enumerates, or a native-width tag is asked to resolve
	// against an unsupported word size.
	ErrIllegalType = errors.New("wire: illegal type tag")
)
