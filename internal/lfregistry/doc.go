// Package lfregistry owns the device-side, name-indexed table of modules
// and each module's ordered table of function entry points (spec C5).
//
// Ownership boundary:
// - module/function lookup by (index, function) integer pair
// - name -> index correlation via CRC-16 identifier, for the dynamic
//   loader binding user modules at runtime (spec invariant M1)
package lfregistry
