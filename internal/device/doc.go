// Package device is the device-side C7 perform engine: the top-level
// loop that reads one packet off a transport.Endpoint, validates it,
// dispatches by class to the C5 registry and C6 trampoline (or to a
// bulk-transfer handler), and writes the reply in the ordering §4.4 and
// §4.7 require — any raw payload before the Result, never after.
//
// Ownership boundary:
// - Configuration: the record a configuration-class request gets back.
// - Engine: owns the registry, trampoline profile, and latching error
//   slot for one device; Perform runs one request/reply transaction.
//
// Grounded on edgectl's internal/ghost dispatch pipeline (command_loop.go,
// execution.go): validate -> look up -> execute -> reply, generalized
// from ghost's string-keyed seed dispatch to C7's class-switch over a
// decoded wire packet.
package device
