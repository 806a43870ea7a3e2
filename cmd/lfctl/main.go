// Command lfctl is the host-side CLI named as an external collaborator
// in spec.md §1 ("out of scope... only interfaces"): a real, buildable
// consumer of the top-level lf package's C ABI surface.
package main

import "github.com/danmuck/lf/cmd/lfctl/cmd"

func main() {
	cmd.Execute()
}
