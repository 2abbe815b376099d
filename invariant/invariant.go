// Package invariant holds assertions that are compiled in only for builds
// tagged particledebug. Release builds pay nothing for them.
package invariant

import "fmt"

// Check panics with the formatted message when cond is false and assertions
// are enabled.
func Check(cond bool, format string, args ...any) {
	if Enabled && !cond {
		panic("invariant violated: " + fmt.Sprintf(format, args...))
	}
}
