//go:build particledebug

package invariant

// Enabled reports whether assertions are active.
const Enabled = true
