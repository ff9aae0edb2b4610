// Package naming derives human-readable names for documentation output.
//
// Case mapping goes through golang.org/x/text/cases so that non-ASCII
// characters are handled correctly. As an internal package, these functions
// are not part of the public API and may change without notice.
package naming
