// Package options holds validation shared by the functional-option APIs of
// the raml and viewmodel packages.
package options

import "errors"

// ValidateSingleInputSource ensures exactly one input source is set.
// Each element of sources reports whether one source option was supplied.
// noSourceMsg and multiSourceMsg become the error text for zero and for
// several sources respectively.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	count := 0
	for _, set := range sources {
		if set {
			count++
		}
	}
	switch {
	case count == 0:
		return errors.New(noSourceMsg)
	case count > 1:
		return errors.New(multiSourceMsg)
	}
	return nil
}
