// Package fileutil holds file mode constants shared by ramlo commands.
package fileutil

import "os"

// OwnerReadWrite is the mode of view model files written by the CLI. Models
// may embed examples with sensitive API data, so only the owner can read them.
const OwnerReadWrite os.FileMode = 0o600
