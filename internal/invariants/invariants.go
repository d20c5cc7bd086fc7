// Package invariants gates the consistency checks of the hashtrie
// package. Enabled follows the "invariants" build tag; Level is read
// once from the HASHTRIE_CHECKS environment variable and is treated as
// read-only afterwards.
package invariants

import (
	"os"
	"strconv"
)

// Level selects how much checking runs when Enabled is set: 0 disables
// all checks, 1 (the default) keeps the cheap shape checks, 2 and above
// recounts whole trees on every mutation.
var Level = 1

func init() {
	if s := os.Getenv("HASHTRIE_CHECKS"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			Level = v
		}
	}
}
