package hashtrie

import "errors"

var (
	// ErrMissingKey signals an indexed lookup for a key that is not in the map.
	ErrMissingKey = errors.New("missing key")

	// ErrImmutableMutation signals a Put, Remove or Clear on a frozen map.
	// Obtain a fresh mutable version with Branch or Mutable.
	ErrImmutableMutation = errors.New("mutation on immutable map")

	// ErrMisuseCopy signals a generic copy of a map. Two mutable containers
	// over one tree would let their entry counters diverge silently, so
	// copying is only available through Branch.
	ErrMisuseCopy = errors.New("generic copy of a hashtrie map, use Branch")

	// ErrInvariantViolation prefixes the panic raised when an internal
	// consistency check fails. Seeing it means a bug in this package.
	ErrInvariantViolation = errors.New("invariant violation")
)
