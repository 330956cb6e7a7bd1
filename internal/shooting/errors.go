package shooting

import "errors"

var (
	// ErrNoConvergence indicates the iteration cap was hit before the
	// signatures agreed or the bracket shrank below the threshold.
	ErrNoConvergence = errors.New("shooting: search exceeded iteration cap")

	// ErrAmbiguousBracket indicates both ends share a signature that differs
	// from the midpoint, so the bracket holds an even number of shape changes.
	ErrAmbiguousBracket = errors.New("shooting: ambiguous bracket")

	// ErrInvalidBracket indicates a bracket end that is NaN or infinite.
	ErrInvalidBracket = errors.New("shooting: invalid bracket")

	// ErrInvalidConfig indicates a negative threshold or non-positive iteration cap.
	ErrInvalidConfig = errors.New("shooting: invalid search configuration")
)
