package relief

import "github.com/pkg/errors"

// The pipeline fails eagerly: every precondition is checked before any array
// or mesh work starts, and a violated precondition aborts the whole run with
// no partial output. Callers can classify failures with errors.Is against
// these sentinels.
var (
	// ErrInvalidParameter reports an out-of-domain scalar parameter, such
	// as a white cut at or below the black cut.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInsufficientResolution reports a grid too small to triangulate.
	// At least a 2x2 grid is required to form any triangle.
	ErrInsufficientResolution = errors.New("insufficient resolution")

	// ErrUpstreamUnavailable reports that an export destination is missing
	// or unusable. It is only surfaced when that output is requested.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
