package zrange

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidQuery is returned for a box whose lo corner exceeds its hi
	// corner on either axis.
	ErrInvalidQuery = errors.New("invalid query box")

	// ErrConfiguration is returned for a non-positive split threshold.
	ErrConfiguration = errors.New("invalid configuration")
)
