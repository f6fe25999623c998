package zrange

import "github.com/cockroachdb/errors"

// DefaultSplitThreshold is the longest run scanned without further splits.
const DefaultSplitThreshold = 16

// Config alters the behaviour of Decompose.
type Config struct {
	// SplitThreshold bounds the length of a leaf interval; longer spans are
	// split. Must be positive.
	SplitThreshold int64
}

// DefaultConfig returns a config with DefaultSplitThreshold.
func DefaultConfig() Config {
	return Config{SplitThreshold: DefaultSplitThreshold}
}

// Validate returns ErrConfiguration if the config cannot terminate.
func (cfg Config) Validate() error {
	if cfg.SplitThreshold <= 0 {
		return errors.Wrapf(ErrConfiguration, "split threshold must be positive, have %d", cfg.SplitThreshold)
	}
	return nil
}
