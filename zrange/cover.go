package zrange

import (
	"context"

	"golang.org/x/exp/slices"
)

// Cover decomposes every box and returns the union of their leaves as
// sorted, disjoint, non-adjacent intervals.
func Cover(ctx context.Context, cfg Config, boxes ...Box) ([]Interval, error) {
	var ivs []Interval
	for _, b := range boxes {
		res, err := DecomposeContext(ctx, b, cfg)
		if err != nil {
			return nil, err
		}
		ivs = append(ivs, res.Intervals()...)
	}
	slices.SortFunc(ivs, func(a, b Interval) bool { return a.Min < b.Min })
	return Coalesce(ivs), nil
}
