package zrange

import (
	"fmt"

	"github.com/snorrwe/morton-table/morton"
)

// Interval is a closed run [Min, Max] of Morton codes.
type Interval struct {
	Min, Max morton.Code
}

// Len returns Max - Min + 1; zero or negative if Max < Min.
func (iv Interval) Len() int64 {
	return int64(iv.Max) - int64(iv.Min) + 1
}

// Contains returns true if c lies within the interval.
func (iv Interval) Contains(c morton.Code) bool {
	return iv.Min <= c && c <= iv.Max
}

func (iv Interval) String() string { return fmt.Sprintf("[%v,%v]", iv.Min, iv.Max) }

// Coalesce merges intervals that touch or overlap on the curve. The input
// must be sorted by Min, as Decompose returns it; the input slice is reused.
func Coalesce(ivs []Interval) []Interval {
	if len(ivs) == 0 {
		return ivs
	}
	out := ivs[:1]
	for _, iv := range ivs[1:] {
		last := &out[len(out)-1]
		if int64(iv.Min) <= int64(last.Max)+1 {
			if iv.Max > last.Max {
				last.Max = iv.Max
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}
