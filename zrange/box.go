// Package zrange splits axis-aligned boxes into contiguous runs of the Morton
// curve using the LITMAX/BIGMIN technique.
//
// The intervals produced cover every cell of the box but may also include
// cells outside of it; callers scanning the intervals filter the results with
// Box.Contains.
package zrange

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/snorrwe/morton-table/morton"
)

// Box is an axis-aligned box given by its inclusive min and max corners.
type Box struct {
	Lo, Hi morton.Point
}

// Bx is a convenience constructor for Box.
func Bx(lox, loy, hix, hiy uint16) Box {
	return Box{morton.Pt(lox, loy), morton.Pt(hix, hiy)}
}

// NewBox returns the box with corners lo and hi, or ErrInvalidQuery if lo
// exceeds hi on either axis.
func NewBox(lo, hi morton.Point) (Box, error) {
	b := Box{lo, hi}
	if err := b.Validate(); err != nil {
		return Box{}, err
	}
	return b, nil
}

// Validate returns ErrInvalidQuery if lo exceeds hi on either axis.
func (b Box) Validate() error {
	if b.Lo.X > b.Hi.X || b.Lo.Y > b.Hi.Y {
		return errors.Wrapf(ErrInvalidQuery, "lo %v exceeds hi %v", b.Lo, b.Hi)
	}
	return nil
}

// Contains returns true if p lies inside the box, edges included.
func (b Box) Contains(p morton.Point) bool {
	return b.Lo.X <= p.X && p.X <= b.Hi.X && b.Lo.Y <= p.Y && p.Y <= b.Hi.Y
}

// Overlaps returns true if the two boxes share at least one cell.
func (b Box) Overlaps(o Box) bool {
	return b.Lo.X <= o.Hi.X && b.Hi.X >= o.Lo.X &&
		b.Lo.Y <= o.Hi.Y && b.Hi.Y >= o.Lo.Y
}

// Area returns the number of cells in the box; zero if it is invalid.
func (b Box) Area() uint64 {
	if b.Validate() != nil {
		return 0
	}
	w := uint64(b.Hi.X) - uint64(b.Lo.X) + 1
	h := uint64(b.Hi.Y) - uint64(b.Lo.Y) + 1
	return w * h
}

// Span returns the interval between the codes of the two corners. The codes
// of all cells of a valid box lie within it.
func (b Box) Span() Interval {
	return Interval{b.Lo.Code(), b.Hi.Code()}
}

func (b Box) String() string { return fmt.Sprintf("[%v %v]", b.Lo, b.Hi) }
