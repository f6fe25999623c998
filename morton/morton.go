// Package morton provides 2D Morton (Z-order) encoding of 16-bit coordinates.
//
// Interleaved values place x on the even bits and y on the odd bits of a
// uint32. Sorting codes gives the Z curve order; runs of consecutive codes
// map to locally clustered cells and can be searched with common methods such
// as binary search.
package morton

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
)

// ErrOutOfRange is returned when a coordinate does not fit in 16 bits.
var ErrOutOfRange = errors.New("coordinate out of range")

// Code is a Morton code; x occupies bits 0,2,...,30 and y bits 1,3,...,31.
type Code uint32

// Point is a cell in the 16-bit coordinate domain.
type Point struct{ X, Y uint16 }

// Pt is a convenience constructor for Point.
func Pt(x, y uint16) Point { return Point{x, y} }

// MakePoint returns the point at x, y or ErrOutOfRange if either component
// lies outside [0, math.MaxUint16]. Values are never truncated.
func MakePoint(x, y int) (Point, error) {
	if x < 0 || x > math.MaxUint16 {
		return Point{}, errors.Wrapf(ErrOutOfRange, "x=%d", x)
	}
	if y < 0 || y > math.MaxUint16 {
		return Point{}, errors.Wrapf(ErrOutOfRange, "y=%d", y)
	}
	return Point{uint16(x), uint16(y)}, nil
}

// MustPoint is like MakePoint but panics if a component is out of range.
func MustPoint(x, y int) Point {
	p, err := MakePoint(x, y)
	if err != nil {
		panic(err)
	}
	return p
}

// Code returns the Morton code of p.
func (p Point) Code() Code { return Encode(p.X, p.Y) }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Point returns the cell encoded by c.
func (c Code) Point() Point { return Decode(c) }

func (c Code) String() string { return fmt.Sprintf("%d", uint32(c)) }

// Dilate expands the bits of a uint16 with one zero bit between each.
func Dilate(x uint16) uint32 {
	n := uint32(x)                 // ----------------fedcba9876543210
	n = (n ^ n<<8) & 0x00ff00ff    // --------fedcba98--------76543210
	n = (n ^ n<<4) & 0x0f0f0f0f    // ----fedc----ba98----7654----3210
	n = (n ^ n<<2) & 0x33333333    // --fe--dc--ba--98--76--54--32--10
	return (n ^ n<<1) & 0x55555555 // -f-e-d-c-b-a-9-8-7-6-5-4-3-2-1-0
}

// Undilate constricts the even bits of x into a uint16, discarding odd bits.
func Undilate(x uint32) uint16 {
	x &= 0x55555555             // -f-e-d-c-b-a-9-8-7-6-5-4-3-2-1-0
	x = (x | x>>1) & 0x33333333 // --fe--dc--ba--98--76--54--32--10
	x = (x | x>>2) & 0x0f0f0f0f // ----fedc----ba98----7654----3210
	x = (x | x>>4) & 0x00ff00ff // --------fedcba98--------76543210
	x = (x | x>>8) & 0x0000ffff // ----------------fedcba9876543210
	return uint16(x)
}

// Encode interleaves x and y into a Morton code.
func Encode(x, y uint16) Code {
	return Code(Dilate(x) | Dilate(y)<<1)
}

// Decode deinterleaves c into its x and y components.
func Decode(c Code) Point {
	return Point{Undilate(uint32(c)), Undilate(uint32(c) >> 1)}
}
