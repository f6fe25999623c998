package zrange

import "github.com/snorrwe/morton-table/morton"

// Split computes the LITMAX and BIGMIN codes of the box with corners
// minPoint and maxPoint. The span [minCode, maxCode] is cut into
// [minCode, litmax] and [bigmin, maxCode], the codes of the two halves of the
// box on either side of the highest bit where the corners diverge.
//
// minCode must be less than maxCode and both must be the codes of their
// points; the results then satisfy minCode <= litmax < bigmin <= maxCode.
func Split(minCode morton.Code, minPoint morton.Point, maxCode morton.Code, maxPoint morton.Point) (litmax, bigmin morton.Code) {
	msb := morton.MSB(uint32(minCode ^ maxCode))

	// x occupies the even bits
	if msb&1 == 0 {
		lx, bx := splitAxis(minPoint.X, maxPoint.X, msb/2)
		return morton.Encode(lx, maxPoint.Y), morton.Encode(bx, minPoint.Y)
	}
	ly, by := splitAxis(minPoint.Y, maxPoint.Y, msb/2)
	return morton.Encode(maxPoint.X, ly), morton.Encode(minPoint.X, by)
}

// splitAxis returns the largest value below and the smallest value above the
// divergent bit at pos, keeping the prefix a and b share above it.
func splitAxis(a, b uint16, pos int) (litmax, bigmin uint16) {
	high := uint16(1) << pos
	low := high - 1
	prefix := a & b &^ low
	return prefix | low, prefix | high
}

// SplitBox cuts b into the two boxes bounded by its LITMAX and BIGMIN. b must
// span more than one cell.
func SplitBox(b Box) (lower, upper Box) {
	litmax, bigmin := Split(b.Lo.Code(), b.Lo, b.Hi.Code(), b.Hi)
	return Box{b.Lo, litmax.Point()}, Box{bigmin.Point(), b.Hi}
}
