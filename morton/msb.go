package morton

// http://supertech.csail.mit.edu/papers/debruijn.pdf
var deBruijnBitPos = [32]int{
	0, 9, 1, 10, 13, 21, 2, 29, 11, 14, 16, 18, 22, 25, 3, 30,
	8, 12, 20, 28, 15, 17, 24, 7, 19, 27, 23, 6, 26, 5, 4, 31,
}

// MSB returns the position of the most significant set bit of v.
// v must be non-zero; MSB(0) reports 0, indistinguishable from MSB(1).
func MSB(v uint32) int {
	// round down to one less than a power of 2
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	return deBruijnBitPos[(v*0x07c4acdd)>>27]
}
