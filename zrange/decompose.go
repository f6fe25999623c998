package zrange

import (
	"context"

	"github.com/cockroachdb/errors"
)

// MaxDepth bounds the number of splits between the query box and any leaf;
// each split consumes at least one bit of the 32-bit code.
const MaxDepth = 32

// NodeKind classifies a node of the decomposition tree.
type NodeKind uint8

const (
	// SplitNode spans more than the threshold and was split in two.
	SplitNode NodeKind = iota
	// LeafNode became a leaf interval.
	LeafNode
	// EmptyNode has a non-positive span and contributed nothing.
	EmptyNode
)

func (k NodeKind) String() string {
	switch k {
	case SplitNode:
		return "split"
	case LeafNode:
		return "leaf"
	case EmptyNode:
		return "empty"
	}
	return "unknown"
}

// Node is a box visited while decomposing a query.
type Node struct {
	Box    Box
	Length int64
	Depth  int
	Kind   NodeKind
}

// Leaf is a run of the curve to be scanned, along with the box it was cut for.
type Leaf struct {
	Box  Box
	Span Interval
}

// Result of decomposing a single box.
type Result struct {
	// Leaves in curve order.
	Leaves []Leaf
	// Tree holds every node visited, parents before children, lower halves
	// before upper halves.
	Tree []Node
	// MaxDepth is the depth of the deepest node visited; the query box has
	// depth 0.
	MaxDepth int
}

// Intervals returns the spans of the leaves in curve order.
func (r Result) Intervals() []Interval {
	ivs := make([]Interval, len(r.Leaves))
	for i, l := range r.Leaves {
		ivs[i] = l.Span
	}
	return ivs
}

// Candidates returns the total length of the leaves; the number of codes a
// full scan of them visits.
func (r Result) Candidates() uint64 {
	var n uint64
	for _, l := range r.Leaves {
		n += uint64(l.Span.Len())
	}
	return n
}

// Decompose splits b into runs of the curve no longer than
// cfg.SplitThreshold. The union of the leaves covers every cell of b.
func Decompose(b Box, cfg Config) (Result, error) {
	return DecomposeContext(context.Background(), b, cfg)
}

// DecomposeContext is like Decompose but stops early with ctx's error once
// ctx is done.
func DecomposeContext(ctx context.Context, b Box, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if err := b.Validate(); err != nil {
		return Result{}, err
	}

	type item struct {
		box   Box
		depth int
	}
	var res Result
	// LIFO; the upper half is pushed first so the lower half is visited first.
	stack := make([]item, 1, MaxDepth+1)
	stack[0] = item{b, 0}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if it.depth > MaxDepth {
			return Result{}, errors.AssertionFailedf("decomposition of %v exceeded depth %d at %v", b, MaxDepth, it.box)
		}
		if it.depth > res.MaxDepth {
			res.MaxDepth = it.depth
		}

		span := it.box.Span()
		n := Node{Box: it.box, Length: span.Len(), Depth: it.depth}
		switch {
		case n.Length <= 0:
			n.Kind = EmptyNode
		case n.Length <= cfg.SplitThreshold:
			n.Kind = LeafNode
			res.Leaves = append(res.Leaves, Leaf{it.box, span})
		default:
			n.Kind = SplitNode
			lower, upper := SplitBox(it.box)
			stack = append(stack, item{upper, it.depth + 1}, item{lower, it.depth + 1})
		}
		res.Tree = append(res.Tree, n)
	}
	return res, nil
}
