// Package table implements an in-memory table of values keyed by points
// and ordered along the Z-order curve, so that box and radius queries
// become a handful of contiguous scans.
package table

import (
	"github.com/google/btree"
	"github.com/op/go-logging"

	"github.com/snorrwe/morton-table/morton"
	"github.com/snorrwe/morton-table/zrange"
)

var log = logging.MustGetLogger("table")

// Entry is a stored point and its value.
type Entry[V any] struct {
	Point morton.Point
	Value V
}

// item is what lives in the btree; ordering is by code alone, which is
// unique per point.
type item[V any] struct {
	code morton.Code
	Entry[V]
}

func (it item[V]) Less(than btree.Item) bool {
	return it.code < than.(item[V]).code
}

func key[V any](p morton.Point) item[V] {
	return item[V]{code: p.Code()}
}

// Table maps points to values in curve order. A Table is not safe for
// concurrent mutation; concurrent readers are fine.
type Table[V any] struct {
	bt *btree.BTree
}

// New returns an empty table.
func New[V any]() *Table[V] {
	return &Table[V]{bt: btree.New(8)}
}

// Insert stores v at p, returning the value it replaced, if any.
func (t *Table[V]) Insert(p morton.Point, v V) (prev V, replaced bool) {
	old := t.bt.ReplaceOrInsert(item[V]{code: p.Code(), Entry: Entry[V]{p, v}})
	if old == nil {
		return prev, false
	}
	return old.(item[V]).Value, true
}

// Extend inserts every entry; later entries win on duplicate points.
func (t *Table[V]) Extend(entries ...Entry[V]) {
	for _, e := range entries {
		t.Insert(e.Point, e.Value)
	}
}

// Get returns the value stored at p.
func (t *Table[V]) Get(p morton.Point) (v V, ok bool) {
	it := t.bt.Get(key[V](p))
	if it == nil {
		return v, false
	}
	return it.(item[V]).Value, true
}

func (t *Table[V]) Contains(p morton.Point) bool {
	return t.bt.Has(key[V](p))
}

// Delete removes p, returning the value it held.
func (t *Table[V]) Delete(p morton.Point) (v V, ok bool) {
	it := t.bt.Delete(key[V](p))
	if it == nil {
		return v, false
	}
	return it.(item[V]).Value, true
}

func (t *Table[V]) Clear() { t.bt.Clear(false) }

func (t *Table[V]) Len() int { return t.bt.Len() }

// Bounds returns the box of every point a table can hold.
func (t *Table[V]) Bounds() zrange.Box {
	return zrange.Bx(0, 0, 0xffff, 0xffff)
}

// Scan calls fn for each entry whose code lies in iv, in ascending code
// order, until fn returns false.
func (t *Table[V]) Scan(iv zrange.Interval, fn func(Entry[V]) bool) {
	if iv.Len() <= 0 {
		return
	}
	t.bt.AscendGreaterOrEqual(item[V]{code: iv.Min}, func(i btree.Item) bool {
		it := i.(item[V])
		if it.code > iv.Max {
			return false
		}
		return fn(it.Entry)
	})
}

// Count returns the number of entries in iv, stopping once limit is
// reached. A non-positive limit counts everything.
func (t *Table[V]) Count(iv zrange.Interval, limit int) int {
	n := 0
	t.Scan(iv, func(Entry[V]) bool {
		n++
		return limit <= 0 || n < limit
	})
	return n
}

// All calls fn for every entry in curve order until fn returns false.
func (t *Table[V]) All(fn func(Entry[V]) bool) {
	t.bt.Ascend(func(i btree.Item) bool {
		return fn(i.(item[V]).Entry)
	})
}
