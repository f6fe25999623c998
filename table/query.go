package table

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/snorrwe/morton-table/morton"
	"github.com/snorrwe/morton-table/zrange"
)

// Stats describes the work done by a query.
type Stats struct {
	// Intervals is the number of curve runs scanned.
	Intervals int
	// Scanned is the number of stored entries visited by those scans.
	Scanned int
	// Matched is the number of entries returned.
	Matched int
}

// Within returns the entries inside b, in curve order. b is decomposed up
// front with cfg, independent of what the table holds.
func (t *Table[V]) Within(ctx context.Context, b zrange.Box, cfg zrange.Config) ([]Entry[V], Stats, error) {
	res, err := zrange.DecomposeContext(ctx, b, cfg)
	if err != nil {
		return nil, Stats{}, err
	}
	var out []Entry[V]
	var st Stats
	for _, l := range res.Leaves {
		st.Intervals++
		out = t.collect(out, l.Span, b, &st)
	}
	st.Matched = len(out)
	log.Debugf("within %v: %d intervals, %d scanned, %d matched", b, st.Intervals, st.Scanned, st.Matched)
	return out, st, nil
}

// WithinAdaptive is like Within, but splits a box only while its span holds
// more than cfg.SplitThreshold stored entries. Spans holding nothing are
// skipped without a scan.
func (t *Table[V]) WithinAdaptive(ctx context.Context, b zrange.Box, cfg zrange.Config) ([]Entry[V], Stats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, Stats{}, err
	}
	if err := b.Validate(); err != nil {
		return nil, Stats{}, err
	}

	type work struct {
		box   zrange.Box
		depth int
	}
	limit := int(min(cfg.SplitThreshold, int64(t.Len()))) + 1
	var out []Entry[V]
	var st Stats
	stack := []work{{b, 0}}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, Stats{}, err
		}
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if it.depth > zrange.MaxDepth {
			return nil, Stats{}, errors.AssertionFailedf("adaptive query of %v exceeded depth %d at %v", b, zrange.MaxDepth, it.box)
		}

		span := it.box.Span()
		n := t.Count(span, limit)
		switch {
		case n == 0:
		case int64(n) > cfg.SplitThreshold && span.Len() > 1:
			lower, upper := zrange.SplitBox(it.box)
			stack = append(stack, work{upper, it.depth + 1}, work{lower, it.depth + 1})
		default:
			st.Intervals++
			out = t.collect(out, span, b, &st)
		}
	}
	st.Matched = len(out)
	log.Debugf("within adaptive %v: %d intervals, %d scanned, %d matched", b, st.Intervals, st.Scanned, st.Matched)
	return out, st, nil
}

// WithinAny returns the entries inside at least one of boxes, each once and
// in curve order. Overlapping boxes are scanned once.
func (t *Table[V]) WithinAny(ctx context.Context, cfg zrange.Config, boxes ...zrange.Box) ([]Entry[V], Stats, error) {
	ivs, err := zrange.Cover(ctx, cfg, boxes...)
	if err != nil {
		return nil, Stats{}, err
	}
	var out []Entry[V]
	var st Stats
	for _, iv := range ivs {
		st.Intervals++
		t.Scan(iv, func(e Entry[V]) bool {
			st.Scanned++
			for _, b := range boxes {
				if b.Contains(e.Point) {
					out = append(out, e)
					break
				}
			}
			return true
		})
	}
	st.Matched = len(out)
	log.Debugf("within any of %d boxes: %d intervals, %d scanned, %d matched", len(boxes), st.Intervals, st.Scanned, st.Matched)
	return out, st, nil
}

func (t *Table[V]) collect(out []Entry[V], iv zrange.Interval, b zrange.Box, st *Stats) []Entry[V] {
	t.Scan(iv, func(e Entry[V]) bool {
		st.Scanned++
		if b.Contains(e.Point) {
			out = append(out, e)
		}
		return true
	})
	return out
}

// FindInRange returns the entries strictly closer than radius to center,
// in curve order. The circle's bounding box, clamped to the table bounds,
// is queried adaptively and filtered by distance.
func (t *Table[V]) FindInRange(ctx context.Context, center morton.Point, radius uint32, cfg zrange.Config) ([]Entry[V], Stats, error) {
	if radius == 0 {
		return nil, Stats{}, nil
	}
	// No two points of the domain are 1<<17 apart.
	r := min(int64(radius), 1<<17)
	clamp := func(v int64) uint16 {
		return uint16(max(0, min(v, 0xffff)))
	}
	cx, cy := int64(center.X), int64(center.Y)
	b := zrange.Bx(clamp(cx-r), clamp(cy-r), clamp(cx+r), clamp(cy+r))

	found, st, err := t.WithinAdaptive(ctx, b, cfg)
	if err != nil {
		return nil, Stats{}, errors.Wrapf(err, "find in range %v r=%d", center, radius)
	}
	out := found[:0]
	for _, e := range found {
		dx, dy := int64(e.Point.X)-cx, int64(e.Point.Y)-cy
		if dx*dx+dy*dy < r*r {
			out = append(out, e)
		}
	}
	st.Matched = len(out)
	return out, st, nil
}
