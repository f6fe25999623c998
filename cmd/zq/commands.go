package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/snorrwe/morton-table/morton"
	"github.com/snorrwe/morton-table/table"
	"github.com/snorrwe/morton-table/zrange"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	t.SetHeader(header)
	return t
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func parsePoint(xs, ys string) (morton.Point, error) {
	x, err := strconv.Atoi(xs)
	if err != nil {
		return morton.Point{}, errors.Wrapf(err, "x")
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return morton.Point{}, errors.Wrapf(err, "y")
	}
	return morton.MakePoint(x, y)
}

func parseBox(args []string) (zrange.Box, error) {
	lo, err := parsePoint(args[0], args[1])
	if err != nil {
		return zrange.Box{}, errors.Wrap(err, "lo")
	}
	hi, err := parsePoint(args[2], args[3])
	if err != nil {
		return zrange.Box{}, errors.Wrap(err, "hi")
	}
	return zrange.NewBox(lo, hi)
}

func (c *cli) encodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode X Y",
		Short: "print the curve code of a point",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePoint(args[0], args[1])
			if err != nil {
				return err
			}
			t := newTable(cmd.OutOrStdout(), "point", "code", "bits")
			t.Append([]string{p.String(), p.Code().String(), fmt.Sprintf("%032b", uint32(p.Code()))})
			t.Render()
			return nil
		},
	}
}

func (c *cli) decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode CODE",
		Short: "print the point of a curve code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return errors.Wrapf(err, "code")
			}
			code := morton.Code(v)
			t := newTable(cmd.OutOrStdout(), "code", "point")
			t.Append([]string{code.String(), code.Point().String()})
			t.Render()
			return nil
		},
	}
}

func (c *cli) splitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "split LOX LOY HIX HIY",
		Short: "print the LITMAX and BIGMIN of a box",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := parseBox(args)
			if err != nil {
				return err
			}
			if b.Span().Len() < 2 {
				return errors.Wrapf(zrange.ErrInvalidQuery, "%v has nothing to split", b)
			}
			litmax, bigmin := zrange.Split(b.Lo.Code(), b.Lo, b.Hi.Code(), b.Hi)
			lower, upper := zrange.SplitBox(b)
			t := newTable(cmd.OutOrStdout(), "", "code", "point", "half")
			t.Append([]string{"litmax", litmax.String(), litmax.Point().String(), lower.String()})
			t.Append([]string{"bigmin", bigmin.String(), bigmin.Point().String(), upper.String()})
			t.Render()
			return nil
		},
	}
}

func (c *cli) decomposeCmd() *cobra.Command {
	var tree, coalesce bool
	cmd := &cobra.Command{
		Use:   "decompose LOX LOY HIX HIY",
		Short: "print the curve runs covering a box",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := parseBox(args)
			if err != nil {
				return err
			}
			res, err := zrange.DecomposeContext(cmdContext(cmd), b, c.cfg.split())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if tree {
				t := newTable(w, "box", "kind", "len", "depth")
				for _, n := range res.Tree {
					box := strings.Repeat("  ", n.Depth) + n.Box.String()
					t.Append([]string{box, n.Kind.String(), strconv.FormatInt(n.Length, 10), strconv.Itoa(n.Depth)})
				}
				t.Render()
			}
			t := newTable(w, "min", "max", "len", "box")
			for _, l := range res.Leaves {
				t.Append([]string{l.Span.Min.String(), l.Span.Max.String(), strconv.FormatInt(l.Span.Len(), 10), l.Box.String()})
			}
			t.Render()
			if coalesce {
				t := newTable(w, "min", "max", "len")
				for _, iv := range zrange.Coalesce(res.Intervals()) {
					t.Append([]string{iv.Min.String(), iv.Max.String(), strconv.FormatInt(iv.Len(), 10)})
				}
				t.Render()
			}
			fmt.Fprintf(w, "%d leaves, %d candidates, area %d, depth %d\n",
				len(res.Leaves), res.Candidates(), b.Area(), res.MaxDepth)
			return nil
		},
	}
	cmd.Flags().BoolVar(&tree, "tree", false, "print every box visited")
	cmd.Flags().BoolVar(&coalesce, "coalesce", false, "print the leaves merged into contiguous scans")
	return cmd
}

// gridTable holds every point of an n by n grid, valued by its code.
func gridTable(n int) *table.Table[morton.Code] {
	t := table.New[morton.Code]()
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			p := morton.Pt(uint16(x), uint16(y))
			t.Insert(p, p.Code())
		}
	}
	return t
}

func boxArgs(_ *cobra.Command, args []string) error {
	if len(args) == 0 || len(args)%4 != 0 {
		return errors.Newf("want one or more boxes as LOX LOY HIX HIY, have %d args", len(args))
	}
	return nil
}

func (c *cli) queryCmd() *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "query LOX LOY HIX HIY [LOX LOY HIX HIY...]",
		Short: "run a box query against a grid of points",
		Long: `Fill a table with every point of the grid and query it. Several boxes
are queried as their union.`,
		Args: boxArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var boxes []zrange.Box
			for i := 0; i < len(args); i += 4 {
				b, err := parseBox(args[i : i+4])
				if err != nil {
					return errors.Wrapf(err, "box %d", i/4)
				}
				boxes = append(boxes, b)
			}
			return c.query(cmdContext(cmd), cmd.OutOrStdout(), boxes, list)
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "print every matched point")
	return cmd
}

func (c *cli) query(ctx context.Context, w io.Writer, boxes []zrange.Box, list bool) error {
	tb := gridTable(c.cfg.Grid)
	var found []table.Entry[morton.Code]
	var st table.Stats
	var err error
	switch {
	case len(boxes) > 1:
		found, st, err = tb.WithinAny(ctx, c.cfg.split(), boxes...)
	case c.cfg.Adaptive:
		found, st, err = tb.WithinAdaptive(ctx, boxes[0], c.cfg.split())
	default:
		found, st, err = tb.Within(ctx, boxes[0], c.cfg.split())
	}
	if err != nil {
		return err
	}
	if list {
		t := newTable(w, "point", "code")
		for _, e := range found {
			t.Append([]string{e.Point.String(), e.Value.String()})
		}
		t.Render()
	}
	t := newTable(w, "grid", "boxes", "intervals", "scanned", "matched")
	t.Append([]string{
		strconv.Itoa(c.cfg.Grid),
		strconv.Itoa(len(boxes)),
		strconv.Itoa(st.Intervals),
		strconv.Itoa(st.Scanned),
		strconv.Itoa(st.Matched),
	})
	t.Render()
	return nil
}
