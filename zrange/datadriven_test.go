package zrange

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/errors"
	"github.com/snorrwe/morton-table/morton"
)

func scanPoint(t *testing.T, d *datadriven.TestData, key string) morton.Point {
	var s string
	d.ScanArgs(t, key, &s)
	p, err := parsePoint(s)
	if err != nil {
		d.Fatalf(t, "%s: %v", key, err)
	}
	return p
}

func parsePoint(s string) (morton.Point, error) {
	xy := strings.Split(s, ",")
	if len(xy) != 2 {
		return morton.Point{}, errors.Newf("want x,y, have %q", s)
	}
	x, err := strconv.Atoi(xy[0])
	if err != nil {
		return morton.Point{}, err
	}
	y, err := strconv.Atoi(xy[1])
	if err != nil {
		return morton.Point{}, err
	}
	return morton.MakePoint(x, y)
}

func TestDataDriven(t *testing.T) {
	datadriven.RunTest(t, "testdata/decompose", func(t *testing.T, d *datadriven.TestData) string {
		switch d.Cmd {
		case "split":
			lo, hi := scanPoint(t, d, "lo"), scanPoint(t, d, "hi")
			litmax, bigmin := Split(lo.Code(), lo, hi.Code(), hi)
			return fmt.Sprintf("litmax=%v %v bigmin=%v %v\n", litmax, litmax.Point(), bigmin, bigmin.Point())

		case "decompose":
			b := Box{scanPoint(t, d, "lo"), scanPoint(t, d, "hi")}
			cfg := DefaultConfig()
			if d.HasArg("threshold") {
				var th int
				d.ScanArgs(t, "threshold", &th)
				cfg.SplitThreshold = int64(th)
			}
			res, err := Decompose(b, cfg)
			if err != nil {
				return fmt.Sprintf("error: %v\n", err)
			}
			var buf strings.Builder
			if d.HasArg("tree") {
				for _, n := range res.Tree {
					fmt.Fprintf(&buf, "%s%v %v len=%d\n", strings.Repeat("  ", n.Depth), n.Box, n.Kind, n.Length)
				}
			}
			for _, l := range res.Leaves {
				fmt.Fprintf(&buf, "leaf %v %v\n", l.Span, l.Box)
			}
			if d.HasArg("coalesce") {
				for _, iv := range Coalesce(res.Intervals()) {
					fmt.Fprintf(&buf, "scan %v\n", iv)
				}
			}
			fmt.Fprintf(&buf, "leaves=%d candidates=%d area=%d depth=%d\n",
				len(res.Leaves), res.Candidates(), b.Area(), res.MaxDepth)
			return buf.String()

		default:
			d.Fatalf(t, "unknown command %s", d.Cmd)
			return ""
		}
	})
}
