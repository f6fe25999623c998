package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/chzyer/readline"
	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snorrwe/morton-table/morton"
	"github.com/snorrwe/morton-table/zrange"
)

func run(args ...string) (string, error) {
	var out, stderr bytes.Buffer
	root := newRootCmd(defaultConfig())
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&stderr)
	err := root.Execute()
	return out.String(), err
}

func row(cells ...string) *regexp.Regexp {
	expr := `\|`
	for _, c := range cells {
		expr += `\s*` + regexp.QuoteMeta(c) + `\s*\|`
	}
	return regexp.MustCompile(expr)
}

func TestEncodeDecode(t *testing.T) {
	out, err := run("encode", "9", "7")
	require.NoError(t, err)
	assert.Regexp(t, row("(9,7)", "107", "00000000000000000000000001101011"), out)

	out, err = run("decode", "107")
	require.NoError(t, err)
	assert.Regexp(t, row("107", "(9,7)"), out)

	_, err = run("encode", "70000", "1")
	assert.True(t, errors.Is(err, morton.ErrOutOfRange), "%v", err)
	_, err = run("encode", "1")
	assert.Error(t, err)
	_, err = run("decode", "x")
	assert.Error(t, err)
	_, err = run("decode", "4294967296")
	assert.Error(t, err)
}

func TestSplit(t *testing.T) {
	out, err := run("split", "5", "5", "9", "8")
	require.NoError(t, err)
	assert.Regexp(t, row("litmax", "107", "(9,7)", "[(5,5) (9,7)]"), out)
	assert.Regexp(t, row("bigmin", "145", "(5,8)", "[(5,8) (9,8)]"), out)

	_, err = run("split", "3", "3", "3", "3")
	assert.True(t, errors.Is(err, zrange.ErrInvalidQuery), "%v", err)
	_, err = run("split", "4", "3", "3", "3")
	assert.True(t, errors.Is(err, zrange.ErrInvalidQuery), "%v", err)
}

func TestDecompose(t *testing.T) {
	out, err := run("decompose", "10", "12", "16", "16")
	require.NoError(t, err)
	assert.Contains(t, out, "6 leaves, 48 candidates, area 35, depth 3\n")
	assert.Regexp(t, row("416", "426", "11", "[(16,12) (16,15)]"), out)

	out, err = run("decompose", "--tree", "--coalesce", "--threshold", "64", "10", "12", "16", "16")
	require.NoError(t, err)
	assert.Contains(t, out, "4 leaves, 58 candidates, area 35, depth 2\n")
	assert.Regexp(t, row("[(10,12) (16,16)]", "split", "541", "0"), out)
	assert.Regexp(t, row("[(16,16) (16,16)]", "leaf", "1", "2"), out)
	assert.Regexp(t, row("580", "597", "18"), out)

	_, err = run("decompose", "--threshold", "0", "10", "12", "16", "16")
	assert.True(t, errors.Is(err, zrange.ErrConfiguration), "%v", err)
	_, err = run("decompose", "5", "5", "4", "9")
	assert.True(t, errors.Is(err, zrange.ErrInvalidQuery), "%v", err)
}

func TestQuery(t *testing.T) {
	out, err := run("query", "10", "12", "16", "16")
	require.NoError(t, err)
	assert.Regexp(t, row("32", "1", "6", "48", "35"), out)

	out, err = run("query", "--grid", "4", "0", "0", "1", "1", "1", "1", "2", "2", "2", "2", "3", "3")
	require.NoError(t, err)
	assert.Regexp(t, row("4", "3", "1", "16", "10"), out)

	_, err = run("query", "1", "1", "6")
	assert.Error(t, err)
	_, err = run("query", "1", "1", "6", "6", "1", "1", "0", "0")
	assert.True(t, errors.Is(err, zrange.ErrInvalidQuery), "%v", err)

	out, err = run("query", "--adaptive", "--grid", "8", "--list", "1", "1", "6", "6")
	require.NoError(t, err)
	assert.Regexp(t, row("(6,6)", "60"), out)
	assert.NotContains(t, out, "(7,7)")

	_, err = run("query", "--grid", "0", "1", "1", "6", "6")
	assert.True(t, errors.Is(err, zrange.ErrConfiguration), "%v", err)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zq.yaml")
	require.NoError(t, os.WriteFile(path, []byte("zq:\n  threshold: 64\n  grid: 16\n"), 0644))

	cfg, err := loadConfig(path, defaultConfig())
	require.NoError(t, err)
	assert.Equal(t, config{Threshold: 64, Grid: 16, LogLevel: defaultLogLevel}, cfg)

	out, err := run("--config", path, "decompose", "10", "12", "16", "16")
	require.NoError(t, err)
	assert.Contains(t, out, "4 leaves, 58 candidates")

	// flags win over the file
	out, err = run("--config", path, "--threshold", "16", "decompose", "10", "12", "16", "16")
	require.NoError(t, err)
	assert.Contains(t, out, "6 leaves, 48 candidates")

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	cfg, err = loadConfig(empty, defaultConfig())
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("zq:\n  treshold: 64\n"), 0644))
	_, err = run("--config", bad, "decompose", "10", "12", "16", "16")
	assert.Error(t, err)

	_, err = run("--config", filepath.Join(dir, "missing.yaml"), "encode", "1", "1")
	assert.Error(t, err)

	_, err = run("--log-level", "loud", "encode", "1", "1")
	assert.Error(t, err)
}

func TestRepl(t *testing.T) {
	lines := []string{
		"encode 9 7",
		"",
		"bogus",
		"repl",
		"decompose --threshold 64 10 12 16 16",
		"decompose 10 12 16 16",
		"exit",
		"encode 1 1",
	}
	readLine := func() (string, error) {
		if len(lines) == 0 {
			return "", io.EOF
		}
		l := lines[0]
		lines = lines[1:]
		return l, nil
	}

	var stdout, stderr bytes.Buffer
	c := &cli{cfg: defaultConfig()}
	require.NoError(t, c.repl(readLine, &stdout, &stderr))
	assert.Equal(t, []string{"encode 1 1"}, lines)

	out := stdout.String()
	assert.Contains(t, out, "(9,7)")
	assert.Contains(t, out, "4 leaves, 58 candidates")
	// a flag on one line does not carry over to the next
	assert.Contains(t, out, "6 leaves, 48 candidates")
	assert.Contains(t, stderr.String(), `unknown command "bogus"`)
	assert.Contains(t, stderr.String(), "already in a repl")

	interrupted := func() (string, error) { return "", readline.ErrInterrupt }
	assert.NoError(t, c.repl(interrupted, &stdout, &stderr))
}

func TestOverlay(t *testing.T) {
	flags := pflag.NewFlagSet("zq", pflag.ContinueOnError)
	var set config
	flags.Int64Var(&set.Threshold, "threshold", 0, "")
	flags.IntVar(&set.Grid, "grid", 0, "")
	flags.BoolVar(&set.Adaptive, "adaptive", false, "")
	flags.StringVar(&set.LogLevel, "log-level", "", "")
	require.NoError(t, flags.Parse([]string{"--grid=7", "--adaptive"}))

	cfg := defaultConfig()
	cfg.overlay(flags, set)
	assert.Equal(t, config{Threshold: zrange.DefaultSplitThreshold, Grid: 7, Adaptive: true, LogLevel: defaultLogLevel}, cfg)
}
