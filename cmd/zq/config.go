package main

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/snorrwe/morton-table/zrange"
)

const (
	defaultGrid     = 32
	maxGrid         = 1 << 12
	defaultLogLevel = "warning"
)

type config struct {
	Threshold int64  `yaml:"threshold"`
	Grid      int    `yaml:"grid"`
	Adaptive  bool   `yaml:"adaptive"`
	LogLevel  string `yaml:"log-level"`
}

type zqConfig struct {
	Zq config `yaml:"zq"`
}

func defaultConfig() config {
	return config{
		Threshold: zrange.DefaultSplitThreshold,
		Grid:      defaultGrid,
		LogLevel:  defaultLogLevel,
	}
}

// loadConfig reads the zq section of a YAML file over base. Unknown keys
// are an error.
func loadConfig(path string, base config) (config, error) {
	f, err := os.Open(path)
	if err != nil {
		return base, errors.Wrap(err, "open config")
	}
	defer f.Close()

	c := zqConfig{Zq: base}
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return base, errors.Wrapf(err, "parse config %s", path)
	}
	return c.Zq, nil
}

// overlay copies the fields of set whose flags were given on the command
// line.
func (c *config) overlay(flags *pflag.FlagSet, set config) {
	if flags.Changed("threshold") {
		c.Threshold = set.Threshold
	}
	if flags.Changed("grid") {
		c.Grid = set.Grid
	}
	if flags.Changed("adaptive") {
		c.Adaptive = set.Adaptive
	}
	if flags.Changed("log-level") {
		c.LogLevel = set.LogLevel
	}
}

func (c config) split() zrange.Config {
	return zrange.Config{SplitThreshold: c.Threshold}
}

func (c config) validate() error {
	if err := c.split().Validate(); err != nil {
		return err
	}
	if c.Grid < 1 || c.Grid > maxGrid {
		return errors.Wrapf(zrange.ErrConfiguration, "grid must be in [1, %d], have %d", maxGrid, c.Grid)
	}
	return nil
}
