// Zq encodes points on the Z-order curve and shows how box queries over
// it decompose into scans.
package main

import (
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"

	"github.com/snorrwe/morton-table/logger"
)

var log = logging.MustGetLogger("zq")

type cli struct {
	cfgPath string
	flags   config
	cfg     config
}

// newRootCmd builds the command tree with base as the configuration
// before any file or flag is applied.
func newRootCmd(base config) *cobra.Command {
	c := &cli{cfg: base}
	root := &cobra.Command{
		Use:               "zq",
		Short:             "Z-order curve encoding and box query decomposition",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	f := root.PersistentFlags()
	f.StringVar(&c.cfgPath, "config", "", "YAML file with a zq section")
	f.Int64Var(&c.flags.Threshold, "threshold", base.Threshold, "longest run of the curve left unsplit")
	f.IntVar(&c.flags.Grid, "grid", base.Grid, "side of the grid of points queries run against")
	f.BoolVar(&c.flags.Adaptive, "adaptive", base.Adaptive, "split by stored entries instead of curve length")
	f.StringVar(&c.flags.LogLevel, "log-level", base.LogLevel, "debug|info|notice|warning|error|critical")

	root.AddCommand(
		c.encodeCmd(),
		c.decodeCmd(),
		c.splitCmd(),
		c.decomposeCmd(),
		c.queryCmd(),
		c.replCmd(),
	)
	return root
}

// setup layers the config file and then any flags set over the base.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if c.cfgPath != "" {
		cfg, err := loadConfig(c.cfgPath, c.cfg)
		if err != nil {
			return err
		}
		c.cfg = cfg
	}
	c.cfg.overlay(cmd.Flags(), c.flags)
	if err := c.cfg.validate(); err != nil {
		return err
	}

	w := cmd.ErrOrStderr()
	color := w == os.Stderr && readline.IsTerminal(int(os.Stderr.Fd()))
	if err := logger.InitConsoleLog(w, c.cfg.LogLevel, color); err != nil {
		return err
	}
	log.Debugf("config %+v", c.cfg)
	return nil
}

func main() {
	if err := newRootCmd(defaultConfig()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "zq: %v\n", err)
		os.Exit(1)
	}
}
