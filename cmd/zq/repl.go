package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

func (c *cli) replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "run commands interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tmp, err := os.CreateTemp("", "zq")
			if err != nil {
				return err
			}
			tmp.Close()
			defer os.Remove(tmp.Name())

			rl, err := readline.NewEx(&readline.Config{
				Prompt:            "zq: ",
				HistoryFile:       tmp.Name(),
				AutoComplete:      completer(cmd.Root()),
				InterruptPrompt:   "^C",
				EOFPrompt:         "exit",
				HistorySearchFold: true,
			})
			if err != nil {
				return err
			}
			defer rl.Close()
			return c.repl(rl.Readline, rl.Stdout(), rl.Stderr())
		},
	}
}

func completer(root *cobra.Command) readline.AutoCompleter {
	var items []readline.PrefixCompleterInterface
	for _, sub := range root.Commands() {
		if sub.Name() != "repl" {
			items = append(items, readline.PcItem(sub.Name()))
		}
	}
	items = append(items, readline.PcItem("help"), readline.PcItem("exit"))
	return readline.NewPrefixCompleter(items...)
}

// repl runs each line read as a zq command line under the current
// configuration, until exit, EOF or an interrupt on an empty line.
func (c *cli) repl(readLine func() (string, error), stdout, stderr io.Writer) error {
	for {
		line, err := readLine()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "exit", "quit":
			return nil
		case "repl":
			fmt.Fprintln(stderr, "already in a repl")
			continue
		}

		sub := newRootCmd(c.cfg)
		sub.SetArgs(args)
		sub.SetOut(stdout)
		sub.SetErr(stderr)
		if err := sub.Execute(); err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
		}
	}
}
