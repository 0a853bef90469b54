package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/LifeMC/skagent/internal/host"
	"github.com/LifeMC/skagent/trackers"
)

func newConsoleCmd(opts *rootOptions) *cobra.Command {
	var historyFile string
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Start an interactive interpreter console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd, opts, historyFile)
		},
	}
	cmd.Flags().StringVar(&historyFile, "history", "", "file to keep console history in")
	return cmd
}

func runConsole(cmd *cobra.Command, opts *rootOptions, historyFile string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          colorCyan + "skagent> " + colorReset,
		HistoryFile:     historyFile,
		AutoComplete:    completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	h, closeTargets, err := opts.startHost(ctx, rl.Stdout())
	if err != nil {
		return err
	}
	defer closeTargets()

	out := rl.Stdout()
	fmt.Fprintf(out, "%s%sskagent %s%s - type 'help' for commands\n", colorBold, colorYellow, version, colorReset)

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if strings.TrimSpace(line) == "" {
					break
				}
				continue
			}
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if err := h.Exec(line); err != nil {
			if errors.Is(err, host.ErrQuit) {
				break
			}
			fmt.Fprintf(out, "%s%v%s\n", colorRed, err, colorReset)
		}
		if ctx.Err() != nil {
			break
		}
	}
	fmt.Fprintf(out, "%sGoodbye!%s\n", colorGreen, colorReset)
	return nil
}

func completer() *readline.PrefixCompleter {
	kinds := func(string) []string {
		var names []string
		for _, k := range trackers.AllKinds() {
			names = append(names, k.String())
		}
		return names
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("call"),
		readline.PcItem("loop"),
		readline.PcItem("wait"),
		readline.PcItem("set"),
		readline.PcItem("unresolved"),
		readline.PcItem("resolve"),
		readline.PcItem("enable",
			readline.PcItem("the", readline.PcItem("agent", readline.PcItemDynamic(kinds))),
			readline.PcItem("agent", readline.PcItemDynamic(kinds)),
		),
		readline.PcItem("disable",
			readline.PcItem("the", readline.PcItem("agent", readline.PcItemDynamic(kinds))),
			readline.PcItem("agent", readline.PcItemDynamic(kinds)),
		),
		readline.PcItem("status"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}
