package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/LifeMC/skagent/internal/host"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	var keepGoing bool
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Run a file of console commands",
		Long:  "Runs each line of the script as a console command. Stops at the first failing line unless --keep-going is set.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			h, closeTargets, err := opts.startHost(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer closeTargets()

			return runScript(h, args[0], keepGoing, cmd.ErrOrStderr())
		},
	}
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "report failing lines and continue")
	return cmd
}

func runScript(h *host.Host, path string, keepGoing bool, errOut io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open script: %w", err)
	}
	defer f.Close()

	var errs []error
	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		err := h.Exec(scanner.Text())
		if err == nil {
			continue
		}
		if errors.Is(err, host.ErrQuit) {
			return nil
		}
		err = fmt.Errorf("%s:%d: %w", path, n, err)
		if !keepGoing {
			return err
		}
		fmt.Fprintf(errOut, "%s%v%s\n", colorRed, err, colorReset)
		errs = append(errs, err)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return errors.Join(errs...)
}
