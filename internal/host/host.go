// Package host is a miniature interpreter that drives the tracking subsystem
// from text commands. It backs the skagent console and script runner.
//
// Time is simulated: "call f for 5ms" advances a mock clock instead of
// sleeping, so scripts run instantly and report deterministic timings.
package host

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/LifeMC/skagent"
	"github.com/LifeMC/skagent/config"
	"github.com/LifeMC/skagent/control"
	"github.com/LifeMC/skagent/trackers"
)

var (
	// ErrQuit is returned by Exec for the quit command.
	ErrQuit = errors.New("quit")

	// ErrUsage is wrapped by errors for malformed host commands.
	ErrUsage = errors.New("usage")
)

// Help lists the commands Exec understands.
const Help = `Commands:
  call <function> [args...] [for <duration>]   run a function
  loop <times> [for <duration>]                run a counted loop
  wait <duration> [then <duration>]            schedule a delayed task
  set <variable> [value]                       write a variable, no value means none
  unresolved <player>                          queue a player lookup
  resolve <player>                             complete a queued lookup
  enable [the] agent <kinds> [for <targets>]   turn trackers on
  disable [the] agent <kinds> [for <targets>]  turn trackers off
  status                                       list live trackers
  help                                         show this text
  quit                                         leave the console`

// Host owns one tracking runtime and a simulated interpreter over it.
type Host struct {
	out    io.Writer
	logger *slog.Logger

	clock      *skagent.MockClock
	dir        *skagent.Directory
	in         *skagent.Instrument
	settings   *skagent.Settings
	registry   *trackers.Registry
	targets    *control.Targets
	controller *control.Controller

	// pending are the queued player lookups, keyed by lower-case name.
	mu      sync.Mutex
	pending map[string]struct{}
}

// New creates a Host whose console target and command output write to out.
func New(out io.Writer, logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.Default()
	}
	dir := skagent.NewDirectory().WithLogger(logger)
	clock := skagent.NewMockClock(0)
	settings := skagent.NewSettings()
	registry := trackers.NewRegistry(dir, settings).WithLogger(logger)
	targets := control.NewTargets(skagent.NewWriterTarget(skagent.ConsoleName, out))

	return &Host{
		out:        out,
		logger:     logger,
		clock:      clock,
		dir:        dir,
		in:         skagent.NewInstrument(dir, clock),
		settings:   settings,
		registry:   registry,
		targets:    targets,
		controller: control.NewController(registry, targets).WithLogger(logger),
		pending:    make(map[string]struct{}),
	}
}

// Directory returns the host's agent directory.
func (h *Host) Directory() *skagent.Directory { return h.dir }

// Registry returns the host's tracker registry.
func (h *Host) Registry() *trackers.Registry { return h.registry }

// Targets returns the named output targets effects may address.
func (h *Host) Targets() *control.Targets { return h.targets }

// Settings returns the simulated engine settings.
func (h *Host) Settings() *skagent.Settings { return h.settings }

// Configure applies cfg at startup: the engine's none-value warning toggle
// and the configured tracker set.
func (h *Host) Configure(cfg *config.Config) error {
	h.settings.SetWarnWhenUsingNoneValues(cfg.WarnWhenUsingNoneValues)
	return h.Reconfigure(cfg)
}

// Reconfigure reconciles the live trackers with cfg, then applies the
// none-value warning flag. A live variables tracker holds that flag on, so
// the configured value only lands once no variables tracker is enabled. It
// is safe to call from a config watcher while Exec runs.
func (h *Host) Reconfigure(cfg *config.Config) error {
	changes, err := config.Apply(cfg, h.registry, h.targets)
	h.logger.Info("trackers reconciled", "changes", changes)
	if !h.variablesTracked() {
		h.settings.SetWarnWhenUsingNoneValues(cfg.WarnWhenUsingNoneValues)
	}
	return err
}

func (h *Host) variablesTracked() bool {
	for _, b := range h.registry.Active() {
		if b.Kind == trackers.Variables {
			return true
		}
	}
	return false
}

// Exec runs one command line. Blank lines and lines starting with '#' are
// ignored.
func (h *Host) Exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	fields := strings.Fields(line)
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "enable", "disable":
		_, err := h.controller.Run(line)
		return err
	case "call":
		return h.call(args)
	case "loop":
		return h.loop(args)
	case "wait":
		return h.wait(args)
	case "set":
		return h.set(args)
	case "unresolved":
		return h.unresolved(args)
	case "resolve":
		return h.resolve(args)
	case "status":
		h.status()
		return nil
	case "help":
		fmt.Fprintln(h.out, Help)
		return nil
	case "quit", "exit":
		return ErrQuit
	default:
		return fmt.Errorf("unknown command %q, try help", fields[0])
	}
}

// -----------------------------------------------------------------------------
// Interpreter Actions
// -----------------------------------------------------------------------------

func (h *Host) call(args []string) error {
	args, d, err := splitFor(args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: call <function> [args...] [for <duration>]", ErrUsage)
	}
	values := make([][]any, 0, len(args)-1)
	for _, a := range args[1:] {
		values = append(values, []any{a})
	}
	h.in.Function(name(args[0]), values, func() {
		h.clock.Advance(d)
	})
	return nil
}

func (h *Host) loop(args []string) error {
	args, d, err := splitFor(args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: loop <times> [for <duration>]", ErrUsage)
	}
	times, err := strconv.Atoi(args[0])
	if err != nil || times < 0 {
		return fmt.Errorf("%w: loop count %q is not a non-negative integer", ErrUsage, args[0])
	}
	if times == 0 {
		return nil
	}
	step := d / time.Duration(times)
	rest := d % time.Duration(times)
	h.in.Loop(times, func(i int) {
		h.clock.Advance(step)
		if i == times {
			h.clock.Advance(rest)
		}
	})
	return nil
}

func (h *Host) wait(args []string) error {
	var run time.Duration
	if len(args) == 3 && strings.EqualFold(args[1], "then") {
		d, err := parseDuration(args[2])
		if err != nil {
			return err
		}
		run = d
		args = args[:1]
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: wait <duration> [then <duration>]", ErrUsage)
	}
	d, err := parseDuration(args[0])
	if err != nil {
		return err
	}
	continuation := h.in.Delay(d, func() {
		h.clock.Advance(run)
	})
	h.clock.Advance(d)
	continuation()
	return nil
}

func (h *Host) set(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: set <variable> [value]", ErrUsage)
	}
	var value []any
	if len(args) > 1 {
		value = []any{strings.Join(args[1:], " ")}
	}
	h.in.VariableChanged(name(args[0]), value)
	return nil
}

func (h *Host) unresolved(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: unresolved <player>", ErrUsage)
	}
	h.mu.Lock()
	h.pending[strings.ToLower(args[0])] = struct{}{}
	h.mu.Unlock()
	h.in.PlayerUnresolved(name(args[0]))
	return nil
}

func (h *Host) resolve(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: resolve <player>", ErrUsage)
	}
	key := strings.ToLower(args[0])
	h.mu.Lock()
	_, ok := h.pending[key]
	delete(h.pending, key)
	h.mu.Unlock()
	if !ok {
		return fmt.Errorf("player %q is not queued for resolution", args[0])
	}
	h.in.PlayerResolved(name(args[0]))
	return nil
}

func (h *Host) status() {
	active := h.registry.Active()
	fmt.Fprintf(h.out, "agents: %d, none-value warnings: %t\n",
		h.dir.Len(), h.settings.WarnWhenUsingNoneValues())
	if len(active) == 0 {
		fmt.Fprintln(h.out, "no trackers enabled")
		return
	}
	for _, b := range active {
		fmt.Fprintf(h.out, "  %s -> %s\n", b.Kind, b.Target.Name())
	}
}

// splitFor strips a trailing "for <duration>" from args.
func splitFor(args []string) ([]string, time.Duration, error) {
	n := len(args)
	if n < 2 || !strings.EqualFold(args[n-2], "for") {
		return args, 0, nil
	}
	d, err := parseDuration(args[n-1])
	if err != nil {
		return nil, 0, err
	}
	return args[:n-2], d, nil
}

// parseDuration parses a simulated run time. The mock clock never runs
// backwards, so negative values are usage errors.
func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: negative duration %s", ErrUsage, s)
	}
	return d, nil
}

// name is the identity of a simulated function, variable or player.
type name string

func (n name) Name() string { return string(n) }
