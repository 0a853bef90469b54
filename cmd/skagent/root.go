package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/LifeMC/skagent"
	"github.com/LifeMC/skagent/config"
	"github.com/LifeMC/skagent/internal/host"
	"github.com/LifeMC/skagent/metrics"
)

// logTargetName addresses the target that forwards tracker lines to the log.
const logTargetName = "log"

type rootOptions struct {
	configPath  string
	logLevel    string
	logFormat   string
	metricsAddr string
	fileTargets []string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "skagent",
		Short:         "Simulated script interpreter with tracking agents",
		Long:          "Runs a tiny script interpreter whose function calls, loops, delays, variable writes and player lookups can be traced by enabling agents.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML configuration file, reloaded on change")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format: text, json (overrides config)")
	root.PersistentFlags().StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	root.PersistentFlags().StringArrayVar(&opts.fileTargets, "target", nil, "extra output target as name=path, appended to the file (repeatable)")

	root.AddCommand(
		newConsoleCmd(opts),
		newRunCmd(opts),
		newKindsCmd(),
	)
	return root
}

// loadConfig reads the configured file, or defaults, and applies flag
// overrides.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// startHost builds a configured Host writing to out and starts the config
// watcher and metrics server, both of which stop with ctx. The returned
// function flushes and closes file targets.
func (o *rootOptions) startHost(ctx context.Context, out io.Writer) (*host.Host, func(), error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := cfg.Log.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	h := host.New(out, logger)
	h.Targets().Add(skagent.NewLoggerTarget(logTargetName, logger))
	closeTargets, err := o.addFileTargets(h)
	if err != nil {
		return nil, nil, err
	}
	if err := h.Configure(cfg); err != nil {
		logger.Warn("configuration partially applied", "error", err)
	}

	if o.configPath != "" {
		watcher := config.NewWatcher(o.configPath, func(cfg *config.Config) {
			if err := h.Reconfigure(cfg); err != nil {
				logger.Warn("configuration partially applied", "error", err)
			}
		}).WithLogger(logger)
		go func() {
			if err := watcher.Run(ctx); err != nil {
				logger.Error("config watcher stopped", "error", err)
			}
		}()
	}

	if o.metricsAddr != "" {
		if err := serveMetrics(ctx, o.metricsAddr, h.Directory(), logger); err != nil {
			closeTargets()
			return nil, nil, err
		}
	}
	return h, closeTargets, nil
}

// addFileTargets registers one queued target per --target flag.
func (o *rootOptions) addFileTargets(h *host.Host) (func(), error) {
	var closers []func()
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}
	for _, spec := range o.fileTargets {
		name, path, ok := strings.Cut(spec, "=")
		if !ok || name == "" || path == "" {
			closeAll()
			return nil, fmt.Errorf("invalid --target %q, want name=path", spec)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("open target %s: %w", name, err)
		}
		target := skagent.NewQueuedTarget(skagent.NewWriterTarget(name, f))
		if !h.Targets().Add(target) {
			target.Close()
			f.Close()
			closeAll()
			return nil, fmt.Errorf("duplicate target name %q", name)
		}
		closers = append(closers, func() {
			target.Close()
			f.Close()
		})
	}
	return closeAll, nil
}

func serveMetrics(ctx context.Context, addr string, dir *skagent.Directory, logger *slog.Logger) error {
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)
	collector.Attach(dir)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	select {
	case err := <-errCh:
		collector.Detach()
		return fmt.Errorf("metrics server: %w", err)
	case <-time.After(100 * time.Millisecond):
	}
	logger.Info("serving metrics", "addr", addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		collector.Detach()
	}()
	return nil
}
