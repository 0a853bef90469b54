// Package config loads the tracking configuration of a host: which trackers
// are enabled at start, how their lines look, and how the host logs.
//
// A configuration file is YAML:
//
//	prefix: "[Skript Tracker] "
//	delay_threshold: 50ms
//	warn_when_using_none_values: false
//	log:
//	  level: info
//	  format: text
//	trackers:
//	  - kind: functions
//	  - kind: delays
//	    targets: [console, ops]
//
// Loading validates the file against an embedded JSON Schema, then applies
// SKAGENT_* environment overrides (SKAGENT_PREFIX, SKAGENT_DELAY_THRESHOLD,
// SKAGENT_WARN_WHEN_USING_NONE_VALUES, SKAGENT_LOG_LEVEL, SKAGENT_LOG_FORMAT).
// [Apply] reconciles a tracker registry with the configured tracker set and
// [Watcher] re-runs a callback whenever the file changes.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/LifeMC/skagent/trackers"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SKAGENT_"

// ErrInvalid is wrapped by every error caused by the configuration's content,
// as opposed to failing to read it.
var ErrInvalid = errors.New("invalid configuration")

//go:embed schema.json
var schemaJSON []byte

// Config is the tracking configuration of a host.
type Config struct {
	// Prefix starts every tracker line. Empty means trackers.DefaultPrefix.
	Prefix string `yaml:"prefix"`

	// DelayThreshold is the minimum continuation run time the delay tracker
	// reports.
	DelayThreshold time.Duration `yaml:"delay_threshold"`

	// WarnWhenUsingNoneValues is the engine's initial none-value warning
	// toggle. The variables tracker may flip it while enabled.
	WarnWhenUsingNoneValues bool `yaml:"warn_when_using_none_values"`

	Log Log `yaml:"log"`

	// Trackers are enabled when the configuration is applied. Every tracker
	// not listed here is disabled.
	Trackers []Tracker `yaml:"trackers"`
}

// Log configures host logging.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Tracker enables one tracker kind for a set of targets. No targets means the
// console.
type Tracker struct {
	Kind    string   `yaml:"kind"`
	Targets []string `yaml:"targets,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Prefix: trackers.DefaultPrefix,
		Log:    Log{Level: "info", Format: "text"},
	}
}

// Load reads, validates and parses the file at path, then applies environment
// overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates and parses YAML data, then applies environment overrides.
// Fields missing from data keep their Default values.
func Parse(data []byte) (*Config, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	if err := validateSchema(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// overrides are the fields the environment may replace. A nil field was not
// set.
type overrides struct {
	Prefix                  *string        `env:"PREFIX"`
	DelayThreshold          *time.Duration `env:"DELAY_THRESHOLD"`
	WarnWhenUsingNoneValues *bool          `env:"WARN_WHEN_USING_NONE_VALUES"`
	LogLevel                *string        `env:"LOG_LEVEL"`
	LogFormat               *string        `env:"LOG_FORMAT"`
}

func (c *Config) applyEnv() error {
	var o overrides
	if err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("%w: parse env: %w", ErrInvalid, err)
	}
	if o.Prefix != nil {
		c.Prefix = *o.Prefix
	}
	if o.DelayThreshold != nil {
		c.DelayThreshold = *o.DelayThreshold
	}
	if o.WarnWhenUsingNoneValues != nil {
		c.WarnWhenUsingNoneValues = *o.WarnWhenUsingNoneValues
	}
	if o.LogLevel != nil {
		c.Log.Level = *o.LogLevel
	}
	if o.LogFormat != nil {
		c.Log.Format = *o.LogFormat
	}
	return nil
}

// Validate checks what the schema cannot: tracker names and log settings
// after environment overrides.
func (c *Config) Validate() error {
	var errs []error
	for i, t := range c.Trackers {
		if _, err := trackers.ParseKind(t.Kind); err != nil {
			errs = append(errs, fmt.Errorf("trackers[%d]: %w", i, err))
		}
	}
	if _, err := c.Log.level(); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}
	if c.DelayThreshold < 0 {
		errs = append(errs, fmt.Errorf("delay_threshold: negative duration %s", c.DelayThreshold))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Options returns the tracker options this configuration describes.
func (c *Config) Options() trackers.Options {
	return trackers.Options{
		Prefix:         c.Prefix,
		DelayThreshold: c.DelayThreshold,
	}
}

// NewLogger builds a logger writing to w with the configured level and format.
func (l Log) NewLogger(w io.Writer) *slog.Logger {
	level, err := l.level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(l.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func (l Log) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// -----------------------------------------------------------------------------
// Schema
// -----------------------------------------------------------------------------

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	return c.Compile("schema.json")
})

// validateSchema checks a decoded YAML document against the embedded schema.
// The document goes through JSON first so the validator sees JSON types.
func validateSchema(doc any) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("config is not representable as JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return err
	}
	return schema.Validate(inst)
}
