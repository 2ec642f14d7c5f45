// Package config loads archviz settings from an optional TOML file.
//
// Settings are resolved in three layers: built-in defaults, the config file
// (archviz.toml in the working directory, or the path given with --config),
// then command-line flags, which the CLI applies on top of the loaded value.
//
//	output_dir = "docs/diagrams"
//	engine     = "dot"
//	timeout    = "30s"
//	workers    = 4
//	keep_ir    = true
//	strict     = true
//	diagrams   = ["aws_architecture", "entity_relationship"]
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/rafiki18/archviz/pkg/errors"
	"github.com/rafiki18/archviz/pkg/render"
)

// FileName is the config file looked up in the working directory.
const FileName = "archviz.toml"

// MaxWorkers bounds the worker count.
const MaxWorkers = 64

// Engine selects how builder diagrams are rendered.
type Engine string

const (
	// EngineWASM renders in-process with go-graphviz.
	EngineWASM Engine = "wasm"
	// EngineDot runs the Graphviz dot binary.
	EngineDot Engine = "dot"
)

// Valid reports whether e is a known engine.
func (e Engine) Valid() bool { return e == EngineWASM || e == EngineDot }

// Duration is a time.Duration written as a string ("45s", "2m") in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config holds every setting of a run.
type Config struct {
	OutputDir string   `toml:"output_dir"`
	Engine    Engine   `toml:"engine"`
	DotBinary string   `toml:"dot_binary"`
	Timeout   Duration `toml:"timeout"`
	Workers   int      `toml:"workers"`
	KeepIR    bool     `toml:"keep_ir"`
	Strict    bool     `toml:"strict"`
	Diagrams  []string `toml:"diagrams"`

	// Source is the file the config was read from, empty for defaults.
	Source string `toml:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		OutputDir: ".",
		Engine:    EngineWASM,
		DotBinary: "dot",
		Timeout:   Duration{render.DefaultTimeout},
		Workers:   1,
	}
}

// Load reads path over the defaults. An empty path reads [FileName] from the
// working directory if it exists and returns the defaults otherwise; an
// explicit path must exist. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = FileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key(s) %s", path, strings.Join(keys, ", "))
	}
	cfg.Source = path

	return cfg, cfg.Validate()
}

// Validate checks the settings and fills zero values with defaults.
func (c *Config) Validate() error {
	def := Default()
	if c.OutputDir == "" {
		c.OutputDir = def.OutputDir
	}
	if c.Engine == "" {
		c.Engine = def.Engine
	}
	if c.DotBinary == "" {
		c.DotBinary = def.DotBinary
	}
	if c.Workers == 0 {
		c.Workers = def.Workers
	}

	if err := errors.ValidateOutputDir(c.OutputDir); err != nil {
		return err
	}
	if !c.Engine.Valid() {
		return errors.New(errors.ErrCodeInvalidConfig, "engine must be %q or %q, got %q", EngineWASM, EngineDot, c.Engine)
	}
	if c.Timeout.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "timeout must not be negative, got %s", c.Timeout)
	}
	if c.Workers < 1 || c.Workers > MaxWorkers {
		return errors.New(errors.ErrCodeInvalidConfig, "workers must be between 1 and %d, got %d", MaxWorkers, c.Workers)
	}
	for _, name := range c.Diagrams {
		if err := errors.ValidateDiagramName(name); err != nil {
			return err
		}
	}
	return nil
}

// Renderers builds the renderer pair for the configured engine. Builder
// diagrams use the engine; explicit DOT documents always go through the dot
// binary.
func (c Config) Renderers(opts ...render.Option) (diagrams, documents render.Renderer) {
	cmdOpts := append([]render.Option{
		render.WithTimeout(c.Timeout.Duration),
		render.WithBinary(c.DotBinary),
		render.WithKeepIR(c.KeepIR),
	}, opts...)
	documents = render.NewCommand(cmdOpts...)

	if c.Engine == EngineDot {
		return documents, documents
	}
	return render.NewGraphviz(append([]render.Option{render.WithTimeout(c.Timeout.Duration)}, opts...)...), documents
}
