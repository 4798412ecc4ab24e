// Package mdconfig loads mdtable configuration, and builds the processors and
// logger it describes.
package mdconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/jcorbin/mdtable/internal/textutil"
	"github.com/jcorbin/mdtable/markdown"
	"github.com/jcorbin/mdtable/strikethrough"
	"github.com/jcorbin/mdtable/tables"
)

// FileName is the configuration file looked up when none is given.
const FileName = ".mdtable.yaml"

// Output formats for extracted tables.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
)

var (
	// ErrUnknownExtension is returned for an extension name not in the
	// registry; see ExtensionNames.
	ErrUnknownExtension = errors.New("unknown extension")

	errUnknownFormat = errors.New("unknown output format")
)

var registry = map[string]func() markdown.ProcessorExtension{
	"tables":        tables.New,
	"strikethrough": strikethrough.New,
}

// ExtensionNames returns the sorted names of every known extension.
func ExtensionNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Formats returns the known output formats.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatYAML, FormatMarkdown}
}

// Config is the content of a configuration file.
type Config struct {
	Engine     string    `yaml:"engine"`
	Extensions []string  `yaml:"extensions"`
	Format     string    `yaml:"format"`
	Log        LogConfig `yaml:"log"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used absent any file.
func Default() Config {
	return Config{
		Engine:     markdown.EngineGoldmark,
		Extensions: []string{"tables", "strikethrough"},
		Format:     FormatText,
		Log:        LogConfig{Level: "info"},
	}
}

// Load reads the configuration file at path over the defaults. With an empty
// path, FileName is looked up from the working directory upward, and the
// defaults are used if there is none. It returns the path actually read, if
// any.
func Load(path string) (Config, string, error) {
	if path == "" {
		found, err := textutil.FindUp(FileName)
		if err != nil {
			return Config{}, "", err
		}
		if found == "" {
			return Default(), "", nil
		}
		path = found
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, path, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, path, fmt.Errorf("%v: %w", path, err)
	}
	return cfg, path, nil
}

// Parse decodes YAML over the defaults, rejecting any unknown field.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// io.EOF means an empty document
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate checks every name in the configuration.
func (cfg Config) Validate() error {
	if _, err := markdown.NewEngine(cfg.Engine, nil); err != nil {
		return err
	}
	for _, name := range cfg.Extensions {
		if _, ok := registry[name]; !ok {
			return fmt.Errorf("%w %q; available: %v", ErrUnknownExtension, name, ExtensionNames())
		}
	}
	switch cfg.Format {
	case FormatText, FormatJSON, FormatYAML, FormatMarkdown:
	default:
		return fmt.Errorf("%w %q; available: %v", errUnknownFormat, cfg.Format, Formats())
	}
	if _, err := cfg.Log.level(); err != nil {
		return err
	}
	return nil
}

// NewProcessor builds a processor with the configured engine and extensions,
// in configured order. Every call builds new extension values, so that
// processors share nothing.
func (cfg Config) NewProcessor(log *zap.Logger) (*markdown.Processor, error) {
	exts := make([]markdown.ProcessorExtension, 0, len(cfg.Extensions))
	for _, name := range cfg.Extensions {
		newExt, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("%w %q; available: %v", ErrUnknownExtension, name, ExtensionNames())
		}
		exts = append(exts, newExt())
	}
	return markdown.NewProcessor(
		markdown.WithEngine(cfg.Engine),
		markdown.WithExtensions(exts...),
		markdown.WithLogger(log))
}

func (lc LogConfig) level() (zapcore.Level, error) {
	if lc.Level == "" {
		return zapcore.InfoLevel, nil
	}
	return zapcore.ParseLevel(lc.Level)
}

// Logger builds a development logger writing to stderr, and returns its
// level so that it may be changed later.
func (lc LogConfig) Logger() (*zap.Logger, zap.AtomicLevel, error) {
	lvl, err := lc.level()
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}
	level := zap.NewAtomicLevelAt(lvl)
	config := zap.NewDevelopmentConfig()
	config.Level = level
	config.DisableStacktrace = true
	log, err := config.Build()
	if err != nil {
		return nil, level, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, level, nil
}
