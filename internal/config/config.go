package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/vvakame/gqldocgen/internal/docgen"
)

const DefaultFilename = "gqldocgen.yml"

// Config is the content of gqldocgen.yml.
type Config struct {
	// Schema lists SDL file patterns. "**" is supported.
	Schema StringList `yaml:"schema"`
	// Documents lists hand-written operation documents. Root fields
	// matching one of their operation names are not generated.
	Documents StringList `yaml:"documents,omitempty"`
	// Output is the file the documents are written to. "-" means stdout.
	Output         string `yaml:"output"`
	RecursionLimit *int   `yaml:"recursionLimit,omitempty"`
	Validate       bool   `yaml:"validate,omitempty"`
}

// StringList accepts both a single string and a sequence of strings.
type StringList []string

func (l *StringList) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var list []string
	if err := unmarshal(&list); err == nil {
		*l = list
		return nil
	}

	var single string
	if err := unmarshal(&single); err != nil {
		return err
	}
	*l = StringList{single}
	return nil
}

func Default() *Config {
	return &Config{
		Output: "-",
	}
}

// Load reads the config file at filename. Relative paths in the file are
// resolved against the file's directory.
func Load(filename string) (*Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("unable to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.UnmarshalWithOptions(b, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("unable to parse config %s: %w", filename, err)
	}

	cfg.resolvePaths(filepath.Dir(filename))

	return cfg, nil
}

func (cfg *Config) resolvePaths(base string) {
	if base == "" || base == "." {
		return
	}
	resolve := func(p string) string {
		if p == "" || p == "-" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	for i, p := range cfg.Schema {
		cfg.Schema[i] = resolve(p)
	}
	for i, p := range cfg.Documents {
		cfg.Documents[i] = resolve(p)
	}
	cfg.Output = resolve(cfg.Output)
}

// Limit returns the configured recursion limit or the default one.
func (cfg *Config) Limit() int {
	if cfg.RecursionLimit == nil {
		return docgen.DefaultRecursionLimit
	}
	return *cfg.RecursionLimit
}

// Check reports every problem found in cfg at once.
func (cfg *Config) Check() error {
	var result *multierror.Error

	if len(cfg.Schema) == 0 {
		result = multierror.Append(result, errors.New("schema: at least one file pattern is required"))
	}
	for i, p := range cfg.Schema {
		if p == "" {
			result = multierror.Append(result, fmt.Errorf("schema[%d]: empty pattern", i))
		}
	}
	for i, p := range cfg.Documents {
		if p == "" {
			result = multierror.Append(result, fmt.Errorf("documents[%d]: empty pattern", i))
		}
	}
	if cfg.Output == "" {
		result = multierror.Append(result, errors.New("output: is required"))
	}
	if cfg.RecursionLimit != nil && *cfg.RecursionLimit < 0 {
		result = multierror.Append(result, fmt.Errorf("recursionLimit: must not be negative, got %d", *cfg.RecursionLimit))
	}

	return result.ErrorOrNil()
}
