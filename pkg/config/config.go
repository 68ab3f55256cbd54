// Package config loads wizard recipes: where the data file comes from, which
// filters to apply and where the result goes.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"

	"github.com/wdm0006/dswizard/dataio"
	"github.com/wdm0006/dswizard/pkg/filter"
)

const (
	DefaultTimeout    = 30 * time.Second
	DefaultSampleRows = 100
)

type Config struct {
	API         APIConfig      `json:"api" yaml:"api" toml:"api"`
	Source      SourceConfig   `json:"source" yaml:"source" toml:"source"`
	Siblings    []SourceConfig `json:"siblings" yaml:"siblings" toml:"siblings"`
	DatasetName string         `json:"dataset_name" yaml:"dataset_name" toml:"dataset_name"`
	Steps       []Step         `json:"steps" yaml:"steps" toml:"steps"`
	Preview     PreviewConfig  `json:"preview" yaml:"preview" toml:"preview"`
}

type APIConfig struct {
	Root string `json:"root" yaml:"root" toml:"root"`
	Key  string `json:"key" yaml:"key" toml:"key"`
	// Timeout is a duration such as "30s".
	Timeout string `json:"timeout" yaml:"timeout" toml:"timeout"`
}

// TimeoutDuration parses Timeout; it is only meaningful after Load.
func (a APIConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(a.Timeout)
	if err != nil {
		return DefaultTimeout
	}
	return d
}

// SourceConfig names a data file: a local Path, or an ID known to the API.
type SourceConfig struct {
	ID         int64  `json:"id" yaml:"id" toml:"id"`
	Path       string `json:"path" yaml:"path" toml:"path"`
	Type       string `json:"type" yaml:"type" toml:"type"`
	HasHeader  bool   `json:"has_header" yaml:"has_header" toml:"has_header"`
	Delimiter  string `json:"delimiter" yaml:"delimiter" toml:"delimiter"`
	SampleRows int    `json:"sample_rows" yaml:"sample_rows" toml:"sample_rows"`
}

func (s SourceConfig) Local() bool { return s.Path != "" }

// Options are the reader options of a local source.
func (s SourceConfig) Options() dataio.Options {
	o := dataio.Options{Type: s.Type, HasHeader: s.HasHeader, SampleRows: s.SampleRows}
	if s.Delimiter != "" {
		o.Delimiter, _ = utf8.DecodeRuneInString(s.Delimiter)
	}
	return o
}

// Step configures one filter. It holds a single key, the filter kind.
type Step map[string]StepOptions

// Kind returns the kind of the step and its options.
func (s Step) Kind() (filter.Kind, StepOptions, error) {
	if len(s) != 1 {
		return "", StepOptions{}, fmt.Errorf("step must have exactly one key, got %d", len(s))
	}
	for k, o := range s {
		kind, ok := filter.ParseKind(k)
		if !ok {
			return "", StepOptions{}, fmt.Errorf("unknown filter %q", k)
		}
		return kind, o, nil
	}
	panic("unreachable")
}

// StepOptions holds the options of every filter kind; each kind reads its own.
type StepOptions struct {
	// column-select: column (name or index) to type tag, and output columns.
	Types   map[string]string `json:"types" yaml:"types" toml:"types"`
	Outputs []string          `json:"outputs" yaml:"outputs" toml:"outputs"`
	// balance
	Sample string `json:"sample" yaml:"sample" toml:"sample"`
	// merge
	Target int64 `json:"target" yaml:"target" toml:"target"`
	// split
	Percent int    `json:"percent" yaml:"percent" toml:"percent"`
	Train   string `json:"train" yaml:"train" toml:"train"`
	Test    string `json:"test" yaml:"test" toml:"test"`
}

type PreviewConfig struct {
	Dir  string `json:"dir" yaml:"dir" toml:"dir"`
	Type string `json:"type" yaml:"type" toml:"type"`
	Seed int64  `json:"seed" yaml:"seed" toml:"seed"`
}

// Load reads the recipe at path. The decoder is picked by extension: .json,
// .yaml/.yml or .toml.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(raw, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &cfg)
	case ".toml":
		err = toml.Unmarshal(raw, &cfg)
	default:
		return nil, fmt.Errorf("%s: unsupported config format %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.applyDefaults()
	cfg.resolvePaths(filepath.Dir(path))
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.API.Timeout == "" {
		c.API.Timeout = DefaultTimeout.String()
	}
	if c.Source.Local() && c.Source.ID == 0 {
		c.Source.ID = 1
	}
	sources := []*SourceConfig{&c.Source}
	for i := range c.Siblings {
		sources = append(sources, &c.Siblings[i])
	}
	next := c.Source.ID
	for _, s := range sources {
		if s.SampleRows == 0 {
			s.SampleRows = DefaultSampleRows
		}
		if s.Local() && s.ID == 0 {
			next++
			s.ID = next
		}
		if s.ID > next {
			next = s.ID
		}
	}
	for _, st := range c.Steps {
		for k, o := range st {
			kind, _ := filter.ParseKind(k)
			switch kind {
			case filter.KindSplit:
				if o.Percent == 0 {
					o.Percent = filter.DefaultSplitPercent
				}
			case filter.KindBalance:
				if o.Sample == "" {
					o.Sample = string(filter.Uniform)
				}
			}
			st[k] = o
		}
	}
	if c.Preview.Type == "" {
		c.Preview.Type = "csv"
	}
	if c.Preview.Dir == "" {
		c.Preview.Dir = "."
	}
}

// resolvePaths makes relative local paths relative to the recipe directory.
func (c *Config) resolvePaths(dir string) {
	abs := func(p string) string {
		if p == "" || p == "-" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	c.Source.Path = abs(c.Source.Path)
	for i := range c.Siblings {
		c.Siblings[i].Path = abs(c.Siblings[i].Path)
	}
	c.Preview.Dir = abs(c.Preview.Dir)
}

func (c *Config) validate() error {
	var errs ValidationErrors
	add := func(path, format string, args ...any) {
		errs = append(errs, ValidationError{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	if _, err := time.ParseDuration(c.API.Timeout); err != nil {
		add("api.timeout", "%v", err)
	}
	if !c.Source.Local() {
		if c.Source.ID == 0 {
			add("source", "either path or id is required")
		}
		if c.API.Root == "" {
			add("api.root", "required for a remote source")
		}
		if c.API.Key == "" {
			add("api.key", "required for a remote source")
		}
		if len(c.Siblings) > 0 {
			add("siblings", "only supported with a local source")
		}
	}
	ids := map[int64]bool{}
	check := func(path string, s SourceConfig) {
		if utf8.RuneCountInString(s.Delimiter) > 1 {
			add(path+".delimiter", "must be a single character, got %q", s.Delimiter)
		}
		switch s.Type {
		case "", "csv", "jsonl", "parquet":
		default:
			add(path+".type", "unsupported file type %q", s.Type)
		}
		if ids[s.ID] {
			add(path+".id", "duplicate id %d", s.ID)
		}
		ids[s.ID] = true
	}
	check("source", c.Source)
	for i, s := range c.Siblings {
		p := fmt.Sprintf("siblings[%d]", i)
		if !s.Local() {
			add(p+".path", "required")
		}
		check(p, s)
	}

	seen := map[filter.Kind]bool{}
	for i, st := range c.Steps {
		p := fmt.Sprintf("steps[%d]", i)
		kind, o, err := st.Kind()
		if err != nil {
			add(p, "%v", err)
			continue
		}
		if seen[kind] {
			add(p, "filter %s appears twice", kind)
		}
		seen[kind] = true
		switch kind {
		case filter.KindSplit:
			if o.Percent < filter.MinSplitPercent || o.Percent > filter.MaxSplitPercent {
				add(p+".percent", "must be within %d..%d, got %d", filter.MinSplitPercent, filter.MaxSplitPercent, o.Percent)
			}
		case filter.KindBalance:
			if _, err := filter.ParseSampling(o.Sample); err != nil {
				add(p+".sample", "%v", err)
			}
		}
	}

	switch c.Preview.Type {
	case "csv", "jsonl", "parquet":
	default:
		add("preview.type", "unsupported file type %q", c.Preview.Type)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
