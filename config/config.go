// Package config loads solver settings from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/search"
	"github.com/pdrpinto/search/freecell"
	"github.com/pdrpinto/search/internal/logging"
)

// ByteSize is a byte count that decodes from "512MiB", "2GB" or a bare number.
type ByteSize uint64

type Config struct {
	Strategy        string           `mapstructure:"strategy"`
	DepthLimit      int              `mapstructure:"depth_limit"`
	MemoryLimit     ByteSize         `mapstructure:"memory_limit"`
	MemoryThreshold float64          `mapstructure:"memory_threshold"`
	Reopen          bool             `mapstructure:"reopen"`
	Workers         int              `mapstructure:"workers"`
	LogLevel        string           `mapstructure:"log_level"`
	Layout          freecell.Layout  `mapstructure:"layout"`
	Heuristic       freecell.Weights `mapstructure:"heuristic"`
	Cache           CacheConfig      `mapstructure:"cache"`
	Server          ServerConfig     `mapstructure:"server"`
}

type CacheConfig struct {
	// Backend is one of none, memory or redis.
	Backend  string        `mapstructure:"backend"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Strategy:        string(search.KindBestFirst),
		DepthLimit:      200,
		MemoryLimit:     4 << 30,
		MemoryThreshold: search.DefaultMemoryThreshold,
		Workers:         0,
		LogLevel:        "info",
		Layout:          freecell.Standard,
		Heuristic:       freecell.DefaultWeights,
		Cache: CacheConfig{
			Backend: "none",
			Addr:    "localhost:6379",
			Prefix:  "freecell:solution:",
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Load reads a YAML file on top of Default. A missing path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Decode merges YAML data into cfg. Keys absent from data keep their value.
func Decode(data []byte, cfg *Config) error {
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			byteSizeHook,
		),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

func (c Config) Validate() error {
	var errs []error
	if _, err := search.ParseKind(c.Strategy); err != nil {
		errs = append(errs, err)
	}
	if c.MemoryThreshold <= 0 || c.MemoryThreshold > 1 {
		errs = append(errs, fmt.Errorf("memory_threshold must be in (0, 1], got %v", c.MemoryThreshold))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if err := c.Layout.Validate(); err != nil {
		errs = append(errs, err)
	}
	switch c.Cache.Backend {
	case "none", "memory", "redis":
	default:
		errs = append(errs, fmt.Errorf("cache backend must be none, memory or redis, got %q", c.Cache.Backend))
	}
	return errors.Join(errs...)
}

// Kind returns the configured strategy. Validate must have passed.
func (c Config) Kind() search.Kind {
	kind, _ := search.ParseKind(c.Strategy)
	return kind
}

// SearchOptions translates the settings into engine options.
func (c Config) SearchOptions() []search.Option {
	options := []search.Option{
		search.WithMemoryLimit(uint64(c.MemoryLimit)),
		search.WithMemoryThreshold(c.MemoryThreshold),
		search.WithReopen(c.Reopen),
	}
	if c.Workers > 0 {
		options = append(options, search.WithWorkers(c.Workers))
	}
	return options
}

var byteUnits = []struct {
	suffix string
	factor uint64
}{
	{"KIB", 1 << 10}, {"MIB", 1 << 20}, {"GIB", 1 << 30}, {"TIB", 1 << 40},
	{"KB", 1e3}, {"MB", 1e6}, {"GB", 1e9}, {"TB", 1e12},
	{"K", 1 << 10}, {"M", 1 << 20}, {"G", 1 << 30}, {"T", 1 << 40},
	{"B", 1},
}

// ParseByteSize reads sizes such as "512MiB", "1.5GB", "64k" or "1024".
func ParseByteSize(text string) (ByteSize, error) {
	text = strings.ToUpper(strings.TrimSpace(text))
	factor := uint64(1)
	for _, unit := range byteUnits {
		if strings.HasSuffix(text, unit.suffix) {
			text = strings.TrimSpace(strings.TrimSuffix(text, unit.suffix))
			factor = unit.factor
			break
		}
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid byte size %q", text)
	}
	return ByteSize(value * float64(factor)), nil
}

func byteSizeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(ByteSize(0)) || from.Kind() != reflect.String {
		return data, nil
	}
	return ParseByteSize(data.(string))
}
