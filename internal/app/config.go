package app

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix namespaces the environment variables read by LoadEnv.
const EnvPrefix = "PATHVIZ_"

// Config represents the command-line parameters for the application.
type Config struct {
	Rows           int
	Cols           int
	CellSize       int
	StepsPerSecond int
	Layout         string
	LayoutOptions  KVList
	Seed           int64
	Verbose        bool
}

// NewConfig returns a Config populated with sensible defaults. The grid
// matches a 1000x600 window at 20px cells.
func NewConfig() *Config {
	return &Config{
		Rows:           30,
		Cols:           50,
		CellSize:       20,
		StepsPerSecond: 60,
		Layout:         "empty",
		Seed:           42,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Rows, "rows", c.Rows, "grid rows")
	fs.IntVar(&c.Cols, "cols", c.Cols, "grid columns")
	fs.IntVar(&c.CellSize, "cell", c.CellSize, "cell size in pixels")
	fs.IntVar(&c.StepsPerSecond, "sps", c.StepsPerSecond, "search expansions per second")
	fs.StringVar(&c.Layout, "layout", c.Layout, "initial layout")
	fs.Var(&c.LayoutOptions, "set", "layout option in key=value form (repeatable)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for randomized layouts")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "verbose logging")
}

// Validate reports configuration values that cannot produce a window.
func (c *Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("grid must be at least 1x1, got %dx%d", c.Rows, c.Cols)
	}
	if c.CellSize <= 0 {
		return fmt.Errorf("cell size must be positive, got %d", c.CellSize)
	}
	return nil
}

// LayoutConfig returns the layout options as a map, with the configured seed
// filled in unless an explicit seed option was given.
func (c *Config) LayoutConfig() map[string]string {
	cfg := c.LayoutOptions.Map()
	if _, ok := cfg["seed"]; !ok {
		cfg["seed"] = strconv.FormatInt(c.Seed, 10)
	}
	return cfg
}

// LoadDotEnv loads the given .env files (".env" when none are named) into the
// process environment. Variables already set are left alone.
func LoadDotEnv(files ...string) error {
	return godotenv.Load(files...)
}

// LoadEnv seeds the config from PATHVIZ_* variables found through lookup.
// Call it before Bind so flags override the environment.
func (c *Config) LoadEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"ROWS", &c.Rows},
		{"COLS", &c.Cols},
		{"CELL", &c.CellSize},
		{"SPS", &c.StepsPerSecond},
	}
	for _, e := range ints {
		raw, ok := lookup(EnvPrefix + e.key)
		if !ok {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%s%s must be an integer: %w", EnvPrefix, e.key, err)
		}
		*e.dst = v
	}
	if raw, ok := lookup(EnvPrefix + "LAYOUT"); ok {
		c.Layout = strings.TrimSpace(raw)
	}
	if raw, ok := lookup(EnvPrefix + "LAYOUT_OPTIONS"); ok {
		for _, kv := range strings.Split(raw, ",") {
			if kv = strings.TrimSpace(kv); kv != "" {
				_ = c.LayoutOptions.Set(kv)
			}
		}
	}
	if raw, ok := lookup(EnvPrefix + "SEED"); ok {
		v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return fmt.Errorf("%sSEED must be an integer: %w", EnvPrefix, err)
		}
		c.Seed = v
	}
	if raw, ok := lookup(EnvPrefix + "VERBOSE"); ok {
		v, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%sVERBOSE must be a boolean: %w", EnvPrefix, err)
		}
		c.Verbose = v
	}
	return nil
}

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

func (l *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*l = append(*l, value)
	return nil
}

// Map returns the pairs as a map. Later keys win.
func (l KVList) Map() map[string]string {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		out[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return out
}
