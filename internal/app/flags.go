package app

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the command-line parameters for the application. Values
// can also come from a YAML file named by File; flags given on the command
// line win over the file.
type Config struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Scale  int     `yaml:"scale"`
	TPS    int     `yaml:"tps"`
	Seed   int64   `yaml:"seed"`
	Fill   float64 `yaml:"fill"`

	File string `yaml:"-"`
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Width: 200, Height: 200, Scale: 4, TPS: 60, Seed: 42}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "w", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "grid height in cells")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.Float64Var(&c.Fill, "fill", c.Fill, "fraction of cells seeded with sand on reset")
	fs.StringVar(&c.File, "config", c.File, "optional YAML config file")
}

// Load merges the YAML file at path into c. Values are not validated here;
// Parse checks the result after command-line flags have been applied.
func (c *Config) Load(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: grid must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("config: scale must be positive, got %d", c.Scale)
	}
	if c.Fill < 0 || c.Fill > 1 {
		return fmt.Errorf("config: fill must be within [0,1], got %g", c.Fill)
	}
	return nil
}

// Parse binds a fresh Config to fs and parses args. When -config names a
// file it is loaded and the arguments are parsed again so explicit flags
// override file values.
func Parse(fs *flag.FlagSet, args []string) (*Config, error) {
	c := NewConfig()
	c.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.File != "" {
		if err := c.Load(c.File); err != nil {
			return nil, err
		}
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// SimParams returns the flag-style map understood by sand.FromMap.
func (c *Config) SimParams() map[string]string {
	return map[string]string{
		"w":    strconv.Itoa(c.Width),
		"h":    strconv.Itoa(c.Height),
		"seed": strconv.FormatInt(c.Seed, 10),
		"fill": strconv.FormatFloat(c.Fill, 'f', -1, 64),
	}
}
