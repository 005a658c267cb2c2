package utils

import (
	"encoding/json"
	"flag"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Config holds the configuration for the game
type Config struct {
	Width                int           `json:"width"`
	Height               int           `json:"height"`
	SecondsPerGeneration float64       `json:"seconds_per_generation"`
	FrameRate            time.Duration `json:"frame_rate"`
	Objects              []string      `json:"objects"` // "path,x,y" placements
	MaxGenerations       int           `json:"max_generations"`
	StagnationThreshold  int           `json:"stagnation_threshold"`
	LogLevel             string        `json:"log_level"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:                60,
		Height:               30,
		SecondsPerGeneration: 0.15,
		FrameRate:            20 * time.Millisecond,
		MaxGenerations:       0, // unlimited
		StagnationThreshold:  5,
		LogLevel:             "info",
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// objectList collects repeated -object flags
type objectList struct {
	objects *[]string
}

func (l objectList) String() string {
	if l.objects == nil {
		return ""
	}
	return strings.Join(*l.objects, " ")
}

func (l objectList) Set(s string) error {
	*l.objects = append(*l.objects, s)
	return nil
}

// Bind attaches the configuration to the provided FlagSet
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "width of the grid in cells")
	fs.IntVar(&c.Height, "height", c.Height, "height of the grid in cells")
	fs.Float64Var(&c.SecondsPerGeneration, "seconds-per-generation", c.SecondsPerGeneration, "seconds to show each generation for")
	fs.DurationVar(&c.FrameRate, "frame-rate", c.FrameRate, "interval between redraws")
	fs.Var(objectList{&c.Objects}, "object", "pattern placement as path,x,y (repeatable)")
	fs.IntVar(&c.MaxGenerations, "max-generations", c.MaxGenerations, "stop after this many generations (0 = unlimited)")
	fs.IntVar(&c.StagnationThreshold, "stagnation-threshold", c.StagnationThreshold, "consecutive stagnant generations before warning")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn or error")
}

// ParseArgs builds the configuration from command-line arguments. When
// -config names a JSON file its values are loaded first and the remaining
// flags override them; -object placements are appended to the file's list.
func ParseArgs(name string, args []string) (Config, error) {
	config, configPath, err := parseFlags(name, args, DefaultConfig())
	if err != nil {
		return config, err
	}

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return config, err
		}
		if config, _, err = parseFlags(name, args, fileConfig); err != nil {
			return config, err
		}
	}

	return config, config.Validate()
}

func parseFlags(name string, args []string, config Config) (Config, string, error) {
	var configPath string

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&configPath, "config", "", "path to a JSON configuration file")
	config.Bind(fs)

	if err := fs.Parse(args); err != nil {
		return config, "", errors.Wrap(err, "[ParseArgs] failed to parse flags")
	}
	if fs.NArg() > 0 {
		return config, "", errors.Errorf("[ParseArgs] unexpected arguments: %v", fs.Args())
	}
	return config, configPath, nil
}

// Validate checks that the configuration can drive a game
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Errorf("[Config] grid must be at least 1x1, got %dx%d", c.Width, c.Height)
	case c.SecondsPerGeneration <= 0:
		return errors.Errorf("[Config] seconds per generation must be positive, got %v", c.SecondsPerGeneration)
	case c.FrameRate <= 0:
		return errors.Errorf("[Config] frame rate must be positive, got %v", c.FrameRate)
	case c.MaxGenerations < 0:
		return errors.Errorf("[Config] max generations must not be negative, got %d", c.MaxGenerations)
	}
	return nil
}

// PrintUsage writes the flag documentation to w
func PrintUsage(w io.Writer, name string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.String("config", "", "path to a JSON configuration file")
	config := DefaultConfig()
	config.Bind(fs)
	fs.Usage()
}
