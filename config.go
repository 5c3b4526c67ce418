package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// maxWindowSize bounds each side of the frame buffer.
const maxWindowSize = 16384

type Config struct {
	Window   WindowConfig   `toml:"window"`
	Sim      SimConfig      `toml:"simulation"`
	Headless HeadlessConfig `toml:"headless"`
	Logging  LoggingConfig  `toml:"logging"`

	// Watch reloads Path whenever it changes on disk.
	Watch bool   `toml:"watch"`
	Path  string `toml:"-"`
}

type WindowConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	FPS    int     `toml:"fps"`
}

type SimConfig struct {
	Speed float64 `toml:"speed"`
	Stars int     `toml:"stars"`
	Seed  int64   `toml:"seed"` // 0 picks a time based seed
}

type HeadlessConfig struct {
	Enabled  bool   `toml:"enabled"`
	Frames   int    `toml:"frames"`
	LogEvery int    `toml:"log_every"`
	Snapshot string `toml:"snapshot"`
}

type LoggingConfig struct {
	Level      string `toml:"level"`
	JSONFormat bool   `toml:"json"`
}

func defaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1024,
			Height: 640,
			FPS:    60,
		},
		Sim: SimConfig{
			Speed: 1.0,
			Stars: defaultStarCount,
		},
		Headless: HeadlessConfig{
			Frames:   3650,
			LogEvery: 365,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig layers defaults, the optional TOML file, PLANETS_* environment
// variables and finally the command line flags in args.
func LoadConfig(args []string) (*Config, error) {
	fs := flag.NewFlagSet("planets", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	path := fs.String("config", getEnv("PLANETS_CONFIG", ""), "TOML config file")
	width := fs.Float64("width", 0, "window width")
	height := fs.Float64("height", 0, "window height")
	fps := fs.Int("fps", 0, "frames per second")
	speed := fs.Float64("speed", 0, "simulation speed multiplier")
	stars := fs.Int("stars", 0, "number of background stars")
	seed := fs.Int64("seed", 0, "random seed, 0 for time based")
	headless := fs.Bool("headless", false, "run without a window")
	frames := fs.Int("frames", 0, "frames to simulate in headless mode")
	logEvery := fs.Int("log-every", 0, "log stats every n frames in headless mode")
	snapshot := fs.String("snapshot", "", "write the last headless frame to this PNG file")
	watch := fs.Bool("watch", false, "reload the config file when it changes")
	logLevel := fs.String("log-level", "", "debug, info, warn or error")
	logJSON := fs.Bool("log-json", false, "log as JSON")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cfg, err := loadFile(*path)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Window.Width = *width
		case "height":
			cfg.Window.Height = *height
		case "fps":
			cfg.Window.FPS = *fps
		case "speed":
			cfg.Sim.Speed = *speed
		case "stars":
			cfg.Sim.Stars = *stars
		case "seed":
			cfg.Sim.Seed = *seed
		case "headless":
			cfg.Headless.Enabled = *headless
		case "frames":
			cfg.Headless.Frames = *frames
		case "log-every":
			cfg.Headless.LogEvery = *logEvery
		case "snapshot":
			cfg.Headless.Snapshot = *snapshot
		case "watch":
			cfg.Watch = *watch
		case "log-level":
			cfg.Logging.Level = *logLevel
		case "log-json":
			cfg.Logging.JSONFormat = *logJSON
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var err error
	setFloat := func(key string, dst *float64) {
		if v, ok := os.LookupEnv(key); ok && err == nil {
			if *dst, err = strconv.ParseFloat(v, 64); err != nil {
				err = fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
			}
		}
	}
	setInt := func(key string, dst *int) {
		if v, ok := os.LookupEnv(key); ok && err == nil {
			if *dst, err = strconv.Atoi(v); err != nil {
				err = fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
			}
		}
	}

	setFloat("PLANETS_WIDTH", &c.Window.Width)
	setFloat("PLANETS_HEIGHT", &c.Window.Height)
	setInt("PLANETS_FPS", &c.Window.FPS)
	setFloat("PLANETS_SPEED", &c.Sim.Speed)
	setInt("PLANETS_STARS", &c.Sim.Stars)
	if v, ok := os.LookupEnv("PLANETS_SEED"); ok && err == nil {
		if c.Sim.Seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			err = fmt.Errorf("%w: PLANETS_SEED: %v", ErrInvalidConfig, err)
		}
	}
	c.Logging.Level = getEnv("PLANETS_LOG_LEVEL", c.Logging.Level)
	if v, ok := os.LookupEnv("PLANETS_LOG_JSON"); ok {
		b, perr := strconv.ParseBool(v)
		if perr != nil && err == nil {
			err = fmt.Errorf("%w: PLANETS_LOG_JSON: %v", ErrInvalidConfig, perr)
		}
		c.Logging.JSONFormat = b
	}
	return err
}

func (c *Config) Validate() error {
	if !validSize(c.Window.Width) || !validSize(c.Window.Height) {
		return fmt.Errorf("%w: window size must be between 1 and %d, got %vx%v",
			ErrInvalidConfig, maxWindowSize, c.Window.Width, c.Window.Height)
	}
	if c.Window.FPS < 1 || c.Window.FPS > 240 {
		return fmt.Errorf("%w: fps must be between 1 and 240, got %d", ErrInvalidConfig, c.Window.FPS)
	}
	if math.IsNaN(c.Sim.Speed) || c.Sim.Speed < minSpeed || c.Sim.Speed > maxSpeed {
		return fmt.Errorf("%w: speed must be between %v and %v, got %v", ErrInvalidConfig, minSpeed, maxSpeed, c.Sim.Speed)
	}
	if c.Sim.Stars < 0 {
		return fmt.Errorf("%w: stars must not be negative, got %d", ErrInvalidConfig, c.Sim.Stars)
	}
	if c.Headless.Frames < 0 || c.Headless.LogEvery < 0 {
		return fmt.Errorf("%w: headless frame counts must not be negative", ErrInvalidConfig)
	}
	if _, ok := logLevels[c.Logging.Level]; !ok {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Logging.Level)
	}
	if c.Watch && c.Path == "" {
		return fmt.Errorf("%w: watch needs a config file", ErrInvalidConfig)
	}
	return nil
}

// validSize rejects NaN and infinities along with out-of-range values.
func validSize(v float64) bool {
	return v >= 1 && v <= maxWindowSize
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
