// Package config loads viewer settings from a YAML file, an optional .env
// file and the process environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvAssetRoot = "LDTK_ASSET_ROOT"
	EnvProject   = "LDTK_PROJECT"
	EnvLevel     = "LDTK_LEVEL"
	EnvLogLevel  = "LDTK_LOG_LEVEL"
	EnvWatch     = "LDTK_WATCH"
)

var ErrNoProject = errors.New("config: no project file")

type Config struct {
	// AssetRoot is the directory project and tileset paths are relative to.
	AssetRoot string `yaml:"asset_root"`
	Project   string `yaml:"project"`
	Level     string `yaml:"level"`
	LogLevel  string `yaml:"log_level"`
	Watch     bool   `yaml:"watch"`
	SkipTiles bool   `yaml:"skip_tiles"`

	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Physics PhysicsConfig `yaml:"physics"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type CameraConfig struct {
	Zoom      float64 `yaml:"zoom"`
	PanSpeed  float64 `yaml:"pan_speed"`
	ZoomSpeed float64 `yaml:"zoom_speed"`
}

type PhysicsConfig struct {
	Enabled bool    `yaml:"enabled"`
	Gravity float64 `yaml:"gravity"`
}

func Default() Config {
	return Config{
		AssetRoot: ".",
		LogLevel:  "info",
		Window:    WindowConfig{Title: "ldtkview", Width: 1280, Height: 720},
		Camera:    CameraConfig{Zoom: 2, PanSpeed: 8, ZoomSpeed: 0.05},
		Physics:   PhysicsConfig{Enabled: true, Gravity: 0},
	}
}

// Parse decodes YAML over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}

// Load reads the YAML file at path, then applies envFile and the process
// environment. An empty path means defaults only. Missing env files are
// ignored.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if cfg, err = Parse(data); err != nil {
			return Config{}, err
		}
	}

	fileEnv, err := readEnvFiles(envFiles...)
	if err != nil {
		return Config{}, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readEnvFiles(paths ...string) (map[string]string, error) {
	out := make(map[string]string)
	for _, p := range paths {
		vars, err := godotenv.Read(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("config: read env file %s: %w", p, err)
		}
		for k, v := range vars {
			if _, ok := out[k]; !ok {
				out[k] = v
			}
		}
	}
	return out, nil
}

// ApplyEnv overrides fields from the variables lookup reports.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAssetRoot); ok && v != "" {
		c.AssetRoot = v
	}
	if v, ok := lookup(EnvProject); ok && v != "" {
		c.Project = v
	}
	if v, ok := lookup(EnvLevel); ok {
		c.Level = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvWatch); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvWatch, err)
		}
		c.Watch = b
	}
	return nil
}

func (c Config) Validate() error {
	if c.Project == "" {
		return ErrNoProject
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Camera.Zoom <= 0 {
		return fmt.Errorf("config: camera zoom must be positive, got %v", c.Camera.Zoom)
	}
	return nil
}
