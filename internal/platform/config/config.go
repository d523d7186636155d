package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	FileName       = "innertone.yaml"
	BackendHTTP    = "http"
	BackendPlugin  = "plugin"
	defaultAPIBase = "http://localhost:8000/api"
)

type Config struct {
	DataDir        string `yaml:"-"`
	DBPath         string `yaml:"-"`
	LogPath        string `yaml:"-"`
	PracticeDir    string `yaml:"-"`
	APIBase        string `yaml:"api_base"`
	Backend        string `yaml:"backend"`
	AnalyzerPlugin string `yaml:"analyzer_plugin"`
	Brand          string `yaml:"brand"`
	Volume         int    `yaml:"volume"`
	Mute           bool   `yaml:"mute"`
	SampleRate     int    `yaml:"sample_rate"`
	LogLevel       string `yaml:"log_level"`
	RecordingFile  string `yaml:"recording_file"`
}

func Default(dataDir string) Config {
	return Config{
		DataDir:    dataDir,
		APIBase:    defaultAPIBase,
		Backend:    BackendHTTP,
		Brand:      "Innertone",
		Volume:     50,
		SampleRate: 44100,
		LogLevel:   "info",
	}
}

// New resolves configuration for dataDir. The YAML file at path (or
// <dataDir>/innertone.yaml when path is empty) overrides defaults; a missing
// default file is not an error.
func New(dataDir, path string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Default(dataDir)
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dataDir, FileName)
	}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg.DataDir = dataDir
	cfg.resolvePaths()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) resolvePaths() {
	c.DBPath = filepath.Join(c.DataDir, ".innertone", "innertone.db")
	c.LogPath = filepath.Join(c.DataDir, ".innertone", "innertone.log")
	c.PracticeDir = filepath.Join(c.DataDir, "practice")
	c.APIBase = strings.TrimRight(c.APIBase, "/")
	if c.AnalyzerPlugin != "" && !filepath.IsAbs(c.AnalyzerPlugin) {
		c.AnalyzerPlugin = filepath.Clean(filepath.Join(c.DataDir, c.AnalyzerPlugin))
	}
}

func (c Config) Validate() error {
	if c.Volume < 0 || c.Volume > 100 {
		return fmt.Errorf("volume must be within 0..100, got %d", c.Volume)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive")
	}
	switch c.Backend {
	case BackendHTTP:
		if c.APIBase == "" {
			return fmt.Errorf("api_base is required for the http backend")
		}
	case BackendPlugin:
		if c.AnalyzerPlugin == "" {
			return fmt.Errorf("analyzer_plugin is required for the plugin backend")
		}
	default:
		return fmt.Errorf("unknown backend %q (want %s|%s)", c.Backend, BackendHTTP, BackendPlugin)
	}
	return nil
}

// Marshal renders the user-facing settings as YAML.
func (c Config) Marshal() (string, error) {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(raw), nil
}
