package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"RankScope/internal/logger"
)

// Config holds all application configuration.
type Config struct {
	Data struct {
		Source  string        `yaml:"source"` // local path, "-" for stdin, or http(s) URL
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"data"`
	Lines struct {
		BucketWidth float64 `yaml:"bucket_width"`
		PlotWidth   float64 `yaml:"plot_width"`
	} `yaml:"lines"`
	Bars struct {
		Start    float64       `yaml:"start"`
		End      float64       `yaml:"end"`
		Width    float64       `yaml:"width"`
		Delay    time.Duration `yaml:"delay"`
		Duration time.Duration `yaml:"duration"`
		Pause    time.Duration `yaml:"pause"`
	} `yaml:"bars"`
	Schedule struct {
		FrameCron string `yaml:"frame_cron"`
	} `yaml:"schedule"`
	Output struct {
		Dir    string `yaml:"dir"`
		Format string `yaml:"format"`
		Width  int    `yaml:"width"`
		Height int    `yaml:"height"`
	} `yaml:"output"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("RANKSCOPE_SOURCE"); v != "" {
		cfg.Data.Source = v
	}
	if v := os.Getenv("RANKSCOPE_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("RANKSCOPE_FORMAT"); v != "" {
		cfg.Output.Format = v
	}
	if v := os.Getenv("RANKSCOPE_FRAME_CRON"); v != "" {
		cfg.Schedule.FrameCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Defaults
	if cfg.Data.Source == "" {
		cfg.Data.Source = "cosmetics.csv"
	}
	if cfg.Data.Timeout == 0 {
		cfg.Data.Timeout = 30 * time.Second
	}
	if cfg.Lines.BucketWidth == 0 {
		cfg.Lines.BucketWidth = 10
	}
	if cfg.Lines.PlotWidth == 0 {
		cfg.Lines.PlotWidth = 680
	}
	if cfg.Bars.Start == 0 && cfg.Bars.End == 0 {
		cfg.Bars.Start, cfg.Bars.End = 60, 95
	}
	if cfg.Bars.Width == 0 {
		cfg.Bars.Width = 5
	}
	if cfg.Bars.Delay == 0 {
		cfg.Bars.Delay = 300 * time.Millisecond
	}
	if cfg.Bars.Duration == 0 {
		cfg.Bars.Duration = 500 * time.Millisecond
	}
	if cfg.Bars.Pause == 0 {
		cfg.Bars.Pause = 3 * time.Second
	}
	if cfg.Schedule.FrameCron == "" {
		cfg.Schedule.FrameCron = "@every 1s"
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "out"
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "svg"
	}
	if cfg.Output.Width == 0 {
		cfg.Output.Width = 800
	}
	if cfg.Output.Height == 0 {
		cfg.Output.Height = 480
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}

	cfg.Output.Format = strings.ToLower(cfg.Output.Format)
	return cfg, nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Data.Source) == "" {
		return fmt.Errorf("data.source is required")
	}
	if c.Lines.BucketWidth <= 0 {
		return fmt.Errorf("lines.bucket_width must be positive")
	}
	if c.Lines.PlotWidth <= 0 {
		return fmt.Errorf("lines.plot_width must be positive")
	}
	if c.Bars.Width <= 0 {
		return fmt.Errorf("bars.width must be positive")
	}
	if c.Bars.End < c.Bars.Start {
		return fmt.Errorf("bars.end (%v) must not be below bars.start (%v)", c.Bars.End, c.Bars.Start)
	}
	if c.Bars.Delay < 0 || c.Bars.Duration < 0 || c.Bars.Pause < 0 {
		return fmt.Errorf("bars timing must not be negative")
	}
	if c.Output.Format != "svg" && c.Output.Format != "png" {
		return fmt.Errorf("output.format must be svg or png, got %q", c.Output.Format)
	}
	if c.Output.Width < 0 || c.Output.Height < 0 {
		return fmt.Errorf("output size must not be negative")
	}
	if _, ok := logger.ParseLevel(c.Logging.Level); !ok {
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	return nil
}

// StdinSource reports whether the dataset is read from stdin. The console
// cannot share stdin with the dataset, so such sessions run without it.
func (c *Config) StdinSource() bool {
	return strings.TrimSpace(c.Data.Source) == "-"
}
