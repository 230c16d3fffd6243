// Package config loads the abacus configuration file.
//
// Values come from, in increasing priority: built-in defaults, the YAML
// file, a .env file in the working directory, then ABACUS_* environment
// variables. Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"abacus/abacusos/tasks/calculator"
)

type Config struct {
	Window Window `yaml:"window"`
	Log    Log    `yaml:"log"`
	Theme  Theme  `yaml:"theme"`
	Serve  Serve  `yaml:"serve"`
	Trace  Trace  `yaml:"trace"`
}

type Window struct {
	Title string `yaml:"title"`
	Scale int    `yaml:"scale"`
	TPS   int    `yaml:"tps"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Theme colours are "#rrggbb" strings. Empty entries keep the default.
type Theme struct {
	Background       string `yaml:"background"`
	DisplayText      string `yaml:"display_text"`
	ButtonBackground string `yaml:"button_background"`
	ButtonText       string `yaml:"button_text"`
	Accent           string `yaml:"accent"`
	Pressed          string `yaml:"pressed"`
}

type Serve struct {
	Transport string `yaml:"transport"`
	Addr      string `yaml:"addr"`
}

// Trace enables OTLP/HTTP span export. The exporter endpoint is taken from
// the standard OTEL_EXPORTER_OTLP_* variables.
type Trace struct {
	Enabled bool   `yaml:"enabled"`
	Service string `yaml:"service"`
}

func Default() Config {
	return Config{
		Window: Window{Scale: 2, TPS: 60},
		Log:    Log{Level: "info", Format: "console"},
		Serve:  Serve{Transport: "stdio", Addr: ":8080"},
		Trace:  Trace{Service: "abacus"},
	}
}

// Load reads path over the defaults. An empty path skips the file; a
// missing .env file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("ABACUS_LOG_LEVEL", &c.Log.Level)
	str("ABACUS_LOG_FORMAT", &c.Log.Format)
	str("ABACUS_SERVE_TRANSPORT", &c.Serve.Transport)
	str("ABACUS_SERVE_ADDR", &c.Serve.Addr)
	str("OTEL_SERVICE_NAME", &c.Trace.Service)

	if v, ok := lookup("ABACUS_TRACE"); ok && v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("ABACUS_TRACE: %w", err)
		}
		c.Trace.Enabled = on
	}
	return nil
}

// Validate checks ranges and that every theme colour parses.
func (c Config) Validate() error {
	if c.Window.Scale < 1 {
		return fmt.Errorf("window.scale must be at least 1, got %d", c.Window.Scale)
	}
	if c.Window.TPS < 1 {
		return fmt.Errorf("window.tps must be at least 1, got %d", c.Window.TPS)
	}
	switch c.Serve.Transport {
	case "stdio", "http":
	default:
		return fmt.Errorf("serve.transport must be stdio or http, got %q", c.Serve.Transport)
	}
	if _, err := c.Theme.Calculator(); err != nil {
		return err
	}
	return nil
}

// Calculator returns the default calculator theme with the configured
// colours applied.
func (t Theme) Calculator() (calculator.Theme, error) {
	th := calculator.DefaultTheme()
	for _, f := range []struct {
		name string
		src  string
		dst  *color.RGBA
	}{
		{"background", t.Background, &th.Background},
		{"display_text", t.DisplayText, &th.DisplayText},
		{"button_background", t.ButtonBackground, &th.ButtonBackground},
		{"button_text", t.ButtonText, &th.ButtonText},
		{"accent", t.Accent, &th.Accent},
		{"pressed", t.Pressed, &th.Pressed},
	} {
		if f.src == "" {
			continue
		}
		c, err := ParseColor(f.src)
		if err != nil {
			return calculator.Theme{}, fmt.Errorf("theme.%s: %w", f.name, err)
		}
		*f.dst = c
	}
	return th, nil
}

// ParseColor parses "#rrggbb" or "#rgb".
func ParseColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.RGBA{}, fmt.Errorf("colour %q must start with #", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("colour %q must be #rrggbb or #rgb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
