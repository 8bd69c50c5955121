package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kungfusheep/skin"
	"gopkg.in/yaml.v3"
)

// Config is the demo configuration file.
type Config struct {
	Title   string  `yaml:"title"`
	Backend string  `yaml:"backend"`
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Scale   float64 `yaml:"scale"`
	LogFile string  `yaml:"log_file"`
	StateDB string  `yaml:"state_db"`
	Assets  string  `yaml:"assets"`

	Theme    ThemeConfig `yaml:"theme"`
	Sections []Section   `yaml:"sections"`
}

// ThemeConfig picks a base theme and overrides single colours with hex
// strings like "#1e1e2e".
type ThemeConfig struct {
	Name       string `yaml:"name"`
	Background string `yaml:"background"`
	Surface    string `yaml:"surface"`
	Text       string `yaml:"text"`
	Muted      string `yaml:"muted"`
	Accent     string `yaml:"accent"`
}

// Section is one row of the side menu.
type Section struct {
	Title string  `yaml:"title"`
	Items []Media `yaml:"items"`
}

// Media is one tile of a section.
type Media struct {
	Title  string `yaml:"title"`
	Year   int    `yaml:"year"`
	Detail string `yaml:"detail"`
	Poster string `yaml:"poster"`
}

func defaultConfig() *Config {
	return &Config{
		Title:   "skin theater",
		Backend: "term",
		Width:   1280,
		Height:  720,
		Scale:   16,
		Theme:   ThemeConfig{Name: "dark"},
		Sections: []Section{
			{Title: "Movies", Items: []Media{
				{Title: "Metropolis", Year: 1927, Detail: "A city of the future, above and below."},
				{Title: "Nosferatu", Year: 1922, Detail: "A count takes an interest in real estate."},
				{Title: "Sunrise", Year: 1927, Detail: "A song of two humans."},
				{Title: "The General", Year: 1926, Detail: "A train, a war and a very patient engineer."},
				{Title: "Safety Last!", Year: 1923, Detail: "A clock, a building and no safety net."},
			}},
			{Title: "Series", Items: []Media{
				{Title: "Fantomas", Year: 1913, Detail: "Five episodes of the master of crime."},
				{Title: "Les Vampires", Year: 1915, Detail: "Ten episodes of a Paris gang."},
			}},
			{Title: "Music", Items: []Media{
				{Title: "Rhapsody", Year: 1924, Detail: "Live recording."},
				{Title: "Nocturnes", Year: 1899, Detail: "Three pieces for orchestra."},
				{Title: "Bolero", Year: 1928, Detail: "One crescendo."},
			}},
			{Title: "Settings"},
		},
	}
}

// LoadConfig reads path over the defaults. A missing file yields the
// defaults unchanged.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Printf("no config at %s, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	switch c.Backend {
	case "term", "raylib":
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d", c.Width, c.Height))
	}
	if len(c.Sections) == 0 {
		errs = append(errs, errors.New("no sections"))
	}
	if _, err := c.Theme.Resolve(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseHex(s string) (skin.Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return skin.Color{}, fmt.Errorf("colour %q: want #rgb, #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return skin.Color{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return skin.RGBA(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}
