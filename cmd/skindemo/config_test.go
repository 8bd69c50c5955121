package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kungfusheep/skin"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skindemo.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(defaultConfig(), cfg); diff != "" {
		t.Errorf("expected the defaults (-want +got):\n%s", diff)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
title: den
backend: raylib
theme:
  name: light
  accent: "#ff0000"
sections:
  - title: Radio
    items:
      - title: Evening news
        year: 1950
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Title != "den" || cfg.Backend != "raylib" {
		t.Errorf("expected title and backend from the file, got %q %q", cfg.Title, cfg.Backend)
	}
	if cfg.Width != 1280 || cfg.Scale != 16 {
		t.Errorf("expected unset fields to keep defaults, got %d and %v", cfg.Width, cfg.Scale)
	}
	want := []Section{{Title: "Radio", Items: []Media{{Title: "Evening news", Year: 1950}}}}
	if diff := cmp.Diff(want, cfg.Sections); diff != "" {
		t.Errorf("sections (-want +got):\n%s", diff)
	}

	theme, err := cfg.Theme.Resolve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if theme.Accent != skin.RGB(255, 0, 0) {
		t.Errorf("expected the accent override, got %v", theme.Accent)
	}
	if theme.Background != ThemeLight.Background {
		t.Errorf("expected the light background, got %v", theme.Background)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := writeConfig(t, `
backend: vga
sections: []
theme:
  text: "#12"
`)
	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []string{`unknown backend "vga"`, "no sections", `colour "#12"`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err)
		}
	}
}

func TestLoadConfigSyntax(t *testing.T) {
	if _, err := LoadConfig(writeConfig(t, "width: [")); err == nil {
		t.Error("expected a parse error")
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    skin.Color
		wantErr bool
	}{
		{"#abc", skin.RGB(0xaa, 0xbb, 0xcc), false},
		{"#102030", skin.RGB(0x10, 0x20, 0x30), false},
		{"10203040", skin.RGBA(0x10, 0x20, 0x30, 0x40), false},
		{" #FFFFFF ", skin.RGB(255, 255, 255), false},
		{"#zzzzzz", skin.Color{}, true},
		{"#1234", skin.Color{}, true},
		{"", skin.Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestUnknownTheme(t *testing.T) {
	if _, err := (ThemeConfig{Name: "sepia"}).Resolve(); err == nil {
		t.Error("expected an unknown theme to fail")
	}
}

func TestSampleConfig(t *testing.T) {
	cfg, err := LoadConfig("skindemo.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Sections) != 3 || len(cfg.Sections[0].Items) != 3 {
		t.Errorf("expected 3 sections with 3 movies, got %+v", cfg.Sections)
	}
}
