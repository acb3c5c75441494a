package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "gecko.toml", `
log_level = "debug"
jobs = 3
color = false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.Jobs != 3 || cfg.Color {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Format != FormatText {
		t.Fatalf("expected default format to survive, got %q", cfg.Format)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "gecko.yml", "format: yaml\nlog_file: /tmp/gecko.log\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Format != FormatYAML || cfg.LogFile != "/tmp/gecko.log" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"missing explicit file", filepath.Join(t.TempDir(), "nope.toml"), "read config"},
		{"unknown extension", writeFile(t, "gecko.json", "{}"), "unsupported config format"},
		{"bad toml", writeFile(t, "bad.toml", "jobs = ["), "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadDefaultFileIsOptional(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("GECKO_LOG_LEVEL", "info")
	t.Setenv("GECKO_JOBS", "7")
	t.Setenv("GECKO_FORMAT", "yaml")
	t.Setenv("NO_COLOR", "1")

	cfg := Default()
	cfg.ApplyEnv()
	if cfg.LogLevel != "info" || cfg.Jobs != 7 || cfg.Format != FormatYAML || cfg.Color {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}

	cfg := Default()
	cfg.LogLevel = "loud"
	cfg.Format = "xml"
	cfg.Jobs = 0
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"loud", "xml", "jobs"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %q, got %v", want, err)
		}
	}
}
