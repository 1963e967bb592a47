package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mvillagra/gantterm/internal/chart"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Chart.Zoom != "week" {
		t.Errorf("expected zoom week, got %s", cfg.Chart.Zoom)
	}
	if !cfg.Chart.WeekendShade || !cfg.Chart.TodayMarker {
		t.Error("expected weekend shading and today marker on by default")
	}
	if cfg.LLM.Provider != "openai" {
		t.Errorf("expected provider openai, got %s", cfg.LLM.Provider)
	}
	if cfg.LLM.Model != "gpt-4o" {
		t.Errorf("expected model gpt-4o, got %s", cfg.LLM.Model)
	}
	if cfg.UI.Theme != "frappe" {
		t.Errorf("expected theme frappe, got %s", cfg.UI.Theme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return defaults
	if cfg.Chart.Zoom != "week" {
		t.Errorf("expected default zoom, got %s", cfg.Chart.Zoom)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[chart]
zoom = "month"
weekend_shade = false
default_color = "#89b4fa"

[llm]
provider = "ollama"
model = "llama3.2"

[storage]
db_path = "/tmp/gantterm-test.db"

[ui]
theme = "latte"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Chart.Zoom != "month" {
		t.Errorf("expected zoom month, got %s", cfg.Chart.Zoom)
	}
	if cfg.Chart.WeekendShade {
		t.Error("expected weekend_shade false")
	}
	if cfg.Chart.DefaultColor != "#89b4fa" {
		t.Errorf("expected color #89b4fa, got %s", cfg.Chart.DefaultColor)
	}
	if cfg.LLM.Provider != "ollama" {
		t.Errorf("expected provider ollama, got %s", cfg.LLM.Provider)
	}
	if cfg.Storage.DBPath != "/tmp/gantterm-test.db" {
		t.Errorf("expected db_path override, got %s", cfg.Storage.DBPath)
	}
	if cfg.UI.Theme != "latte" {
		t.Errorf("expected theme latte, got %s", cfg.UI.Theme)
	}
}

func TestLoadFrom_PartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[llm]
provider = "lmstudio"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.LLM.Provider != "lmstudio" {
		t.Errorf("expected provider lmstudio, got %s", cfg.LLM.Provider)
	}
	if cfg.Chart.Zoom != "week" {
		t.Errorf("expected default zoom kept, got %s", cfg.Chart.Zoom)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	t.Setenv("GANTTERM_ZOOM", "day")
	t.Setenv("GANTTERM_LLM_PROVIDER", "ollama")
	t.Setenv("GANTTERM_DB_PATH", "/tmp/env-override.db")

	cfg, err := LoadFrom("/nonexistent/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Chart.Zoom != "day" {
		t.Errorf("expected env zoom day, got %s", cfg.Chart.Zoom)
	}
	if cfg.LLM.Provider != "ollama" {
		t.Errorf("expected env provider ollama, got %s", cfg.LLM.Provider)
	}
	if cfg.Storage.DBPath != "/tmp/env-override.db" {
		t.Errorf("expected env db_path, got %s", cfg.Storage.DBPath)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "bad zoom",
			mutate:  func(c *Config) { c.Chart.Zoom = "decade" },
			wantErr: true,
		},
		{
			name:    "bad color",
			mutate:  func(c *Config) { c.Chart.DefaultColor = "blue" },
			wantErr: true,
		},
		{
			name:   "empty color allowed",
			mutate: func(c *Config) { c.Chart.DefaultColor = "" },
		},
		{
			name:    "empty db path",
			mutate:  func(c *Config) { c.Storage.DBPath = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestZoomAccessor(t *testing.T) {
	cfg := Default()
	cfg.Chart.Zoom = "month"
	if got := cfg.Zoom(); got != chart.ZoomMonth {
		t.Errorf("Zoom() = %q, want month", got)
	}
}

func TestSaveAndReload(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	cfg := Default()
	cfg.Chart.Zoom = "day"
	cfg.UI.Theme = "mocha"
	cfg.Storage.DBPath = "/tmp/roundtrip.db"

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Chart.Zoom != "day" || loaded.UI.Theme != "mocha" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}
