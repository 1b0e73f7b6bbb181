package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/Adithya-Monish-Kumar-K/synchronous-autocomplete/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "autocomplete.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Engine.TopK != 3 || cfg.Engine.WeightExponent != 1.0 || cfg.Engine.MaxEditDistance != 3 {
		t.Errorf("unexpected engine defaults %+v", cfg.Engine)
	}
	if cfg.Engine.RequireAllFragments {
		t.Error("fragment matching should be lenient by default")
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
engine:
  topK: 5
  weightExponent: 0.3333333333333333
  requireAllFragments: true
  fuzzy: true
logging:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Engine.TopK != 5 {
		t.Errorf("TopK = %d", cfg.Engine.TopK)
	}
	if cfg.Engine.WeightExponent != 1.0/3.0 {
		t.Errorf("WeightExponent = %v", cfg.Engine.WeightExponent)
	}
	if !cfg.Engine.RequireAllFragments || !cfg.Engine.Fuzzy {
		t.Errorf("flags not loaded: %+v", cfg.Engine)
	}
	if cfg.Engine.MaxEditDistance != 3 {
		t.Errorf("unset MaxEditDistance should keep default, got %d", cfg.Engine.MaxEditDistance)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "engine:\n  topK: 5\n")
	t.Setenv("AC_ENGINE_TOP_K", "7")
	t.Setenv("AC_ENGINE_MAX_EDIT_DISTANCE", "1")
	t.Setenv("AC_ENGINE_REQUIRE_ALL_FRAGMENTS", "true")
	t.Setenv("AC_METRICS_ENABLED", "true")
	t.Setenv("AC_ENGINE_WEIGHT_EXPONENT", "not-a-number")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Engine.TopK != 7 || cfg.Engine.MaxEditDistance != 1 || !cfg.Engine.RequireAllFragments {
		t.Errorf("env overrides not applied: %+v", cfg.Engine)
	}
	if cfg.Engine.WeightExponent != 1.0 {
		t.Errorf("invalid env value should be ignored, got %v", cfg.Engine.WeightExponent)
	}
	if !cfg.Metrics.Enabled {
		t.Error("metrics should be enabled")
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero topK", "engine:\n  topK: 0\n"},
		{"negative exponent", "engine:\n  weightExponent: -1\n"},
		{"negative edit distance", "engine:\n  maxEditDistance: -2\n"},
		{"bad format", "logging:\n  format: xml\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, apperrors.ErrInvalidConfig) {
				t.Errorf("Load() err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "engine: [unclosed")); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadShippedConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "autocomplete.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if want := DefaultEngine(); cfg.Engine != want {
		t.Errorf("shipped engine config %+v differs from defaults %+v", cfg.Engine, want)
	}
}
