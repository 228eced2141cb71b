package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Store.Backend != "memory" {
		t.Errorf("backend = %q", cfg.Store.Backend)
	}
	if cfg.Model.Components != 50 {
		t.Errorf("components = %d", cfg.Model.Components)
	}
	if cfg.Model.MaxFeatures != 1000 {
		t.Errorf("max features = %d", cfg.Model.MaxFeatures)
	}
	if cfg.Model.MinRetrainEvents != 100 {
		t.Errorf("min retrain events = %d", cfg.Model.MinRetrainEvents)
	}
	if cfg.Recommend.DefaultN != 10 {
		t.Errorf("default n = %d", cfg.Recommend.DefaultN)
	}
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Model.Components = 5
	cfg.Store.Backend = "redis"
	cfg.Normalize()

	if cfg.Model.Components != 5 {
		t.Errorf("components = %d, want 5", cfg.Model.Components)
	}
	if cfg.Store.Backend != "redis" {
		t.Errorf("backend = %q, want redis", cfg.Store.Backend)
	}
	// 未设置的字段落默认值
	if cfg.Model.MaxFeatures != DefaultMaxFeatures {
		t.Errorf("max features = %d", cfg.Model.MaxFeatures)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hybrec.yaml")
	data := `
store:
  backend: file
  path: /tmp/hybrec-models
model:
  components: 20
  min_retrain_events: 10
rules:
  - 'item.score < 0.5'
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Store.Backend != "file" || cfg.Store.Path != "/tmp/hybrec-models" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Model.Components != 20 || cfg.Model.MinRetrainEvents != 10 {
		t.Errorf("model = %+v", cfg.Model)
	}
	if cfg.Model.MaxFeatures != DefaultMaxFeatures {
		t.Errorf("max features = %d, want default", cfg.Model.MaxFeatures)
	}
	if len(cfg.Rules) != 1 {
		t.Errorf("rules = %v", cfg.Rules)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
