package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Snake.MinLength != 10 {
		t.Errorf("snake.min_length = %v, want 10", cfg.Snake.MinLength)
	}
	if cfg.Snake.LinkSpacing != 1.0 || cfg.Snake.CompressionThreshold != 0.1 {
		t.Errorf("chain spacing = %v/%v, want 1.0/0.1", cfg.Snake.LinkSpacing, cfg.Snake.CompressionThreshold)
	}
	if cfg.AI.ScanLimit != 50 || cfg.AI.DetectionRadius != 30 || cfg.AI.WanderChance != 0.02 {
		t.Errorf("ai defaults = %+v", cfg.AI)
	}
	if cfg.Collision.OtherHeadExempt != 3 || cfg.Collision.SelfHeadExempt != 5 {
		t.Errorf("head exemptions = %d/%d, want 3/5", cfg.Collision.OtherHeadExempt, cfg.Collision.SelfHeadExempt)
	}
	if cfg.Pellets.CollectionRadius != 1.5 {
		t.Errorf("pellets.collection_radius = %v, want 1.5", cfg.Pellets.CollectionRadius)
	}
	if len(cfg.Pellets.Palette) == 0 {
		t.Error("expected a non-empty palette")
	}

	if cfg.Derived.HalfMap != cfg.Arena.MapSize/2 {
		t.Errorf("derived half map = %v", cfg.Derived.HalfMap)
	}
	if cfg.Derived.DT <= 0 {
		t.Errorf("derived dt = %v, want positive", cfg.Derived.DT)
	}
	if cfg.Derived.RestartTicks != int(cfg.Game.RestartDelay*float64(cfg.Sim.TicksPerSecond)) {
		t.Errorf("derived restart ticks = %d", cfg.Derived.RestartTicks)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	overlay := []byte("arena:\n  map_size: 80\nai:\n  count: 2\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if cfg.Arena.MapSize != 80 || cfg.Derived.HalfMap != 40 {
		t.Errorf("map size = %v (half %v), want 80 (40)", cfg.Arena.MapSize, cfg.Derived.HalfMap)
	}
	if cfg.AI.Count != 2 {
		t.Errorf("ai.count = %d, want 2", cfg.AI.Count)
	}
	// Untouched sections keep their defaults
	if cfg.Snake.BaseSpeed != 5 {
		t.Errorf("snake.base_speed = %v, want default 5", cfg.Snake.BaseSpeed)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidateRejectsBadTuning(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero map", func(c *Config) { c.Arena.MapSize = 0 }},
		{"min length", func(c *Config) { c.Snake.MinLength = 0 }},
		{"initial below min", func(c *Config) { c.Snake.InitialLength = 5 }},
		{"threshold above spacing", func(c *Config) { c.Snake.CompressionThreshold = 2 }},
		{"wander chance", func(c *Config) { c.AI.WanderChance = 1.5 }},
		{"empty palette", func(c *Config) { c.Pellets.Palette = nil }},
		{"negative exemption", func(c *Config) { c.Collision.SelfHeadExempt = -1 }},
		{"zoom bounds", func(c *Config) { c.Camera.MinZoom = 20 }},
		{"tick rate", func(c *Config) { c.Sim.TicksPerSecond = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.AI.Count = 7

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.AI.Count != 7 {
		t.Errorf("ai.count = %d after round trip, want 7", loaded.AI.Count)
	}
}

func TestCfgBeforeInitPanics(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic from Cfg() before Init()")
		}
	}()
	Cfg()
}
