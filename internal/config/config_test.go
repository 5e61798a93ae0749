package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StepDuration != 120*time.Millisecond {
		t.Errorf("StepDuration = %s, want 120ms", cfg.StepDuration)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.StartCell().X != 100 || cfg.StartCell().Y != 100 {
		t.Errorf("unexpected start cell %+v", cfg.StartCell())
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("WB_PORT", "9090")
	t.Setenv("WB_STEP_DURATION", "250ms")
	t.Setenv("WB_BOTS", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.StepDuration != 250*time.Millisecond {
		t.Errorf("StepDuration = %s, want 250ms", cfg.StepDuration)
	}
	if cfg.Bots != 3 {
		t.Errorf("Bots = %d, want 3", cfg.Bots)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "zero tick rate", mutate: func(c *Config) { c.TickRate = 0 }, wantErr: true},
		{name: "negative step", mutate: func(c *Config) { c.StepDuration = -time.Second }, wantErr: true},
		{name: "empty world", mutate: func(c *Config) { c.WorldWidth = 0 }, wantErr: true},
		{name: "negative bots", mutate: func(c *Config) { c.Bots = -1 }, wantErr: true},
		{name: "zero frame interval", mutate: func(c *Config) { c.FrameEvery = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("WB_TICK_RATE", "fast")
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}
