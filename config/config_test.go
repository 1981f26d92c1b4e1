package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "3000" {
		t.Errorf("expected default port 3000, got %s", cfg.Server.Port)
	}
	if cfg.Classroom.DefaultPollSeconds != 60 {
		t.Errorf("expected default poll duration 60, got %d", cfg.Classroom.DefaultPollSeconds)
	}
	if cfg.Classroom.DefaultName == "" {
		t.Error("expected a default classroom name")
	}
	if cfg.WS.SendBufferSize <= 0 || cfg.WS.ReadLimit <= 0 {
		t.Errorf("expected positive websocket buffer settings: %+v", cfg.WS)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("POLL_DEFAULT_SECONDS", "30")
	t.Setenv("POLL_DEFAULT_SECONDS_BAD", "x") // unrelated keys are ignored
	t.Setenv("WS_SEND_BUFFER", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Classroom.DefaultPollSeconds != 30 {
		t.Errorf("expected poll duration 30, got %d", cfg.Classroom.DefaultPollSeconds)
	}
	if cfg.WS.SendBufferSize != 256 {
		t.Errorf("expected fallback buffer 256 on bad value, got %d", cfg.WS.SendBufferSize)
	}
}
