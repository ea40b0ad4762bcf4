package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Env != "local" {
		t.Errorf("Expected default env local, got %q", cfg.Env)
	}
	if !cfg.Development() {
		t.Error("Expected local env to count as development")
	}
	if cfg.Auth.MaxDevicesPerUser != 5 {
		t.Errorf("Expected default device cap 5, got %d", cfg.Auth.MaxDevicesPerUser)
	}
	if cfg.Auth.LoginTokenTTL.Minutes() != 15 {
		t.Errorf("Expected 15m login token TTL, got %v", cfg.Auth.LoginTokenTTL)
	}
	if cfg.Quiz.DefaultQuestionCount != 10 {
		t.Errorf("Expected default question count 10, got %d", cfg.Quiz.DefaultQuestionCount)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ServerPort != "9000" {
		t.Errorf("Expected SERVER_PORT override, got %q", cfg.ServerPort)
	}
	if cfg.DB.Password != "secret" {
		t.Errorf("Expected DB_PASSWORD override, got %q", cfg.DB.Password)
	}
}

func TestDSN(t *testing.T) {
	db := DB{Host: "localhost", Port: "5432", User: "postgres", Password: "pw", Name: "arabiclearner"}
	want := "host=localhost port=5432 user=postgres password=pw dbname=arabiclearner sslmode=disable"
	if got := db.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestDevelopment(t *testing.T) {
	prod := Config{Env: "production"}
	if prod.Development() {
		t.Error("Expected production to not be development")
	}
	local := Config{Env: "local"}
	if !local.Development() {
		t.Error("Expected local to be development")
	}
}
