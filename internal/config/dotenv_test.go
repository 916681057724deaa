package config

import (
	"os"
	"path/filepath"
	"testing"
)

func setTestHome(t *testing.T) string {
	t.Helper()
	oldHome := os.Getenv("HOME")
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Cleanup(func() { _ = os.Setenv("HOME", oldHome) })
	return home
}

func writeDotEnv(t *testing.T, home, body string) {
	t.Helper()
	dir := filepath.Join(home, ".drift")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	home := setTestHome(t)
	writeDotEnv(t, home, "# comment\n\nDRIFT_LLM_PROVIDER=openai\n  DRIFT_LLM_MODEL =gpt-4o\nBADLINE\n=novalue\n")

	env, err := LoadDotEnv()
	if err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if env["DRIFT_LLM_PROVIDER"] != "openai" {
		t.Fatalf("env = %v", env)
	}
	if env["DRIFT_LLM_MODEL"] != "gpt-4o" {
		t.Fatalf("key whitespace not trimmed: %v", env)
	}
	if len(env) != 2 {
		t.Fatalf("malformed lines not skipped: %v", env)
	}
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	setTestHome(t)
	env, err := LoadDotEnv()
	if err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if len(env) != 0 {
		t.Fatalf("env = %v", env)
	}
}

func TestGetConfigValue_EnvWins(t *testing.T) {
	home := setTestHome(t)
	writeDotEnv(t, home, "DRIFT_LLM_PROVIDER=fromfile\n")
	t.Setenv("DRIFT_LLM_PROVIDER", "fromenv")

	got, err := GetConfigValue("DRIFT_LLM_PROVIDER")
	if err != nil {
		t.Fatalf("GetConfigValue: %v", err)
	}
	if got != "fromenv" {
		t.Fatalf("GetConfigValue = %q, want fromenv", got)
	}
}

func TestGetConfigValue_FallsBackToDotEnv(t *testing.T) {
	home := setTestHome(t)
	writeDotEnv(t, home, "DRIFT_LLM_MODEL=gpt-4o\n")
	t.Setenv("DRIFT_LLM_MODEL", "")

	got, err := GetConfigValue("DRIFT_LLM_MODEL")
	if err != nil {
		t.Fatalf("GetConfigValue: %v", err)
	}
	if got != "gpt-4o" {
		t.Fatalf("GetConfigValue = %q, want gpt-4o", got)
	}
}

func TestEnsureDotEnvTemplate(t *testing.T) {
	home := setTestHome(t)
	if err := os.MkdirAll(filepath.Join(home, ".drift"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	if err := EnsureDotEnvTemplate(); err != nil {
		t.Fatalf("EnsureDotEnvTemplate: %v", err)
	}

	p := filepath.Join(home, ".drift", ".env")
	info, err := os.Stat(p)
	if err != nil {
		t.Fatalf("template not created: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("template mode = %v, want 0600", info.Mode().Perm())
	}

	// Existing files must not be overwritten.
	if err := os.WriteFile(p, []byte("DRIFT_LLM_PROVIDER=openai\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := EnsureDotEnvTemplate(); err != nil {
		t.Fatalf("EnsureDotEnvTemplate: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(b) != "DRIFT_LLM_PROVIDER=openai\n" {
		t.Fatalf("existing dotenv clobbered: %q", b)
	}
}
