package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading defaults, got %v", err)
	}

	if cfg.Output.Indent != "    " {
		t.Errorf("expected default indent of four spaces, got %q", cfg.Output.Indent)
	}
	if cfg.Output.EnsureASCII {
		t.Error("expected ensure_ascii to default to false")
	}
	if cfg.MaxStack != 500 {
		t.Errorf("expected default max_stack 500, got %d", cfg.MaxStack)
	}
	if len(cfg.Import.JPath) != 0 {
		t.Errorf("expected empty default jpath, got %v", cfg.Import.JPath)
	}
}

func TestLoadWithConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	configContent := `
output:
  indent: "  "
  ensure_ascii: true
import:
  jpath:
    - vendor
    - lib
max_stack: 1000
`
	if err := os.WriteFile(".jsonnetrc.yaml", []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}

	if cfg.Output.Indent != "  " {
		t.Errorf("expected indent '  ', got %q", cfg.Output.Indent)
	}
	if !cfg.Output.EnsureASCII {
		t.Error("expected ensure_ascii true")
	}
	if cfg.MaxStack != 1000 {
		t.Errorf("expected max_stack 1000, got %d", cfg.MaxStack)
	}
	if len(cfg.Import.JPath) != 2 || cfg.Import.JPath[0] != "vendor" {
		t.Errorf("expected jpath [vendor lib], got %v", cfg.Import.JPath)
	}
}

func TestLoadRejectsNonPositiveMaxStack(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	if err := os.WriteFile(".jsonnetrc.yaml", []byte("max_stack: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected error for non-positive max_stack")
	}
}

func TestEnvJPath(t *testing.T) {
	os.Setenv("JSONNET_PATH", "a:b:c")
	defer os.Unsetenv("JSONNET_PATH")

	got := EnvJPath()
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}

func TestEnvJPathEmpty(t *testing.T) {
	os.Unsetenv("JSONNET_PATH")
	if got := EnvJPath(); got != nil {
		t.Errorf("expected nil for unset JSONNET_PATH, got %v", got)
	}
}
