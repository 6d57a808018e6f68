package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Core.Name != DefaultProjectName {
		t.Errorf("expected default name %q, got %q", DefaultProjectName, cfg.Core.Name)
	}
	if cfg.Core.DefaultFormat != DefaultFormat {
		t.Errorf("expected default format %q, got %q", DefaultFormat, cfg.Core.DefaultFormat)
	}
	if cfg.Scan.MaxFileSizeMB != DefaultMaxFileSizeMB {
		t.Errorf("expected max size %v, got %v", DefaultMaxFileSizeMB, cfg.Scan.MaxFileSizeMB)
	}
	if !cfg.Scan.RespectGitignore {
		t.Error("gitignore should be respected by default")
	}
	if cfg.Files.DuplicateThresholdBytes != DefaultDuplicateThresholdBytes {
		t.Errorf("expected duplicate threshold %d, got %d",
			DefaultDuplicateThresholdBytes, cfg.Files.DuplicateThresholdBytes)
	}
	if !cfg.Storage.AutoSave {
		t.Error("auto save should default on")
	}
}

func TestLoad_ConfigFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statsvy.yaml")
	content := `
core:
  name: myproject
  default_format: json
scan:
  max_depth: 5
  include_hidden: true
language:
  exclude_languages: ["Text"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Core.Name != "myproject" {
		t.Errorf("expected name from file, got %q", cfg.Core.Name)
	}
	if cfg.Core.DefaultFormat != "json" {
		t.Errorf("expected format from file, got %q", cfg.Core.DefaultFormat)
	}
	if cfg.Scan.MaxDepth != 5 || !cfg.Scan.IncludeHidden {
		t.Errorf("scan section not applied: %+v", cfg.Scan)
	}
	if len(cfg.Language.ExcludeLanguages) != 1 {
		t.Errorf("language section not applied: %+v", cfg.Language)
	}
	// Untouched keys keep their defaults.
	if cfg.Scan.MaxFileSizeMB != DefaultMaxFileSizeMB {
		t.Errorf("unset key lost its default: %v", cfg.Scan.MaxFileSizeMB)
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statsvy.yaml")
	if err := os.WriteFile(path, []byte("core:\n  name: fromfile\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("STATSVY_CORE_NAME", "fromenv")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Core.Name != "fromenv" {
		t.Errorf("environment should beat the file, got %q", cfg.Core.Name)
	}
}

func TestLoad_MissingConfigFileTolerated(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Fatalf("a missing config file must not fail: %v", err)
	}
}

func TestExpandPath_Home(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got := expandPath("~/x/y")
	if got != filepath.Join(home, "x/y") {
		t.Errorf("expected home expansion, got %q", got)
	}
	if expandPath("/abs/path") != "/abs/path" {
		t.Error("absolute paths are untouched")
	}
}
