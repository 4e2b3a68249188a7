package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-formvalidator/pkg/model"
)

func TestLoadConfig_EnvironmentThenFlags(t *testing.T) {
	t.Setenv("FORMVALIDATOR_FORMS", "forms")
	t.Setenv("FORMVALIDATOR_LOCALE", "en")
	t.Setenv("FORMVALIDATOR_SHOW_COUNT", "true")
	t.Setenv("FORMVALIDATOR_ALLOW_HYPHENS_IN_TEL", "false")
	t.Setenv("FORMVALIDATOR_CONFIG_FROM_ENV", "true")

	cfg, err := loadConfig([]string{"-locale", "ja", "-form", "contact"})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Forms != "forms" || cfg.Form != "contact" || cfg.Locale != "ja" {
		t.Fatalf("unexpected config %#v", cfg)
	}
	if !cfg.EnvConfig || !cfg.Validation.ShowCount || !cfg.Validation.DisableSubmitOnError {
		t.Fatalf("unexpected validation config %#v", cfg.Validation)
	}
	if cfg.Validation.AllowHyphensInTel != model.HyphenForbidden {
		t.Fatalf("expected forbidden tel hyphens, got %v", cfg.Validation.AllowHyphensInTel)
	}
	if cfg.level() != slog.LevelWarn {
		t.Fatalf("expected default warn level, got %v", cfg.level())
	}
}

func TestLoadConfig_EnvFileAndRequiredSource(t *testing.T) {
	if _, err := loadConfig(nil, filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatalf("expected error for missing env file")
	}

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("FORMVALIDATOR_OPENAPI=api.yaml\nFORMVALIDATOR_OPERATION=createContact\nFORMVALIDATOR_LOG_LEVEL=debug\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Cleanup(func() {
		os.Unsetenv("FORMVALIDATOR_OPENAPI")
		os.Unsetenv("FORMVALIDATOR_OPERATION")
		os.Unsetenv("FORMVALIDATOR_LOG_LEVEL")
	})
	cfg, err := loadConfig(nil, path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.OpenAPI != "api.yaml" || cfg.Form != "createContact" || cfg.level() != slog.LevelDebug {
		t.Fatalf("unexpected config %#v", cfg)
	}

	os.Unsetenv("FORMVALIDATOR_OPENAPI")
	if _, err := loadConfig(nil); err == nil {
		t.Fatalf("expected error without forms or openapi source")
	}
}
