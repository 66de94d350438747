package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8000 {
		t.Errorf("port = %d, want 8000", cfg.Port)
	}
	if cfg.TemplateDir != "templates" || cfg.StaticDir != "static" {
		t.Errorf("dirs = %q/%q", cfg.TemplateDir, cfg.StaticDir)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("cors = %v, want [*]", cfg.CORSOrigins)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	body := `
port: 9090
template_dir: tpl
cors_origins:
  - http://localhost:3000
openai:
  model: gpt-4o
`
	if err := os.WriteFile(filepath.Join(dir, ".autoinfra.yaml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Port)
	}
	if cfg.TemplateDir != "tpl" {
		t.Errorf("template_dir = %q, want tpl", cfg.TemplateDir)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:3000" {
		t.Errorf("cors = %v", cfg.CORSOrigins)
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("model = %q", cfg.OpenAI.Model)
	}
	// Fields the file omits keep their defaults.
	if cfg.StaticDir != "static" {
		t.Errorf("static_dir = %q, want default", cfg.StaticDir)
	}
}

func TestLoadPrefersYAMLOverYML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".autoinfra.yaml"), []byte("port: 9001\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".autoinfra.yml"), []byte("port: 9002\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9001 {
		t.Errorf("port = %d, want .yaml to win", cfg.Port)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".autoinfra.yaml"), []byte("port: 9001\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AUTOINFRA_PORT", "7777")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 7777 {
		t.Errorf("port = %d, want env override 7777", cfg.Port)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("api key = %q", cfg.OpenAI.APIKey)
	}
}

func TestLoadBadYAMLReturnsError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".autoinfra.yaml"), []byte("port: [broken\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected parse error")
	}
}
