//go:build unit
// +build unit

package config

import (
	"os"
	"testing"
)

const testYAML = `
repositories:
  - name: shop-app
    url: https://github.com/example/shop-app.git
    description: Customer storefront
  - name: rider-app
    url: https://github.com/example/rider-app.git
    branch: develop
settings:
  includeDevDeps: true
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	file := dir + "/pubwatch.yaml"
	if err := os.WriteFile(file, []byte(testYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Repositories) != 2 {
		t.Fatalf("expected 2 repositories, got %d", len(cfg.Repositories))
	}
	if cfg.Repositories[0].Name != "shop-app" || cfg.Repositories[1].Name != "rider-app" {
		t.Errorf("unexpected repository names: %+v", cfg.Repositories)
	}
	if cfg.Repositories[0].Description != "Customer storefront" {
		t.Errorf("unexpected description: %q", cfg.Repositories[0].Description)
	}
	if cfg.Repositories[0].Branch != DefaultBranch {
		t.Errorf("expected default branch %q, got %q", DefaultBranch, cfg.Repositories[0].Branch)
	}
	if cfg.Repositories[1].Branch != "develop" {
		t.Errorf("expected branch develop, got %q", cfg.Repositories[1].Branch)
	}
	if !cfg.Settings.IncludeDevDeps {
		t.Error("expected includeDevDeps to be true")
	}
}

func TestLoad_MissingURL(t *testing.T) {
	dir := t.TempDir()
	file := dir + "/pubwatch.yaml"
	content := `
repositories:
  - name: shop-app
`
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := Load(file); err == nil {
		t.Fatal("expected an error for a repository without a url")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(t.TempDir() + "/nope.yaml"); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
