package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

func TestLoadFromMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fikus", "settings.yaml")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UseAlternate {
		t.Error("primary manager should be the default")
	}
	if cfg.Primary != "pacman" || cfg.Alternate != "yay" || cfg.Elevator != "sudo" {
		t.Errorf("binaries = %s/%s/%s", cfg.Primary, cfg.Alternate, cfg.Elevator)
	}
	if cfg.OperationTimeout != 30*time.Minute || cfg.QueryTimeout != 10*time.Second {
		t.Errorf("timeouts = %s/%s", cfg.OperationTimeout, cfg.QueryTimeout)
	}
	if cfg.Packages == nil || len(cfg.Packages) != 0 {
		t.Errorf("packages = %v", cfg.Packages)
	}
	if cfg.Path() != path {
		t.Errorf("path = %q", cfg.Path())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("loading must not create the file")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.UseAlternate = true
	cfg.QueryTimeout = 3 * time.Second
	cfg.ToggleBookmark("htop")
	cfg.ToggleBookmark("neovim")

	if err := cfg.Save(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "categories") {
		t.Errorf("built-in categories should not be written:\n%s", data)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if !loaded.UseAlternate {
		t.Error("use_alternate was not persisted")
	}
	if loaded.QueryTimeout != 3*time.Second {
		t.Errorf("query timeout = %s", loaded.QueryTimeout)
	}
	if !slices.Equal(loaded.Packages, []string{"htop", "neovim"}) {
		t.Errorf("packages = %v", loaded.Packages)
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := `use_alternate: false
elevator: doas
operation_timeout: 45m
packages:
  - firefox
categories:
  - name: Editors
    packages: [vim, neovim, vim]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Elevator != "doas" || cfg.Primary != "pacman" {
		t.Errorf("binaries = %s/%s", cfg.Elevator, cfg.Primary)
	}
	if cfg.OperationTimeout != 45*time.Minute {
		t.Errorf("operation timeout = %s", cfg.OperationTimeout)
	}
	if !cfg.IsBookmarked("firefox") || cfg.IsBookmarked("chromium") {
		t.Errorf("bookmarks = %v", cfg.Packages)
	}

	catalog := cfg.Catalog()
	if len(catalog) != 1 || catalog[0].Name != "Editors" {
		t.Fatalf("catalog = %+v", catalog)
	}
	if !slices.Equal(catalog[0].Names(), []string{"vim", "neovim"}) {
		t.Errorf("names = %v", catalog[0].Names())
	}
}

func TestLoadFromInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("packages: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestToggleBookmark(t *testing.T) {
	cfg := Default()

	if !cfg.ToggleBookmark("htop") {
		t.Error("first toggle should bookmark")
	}
	if !cfg.IsBookmarked("htop") {
		t.Error("htop should be bookmarked")
	}
	if cfg.ToggleBookmark("htop") {
		t.Error("second toggle should unbookmark")
	}
	if cfg.IsBookmarked("htop") || len(cfg.Packages) != 0 {
		t.Errorf("packages = %v", cfg.Packages)
	}
}

func TestDefaultCatalog(t *testing.T) {
	catalog := Default().Catalog()
	if len(catalog) == 0 {
		t.Fatal("default catalog is empty")
	}
	seen := map[string]bool{}
	for _, c := range catalog {
		if seen[c.Name] {
			t.Errorf("duplicate category %q", c.Name)
		}
		seen[c.Name] = true
		if len(c.Names()) == 0 {
			t.Errorf("category %q has no packages", c.Name)
		}
	}
	if !seen["Development"] {
		t.Error("Development category missing")
	}
}
