package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amady/vitrine/internal/config"
	"github.com/amady/vitrine/internal/model"
)

func setupTestSiteStore(t *testing.T) (*FileSiteStore, string, func()) {
	t.Helper()

	dir, err := os.MkdirTemp("", "vitrine-site-store-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	store := NewSiteStore(config.NewPaths(dir, ""))
	cleanup := func() {
		os.RemoveAll(dir)
	}
	return store, dir, cleanup
}

func TestSiteStore_LoadMissingReturnsDefault(t *testing.T) {
	store, _, cleanup := setupTestSiteStore(t)
	defer cleanup()

	cfg, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if store.Exists() {
		t.Error("Exists should be false before Save")
	}
}

func TestSiteStore_SaveAndLoad(t *testing.T) {
	store, _, cleanup := setupTestSiteStore(t)
	defer cleanup()

	cfg := &model.SiteConfig{
		Name:    "Acme",
		Port:    8090,
		Storage: model.StorageSQLite,
		Nav:     model.DefaultNav(),
	}
	if err := store.Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Name != "Acme" || loaded.Port != 8090 {
		t.Errorf("config mismatch: %+v", loaded)
	}
	if loaded.GetStorage() != model.StorageSQLite {
		t.Errorf("storage mismatch: %q", loaded.GetStorage())
	}
	if loaded.VitrineSchema != "site/1" {
		t.Errorf("schema not stamped: %q", loaded.VitrineSchema)
	}
	if len(loaded.Nav) != 5 {
		t.Errorf("nav entries: got %d, want 5", len(loaded.Nav))
	}
}

func TestSiteStore_LoadRejectsMissingSchema(t *testing.T) {
	store, dir, cleanup := setupTestSiteStore(t)
	defer cleanup()

	path := filepath.Join(dir, "vitrine.toml")
	if err := os.WriteFile(path, []byte("name = \"Acme\"\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := store.Load(); err == nil {
		t.Error("expected error for missing schema marker")
	}
}

func TestSiteStore_LoadRejectsUnknownSchema(t *testing.T) {
	store, dir, cleanup := setupTestSiteStore(t)
	defer cleanup()

	path := filepath.Join(dir, "vitrine.toml")
	content := "vitrine_schema = \"site/99\"\nname = \"Acme\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := store.Load(); err == nil {
		t.Error("expected error for unsupported schema version")
	}
}

func TestSiteConfig_Defaults(t *testing.T) {
	cfg := &model.SiteConfig{}
	if cfg.GetStorage() != model.StorageFiles {
		t.Errorf("default storage: got %q, want files", cfg.GetStorage())
	}
	if cfg.GetAdminPath() != "/admin" {
		t.Errorf("default admin path: got %q", cfg.GetAdminPath())
	}
}
