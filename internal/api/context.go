package api

import (
	"fmt"
	"os"

	"github.com/amady/vitrine/internal/config"
	"github.com/amady/vitrine/internal/manager"
	"github.com/amady/vitrine/internal/model"
	"github.com/amady/vitrine/internal/store"
)

// SiteContext bundles all per-site dependencies needed by the HTTP handlers.
type SiteContext struct {
	Paths    *config.Paths
	Config   *model.SiteConfig
	Docs     store.DocumentStore
	Blobs    store.BlobStore
	Manager  *manager.Manager
	SiteRoot string

	// closeDocs releases the SQLite backend, nil for the file backend.
	closeDocs func() error
}

// BuildSiteContext creates a fully-wired SiteContext from a site root path.
// baseURL overrides the config's base_url when non-empty (the serve command
// passes the actual listen address).
func BuildSiteContext(siteRoot, baseURL string) (*SiteContext, error) {
	if siteRoot == "" {
		return nil, fmt.Errorf("site root is required")
	}
	if _, err := os.Stat(siteRoot); err != nil {
		return nil, fmt.Errorf("site path does not exist: %s", siteRoot)
	}

	paths := config.NewPaths(siteRoot, "")
	siteStore := store.NewSiteStore(paths)
	cfg, err := siteStore.Load()
	if err != nil {
		return nil, err
	}
	if cfg.DataLocation != "" {
		paths = config.NewPaths(siteRoot, cfg.DataLocation)
	}

	if baseURL == "" {
		baseURL = cfg.BaseURL
	}

	var docs store.DocumentStore
	var closeDocs func() error
	switch cfg.GetStorage() {
	case model.StorageSQLite:
		sqlStore, err := store.OpenSQLiteStore(paths.DatabasePath())
		if err != nil {
			return nil, err
		}
		docs = sqlStore
		closeDocs = sqlStore.Close
	default:
		docs = store.NewFileStore(paths)
	}

	blobs := store.NewBlobStore(paths, baseURL)
	mgr := manager.New(docs, blobs, nil)

	return &SiteContext{
		Paths:     paths,
		Config:    cfg,
		Docs:      docs,
		Blobs:     blobs,
		Manager:   mgr,
		SiteRoot:  siteRoot,
		closeDocs: closeDocs,
	}, nil
}

// Close releases any backend resources held by the context.
func (c *SiteContext) Close() error {
	if c.closeDocs != nil {
		return c.closeDocs()
	}
	return nil
}
