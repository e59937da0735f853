package config

import (
	"os"
	"path/filepath"
)

const (
	DefaultContentDir = "content"
	CollectionsDir    = "collections"
	ImagesDir         = "images"
	ConfigFileName    = "vitrine.toml"
	GlobalConfigDir   = ".config/vitrine"
)

// Paths provides path resolution for a site's data files.
type Paths struct {
	siteRoot     string
	dataLocation string // Custom location from config, empty for default
}

// NewPaths creates a new Paths resolver for the given site.
func NewPaths(siteRoot string, dataLocation string) *Paths {
	return &Paths{
		siteRoot:     siteRoot,
		dataLocation: dataLocation,
	}
}

// SiteRoot returns the site's root directory.
func (p *Paths) SiteRoot() string {
	return p.siteRoot
}

// ContentRoot returns the root directory for content data.
func (p *Paths) ContentRoot() string {
	if p.dataLocation != "" {
		return filepath.Join(p.siteRoot, p.dataLocation)
	}
	return filepath.Join(p.siteRoot, DefaultContentDir)
}

// CollectionsRoot returns the collections directory.
func (p *Paths) CollectionsRoot() string {
	return filepath.Join(p.ContentRoot(), CollectionsDir)
}

// CollectionDir returns the directory holding one collection's documents.
func (p *Paths) CollectionDir(collection string) string {
	return filepath.Join(p.CollectionsRoot(), collection)
}

// CardPath returns the file path for a specific card document.
func (p *Paths) CardPath(collection, cardID string) string {
	return filepath.Join(p.CollectionDir(collection), cardID+".json")
}

// ImagesRoot returns the blob storage directory.
func (p *Paths) ImagesRoot() string {
	return filepath.Join(p.ContentRoot(), ImagesDir)
}

// CollectionImagesDir returns the image directory scoped to a collection.
func (p *Paths) CollectionImagesDir(collection string) string {
	return filepath.Join(p.ImagesRoot(), collection+"Images")
}

// DatabasePath returns the SQLite database file path.
func (p *Paths) DatabasePath() string {
	return filepath.Join(p.ContentRoot(), "vitrine.db")
}

// SiteConfigPath returns the path to the site config file.
func (p *Paths) SiteConfigPath() string {
	return filepath.Join(p.siteRoot, ConfigFileName)
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir, ConfigFileName)
}

// GlobalConfigDirPath returns the directory for global config.
func GlobalConfigDirPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir)
}
