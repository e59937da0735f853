package store

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/amady/vitrine/internal/config"
	"github.com/amady/vitrine/internal/model"
	"github.com/amady/vitrine/internal/version"
)

// FileSiteStore implements SiteStore using the filesystem.
type FileSiteStore struct {
	paths *config.Paths
}

// NewSiteStore creates a new site config store.
func NewSiteStore(paths *config.Paths) *FileSiteStore {
	return &FileSiteStore{paths: paths}
}

// Load reads the site config from disk.
// Returns a default config if the file doesn't exist.
func (s *FileSiteStore) Load() (*model.SiteConfig, error) {
	path := s.paths.SiteConfigPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.SiteConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read site config: %w", err)
	}

	var cfg model.SiteConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid site config: %w", err)
	}

	// Strict version validation (only if file exists)
	if cfg.VitrineSchema == "" {
		return nil, version.MissingSiteSchema(path)
	}
	if cfg.VitrineSchema != version.CurrentSiteSchema() {
		return nil, version.InvalidSiteSchema(path, cfg.VitrineSchema)
	}

	return &cfg, nil
}

// Save writes the site config to disk.
func (s *FileSiteStore) Save(cfg *model.SiteConfig) error {
	// Stamp current schema version
	cfg.VitrineSchema = version.CurrentSiteSchema()

	f, err := os.Create(s.paths.SiteConfigPath())
	if err != nil {
		return fmt.Errorf("failed to create site config: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists returns true if the site config file exists.
func (s *FileSiteStore) Exists() bool {
	_, err := os.Stat(s.paths.SiteConfigPath())
	return err == nil
}
