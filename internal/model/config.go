package model

// SiteConfig represents a site's configuration.
// Stored at <site root>/vitrine.toml
// Schema changes require a version bump—see internal/version/version.go.
type SiteConfig struct {
	VitrineSchema string    `toml:"vitrine_schema"`
	Name          string    `toml:"name,omitempty"`
	Port          int       `toml:"port,omitempty"`
	Storage       string    `toml:"storage,omitempty"`       // "files" (default) or "sqlite"
	DataLocation  string    `toml:"data_location,omitempty"` // Custom content dir, relative to site root
	BaseURL       string    `toml:"base_url,omitempty"`      // Public base for blob URLs
	AdminPath     string    `toml:"admin_path,omitempty"`    // Defaults to /admin
	Nav           []NavItem `toml:"nav,omitempty"`
}

// NavItem is one entry in the site's navigation menu. Target is either a
// route path ("/admin") or a section anchor ("#services").
type NavItem struct {
	Label  string `toml:"label"`
	Target string `toml:"target"`
}

// Storage backend names accepted in SiteConfig.Storage.
const (
	StorageFiles  = "files"
	StorageSQLite = "sqlite"
)

// GetStorage returns the configured storage backend, defaulting to files.
func (s *SiteConfig) GetStorage() string {
	if s.Storage == "" {
		return StorageFiles
	}
	return s.Storage
}

// GetAdminPath returns the configured admin route, defaulting to /admin.
func (s *SiteConfig) GetAdminPath() string {
	if s.AdminPath == "" {
		return "/admin"
	}
	return s.AdminPath
}

// DefaultNav returns the navigation entries a freshly initialized site gets.
func DefaultNav() []NavItem {
	return []NavItem{
		{Label: "Home", Target: "#home"},
		{Label: "About", Target: "#about"},
		{Label: "Services", Target: "#services"},
		{Label: "Team", Target: "#team"},
		{Label: "Admin", Target: "/admin"},
	}
}

// GlobalConfig represents the user's global Vitrine configuration.
// Stored at ~/.config/vitrine/config.toml
type GlobalConfig struct {
	VitrineSchema string            `toml:"vitrine_schema"`
	Editor        string            `toml:"editor,omitempty"`
	Sites         map[string]string `toml:"sites,omitempty"` // name -> path
}

// RegisterSite adds a site to the registry.
func (g *GlobalConfig) RegisterSite(name, path string) {
	if g.Sites == nil {
		g.Sites = make(map[string]string)
	}
	g.Sites[name] = path
}
