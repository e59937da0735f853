package version

import "fmt"

// SchemaError indicates a config file carries a missing or unsupported
// schema marker.
type SchemaError struct {
	Path   string
	Schema string // Empty when the marker is missing
	Want   string
}

func (e *SchemaError) Error() string {
	if e.Schema == "" {
		return fmt.Sprintf("%s is missing its schema marker (expected %q); re-run 'vitrine init' or add it manually", e.Path, e.Want)
	}
	return fmt.Sprintf("%s has schema %q but this version of vitrine expects %q", e.Path, e.Schema, e.Want)
}

// MissingSiteSchema reports a site config without a schema marker.
func MissingSiteSchema(path string) error {
	return &SchemaError{Path: path, Want: CurrentSiteSchema()}
}

// InvalidSiteSchema reports a site config with an unsupported schema.
func InvalidSiteSchema(path, schema string) error {
	return &SchemaError{Path: path, Schema: schema, Want: CurrentSiteSchema()}
}

// MissingGlobalSchema reports a global config without a schema marker.
func MissingGlobalSchema(path string) error {
	return &SchemaError{Path: path, Want: CurrentGlobalSchema()}
}

// InvalidGlobalSchema reports a global config with an unsupported schema.
func InvalidGlobalSchema(path, schema string) error {
	return &SchemaError{Path: path, Schema: schema, Want: CurrentGlobalSchema()}
}
