package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current schema versions - bump these when making breaking changes.
const (
	CurrentCardVersion   = 1
	CurrentSiteVersion   = 1
	CurrentGlobalVersion = 1
)

// Schema type prefixes for config files.
const (
	SiteSchemaPrefix   = "site/"
	GlobalSchemaPrefix = "global/"
)

// FormatSiteSchema creates a site schema string from a version number.
// Example: FormatSiteSchema(1) returns "site/1"
func FormatSiteSchema(v int) string {
	return fmt.Sprintf("%s%d", SiteSchemaPrefix, v)
}

// FormatGlobalSchema creates a global schema string from a version number.
func FormatGlobalSchema(v int) string {
	return fmt.Sprintf("%s%d", GlobalSchemaPrefix, v)
}

// ParseSiteVersion extracts the version number from a site schema string.
// Returns an error if the format is invalid.
func ParseSiteVersion(schema string) (int, error) {
	return parseSchemaVersion(schema, SiteSchemaPrefix, "site")
}

// ParseGlobalVersion extracts the version number from a global schema string.
func ParseGlobalVersion(schema string) (int, error) {
	return parseSchemaVersion(schema, GlobalSchemaPrefix, "global")
}

func parseSchemaVersion(schema, prefix, schemaType string) (int, error) {
	if !strings.HasPrefix(schema, prefix) {
		return 0, fmt.Errorf("invalid %s schema format: %q (expected %sN)", schemaType, schema, prefix)
	}
	versionStr := strings.TrimPrefix(schema, prefix)
	v, err := strconv.Atoi(versionStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s schema version: %q", schemaType, versionStr)
	}
	if v < 1 {
		return 0, fmt.Errorf("invalid %s schema version: %d (must be >= 1)", schemaType, v)
	}
	return v, nil
}

// CurrentSiteSchema returns the current site schema string.
func CurrentSiteSchema() string {
	return FormatSiteSchema(CurrentSiteVersion)
}

// CurrentGlobalSchema returns the current global schema string.
func CurrentGlobalSchema() string {
	return FormatGlobalSchema(CurrentGlobalVersion)
}
