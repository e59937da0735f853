package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/amady/vitrine/internal/manager"
	"github.com/amady/vitrine/internal/prompt"
)

// parseFieldFlags parses repeated -f key=value flags into a field map.
func parseFieldFlags(flags []string) (map[string]string, error) {
	fields := make(map[string]string)
	for _, flag := range flags {
		key, value, found := strings.Cut(flag, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid field %q (expected key=value)", flag)
		}
		fields[key] = value
	}
	return fields, nil
}

// promptFields interactively collects field name/value pairs until the user
// submits an empty name.
func promptFields(p prompt.Prompter, existing map[string]string) (map[string]string, error) {
	fields := make(map[string]string)
	for {
		name, err := p.Input("Field name (empty to finish)", "")
		if err != nil {
			return nil, err
		}
		name = strings.TrimSpace(name)
		if name == "" {
			break
		}

		value, err := p.Text(fmt.Sprintf("Value for %q", name), existing[name])
		if err != nil {
			return nil, err
		}
		fields[name] = value
	}
	return fields, nil
}

// readImageFile loads an image from disk into a pending upload.
func readImageFile(path string) (*manager.PendingImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return &manager.PendingImage{Name: filepath.Base(path), Data: data}, nil
}
