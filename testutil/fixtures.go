package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amady/vitrine/internal/config"
	"github.com/amady/vitrine/internal/model"
	"github.com/amady/vitrine/internal/version"
)

// TestCard returns a card with sensible test defaults.
func TestCard(id, name string) *model.Card {
	return &model.Card{
		Version: version.CurrentCardVersion,
		ID:      id,
		Fields: map[string]string{
			"Name":        name,
			"Description": "A test card",
		},
	}
}

// TempSiteDir creates a temporary directory with a content structure for
// testing. Returns the temp dir path and a cleanup function.
func TempSiteDir(t *testing.T) (string, func()) {
	t.Helper()

	dir, err := os.MkdirTemp("", "vitrine-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	// Create content/collections and content/images structure
	for _, sub := range []string{"collections", "images"} {
		if err := os.MkdirAll(filepath.Join(dir, "content", sub), 0755); err != nil {
			os.RemoveAll(dir)
			t.Fatalf("failed to create content dir: %v", err)
		}
	}

	cleanup := func() {
		os.RemoveAll(dir)
	}

	return dir, cleanup
}

// NewTestPaths creates a Paths for testing with the given temp directory.
func NewTestPaths(baseDir string) *config.Paths {
	return config.NewPaths(baseDir, "")
}
