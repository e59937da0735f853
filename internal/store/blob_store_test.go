package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amady/vitrine/internal/config"
	"github.com/amady/vitrine/internal/model"
)

func setupTestBlobStore(t *testing.T) (*FileBlobStore, string, func()) {
	t.Helper()

	dir, err := os.MkdirTemp("", "vitrine-blob-store-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	paths := config.NewPaths(dir, "")
	store := NewBlobStore(paths, "http://localhost:3000")

	cleanup := func() {
		os.RemoveAll(dir)
	}

	return store, dir, cleanup
}

func TestFileBlobStore_Upload(t *testing.T) {
	store, dir, cleanup := setupTestBlobStore(t)
	defer cleanup()

	url, err := store.Upload(context.Background(), model.CollectionTeam, "Asha Photo.PNG",
		strings.NewReader("png-bytes"), "card42")
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if !strings.HasPrefix(url, "http://localhost:3000/images/teamImages/") {
		t.Errorf("URL prefix mismatch: %q", url)
	}
	if !strings.Contains(url, "card42_") {
		t.Errorf("URL missing associated card ID: %q", url)
	}
	if !strings.HasSuffix(url, "asha-photo.png") {
		t.Errorf("URL missing slugged name: %q", url)
	}

	// The blob exists on disk under the collection's image dir
	blobName := url[strings.LastIndex(url, "/")+1:]
	data, err := os.ReadFile(filepath.Join(dir, "content", "images", "teamImages", blobName))
	if err != nil {
		t.Fatalf("blob not written: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("blob content mismatch: %q", data)
	}
}

func TestFileBlobStore_Upload_NoAssociatedID(t *testing.T) {
	store, _, cleanup := setupTestBlobStore(t)
	defer cleanup()

	url, err := store.Upload(context.Background(), model.CollectionServices, "hero.jpg",
		strings.NewReader("jpg"), "")
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if !strings.Contains(url, "/servicesImages/") {
		t.Errorf("URL not namespaced by collection: %q", url)
	}
	if !strings.HasSuffix(url, "_hero.jpg") {
		t.Errorf("URL missing slugged name: %q", url)
	}
}

func TestFileBlobStore_Upload_UniqueNames(t *testing.T) {
	store, _, cleanup := setupTestBlobStore(t)
	defer cleanup()

	ctx := context.Background()
	first, err := store.Upload(ctx, model.CollectionTeam, "photo.png", strings.NewReader("a"), "")
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	second, err := store.Upload(ctx, model.CollectionTeam, "photo.png", strings.NewReader("b"), "")
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	// Same file name twice must not collide
	if first == second {
		t.Errorf("repeated upload produced identical URL: %q", first)
	}
}

func TestFileBlobStore_NoPartialFiles(t *testing.T) {
	store, dir, cleanup := setupTestBlobStore(t)
	defer cleanup()

	_, err := store.Upload(context.Background(), model.CollectionTeam, "photo.png",
		strings.NewReader("data"), "")
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Join(dir, "content", "images", "teamImages"))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".upload-") {
			t.Errorf("leftover temp file: %s", e.Name())
		}
	}
}
