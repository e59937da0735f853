package store

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/amady/vitrine/internal/config"
	vitrerr "github.com/amady/vitrine/internal/errors"
	"github.com/amady/vitrine/internal/id"
	"github.com/amady/vitrine/internal/model"
	"github.com/amady/vitrine/internal/util"
)

// FileBlobStore implements BlobStore on the local filesystem. Blobs land
// under <content>/images/<collection>Images/ and are served by the admin
// server at /images/.
type FileBlobStore struct {
	paths   *config.Paths
	baseURL string
}

// NewBlobStore creates a new file-backed blob store. baseURL is the public
// prefix baked into returned URLs, e.g. "http://localhost:8090".
func NewBlobStore(paths *config.Paths, baseURL string) *FileBlobStore {
	return &FileBlobStore{paths: paths, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Upload stores the binary and returns its durable URL. The write goes
// through a temp file and rename so a crash never leaves a partial blob at
// the final path.
func (s *FileBlobStore) Upload(ctx context.Context, collection model.Collection, name string, r io.Reader, associatedID string) (string, error) {
	dir := s.paths.CollectionImagesDir(collection.String())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", vitrerr.Upload(collection.String(), name, err)
	}

	blobName := blobFileName(name, associatedID)
	finalPath := filepath.Join(dir, blobName)

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", vitrerr.Upload(collection.String(), name, err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", vitrerr.Upload(collection.String(), name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", vitrerr.Upload(collection.String(), name, err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return "", vitrerr.Upload(collection.String(), name, err)
	}

	return s.baseURL + "/images/" + collection.String() + "Images/" + blobName, nil
}

// blobFileName builds a collision-resistant blob name: an optional
// associated card ID, a generated token, and the slugged original name.
func blobFileName(name, associatedID string) string {
	parts := []string{}
	if associatedID != "" {
		parts = append(parts, associatedID)
	}
	parts = append(parts, id.UploadToken(), util.SlugName(filepath.Base(name)))
	return strings.Join(parts, "_")
}
