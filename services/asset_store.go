package services

import (
	"encoding/base64"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/anasir-dev/portfolio-backend/errs"
)

// MaxUploadSize caps uploaded image attachments at 5 MiB.
const MaxUploadSize = 5 << 20

// uploadsPrefix is the public URL prefix for disk-backed assets. Only refs
// under this prefix are releasable; inline data-URI refs are not.
const uploadsPrefix = "/uploads/"

var allowedImageExts = []string{"jpeg", "jpg", "png", "gif"}

// Upload is an image attachment as received from a multipart request.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ValidateUpload enforces the size cap and the image allowlist. It runs before
// any record mutation so an oversized or mistyped upload never leaves an
// orphan record behind.
func ValidateUpload(u *Upload) error {
	if int64(len(u.Data)) > MaxUploadSize {
		return errs.NewMaxUploadSizeError(MaxUploadSize)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(u.Filename), "."))
	if !allowedExt(ext) || !allowedContentType(u.ContentType) {
		return errs.NewUnsupportedMediaTypeError(u.ContentType, allowedImageExts)
	}
	return nil
}

func allowedExt(ext string) bool {
	for _, allowed := range allowedImageExts {
		if ext == allowed {
			return true
		}
	}
	return false
}

func allowedContentType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png", "image/gif":
		return true
	}
	return false
}

// AssetStore persists accepted image attachments and returns the reference
// stored on the record. A deployment picks exactly one implementation; the
// disk and inline representations are not interchangeable.
type AssetStore interface {
	Store(upload *Upload) (ref string, err error)
	Release(ref string) error
	Kind() string
}

// DiskAssetStore writes each asset as a uniquely named file under dir and
// references it by URL path.
type DiskAssetStore struct {
	dir string
}

func NewDiskAssetStore(dir string) (*DiskAssetStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory %s: %w", dir, err)
	}
	return &DiskAssetStore{dir: dir}, nil
}

func (s *DiskAssetStore) Kind() string {
	return "disk"
}

func (s *DiskAssetStore) Store(upload *Upload) (string, error) {
	filename := uuid.New().String() + "-" + sanitizeFilename(upload.Filename)
	if err := os.WriteFile(filepath.Join(s.dir, filename), upload.Data, 0o644); err != nil {
		return "", fmt.Errorf("write asset %s: %w", filename, err)
	}
	return uploadsPrefix + filename, nil
}

// Release unlinks the file behind a /uploads/ ref. A ref that is not
// file-backed, or a file already gone, is not an error.
func (s *DiskAssetStore) Release(ref string) error {
	if !strings.HasPrefix(ref, uploadsPrefix) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, path.Base(ref)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove asset %s: %w", ref, err)
	}
	return nil
}

// Resolve maps a requested filename to its on-disk path, rejecting anything
// that would escape the uploads directory.
func (s *DiskAssetStore) Resolve(filename string) (string, error) {
	if filename == "" || filename != path.Base(filename) || strings.Contains(filename, "..") {
		return "", errs.NewNotFoundError("file not found")
	}

	full := filepath.Join(s.dir, filename)
	if _, err := os.Stat(full); err != nil {
		return "", errs.NewNotFoundError("file not found")
	}
	return full, nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.ReplaceAll(base, " ", "_")
	if base == "" || base == "." || base == "/" {
		return "image"
	}
	return base
}

// InlineAssetStore embeds each asset into the record as a self-describing
// data URI. Nothing is file-backed, so Release has nothing to do.
type InlineAssetStore struct{}

func NewInlineAssetStore() *InlineAssetStore {
	return &InlineAssetStore{}
}

func (s *InlineAssetStore) Kind() string {
	return "inline"
}

func (s *InlineAssetStore) Store(upload *Upload) (string, error) {
	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(upload.Data), nil
}

func (s *InlineAssetStore) Release(string) error {
	return nil
}
