package services

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anasir-dev/portfolio-backend/errs"
)

func TestValidateUpload(t *testing.T) {
	testCases := []struct {
		name    string
		upload  Upload
		wantErr func(error) bool
	}{
		{
			name:   "png accepted",
			upload: Upload{Filename: "a.png", ContentType: "image/png", Data: make([]byte, 100)},
		},
		{
			name:   "jpeg accepted",
			upload: Upload{Filename: "a.JPG", ContentType: "image/jpeg", Data: make([]byte, 100)},
		},
		{
			name:   "gif accepted",
			upload: Upload{Filename: "a.gif", ContentType: "image/gif", Data: make([]byte, 100)},
		},
		{
			name:   "at the cap accepted",
			upload: Upload{Filename: "a.png", ContentType: "image/png", Data: make([]byte, MaxUploadSize)},
		},
		{
			name:    "over the cap rejected",
			upload:  Upload{Filename: "a.png", ContentType: "image/png", Data: make([]byte, MaxUploadSize+1)},
			wantErr: errs.IsMaxUploadSizeError,
		},
		{
			name:    "bad extension rejected",
			upload:  Upload{Filename: "a.pdf", ContentType: "image/png", Data: make([]byte, 100)},
			wantErr: errs.IsUnsupportedMediaTypeError,
		},
		{
			name:    "bad content type rejected",
			upload:  Upload{Filename: "a.png", ContentType: "application/pdf", Data: make([]byte, 100)},
			wantErr: errs.IsUnsupportedMediaTypeError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateUpload(&tc.upload)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr(err))
			}
		})
	}
}

func TestDiskAssetStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskAssetStore(dir)
	require.NoError(t, err)

	ref, err := store.Store(&Upload{Filename: "my photo.png", ContentType: "image/png", Data: []byte("bytes")})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "/uploads/"))
	assert.True(t, strings.HasSuffix(ref, "-my_photo.png"))

	filename := path.Base(ref)
	data, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(t, err)
	assert.Equal(t, []byte("bytes"), data)

	resolved, err := store.Resolve(filename)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, filename), resolved)

	require.NoError(t, store.Release(ref))
	_, err = os.Stat(filepath.Join(dir, filename))
	assert.True(t, os.IsNotExist(err))

	// Releasing twice, or releasing a non-file ref, is fine.
	assert.NoError(t, store.Release(ref))
	assert.NoError(t, store.Release("data:image/png;base64,AAAA"))
}

func TestDiskAssetStoreResolveRejectsTraversal(t *testing.T) {
	store, err := NewDiskAssetStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "..", "../secrets.txt", "a/../../b.png", "sub/dir.png"} {
		_, err := store.Resolve(name)
		assert.True(t, errs.IsNotFound(err), "name %q", name)
	}
}

func TestInlineAssetStore(t *testing.T) {
	store := NewInlineAssetStore()

	ref, err := store.Store(&Upload{Filename: "a.png", ContentType: "image/png", Data: []byte{1, 2, 3}})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "data:image/png;base64,"))

	assert.NoError(t, store.Release(ref))
}
