package database

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/anasir-dev/portfolio-backend/errs"
)

// FileStore is the durable JSON-file backend. Each collection is one
// `<collection>.json` array container inside dir; every mutation reads the
// entire container, applies the change and writes the whole container back.
// There is no cross-process locking: two concurrent writers to the same
// collection race last-writer-wins, an accepted limitation.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Kind() string {
	return "file"
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// docID peeks at the id field of a raw document.
func docID(doc json.RawMessage) string {
	var probe struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(doc, &probe); err != nil {
		return ""
	}
	return probe.ID
}

func (s *FileStore) readAll(collection string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read collection %s: %w", collection, err)
	}

	var docs []json.RawMessage
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", collection, err)
	}
	return docs, nil
}

func (s *FileStore) writeAll(collection string, docs []json.RawMessage) error {
	if docs == nil {
		docs = []json.RawMessage{}
	}
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", collection, err)
	}
	if err := os.WriteFile(s.path(collection), data, 0o644); err != nil {
		return fmt.Errorf("write collection %s: %w", collection, err)
	}
	return nil
}

func (s *FileStore) ListAll(_ context.Context, collection string) ([]json.RawMessage, error) {
	return s.readAll(collection)
}

func (s *FileStore) FindByID(_ context.Context, collection, id string) (json.RawMessage, error) {
	docs, err := s.readAll(collection)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		if docID(doc) == id {
			return doc, nil
		}
	}
	return nil, fmt.Errorf("%s/%s: %w", collection, id, errs.ErrNotFound)
}

func (s *FileStore) Insert(_ context.Context, collection, id string, doc json.RawMessage) error {
	docs, err := s.readAll(collection)
	if err != nil {
		return err
	}
	for _, existing := range docs {
		if docID(existing) == id {
			return fmt.Errorf("%s/%s: %w", collection, id, errs.ErrAlreadyExists)
		}
	}
	return s.writeAll(collection, append(docs, doc))
}

func (s *FileStore) Replace(_ context.Context, collection, id string, doc json.RawMessage) error {
	docs, err := s.readAll(collection)
	if err != nil {
		return err
	}
	for i, existing := range docs {
		if docID(existing) == id {
			docs[i] = doc
			return s.writeAll(collection, docs)
		}
	}
	return fmt.Errorf("%s/%s: %w", collection, id, errs.ErrNotFound)
}

func (s *FileStore) RemoveByID(_ context.Context, collection, id string) error {
	docs, err := s.readAll(collection)
	if err != nil {
		return err
	}
	for i, existing := range docs {
		if docID(existing) == id {
			return s.writeAll(collection, append(docs[:i], docs[i+1:]...))
		}
	}
	return fmt.Errorf("%s/%s: %w", collection, id, errs.ErrNotFound)
}
