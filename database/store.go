package database

import (
	"context"
	"encoding/json"
)

// Collection names. Blog and project namespaces are fully independent; an id
// collision across the two has no meaning.
const (
	CollectionBlogs    = "blogs"
	CollectionProjects = "projects"
	CollectionAdmin    = "admin"
)

// Store is the persistence adapter contract. Records travel as raw JSON
// documents; the typed repos own marshaling. Implementations return
// errs.ErrNotFound (wrapped) when an id is unknown.
type Store interface {
	ListAll(ctx context.Context, collection string) ([]json.RawMessage, error)
	FindByID(ctx context.Context, collection, id string) (json.RawMessage, error)
	Insert(ctx context.Context, collection, id string, doc json.RawMessage) error
	Replace(ctx context.Context, collection, id string, doc json.RawMessage) error
	RemoveByID(ctx context.Context, collection, id string) error

	// Kind identifies the backend ("postgres", "file", "memory") for the
	// health endpoint.
	Kind() string
}
