package database

import (
	"context"

	"github.com/anasir-dev/portfolio-backend/models"
)

// adminDocID is the fixed id of the single administrator document.
const adminDocID = "admin"

// adminDoc wraps the admin record with the document id the stores key on.
type adminDoc struct {
	ID string `json:"id"`
	models.Admin
}

type AdminRepo struct {
	admins collection[adminDoc]
}

func NewAdminRepo(store Store) *AdminRepo {
	return &AdminRepo{admins: collection[adminDoc]{store: store, name: CollectionAdmin}}
}

// Get returns the administrator record, or a NotFound error before first seed.
func (r *AdminRepo) Get(ctx context.Context) (*models.Admin, error) {
	doc, err := r.admins.findByID(ctx, adminDocID)
	if err != nil {
		return nil, err
	}
	return &doc.Admin, nil
}

// Put creates the administrator record. It is written exactly once, at first
// boot; there is no update path through the API.
func (r *AdminRepo) Put(ctx context.Context, admin *models.Admin) error {
	return r.admins.insert(ctx, adminDocID, &adminDoc{ID: adminDocID, Admin: *admin})
}
