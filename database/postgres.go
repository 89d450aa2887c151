package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/anasir-dev/portfolio-backend/errs"
)

// document is the single table behind the Postgres backend: one row per record,
// the record body kept as a JSON document keyed by (collection, doc_id).
type document struct {
	Collection string         `gorm:"primaryKey;size:64"`
	DocID      string         `gorm:"primaryKey;size:64"`
	Doc        datatypes.JSON `gorm:"not null"`
}

func (document) TableName() string {
	return "documents"
}

// PostgresStore is the database-backed durable backend, used when a connection
// string is configured and reachable.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore migrates the documents table and probes connectivity.
func NewPostgresStore(db *gorm.DB) (*PostgresStore, error) {
	if err := db.AutoMigrate(&document{}); err != nil {
		return nil, fmt.Errorf("migrate documents table: %w", err)
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("probe database connection: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Kind() string {
	return "postgres"
}

func (s *PostgresStore) ListAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	var rows []document
	err := s.db.WithContext(ctx).Where("collection = ?", collection).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}

	docs := make([]json.RawMessage, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, json.RawMessage(row.Doc))
	}
	return docs, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, collection, id string) (json.RawMessage, error) {
	var row document
	err := s.db.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection, id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s/%s: %w", collection, id, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("find %s/%s: %w", collection, id, err)
	}
	return json.RawMessage(row.Doc), nil
}

func (s *PostgresStore) Insert(ctx context.Context, collection, id string, doc json.RawMessage) error {
	row := document{Collection: collection, DocID: id, Doc: datatypes.JSON(doc)}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%s/%s: %w", collection, id, errs.ErrAlreadyExists)
		}
		return fmt.Errorf("insert %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *PostgresStore) Replace(ctx context.Context, collection, id string, doc json.RawMessage) error {
	res := s.db.WithContext(ctx).
		Model(&document{}).
		Where("collection = ? AND doc_id = ?", collection, id).
		Update("doc", datatypes.JSON(doc))
	if res.Error != nil {
		return fmt.Errorf("replace %s/%s: %w", collection, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, errs.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) RemoveByID(ctx context.Context, collection, id string) error {
	res := s.db.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection, id).
		Delete(&document{})
	if res.Error != nil {
		return fmt.Errorf("remove %s/%s: %w", collection, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, errs.ErrNotFound)
	}
	return nil
}
