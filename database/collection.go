package database

import (
	"context"
	"encoding/json"
	"fmt"
)

// collection gives a Store a typed face for one record kind. The repos below
// are thin wrappers around it.
type collection[T any] struct {
	store Store
	name  string
}

func (c collection[T]) findAll(ctx context.Context) ([]*T, error) {
	docs, err := c.store.ListAll(ctx, c.name)
	if err != nil {
		return nil, err
	}

	records := make([]*T, 0, len(docs))
	for _, doc := range docs {
		record := new(T)
		if err := json.Unmarshal(doc, record); err != nil {
			return nil, fmt.Errorf("decode %s record: %w", c.name, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func (c collection[T]) findByID(ctx context.Context, id string) (*T, error) {
	doc, err := c.store.FindByID(ctx, c.name, id)
	if err != nil {
		return nil, err
	}

	record := new(T)
	if err := json.Unmarshal(doc, record); err != nil {
		return nil, fmt.Errorf("decode %s record: %w", c.name, err)
	}
	return record, nil
}

func (c collection[T]) insert(ctx context.Context, id string, record *T) error {
	doc, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode %s record: %w", c.name, err)
	}
	return c.store.Insert(ctx, c.name, id, doc)
}

func (c collection[T]) replace(ctx context.Context, id string, record *T) error {
	doc, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode %s record: %w", c.name, err)
	}
	return c.store.Replace(ctx, c.name, id, doc)
}

func (c collection[T]) remove(ctx context.Context, id string) error {
	return c.store.RemoveByID(ctx, c.name, id)
}
