package store

import (
	"context"
	"database/sql"
	"fmt"

	"folioadmin/internal/models"
)

// AboutStore handles the about table, which holds one meaningful row.
type AboutStore struct {
	db *sql.DB
}

// NewAboutStore creates a new AboutStore with the given database connection.
func NewAboutStore(db *sql.DB) *AboutStore {
	return &AboutStore{db: db}
}

// First returns the lowest-id row, or nil if the table is empty.
func (s *AboutStore) First(ctx context.Context) (*models.About, error) {
	a := &models.About{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, content FROM about ORDER BY id LIMIT 1
	`).Scan(&a.ID, &a.Content)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find about: %w", err)
	}
	return a, nil
}

// Create inserts a row and returns it with its generated id.
func (s *AboutStore) Create(ctx context.Context, content string) (*models.About, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO about (content) VALUES ($1) RETURNING id
	`, content).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create about: %w", err)
	}
	return &models.About{ID: id, Content: content}, nil
}

// Update replaces the content of the row with the given id.
func (s *AboutStore) Update(ctx context.Context, id int64, content string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE about SET content = $1 WHERE id = $2`, content, id)
	if err != nil {
		return fmt.Errorf("update about: %w", err)
	}
	return requireRow(res, "update about")
}
