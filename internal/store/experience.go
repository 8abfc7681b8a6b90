// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"folioadmin/internal/models"
)

// ExperienceStore handles the skills table. Categories are not stored on
// their own; they are derived from the distinct category values.
type ExperienceStore struct {
	db *sql.DB
}

// NewExperienceStore creates a new ExperienceStore with the given database connection.
func NewExperienceStore(db *sql.DB) *ExperienceStore {
	return &ExperienceStore{db: db}
}

// experienceColumns lists the columns selected in skill queries. A NULL
// category reads back as the empty string.
const experienceColumns = `id, name, COALESCE(category, '')`

func scanExperience(scanner interface{ Scan(...any) error }) (*models.Experience, error) {
	var e models.Experience
	if err := scanner.Scan(&e.ID, &e.Name, &e.Category); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *ExperienceStore) query(ctx context.Context, op, q string, args ...any) ([]models.Experience, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []models.Experience
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, fmt.Errorf("scan experience: %w", err)
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// Categories returns the distinct non-empty categories in byte order.
func (s *ExperienceStore) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT category FROM skills
		WHERE category IS NOT NULL AND category <> ''
		ORDER BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	// Database collations differ; callers compare against sort.Strings order.
	sort.Strings(categories)
	return categories, nil
}

// ListByCategory returns the rows of one category ordered by name.
func (s *ExperienceStore) ListByCategory(ctx context.Context, category string) ([]models.Experience, error) {
	return s.query(ctx, "list experience by category", `
		SELECT `+experienceColumns+` FROM skills
		WHERE category = $1
		ORDER BY name, id
	`, category)
}

// ListAll returns every row ordered by category then name.
func (s *ExperienceStore) ListAll(ctx context.Context) ([]models.Experience, error) {
	return s.query(ctx, "list experience", `
		SELECT `+experienceColumns+` FROM skills
		ORDER BY category, name, id
	`)
}

// FindByID retrieves a row by id. Returns nil if not found.
func (s *ExperienceStore) FindByID(ctx context.Context, id int64) (*models.Experience, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+experienceColumns+` FROM skills WHERE id = $1`, id)
	e, err := scanExperience(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find experience by id: %w", err)
	}
	return e, nil
}

// Create inserts a row in the given category.
func (s *ExperienceStore) Create(ctx context.Context, category, name string) (*models.Experience, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO skills (name, category) VALUES ($1, $2)
		RETURNING id
	`, name, category).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create experience: %w", err)
	}
	return &models.Experience{ID: id, Name: name, Category: category}, nil
}

// UpdateName renames a row. The category never changes after creation.
func (s *ExperienceStore) UpdateName(ctx context.Context, id int64, name string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE skills SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return fmt.Errorf("update experience: %w", err)
	}
	return requireRow(res, "update experience")
}

// Delete removes a single row.
func (s *ExperienceStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete experience: %w", err)
	}
	return requireRow(res, "delete experience")
}

// DeleteCategory removes every row of a category in one statement and
// returns how many rows went with it.
func (s *ExperienceStore) DeleteCategory(ctx context.Context, category string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM skills WHERE category = $1`, category)
	if err != nil {
		return 0, fmt.Errorf("delete category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete category rows affected: %w", err)
	}
	return n, nil
}

// Count returns the total number of skill rows.
func (s *ExperienceStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM skills`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count experience: %w", err)
	}
	return count, nil
}
