// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"folioadmin/internal/models"
)

// ProjectStore handles all project-related database operations.
type ProjectStore struct {
	db *sql.DB
}

// NewProjectStore creates a new ProjectStore with the given database connection.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

// projectColumns lists the columns selected in project queries.
const projectColumns = `id, title, description, image_url, link, created_at`

// scanProject scans a project row from the result set.
func scanProject(scanner interface{ Scan(...any) error }) (*models.Project, error) {
	var p models.Project
	err := scanner.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.Link, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all projects, newest first. Rows created within the same
// second fall back to id order.
func (s *ProjectStore) List(ctx context.Context) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+projectColumns+`
		FROM projects
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// FindByID retrieves a project by id. Returns nil if not found.
func (s *ProjectStore) FindByID(ctx context.Context, id int64) (*models.Project, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by id: %w", err)
	}
	return p, nil
}

// Create inserts a new project and returns it with its generated id and
// timestamp.
func (s *ProjectStore) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO projects (title, description, image_url, link)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, p.Title, p.Description, p.ImageURL, p.Link).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return s.FindByID(ctx, id)
}

// Update saves the title, description, image and link of an existing project.
func (s *ProjectStore) Update(ctx context.Context, p *models.Project) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE projects
		SET title = $1, description = $2, image_url = $3, link = $4
		WHERE id = $5
	`, p.Title, p.Description, p.ImageURL, p.Link, p.ID)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return requireRow(res, "update project")
}

// Delete removes a project by id. The image it references is left alone.
func (s *ProjectStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return requireRow(res, "delete project")
}

// Count returns the total number of projects.
func (s *ProjectStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return count, nil
}
