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

// ContactStore handles all contact-related database operations. State
// transitions are guarded in SQL: a write against a contact in the wrong
// state matches no row and returns ErrNotFound.
type ContactStore struct {
	db *sql.DB
}

// NewContactStore creates a new ContactStore with the given database connection.
func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

// contactColumns lists the columns selected in contact queries.
const contactColumns = `id, COALESCE(platform, ''), COALESCE(link, ''), deleted`

func scanContact(scanner interface{ Scan(...any) error }) (*models.Contact, error) {
	var (
		c       models.Contact
		deleted bool
	)
	if err := scanner.Scan(&c.ID, &c.Platform, &c.Link, &deleted); err != nil {
		return nil, err
	}
	c.State = models.StateFromDeleted(deleted)
	return &c, nil
}

// List returns the contacts in the given state ordered by id.
func (s *ContactStore) List(ctx context.Context, state models.ContactState) ([]models.Contact, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+contactColumns+` FROM contacts
		WHERE deleted = $1
		ORDER BY id
	`, state.Deleted())
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, *c)
	}
	return contacts, rows.Err()
}

// FindByID retrieves a contact in any state. Returns nil if not found.
func (s *ContactStore) FindByID(ctx context.Context, id int64) (*models.Contact, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id)
	c, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find contact by id: %w", err)
	}
	return c, nil
}

// Create inserts an active contact.
func (s *ContactStore) Create(ctx context.Context, platform, link string) (*models.Contact, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO contacts (platform, link, deleted) VALUES ($1, $2, $3)
		RETURNING id
	`, platform, link, false).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return &models.Contact{ID: id, Platform: platform, Link: link, State: models.ContactActive}, nil
}

// Update changes the platform and link of an active contact.
func (s *ContactStore) Update(ctx context.Context, id int64, platform, link string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE contacts SET platform = $1, link = $2
		WHERE id = $3 AND deleted = $4
	`, platform, link, id, false)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	return requireRow(res, "update contact")
}

// SoftDelete moves an active contact to the deleted state.
func (s *ContactStore) SoftDelete(ctx context.Context, id int64) error {
	return s.transition(ctx, "soft delete contact", id, models.ContactActive, models.ContactDeleted)
}

// Restore moves a deleted contact back to the active state.
func (s *ContactStore) Restore(ctx context.Context, id int64) error {
	return s.transition(ctx, "restore contact", id, models.ContactDeleted, models.ContactActive)
}

func (s *ContactStore) transition(ctx context.Context, op string, id int64, from, to models.ContactState) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE contacts SET deleted = $1 WHERE id = $2 AND deleted = $3
	`, to.Deleted(), id, from.Deleted())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return requireRow(res, op)
}

// HardDelete removes a contact in either state.
func (s *ContactStore) HardDelete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("hard delete contact: %w", err)
	}
	return requireRow(res, "hard delete contact")
}

// Count returns the number of contacts in the given state.
func (s *ContactStore) Count(ctx context.Context, state models.ContactState) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts WHERE deleted = $1`, state.Deleted()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return count, nil
}
