// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package portfolio

import (
	"context"
	"errors"
	"strings"

	"folioadmin/internal/models"
	"folioadmin/internal/store"
)

const (
	ConfirmSoftDelete = "Are you sure you want to soft delete this contact?"
	ConfirmRestore    = "Are you sure you want to restore this contact?"
)

// ConfirmHardDelete is asked before a contact in state is removed for good.
func ConfirmHardDelete(state models.ContactState) string {
	return "WARNING: This will permanently delete the " + state.Label() + " contact. Are you sure?"
}

// Contacts holds both partitions of the contact list.
type Contacts struct {
	Active  []models.Contact `json:"active"`
	Deleted []models.Contact `json:"deleted"`
}

// ContactService manages contacts and their soft-delete lifecycle:
// active -> deleted -> active, and removal from either state.
type ContactService struct {
	contacts *store.ContactStore
}

// NewContactService creates a ContactService.
func NewContactService(contacts *store.ContactStore) *ContactService {
	return &ContactService{contacts: contacts}
}

// List returns the active and soft-deleted contacts.
func (s *ContactService) List(ctx context.Context) (*Contacts, error) {
	active, err := s.contacts.List(ctx, models.ContactActive)
	if err != nil {
		return nil, failed("loading active contacts", err)
	}
	deleted, err := s.contacts.List(ctx, models.ContactDeleted)
	if err != nil {
		return nil, failed("loading deleted contacts", err)
	}
	return &Contacts{Active: active, Deleted: deleted}, nil
}

func contactFields(platform, link string) (string, string, error) {
	platform = strings.TrimSpace(platform)
	link = strings.TrimSpace(link)
	if platform == "" || link == "" {
		return "", "", invalid("Platform and link cannot be empty.")
	}
	return platform, link, nil
}

// Create adds an active contact.
func (s *ContactService) Create(ctx context.Context, p Prompter, platform, link string) (*models.Contact, error) {
	platform, link, err := contactFields(platform, link)
	if err != nil {
		return nil, err
	}

	c, err := s.contacts.Create(ctx, platform, link)
	if err != nil {
		return nil, failed("adding contact", err)
	}
	p.Notify(NoticeInfo, "Contact added successfully!")
	return c, nil
}

// Update edits an active contact.
func (s *ContactService) Update(ctx context.Context, p Prompter, id int64, platform, link string) error {
	if id <= 0 {
		return invalid("No active contact selected for update.")
	}
	platform, link, err := contactFields(platform, link)
	if err != nil {
		return err
	}

	if err := s.contacts.Update(ctx, id, platform, link); err != nil {
		if isNotFound(err) {
			return invalid("No active contact selected for update.")
		}
		return failed("updating contact", err)
	}
	p.Notify(NoticeInfo, "Contact updated successfully!")
	return nil
}

// SoftDelete moves an active contact to the deleted list after confirmation.
func (s *ContactService) SoftDelete(ctx context.Context, p Prompter, id int64) error {
	const selectMsg = "No active contact selected for soft deletion."
	if err := s.requireState(ctx, id, models.ContactActive, selectMsg); err != nil {
		return err
	}
	if err := confirm(p, ConfirmSoftDelete); err != nil {
		return err
	}

	if err := s.contacts.SoftDelete(ctx, id); err != nil {
		if isNotFound(err) {
			return invalid(selectMsg)
		}
		return failed("soft deleting contact", err)
	}
	p.Notify(NoticeInfo, "Contact soft deleted successfully!")
	return nil
}

// Restore moves a deleted contact back to the active list after confirmation.
func (s *ContactService) Restore(ctx context.Context, p Prompter, id int64) error {
	const selectMsg = "No deleted contact selected for restoration."
	if err := s.requireState(ctx, id, models.ContactDeleted, selectMsg); err != nil {
		return err
	}
	if err := confirm(p, ConfirmRestore); err != nil {
		return err
	}

	if err := s.contacts.Restore(ctx, id); err != nil {
		if isNotFound(err) {
			return invalid(selectMsg)
		}
		return failed("restoring contact", err)
	}
	p.Notify(NoticeInfo, "Contact restored successfully!")
	return nil
}

// HardDelete removes a contact in either state after a stronger
// confirmation.
func (s *ContactService) HardDelete(ctx context.Context, p Prompter, id int64) error {
	const selectMsg = "Please select a contact to hard delete."
	if id <= 0 {
		return invalid(selectMsg)
	}
	c, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		return failed("permanently deleting contact", err)
	}
	if c == nil {
		return invalid(selectMsg)
	}
	if err := confirm(p, ConfirmHardDelete(c.State)); err != nil {
		return err
	}

	if err := s.contacts.HardDelete(ctx, id); err != nil {
		if isNotFound(err) {
			return invalid(selectMsg)
		}
		return failed("permanently deleting contact", err)
	}
	p.Notify(NoticeInfo, "Contact permanently deleted successfully!")
	return nil
}

// requireState checks the transition is valid before asking for
// confirmation. The store re-checks it in the write itself.
func (s *ContactService) requireState(ctx context.Context, id int64, want models.ContactState, msg string) error {
	if id <= 0 {
		return &ValidationError{Message: msg}
	}
	c, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		return failed("loading contacts", err)
	}
	if c == nil || c.State != want {
		return &ValidationError{Message: msg}
	}
	return nil
}

// Partition identifies one of the two contact lists.
type Partition int

const (
	NoPartition Partition = iota
	ActivePartition
	DeletedPartition
)

// ContactSelection tracks the selected row across both lists. Selecting in
// one list clears the other.
type ContactSelection struct {
	partition Partition
	id        int64
}

// SelectActive selects id in the active list.
func (s *ContactSelection) SelectActive(id int64) {
	s.partition, s.id = ActivePartition, id
}

// SelectDeleted selects id in the deleted list.
func (s *ContactSelection) SelectDeleted(id int64) {
	s.partition, s.id = DeletedPartition, id
}

// Clear drops any selection.
func (s *ContactSelection) Clear() {
	s.partition, s.id = NoPartition, 0
}

// Active returns the id selected in the active list.
func (s *ContactSelection) Active() (int64, bool) {
	return s.id, s.partition == ActivePartition
}

// Deleted returns the id selected in the deleted list.
func (s *ContactSelection) Deleted() (int64, bool) {
	return s.id, s.partition == DeletedPartition
}

// Any returns the selected id regardless of list.
func (s *ContactSelection) Any() (int64, bool) {
	return s.id, s.partition != NoPartition
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
