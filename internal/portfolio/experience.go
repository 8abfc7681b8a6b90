// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package portfolio

import (
	"context"
	"slices"
	"strings"

	"folioadmin/internal/models"
	"folioadmin/internal/store"
)

const (
	// SampleExperience is inserted under models.DefaultCategory when no
	// category exists at all.
	SampleExperience = "Sample Experience"

	// PlaceholderEntry is the row that makes a newly added category exist.
	PlaceholderEntry = "New Entry"
)

// ExperienceService manages skill rows and the categories derived from them.
type ExperienceService struct {
	skills *store.ExperienceStore
}

// NewExperienceService creates an ExperienceService.
func NewExperienceService(skills *store.ExperienceStore) *ExperienceService {
	return &ExperienceService{skills: skills}
}

// ListCategories returns the sorted distinct categories. When there are
// none, the default category is created with a sample row first.
func (s *ExperienceService) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := s.skills.Categories(ctx)
	if err != nil {
		return nil, failed("fetching categories", err)
	}
	if len(categories) > 0 {
		return categories, nil
	}

	if _, err := s.skills.Create(ctx, models.DefaultCategory, SampleExperience); err != nil {
		return nil, failed("adding new category", err)
	}
	return []string{models.DefaultCategory}, nil
}

// ListByCategory returns the rows of one category ordered by name.
func (s *ExperienceService) ListByCategory(ctx context.Context, category string) ([]models.Experience, error) {
	rows, err := s.skills.ListByCategory(ctx, category)
	if err != nil {
		return nil, failed("loading experience entries", err)
	}
	return rows, nil
}

// ListAll returns every row ordered by category and name.
func (s *ExperienceService) ListAll(ctx context.Context) ([]models.Experience, error) {
	rows, err := s.skills.ListAll(ctx)
	if err != nil {
		return nil, failed("loading experience entries", err)
	}
	return rows, nil
}

// AddCategory creates a category by inserting a placeholder row into it.
// Names are compared exactly, so "go" and "Go" are different categories.
func (s *ExperienceService) AddCategory(ctx context.Context, p Prompter, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid("Category name cannot be empty.")
	}

	existing, err := s.skills.Categories(ctx)
	if err != nil {
		return failed("adding new category", err)
	}
	if slices.Contains(existing, name) {
		return invalid("Category '%s' already exists.", name)
	}

	if _, err := s.skills.Create(ctx, name, PlaceholderEntry); err != nil {
		return failed("adding new category", err)
	}
	p.Notify(NoticeInfo, "Category '"+name+"' added successfully!")
	return nil
}

// ConfirmDeleteCategory is asked before a category and its rows are removed.
func ConfirmDeleteCategory(category string) string {
	return "WARNING: Deleting category '" + category + "' will permanently delete ALL associated experience entries.\nAre you sure you want to proceed?"
}

// DeleteCategory removes every row of a category in one statement.
func (s *ExperienceService) DeleteCategory(ctx context.Context, p Prompter, category string) error {
	if category == "" {
		return invalid("Please select a category to delete.")
	}
	if err := confirm(p, ConfirmDeleteCategory(category)); err != nil {
		return err
	}

	n, err := s.skills.DeleteCategory(ctx, category)
	if err != nil {
		return failed("deleting category", err)
	}
	if n == 0 {
		return invalid("Category '%s' does not exist.", category)
	}
	p.Notify(NoticeInfo, "Category '"+category+"' and all its entries deleted successfully!")
	return nil
}

// AddExperience inserts a row into the active category, which must already
// exist. Categories are only created by AddCategory.
func (s *ExperienceService) AddExperience(ctx context.Context, p Prompter, category, name string) (*models.Experience, error) {
	if strings.TrimSpace(category) == "" {
		return nil, invalid("Please select an experience category tab first.")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("Name cannot be empty.")
	}

	existing, err := s.skills.Categories(ctx)
	if err != nil {
		return nil, failed("adding experience", err)
	}
	if !slices.Contains(existing, category) {
		return nil, invalid("Please select an experience category tab first.")
	}

	e, err := s.skills.Create(ctx, category, name)
	if err != nil {
		return nil, failed("adding experience", err)
	}
	p.Notify(NoticeInfo, "Experience added successfully to "+category+"!")
	return e, nil
}

// UpdateExperience renames a row. Its category is left unchanged.
func (s *ExperienceService) UpdateExperience(ctx context.Context, p Prompter, id int64, name string) (*models.Experience, error) {
	e, err := s.selected(ctx, id, "update")
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("Name cannot be empty.")
	}

	if err := s.skills.UpdateName(ctx, id, name); err != nil {
		return nil, failed("updating experience", err)
	}
	e.Name = name
	p.Notify(NoticeInfo, "Experience updated successfully in "+e.Category+"!")
	return e, nil
}

// ConfirmDeleteExperience is asked before a row is removed.
func ConfirmDeleteExperience(category string) string {
	return "Are you sure you want to delete this experience from " + category + "?"
}

// DeleteExperience removes one row after confirmation.
func (s *ExperienceService) DeleteExperience(ctx context.Context, p Prompter, id int64) error {
	e, err := s.selected(ctx, id, "deletion")
	if err != nil {
		return err
	}
	if err := confirm(p, ConfirmDeleteExperience(e.Category)); err != nil {
		return err
	}

	if err := s.skills.Delete(ctx, id); err != nil {
		return failed("deleting experience", err)
	}
	p.Notify(NoticeInfo, "Experience deleted successfully from "+e.Category+"!")
	return nil
}

// selected loads the row an edit or delete targets.
func (s *ExperienceService) selected(ctx context.Context, id int64, purpose string) (*models.Experience, error) {
	if id <= 0 {
		return nil, invalid("No experience selected for %s.", purpose)
	}
	e, err := s.skills.FindByID(ctx, id)
	if err != nil {
		return nil, failed("loading experience entries", err)
	}
	if e == nil {
		return nil, invalid("No experience selected for %s.", purpose)
	}
	return e, nil
}

// ExperienceSession is the per-view state of the experience editor: the
// categories currently rendered, the active one, and the row selected for
// editing in each category. Selections never cross categories.
type ExperienceSession struct {
	rendered []string
	active   string
	selected map[string]int64
}

// NewExperienceSession returns an empty session.
func NewExperienceSession() *ExperienceSession {
	return &ExperienceSession{selected: make(map[string]int64)}
}

// Categories returns the categories currently rendered.
func (s *ExperienceSession) Categories() []string {
	return slices.Clone(s.rendered)
}

// Active returns the active category, or "" if none.
func (s *ExperienceSession) Active() string {
	return s.active
}

// Sync reconciles the rendered categories with current, the categories in
// storage. It returns the groupings to add and remove, forgets selections
// of removed categories and keeps the active category if it still exists.
func (s *ExperienceSession) Sync(current []string) (add, remove []string) {
	add, remove = models.DiffCategories(s.rendered, current)
	for _, c := range remove {
		delete(s.selected, c)
	}
	s.rendered = slices.Clone(current)

	if !slices.Contains(s.rendered, s.active) {
		s.active = ""
		if len(s.rendered) > 0 {
			s.active = s.rendered[0]
		}
	}
	return add, remove
}

// Switch makes category active and resets its form. Selections in other
// categories are left untouched. Unknown categories are ignored.
func (s *ExperienceSession) Switch(category string) bool {
	if !slices.Contains(s.rendered, category) {
		return false
	}
	s.active = category
	delete(s.selected, category)
	return true
}

// Select marks id as the row being edited in the active category.
func (s *ExperienceSession) Select(id int64) bool {
	if s.active == "" {
		return false
	}
	s.selected[s.active] = id
	return true
}

// Selected returns the row selected in the active category.
func (s *ExperienceSession) Selected() (int64, bool) {
	id, ok := s.selected[s.active]
	return id, ok && s.active != ""
}

// SelectedIn returns the row selected in category.
func (s *ExperienceSession) SelectedIn(category string) (int64, bool) {
	id, ok := s.selected[category]
	return id, ok
}

// ClearSelection resets the form of the active category.
func (s *ExperienceSession) ClearSelection() {
	delete(s.selected, s.active)
}
