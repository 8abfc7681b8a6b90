package portfolio

import (
	"context"

	"folioadmin/internal/markdown"
	"folioadmin/internal/models"
	"folioadmin/internal/store"
)

// Counts is the dashboard summary.
type Counts struct {
	Projects        int `json:"projects"`
	Experience      int `json:"experience"`
	Categories      int `json:"categories"`
	ActiveContacts  int `json:"active_contacts"`
	DeletedContacts int `json:"deleted_contacts"`
}

// Snapshot is the read-only view the public portfolio site renders.
type Snapshot struct {
	AboutHTML  string                         `json:"about_html"`
	Projects   []models.Project               `json:"projects"`
	Categories []string                       `json:"categories"`
	Skills     map[string][]models.Experience `json:"skills"`
	Contacts   []models.Contact               `json:"contacts"`
}

// Overview reads across all collections.
type Overview struct {
	projects *store.ProjectStore
	skills   *store.ExperienceStore
	about    *store.AboutStore
	contacts *store.ContactStore
}

// NewOverview creates an Overview.
func NewOverview(projects *store.ProjectStore, skills *store.ExperienceStore, about *store.AboutStore, contacts *store.ContactStore) *Overview {
	return &Overview{projects: projects, skills: skills, about: about, contacts: contacts}
}

// Counts returns the size of every collection.
func (o *Overview) Counts(ctx context.Context) (*Counts, error) {
	var (
		c   Counts
		err error
	)
	if c.Projects, err = o.projects.Count(ctx); err != nil {
		return nil, failed("loading dashboard", err)
	}
	if c.Experience, err = o.skills.Count(ctx); err != nil {
		return nil, failed("loading dashboard", err)
	}
	categories, err := o.skills.Categories(ctx)
	if err != nil {
		return nil, failed("loading dashboard", err)
	}
	c.Categories = len(categories)
	if c.ActiveContacts, err = o.contacts.Count(ctx, models.ContactActive); err != nil {
		return nil, failed("loading dashboard", err)
	}
	if c.DeletedContacts, err = o.contacts.Count(ctx, models.ContactDeleted); err != nil {
		return nil, failed("loading dashboard", err)
	}
	return &c, nil
}

// Snapshot returns what the public site shows: the About text rendered as
// HTML, projects newest first, skills grouped by category and the active
// contacts. Nothing is written; an empty About table yields no HTML.
func (o *Overview) Snapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}

	about, err := o.about.First(ctx)
	if err != nil {
		return nil, failed("loading portfolio", err)
	}
	if about != nil {
		if snap.AboutHTML, err = markdown.ToHTML(about.Content); err != nil {
			return nil, failed("loading portfolio", err)
		}
	}

	if snap.Projects, err = o.projects.List(ctx); err != nil {
		return nil, failed("loading portfolio", err)
	}

	skills, err := o.skills.ListAll(ctx)
	if err != nil {
		return nil, failed("loading portfolio", err)
	}
	snap.Categories = models.Categories(skills)
	snap.Skills = models.GroupByCategory(skills)

	if snap.Contacts, err = o.contacts.List(ctx, models.ContactActive); err != nil {
		return nil, failed("loading portfolio", err)
	}
	return snap, nil
}
