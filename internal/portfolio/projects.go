// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package portfolio

import (
	"context"
	"io"
	"strings"

	"folioadmin/internal/assets"
	"folioadmin/internal/models"
	"folioadmin/internal/store"
)

// ConfirmDeleteProject is asked before a project is removed.
const ConfirmDeleteProject = "Are you sure you want to delete this project? (Note: Image file on server will NOT be deleted automatically)"

// Upload is an image file chosen by the user.
type Upload struct {
	Name string // original file name; its extension selects the format
	Body io.Reader
}

// ProjectInput is the project form.
type ProjectInput struct {
	Title       string
	Description string
	Link        string
	Image       *Upload // nil when no image was chosen
}

func (in *ProjectInput) normalize() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Link = strings.TrimSpace(in.Link)
	if in.Title == "" || in.Description == "" {
		return invalid("Title and Description cannot be empty.")
	}
	return nil
}

// ProjectService manages portfolio projects.
type ProjectService struct {
	projects *store.ProjectStore
	images   *assets.Handler
}

// NewProjectService creates a ProjectService. images may be nil, in which
// case chosen images are reported as failed and not stored.
func NewProjectService(projects *store.ProjectStore, images *assets.Handler) *ProjectService {
	return &ProjectService{projects: projects, images: images}
}

// List returns all projects, newest first.
func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, failed("loading projects", err)
	}
	return projects, nil
}

// Create validates and saves a new project. An image that cannot be stored
// is reported and the project is saved without one.
func (s *ProjectService) Create(ctx context.Context, p Prompter, in ProjectInput) (*models.Project, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	project := &models.Project{
		Title:       in.Title,
		Description: in.Description,
		Link:        nullable(in.Link),
	}
	if in.Image != nil {
		if url, ok := s.storeImage(ctx, p, in.Image, "saving image to server"); ok {
			project.ImageURL = &url
		}
	}

	created, err := s.projects.Create(ctx, project)
	if err != nil {
		return nil, failed("adding project", err)
	}
	p.Notify(NoticeInfo, "Project added successfully!")
	return created, nil
}

// Update validates and saves an existing project. Without a new image, or
// when the new image cannot be stored, the previous image is kept.
func (s *ProjectService) Update(ctx context.Context, p Prompter, id int64, in ProjectInput) (*models.Project, error) {
	if id <= 0 {
		return nil, invalid("No project selected for update.")
	}
	if err := in.normalize(); err != nil {
		return nil, err
	}

	existing, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, failed("updating project", err)
	}
	if existing == nil {
		return nil, invalid("No project selected for update.")
	}

	existing.Title = in.Title
	existing.Description = in.Description
	existing.Link = nullable(in.Link)
	if in.Image != nil {
		if url, ok := s.storeImage(ctx, p, in.Image, "updating image on server"); ok {
			existing.ImageURL = &url
		}
	}

	if err := s.projects.Update(ctx, existing); err != nil {
		return nil, failed("updating project", err)
	}
	p.Notify(NoticeInfo, "Project updated successfully!")
	return existing, nil
}

// Delete removes a project after confirmation. Its image file stays where
// it is.
func (s *ProjectService) Delete(ctx context.Context, p Prompter, id int64) error {
	if id <= 0 {
		return invalid("No project selected for deletion.")
	}
	if err := confirm(p, ConfirmDeleteProject); err != nil {
		return err
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return invalid("No project selected for deletion.")
		}
		return failed("deleting project", err)
	}
	p.Notify(NoticeInfo, "Project deleted successfully!")
	return nil
}

// Preview renders the chosen image at the bounded preview size.
func (s *ProjectService) Preview(up *Upload) ([]byte, error) {
	if up == nil {
		return nil, invalid("No image selected.")
	}
	if !assets.AllowedExtension(up.Name) {
		return nil, invalid("Only jpg, jpeg, png and gif images are supported.")
	}
	if s.images == nil {
		return nil, invalid("Image storage is not configured.")
	}
	data, err := s.images.Preview(up.Body)
	if err != nil {
		return nil, invalid("Error loading image: %v", err)
	}
	return data, nil
}

// storeImage persists up and reports the outcome through p. A failure is
// never returned: the caller carries on without the image.
func (s *ProjectService) storeImage(ctx context.Context, p Prompter, up *Upload, action string) (string, bool) {
	if s.images == nil {
		p.Notify(NoticeError, "Error "+action+": image storage is not configured")
		return "", false
	}
	url, err := s.images.Persist(ctx, up.Name, up.Body)
	if err != nil {
		p.Notify(NoticeError, "Error "+action+": "+err.Error())
		return "", false
	}
	p.Notify(NoticeInfo, "Image uploaded to server: "+url)
	return url, true
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
