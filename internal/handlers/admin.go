// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the portfolio admin API.
// Handlers are grouped by concern (admin, public, auth) and receive
// their dependencies through the handler struct. They are thin: all
// validation and confirmation logic lives in the portfolio services.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"folioadmin/internal/assets"
	"folioadmin/internal/models"
	"folioadmin/internal/portfolio"
)

// Admin groups all admin API handlers and their dependencies.
type Admin struct {
	projects   *portfolio.ProjectService
	experience *portfolio.ExperienceService
	about      *portfolio.AboutService
	contacts   *portfolio.ContactService
	overview   *portfolio.Overview
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(projects *portfolio.ProjectService, experience *portfolio.ExperienceService, about *portfolio.AboutService, contacts *portfolio.ContactService, overview *portfolio.Overview) *Admin {
	return &Admin{
		projects:   projects,
		experience: experience,
		about:      about,
		contacts:   contacts,
		overview:   overview,
	}
}

// Dashboard returns the number of rows in each collection.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	p := newPrompter(r)
	counts, err := a.overview.Counts(r.Context())
	if err != nil {
		fail(w, p, err)
		return
	}
	respond(w, p, http.StatusOK, counts)
}

// --- Projects ---

// formError is a malformed request body.
type formError struct {
	status int
	msg    string
}

func (e *formError) Error() string { return e.msg }

// readProjectForm parses a multipart or urlencoded project form. The image
// is taken from the "image" file field. The returned cleanup closes it.
func readProjectForm(w http.ResponseWriter, r *http.Request) (portfolio.ProjectInput, func(), error) {
	var in portfolio.ProjectInput
	noop := func() {}

	up, cleanup, err := readUpload(w, r)
	if err != nil {
		return in, noop, err
	}

	in.Title = r.FormValue("title")
	in.Description = r.FormValue("description")
	in.Link = r.FormValue("link")
	in.Image = up

	if msg := validateProject(in.Title, in.Description, in.Link); msg != "" {
		cleanup()
		return in, noop, &formError{status: http.StatusBadRequest, msg: msg}
	}
	return in, cleanup, nil
}

// readUpload limits the body and extracts the optional "image" file. A
// request that is not multipart has no upload.
func readUpload(w http.ResponseWriter, r *http.Request) (*portfolio.Upload, func(), error) {
	noop := func() {}
	r.Body = http.MaxBytesReader(w, r.Body, assets.MaxUploadSize+1<<20)

	if err := r.ParseMultipartForm(assets.MaxUploadSize); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			if err := r.ParseForm(); err != nil {
				return nil, noop, &formError{status: http.StatusBadRequest, msg: "Invalid form data."}
			}
			return nil, noop, nil
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, noop, &formError{status: http.StatusRequestEntityTooLarge, msg: "File too large. Maximum size is 20 MB."}
		}
		return nil, noop, &formError{status: http.StatusBadRequest, msg: "Invalid form data."}
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, &formError{status: http.StatusBadRequest, msg: "Invalid image upload."}
	}
	return &portfolio.Upload{Name: header.Filename, Body: file}, func() { file.Close() }, nil
}

// writeFormError answers a formError, or falls through to fail.
func writeFormError(w http.ResponseWriter, p *httpPrompter, err error) {
	var ferr *formError
	if errors.As(err, &ferr) {
		writeError(w, ferr.status, ferr.msg)
		return
	}
	fail(w, p, err)
}

// ProjectsList returns all projects, newest first.
func (a *Admin) ProjectsList(w http.ResponseWriter, r *http.Request) {
	p := newPrompter(r)
	projects, err := a.projects.List(r.Context())
	if err != nil {
		fail(w, p, err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	respond(w, p, http.StatusOK, projects)
}

// ProjectCreate adds a project. An image that cannot be stored is reported
// as an error notice; the project is still created.
func (a *Admin) ProjectCreate(w http.ResponseWriter, r *http.Request) {
	in, cleanup, err := readProjectForm(w, r)
	p := newPrompter(r)
	if err != nil {
		writeFormError(w, p, err)
		return
	}
	defer cleanup()

	project, err := a.projects.Create(r.Context(), p, in)
	if err != nil {
		fail(w, p, err)
		return
	}
	respond(w, p, http.StatusCreated, project)
}

// ProjectUpdate edits a project. Without a new image the stored one is kept.
func (a *Admin) ProjectUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid project ID.")
		return
	}

	in, cleanup, err := readProjectForm(w, r)
	p := newPrompter(r)
	if err != nil {
		writeFormError(w, p, err)
		return
	}
	defer cleanup()

	project, err := a.projects.Update(r.Context(), p, id, in)
	if err != nil {
		fail(w, p, err)
		return
	}
	respond(w, p, http.StatusOK, project)
}

// ProjectDelete removes a project after confirmation.
func (a *Admin) ProjectDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid project ID.")
		return
	}

	p := newPrompter(r)
	if err := a.projects.Delete(r.Context(), p, id); err != nil {
		fail(w, p, err)
		return
	}
	respond(w, p, http.StatusOK, nil)
}

// ProjectPreview renders the uploaded image at preview size as PNG.
func (a *Admin) ProjectPreview(w http.ResponseWriter, r *http.Request) {
	up, cleanup, err := readUpload(w, r)
	p := newPrompter(r)
	if err != nil {
		writeFormError(w, p, err)
		return
	}
	defer cleanup()

	data, err := a.projects.Preview(up)
	if err != nil {
		fail(w, p, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// --- Experience ---

// categoryParam returns the decoded {category} URL parameter.
func categoryParam(r *http.Request) string {
	raw := chi.URLParam(r, "category")
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

// ExperienceCategories lists the categories. When there are none, the
// default category is created with a sample entry.
func (a *Admin) ExperienceCategories(w http.ResponseWriter, r *http.Request) {
	p := newPrompter(r)
	cats, err := a.experience.ListCategories(r.Context())
	if err != nil {
		fail(w, p, err)
		return
	}
	respond(w, p, http.StatusOK, categoriesResponse{Categories: nonNil(cats)})
}

// ExperienceAddCategory creates a category with a placeholder entry and
// returns the updated category list.
func (a *Admin) ExperienceAddCategory(w http.ResponseWriter, r *http.Request) {
	p := newPrompter(r)
	name := r.FormValue("name")
	if msg := validateName(name); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if err := a.experience.AddCategory(r.Context(), p, name); err != nil {
		fail(w, p, err)
		return
	}

	cats, err := a.experience.ListCategories(r.Context())
	if err != nil {
		fail(w, p, err)
		return
	}
	respond(w, p, http.StatusCreated, categoriesResponse{Categories: nonNil(cats)})
}

// ExperienceDeleteCategory removes a category and every entry in it.
func (a *Admin) ExperienceDeleteCategory(w http.ResponseWriter, r *http.Request) {
	p := newPrompter(r)
	if err := a.experience.DeleteCategory(r.Context(), p, categoryParam(r)); err != nil {
		fail(w, p, err)
		return
	}
	respond(w, p, http.StatusOK, nil)
}

// ExperienceEntries lists the entries of one category.
func (a *Admin) ExperienceEntries(w http.ResponseWriter, r *http.Request) {
	p := newPrompter(r)
	entries, err := a.experience.ListByCategory(r.Context(), categoryParam(r))
	if err != nil {
		fail(w, p, err)
		return
	}
	if entries == nil {
		entries = []models.Experience{}
	}
	respond(w, p, http.StatusOK, entries)
}

// ExperienceAddEntry adds an entry to a category.
func (a *Admin) ExperienceAddEntry(w http.ResponseWriter, r *http.Request) {
	p := newPrompter(r)
	name := r.FormValue("name")
	if msg := validateName(name); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	entry, err := a.experience.AddExperience(r.Context(), p, categoryParam(r), name)
	if err != nil {
		fail(w, p, err)
		return
	}
	respond(w, p, http.StatusCreated, entry)
}

// ExperienceUpdateEntry renames an entry.
func (a *Admin) ExperienceUpdateEntry(w http.ResponseWriter, r *http.Request) {
	p := newPrompter(r)
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid experience ID.")
		return
	}
	name := r.FormValue("name")
	if msg := validateName(name); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	entry, err := a.experience.UpdateExperience(r.Context(), p, id, name)
	if err != nil {
		fail(w, p, err)
		return
	}
	respond(w, p, http.StatusOK, entry)
}

// ExperienceDeleteEntry removes an entry after confirmation.
func (a *Admin) ExperienceDeleteEntry(w http.ResponseWriter, r *http.Request) {
	p := newPrompter(r)
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid experience ID.")
		return
	}

	if err := a.experience.DeleteExperience(r.Context(), p, id); err != nil {
		fail(w, p, err)
		return
	}
	respond(w, p, http.StatusOK, nil)
}

// --- About ---

type aboutResponse struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}

// AboutGet loads the About Me text, creating the placeholder when missing.
func (a *Admin) AboutGet(w http.ResponseWriter, r *http.Request) {
	p := newPrompter(r)
	content, err := a.about.Load(r.Context())
	if err != nil {
		fail(w, p, err)
		return
	}
	respond(w, p, http.StatusOK, aboutResponse{ID: a.about.CanonicalID(), Content: content})
}

// AboutSave replaces the About Me text.
func (a *Admin) AboutSave(w http.ResponseWriter, r *http.Request) {
	p := newPrompter(r)
	content := r.FormValue("content")
	if msg := validateAbout(content); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if err := a.about.Save(r.Context(), p, content); err != nil {
		fail(w, p, err)
		return
	}
	respond(w, p, http.StatusOK, aboutResponse{ID: a.about.CanonicalID(), Content: content})
}

// AboutPreview renders the stored About Me Markdown to HTML.
func (a *Admin) AboutPreview(w http.ResponseWriter, r *http.Request) {
	p := newPrompter(r)
	html, err := a.about.PreviewHTML(r.Context())
	if err != nil {
		fail(w, p, err)
		return
	}
	respond(w, p, http.StatusOK, map[string]string{"html": html})
}

// --- Contacts ---

// ContactsList returns the active and soft-deleted contacts.
func (a *Admin) ContactsList(w http.ResponseWriter, r *http.Request) {
	p := newPrompter(r)
	contacts, err := a.contacts.List(r.Context())
	if err != nil {
		fail(w, p, err)
		return
	}
	if contacts.Active == nil {
		contacts.Active = []models.Contact{}
	}
	if contacts.Deleted == nil {
		contacts.Deleted = []models.Contact{}
	}
	respond(w, p, http.StatusOK, contacts)
}

// ContactPlatforms returns the suggested platform names.
func (a *Admin) ContactPlatforms(w http.ResponseWriter, r *http.Request) {
	respond(w, nil, http.StatusOK, models.SuggestedPlatforms)
}

// ContactCreate adds an active contact.
func (a *Admin) ContactCreate(w http.ResponseWriter, r *http.Request) {
	p := newPrompter(r)
	platform, link := r.FormValue("platform"), r.FormValue("link")
	if msg := validateContact(platform, link); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	contact, err := a.contacts.Create(r.Context(), p, platform, link)
	if err != nil {
		fail(w, p, err)
		return
	}
	respond(w, p, http.StatusCreated, contact)
}

// ContactUpdate edits an active contact.
func (a *Admin) ContactUpdate(w http.ResponseWriter, r *http.Request) {
	p := newPrompter(r)
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid contact ID.")
		return
	}
	platform, link := r.FormValue("platform"), r.FormValue("link")
	if msg := validateContact(platform, link); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if err := a.contacts.Update(r.Context(), p, id, platform, link); err != nil {
		fail(w, p, err)
		return
	}
	respond(w, p, http.StatusOK, nil)
}

// ContactSoftDelete moves an active contact to the deleted partition.
func (a *Admin) ContactSoftDelete(w http.ResponseWriter, r *http.Request) {
	a.contactAction(w, r, a.contacts.SoftDelete)
}

// ContactRestore moves a deleted contact back to the active partition.
func (a *Admin) ContactRestore(w http.ResponseWriter, r *http.Request) {
	a.contactAction(w, r, a.contacts.Restore)
}

// ContactHardDelete removes a contact in either state.
func (a *Admin) ContactHardDelete(w http.ResponseWriter, r *http.Request) {
	a.contactAction(w, r, a.contacts.HardDelete)
}

func (a *Admin) contactAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, p portfolio.Prompter, id int64) error) {
	p := newPrompter(r)
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid contact ID.")
		return
	}

	if err := action(r.Context(), p, id); err != nil {
		fail(w, p, err)
		return
	}
	respond(w, p, http.StatusOK, nil)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
