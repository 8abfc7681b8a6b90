package shell

import (
	"bytes"
	"context"
	"database/sql"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pressly/goose/v3"

	"folioadmin/internal/assets"
	"folioadmin/internal/database"
	"folioadmin/internal/models"
	"folioadmin/internal/portfolio"
	"folioadmin/internal/store"
)

// testShell wires a Shell over an in-memory SQLite database holding one
// account, admin / s3cret. The script is the whole terminal input.
func testShell(t *testing.T, script string) (*Shell, *bytes.Buffer, *sql.DB) {
	t.Helper()

	db, err := database.Connect(database.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db, database.DriverSQLite); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)
	t.Cleanup(func() { db.Close() })

	users := store.NewUserStore(db)
	if _, err := users.Create(context.Background(), "admin", "s3cret"); err != nil {
		t.Fatalf("create user: %v", err)
	}

	projects := store.NewProjectStore(db)
	skills := store.NewExperienceStore(db)
	about := store.NewAboutStore(db)
	contacts := store.NewContactStore(db)
	sink := assets.NewLocalSink(t.TempDir(), "http://localhost/uploads/projects/")

	svc := Services{
		Auth:       portfolio.NewAuthenticator(users),
		Projects:   portfolio.NewProjectService(projects, assets.New(sink)),
		Experience: portfolio.NewExperienceService(skills),
		About:      portfolio.NewAboutService(about),
		Contacts:   portfolio.NewContactService(contacts),
		Overview:   portfolio.NewOverview(projects, skills, about, contacts),
	}

	var out bytes.Buffer
	return New(strings.NewReader(script), &out, svc), &out, db
}

func script(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestLoginRetriesUntilAccepted(t *testing.T) {
	sh, out, _ := testShell(t, script("admin", "wrong", "", "", "admin", "s3cret", "q"))

	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"[error] " + portfolio.MsgInvalidCredentials,
		"[warning] Please enter both username and password.",
		"Welcome, admin.",
		"Dashboard: 0 projects",
		"Goodbye.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestInputEndsDuringLogin(t *testing.T) {
	sh, out, _ := testShell(t, "admin\n")

	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.Contains(out.String(), "Welcome") {
		t.Error("should not sign in without a password")
	}
}

func TestProjectsView(t *testing.T) {
	sh, out, db := testShell(t, script(
		"admin", "s3cret", "1",
		"add", "", "", "", "",
		"add", "Site", "My site", "https://example.com", "",
		"edit 1", "", "Updated", "-", "",
		"delete 1", "n",
		"delete 1", "y",
		"back", "q",
	))

	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"[warning] Title and Description cannot be empty.",
		"[info] Project added successfully!",
		"[info] Project updated successfully!",
		"Cancelled.",
		portfolio.ConfirmDeleteProject,
		"[info] Project deleted successfully!",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}

	projects, err := store.NewProjectStore(db).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("projects: got %d, want 0", len(projects))
	}
}

func TestProjectEditKeepsFields(t *testing.T) {
	sh, _, db := testShell(t, script(
		"admin", "s3cret", "1",
		"add", "Site", "My site", "https://example.com", "",
		"edit 1", "", "Updated", "-", "",
		"back", "q",
	))
	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	projects, _ := store.NewProjectStore(db).List(context.Background())
	if len(projects) != 1 {
		t.Fatalf("projects: got %d, want 1", len(projects))
	}
	p := projects[0]
	if p.Title != "Site" || p.Description != "Updated" {
		t.Errorf("got %q / %q", p.Title, p.Description)
	}
	if p.Link != nil {
		t.Errorf("link should be cleared, got %q", *p.Link)
	}
}

func TestProjectWithImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cover.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 6))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	sh, out, db := testShell(t, script(
		"admin", "s3cret", "1",
		"add", "Shots", "Photos", "", path,
		"add", "Doc", "Text", "", "notes.txt",
		"back", "q",
	))
	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !strings.Contains(out.String(), "[warning] Only jpg, jpeg, png and gif images are supported.") {
		t.Error("unsupported extension should be reported")
	}

	projects, _ := store.NewProjectStore(db).List(context.Background())
	if len(projects) != 2 {
		t.Fatalf("projects: got %d, want 2", len(projects))
	}
	for _, p := range projects {
		switch p.Title {
		case "Shots":
			if !p.HasImage() || !strings.HasSuffix(*p.ImageURL, ".png") {
				t.Errorf("Shots image: got %v", p.ImageURL)
			}
		case "Doc":
			if p.HasImage() {
				t.Error("Doc should have no image")
			}
		}
	}
}

func TestExperienceView(t *testing.T) {
	sh, out, db := testShell(t, script(
		"admin", "s3cret", "2",
		"new Languages",
		"add Go",
		"sel 1",
		"rename Golang",
		"tab 1",
		"drop", "y",
		"back", "q",
	))
	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "1:[General]") {
		t.Error("default category should be bootstrapped and active")
	}
	if !strings.Contains(got, "[info] Category 'General' and all its entries deleted successfully!") {
		t.Error("category deletion not reported")
	}

	skills := store.NewExperienceStore(db)
	categories, err := skills.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(categories) != 1 || categories[0] != "Languages" {
		t.Fatalf("categories: got %v", categories)
	}

	rows, _ := skills.ListByCategory(context.Background(), "Languages")
	var names []string
	for _, r := range rows {
		names = append(names, r.Name)
	}
	if strings.Join(names, ",") != "Golang,"+portfolio.PlaceholderEntry {
		t.Errorf("entries: got %v", names)
	}
}

func TestExperienceRequiresSelection(t *testing.T) {
	sh, out, _ := testShell(t, script("admin", "s3cret", "2", "rename X", "del", "back", "q"))
	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.Count(out.String(), "[warning]") != 2 {
		t.Errorf("want two warnings, got:\n%s", out.String())
	}
}

func TestAboutView(t *testing.T) {
	sh, out, db := testShell(t, script(
		"admin", "s3cret", "3",
		"edit", "Hello **world**", ".",
		"preview",
		"back", "q",
	))
	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, models.AboutPlaceholder) {
		t.Error("placeholder should be shown on first load")
	}
	if !strings.Contains(got, "<strong>world</strong>") {
		t.Errorf("preview not rendered:\n%s", got)
	}

	a, _ := store.NewAboutStore(db).First(context.Background())
	if a == nil || a.Content != "Hello **world**" {
		t.Errorf("about: got %+v", a)
	}
}

func TestContactsLifecycle(t *testing.T) {
	sh, out, db := testShell(t, script(
		"admin", "s3cret", "4",
		"soft",
		"add", "Email", "me@example.com",
		"sel a1", "soft", "y",
		"sel d1", "restore", "y",
		"sel a1", "edit", "", "you@example.com",
		"sel a1", "purge", "y",
		"back", "q",
	))
	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"[warning] No active contact selected for soft deletion.",
		"Suggested platforms: Email, Phone",
		"[info] Contact soft deleted successfully!",
		"[info] Contact restored successfully!",
		"[info] Contact updated successfully!",
		portfolio.ConfirmHardDelete(models.ContactActive),
		"[info] Contact permanently deleted successfully!",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}

	contacts := store.NewContactStore(db)
	for _, state := range []models.ContactState{models.ContactActive, models.ContactDeleted} {
		list, _ := contacts.List(context.Background(), state)
		if len(list) != 0 {
			t.Errorf("%s contacts: got %d, want 0", state, len(list))
		}
	}
}

func TestPick(t *testing.T) {
	items := []string{"a", "b"}
	if v, ok := pick(items, "2"); !ok || *v != "b" {
		t.Errorf("pick 2: got %v %v", v, ok)
	}
	for _, arg := range []string{"0", "3", "x", ""} {
		if _, ok := pick(items, arg); ok {
			t.Errorf("pick %q should fail", arg)
		}
	}
}

func TestCommand(t *testing.T) {
	cmd, arg := command("  NEW  Cloud Tools ")
	if cmd != "new" || arg != "Cloud Tools" {
		t.Errorf("got %q %q", cmd, arg)
	}
}
