package portfolio

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/pressly/goose/v3"

	"folioadmin/internal/assets"
	"folioadmin/internal/database"
	"folioadmin/internal/store"
)

// testDB opens a fresh in-memory SQLite database with the schema applied.
func testDB(t *testing.T) *sql.DB {
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
	return db
}

// notice is one message passed to a recordingPrompter.
type notice struct {
	kind    NoticeKind
	message string
}

// recordingPrompter answers every confirmation with answer and records
// what it was asked and told.
type recordingPrompter struct {
	answer    bool
	questions []string
	notices   []notice
}

func yes() *recordingPrompter { return &recordingPrompter{answer: true} }
func no() *recordingPrompter { return &recordingPrompter{answer: false} }

func (p *recordingPrompter) Confirm(q string) bool {
	p.questions = append(p.questions, q)
	return p.answer
}

func (p *recordingPrompter) Notify(kind NoticeKind, msg string) {
	p.notices = append(p.notices, notice{kind, msg})
}

func (p *recordingPrompter) last() notice {
	if len(p.notices) == 0 {
		return notice{}
	}
	return p.notices[len(p.notices)-1]
}

func (p *recordingPrompter) hasKind(kind NoticeKind) bool {
	for _, n := range p.notices {
		if n.kind == kind {
			return true
		}
	}
	return false
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 6))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func projectService(t *testing.T, db *sql.DB) (*ProjectService, string) {
	t.Helper()
	dir := t.TempDir()
	images := assets.New(assets.NewLocalSink(dir, "http://localhost/uploads/"))
	return NewProjectService(store.NewProjectStore(db), images), dir
}

func wantValidation(t *testing.T, err error, msg string) {
	t.Helper()
	var v *ValidationError
	if !errors.As(err, &v) {
		t.Fatalf("err = %v, want ValidationError %q", err, msg)
	}
	if msg != "" && v.Message != msg {
		t.Errorf("validation message = %q, want %q", v.Message, msg)
	}
}

func TestOperationError(t *testing.T) {
	cause := errors.New("connection refused")
	err := failed("adding project", cause)
	if err.Error() != "Error adding project: connection refused" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("OperationError must unwrap to its cause")
	}
	if IsValidation(err) {
		t.Error("store failures are not validation errors")
	}
}

func TestSilentPrompter(t *testing.T) {
	var p Prompter = Silent{}
	if !p.Confirm("anything?") {
		t.Error("Silent must confirm")
	}
	p.Notify(NoticeError, "ignored")
	if err := confirm(p, "q"); err != nil {
		t.Errorf("confirm: %v", err)
	}
	if err := confirm(no(), "q"); !errors.Is(err, ErrNotConfirmed) {
		t.Errorf("confirm(no) = %v, want ErrNotConfirmed", err)
	}
}

func TestAuthenticate(t *testing.T) {
	db := testDB(t)
	users := store.NewUserStore(db)
	auth := NewAuthenticator(users)
	ctx := context.Background()

	if _, err := users.Create(ctx, "owner", "s3cret"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := db.Exec(
		"INSERT INTO users (username, password_hash) VALUES ($1, $2)",
		"admin", store.HashSHA256("admin123"),
	); err != nil {
		t.Fatalf("insert legacy admin: %v", err)
	}

	tests := []struct {
		name, user, pass string
		want             bool
	}{
		{"bcrypt ok", "owner", "s3cret", true},
		{"bcrypt wrong", "owner", "nope", false},
		{"legacy ok", "admin", "admin123", true},
		{"unknown user", "ghost", "admin123", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, ok := auth.Authenticate(ctx, tt.user, tt.pass)
			if ok != tt.want {
				t.Fatalf("Authenticate(%q) = %v, want %v", tt.user, ok, tt.want)
			}
			if ok && u.Username != tt.user {
				t.Errorf("user = %q", u.Username)
			}
			if !ok && u != nil {
				t.Error("failed authentication must not return a user")
			}
		})
	}

	// Signing in leaves the stored legacy hash untouched.
	admin, err := users.FindByUsername(ctx, "admin")
	if err != nil || admin == nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if admin.PasswordHash != store.HashSHA256("admin123") {
		t.Errorf("password_hash changed after sign-in: %q", admin.PasswordHash)
	}
}

func TestAuthenticateStoreError(t *testing.T) {
	db := testDB(t)
	auth := NewAuthenticator(store.NewUserStore(db))
	db.Close()

	if _, ok := auth.Authenticate(context.Background(), "admin", "admin123"); ok {
		t.Error("a store error must yield false")
	}
}
