// Package router sets up all HTTP routes and middleware chains for the
// portfolio admin server. Routes are split into the public snapshot, the
// session endpoints and the authenticated admin API.
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"folioadmin/internal/handlers"
	"folioadmin/internal/middleware"
	"folioadmin/internal/session"
)

// ImagePath is the URL prefix locally stored project images are served from.
const ImagePath = "/uploads/projects/"

// Options tunes the router.
type Options struct {
	// CORSOrigins lists origins allowed to call the API with credentials.
	// Empty disables CORS handling.
	CORSOrigins []string

	// SecureCookies sets the Secure flag on the CSRF cookie.
	SecureCookies bool

	// ImageDir is served under ImagePath when non-empty.
	ImageDir string

	// OnWrite runs after every successful admin write.
	OnWrite func(ctx context.Context)

	// LoginLimit caps login attempts per client IP per minute. Zero uses 10.
	LoginLimit int
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", middleware.CSRFHeaderName},
			AllowCredentials: true,
			MaxAge:           300,
		}).Handler)
	}
	r.Use(middleware.LoadSession(sessionStore))

	// Health check: no auth, no CSRF.
	r.Get("/health", healthHandler)

	r.Get("/public/portfolio", public.Portfolio)

	if opts.ImageDir != "" {
		r.Handle(ImagePath+"*", http.StripPrefix(ImagePath, http.FileServer(http.Dir(opts.ImageDir))))
	}

	limit := opts.LoginLimit
	if limit == 0 {
		limit = 10
	}
	loginLimiter := middleware.NewRateLimiter(limit, time.Minute)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.NoStore)
		r.Use(middleware.NewCSRF(opts.SecureCookies))

		// Session endpoints, reachable without a session.
		r.With(loginLimiter.Middleware).Post("/login", auth.Login)
		r.Post("/logout", auth.Logout)

		// Authenticated admin API.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			if opts.OnWrite != nil {
				r.Use(middleware.AfterWrite(opts.OnWrite))
			}

			r.Get("/me", auth.Me)
			r.Get("/dashboard", admin.Dashboard)

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", admin.ProjectsList)
				r.Post("/", admin.ProjectCreate)
				r.Post("/preview", admin.ProjectPreview)
				r.Put("/{id}", admin.ProjectUpdate)
				r.Delete("/{id}", admin.ProjectDelete)
			})

			r.Route("/experience", func(r chi.Router) {
				r.Get("/categories", admin.ExperienceCategories)
				r.Post("/categories", admin.ExperienceAddCategory)
				r.Delete("/categories/{category}", admin.ExperienceDeleteCategory)
				r.Get("/categories/{category}/entries", admin.ExperienceEntries)
				r.Post("/categories/{category}/entries", admin.ExperienceAddEntry)
				r.Put("/entries/{id}", admin.ExperienceUpdateEntry)
				r.Delete("/entries/{id}", admin.ExperienceDeleteEntry)
			})

			r.Route("/about", func(r chi.Router) {
				r.Get("/", admin.AboutGet)
				r.Put("/", admin.AboutSave)
				r.Get("/preview", admin.AboutPreview)
			})

			r.Route("/contacts", func(r chi.Router) {
				r.Get("/", admin.ContactsList)
				r.Post("/", admin.ContactCreate)
				r.Get("/platforms", admin.ContactPlatforms)
				r.Put("/{id}", admin.ContactUpdate)
				r.Delete("/{id}", admin.ContactHardDelete)
				r.Post("/{id}/soft-delete", admin.ContactSoftDelete)
				r.Post("/{id}/restore", admin.ContactRestore)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
