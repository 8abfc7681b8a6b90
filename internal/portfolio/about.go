package portfolio

import (
	"context"
	"strings"
	"sync"

	"folioadmin/internal/markdown"
	"folioadmin/internal/models"
	"folioadmin/internal/store"
)

// AboutService manages the singleton About text. The id of the canonical
// row is remembered for the lifetime of the service.
type AboutService struct {
	about *store.AboutStore

	mu sync.Mutex
	id int64 // 0 until a row is loaded or created
}

// NewAboutService creates an AboutService.
func NewAboutService(about *store.AboutStore) *AboutService {
	return &AboutService{about: about}
}

// Load returns the About text, inserting the placeholder when the table is
// empty.
func (s *AboutService) Load(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.about.First(ctx)
	if err != nil {
		return "", failed("loading about content", err)
	}
	if a == nil {
		a, err = s.about.Create(ctx, models.AboutPlaceholder)
		if err != nil {
			return "", failed("loading about content", err)
		}
	}
	s.id = a.ID
	return a.Content, nil
}

// Save stores content as entered in the canonical row, or inserts a row and
// adopts its id when none is known yet.
func (s *AboutService) Save(ctx context.Context, p Prompter, content string) error {
	if strings.TrimSpace(content) == "" {
		return invalid("About Me content cannot be empty.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.id > 0 {
		if err := s.about.Update(ctx, s.id, content); err != nil {
			return failed("saving about content", err)
		}
	} else {
		a, err := s.about.Create(ctx, content)
		if err != nil {
			return failed("saving about content", err)
		}
		s.id = a.ID
	}
	p.Notify(NoticeInfo, "About Me content saved successfully!")
	return nil
}

// CanonicalID returns the id of the row Save writes to, or 0.
func (s *AboutService) CanonicalID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// PreviewHTML renders the stored About text as HTML.
func (s *AboutService) PreviewHTML(ctx context.Context) (string, error) {
	content, err := s.Load(ctx)
	if err != nil {
		return "", err
	}
	html, err := markdown.ToHTML(content)
	if err != nil {
		return "", failed("rendering about content", err)
	}
	return html, nil
}
