package generation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lucasrivero/brandforge-backend/pkg/config"
	"github.com/lucasrivero/brandforge-backend/pkg/enums"
	pkgerrors "github.com/lucasrivero/brandforge-backend/pkg/errors"
	"github.com/lucasrivero/brandforge-backend/pkg/firestore"
	"github.com/lucasrivero/brandforge-backend/pkg/models"
)

type stubBrandLookup struct {
	brands map[string]*models.Brand
}

func (s *stubBrandLookup) FindByID(_ context.Context, id string) (*models.Brand, error) {
	brand, ok := s.brands[id]
	if !ok {
		return nil, firestore.ErrNotFound
	}
	return brand, nil
}

type stubThemeStore struct {
	themes        map[string]*models.Theme
	updatedFields map[string]any
	updateErr     error
}

func (s *stubThemeStore) FindByID(_ context.Context, id string) (*models.Theme, error) {
	theme, ok := s.themes[id]
	if !ok {
		return nil, firestore.ErrNotFound
	}
	copied := *theme
	return &copied, nil
}

func (s *stubThemeStore) Update(_ context.Context, id string, fields map[string]any) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updatedFields = fields
	return nil
}

// captureSink records events; failAfter > 0 makes Emit fail once that many
// events have been accepted.
type captureSink struct {
	events    []Event
	failAfter int
}

func (s *captureSink) Emit(_ context.Context, event Event) error {
	if s.failAfter > 0 && len(s.events) >= s.failAfter {
		return errors.New("client disconnected")
	}
	s.events = append(s.events, event)
	return nil
}

type pipelineFixture struct {
	svc      Service
	brands   *stubBrandLookup
	themes   *stubThemeStore
	text     *stubCompleter
	captions *stubTextGen
	images   *stubImageProvider
	uploads  *stubUploader
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()

	f := &pipelineFixture{
		brands: &stubBrandLookup{brands: map[string]*models.Brand{
			"b1": {ID: "b1", UserID: "owner", Name: "Glow Co"},
		}},
		themes: &stubThemeStore{themes: map[string]*models.Theme{
			"t1": {
				ID: "t1", BrandID: "b1", UserID: "owner",
				Name: "Summer Vibes", PostsCount: 3,
				Mood: "Playful", Colors: []string{"#111", "#222", "#333", "#444"},
				Imagery: "Lifestyle", Tone: "Casual", CaptionLength: "short",
				UseEmojis: true, UseHashtags: true,
			},
		}},
		// Providers fail by default; individual tests override.
		text:     &stubCompleter{err: errors.New("unavailable")},
		captions: &stubTextGen{err: errors.New("unavailable")},
		images:   &stubImageProvider{err: errors.New("unavailable")},
		uploads:  &stubUploader{url: "https://storage.googleapis.com/bucket/obj.png"},
	}

	svc, err := NewService(f.brands, f.themes, f.text, f.captions, f.images, f.uploads, config.GenerationConfig{}, nil, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	f.svc = svc
	return f
}

func TestAutoGenerateThemesSurvivesTotalProviderOutage(t *testing.T) {
	f := newPipelineFixture(t)
	sink := &captureSink{}

	f.svc.AutoGenerateThemes(context.Background(), "owner", "b1", sink)

	if len(sink.events) != 6 {
		t.Fatalf("expected 5 options + complete, got %d events", len(sink.events))
	}
	for i, event := range sink.events[:5] {
		if event.Type != EventThemeOption {
			t.Fatalf("event %d: expected theme_option, got %s", i, event.Type)
		}
		if event.Index != i+1 || event.Total != 5 {
			t.Fatalf("event %d: unexpected index/total %d/%d", i, event.Index, event.Total)
		}
		if event.Theme == nil || !strings.HasPrefix(event.Theme.ImageURL, "https://images.unsplash.com/photo-") {
			t.Fatalf("event %d: expected placeholder image, got %+v", i, event.Theme)
		}
		if len(event.Theme.Colors) != 4 {
			t.Fatalf("event %d: expected 4 colors, got %v", i, event.Theme.Colors)
		}
	}

	terminal := sink.events[5]
	if terminal.Type != EventComplete || terminal.TotalOptions != 5 {
		t.Fatalf("unexpected terminal event: %+v", terminal)
	}
}

func TestAutoGenerateThemesMissingBrand(t *testing.T) {
	f := newPipelineFixture(t)
	sink := &captureSink{}

	f.svc.AutoGenerateThemes(context.Background(), "owner", "nope", sink)

	if len(sink.events) != 1 {
		t.Fatalf("expected a single error event, got %d", len(sink.events))
	}
	if sink.events[0].Type != EventError || sink.events[0].Message != "brand not found" {
		t.Fatalf("unexpected event: %+v", sink.events[0])
	}
}

func TestAutoGenerateThemesForeignBrand(t *testing.T) {
	f := newPipelineFixture(t)
	sink := &captureSink{}

	f.svc.AutoGenerateThemes(context.Background(), "intruder", "b1", sink)

	if len(sink.events) != 1 || sink.events[0].Type != EventError || sink.events[0].Message != "not authorized" {
		t.Fatalf("expected a single not-authorized error, got %+v", sink.events)
	}
}

func TestAutoGenerateThemesStopsWhenConsumerDisconnects(t *testing.T) {
	f := newPipelineFixture(t)
	sink := &captureSink{failAfter: 1}

	f.svc.AutoGenerateThemes(context.Background(), "owner", "b1", sink)

	if len(sink.events) != 1 {
		t.Fatalf("expected production to stop after the failed emit, got %d events", len(sink.events))
	}
	// The second unit's image call must never happen.
	if f.images.calls != 2 {
		t.Fatalf("expected 2 image attempts (unit emitted + unit in flight), got %d", f.images.calls)
	}
	for _, event := range sink.events {
		if event.Type == EventComplete || event.Type == EventError {
			t.Fatalf("expected no terminal event after disconnect, got %+v", event)
		}
	}
}

func TestRegenerateImagesEchoesParameters(t *testing.T) {
	f := newPipelineFixture(t)
	sink := &captureSink{}

	f.svc.RegenerateImages(context.Background(), "owner", RegenerateInput{
		BrandID:       "b1",
		Name:          "Summer Vibes",
		Mood:          "Bold",
		Colors:        []string{"#111", "#222", "#333", "#444"},
		Imagery:       "Flat lay",
		Tone:          "Casual",
		CaptionLength: "short",
		UseEmojis:     true,
		UseHashtags:   false,
	}, sink)

	if len(sink.events) != 6 {
		t.Fatalf("expected 5 options + complete, got %d events", len(sink.events))
	}
	for i, event := range sink.events[:5] {
		if event.Theme == nil || event.Theme.Mood != "Bold" || event.Theme.Name != "Summer Vibes" {
			t.Fatalf("event %d: expected caller parameters echoed, got %+v", i, event.Theme)
		}
	}
	if sink.events[5].TotalOptions != 5 {
		t.Fatalf("unexpected terminal event: %+v", sink.events[5])
	}
}

func TestStreamPostsPersistsBatchAndCompletes(t *testing.T) {
	f := newPipelineFixture(t)
	sink := &captureSink{}

	f.svc.StreamPosts(context.Background(), "owner", "t1", sink)

	if len(sink.events) != 4 {
		t.Fatalf("expected 3 posts + complete, got %d events", len(sink.events))
	}

	wantTypes := []string{"Functional", "Brand resonance", "Emotional"}
	for i, event := range sink.events[:3] {
		if event.Type != EventPost || event.Index != i+1 || event.Total != 3 {
			t.Fatalf("event %d: unexpected envelope %+v", i, event)
		}
		post := event.Post
		if post == nil {
			t.Fatalf("event %d: missing post", i)
		}
		if post.ThemeID != "t1" || post.ID == "" {
			t.Fatalf("event %d: unexpected identity %+v", i, post)
		}
		if post.PostType != wantTypes[i] {
			t.Fatalf("event %d: expected post type %q, got %q", i, wantTypes[i], post.PostType)
		}
		if post.Status != enums.PostStatusDraft || post.Selected || post.ScheduledTime != nil {
			t.Fatalf("event %d: expected fresh draft, got %+v", i, post)
		}
		if post.Caption != "Check out our latest Summer Vibes! ✨" {
			t.Fatalf("event %d: expected fallback caption, got %q", i, post.Caption)
		}
		if !strings.HasPrefix(post.ImageURL, "https://images.unsplash.com/photo-") {
			t.Fatalf("event %d: expected placeholder image, got %q", i, post.ImageURL)
		}
	}

	terminal := sink.events[3]
	if terminal.Type != EventComplete || terminal.TotalPosts != 3 {
		t.Fatalf("unexpected terminal event: %+v", terminal)
	}

	if f.themes.updatedFields == nil {
		t.Fatal("expected posts to be persisted")
	}
	saved, ok := f.themes.updatedFields["posts"].([]models.Post)
	if !ok || len(saved) != 3 {
		t.Fatalf("expected 3 saved posts, got %v", f.themes.updatedFields["posts"])
	}
	if _, ok := f.themes.updatedFields["updated_at"]; !ok {
		t.Fatal("expected updated_at to be refreshed")
	}
}

func TestStreamPostsEmitsErrorWhenSaveFails(t *testing.T) {
	f := newPipelineFixture(t)
	f.themes.updateErr = errors.New("firestore down")
	sink := &captureSink{}

	f.svc.StreamPosts(context.Background(), "owner", "t1", sink)

	terminal := sink.events[len(sink.events)-1]
	if terminal.Type != EventError {
		t.Fatalf("expected error terminal event, got %+v", terminal)
	}
}

func TestStreamPostsMissingTheme(t *testing.T) {
	f := newPipelineFixture(t)
	sink := &captureSink{}

	f.svc.StreamPosts(context.Background(), "owner", "nope", sink)

	if len(sink.events) != 1 || sink.events[0].Type != EventError || sink.events[0].Message != "theme not found" {
		t.Fatalf("expected theme-not-found error, got %+v", sink.events)
	}
}

func TestGeneratePostsAppliesDefaultsAndReturnsTheme(t *testing.T) {
	f := newPipelineFixture(t)
	f.themes.themes["t2"] = &models.Theme{ID: "t2", BrandID: "b1", UserID: "owner"}

	theme, err := f.svc.GeneratePosts(context.Background(), "owner", "t2")
	if err != nil {
		t.Fatalf("generate posts: %v", err)
	}
	if len(theme.Posts) != 5 {
		t.Fatalf("expected default batch of 5 posts, got %d", len(theme.Posts))
	}
	if theme.UpdatedAt.IsZero() {
		t.Fatal("expected updated_at to be set")
	}
	// Defaults land in the caption fallback through the theme name.
	if theme.Posts[0].Caption != "Check out our latest Untitled Theme! ✨" {
		t.Fatalf("unexpected caption: %q", theme.Posts[0].Caption)
	}
}

func TestGeneratePostsOwnership(t *testing.T) {
	f := newPipelineFixture(t)

	if _, err := f.svc.GeneratePosts(context.Background(), "intruder", "t1"); pkgerrors.CodeOf(err) != pkgerrors.CodeForbidden {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
	if _, err := f.svc.GeneratePosts(context.Background(), "owner", "nope"); pkgerrors.CodeOf(err) != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
