package themes

import (
	"context"
	"testing"

	pkgerrors "github.com/lucasrivero/brandforge-backend/pkg/errors"
	"github.com/lucasrivero/brandforge-backend/pkg/firestore"
	"github.com/lucasrivero/brandforge-backend/pkg/models"
)

type stubThemesRepo struct {
	themes        map[string]*models.Theme
	created       *models.Theme
	updatedFields map[string]any
	listedBrandID string
}

func newStubThemesRepo() *stubThemesRepo {
	return &stubThemesRepo{themes: map[string]*models.Theme{}}
}

func (s *stubThemesRepo) Create(_ context.Context, theme *models.Theme) error {
	s.created = theme
	s.themes[theme.ID] = theme
	return nil
}

func (s *stubThemesRepo) FindByID(_ context.Context, id string) (*models.Theme, error) {
	theme, ok := s.themes[id]
	if !ok {
		return nil, firestore.ErrNotFound
	}
	copied := *theme
	return &copied, nil
}

func (s *stubThemesRepo) ListByUser(_ context.Context, userID, brandID string) ([]models.Theme, error) {
	s.listedBrandID = brandID
	var out []models.Theme
	for _, theme := range s.themes {
		if theme.UserID != userID {
			continue
		}
		if brandID != "" && theme.BrandID != brandID {
			continue
		}
		out = append(out, *theme)
	}
	return out, nil
}

func (s *stubThemesRepo) Update(_ context.Context, id string, fields map[string]any) error {
	s.updatedFields = fields
	return nil
}

func (s *stubThemesRepo) Delete(_ context.Context, id string) error {
	delete(s.themes, id)
	return nil
}

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

func newTestService(t *testing.T, repo *stubThemesRepo, brands *stubBrandLookup) Service {
	t.Helper()
	if brands == nil {
		brands = &stubBrandLookup{brands: map[string]*models.Brand{}}
	}
	svc, err := NewService(repo, brands)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func validCreateInput() CreateInput {
	return CreateInput{
		BrandID:       "b1",
		Name:          "Summer Vibes",
		PostsCount:    5,
		Mood:          "Playful",
		Colors:        []string{"#4F46E5", "#EC4899", "#F59E0B", "#10B981"},
		Imagery:       "Lifestyle",
		Tone:          "Casual",
		CaptionLength: "medium",
		UseEmojis:     true,
		UseHashtags:   true,
	}
}

func TestCreateVerifiesBrandOwnership(t *testing.T) {
	repo := newStubThemesRepo()
	brands := &stubBrandLookup{brands: map[string]*models.Brand{
		"b1": {ID: "b1", UserID: "owner"},
	}}
	svc := newTestService(t, repo, brands)

	if _, err := svc.Create(context.Background(), "intruder", validCreateInput()); pkgerrors.CodeOf(err) != pkgerrors.CodeForbidden {
		t.Fatalf("expected FORBIDDEN for foreign brand, got %v", err)
	}

	theme, err := svc.Create(context.Background(), "owner", validCreateInput())
	if err != nil {
		t.Fatalf("create theme: %v", err)
	}
	if theme.ID == "" || theme.UserID != "owner" {
		t.Fatalf("unexpected theme identity: %+v", theme)
	}
	if theme.Posts == nil {
		t.Fatal("expected posts to default to empty slice")
	}
}

func TestCreateMissingBrandIsNotFound(t *testing.T) {
	svc := newTestService(t, newStubThemesRepo(), nil)

	if _, err := svc.Create(context.Background(), "user", validCreateInput()); pkgerrors.CodeOf(err) != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND for missing brand, got %v", err)
	}
}

func TestListPassesBrandFilter(t *testing.T) {
	repo := newStubThemesRepo()
	repo.themes["t1"] = &models.Theme{ID: "t1", UserID: "user", BrandID: "b1"}
	repo.themes["t2"] = &models.Theme{ID: "t2", UserID: "user", BrandID: "b2"}
	svc := newTestService(t, repo, nil)

	themes, err := svc.List(context.Background(), "user", "b1")
	if err != nil {
		t.Fatalf("list themes: %v", err)
	}
	if len(themes) != 1 || themes[0].ID != "t1" {
		t.Fatalf("expected only b1 themes, got %+v", themes)
	}
	if repo.listedBrandID != "b1" {
		t.Fatalf("expected brand filter to reach repository, got %q", repo.listedBrandID)
	}
}

func TestUpdateSkipsUnsetFields(t *testing.T) {
	repo := newStubThemesRepo()
	repo.themes["t1"] = &models.Theme{ID: "t1", UserID: "user", Name: "Old"}
	svc := newTestService(t, repo, nil)

	count := 7
	if _, err := svc.Update(context.Background(), "user", "t1", UpdateInput{PostsCount: &count}); err != nil {
		t.Fatalf("update theme: %v", err)
	}
	if got := repo.updatedFields["posts_count"]; got != 7 {
		t.Fatalf("expected posts_count update, got %v", got)
	}
	if _, ok := repo.updatedFields["name"]; ok {
		t.Fatal("expected unset fields to be skipped")
	}
}

func TestGetRejectsForeignTheme(t *testing.T) {
	repo := newStubThemesRepo()
	repo.themes["t1"] = &models.Theme{ID: "t1", UserID: "owner"}
	svc := newTestService(t, repo, nil)

	if _, err := svc.Get(context.Background(), "intruder", "t1"); pkgerrors.CodeOf(err) != pkgerrors.CodeForbidden {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
}
