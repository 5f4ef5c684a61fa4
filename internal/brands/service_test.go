package brands

import (
	"context"
	"testing"
	"time"

	pkgerrors "github.com/lucasrivero/brandforge-backend/pkg/errors"
	"github.com/lucasrivero/brandforge-backend/pkg/firestore"
	"github.com/lucasrivero/brandforge-backend/pkg/models"
)

type stubBrandsRepo struct {
	brands        map[string]*models.Brand
	created       *models.Brand
	updatedFields map[string]any
	deletedID     string
}

func newStubBrandsRepo() *stubBrandsRepo {
	return &stubBrandsRepo{brands: map[string]*models.Brand{}}
}

func (s *stubBrandsRepo) Create(_ context.Context, brand *models.Brand) error {
	s.created = brand
	s.brands[brand.ID] = brand
	return nil
}

func (s *stubBrandsRepo) FindByID(_ context.Context, id string) (*models.Brand, error) {
	brand, ok := s.brands[id]
	if !ok {
		return nil, firestore.ErrNotFound
	}
	copied := *brand
	return &copied, nil
}

func (s *stubBrandsRepo) ListByUser(_ context.Context, userID string) ([]models.Brand, error) {
	var out []models.Brand
	for _, brand := range s.brands {
		if brand.UserID == userID {
			out = append(out, *brand)
		}
	}
	return out, nil
}

func (s *stubBrandsRepo) Update(_ context.Context, id string, fields map[string]any) error {
	s.updatedFields = fields
	return nil
}

func (s *stubBrandsRepo) Delete(_ context.Context, id string) error {
	s.deletedID = id
	return nil
}

func newTestService(t *testing.T, repo *stubBrandsRepo) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCreateAssignsIdentityAndTimestamps(t *testing.T) {
	repo := newStubBrandsRepo()
	svc := newTestService(t, repo)

	brand, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:           "Glow Co",
		Category:       "Cosmetics",
		Description:    "Skincare for everyone",
		TargetAudience: "Young adults",
		MajorStrengths: []string{"natural ingredients"},
		MainProducts:   []string{"face serum"},
		BrandVoice:     "Friendly",
	})
	if err != nil {
		t.Fatalf("create brand: %v", err)
	}

	if brand.ID == "" {
		t.Fatal("expected generated brand id")
	}
	if brand.UserID != "user-1" {
		t.Fatalf("expected owner user-1, got %q", brand.UserID)
	}
	if brand.CreatedAt.IsZero() || brand.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}
	if brand.ReferenceImages == nil {
		t.Fatal("expected reference images to default to empty slice")
	}
	if repo.created == nil {
		t.Fatal("expected brand to be persisted")
	}
}

func TestGetMapsMissingBrandToNotFound(t *testing.T) {
	svc := newTestService(t, newStubBrandsRepo())

	_, err := svc.Get(context.Background(), "user-1", "missing")
	if code := pkgerrors.CodeOf(err); code != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v (%v)", code, err)
	}
}

func TestGetRejectsForeignBrand(t *testing.T) {
	repo := newStubBrandsRepo()
	repo.brands["b1"] = &models.Brand{ID: "b1", UserID: "owner"}
	svc := newTestService(t, repo)

	_, err := svc.Get(context.Background(), "intruder", "b1")
	if code := pkgerrors.CodeOf(err); code != pkgerrors.CodeForbidden {
		t.Fatalf("expected FORBIDDEN, got %v (%v)", code, err)
	}
}

func TestUpdateOnlyTouchesProvidedFields(t *testing.T) {
	repo := newStubBrandsRepo()
	repo.brands["b1"] = &models.Brand{ID: "b1", UserID: "user-1", Name: "Old", CreatedAt: time.Now()}
	svc := newTestService(t, repo)

	name := "New Name"
	if _, err := svc.Update(context.Background(), "user-1", "b1", UpdateInput{Name: &name}); err != nil {
		t.Fatalf("update brand: %v", err)
	}

	if got := repo.updatedFields["name"]; got != "New Name" {
		t.Fatalf("expected name update, got %v", got)
	}
	if _, ok := repo.updatedFields["category"]; ok {
		t.Fatal("expected unset fields to be skipped")
	}
	if _, ok := repo.updatedFields["updated_at"]; !ok {
		t.Fatal("expected updated_at to be refreshed")
	}
}

func TestDeleteRequiresOwnership(t *testing.T) {
	repo := newStubBrandsRepo()
	repo.brands["b1"] = &models.Brand{ID: "b1", UserID: "owner"}
	svc := newTestService(t, repo)

	if err := svc.Delete(context.Background(), "intruder", "b1"); pkgerrors.CodeOf(err) != pkgerrors.CodeForbidden {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
	if repo.deletedID != "" {
		t.Fatal("expected no delete on foreign brand")
	}

	if err := svc.Delete(context.Background(), "owner", "b1"); err != nil {
		t.Fatalf("delete brand: %v", err)
	}
	if repo.deletedID != "b1" {
		t.Fatalf("expected delete of b1, got %q", repo.deletedID)
	}
}
