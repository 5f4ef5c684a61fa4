package brands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/lucasrivero/brandforge-backend/pkg/errors"
	"github.com/lucasrivero/brandforge-backend/pkg/firestore"
	"github.com/lucasrivero/brandforge-backend/pkg/models"
)

type brandsRepository interface {
	Create(ctx context.Context, brand *models.Brand) error
	FindByID(ctx context.Context, id string) (*models.Brand, error)
	ListByUser(ctx context.Context, userID string) ([]models.Brand, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}

// Service exposes brand profile management.
type Service interface {
	Create(ctx context.Context, userID string, input CreateInput) (*models.Brand, error)
	List(ctx context.Context, userID string) ([]models.Brand, error)
	Get(ctx context.Context, userID, brandID string) (*models.Brand, error)
	Update(ctx context.Context, userID, brandID string, input UpdateInput) (*models.Brand, error)
	Delete(ctx context.Context, userID, brandID string) error
}

type service struct {
	repo brandsRepository
	now  func() time.Time
}

// NewService constructs a brand service backed by the provided repository.
func NewService(repo brandsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("brands repository required")
	}
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}, nil
}

// CreateInput models the payload required to create a brand profile.
type CreateInput struct {
	Name            string   `json:"name" validate:"required"`
	Category        string   `json:"category" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	TargetAudience  string   `json:"target_audience" validate:"required"`
	MajorStrengths  []string `json:"major_strengths" validate:"required"`
	MainProducts    []string `json:"main_products" validate:"required"`
	BrandVoice      string   `json:"brand_voice" validate:"required"`
	ReferenceImages []string `json:"reference_images"`
	LogoImage       string   `json:"logo_image"`
}

// UpdateInput models a partial brand update. Nil fields are left untouched.
type UpdateInput struct {
	Name            *string   `json:"name"`
	Category        *string   `json:"category"`
	Description     *string   `json:"description"`
	TargetAudience  *string   `json:"target_audience"`
	MajorStrengths  *[]string `json:"major_strengths"`
	MainProducts    *[]string `json:"main_products"`
	BrandVoice      *string   `json:"brand_voice"`
	ReferenceImages *[]string `json:"reference_images"`
	LogoImage       *string   `json:"logo_image"`
}

func (s *service) Create(ctx context.Context, userID string, input CreateInput) (*models.Brand, error) {
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user identity missing")
	}

	now := s.now()
	brand := &models.Brand{
		ID:              uuid.NewString(),
		UserID:          userID,
		Name:            input.Name,
		Category:        input.Category,
		Description:     input.Description,
		TargetAudience:  input.TargetAudience,
		MajorStrengths:  input.MajorStrengths,
		MainProducts:    input.MainProducts,
		BrandVoice:      input.BrandVoice,
		ReferenceImages: input.ReferenceImages,
		LogoImage:       input.LogoImage,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if brand.ReferenceImages == nil {
		brand.ReferenceImages = []string{}
	}

	if err := s.repo.Create(ctx, brand); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating brand")
	}
	return brand, nil
}

func (s *service) List(ctx context.Context, userID string) ([]models.Brand, error) {
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user identity missing")
	}
	brands, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing brands")
	}
	return brands, nil
}

func (s *service) Get(ctx context.Context, userID, brandID string) (*models.Brand, error) {
	return s.ownedBrand(ctx, userID, brandID)
}

func (s *service) Update(ctx context.Context, userID, brandID string, input UpdateInput) (*models.Brand, error) {
	if _, err := s.ownedBrand(ctx, userID, brandID); err != nil {
		return nil, err
	}

	fields := map[string]any{"updated_at": s.now()}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Category != nil {
		fields["category"] = *input.Category
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.TargetAudience != nil {
		fields["target_audience"] = *input.TargetAudience
	}
	if input.MajorStrengths != nil {
		fields["major_strengths"] = *input.MajorStrengths
	}
	if input.MainProducts != nil {
		fields["main_products"] = *input.MainProducts
	}
	if input.BrandVoice != nil {
		fields["brand_voice"] = *input.BrandVoice
	}
	if input.ReferenceImages != nil {
		fields["reference_images"] = *input.ReferenceImages
	}
	if input.LogoImage != nil {
		fields["logo_image"] = *input.LogoImage
	}

	if err := s.repo.Update(ctx, brandID, fields); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating brand")
	}

	updated, err := s.repo.FindByID(ctx, brandID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reloading brand")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, userID, brandID string) error {
	if _, err := s.ownedBrand(ctx, userID, brandID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, brandID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting brand")
	}
	return nil
}

func (s *service) ownedBrand(ctx context.Context, userID, brandID string) (*models.Brand, error) {
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user identity missing")
	}
	if brandID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand id required")
	}

	brand, err := s.repo.FindByID(ctx, brandID)
	if err != nil {
		if errors.Is(err, firestore.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "brand not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading brand")
	}
	if brand.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not authorized to access this brand")
	}
	return brand, nil
}
