package themes

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

type themesRepository interface {
	Create(ctx context.Context, theme *models.Theme) error
	FindByID(ctx context.Context, id string) (*models.Theme, error)
	ListByUser(ctx context.Context, userID, brandID string) ([]models.Theme, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}

type brandsRepository interface {
	FindByID(ctx context.Context, id string) (*models.Brand, error)
}

// Service exposes theme management for saved campaign styles.
type Service interface {
	Create(ctx context.Context, userID string, input CreateInput) (*models.Theme, error)
	List(ctx context.Context, userID, brandID string) ([]models.Theme, error)
	Get(ctx context.Context, userID, themeID string) (*models.Theme, error)
	Update(ctx context.Context, userID, themeID string, input UpdateInput) (*models.Theme, error)
	Delete(ctx context.Context, userID, themeID string) error
}

type service struct {
	repo   themesRepository
	brands brandsRepository
	now    func() time.Time
}

// NewService constructs a theme service backed by the provided repositories.
func NewService(repo themesRepository, brands brandsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("themes repository required")
	}
	if brands == nil {
		return nil, fmt.Errorf("brands repository required")
	}
	return &service{
		repo:   repo,
		brands: brands,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// CreateInput models the payload required to save a theme.
type CreateInput struct {
	BrandID       string        `json:"brand_id" validate:"required"`
	Name          string        `json:"name" validate:"required"`
	PostsCount    int           `json:"posts_count" validate:"required,min=1"`
	Mood          string        `json:"mood" validate:"required"`
	Colors        []string      `json:"colors" validate:"required,min=1"`
	Imagery       string        `json:"imagery" validate:"required"`
	Tone          string        `json:"tone" validate:"required"`
	CaptionLength string        `json:"caption_length" validate:"required,oneof=short medium long"`
	UseEmojis     bool          `json:"use_emojis"`
	UseHashtags   bool          `json:"use_hashtags"`
	Posts         []models.Post `json:"posts"`
}

// UpdateInput models a partial theme update. Nil fields are left untouched.
type UpdateInput struct {
	Name          *string        `json:"name"`
	PostsCount    *int           `json:"posts_count"`
	Mood          *string        `json:"mood"`
	Colors        *[]string      `json:"colors"`
	Imagery       *string        `json:"imagery"`
	Tone          *string        `json:"tone"`
	CaptionLength *string        `json:"caption_length"`
	UseEmojis     *bool          `json:"use_emojis"`
	UseHashtags   *bool          `json:"use_hashtags"`
	Posts         *[]models.Post `json:"posts"`
}

func (s *service) Create(ctx context.Context, userID string, input CreateInput) (*models.Theme, error) {
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user identity missing")
	}

	brand, err := s.brands.FindByID(ctx, input.BrandID)
	if err != nil {
		if errors.Is(err, firestore.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "brand not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading brand")
	}
	if brand.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not authorized to create theme for this brand")
	}

	now := s.now()
	theme := &models.Theme{
		ID:            uuid.NewString(),
		BrandID:       input.BrandID,
		UserID:        userID,
		Name:          input.Name,
		PostsCount:    input.PostsCount,
		Mood:          input.Mood,
		Colors:        input.Colors,
		Imagery:       input.Imagery,
		Tone:          input.Tone,
		CaptionLength: input.CaptionLength,
		UseEmojis:     input.UseEmojis,
		UseHashtags:   input.UseHashtags,
		Posts:         input.Posts,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if theme.Posts == nil {
		theme.Posts = []models.Post{}
	}

	if err := s.repo.Create(ctx, theme); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating theme")
	}
	return theme, nil
}

func (s *service) List(ctx context.Context, userID, brandID string) ([]models.Theme, error) {
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user identity missing")
	}
	themes, err := s.repo.ListByUser(ctx, userID, brandID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing themes")
	}
	return themes, nil
}

func (s *service) Get(ctx context.Context, userID, themeID string) (*models.Theme, error) {
	return s.ownedTheme(ctx, userID, themeID)
}

func (s *service) Update(ctx context.Context, userID, themeID string, input UpdateInput) (*models.Theme, error) {
	if _, err := s.ownedTheme(ctx, userID, themeID); err != nil {
		return nil, err
	}

	fields := map[string]any{"updated_at": s.now()}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.PostsCount != nil {
		fields["posts_count"] = *input.PostsCount
	}
	if input.Mood != nil {
		fields["mood"] = *input.Mood
	}
	if input.Colors != nil {
		fields["colors"] = *input.Colors
	}
	if input.Imagery != nil {
		fields["imagery"] = *input.Imagery
	}
	if input.Tone != nil {
		fields["tone"] = *input.Tone
	}
	if input.CaptionLength != nil {
		fields["caption_length"] = *input.CaptionLength
	}
	if input.UseEmojis != nil {
		fields["use_emojis"] = *input.UseEmojis
	}
	if input.UseHashtags != nil {
		fields["use_hashtags"] = *input.UseHashtags
	}
	if input.Posts != nil {
		fields["posts"] = *input.Posts
	}

	if err := s.repo.Update(ctx, themeID, fields); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating theme")
	}

	updated, err := s.repo.FindByID(ctx, themeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reloading theme")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, userID, themeID string) error {
	if _, err := s.ownedTheme(ctx, userID, themeID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, themeID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting theme")
	}
	return nil
}

func (s *service) ownedTheme(ctx context.Context, userID, themeID string) (*models.Theme, error) {
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user identity missing")
	}
	if themeID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "theme id required")
	}

	theme, err := s.repo.FindByID(ctx, themeID)
	if err != nil {
		if errors.Is(err, firestore.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "theme not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading theme")
	}
	if theme.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not authorized to access this theme")
	}
	return theme, nil
}
