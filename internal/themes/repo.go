package themes

import (
	"context"

	"github.com/lucasrivero/brandforge-backend/pkg/firestore"
	"github.com/lucasrivero/brandforge-backend/pkg/models"
)

// Repository exposes theme persistence operations over Firestore.
type Repository struct {
	store      *firestore.Client
	collection string
}

// NewRepository constructs a theme repository bound to the provided document store.
func NewRepository(store *firestore.Client, collection string) *Repository {
	return &Repository{store: store, collection: collection}
}

// Create persists a theme document keyed by its ID.
func (r *Repository) Create(ctx context.Context, theme *models.Theme) error {
	return r.store.SetDoc(ctx, r.collection, theme.ID, theme)
}

// FindByID retrieves a theme by ID, returning firestore.ErrNotFound when absent.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.Theme, error) {
	var theme models.Theme
	if err := r.store.GetDoc(ctx, r.collection, id, &theme); err != nil {
		return nil, err
	}
	return &theme, nil
}

// ListByUser returns the user's themes, optionally restricted to one brand.
func (r *Repository) ListByUser(ctx context.Context, userID, brandID string) ([]models.Theme, error) {
	filters := []firestore.EqualFilter{{Field: "user_id", Value: userID}}
	if brandID != "" {
		filters = append(filters, firestore.EqualFilter{Field: "brand_id", Value: brandID})
	}

	snaps, err := r.store.QueryDocs(ctx, r.collection, filters...)
	if err != nil {
		return nil, err
	}
	themes := make([]models.Theme, 0, len(snaps))
	for _, snap := range snaps {
		var theme models.Theme
		if err := snap.DataTo(&theme); err != nil {
			return nil, err
		}
		themes = append(themes, theme)
	}
	return themes, nil
}

// Update merges the supplied fields into a theme document.
func (r *Repository) Update(ctx context.Context, id string, fields map[string]any) error {
	return r.store.UpdateDoc(ctx, r.collection, id, fields)
}

// Delete removes a theme document.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.store.DeleteDoc(ctx, r.collection, id)
}
