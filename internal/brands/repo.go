package brands

import (
	"context"

	"github.com/lucasrivero/brandforge-backend/pkg/firestore"
	"github.com/lucasrivero/brandforge-backend/pkg/models"
)

// Repository exposes brand persistence operations over Firestore.
type Repository struct {
	store      *firestore.Client
	collection string
}

// NewRepository constructs a brand repository bound to the provided document store.
func NewRepository(store *firestore.Client, collection string) *Repository {
	return &Repository{store: store, collection: collection}
}

// Create persists a brand document keyed by its ID.
func (r *Repository) Create(ctx context.Context, brand *models.Brand) error {
	return r.store.SetDoc(ctx, r.collection, brand.ID, brand)
}

// FindByID retrieves a brand by ID, returning firestore.ErrNotFound when absent.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.Brand, error) {
	var brand models.Brand
	if err := r.store.GetDoc(ctx, r.collection, id, &brand); err != nil {
		return nil, err
	}
	return &brand, nil
}

// ListByUser returns every brand owned by the user.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]models.Brand, error) {
	snaps, err := r.store.QueryDocs(ctx, r.collection, firestore.EqualFilter{Field: "user_id", Value: userID})
	if err != nil {
		return nil, err
	}
	brands := make([]models.Brand, 0, len(snaps))
	for _, snap := range snaps {
		var brand models.Brand
		if err := snap.DataTo(&brand); err != nil {
			return nil, err
		}
		brands = append(brands, brand)
	}
	return brands, nil
}

// Update merges the supplied fields into a brand document.
func (r *Repository) Update(ctx context.Context, id string, fields map[string]any) error {
	return r.store.UpdateDoc(ctx, r.collection, id, fields)
}

// Delete removes a brand document.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.store.DeleteDoc(ctx, r.collection, id)
}
