package property

import (
	"context"

	"saudapakka/internal/models"

	"github.com/google/uuid"
)

// Service defines the main property service interface
type Service interface {
	// Listing lifecycle
	Create(ctx context.Context, principal models.Principal, input CreateInput) (*View, error)
	Get(ctx context.Context, principal models.Principal, id uuid.UUID) (*View, error)
	Update(ctx context.Context, principal models.Principal, id uuid.UUID, input UpdateInput) (*View, error)
	Delete(ctx context.Context, principal models.Principal, id uuid.UUID) error

	// Visibility-scoped listing
	List(ctx context.Context, principal models.Principal, filter Filter) ([]View, error)

	// User interactions
	ToggleSave(ctx context.Context, principal models.Principal, id uuid.UUID) (bool, error)
	RecordView(ctx context.Context, principal models.Principal, id uuid.UUID) (*View, error)
	MySaved(ctx context.Context, principal models.Principal) ([]View, error)
	MyRecent(ctx context.Context, principal models.Principal) ([]View, error)
}

// ListingCache caches the public (guest) listing pages. Authenticated
// queries bypass it because their result sets are principal-dependent.
type ListingCache interface {
	GetListings(ctx context.Context, key string, dest *[]View) (bool, error)
	SetListings(ctx context.Context, key string, views []View) error
	Invalidate(ctx context.Context) error
}
