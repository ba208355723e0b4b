package property

import (
	"context"
	"fmt"
	"log"

	"saudapakka/internal/models"
	"saudapakka/internal/repositories"

	"github.com/google/uuid"
)

// recentLimit caps the my_recent result set.
const recentLimit = 10

type service struct {
	repo         repositories.PropertyRepository
	interactions repositories.InteractionRepository
	cache        ListingCache
}

// NewService creates a new property service
func NewService(
	repo repositories.PropertyRepository,
	interactions repositories.InteractionRepository,
	cache ListingCache,
) Service {
	if repo == nil {
		panic("property repo is required")
	}
	if interactions == nil {
		panic("interaction repo is required")
	}
	if cache == nil {
		cache = NoopListingCache{}
	}
	return &service{
		repo:         repo,
		interactions: interactions,
		cache:        cache,
	}
}

func (s *service) Create(ctx context.Context, principal models.Principal, input CreateInput) (*View, error) {
	if err := CanCreateListing(principal); err != nil {
		return nil, err
	}

	if !models.ValidPropertyType(input.PropertyType) {
		return nil, fmt.Errorf("%w: unknown property_type %q", ErrInvalidInput, input.PropertyType)
	}
	if !models.ValidListingType(input.ListingType) {
		return nil, fmt.Errorf("%w: unknown listing_type %q", ErrInvalidInput, input.ListingType)
	}

	prop := &models.Property{
		OwnerID:         principal.ID,
		Title:           input.Title,
		Description:     input.Description,
		Price:           input.Price,
		PropertyType:    input.PropertyType,
		ListingType:     input.ListingType,
		AddressLine:     input.AddressLine,
		Latitude:        input.Latitude,
		Longitude:       input.Longitude,
		Doc712:          input.Doc712,
		DocMojani:       input.DocMojani,
		DocNAOrder:      input.DocNAOrder,
		DocLayoutOrder:  input.DocLayoutOrder,
		DocLayoutCopy:   input.DocLayoutCopy,
		DocBuildingPerm: input.DocBuildingPerm,
		DocFloorPlan:    input.DocFloorPlan,
		// Clients cannot self-verify: status always starts PENDING.
		VerificationStatus: models.VerificationPending,
	}

	if err := s.repo.Create(prop); err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	s.invalidateListings(ctx)

	created, err := s.repo.GetByID(prop.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload property: %w", err)
	}
	v := NewView(principal, created)
	return &v, nil
}

func (s *service) Get(ctx context.Context, principal models.Principal, id uuid.UUID) (*View, error) {
	prop, err := s.repo.GetByID(id)
	if err != nil {
		if err == repositories.ErrPropertyNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	// Hidden listings are indistinguishable from missing ones.
	if !CanView(principal, prop) {
		return nil, ErrNotFound
	}

	v := NewView(principal, prop)
	return &v, nil
}

func (s *service) Update(ctx context.Context, principal models.Principal, id uuid.UUID, input UpdateInput) (*View, error) {
	prop, err := s.repo.GetByID(id)
	if err != nil {
		if err == repositories.ErrPropertyNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	if err := CanModify(principal, prop); err != nil {
		return nil, err
	}

	if input.Title != nil {
		prop.Title = *input.Title
	}
	if input.Description != nil {
		prop.Description = *input.Description
	}
	if input.Price != nil {
		prop.Price = *input.Price
	}
	if input.PropertyType != nil {
		if !models.ValidPropertyType(*input.PropertyType) {
			return nil, fmt.Errorf("%w: unknown property_type %q", ErrInvalidInput, *input.PropertyType)
		}
		prop.PropertyType = *input.PropertyType
	}
	if input.ListingType != nil {
		if !models.ValidListingType(*input.ListingType) {
			return nil, fmt.Errorf("%w: unknown listing_type %q", ErrInvalidInput, *input.ListingType)
		}
		prop.ListingType = *input.ListingType
	}
	if input.AddressLine != nil {
		prop.AddressLine = *input.AddressLine
	}
	if input.Latitude != nil {
		prop.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		prop.Longitude = input.Longitude
	}

	if err := s.repo.Update(prop); err != nil {
		return nil, fmt.Errorf("failed to update property: %w", err)
	}

	s.invalidateListings(ctx)

	v := NewView(principal, prop)
	return &v, nil
}

func (s *service) Delete(ctx context.Context, principal models.Principal, id uuid.UUID) error {
	prop, err := s.repo.GetByID(id)
	if err != nil {
		if err == repositories.ErrPropertyNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get property: %w", err)
	}

	if err := CanModify(principal, prop); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}

	s.invalidateListings(ctx)
	return nil
}

func (s *service) List(ctx context.Context, principal models.Principal, filter Filter) ([]View, error) {
	// Guest pages are principal-independent and worth caching.
	cacheable := !principal.Authenticated
	var key string
	if cacheable {
		key = filter.CacheKey()
		var cached []View
		if hit, err := s.cache.GetListings(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	scopes := append([]repositories.Scope{VisibleTo(principal)}, filter.Scopes()...)
	props, err := s.repo.List(scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	views := NewViews(principal, props)

	if cacheable {
		if err := s.cache.SetListings(ctx, key, views); err != nil {
			log.Printf("Failed to cache listing page: %v", err)
		}
	}
	return views, nil
}

func (s *service) ToggleSave(ctx context.Context, principal models.Principal, id uuid.UUID) (bool, error) {
	if !principal.Authenticated {
		return false, ErrUnauthenticated
	}

	prop, err := s.repo.GetByID(id)
	if err != nil {
		if err == repositories.ErrPropertyNotFound {
			return false, ErrNotFound
		}
		return false, fmt.Errorf("failed to get property: %w", err)
	}
	if !CanView(principal, prop) {
		return false, ErrNotFound
	}

	saved, err := s.interactions.ToggleSave(principal.ID, id)
	if err != nil {
		return false, fmt.Errorf("failed to toggle save: %w", err)
	}
	return saved, nil
}

func (s *service) RecordView(ctx context.Context, principal models.Principal, id uuid.UUID) (*View, error) {
	if !principal.Authenticated {
		return nil, ErrUnauthenticated
	}

	prop, err := s.repo.GetByID(id)
	if err != nil {
		if err == repositories.ErrPropertyNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	if !CanView(principal, prop) {
		return nil, ErrNotFound
	}

	if err := s.interactions.RecordView(principal.ID, id); err != nil {
		return nil, fmt.Errorf("failed to record view: %w", err)
	}

	v := NewView(principal, prop)
	return &v, nil
}

func (s *service) MySaved(ctx context.Context, principal models.Principal) ([]View, error) {
	if !principal.Authenticated {
		return nil, ErrUnauthenticated
	}

	props, err := s.interactions.SavedProperties(principal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved properties: %w", err)
	}
	return NewViews(principal, props), nil
}

func (s *service) MyRecent(ctx context.Context, principal models.Principal) ([]View, error) {
	if !principal.Authenticated {
		return nil, ErrUnauthenticated
	}

	props, err := s.interactions.RecentProperties(principal.ID, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent properties: %w", err)
	}
	return NewViews(principal, props), nil
}

func (s *service) invalidateListings(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("Failed to invalidate listing cache: %v", err)
	}
}
