package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/diagnosis/hbnb-listings/internal/domain"
	"github.com/diagnosis/hbnb-listings/pkg/events"
	"github.com/diagnosis/hbnb-listings/pkg/logger"
)

// CreatePlace creates a listing. The owner and every referenced amenity
// must already exist.
func (f *Facade) CreatePlace(ctx context.Context, req *domain.CreatePlaceRequest) (*domain.Place, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	owner, err := f.users.FindByID(ctx, req.OwnerID)
	if err != nil {
		return nil, domain.Internalf(err, "failed to look up owner")
	}
	if owner == nil {
		return nil, domain.NotFoundf("owner not found")
	}

	amenities, err := f.resolveAmenities(ctx, req.Amenities)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	place := &domain.Place{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Price:       *req.Price,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		OwnerID:     owner.ID,
		Amenities:   amenities,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := f.places.Create(ctx, place, req.Amenities); err != nil {
		return nil, domain.Internalf(err, "failed to create place")
	}

	event := events.PlaceCreatedEvent{
		PlaceID:   place.ID,
		OwnerID:   place.OwnerID,
		Title:     place.Title,
		Price:     place.Price,
		CreatedAt: place.CreatedAt,
	}
	if err := f.eventBus.Publish(ctx, events.PlaceCreated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish place created event", "error", err, "place_id", place.ID)
	}

	return place, nil
}

func (f *Facade) GetPlace(ctx context.Context, id string) (*domain.Place, error) {
	place, err := f.places.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internalf(err, "failed to get place")
	}
	if place == nil {
		return nil, domain.NotFoundf("place not found")
	}
	return place, nil
}

func (f *Facade) ListPlaces(ctx context.Context, limit, offset int) ([]domain.Place, error) {
	places, err := f.places.List(ctx, limit, offset)
	if err != nil {
		return nil, domain.Internalf(err, "failed to list places")
	}
	return places, nil
}

func (f *Facade) ListPlacesByOwner(ctx context.Context, ownerID string) ([]domain.Place, error) {
	places, err := f.places.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, domain.Internalf(err, "failed to list places")
	}
	return places, nil
}

func (f *Facade) GetPlacesByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]domain.Place, error) {
	if minPrice < 0 || maxPrice < minPrice {
		return nil, domain.Validationf("invalid price range")
	}
	places, err := f.places.ListByPriceRange(ctx, minPrice, maxPrice)
	if err != nil {
		return nil, domain.Internalf(err, "failed to list places")
	}
	return places, nil
}

// UpdatePlace applies a partial update. The requester must be the owner
// or an admin. A non-nil amenities list fully replaces the existing
// association.
func (f *Facade) UpdatePlace(ctx context.Context, id string, req *domain.UpdatePlaceRequest, requester domain.Actor) (*domain.Place, error) {
	place, err := f.places.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internalf(err, "failed to get place")
	}
	if place == nil {
		return nil, domain.NotFoundf("place not found")
	}

	if !requester.CanManage(place.OwnerID) {
		return nil, domain.Permissionf("not allowed to modify this place")
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var changes []string
	if req.Title != nil && *req.Title != place.Title {
		place.Title = *req.Title
		changes = append(changes, "title")
	}
	if req.Description != nil && *req.Description != place.Description {
		place.Description = *req.Description
		changes = append(changes, "description")
	}
	if req.Price != nil && *req.Price != place.Price {
		place.Price = *req.Price
		changes = append(changes, "price")
	}
	if req.Latitude != nil && *req.Latitude != place.Latitude {
		place.Latitude = *req.Latitude
		changes = append(changes, "latitude")
	}
	if req.Longitude != nil && *req.Longitude != place.Longitude {
		place.Longitude = *req.Longitude
		changes = append(changes, "longitude")
	}

	if req.Amenities != nil {
		amenities, err := f.resolveAmenities(ctx, req.Amenities)
		if err != nil {
			return nil, err
		}
		if err := f.places.ReplaceAmenities(ctx, place.ID, req.Amenities); err != nil {
			return nil, domain.Internalf(err, "failed to replace amenities")
		}
		place.Amenities = amenities
		changes = append(changes, "amenities")
	}

	place.UpdatedAt = time.Now().UTC()
	if err := f.places.Update(ctx, place); err != nil {
		return nil, domain.Internalf(err, "failed to update place")
	}

	if len(changes) > 0 {
		event := events.PlaceUpdatedEvent{
			PlaceID:   place.ID,
			Changes:   changes,
			UpdatedAt: place.UpdatedAt,
		}
		if err := f.eventBus.Publish(ctx, events.PlaceUpdated, event); err != nil {
			logger.ErrorContext(ctx, "Failed to publish place updated event", "error", err, "place_id", place.ID)
		}
	}

	return place, nil
}

// DeletePlace removes a listing along with its reviews and amenity
// links. Owner or admin only.
func (f *Facade) DeletePlace(ctx context.Context, id string, requester domain.Actor) error {
	place, err := f.places.FindByID(ctx, id)
	if err != nil {
		return domain.Internalf(err, "failed to get place")
	}
	if place == nil {
		return domain.NotFoundf("place not found")
	}

	if !requester.CanManage(place.OwnerID) {
		return domain.Permissionf("not allowed to delete this place")
	}

	ok, err := f.places.Delete(ctx, place.ID)
	if err != nil {
		return domain.Internalf(err, "failed to delete place")
	}
	if !ok {
		return domain.NotFoundf("place not found")
	}

	event := events.PlaceDeletedEvent{
		PlaceID:   place.ID,
		OwnerID:   place.OwnerID,
		DeletedBy: requester.ID,
		DeletedAt: time.Now().UTC(),
	}
	if err := f.eventBus.Publish(ctx, events.PlaceDeleted, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish place deleted event", "error", err, "place_id", place.ID)
	}
	return nil
}
