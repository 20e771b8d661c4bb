package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/diagnosis/hbnb-listings/internal/domain"
	"github.com/diagnosis/hbnb-listings/pkg/events"
	"github.com/diagnosis/hbnb-listings/pkg/logger"
)

// CreateAmenity creates an amenity. Admin only; names are unique.
func (f *Facade) CreateAmenity(ctx context.Context, req *domain.CreateAmenityRequest, actingAsAdmin bool) (*domain.Amenity, error) {
	if !actingAsAdmin {
		return nil, domain.Permissionf("only admins can manage amenities")
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := f.amenities.FindByName(ctx, req.Name)
	if err != nil {
		return nil, domain.Internalf(err, "failed to check existing amenity")
	}
	if existing != nil {
		return nil, domain.Conflictf("amenity name already exists")
	}

	now := time.Now().UTC()
	amenity := &domain.Amenity{
		ID:        uuid.NewString(),
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := f.amenities.Create(ctx, amenity); err != nil {
		return nil, domain.Internalf(err, "failed to create amenity")
	}

	event := events.AmenityCreatedEvent{
		AmenityID: amenity.ID,
		Name:      amenity.Name,
		CreatedAt: amenity.CreatedAt,
	}
	if err := f.eventBus.Publish(ctx, events.AmenityCreated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish amenity created event", "error", err, "amenity_id", amenity.ID)
	}

	return amenity, nil
}

func (f *Facade) GetAmenity(ctx context.Context, id string) (*domain.Amenity, error) {
	amenity, err := f.amenities.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internalf(err, "failed to get amenity")
	}
	if amenity == nil {
		return nil, domain.NotFoundf("amenity not found")
	}
	return amenity, nil
}

func (f *Facade) ListAmenities(ctx context.Context) ([]domain.Amenity, error) {
	amenities, err := f.amenities.List(ctx)
	if err != nil {
		return nil, domain.Internalf(err, "failed to list amenities")
	}
	return amenities, nil
}

// UpdateAmenity renames an amenity. Admin only; the new name must stay
// unique.
func (f *Facade) UpdateAmenity(ctx context.Context, id string, req *domain.UpdateAmenityRequest, actingAsAdmin bool) (*domain.Amenity, error) {
	if !actingAsAdmin {
		return nil, domain.Permissionf("only admins can manage amenities")
	}

	amenity, err := f.amenities.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internalf(err, "failed to get amenity")
	}
	if amenity == nil {
		return nil, domain.NotFoundf("amenity not found")
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != amenity.Name {
		existing, err := f.amenities.FindByName(ctx, *req.Name)
		if err != nil {
			return nil, domain.Internalf(err, "failed to check existing amenity")
		}
		if existing != nil {
			return nil, domain.Conflictf("amenity name already exists")
		}
		amenity.Name = *req.Name
	}
	amenity.UpdatedAt = time.Now().UTC()

	if err := f.amenities.Update(ctx, amenity); err != nil {
		return nil, domain.Internalf(err, "failed to update amenity")
	}
	return amenity, nil
}

// DeleteAmenity removes an amenity and its place links. Admin only.
func (f *Facade) DeleteAmenity(ctx context.Context, id string, actingAsAdmin bool) error {
	if !actingAsAdmin {
		return domain.Permissionf("only admins can manage amenities")
	}

	ok, err := f.amenities.Delete(ctx, id)
	if err != nil {
		return domain.Internalf(err, "failed to delete amenity")
	}
	if !ok {
		return domain.NotFoundf("amenity not found")
	}
	return nil
}
