// Package service implements the business layer behind the HTTP handlers.
// The Facade is the single entry point: it owns validation, ownership and
// admin authorization, and referential rules across users, places,
// amenities and reviews. It is transport-agnostic; callers hand it an
// already-resolved actor identity.
package service

import (
	"context"

	"github.com/diagnosis/hbnb-listings/internal/domain"
	"github.com/diagnosis/hbnb-listings/internal/mailer"
	"github.com/diagnosis/hbnb-listings/internal/repository"
	"github.com/diagnosis/hbnb-listings/pkg/events"
)

type Facade struct {
	users     repository.UserRepository
	places    repository.PlaceRepository
	reviews   repository.ReviewRepository
	amenities repository.AmenityRepository
	eventBus  events.Publisher
	mailer    mailer.Service
}

func NewFacade(
	users repository.UserRepository,
	places repository.PlaceRepository,
	reviews repository.ReviewRepository,
	amenities repository.AmenityRepository,
	eventBus events.Publisher,
	mailer mailer.Service,
) *Facade {
	return &Facade{
		users:     users,
		places:    places,
		reviews:   reviews,
		amenities: amenities,
		eventBus:  eventBus,
		mailer:    mailer,
	}
}

// resolveAmenities loads every referenced amenity, failing on the first
// unknown id.
func (f *Facade) resolveAmenities(ctx context.Context, ids []string) ([]domain.Amenity, error) {
	amenities := make([]domain.Amenity, 0, len(ids))
	for _, id := range ids {
		a, err := f.amenities.FindByID(ctx, id)
		if err != nil {
			return nil, domain.Internalf(err, "failed to look up amenity")
		}
		if a == nil {
			return nil, domain.NotFoundf("amenity %s not found", id)
		}
		amenities = append(amenities, *a)
	}
	return amenities, nil
}
