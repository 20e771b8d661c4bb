package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/diagnosis/hbnb-listings/internal/domain"
	"github.com/diagnosis/hbnb-listings/pkg/events"
	"github.com/diagnosis/hbnb-listings/pkg/logger"
)

// CreateReview creates a review. The author must exist, must not own
// the place, and must not already have reviewed it.
func (f *Facade) CreateReview(ctx context.Context, req *domain.CreateReviewRequest, requester domain.Actor) (*domain.Review, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.UserID != requester.ID && !requester.IsAdmin {
		return nil, domain.Permissionf("cannot create a review for another user")
	}

	author, err := f.users.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, domain.Internalf(err, "failed to look up author")
	}
	if author == nil {
		return nil, domain.NotFoundf("user not found")
	}

	place, err := f.places.FindByID(ctx, req.PlaceID)
	if err != nil {
		return nil, domain.Internalf(err, "failed to look up place")
	}
	if place == nil {
		return nil, domain.NotFoundf("place not found")
	}

	if place.OwnerID == author.ID {
		return nil, domain.Validationf("cannot review your own place")
	}

	existing, err := f.reviews.FindByUserAndPlace(ctx, author.ID, place.ID)
	if err != nil {
		return nil, domain.Internalf(err, "failed to check existing review")
	}
	if existing != nil {
		return nil, domain.Conflictf("user has already reviewed this place")
	}

	rating, err := domain.ValidateRating(*req.Rating)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	review := &domain.Review{
		ID:        uuid.NewString(),
		Text:      req.Text,
		Rating:    rating,
		UserID:    author.ID,
		PlaceID:   place.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := f.reviews.Create(ctx, review); err != nil {
		return nil, domain.Internalf(err, "failed to create review")
	}

	event := events.ReviewCreatedEvent{
		ReviewID:  review.ID,
		PlaceID:   review.PlaceID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		CreatedAt: review.CreatedAt,
	}
	if err := f.eventBus.Publish(ctx, events.ReviewCreated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish review created event", "error", err, "review_id", review.ID)
	}

	return review, nil
}

func (f *Facade) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	review, err := f.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internalf(err, "failed to get review")
	}
	if review == nil {
		return nil, domain.NotFoundf("review not found")
	}
	return review, nil
}

func (f *Facade) ListReviews(ctx context.Context, limit, offset int) ([]domain.Review, error) {
	reviews, err := f.reviews.List(ctx, limit, offset)
	if err != nil {
		return nil, domain.Internalf(err, "failed to list reviews")
	}
	return reviews, nil
}

// GetReviewsByPlace returns the reviews for a place; no match is an
// empty list, never an error.
func (f *Facade) GetReviewsByPlace(ctx context.Context, placeID string) ([]domain.Review, error) {
	reviews, err := f.reviews.ListByPlace(ctx, placeID)
	if err != nil {
		return nil, domain.Internalf(err, "failed to list reviews")
	}
	return reviews, nil
}

// UpdateReview applies a partial update. Only the original author may
// modify a review.
func (f *Facade) UpdateReview(ctx context.Context, id string, req *domain.UpdateReviewRequest, requester domain.Actor) (*domain.Review, error) {
	review, err := f.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internalf(err, "failed to get review")
	}
	if review == nil {
		return nil, domain.NotFoundf("review not found")
	}

	if review.UserID != requester.ID {
		return nil, domain.Permissionf("only the author can modify this review")
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Rating != nil {
		rating, err := domain.ValidateRating(*req.Rating)
		if err != nil {
			return nil, err
		}
		review.Rating = rating
	}
	review.UpdatedAt = time.Now().UTC()

	if err := f.reviews.Update(ctx, review); err != nil {
		return nil, domain.Internalf(err, "failed to update review")
	}
	return review, nil
}

// DeleteReview removes a review. Author or admin only.
func (f *Facade) DeleteReview(ctx context.Context, id string, requester domain.Actor) error {
	review, err := f.reviews.FindByID(ctx, id)
	if err != nil {
		return domain.Internalf(err, "failed to get review")
	}
	if review == nil {
		return domain.NotFoundf("review not found")
	}

	if !requester.CanManage(review.UserID) {
		return domain.Permissionf("not allowed to delete this review")
	}

	ok, err := f.reviews.Delete(ctx, review.ID)
	if err != nil {
		return domain.Internalf(err, "failed to delete review")
	}
	if !ok {
		return domain.NotFoundf("review not found")
	}

	event := events.ReviewDeletedEvent{
		ReviewID:  review.ID,
		PlaceID:   review.PlaceID,
		DeletedBy: requester.ID,
		DeletedAt: time.Now().UTC(),
	}
	if err := f.eventBus.Publish(ctx, events.ReviewDeleted, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish review deleted event", "error", err, "review_id", review.ID)
	}
	return nil
}
