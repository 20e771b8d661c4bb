package service_test

import (
	"context"
	"testing"

	"github.com/diagnosis/hbnb-listings/internal/domain"
)

func mustCreateReview(t *testing.T, env *testEnv, userID, placeID string, rating float64) *domain.Review {
	t.Helper()
	review, err := env.facade.CreateReview(context.Background(), &domain.CreateReviewRequest{
		Text:    "Great stay",
		Rating:  f64Ptr(rating),
		UserID:  userID,
		PlaceID: placeID,
	}, domain.Actor{ID: userID})
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	return review
}

func TestCreateReviewOwnPlaceRejected(t *testing.T) {
	env := newTestEnv()

	owner := createUser(t, env, "Owner", "owner@example.com", false, false)
	place := mustCreatePlace(t, env, owner.ID, nil)

	_, err := env.facade.CreateReview(context.Background(), &domain.CreateReviewRequest{
		Text:    "My own place is great",
		Rating:  f64Ptr(5),
		UserID:  owner.ID,
		PlaceID: place.ID,
	}, domain.Actor{ID: owner.ID})
	wantKind(t, err, domain.KindValidation)
}

func TestCreateReviewDuplicateConflicts(t *testing.T) {
	env := newTestEnv()

	owner := createUser(t, env, "Owner", "owner@example.com", false, false)
	guest := createUser(t, env, "Guest", "guest@example.com", false, false)
	place := mustCreatePlace(t, env, owner.ID, nil)

	mustCreateReview(t, env, guest.ID, place.ID, 4)

	_, err := env.facade.CreateReview(context.Background(), &domain.CreateReviewRequest{
		Text:    "Trying again",
		Rating:  f64Ptr(5),
		UserID:  guest.ID,
		PlaceID: place.ID,
	}, domain.Actor{ID: guest.ID})
	wantKind(t, err, domain.KindConflict)
}

func TestCreateReviewForAnotherUser(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	owner := createUser(t, env, "Owner", "owner@example.com", false, false)
	guest := createUser(t, env, "Guest", "guest@example.com", false, false)
	stranger := createUser(t, env, "Stray", "stray@example.com", false, false)
	admin := createUser(t, env, "Root", "root@example.com", true, true)
	place := mustCreatePlace(t, env, owner.ID, nil)

	_, err := env.facade.CreateReview(ctx, &domain.CreateReviewRequest{
		Text:    "Not mine to write",
		Rating:  f64Ptr(3),
		UserID:  guest.ID,
		PlaceID: place.ID,
	}, domain.Actor{ID: stranger.ID})
	wantKind(t, err, domain.KindPermission)

	// Admins may file a review on behalf of another user.
	if _, err := env.facade.CreateReview(ctx, &domain.CreateReviewRequest{
		Text:    "Filed by support",
		Rating:  f64Ptr(3),
		UserID:  guest.ID,
		PlaceID: place.ID,
	}, domain.Actor{ID: admin.ID, IsAdmin: true}); err != nil {
		t.Fatalf("admin on behalf: %v", err)
	}
}

func TestCreateReviewUnknownReferences(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	owner := createUser(t, env, "Owner", "owner@example.com", false, false)
	guest := createUser(t, env, "Guest", "guest@example.com", false, false)
	place := mustCreatePlace(t, env, owner.ID, nil)

	_, err := env.facade.CreateReview(ctx, &domain.CreateReviewRequest{
		Text:    "Ghost writer",
		Rating:  f64Ptr(3),
		UserID:  "missing",
		PlaceID: place.ID,
	}, domain.Actor{ID: "missing"})
	wantKind(t, err, domain.KindNotFound)

	_, err = env.facade.CreateReview(ctx, &domain.CreateReviewRequest{
		Text:    "Ghost place",
		Rating:  f64Ptr(3),
		UserID:  guest.ID,
		PlaceID: "missing",
	}, domain.Actor{ID: guest.ID})
	wantKind(t, err, domain.KindNotFound)
}

func TestCreateReviewRatingRules(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	owner := createUser(t, env, "Owner", "owner@example.com", false, false)
	guest := createUser(t, env, "Guest", "guest@example.com", false, false)
	place := mustCreatePlace(t, env, owner.ID, nil)

	newReq := func(rating *float64) *domain.CreateReviewRequest {
		return &domain.CreateReviewRequest{
			Text:    "Rating check",
			Rating:  rating,
			UserID:  guest.ID,
			PlaceID: place.ID,
		}
	}

	for _, bad := range []float64{0, 6, 4.5, -1} {
		_, err := env.facade.CreateReview(ctx, newReq(f64Ptr(bad)), domain.Actor{ID: guest.ID})
		wantKind(t, err, domain.KindValidation)
	}
	_, err := env.facade.CreateReview(ctx, newReq(nil), domain.Actor{ID: guest.ID})
	wantKind(t, err, domain.KindValidation)

	review := mustCreateReview(t, env, guest.ID, place.ID, 1)
	if review.Rating != 1 {
		t.Fatalf("expected rating 1, got %d", review.Rating)
	}

	other := createUser(t, env, "Other", "other@example.com", false, false)
	review = mustCreateReview(t, env, other.ID, place.ID, 5)
	if review.Rating != 5 {
		t.Fatalf("expected rating 5, got %d", review.Rating)
	}
}

func TestUpdateReviewAuthorOnly(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	owner := createUser(t, env, "Owner", "owner@example.com", false, false)
	guest := createUser(t, env, "Guest", "guest@example.com", false, false)
	admin := createUser(t, env, "Root", "root@example.com", true, true)
	place := mustCreatePlace(t, env, owner.ID, nil)
	review := mustCreateReview(t, env, guest.ID, place.ID, 4)

	// Only the author may edit, admins included.
	_, err := env.facade.UpdateReview(ctx, review.ID, &domain.UpdateReviewRequest{
		Text: strPtr("Edited by admin"),
	}, domain.Actor{ID: admin.ID, IsAdmin: true})
	wantKind(t, err, domain.KindPermission)

	updated, err := env.facade.UpdateReview(ctx, review.ID, &domain.UpdateReviewRequest{
		Text:   strPtr("Even better on reflection"),
		Rating: f64Ptr(5),
	}, domain.Actor{ID: guest.ID})
	if err != nil {
		t.Fatalf("author update: %v", err)
	}
	if updated.Text != "Even better on reflection" || updated.Rating != 5 {
		t.Fatalf("unexpected review after update: %+v", updated)
	}

	_, err = env.facade.UpdateReview(ctx, review.ID, &domain.UpdateReviewRequest{
		Rating: f64Ptr(3.5),
	}, domain.Actor{ID: guest.ID})
	wantKind(t, err, domain.KindValidation)

	_, err = env.facade.UpdateReview(ctx, "missing", &domain.UpdateReviewRequest{}, domain.Actor{ID: guest.ID})
	wantKind(t, err, domain.KindNotFound)
}

func TestDeleteReviewAuthorOrAdmin(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	owner := createUser(t, env, "Owner", "owner@example.com", false, false)
	guest := createUser(t, env, "Guest", "guest@example.com", false, false)
	other := createUser(t, env, "Other", "other@example.com", false, false)
	admin := createUser(t, env, "Root", "root@example.com", true, true)
	place := mustCreatePlace(t, env, owner.ID, nil)

	review := mustCreateReview(t, env, guest.ID, place.ID, 4)

	err := env.facade.DeleteReview(ctx, review.ID, domain.Actor{ID: other.ID})
	wantKind(t, err, domain.KindPermission)

	if err := env.facade.DeleteReview(ctx, review.ID, domain.Actor{ID: guest.ID}); err != nil {
		t.Fatalf("author delete: %v", err)
	}

	review = mustCreateReview(t, env, guest.ID, place.ID, 4)
	if err := env.facade.DeleteReview(ctx, review.ID, domain.Actor{ID: admin.ID, IsAdmin: true}); err != nil {
		t.Fatalf("admin delete: %v", err)
	}

	err = env.facade.DeleteReview(ctx, review.ID, domain.Actor{ID: admin.ID, IsAdmin: true})
	wantKind(t, err, domain.KindNotFound)
}

func TestReviewsByPlace(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	owner := createUser(t, env, "Ursula", "ursula@example.com", false, false)
	visitor := createUser(t, env, "Victor", "victor@example.com", false, false)
	place := mustCreatePlace(t, env, owner.ID, nil)

	// The owner cannot review their own place.
	_, err := env.facade.CreateReview(ctx, &domain.CreateReviewRequest{
		Text:    "Five stars, obviously",
		Rating:  f64Ptr(5),
		UserID:  owner.ID,
		PlaceID: place.ID,
	}, domain.Actor{ID: owner.ID})
	wantKind(t, err, domain.KindValidation)

	review := mustCreateReview(t, env, visitor.ID, place.ID, 5)

	reviews, err := env.facade.GetReviewsByPlace(ctx, place.ID)
	if err != nil {
		t.Fatalf("GetReviewsByPlace: %v", err)
	}
	if len(reviews) != 1 || reviews[0].ID != review.ID {
		t.Fatalf("expected exactly the visitor's review, got %v", reviews)
	}

	// A second attempt by the same visitor conflicts.
	_, err = env.facade.CreateReview(ctx, &domain.CreateReviewRequest{
		Text:    "Once more",
		Rating:  f64Ptr(4),
		UserID:  visitor.ID,
		PlaceID: place.ID,
	}, domain.Actor{ID: visitor.ID})
	wantKind(t, err, domain.KindConflict)

	reviews, err = env.facade.GetReviewsByPlace(ctx, "missing")
	if err != nil {
		t.Fatalf("GetReviewsByPlace(unknown): %v", err)
	}
	if len(reviews) != 0 {
		t.Fatalf("expected empty list for unknown place, got %v", reviews)
	}
}
