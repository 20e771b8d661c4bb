package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/diagnosis/hbnb-listings/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	FindByID(ctx context.Context, id string) (*domain.Review, error)
	FindByUserAndPlace(ctx context.Context, userID, placeID string) (*domain.Review, error)
	List(ctx context.Context, limit, offset int) ([]domain.Review, error)
	ListByPlace(ctx context.Context, placeID string) ([]domain.Review, error)
	Update(ctx context.Context, rv *domain.Review) error
	Delete(ctx context.Context, id string) (bool, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

type reviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &reviewRepository{pool: pool}
}

const reviewColumns = `id, text, rating, user_id, place_id, created_at, updated_at`

func (r *reviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	const q = `
INSERT INTO reviews (id, text, rating, user_id, place_id, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q, rv.ID, rv.Text, rv.Rating, rv.UserID, rv.PlaceID, rv.CreatedAt, rv.UpdatedAt)
	return err
}

func (r *reviewRepository) FindByID(ctx context.Context, id string) (*domain.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var rv domain.Review
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&rv.ID, &rv.Text, &rv.Rating, &rv.UserID, &rv.PlaceID, &rv.CreatedAt, &rv.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &rv, err
}

func (r *reviewRepository) FindByUserAndPlace(ctx context.Context, userID, placeID string) (*domain.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews WHERE user_id=$1 AND place_id=$2`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var rv domain.Review
	err := r.pool.QueryRow(ctx, q, userID, placeID).Scan(
		&rv.ID, &rv.Text, &rv.Rating, &rv.UserID, &rv.PlaceID, &rv.CreatedAt, &rv.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &rv, err
}

func (r *reviewRepository) List(ctx context.Context, limit, offset int) ([]domain.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.queryReviews(ctx, q, limit, offset)
}

func (r *reviewRepository) ListByPlace(ctx context.Context, placeID string) ([]domain.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews WHERE place_id=$1 ORDER BY created_at DESC`
	return r.queryReviews(ctx, q, placeID)
}

func (r *reviewRepository) queryReviews(ctx context.Context, q string, args ...any) ([]domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(
			&rv.ID, &rv.Text, &rv.Rating, &rv.UserID, &rv.PlaceID, &rv.CreatedAt, &rv.UpdatedAt,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *reviewRepository) Update(ctx context.Context, rv *domain.Review) error {
	const q = `UPDATE reviews SET text=$2, rating=$3, updated_at=$4 WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q, rv.ID, rv.Text, rv.Rating, rv.UpdatedAt)
	return err
}

func (r *reviewRepository) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM reviews WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tag, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *reviewRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	const q = `DELETE FROM reviews WHERE user_id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tag, err := r.pool.Exec(ctx, q, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
