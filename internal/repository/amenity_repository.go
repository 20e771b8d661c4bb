package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/diagnosis/hbnb-listings/internal/domain"
)

type AmenityRepository interface {
	Create(ctx context.Context, a *domain.Amenity) error
	FindByID(ctx context.Context, id string) (*domain.Amenity, error)
	FindByName(ctx context.Context, name string) (*domain.Amenity, error)
	List(ctx context.Context) ([]domain.Amenity, error)
	Update(ctx context.Context, a *domain.Amenity) error
	Delete(ctx context.Context, id string) (bool, error)
}

type amenityRepository struct {
	pool *pgxpool.Pool
}

func NewAmenityRepository(pool *pgxpool.Pool) AmenityRepository {
	return &amenityRepository{pool: pool}
}

func (r *amenityRepository) Create(ctx context.Context, a *domain.Amenity) error {
	const q = `INSERT INTO amenities (id, name, created_at, updated_at) VALUES ($1,$2,$3,$4)`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q, a.ID, a.Name, a.CreatedAt, a.UpdatedAt)
	return err
}

func (r *amenityRepository) FindByID(ctx context.Context, id string) (*domain.Amenity, error) {
	const q = `SELECT id, name, created_at, updated_at FROM amenities WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var a domain.Amenity
	err := r.pool.QueryRow(ctx, q, id).Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &a, err
}

func (r *amenityRepository) FindByName(ctx context.Context, name string) (*domain.Amenity, error) {
	const q = `SELECT id, name, created_at, updated_at FROM amenities WHERE name=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var a domain.Amenity
	err := r.pool.QueryRow(ctx, q, name).Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &a, err
}

func (r *amenityRepository) List(ctx context.Context) ([]domain.Amenity, error) {
	const q = `SELECT id, name, created_at, updated_at FROM amenities ORDER BY name`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	amenities := []domain.Amenity{}
	for rows.Next() {
		var a domain.Amenity
		if err := rows.Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		amenities = append(amenities, a)
	}
	return amenities, rows.Err()
}

func (r *amenityRepository) Update(ctx context.Context, a *domain.Amenity) error {
	const q = `UPDATE amenities SET name=$2, updated_at=$3 WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q, a.ID, a.Name, a.UpdatedAt)
	return err
}

func (r *amenityRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM place_amenities WHERE amenity_id=$1`, id); err != nil {
		return false, err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM amenities WHERE id=$1`, id)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
