package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/diagnosis/hbnb-listings/internal/domain"
)

type PlaceRepository interface {
	Create(ctx context.Context, p *domain.Place, amenityIDs []string) error
	FindByID(ctx context.Context, id string) (*domain.Place, error)
	List(ctx context.Context, limit, offset int) ([]domain.Place, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Place, error)
	ListByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]domain.Place, error)
	Update(ctx context.Context, p *domain.Place) error
	ReplaceAmenities(ctx context.Context, placeID string, amenityIDs []string) error
	Delete(ctx context.Context, id string) (bool, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}

type placeRepository struct {
	pool *pgxpool.Pool
}

func NewPlaceRepository(pool *pgxpool.Pool) PlaceRepository {
	return &placeRepository{pool: pool}
}

const placeColumns = `id, title, description, price, latitude, longitude, owner_id, created_at, updated_at`

func (r *placeRepository) Create(ctx context.Context, p *domain.Place, amenityIDs []string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO places (id, title, description, price, latitude, longitude, owner_id, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	if _, err := tx.Exec(ctx, q,
		p.ID, p.Title, p.Description, p.Price, p.Latitude, p.Longitude, p.OwnerID, p.CreatedAt, p.UpdatedAt,
	); err != nil {
		return err
	}

	const link = `INSERT INTO place_amenities (place_id, amenity_id) VALUES ($1,$2)`
	for _, aid := range amenityIDs {
		if _, err := tx.Exec(ctx, link, p.ID, aid); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *placeRepository) FindByID(ctx context.Context, id string) (*domain.Place, error) {
	const q = `SELECT ` + placeColumns + ` FROM places WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var p domain.Place
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.Latitude, &p.Longitude, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if p.Amenities, err = r.loadAmenities(ctx, p.ID); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *placeRepository) List(ctx context.Context, limit, offset int) ([]domain.Place, error) {
	const q = `SELECT ` + placeColumns + ` FROM places ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.queryPlaces(ctx, q, limit, offset)
}

func (r *placeRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Place, error) {
	const q = `SELECT ` + placeColumns + ` FROM places WHERE owner_id=$1 ORDER BY created_at DESC`
	return r.queryPlaces(ctx, q, ownerID)
}

func (r *placeRepository) ListByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]domain.Place, error) {
	const q = `SELECT ` + placeColumns + ` FROM places WHERE price >= $1 AND price <= $2 ORDER BY price`
	return r.queryPlaces(ctx, q, minPrice, maxPrice)
}

func (r *placeRepository) queryPlaces(ctx context.Context, q string, args ...any) ([]domain.Place, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	places := []domain.Place{}
	for rows.Next() {
		var p domain.Place
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.Price, &p.Latitude, &p.Longitude, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range places {
		if places[i].Amenities, err = r.loadAmenities(ctx, places[i].ID); err != nil {
			return nil, err
		}
	}
	return places, nil
}

func (r *placeRepository) loadAmenities(ctx context.Context, placeID string) ([]domain.Amenity, error) {
	const q = `
SELECT a.id, a.name, a.created_at, a.updated_at
FROM amenities a
JOIN place_amenities pa ON pa.amenity_id = a.id
WHERE pa.place_id=$1
ORDER BY a.name`
	rows, err := r.pool.Query(ctx, q, placeID)
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

func (r *placeRepository) Update(ctx context.Context, p *domain.Place) error {
	const q = `
UPDATE places
SET title=$2, description=$3, price=$4, latitude=$5, longitude=$6, updated_at=$7
WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q, p.ID, p.Title, p.Description, p.Price, p.Latitude, p.Longitude, p.UpdatedAt)
	return err
}

func (r *placeRepository) ReplaceAmenities(ctx context.Context, placeID string, amenityIDs []string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM place_amenities WHERE place_id=$1`, placeID); err != nil {
		return err
	}
	const link = `INSERT INTO place_amenities (place_id, amenity_id) VALUES ($1,$2)`
	for _, aid := range amenityIDs {
		if _, err := tx.Exec(ctx, link, placeID, aid); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Delete removes the place along with its reviews and amenity links.
func (r *placeRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM reviews WHERE place_id=$1`, id); err != nil {
		return false, err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM place_amenities WHERE place_id=$1`, id); err != nil {
		return false, err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM places WHERE id=$1`, id)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *placeRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	const q = `SELECT COUNT(*) FROM places WHERE owner_id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int
	err := r.pool.QueryRow(ctx, q, ownerID).Scan(&n)
	return n, err
}
