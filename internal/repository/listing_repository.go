package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marryplan/marryplan-server/internal/domain"
)

// ListingRepository persists saved real-estate candidates, scoped to the owner.
type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	Update(ctx context.Context, listing *domain.Listing) error
	Delete(ctx context.Context, id, userID int64) error
	GetByID(ctx context.Context, id, userID int64) (*domain.Listing, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Listing, error)
}

type listingRepository struct {
	pool *pgxpool.Pool
}

// NewListingRepository returns a Postgres-backed implementation.
func NewListingRepository(pool *pgxpool.Pool) ListingRepository {
	return &listingRepository{pool: pool}
}

func (r *listingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	const query = `
        INSERT INTO listings (user_id, title, address, deposit, monthly_rent, area_m2, memo)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		listing.UserID,
		listing.Title,
		listing.Address,
		listing.Deposit,
		listing.MonthlyRent,
		listing.AreaM2,
		listing.Memo,
	).Scan(&listing.ID, &listing.CreatedAt, &listing.UpdatedAt)
}

func (r *listingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	const query = `
        UPDATE listings SET title=$1, address=$2, deposit=$3, monthly_rent=$4, area_m2=$5, memo=$6, updated_at=NOW()
        WHERE id=$7 AND user_id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		listing.Title,
		listing.Address,
		listing.Deposit,
		listing.MonthlyRent,
		listing.AreaM2,
		listing.Memo,
		listing.ID,
		listing.UserID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *listingRepository) Delete(ctx context.Context, id, userID int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM listings WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *listingRepository) GetByID(ctx context.Context, id, userID int64) (*domain.Listing, error) {
	const query = `
        SELECT id, user_id, title, address, deposit, monthly_rent, area_m2, memo, created_at, updated_at
        FROM listings WHERE id=$1 AND user_id=$2`

	var listing domain.Listing
	if err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&listing.ID,
		&listing.UserID,
		&listing.Title,
		&listing.Address,
		&listing.Deposit,
		&listing.MonthlyRent,
		&listing.AreaM2,
		&listing.Memo,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Listing, error) {
	const query = `
        SELECT id, user_id, title, address, deposit, monthly_rent, area_m2, memo, created_at, updated_at
        FROM listings WHERE user_id=$1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []*domain.Listing
	for rows.Next() {
		var listing domain.Listing
		if err := rows.Scan(
			&listing.ID,
			&listing.UserID,
			&listing.Title,
			&listing.Address,
			&listing.Deposit,
			&listing.MonthlyRent,
			&listing.AreaM2,
			&listing.Memo,
			&listing.CreatedAt,
			&listing.UpdatedAt,
		); err != nil {
			return nil, err
		}
		listings = append(listings, &listing)
	}
	return listings, rows.Err()
}
