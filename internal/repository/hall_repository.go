package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marryplan/marryplan-server/internal/domain"
)

// HallRepository persists wedding-hall visit records, scoped to the owner.
type HallRepository interface {
	Create(ctx context.Context, hall *domain.WeddingHall) error
	Update(ctx context.Context, hall *domain.WeddingHall) error
	Delete(ctx context.Context, id, userID int64) error
	GetByID(ctx context.Context, id, userID int64) (*domain.WeddingHall, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.WeddingHall, error)
}

type hallRepository struct {
	pool *pgxpool.Pool
}

// NewHallRepository returns a Postgres-backed implementation.
func NewHallRepository(pool *pgxpool.Pool) HallRepository {
	return &hallRepository{pool: pool}
}

func (r *hallRepository) Create(ctx context.Context, hall *domain.WeddingHall) error {
	const query = `
        INSERT INTO wedding_halls (user_id, name, address, price, capacity, rating, visited_at, memo)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		hall.UserID,
		hall.Name,
		hall.Address,
		hall.Price,
		hall.Capacity,
		hall.Rating,
		hall.VisitedAt,
		hall.Memo,
	).Scan(&hall.ID, &hall.CreatedAt, &hall.UpdatedAt)
}

func (r *hallRepository) Update(ctx context.Context, hall *domain.WeddingHall) error {
	const query = `
        UPDATE wedding_halls SET name=$1, address=$2, price=$3, capacity=$4, rating=$5, visited_at=$6, memo=$7, updated_at=NOW()
        WHERE id=$8 AND user_id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		hall.Name,
		hall.Address,
		hall.Price,
		hall.Capacity,
		hall.Rating,
		hall.VisitedAt,
		hall.Memo,
		hall.ID,
		hall.UserID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *hallRepository) Delete(ctx context.Context, id, userID int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM wedding_halls WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *hallRepository) GetByID(ctx context.Context, id, userID int64) (*domain.WeddingHall, error) {
	const query = `
        SELECT id, user_id, name, address, price, capacity, rating, visited_at, memo, created_at, updated_at
        FROM wedding_halls WHERE id=$1 AND user_id=$2`

	var hall domain.WeddingHall
	if err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&hall.ID,
		&hall.UserID,
		&hall.Name,
		&hall.Address,
		&hall.Price,
		&hall.Capacity,
		&hall.Rating,
		&hall.VisitedAt,
		&hall.Memo,
		&hall.CreatedAt,
		&hall.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &hall, nil
}

func (r *hallRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.WeddingHall, error) {
	const query = `
        SELECT id, user_id, name, address, price, capacity, rating, visited_at, memo, created_at, updated_at
        FROM wedding_halls WHERE user_id=$1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var halls []*domain.WeddingHall
	for rows.Next() {
		var hall domain.WeddingHall
		if err := rows.Scan(
			&hall.ID,
			&hall.UserID,
			&hall.Name,
			&hall.Address,
			&hall.Price,
			&hall.Capacity,
			&hall.Rating,
			&hall.VisitedAt,
			&hall.Memo,
			&hall.CreatedAt,
			&hall.UpdatedAt,
		); err != nil {
			return nil, err
		}
		halls = append(halls, &hall)
	}
	return halls, rows.Err()
}
