package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marryplan/marryplan-server/internal/domain"
)

// ScheduleRepository persists planning appointments, scoped to the owner.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.Schedule) error
	Update(ctx context.Context, schedule *domain.Schedule) error
	Delete(ctx context.Context, id, userID int64) error
	GetByID(ctx context.Context, id, userID int64) (*domain.Schedule, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Schedule, error)
}

type scheduleRepository struct {
	pool *pgxpool.Pool
}

// NewScheduleRepository returns a Postgres-backed implementation.
func NewScheduleRepository(pool *pgxpool.Pool) ScheduleRepository {
	return &scheduleRepository{pool: pool}
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *domain.Schedule) error {
	const query = `
        INSERT INTO schedules (user_id, title, location, memo, starts_at, ends_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		schedule.UserID,
		schedule.Title,
		schedule.Location,
		schedule.Memo,
		schedule.StartsAt,
		schedule.EndsAt,
	).Scan(&schedule.ID, &schedule.CreatedAt, &schedule.UpdatedAt)
}

func (r *scheduleRepository) Update(ctx context.Context, schedule *domain.Schedule) error {
	const query = `
        UPDATE schedules SET title=$1, location=$2, memo=$3, starts_at=$4, ends_at=$5, updated_at=NOW()
        WHERE id=$6 AND user_id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		schedule.Title,
		schedule.Location,
		schedule.Memo,
		schedule.StartsAt,
		schedule.EndsAt,
		schedule.ID,
		schedule.UserID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *scheduleRepository) Delete(ctx context.Context, id, userID int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM schedules WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *scheduleRepository) GetByID(ctx context.Context, id, userID int64) (*domain.Schedule, error) {
	const query = `
        SELECT id, user_id, title, location, memo, starts_at, ends_at, created_at, updated_at
        FROM schedules WHERE id=$1 AND user_id=$2`

	var schedule domain.Schedule
	if err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&schedule.ID,
		&schedule.UserID,
		&schedule.Title,
		&schedule.Location,
		&schedule.Memo,
		&schedule.StartsAt,
		&schedule.EndsAt,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Schedule, error) {
	const query = `
        SELECT id, user_id, title, location, memo, starts_at, ends_at, created_at, updated_at
        FROM schedules WHERE user_id=$1 ORDER BY starts_at`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []*domain.Schedule
	for rows.Next() {
		var schedule domain.Schedule
		if err := rows.Scan(
			&schedule.ID,
			&schedule.UserID,
			&schedule.Title,
			&schedule.Location,
			&schedule.Memo,
			&schedule.StartsAt,
			&schedule.EndsAt,
			&schedule.CreatedAt,
			&schedule.UpdatedAt,
		); err != nil {
			return nil, err
		}
		schedules = append(schedules, &schedule)
	}
	return schedules, rows.Err()
}
