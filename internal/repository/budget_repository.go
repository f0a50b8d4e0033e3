package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marryplan/marryplan-server/internal/domain"
)

// BudgetRepository persists wedding-budget line items. Reads and writes are
// scoped to the owning user so a caller can never touch another user's rows.
type BudgetRepository interface {
	Create(ctx context.Context, budget *domain.Budget) error
	Update(ctx context.Context, budget *domain.Budget) error
	Delete(ctx context.Context, id, userID int64) error
	GetByID(ctx context.Context, id, userID int64) (*domain.Budget, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Budget, error)
}

type budgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository returns a Postgres-backed implementation.
func NewBudgetRepository(pool *pgxpool.Pool) BudgetRepository {
	return &budgetRepository{pool: pool}
}

func (r *budgetRepository) Create(ctx context.Context, budget *domain.Budget) error {
	const query = `
        INSERT INTO budgets (user_id, category, title, amount, memo)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		budget.UserID,
		budget.Category,
		budget.Title,
		budget.Amount,
		budget.Memo,
	).Scan(&budget.ID, &budget.CreatedAt, &budget.UpdatedAt)
}

func (r *budgetRepository) Update(ctx context.Context, budget *domain.Budget) error {
	const query = `
        UPDATE budgets SET category=$1, title=$2, amount=$3, memo=$4, updated_at=NOW()
        WHERE id=$5 AND user_id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		budget.Category,
		budget.Title,
		budget.Amount,
		budget.Memo,
		budget.ID,
		budget.UserID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *budgetRepository) Delete(ctx context.Context, id, userID int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *budgetRepository) GetByID(ctx context.Context, id, userID int64) (*domain.Budget, error) {
	const query = `
        SELECT id, user_id, category, title, amount, memo, created_at, updated_at
        FROM budgets WHERE id=$1 AND user_id=$2`

	var budget domain.Budget
	if err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&budget.ID,
		&budget.UserID,
		&budget.Category,
		&budget.Title,
		&budget.Amount,
		&budget.Memo,
		&budget.CreatedAt,
		&budget.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &budget, nil
}

func (r *budgetRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Budget, error) {
	const query = `
        SELECT id, user_id, category, title, amount, memo, created_at, updated_at
        FROM budgets WHERE user_id=$1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []*domain.Budget
	for rows.Next() {
		var budget domain.Budget
		if err := rows.Scan(
			&budget.ID,
			&budget.UserID,
			&budget.Category,
			&budget.Title,
			&budget.Amount,
			&budget.Memo,
			&budget.CreatedAt,
			&budget.UpdatedAt,
		); err != nil {
			return nil, err
		}
		budgets = append(budgets, &budget)
	}
	return budgets, rows.Err()
}
