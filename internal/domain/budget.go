package domain

import "time"

// Budget is a single wedding-budget line item owned by a user.
type Budget struct {
	ID        int64
	UserID    int64
	Category  string
	Title     string
	Amount    int64
	Memo      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
