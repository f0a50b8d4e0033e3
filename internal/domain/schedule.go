package domain

import "time"

// Schedule is a planning appointment (fitting, venue visit, paperwork, ...).
type Schedule struct {
	ID        int64
	UserID    int64
	Title     string
	Location  string
	Memo      string
	StartsAt  time.Time
	EndsAt    time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
