package domain

import "time"

// WeddingHall is a visited or shortlisted venue record.
type WeddingHall struct {
	ID        int64
	UserID    int64
	Name      string
	Address   string
	Price     int64
	Capacity  int
	Rating    int
	VisitedAt *time.Time
	Memo      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
