package domain

import "time"

// Listing is a saved real-estate candidate for the couple's first home.
type Listing struct {
	ID          int64
	UserID      int64
	Title       string
	Address     string
	Deposit     int64
	MonthlyRent int64
	AreaM2      float64
	Memo        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
