package dto

import (
	"time"

	"github.com/marryplan/marryplan-server/internal/domain"
)

// BudgetRequest payload for creating or updating a budget line.
type BudgetRequest struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Amount   int64  `json:"amount"`
	Memo     string `json:"memo"`
}

// ScheduleRequest payload for creating or updating an appointment.
type ScheduleRequest struct {
	Title    string    `json:"title"`
	Location string    `json:"location"`
	Memo     string    `json:"memo"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

// ListingRequest payload for creating or updating a real-estate candidate.
type ListingRequest struct {
	Title       string  `json:"title"`
	Address     string  `json:"address"`
	Deposit     int64   `json:"deposit"`
	MonthlyRent int64   `json:"monthly_rent"`
	AreaM2      float64 `json:"area_m2"`
	Memo        string  `json:"memo"`
}

// HallRequest payload for creating or updating a wedding-hall record.
type HallRequest struct {
	Name      string     `json:"name"`
	Address   string     `json:"address"`
	Price     int64      `json:"price"`
	Capacity  int        `json:"capacity"`
	Rating    int        `json:"rating"`
	VisitedAt *time.Time `json:"visited_at"`
	Memo      string     `json:"memo"`
}

// BudgetResponse is the public view of a budget line.
type BudgetResponse struct {
	ID        int64     `json:"id"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Amount    int64     `json:"amount"`
	Memo      string    `json:"memo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBudgetResponse maps a domain budget.
func NewBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		ID:        b.ID,
		Category:  b.Category,
		Title:     b.Title,
		Amount:    b.Amount,
		Memo:      b.Memo,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// ScheduleResponse is the public view of an appointment.
type ScheduleResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Location  string    `json:"location"`
	Memo      string    `json:"memo"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewScheduleResponse maps a domain schedule.
func NewScheduleResponse(s *domain.Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:        s.ID,
		Title:     s.Title,
		Location:  s.Location,
		Memo:      s.Memo,
		StartsAt:  s.StartsAt,
		EndsAt:    s.EndsAt,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ListingResponse is the public view of a saved listing.
type ListingResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Address     string    `json:"address"`
	Deposit     int64     `json:"deposit"`
	MonthlyRent int64     `json:"monthly_rent"`
	AreaM2      float64   `json:"area_m2"`
	Memo        string    `json:"memo"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewListingResponse maps a domain listing.
func NewListingResponse(l *domain.Listing) ListingResponse {
	return ListingResponse{
		ID:          l.ID,
		Title:       l.Title,
		Address:     l.Address,
		Deposit:     l.Deposit,
		MonthlyRent: l.MonthlyRent,
		AreaM2:      l.AreaM2,
		Memo:        l.Memo,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// HallResponse is the public view of a wedding-hall record.
type HallResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Address   string     `json:"address"`
	Price     int64      `json:"price"`
	Capacity  int        `json:"capacity"`
	Rating    int        `json:"rating"`
	VisitedAt *time.Time `json:"visited_at"`
	Memo      string     `json:"memo"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewHallResponse maps a domain wedding hall.
func NewHallResponse(h *domain.WeddingHall) HallResponse {
	return HallResponse{
		ID:        h.ID,
		Name:      h.Name,
		Address:   h.Address,
		Price:     h.Price,
		Capacity:  h.Capacity,
		Rating:    h.Rating,
		VisitedAt: h.VisitedAt,
		Memo:      h.Memo,
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
}
