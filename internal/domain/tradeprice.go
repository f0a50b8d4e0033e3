package domain

// AptTrade is one settled apartment transaction returned by the public
// trade-price API. Amounts are in ten-thousand KRW, as published.
type AptTrade struct {
	ApartmentName string  `json:"apartment_name"`
	Dong          string  `json:"dong"`
	AreaM2        float64 `json:"area_m2"`
	Floor         int     `json:"floor"`
	DealYear      int     `json:"deal_year"`
	DealMonth     int     `json:"deal_month"`
	DealDay       int     `json:"deal_day"`
	Amount        int64   `json:"amount"`
}
