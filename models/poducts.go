package models

// Product is a catalog entry as served by the backend. The client never mutates it.
type Product struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Cost     float64 `json:"cost"`
	Rating   float64 `json:"rating"` // out of five
	ImageURL string  `json:"image"`
}
