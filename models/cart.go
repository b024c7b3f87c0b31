package models

// CartEntry is one (product, quantity) pair of the user's cart as stored by the backend.
// ProductID is unique within a cart; the backend enforces that, not us.
type CartEntry struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"qty"`
}

// CartLineItem joins a CartEntry with its Product for display. Always rebuilt, never persisted.
type CartLineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}
