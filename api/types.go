package api

import "github.com/junaidrashid-git/storefront/models"

// Wire shapes of the backend. Validation tags are checked right after decoding.

type productDTO struct {
	ID       string  `json:"_id" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category"`
	Cost     float64 `json:"cost" validate:"gte=0"`
	Rating   float64 `json:"rating" validate:"gte=0,lte=5"`
	Image    string  `json:"image"`
}

func (p productDTO) model() models.Product {
	return models.Product{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Cost:     p.Cost,
		Rating:   p.Rating,
		ImageURL: p.Image,
	}
}

// qty has no lower bound: the server owns quantity validation.
type cartEntryDTO struct {
	ProductID string `json:"productId" validate:"required"`
	Qty       int    `json:"qty"`
}

func (e cartEntryDTO) model() models.CartEntry {
	return models.CartEntry{ProductID: e.ProductID, Quantity: e.Qty}
}

type cartUpdateRequest struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success  bool   `json:"success"`
	Token    string `json:"token" validate:"required"`
	Username string `json:"username" validate:"required"`
}

// LoginResult is what a successful login hands back for the session.
type LoginResult struct {
	Token    string
	Username string
}

type failureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
