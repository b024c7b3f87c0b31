// Package cartview joins raw cart entries with the catalog for display.
package cartview

import "github.com/junaidrashid-git/storefront/models"

// GenerateItems returns one line item per entry whose product is in products, in entry order.
// Entries without a matching product are dropped, not reported.
func GenerateItems(entries []models.CartEntry, products []models.Product) []models.CartLineItem {
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		if _, seen := byID[p.ID]; !seen {
			byID[p.ID] = p
		}
	}

	items := make([]models.CartLineItem, 0, len(entries))
	for _, e := range entries {
		p, ok := byID[e.ProductID]
		if !ok {
			continue
		}
		items = append(items, models.CartLineItem{Product: p, Quantity: e.Quantity})
	}
	return items
}

// FindEntry returns the first entry for productID.
func FindEntry(entries []models.CartEntry, productID string) (models.CartEntry, bool) {
	for _, e := range entries {
		if e.ProductID == productID {
			return e, true
		}
	}
	return models.CartEntry{}, false
}

func Contains(entries []models.CartEntry, productID string) bool {
	_, ok := FindEntry(entries, productID)
	return ok
}

// Total is the cart value: sum of cost x quantity.
func Total(items []models.CartLineItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Product.Cost * float64(it.Quantity)
	}
	return total
}

// Count is the number of units in the cart.
func Count(items []models.CartLineItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
