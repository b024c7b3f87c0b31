package cartview

import (
	"reflect"
	"testing"

	"github.com/junaidrashid-git/storefront/models"
)

var catalog = []models.Product{
	{ID: "b", Name: "Basketball", Category: "Sports", Cost: 100, Rating: 5},
	{ID: "c", Name: "Tan Leatherette Weekender Duffle", Category: "Fashion", Cost: 150, Rating: 4},
	{ID: "d", Name: "YONEX Smash Badminton Racquet", Category: "Sports", Cost: 30, Rating: 5},
}

func TestGenerateItems(t *testing.T) {
	tests := []struct {
		name     string
		entries  []models.CartEntry
		products []models.Product
		want     []models.CartLineItem
	}{
		{
			name:     "unknown product is dropped",
			entries:  []models.CartEntry{{ProductID: "a", Quantity: 2}, {ProductID: "b", Quantity: 1}},
			products: catalog,
			want:     []models.CartLineItem{{Product: catalog[0], Quantity: 1}},
		},
		{
			name:     "cart order wins over catalog order",
			entries:  []models.CartEntry{{ProductID: "d", Quantity: 3}, {ProductID: "x", Quantity: 1}, {ProductID: "b", Quantity: 7}},
			products: catalog,
			want:     []models.CartLineItem{{Product: catalog[2], Quantity: 3}, {Product: catalog[0], Quantity: 7}},
		},
		{
			name:     "quantity copied verbatim even when not positive",
			entries:  []models.CartEntry{{ProductID: "c", Quantity: 0}, {ProductID: "b", Quantity: -2}},
			products: catalog,
			want:     []models.CartLineItem{{Product: catalog[1], Quantity: 0}, {Product: catalog[0], Quantity: -2}},
		},
		{
			name:     "empty catalog",
			entries:  []models.CartEntry{{ProductID: "b", Quantity: 1}},
			products: nil,
			want:     []models.CartLineItem{},
		},
		{
			name:     "empty cart",
			entries:  nil,
			products: catalog,
			want:     []models.CartLineItem{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateItems(tt.entries, tt.products)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestGenerateItemsIsPure(t *testing.T) {
	entries := []models.CartEntry{{ProductID: "c", Quantity: 1}, {ProductID: "b", Quantity: 2}}
	products := append([]models.Product(nil), catalog...)

	first := GenerateItems(entries, products)
	second := GenerateItems(entries, products)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical output, got %+v and %+v", first, second)
	}
	if !reflect.DeepEqual(products, catalog) {
		t.Error("Products were mutated")
	}
	if entries[0].ProductID != "c" || entries[1].Quantity != 2 {
		t.Error("Entries were mutated")
	}
}

func TestFindEntry(t *testing.T) {
	entries := []models.CartEntry{{ProductID: "a", Quantity: 2}, {ProductID: "b", Quantity: 1}}

	if e, ok := FindEntry(entries, "b"); !ok || e.Quantity != 1 {
		t.Errorf("Expected entry b with qty 1, got %+v ok=%t", e, ok)
	}
	if Contains(entries, "zzz") {
		t.Error("Expected zzz to be absent")
	}
}

func TestTotalAndCount(t *testing.T) {
	items := []models.CartLineItem{{Product: catalog[0], Quantity: 2}, {Product: catalog[2], Quantity: 3}}
	if got := Total(items); got != 290 {
		t.Errorf("Expected total 290, got %v", got)
	}
	if got := Count(items); got != 5 {
		t.Errorf("Expected count 5, got %d", got)
	}
	if Total(nil) != 0 || Count(nil) != 0 {
		t.Error("Expected zero for an empty cart")
	}
}
