package storefront

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/junaidrashid-git/storefront/api"
	"github.com/junaidrashid-git/storefront/models"
	"github.com/junaidrashid-git/storefront/session"
)

type cartCall struct {
	token     string
	productID string
	qty       int
}

type fakeBackend struct {
	mu sync.Mutex

	products    []models.Product
	productsErr error
	searchFn    func(text string) ([]models.Product, error)
	cart        []models.CartEntry
	cartErr     error
	updateErr   error

	cartFetches int
	updates     []cartCall
}

func (f *fakeBackend) Products(ctx context.Context) ([]models.Product, error) {
	return f.products, f.productsErr
}

func (f *fakeBackend) Search(ctx context.Context, text string) ([]models.Product, error) {
	return f.searchFn(text)
}

func (f *fakeBackend) Cart(ctx context.Context, token string) ([]models.CartEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cartFetches++
	return f.cart, f.cartErr
}

func (f *fakeBackend) UpdateCart(ctx context.Context, token, productID string, qty int) ([]models.CartEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, cartCall{token, productID, qty})
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	replaced := false
	next := make([]models.CartEntry, 0, len(f.cart)+1)
	for _, e := range f.cart {
		if e.ProductID == productID {
			e.Quantity = qty
			replaced = true
		}
		next = append(next, e)
	}
	if !replaced {
		next = append(next, models.CartEntry{ProductID: productID, Quantity: qty})
	}
	f.cart = next
	return next, nil
}

var testCatalog = []models.Product{
	{ID: "b", Name: "Basketball", Category: "Sports", Cost: 100, Rating: 5},
	{ID: "c", Name: "Bonsai Plant", Category: "Home & Kitchen", Cost: 80, Rating: 4},
}

func loggedIn() context.Context {
	return session.WithContext(context.Background(), session.Session{Token: "jwt", Username: "crio"})
}

func TestMountAnonymousSkipsCart(t *testing.T) {
	backend := &fakeBackend{products: testCatalog}
	page := NewPage(backend)

	if !page.View(context.Background()).Loading {
		t.Error("Expected a fresh page to be loading")
	}

	page.Mount(context.Background())
	v := page.View(context.Background())

	if v.Loading || v.Error || v.Empty {
		t.Errorf("Unexpected state %+v", v)
	}
	if len(v.Products) != 2 {
		t.Errorf("Expected 2 products, got %d", len(v.Products))
	}
	if backend.cartFetches != 0 {
		t.Errorf("Expected no cart fetch without a token, got %d", backend.cartFetches)
	}
	if v.Cart != nil || v.Username != "" {
		t.Error("Expected no cart panel for an anonymous visitor")
	}
}

func TestMountLoggedInBuildsCart(t *testing.T) {
	backend := &fakeBackend{
		products: testCatalog,
		cart:     []models.CartEntry{{ProductID: "a", Quantity: 2}, {ProductID: "b", Quantity: 1}},
	}
	page := NewPage(backend)
	ctx := loggedIn()

	page.Mount(ctx)
	v := page.View(ctx)

	if v.Username != "crio" {
		t.Errorf("Expected username crio, got %q", v.Username)
	}
	if v.Cart == nil {
		t.Fatal("Expected a cart panel")
	}
	if len(v.Cart.Items) != 1 || v.Cart.Items[0].Product.ID != "b" || v.Cart.Items[0].Quantity != 1 {
		t.Errorf("Unexpected cart items %+v", v.Cart.Items)
	}
	if v.Cart.Total != 100 || v.Cart.Count != 1 {
		t.Errorf("Unexpected totals %+v", v.Cart)
	}
}

func TestMountCatalogFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"backend status", &api.StatusError{Endpoint: "/products", StatusCode: http.StatusInternalServerError}, "Internal Server Error"},
		{"no response", errors.New("connection refused"), MsgSomethingWrong},
		{"bad shape", &api.DecodeError{Endpoint: "/products", Err: errors.New("bad")}, MsgSomethingWrong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := NewPage(&fakeBackend{productsErr: tt.err})
			page.Mount(context.Background())
			v := page.View(context.Background())

			if !v.Error || v.Loading || len(v.Products) != 0 || !v.Empty {
				t.Errorf("Expected error state with no products, got %+v", v)
			}
			if len(v.Notices) != 1 || v.Notices[0].Variant != models.NoticeError || v.Notices[0].Message != tt.want {
				t.Errorf("Unexpected notices %+v", v.Notices)
			}
			if again := page.View(context.Background()); len(again.Notices) != 0 {
				t.Errorf("Expected notices to be handed over once, got %+v", again.Notices)
			}
		})
	}
}

func TestMountCartFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"bad request with message", &api.StatusError{StatusCode: http.StatusBadRequest, Message: "Cart is broken"}, "Cart is broken"},
		{"server error", &api.StatusError{StatusCode: http.StatusInternalServerError}, MsgCartFetch},
		{"network", errors.New("timeout"), MsgCartFetch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := NewPage(&fakeBackend{products: testCatalog, cartErr: tt.err})
			ctx := loggedIn()
			page.Mount(ctx)
			v := page.View(ctx)

			if v.Error {
				t.Error("Cart failure must not put the catalog in the error state")
			}
			if len(v.Notices) != 1 || v.Notices[0].Message != tt.want {
				t.Errorf("Unexpected notices %+v", v.Notices)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	backend := &fakeBackend{products: testCatalog}
	backend.searchFn = func(text string) ([]models.Product, error) {
		if text == "bonsai" {
			return testCatalog[1:], nil
		}
		return nil, &api.StatusError{StatusCode: http.StatusNotFound}
	}
	page := NewPage(backend)
	page.Mount(context.Background())

	page.Search(context.Background(), "bonsai")
	v := page.View(context.Background())
	if v.Error || len(v.Products) != 1 || v.Products[0].ID != "c" {
		t.Errorf("Unexpected view after search %+v", v)
	}

	page.Search(context.Background(), "nothing like this")
	v = page.View(context.Background())
	if !v.Error || !v.Empty || len(v.Products) != 0 {
		t.Errorf("Expected empty error state, got %+v", v)
	}
	if len(v.Notices) != 0 {
		t.Errorf("Search failures show the empty state, not a notice: %+v", v.Notices)
	}

	page.Search(context.Background(), "bonsai")
	if v = page.View(context.Background()); v.Error {
		t.Error("Expected a successful search to clear the error state")
	}
}

func TestSearchStaleResponseIsDiscarded(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	backend := &fakeBackend{}
	backend.searchFn = func(text string) ([]models.Product, error) {
		if text == "b" {
			close(entered)
			<-release
			return testCatalog, nil
		}
		return testCatalog[:1], nil
	}
	page := NewPage(backend)

	done := make(chan struct{})
	go func() {
		page.Search(context.Background(), "b")
		close(done)
	}()
	<-entered

	page.Search(context.Background(), "basket")
	close(release)
	<-done

	products := page.Products()
	if len(products) != 1 || products[0].ID != "b" {
		t.Errorf("Expected the newer search to win, got %+v", products)
	}
}

func TestAddToCart(t *testing.T) {
	backend := &fakeBackend{products: testCatalog, cart: []models.CartEntry{{ProductID: "b", Quantity: 1}}}
	page := NewPage(backend)
	ctx := loggedIn()
	page.Mount(ctx)

	page.AddToCart(ctx, "b", 1)
	v := page.View(ctx)
	if len(backend.updates) != 0 {
		t.Errorf("Expected no POST for a resident item, got %+v", backend.updates)
	}
	if len(v.Notices) != 1 || v.Notices[0].Variant != models.NoticeWarning || v.Notices[0].Message != MsgAlreadyInCart {
		t.Errorf("Unexpected notices %+v", v.Notices)
	}

	page.AddToCart(ctx, "c", 1)
	v = page.View(ctx)
	if len(backend.updates) != 1 || backend.updates[0] != (cartCall{"jwt", "c", 1}) {
		t.Errorf("Unexpected updates %+v", backend.updates)
	}
	if v.Cart == nil || len(v.Cart.Items) != 2 || v.Cart.Items[1].Product.ID != "c" {
		t.Errorf("Expected c appended to the cart, got %+v", v.Cart)
	}
}

func TestAddToCartAnonymous(t *testing.T) {
	backend := &fakeBackend{products: testCatalog}
	page := NewPage(backend)
	page.Mount(context.Background())

	page.AddToCart(context.Background(), "b", 1)
	v := page.View(context.Background())
	if len(backend.updates) != 0 {
		t.Errorf("Expected no request without a token, got %+v", backend.updates)
	}
	if len(v.Notices) != 1 || v.Notices[0].Variant != models.NoticeWarning || v.Notices[0].Message != MsgLoginToAdd {
		t.Errorf("Unexpected notices %+v", v.Notices)
	}
}

func TestAddToCartBackendFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"product missing", &api.StatusError{StatusCode: http.StatusNotFound, Message: "Product doesn't exist"}, "Product doesn't exist"},
		{"server error", &api.StatusError{StatusCode: http.StatusInternalServerError}, MsgCartUpdate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := NewPage(&fakeBackend{products: testCatalog, updateErr: tt.err})
			ctx := loggedIn()
			page.Mount(ctx)
			page.AddToCart(ctx, "zzz", 1)

			v := page.View(ctx)
			if len(v.Notices) != 1 || v.Notices[0].Variant != models.NoticeError || v.Notices[0].Message != tt.want {
				t.Errorf("Unexpected notices %+v", v.Notices)
			}
		})
	}
}

func TestChangeQuantity(t *testing.T) {
	backend := &fakeBackend{products: testCatalog, cart: []models.CartEntry{{ProductID: "b", Quantity: 1}}}
	page := NewPage(backend)
	ctx := loggedIn()
	page.Mount(ctx)

	page.ChangeQuantity(ctx, "b", +1)
	page.ChangeQuantity(ctx, "b", -1)
	page.ChangeQuantity(ctx, "b", -1)
	page.ChangeQuantity(ctx, "b", -1)
	page.ChangeQuantity(ctx, "not-in-cart", +1)

	want := []int{2, 1, 0, -1}
	if len(backend.updates) != len(want) {
		t.Fatalf("Expected %d updates, got %+v", len(want), backend.updates)
	}
	for i, qty := range want {
		if backend.updates[i].qty != qty || backend.updates[i].productID != "b" {
			t.Errorf("Update %d: expected qty %d, got %+v", i, qty, backend.updates[i])
		}
	}
}

func TestChangeQuantityAnonymous(t *testing.T) {
	backend := &fakeBackend{products: testCatalog}
	page := NewPage(backend)
	page.ChangeQuantity(context.Background(), "b", +1)

	v := page.View(context.Background())
	if len(backend.updates) != 0 {
		t.Error("Expected no request without a token")
	}
	if len(v.Notices) != 1 || v.Notices[0].Message != MsgLoginToUpdate {
		t.Errorf("Unexpected notices %+v", v.Notices)
	}
}

func TestSearchCancelledKeepsProducts(t *testing.T) {
	backend := &fakeBackend{products: testCatalog}
	backend.searchFn = func(text string) ([]models.Product, error) {
		return nil, fmt.Errorf("GET /products/search/: %w", context.Canceled)
	}
	page := NewPage(backend)
	page.Mount(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	page.Search(ctx, "bon")

	v := page.View(context.Background())
	if v.Error || v.Empty || len(v.Products) != 2 {
		t.Errorf("Expected a cancelled search to leave the catalog alone, got %+v", v)
	}
	if len(v.Notices) != 0 {
		t.Errorf("Expected no notices, got %+v", v.Notices)
	}
}

func TestMountCancelledIsRetried(t *testing.T) {
	backend := &fakeBackend{productsErr: fmt.Errorf("GET /products: %w", context.Canceled)}
	page := NewPage(backend)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	page.Mount(ctx)

	v := page.View(context.Background())
	if v.Error || len(v.Notices) != 0 {
		t.Errorf("Expected a cancelled mount to show no failure, got %+v", v)
	}

	backend.products, backend.productsErr = testCatalog, nil
	page.Mount(context.Background())
	if got := page.Products(); len(got) != 2 {
		t.Errorf("Expected the next mount to load the catalog, got %+v", got)
	}
}

type gatedCartBackend struct {
	*fakeBackend
	entered chan struct{}
	release chan struct{}
}

func (g *gatedCartBackend) Cart(ctx context.Context, token string) ([]models.CartEntry, error) {
	g.entered <- struct{}{}
	<-g.release
	return g.fakeBackend.Cart(ctx, token)
}

func TestConcurrentMountWaitsForCart(t *testing.T) {
	backend := &gatedCartBackend{
		fakeBackend: &fakeBackend{products: testCatalog, cart: []models.CartEntry{{ProductID: "b", Quantity: 1}}},
		entered:     make(chan struct{}, 2),
		release:     make(chan struct{}),
	}
	page := NewPage(backend)
	ctx := loggedIn()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		page.Mount(ctx)
	}()
	<-backend.entered

	go func() {
		defer wg.Done()
		page.Mount(ctx)
		page.AddToCart(ctx, "b", 1)
	}()
	time.Sleep(20 * time.Millisecond)
	close(backend.release)
	wg.Wait()

	if backend.cartFetches != 1 {
		t.Errorf("Expected a single cart fetch, got %d", backend.cartFetches)
	}
	if len(backend.updates) != 0 {
		t.Errorf("Expected the duplicate check to see the loaded cart, got updates %+v", backend.updates)
	}
	v := page.View(ctx)
	if len(v.Notices) != 1 || v.Notices[0].Message != MsgAlreadyInCart {
		t.Errorf("Expected the already-in-cart warning, got %+v", v.Notices)
	}
}
