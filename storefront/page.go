// Package storefront holds the per-visitor products page: catalog, search results, cart entries
// and the notifications produced while talking to the backend.
package storefront

import (
	"context"
	"errors"
	"sync"

	"github.com/junaidrashid-git/storefront/api"
	"github.com/junaidrashid-git/storefront/cartview"
	"github.com/junaidrashid-git/storefront/logger"
	"github.com/junaidrashid-git/storefront/models"
	"github.com/junaidrashid-git/storefront/session"
)

// User-facing notice texts.
const (
	MsgSomethingWrong = "Something went wrong!"
	MsgCartFetch      = "Could not fetch cart details. Check that the backend is running, reachable and returns valid JSON."
	MsgLoginToAdd     = "Login to add an item to the Cart"
	MsgAlreadyInCart  = "Item already in cart. Use the cart sidebar to update quantity or remove item."
	MsgCartUpdate     = "Could not update the cart. Check that the backend is running, reachable and returns valid JSON."
	MsgLoginToUpdate  = "Login to update the Cart"
)

var log = logger.New("storefront")

// Backend is the part of the REST API the page calls.
type Backend interface {
	Products(ctx context.Context) ([]models.Product, error)
	Search(ctx context.Context, text string) ([]models.Product, error)
	Cart(ctx context.Context, token string) ([]models.CartEntry, error)
	UpdateCart(ctx context.Context, token, productID string, qty int) ([]models.CartEntry, error)
}

var _ Backend = (*api.Client)(nil)

// View is a render-ready snapshot of the page.
type View struct {
	Loading  bool             `json:"loading"`
	Error    bool             `json:"error"`
	Empty    bool             `json:"empty"`
	Products []models.Product `json:"products"`
	Username string           `json:"username,omitempty"`
	Cart     *CartPanel       `json:"cart,omitempty"`
	Notices  []models.Notice  `json:"notices"`
}

// CartPanel is only rendered for logged-in visitors.
type CartPanel struct {
	Items []models.CartLineItem `json:"items"`
	Total float64               `json:"total"`
	Count int                   `json:"count"`
}

// Page is the state owned by one visitor's products page. The lock is never held across
// a backend call; overlapping catalog/search responses resolve by request generation.
type Page struct {
	backend Backend

	mu       sync.Mutex
	mounted  bool
	mounting chan struct{} // closed when the mount in flight finishes
	loading  bool
	failed   bool
	products []models.Product
	entries  []models.CartEntry
	notices  []models.Notice
	gen      uint64
}

func NewPage(backend Backend) *Page {
	return &Page{backend: backend, loading: true, products: []models.Product{}}
}

// Mount loads the catalog and, for a logged-in session, the cart. A page mounts once:
// concurrent callers wait for the mount in flight, and a mount cut short by a cancelled
// request is redone by the next caller.
func (p *Page) Mount(ctx context.Context) {
	for {
		p.mu.Lock()
		if p.mounted {
			p.mu.Unlock()
			return
		}
		if inflight := p.mounting; inflight != nil {
			p.mu.Unlock()
			select {
			case <-inflight:
				continue
			case <-ctx.Done():
				return
			}
		}
		done := make(chan struct{})
		p.mounting = done
		p.mu.Unlock()

		p.loadCatalog(ctx)
		p.fetchCart(ctx)

		p.mu.Lock()
		p.mounting = nil
		p.mounted = ctx.Err() == nil
		p.mu.Unlock()
		close(done)
		return
	}
}

func (p *Page) loadCatalog(ctx context.Context) {
	gen := p.begin()
	products, err := p.backend.Products(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if canceled(err) {
		log.Info("catalog request cancelled, keeping the current products")
		return
	}
	if gen != p.gen {
		log.Info("discarding stale catalog response")
		return
	}
	p.loading = false
	if err != nil {
		log.Error("catalog fetch failed", err)
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) {
			p.notify(models.NoticeError, statusErr.Status())
		} else {
			p.notify(models.NoticeError, MsgSomethingWrong)
		}
		p.failed = true
		p.products = []models.Product{}
		return
	}
	p.failed = false
	p.products = products
}

// Search replaces the product list with the results for text. Any failure, including the
// backend's 404 for "no match", shows the empty state.
func (p *Page) Search(ctx context.Context, text string) {
	gen := p.begin()
	products, err := p.backend.Search(ctx, text)

	p.mu.Lock()
	defer p.mu.Unlock()
	if canceled(err) {
		log.Info("search %q cancelled, keeping the current products", text)
		return
	}
	if gen != p.gen {
		log.Info("discarding stale search response for %q", text)
		return
	}
	p.loading = false
	if err != nil {
		log.Warning("search %q failed: %v", text, err)
		p.failed = true
		p.products = []models.Product{}
		return
	}
	p.failed = false
	p.products = products
}

// begin claims the product list for a new request.
func (p *Page) begin() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	return p.gen
}

func (p *Page) fetchCart(ctx context.Context) {
	s := session.FromContext(ctx)
	if !s.Authenticated() {
		return
	}

	entries, err := p.backend.Cart(ctx, s.Token)

	p.mu.Lock()
	defer p.mu.Unlock()
	if canceled(err) {
		return
	}
	if err != nil {
		log.Error("cart fetch failed", err)
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == 400 && statusErr.Message != "" {
			p.notify(models.NoticeError, statusErr.Message)
		} else {
			p.notify(models.NoticeError, MsgCartFetch)
		}
		return
	}
	p.entries = entries
}

// AddToCart adds a product that is not in the cart yet. Adding a product twice is refused
// with a warning; quantities of resident items change through ChangeQuantity.
func (p *Page) AddToCart(ctx context.Context, productID string, qty int) {
	s := session.FromContext(ctx)

	p.mu.Lock()
	if !s.Authenticated() {
		p.notify(models.NoticeWarning, MsgLoginToAdd)
		p.mu.Unlock()
		return
	}
	if cartview.Contains(p.entries, productID) {
		p.notify(models.NoticeWarning, MsgAlreadyInCart)
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	p.updateCart(ctx, s.Token, productID, qty)
}

// ChangeQuantity sends the resident entry's quantity plus delta. Nothing stops it from
// reaching zero or below; the backend decides what that means.
func (p *Page) ChangeQuantity(ctx context.Context, productID string, delta int) {
	s := session.FromContext(ctx)

	p.mu.Lock()
	if !s.Authenticated() {
		p.notify(models.NoticeWarning, MsgLoginToUpdate)
		p.mu.Unlock()
		return
	}
	entry, ok := cartview.FindEntry(p.entries, productID)
	p.mu.Unlock()
	if !ok {
		return
	}

	p.updateCart(ctx, s.Token, productID, entry.Quantity+delta)
}

func (p *Page) updateCart(ctx context.Context, token, productID string, qty int) {
	entries, err := p.backend.UpdateCart(ctx, token, productID, qty)

	p.mu.Lock()
	defer p.mu.Unlock()
	if canceled(err) {
		log.Info("cart update for %s cancelled", productID)
		return
	}
	if err != nil {
		log.Error("cart update failed", err)
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == 404 && statusErr.Message != "" {
			p.notify(models.NoticeError, statusErr.Message)
		} else {
			p.notify(models.NoticeError, MsgCartUpdate)
		}
		return
	}
	p.entries = entries
}

// canceled reports a request abandoned by the caller. The backend said nothing, so the
// page state stays as it was.
func canceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

func (p *Page) notify(variant models.NoticeVariant, msg string) {
	p.notices = append(p.notices, models.Notice{Variant: variant, Message: msg})
}

// Products returns the product list currently shown.
func (p *Page) Products() []models.Product {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.Product(nil), p.products...)
}

// Cart builds the cart panel from the current entries and product list.
func (p *Page) Cart() CartPanel {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cartPanel()
}

func (p *Page) cartPanel() CartPanel {
	items := cartview.GenerateItems(p.entries, p.products)
	return CartPanel{Items: items, Total: cartview.Total(items), Count: cartview.Count(items)}
}

// View snapshots the page for rendering and hands over the pending notices.
func (p *Page) View(ctx context.Context) View {
	s := session.FromContext(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	v := View{
		Loading:  p.loading,
		Error:    p.failed,
		Empty:    !p.loading && len(p.products) == 0,
		Products: append([]models.Product{}, p.products...),
		Notices:  p.notices,
	}
	if v.Notices == nil {
		v.Notices = []models.Notice{}
	}
	p.notices = nil

	if s.Authenticated() {
		v.Username = s.Username
		panel := p.cartPanel()
		v.Cart = &panel
	}
	return v
}
