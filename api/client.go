// Package api talks to the storefront backend: catalog, search, cart and auth endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/junaidrashid-git/storefront/models"
)

const maxBodyBytes = 10 << 20

// Client is safe for concurrent use.
type Client struct {
	endpoint string
	http     *http.Client
	timeout  time.Duration
	validate *validator.Validate
}

type Option func(*Client)

// WithHTTPClient replaces the default client (10s timeout). A nil client keeps the default.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout applies to a copy of the HTTP client, so a shared client passed through
// WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 10 * time.Second},
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

// Products fetches the whole catalog.
// GET /products
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var dtos []productDTO
	if err := c.do(ctx, http.MethodGet, "/products", "", nil, &dtos); err != nil {
		return nil, err
	}
	return c.products("/products", dtos)
}

// Search returns the products matching text. The result may be empty.
// GET /products/search?value=<text>
func (c *Client) Search(ctx context.Context, text string) ([]models.Product, error) {
	path := "/products/search?value=" + url.QueryEscape(text)
	var dtos []productDTO
	if err := c.do(ctx, http.MethodGet, path, "", nil, &dtos); err != nil {
		return nil, err
	}
	return c.products("/products/search", dtos)
}

// Cart fetches the entries of the cart owned by token.
// GET /cart
func (c *Client) Cart(ctx context.Context, token string) ([]models.CartEntry, error) {
	var dtos []cartEntryDTO
	if err := c.do(ctx, http.MethodGet, "/cart", token, nil, &dtos); err != nil {
		return nil, err
	}
	return c.entries("/cart", dtos)
}

// UpdateCart sets the quantity of productID and returns the resulting cart.
// POST /cart
func (c *Client) UpdateCart(ctx context.Context, token, productID string, qty int) ([]models.CartEntry, error) {
	body := cartUpdateRequest{ProductID: productID, Qty: qty}
	var dtos []cartEntryDTO
	if err := c.do(ctx, http.MethodPost, "/cart", token, body, &dtos); err != nil {
		return nil, err
	}
	return c.entries("/cart", dtos)
}

// Login exchanges credentials for a bearer token.
// POST /auth/login
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	var res loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", credentialsRequest{username, password}, &res); err != nil {
		return LoginResult{}, err
	}
	if err := c.validate.Struct(res); err != nil {
		return LoginResult{}, &DecodeError{Endpoint: "/auth/login", Err: err}
	}
	return LoginResult{Token: res.Token, Username: res.Username}, nil
}

// Register creates a backend account. The response body is not used.
// POST /auth/register
func (c *Client) Register(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, "/auth/register", "", credentialsRequest{username, password}, nil)
}

func (c *Client) products(endpoint string, dtos []productDTO) ([]models.Product, error) {
	out := make([]models.Product, 0, len(dtos))
	for i, d := range dtos {
		if err := c.validate.Struct(d); err != nil {
			return nil, &DecodeError{Endpoint: endpoint, Err: fmt.Errorf("product %d: %w", i, err)}
		}
		out = append(out, d.model())
	}
	return out, nil
}

func (c *Client) entries(endpoint string, dtos []cartEntryDTO) ([]models.CartEntry, error) {
	out := make([]models.CartEntry, 0, len(dtos))
	for i, d := range dtos {
		if err := c.validate.Struct(d); err != nil {
			return nil, &DecodeError{Endpoint: endpoint, Err: fmt.Errorf("cart entry %d: %w", i, err)}
		}
		out = append(out, d.model())
	}
	return out, nil
}

// do sends one request and decodes a 2xx JSON body into out (skipped when out is nil).
func (c *Client) do(ctx context.Context, method, path, token string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	endpoint := req.URL.Path
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure failureResponse
		_ = json.Unmarshal(raw, &failure)
		return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Message: failure.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Endpoint: endpoint, Err: err}
	}
	return nil
}
