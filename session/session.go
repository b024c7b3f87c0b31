// Package session is the client's belief about who is logged in, kept in the visitor's local storage.
package session

import (
	"context"
	"errors"

	"github.com/junaidrashid-git/storefront/storage"
)

// Local storage keys.
const (
	TokenKey    = "token"
	UsernameKey = "username"
)

// Session is either anonymous (zero value) or carries both a token and a username.
type Session struct {
	Token    string `json:"-"`
	Username string `json:"username,omitempty"`
}

func (s Session) Authenticated() bool {
	return s.Token != "" && s.Username != ""
}

type contextKey string

const sessionContextKey contextKey = "session"

// WithContext attaches s to ctx.
func WithContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

// FromContext returns the session on ctx, anonymous when none was attached.
func FromContext(ctx context.Context) Session {
	s, _ := ctx.Value(sessionContextKey).(Session)
	return s
}

// Store is the subset of local storage the session needs.
type Store interface {
	Items(ctx context.Context, visitorID string) (map[string]string, error)
	SetItem(ctx context.Context, visitorID, key, value string) error
	Clear(ctx context.Context, visitorID string) error
}

// Manager is the only place that reads or writes session keys.
type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Load reads the visitor's session. A half-written session (only one key) reads as anonymous.
func (m *Manager) Load(ctx context.Context, visitorID string) (Session, error) {
	items, err := m.store.Items(ctx, visitorID)
	if err != nil {
		return Session{}, err
	}
	s := Session{Token: items[TokenKey], Username: items[UsernameKey]}
	if !s.Authenticated() {
		return Session{}, nil
	}
	return s, nil
}

var ErrIncomplete = errors.New("session: token and username are both required")

func (m *Manager) Save(ctx context.Context, visitorID string, s Session) error {
	if !s.Authenticated() {
		return ErrIncomplete
	}
	if err := m.store.SetItem(ctx, visitorID, TokenKey, s.Token); err != nil {
		return err
	}
	return m.store.SetItem(ctx, visitorID, UsernameKey, s.Username)
}

// Clear wipes all of the visitor's local storage, not just the session keys.
func (m *Manager) Clear(ctx context.Context, visitorID string) error {
	return m.store.Clear(ctx, visitorID)
}

var _ Store = (*storage.LocalStorage)(nil)
