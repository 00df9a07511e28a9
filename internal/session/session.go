package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"myfuture/internal/api"
	"myfuture/pkg/types"

	"github.com/sirupsen/logrus"
)

// Store is the one shared session object for the application: the
// current user snapshot plus the login/refresh/logout transitions. It
// replaces the SPA's ambient context with an explicitly injected store;
// views subscribe for change notifications instead of polling.
//
// All writes to the user snapshot go through a single mutex so no
// caller ever observes a partial update.
type Store struct {
	client *api.Client
	tokens *api.TokenStore
	logger logrus.FieldLogger

	mu        sync.Mutex
	user      *types.User
	subs      map[int]func(*types.User)
	nextSubID int
}

func New(client *api.Client, tokens *api.TokenStore, logger logrus.FieldLogger) *Store {
	return &Store{
		client: client,
		tokens: tokens,
		logger: logger,
		subs:   make(map[int]func(*types.User)),
	}
}

// User returns the current snapshot, nil while anonymous. The returned
// value is a copy; mutating it does not affect the store.
func (s *Store) User() *types.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyUser(s.user)
}

// Subscribe registers fn to run on every user change and returns an
// unsubscribe func. The callback receives its own copy of the snapshot.
func (s *Store) Subscribe(fn func(*types.User)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// RefreshUser fetches /user/@me and replaces the stored snapshot. On
// any failure the snapshot is left untouched and the error is returned
// for the caller to interpret (redirect to login, retry, ...).
func (s *Store) RefreshUser(ctx context.Context) (*types.User, error) {
	resp, err := s.client.Authenticated(ctx, http.MethodGet, "/user/@me", nil)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		User *types.User `json:"user"`
	}
	if err := api.DecodeJSON(resp, &envelope); err != nil {
		return nil, fmt.Errorf("refresh user: %w", err)
	}

	if envelope.User == nil {
		return nil, fmt.Errorf("refresh user: response missing user field")
	}

	s.setUser(envelope.User)

	return copyUser(envelope.User), nil
}

type tokenEnvelope struct {
	Token string `json:"token"`
}

// Login exchanges credentials for tokens, persists them, then refreshes
// the user snapshot so subscribers see the authenticated state.
func (s *Store) Login(ctx context.Context, email, password string) error {
	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return fmt.Errorf("marshal login payload: %w", err)
	}

	resp, err := s.client.Public(ctx, http.MethodPost, "/user/login", bytes.NewReader(body))
	if err != nil {
		return err
	}

	var envelope struct {
		BearerToken  tokenEnvelope `json:"bearerToken"`
		RefreshToken tokenEnvelope `json:"refreshToken"`
	}
	if err := api.DecodeJSON(resp, &envelope); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	if envelope.BearerToken.Token == "" {
		return fmt.Errorf("login: response missing bearer token")
	}

	err = s.tokens.Save(api.Session{
		Token:        envelope.BearerToken.Token,
		RefreshToken: envelope.RefreshToken.Token,
	})
	if err != nil {
		return err
	}

	if _, err := s.RefreshUser(ctx); err != nil {
		return fmt.Errorf("fetch user after login: %w", err)
	}

	s.logger.WithField("email", email).Info("logged in")

	return nil
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Email       string            `json:"email"`
	Password    string            `json:"password"`
	Name        string            `json:"name"`
	PhoneNumber string            `json:"phoneNumber,omitempty"`
	Birthdate   string            `json:"birthdate,omitempty"`
	Address     string            `json:"address,omitempty"`
	AccountType types.AccountType `json:"accountType"`
}

func (s *Store) Register(ctx context.Context, input RegisterInput) error {
	if !input.AccountType.Valid() {
		return fmt.Errorf("unsupported account type %q", input.AccountType)
	}

	body, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("marshal register payload: %w", err)
	}

	resp, err := s.client.Public(ctx, http.MethodPost, "/auth/register", bytes.NewReader(body))
	if err != nil {
		return err
	}

	if err := api.DecodeJSON(resp, nil); err != nil {
		return fmt.Errorf("register: %w", err)
	}

	return nil
}

// Logout clears the stored tokens and drops the user snapshot.
func (s *Store) Logout() error {
	if err := s.tokens.Clear(); err != nil {
		return err
	}

	s.setUser(nil)
	s.logger.Info("logged out")

	return nil
}

func (s *Store) setUser(u *types.User) {
	s.mu.Lock()
	s.user = u

	subs := make([]func(*types.User), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	// Notify outside the lock so a subscriber may call back into the
	// store without deadlocking.
	for _, fn := range subs {
		fn(copyUser(u))
	}
}

func copyUser(u *types.User) *types.User {
	if u == nil {
		return nil
	}

	clone := *u
	clone.Projects = append([]string(nil), u.Projects...)
	return &clone
}
