package session

import (
	"context"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"myfuture/internal/api"
	"myfuture/internal/mockapi"
	"myfuture/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestBackend(t *testing.T) *httptest.Server {
	t.Helper()

	store := mockapi.NewStore()
	require.NoError(t, store.SeedDefaults(0, 0))

	svc, err := mockapi.New(&types.Config{ReadTimeoutSec: 5, WriteTimeoutSec: 5}, testLogger(), store)
	require.NoError(t, err)

	ts := httptest.NewServer(svc.Handler())
	t.Cleanup(ts.Close)

	return ts
}

func newTestStore(t *testing.T, baseURL string) *Store {
	t.Helper()

	config := &types.Config{
		APIBaseURL:        baseURL,
		RequestTimeoutSec: 5,
		TokenPath:         filepath.Join(t.TempDir(), "session"),
	}

	tokens, err := api.NewTokenStore(config)
	require.NoError(t, err)

	return New(api.New(config, tokens, testLogger()), tokens, testLogger())
}

func TestRefreshUserWithoutTokenFailsFast(t *testing.T) {
	store := newTestStore(t, "http://127.0.0.1:1") // must never be dialed

	_, err := store.RefreshUser(context.Background())
	require.ErrorIs(t, err, types.ErrUnauthenticated)
	assert.Nil(t, store.User())
}

func TestLoginRefreshLogout(t *testing.T) {
	ts := newTestBackend(t)
	store := newTestStore(t, ts.URL)

	var notifications []*types.User
	unsubscribe := store.Subscribe(func(u *types.User) {
		notifications = append(notifications, u)
	})
	defer unsubscribe()

	require.NoError(t, store.Login(context.Background(), "ava.williams@example.com", "hunter2hunter2"))

	user := store.User()
	require.NotNil(t, user)
	assert.Equal(t, "Ava Williams", user.Name)
	assert.Equal(t, types.AccountTypeCitizen, user.AccountType)

	require.Len(t, notifications, 1)
	require.NotNil(t, notifications[0])
	assert.Equal(t, "ava.williams@example.com", notifications[0].Email)

	// A fresh refresh replaces the snapshot wholesale.
	refreshed, err := store.RefreshUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, user.UUID, refreshed.UUID)
	assert.Len(t, notifications, 2)

	require.NoError(t, store.Logout())
	assert.Nil(t, store.User())
	require.Len(t, notifications, 3)
	assert.Nil(t, notifications[2])

	// The cleared token makes the next refresh fail fast again.
	_, err = store.RefreshUser(context.Background())
	require.ErrorIs(t, err, types.ErrUnauthenticated)
}

func TestLoginBadCredentials(t *testing.T) {
	ts := newTestBackend(t)
	store := newTestStore(t, ts.URL)

	err := store.Login(context.Background(), "ava.williams@example.com", "wrong")
	require.Error(t, err)

	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 401, statusErr.StatusCode)
	assert.Nil(t, store.User())
}

func TestRegisterThenLogin(t *testing.T) {
	ts := newTestBackend(t)
	store := newTestStore(t, ts.URL)

	err := store.Register(context.Background(), RegisterInput{
		Email:       "new.citizen@example.com",
		Password:    "correct-horse",
		Name:        "New Citizen",
		AccountType: types.AccountTypeCitizen,
	})
	require.NoError(t, err)

	require.NoError(t, store.Login(context.Background(), "new.citizen@example.com", "correct-horse"))
	user := store.User()
	require.NotNil(t, user)
	assert.Equal(t, "New Citizen", user.Name)
}

func TestRegisterRejectsRemovedAccountType(t *testing.T) {
	store := newTestStore(t, "http://127.0.0.1:1")

	err := store.Register(context.Background(), RegisterInput{
		Email:       "shop@example.com",
		Password:    "pw",
		Name:        "Shop",
		AccountType: "business",
	})
	require.Error(t, err)
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	ts := newTestBackend(t)
	store := newTestStore(t, ts.URL)

	calls := 0
	unsubscribe := store.Subscribe(func(*types.User) { calls++ })
	unsubscribe()

	require.NoError(t, store.Login(context.Background(), "council@city.gov", "adminadmin"))
	assert.Zero(t, calls)
}
