package guard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/prasetyodt/railbooking/internal/domain"
	"github.com/prasetyodt/railbooking/internal/session"
	"github.com/prasetyodt/railbooking/internal/storage"
)

func loggedInStore(t *testing.T, role domain.Role) *session.Store {
	t.Helper()
	ctx := context.Background()
	store := session.NewStore(ctx, storage.NewMemoryStore())
	store.Login(ctx, domain.User{ID: "u-1", Name: "Test", Email: "test@gmail.com", Role: role},
		"token", time.Now().Add(time.Hour))
	return store
}

func TestCheck_AnonymousRedirectsToLogin(t *testing.T) {
	store := session.NewStore(context.Background(), storage.NewMemoryStore())

	assert.Equal(t, RedirectLogin, Check(store, nil))
	assert.Equal(t, RedirectLogin, Check(store, []domain.Role{domain.RoleAdmin}))
}

func TestCheck_ExpiredSessionRedirectsToLogin(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 8, 7, 12, 0, 0, 0, time.UTC)
	store := session.NewStore(ctx, storage.NewMemoryStore(),
		session.WithClock(func() time.Time { return now }))
	store.Login(ctx, domain.User{ID: "u-1", Role: domain.RoleCustomer}, "stale", now.Add(-time.Minute))

	assert.Equal(t, RedirectLogin, Check(store, nil))
}

func TestCheck_RoleGate(t *testing.T) {
	customer := loggedInStore(t, domain.RoleCustomer)
	admin := loggedInStore(t, domain.RoleAdmin)

	// No role restriction: any live session renders.
	assert.Equal(t, Allow, Check(customer, nil))
	assert.Equal(t, Allow, Check(admin, nil))

	assert.Equal(t, RedirectUnauthorized, Check(customer, []domain.Role{domain.RoleAdmin}))
	assert.Equal(t, Allow, Check(admin, []domain.Role{domain.RoleAdmin}))
	assert.Equal(t, Allow, Check(customer, []domain.Role{domain.RoleAdmin, domain.RoleCustomer}))
}

// The guard re-reads the session every time, so logging out flips the
// decision without any cache to bust.
func TestCheck_ReEvaluatedPerAttempt(t *testing.T) {
	ctx := context.Background()
	store := loggedInStore(t, domain.RoleCustomer)

	assert.Equal(t, Allow, Check(store, nil))
	store.Logout(ctx)
	assert.Equal(t, RedirectLogin, Check(store, nil))
}

func TestRedirectPath(t *testing.T) {
	assert.Equal(t, LoginPath, RedirectPath(RedirectLogin))
	assert.Equal(t, UnauthorizedPath, RedirectPath(RedirectUnauthorized))
	assert.Empty(t, RedirectPath(Allow))
}
