package session

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/adilkhann/dayrep/internal/models"
)

// fakeAuth is an Authenticator with a canned response.
type fakeAuth struct {
	res *models.AuthResponse
	err error
}

func (f fakeAuth) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	return f.res, f.err
}

func (f fakeAuth) Register(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	return f.res, f.err
}

func newTestStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := Open(path, "token", "user")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	return store
}

func testDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.db")
}

func TestInitFreshCacheIsAnonymous(t *testing.T) {
	store := newTestStore(t, testDBPath(t))

	if store.State() != StateAnonymous {
		t.Errorf("State() = %v, want StateAnonymous", store.State())
	}
	if store.CurrentUser() != nil {
		t.Errorf("CurrentUser() = %v, want nil", store.CurrentUser())
	}
	if store.Token() != "" {
		t.Errorf("Token() = %q, want empty", store.Token())
	}
}

func TestLoginEstablishesAndRehydrates(t *testing.T) {
	path := testDBPath(t)
	store := newTestStore(t, path)

	auth := fakeAuth{res: &models.AuthResponse{Token: "t1", UserID: 7, Email: "dev@example.com"}}
	res, err := store.Login(context.Background(), auth, "dev@example.com", "secret")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if res.Token != "t1" {
		t.Errorf("Token = %q, want t1", res.Token)
	}
	if store.State() != StateAuthenticated {
		t.Errorf("State() = %v, want StateAuthenticated", store.State())
	}
	if store.Token() != "t1" {
		t.Errorf("Token() = %q, want t1", store.Token())
	}

	// A fresh store over the same cache picks the session back up.
	reopened := newTestStore(t, path)
	if reopened.State() != StateAuthenticated {
		t.Fatalf("reopened State() = %v, want StateAuthenticated", reopened.State())
	}
	user := reopened.CurrentUser()
	if user == nil || user.UserID != 7 || user.Email != "dev@example.com" {
		t.Errorf("reopened CurrentUser() = %v, want user #7", user)
	}
}

func TestLoginFailureLeavesStateUnchanged(t *testing.T) {
	store := newTestStore(t, testDBPath(t))

	auth := fakeAuth{err: fmt.Errorf("bad credentials")}
	if _, err := store.Login(context.Background(), auth, "dev@example.com", "wrong"); err == nil {
		t.Fatal("Login() succeeded, want error")
	}
	if store.State() != StateAnonymous {
		t.Errorf("State() = %v, want StateAnonymous", store.State())
	}
	if store.Token() != "" {
		t.Errorf("Token() = %q, want empty", store.Token())
	}
}

func TestEstablishRejectsEmptyToken(t *testing.T) {
	store := newTestStore(t, testDBPath(t))

	auth := fakeAuth{res: &models.AuthResponse{UserID: 7, Email: "dev@example.com"}}
	if _, err := store.Login(context.Background(), auth, "dev@example.com", "secret"); err == nil {
		t.Fatal("Login() succeeded with tokenless response, want error")
	}
	if store.State() != StateAnonymous {
		t.Errorf("State() = %v, want StateAnonymous", store.State())
	}
}

func TestInitClearsPartialPair(t *testing.T) {
	path := testDBPath(t)
	store := newTestStore(t, path)

	// A token without a user must not count as a session.
	if err := store.set("token", "orphaned"); err != nil {
		t.Fatalf("set() error: %v", err)
	}
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if store.State() != StateAnonymous {
		t.Errorf("State() = %v, want StateAnonymous", store.State())
	}
	if store.Token() != "" {
		t.Errorf("Token() = %q, want cleared", store.Token())
	}
}

func TestInitClearsCorruptUser(t *testing.T) {
	store := newTestStore(t, testDBPath(t))

	if err := store.set("token", "t1"); err != nil {
		t.Fatalf("set() error: %v", err)
	}
	if err := store.set("user", "{not json"); err != nil {
		t.Fatalf("set() error: %v", err)
	}
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if store.State() != StateAnonymous {
		t.Errorf("State() = %v, want StateAnonymous", store.State())
	}
	if store.Token() != "" {
		t.Errorf("Token() = %q, want cleared", store.Token())
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	store := newTestStore(t, testDBPath(t))

	auth := fakeAuth{res: &models.AuthResponse{Token: "t1", UserID: 7, Email: "dev@example.com"}}
	if _, err := store.Login(context.Background(), auth, "dev@example.com", "secret"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := store.Logout(); err != nil {
			t.Fatalf("Logout() #%d error: %v", i+1, err)
		}
		if store.State() != StateAnonymous {
			t.Errorf("State() = %v after Logout #%d, want StateAnonymous", store.State(), i+1)
		}
	}
	if store.Token() != "" {
		t.Errorf("Token() = %q, want empty", store.Token())
	}
}

func TestHandleUnauthorizedWhileAnonymousIsNotExpiry(t *testing.T) {
	store := newTestStore(t, testDBPath(t))

	// A 401 during a failed login attempt: no session existed, so nothing
	// expired.
	store.HandleUnauthorized()

	if store.Expired() {
		t.Error("Expired() = true without a prior session, want false")
	}
	if store.State() != StateAnonymous {
		t.Errorf("State() = %v, want StateAnonymous", store.State())
	}
}

func TestHandleUnauthorized(t *testing.T) {
	store := newTestStore(t, testDBPath(t))

	auth := fakeAuth{res: &models.AuthResponse{Token: "t1", UserID: 7, Email: "dev@example.com"}}
	if _, err := store.Login(context.Background(), auth, "dev@example.com", "secret"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	store.HandleUnauthorized()

	if !store.Expired() {
		t.Error("Expired() = false, want true")
	}
	if store.State() != StateAnonymous {
		t.Errorf("State() = %v, want StateAnonymous", store.State())
	}
	if store.Token() != "" {
		t.Errorf("Token() = %q, want cleared", store.Token())
	}

	// A fresh login clears the expired flag.
	if _, err := store.Login(context.Background(), auth, "dev@example.com", "secret"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if store.Expired() {
		t.Error("Expired() = true after re-login, want false")
	}
}
