package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/adilkhann/dayrep/internal/models"
)

// State is the authentication state of the store. After Init exactly one of
// Authenticated or Anonymous holds.
type State int

const (
	StateUnknown State = iota
	StateAuthenticated
	StateAnonymous
)

// ErrNotAuthenticated is returned by operations that need a session.
var ErrNotAuthenticated = errors.New("not logged in")

// Authenticator performs the remote credential exchange. The API client
// implements it.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, email, password string) (*models.AuthResponse, error)
}

// Store owns the persisted token/user pair and the in-process session
// state. Every component that needs identity takes a *Store explicitly;
// nothing else writes the credential cache.
type Store struct {
	db       *gorm.DB
	tokenKey string
	userKey  string

	state   State
	user    *models.User
	expired bool
}

// Open opens (or creates) the credential cache at path and runs migrations.
func Open(path, tokenKey, userKey string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open credential cache: %w", err)
	}

	if err := db.AutoMigrate(&models.Credential{}); err != nil {
		return nil, fmt.Errorf("failed to migrate credential cache: %w", err)
	}

	return &Store{db: db, tokenKey: tokenKey, userKey: userKey, state: StateUnknown}, nil
}

// Init rehydrates the session from the cache. A token without a user (or
// the reverse) counts as no session and both entries are cleared, keeping
// the token/user invariant.
func (s *Store) Init() error {
	token := s.Token()
	userJSON := s.get(s.userKey)

	if token == "" || userJSON == "" {
		if err := s.clear(); err != nil {
			return err
		}
		s.state = StateAnonymous
		s.user = nil
		return nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		if clearErr := s.clear(); clearErr != nil {
			return clearErr
		}
		s.state = StateAnonymous
		s.user = nil
		return nil
	}

	s.state = StateAuthenticated
	s.user = &user
	return nil
}

// State returns the current session state.
func (s *Store) State() State {
	return s.state
}

// CurrentUser returns the authenticated user, or nil.
func (s *Store) CurrentUser() *models.User {
	return s.user
}

// Expired reports whether the session was invalidated by a 401 since Init.
func (s *Store) Expired() bool {
	return s.expired
}

// Token reads the persisted bearer token. Implements api.TokenSource.
func (s *Store) Token() string {
	return s.get(s.tokenKey)
}

// Login authenticates against the server and establishes the session. On
// failure the state is unchanged and the error propagates.
func (s *Store) Login(ctx context.Context, auth Authenticator, email, password string) (*models.AuthResponse, error) {
	res, err := auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.establish(res); err != nil {
		return nil, err
	}
	return res, nil
}

// Register creates an account and establishes the session. Same contract
// as Login against a different endpoint.
func (s *Store) Register(ctx context.Context, auth Authenticator, email, password string) (*models.AuthResponse, error) {
	res, err := auth.Register(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.establish(res); err != nil {
		return nil, err
	}
	return res, nil
}

// establish persists the token/user pair and transitions to Authenticated.
func (s *Store) establish(res *models.AuthResponse) error {
	if res.Token == "" {
		return fmt.Errorf("server returned no token")
	}

	user := models.User{UserID: res.UserID, Email: res.Email}
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	if err := s.set(s.tokenKey, res.Token); err != nil {
		return err
	}
	if err := s.set(s.userKey, string(userJSON)); err != nil {
		return err
	}

	s.state = StateAuthenticated
	s.user = &user
	s.expired = false
	return nil
}

// Logout clears the persisted pair and transitions to Anonymous. Calling
// it while already Anonymous is a no-op on state.
func (s *Store) Logout() error {
	if err := s.clear(); err != nil {
		return err
	}
	s.state = StateAnonymous
	s.user = nil
	return nil
}

// HandleUnauthorized is subscribed to the API client's 401 signal. It
// clears the session and marks it expired so the frontend can route the
// user back to login. A 401 while Anonymous (a failed login attempt) is
// not an expiry; the caller gets the auth error instead.
func (s *Store) HandleUnauthorized() {
	wasAuthenticated := s.state == StateAuthenticated
	_ = s.Logout()
	if wasAuthenticated {
		s.expired = true
	}
}

// Close closes the underlying cache database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) get(key string) string {
	var cred models.Credential
	if err := s.db.Where("key = ?", key).First(&cred).Error; err != nil {
		return ""
	}
	return cred.Value
}

func (s *Store) set(key, value string) error {
	cred := models.Credential{Key: key, Value: value}
	if err := s.db.Save(&cred).Error; err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	return nil
}

func (s *Store) clear() error {
	err := s.db.Where("key IN ?", []string{s.tokenKey, s.userKey}).
		Delete(&models.Credential{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}
