// Package session owns the authenticated identity and the bearer
// credential. The store is the single writer of session state: views and
// services read snapshots, only login, restore and logout mutate, and
// in-memory state and the persisted copy are always written together.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tinylink/tinylink-cli/internal/client/api"
	"github.com/tinylink/tinylink-cli/internal/client/models"
	"github.com/tinylink/tinylink-cli/internal/client/repositories/metadata"
	"github.com/tinylink/tinylink-cli/internal/dbx"
	"github.com/tinylink/tinylink-cli/internal/logging"
)

// Persisted entry names. These match what the backend's other clients use,
// so an existing credential survives a switch between clients.
const (
	credentialKey = "token"
	identityKey   = "auth_user"
)

// Caller is the outbound-request surface the store needs.
type Caller interface {
	Call(ctx context.Context, path string, opts api.Options) (*api.Result, error)
}

// Store holds the session and its persisted copy. Zero value is not
// usable; construct with NewStore, then call Restore once at startup.
type Store struct {
	mu         sync.RWMutex
	identity   *models.Identity
	credential string
	loading    bool

	api Caller
	db  *sql.DB
	log logging.Logger
}

// NewStore creates a store in the restoring state: Snapshot().Loading is
// true until Restore completes.
func NewStore(caller Caller, db *sql.DB, log logging.Logger) *Store {
	return &Store{
		api:     caller,
		db:      db,
		loading: true,
		log:     log.With("component", "session"),
	}
}

// Credential returns the current bearer credential, or "" when
// unauthenticated. Implements api.CredentialSource.
func (s *Store) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential
}

// Snapshot returns an immutable copy of the session state.
func (s *Store) Snapshot() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := models.Session{Credential: s.credential, Loading: s.loading}
	if s.identity != nil {
		ident := *s.identity
		snap.Identity = &ident
	}
	return snap
}

// Restore reads the persisted credential and identity. When both are
// present and the identity deserializes, the session becomes
// authenticated without contacting the backend. Whatever the outcome,
// the loading flag drops once the read completes and never rises again.
func (s *Store) Restore(ctx context.Context) {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	repo := metadata.NewSQLiteRepository(s.db)

	token, err := repo.Get(ctx, credentialKey)
	if err != nil {
		s.log.Warn(ctx, "restore: reading credential failed", "error", err)
		return
	}
	rawIdentity, err := repo.Get(ctx, identityKey)
	if err != nil {
		s.log.Warn(ctx, "restore: reading identity failed", "error", err)
		return
	}
	if len(token) == 0 || len(rawIdentity) == 0 {
		return
	}

	var ident models.Identity
	if err := json.Unmarshal(rawIdentity, &ident); err != nil {
		s.log.Warn(ctx, "restore: persisted identity is malformed", "error", err)
		return
	}

	s.mu.Lock()
	s.identity = &ident
	s.credential = string(token)
	s.mu.Unlock()

	if exp, ok := s.CredentialExpiry(); ok && exp.Before(time.Now()) {
		s.log.Warn(ctx, "restored credential is already expired", "expiredAt", exp)
	}
	s.log.Info(ctx, "session restored", "username", ident.Username)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string           `json:"token"`
	User  *models.Identity `json:"user"`
}

// Login authenticates against the backend. The response must carry both
// the credential and the identity, otherwise api.ErrInvalidResponse is
// returned. On success the pair is written to persistence in one
// transaction and then to memory; on any failure existing state is left
// untouched.
func (s *Store) Login(ctx context.Context, email, password string) error {
	res, err := s.api.Call(ctx, "/auth/login", api.Options{
		Method: http.MethodPost,
		Body:   loginRequest{Email: email, Password: password},
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if res.JSON == nil {
		return api.ErrInvalidResponse
	}
	var payload loginResponse
	if err := json.Unmarshal(res.JSON, &payload); err != nil {
		return fmt.Errorf("%w: %v", api.ErrInvalidResponse, err)
	}
	if payload.Token == "" || payload.User == nil {
		return api.ErrInvalidResponse
	}

	rawIdentity, err := json.Marshal(payload.User)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, credentialKey, []byte(payload.Token)); err != nil {
			return err
		}
		return repo.Set(ctx, identityKey, rawIdentity)
	})
	if err != nil {
		return fmt.Errorf("persisting session failed: %w", err)
	}

	s.mu.Lock()
	s.identity = payload.User
	s.credential = payload.Token
	s.mu.Unlock()

	s.log.Info(ctx, "logged in", "username", payload.User.Username, "role", payload.User.Role)
	return nil
}

type signupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup registers a new account. It never authenticates the caller and
// never mutates session state; the account stays pending until an
// administrator approves it. Success is signaled purely by the server
// message, which is returned for display.
func (s *Store) Signup(ctx context.Context, email, username, password string) (string, error) {
	res, err := s.api.Call(ctx, "/auth/signup", api.Options{
		Method: http.MethodPost,
		Body:   signupRequest{Email: email, Username: username, Password: password},
	})
	if err != nil {
		return "", fmt.Errorf("signup failed: %w", err)
	}

	var payload struct {
		Message string `json:"message"`
	}
	if res.JSON != nil {
		if err := json.Unmarshal(res.JSON, &payload); err != nil {
			return "", fmt.Errorf("%w: %v", api.ErrInvalidResponse, err)
		}
	}

	// The backend signals success only through its message.
	if !strings.Contains(payload.Message, "successfully") {
		if payload.Message == "" {
			return "", errors.New("signup failed")
		}
		return "", errors.New(payload.Message)
	}
	return payload.Message, nil
}

// Logout clears the identity, the credential and both persisted copies.
// It is idempotent; memory is cleared even when the persistence delete
// fails, and the error is still reported.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.identity = nil
	s.credential = ""
	s.mu.Unlock()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, credentialKey); err != nil {
			return err
		}
		return repo.Delete(ctx, identityKey)
	})
	if err != nil {
		return fmt.Errorf("clearing persisted session failed: %w", err)
	}

	s.log.Info(ctx, "logged out")
	return nil
}

// CredentialExpiry reports when the current bearer credential expires.
// The token is parsed without verification; verifying it is the
// backend's job. ok is false when no credential is held or the token is
// not a JWT with an exp claim.
func (s *Store) CredentialExpiry() (time.Time, bool) {
	s.mu.RLock()
	token := s.credential
	s.mu.RUnlock()

	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
