// Package auth owns the authentication session state machine: login, logout,
// and restoring a previous session from the secure credential store.
package auth

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/eonwallet/walletcore/internal/api"
	"github.com/eonwallet/walletcore/internal/logging"
	"github.com/eonwallet/walletcore/internal/models"
	"github.com/eonwallet/walletcore/internal/securestore"
	"github.com/eonwallet/walletcore/internal/validation"
)

// clearTimeout bounds the background credential wipe issued by Logout.
const clearTimeout = 5 * time.Second

// State is the observable session state. Invariant: IsAuthenticated is true
// iff both User and Token are present.
type State struct {
	User            *models.User
	Token           string
	IsAuthenticated bool
	IsLoading       bool
}

// Store is the auth state machine. It is safe for concurrent use; when
// operations overlap, the last one to settle determines the resulting state.
// In-flight calls cannot be aborted by later ones — both settle and both
// write (see the race note on Login).
type Store struct {
	mu      sync.Mutex
	client  api.Client
	secrets securestore.Store
	log     logging.Logger

	state State
}

// NewStore builds an anonymous session bound to the given API client and
// credential store.
func NewStore(client api.Client, secrets securestore.Store, log logging.Logger) *Store {
	return &Store{client: client, secrets: secrets, log: log}
}

// State returns a snapshot of the current session.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

// Login validates the credentials locally, then authenticates through the
// gateway. Validation failures return immediately without any network call.
// On success the token and serialized user are persisted to the credential
// store; persistence failures are logged and swallowed — the in-memory
// session stays valid either way. On rejection the session returns to
// anonymous and the rejection message is returned verbatim.
//
// Overlapping Login calls are not deduplicated: each writes state when it
// settles, so the last settler wins.
func (s *Store) Login(ctx context.Context, email, password string) error {
	if err := validation.LoginCredentials(email, password); err != nil {
		return err
	}

	s.mu.Lock()
	s.state.IsLoading = true
	s.mu.Unlock()

	user, token, err := s.client.Login(ctx, email, password)
	if err == nil {
		s.persistSession(ctx, user, token)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsLoading = false
	if err != nil {
		s.state.User = nil
		s.state.Token = ""
		s.state.IsAuthenticated = false
		s.log.Warn(ctx, "login failed", "email", email, "error", err)
		return err
	}

	s.state.User = user
	s.state.Token = token
	s.state.IsAuthenticated = true
	s.log.Info(ctx, "login settled", "email", user.Email)
	return nil
}

// Logout clears the in-memory session immediately and issues a best-effort
// asynchronous wipe of the credential store. The wipe's outcome is neither
// awaited nor surfaced.
func (s *Store) Logout() {
	s.mu.Lock()
	s.state = State{}
	s.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), clearTimeout)
		defer cancel()
		if err := s.secrets.Clear(ctx); err != nil {
			s.log.Warn(ctx, "credential store clear failed", "error", err)
		}
	}()
}

// RestoreFromStorage rebuilds the session from the credential store without
// contacting the gateway. It reports whether a session was restored. Absent
// or unreadable data leaves the session anonymous with no error surfaced:
// the silent no-op is the correct behavior, not a failure.
func (s *Store) RestoreFromStorage(ctx context.Context) bool {
	rawToken, err := s.secrets.Get(ctx, securestore.TokenKey)
	if err != nil {
		s.log.Warn(ctx, "token read failed, staying anonymous", "error", err)
		return false
	}
	rawUser, err := s.secrets.Get(ctx, securestore.UserKey)
	if err != nil {
		s.log.Warn(ctx, "user read failed, staying anonymous", "error", err)
		return false
	}
	if len(rawToken) == 0 || len(rawUser) == 0 {
		return false
	}

	var user models.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		s.log.Warn(ctx, "stored user corrupt, staying anonymous", "error", err)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = &user
	s.state.Token = string(rawToken)
	s.state.IsAuthenticated = true
	s.log.Info(ctx, "session restored", "email", user.Email)
	return true
}

// persistSession mirrors the session into the credential store. Failures are
// logged only: availability over durability.
func (s *Store) persistSession(ctx context.Context, user *models.User, token string) {
	if err := s.secrets.Set(ctx, securestore.TokenKey, []byte(token)); err != nil {
		s.log.Warn(ctx, "token persist failed", "error", err)
	}

	raw, err := json.Marshal(user)
	if err != nil {
		s.log.Warn(ctx, "user serialize failed", "error", err)
		return
	}
	if err := s.secrets.Set(ctx, securestore.UserKey, raw); err != nil {
		s.log.Warn(ctx, "user persist failed", "error", err)
	}
}
