package auth

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/eonwallet/walletcore/internal/gateway"
	"github.com/eonwallet/walletcore/internal/logging"
	"github.com/eonwallet/walletcore/internal/models"
	"github.com/eonwallet/walletcore/internal/securestore"
	"github.com/eonwallet/walletcore/internal/validation"
)

// ---- fakes ----

// fakeAPI implements api.Client. Login synthesizes a user from the email the
// way the mock gateway does; gates, when set, let tests control settle order.
type fakeAPI struct {
	loginCalls atomic.Int32

	err   error
	token string

	// gates maps email to a channel Login blocks on before settling.
	gates map[string]chan struct{}
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	f.loginCalls.Add(1)
	if f.gates != nil {
		<-f.gates[email]
	}
	if f.err != nil {
		return nil, "", f.err
	}
	token := f.token
	if token == "" {
		token = "tok-" + email
	}
	return &models.User{ID: "1", Email: email, Name: strings.SplitN(email, "@", 2)[0]}, token, nil
}

func (f *fakeAPI) Slides(ctx context.Context) ([]models.Slide, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAPI) SubmitApplication(ctx context.Context, req models.CardApplicationRequest) (*models.ApplicationRecord, error) {
	return nil, errors.New("not implemented")
}

// failingStore errors on every operation.
type failingStore struct{}

func (failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("storage read failed")
}
func (failingStore) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("storage write failed")
}
func (failingStore) Delete(ctx context.Context, key string) error {
	return errors.New("storage delete failed")
}
func (failingStore) Clear(ctx context.Context) error {
	return errors.New("storage clear failed")
}

func newTestStore(t *testing.T, client *fakeAPI) (*Store, *securestore.Memory) {
	t.Helper()
	secrets := securestore.NewMemory()
	return NewStore(client, secrets, logging.Nop()), secrets
}

// ---- tests ----

func TestLogin_Success(t *testing.T) {
	fc := &fakeAPI{}
	s, secrets := newTestStore(t, fc)

	require.NoError(t, s.Login(context.Background(), "alice@example.com", "secret1"))

	st := s.State()
	require.True(t, st.IsAuthenticated)
	require.False(t, st.IsLoading)
	require.NotNil(t, st.User)
	require.Equal(t, "alice@example.com", st.User.Email)
	require.Equal(t, "tok-alice@example.com", st.Token)

	// Session mirrored into the credential store.
	tok, err := secrets.Get(context.Background(), securestore.TokenKey)
	require.NoError(t, err)
	require.Equal(t, []byte("tok-alice@example.com"), tok)

	rawUser, err := secrets.Get(context.Background(), securestore.UserKey)
	require.NoError(t, err)
	var user models.User
	require.NoError(t, json.Unmarshal(rawUser, &user))
	require.Equal(t, "alice@example.com", user.Email)
}

func TestLogin_ShortPassword_NoGatewayCall(t *testing.T) {
	fc := &fakeAPI{}
	s, _ := newTestStore(t, fc)

	err := s.Login(context.Background(), "alice@example.com", "12345")

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Message, "at least 6 characters")
	require.EqualValues(t, 0, fc.loginCalls.Load())

	st := s.State()
	require.False(t, st.IsAuthenticated)
	require.False(t, st.IsLoading)
}

func TestLogin_EmptyCredentials_NoGatewayCall(t *testing.T) {
	fc := &fakeAPI{}
	s, _ := newTestStore(t, fc)

	err := s.Login(context.Background(), "", "")

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	require.EqualValues(t, 0, fc.loginCalls.Load())
	require.False(t, s.State().IsAuthenticated)
}

func TestLogin_GatewayRejection_MessageVerbatim(t *testing.T) {
	fc := &fakeAPI{err: &gateway.Error{Status: 401, Message: "Invalid credentials"}}
	s, _ := newTestStore(t, fc)

	err := s.Login(context.Background(), "alice@example.com", "secret1")
	require.EqualError(t, err, "Invalid credentials")

	st := s.State()
	require.False(t, st.IsAuthenticated)
	require.Nil(t, st.User)
	require.Empty(t, st.Token)
	require.False(t, st.IsLoading)
}

func TestLogin_StorageWriteFailureDoesNotRollBackSession(t *testing.T) {
	fc := &fakeAPI{}
	s := NewStore(fc, failingStore{}, logging.Nop())

	require.NoError(t, s.Login(context.Background(), "alice@example.com", "secret1"))
	require.True(t, s.State().IsAuthenticated)
}

func TestLogin_LoadingFlagDuringFlight(t *testing.T) {
	gate := make(chan struct{})
	fc := &fakeAPI{gates: map[string]chan struct{}{"alice@example.com": gate}}
	s, _ := newTestStore(t, fc)

	done := make(chan error, 1)
	go func() {
		done <- s.Login(context.Background(), "alice@example.com", "secret1")
	}()

	require.Eventually(t, func() bool {
		return s.State().IsLoading
	}, time.Second, time.Millisecond)

	close(gate)
	require.NoError(t, <-done)
	require.False(t, s.State().IsLoading)
}

func TestLogout_ClearsSessionAndStore(t *testing.T) {
	fc := &fakeAPI{}
	s, secrets := newTestStore(t, fc)
	ctx := context.Background()

	require.NoError(t, s.Login(ctx, "alice@example.com", "secret1"))
	s.Logout()

	st := s.State()
	require.False(t, st.IsAuthenticated)
	require.Nil(t, st.User)
	require.Empty(t, st.Token)

	// The store wipe is asynchronous and best-effort.
	require.Eventually(t, func() bool {
		tok, err := secrets.Get(ctx, securestore.TokenKey)
		return err == nil && tok == nil
	}, time.Second, time.Millisecond)

	require.False(t, s.RestoreFromStorage(ctx))
}

func TestRestoreFromStorage_Success_NoGatewayCall(t *testing.T) {
	fc := &fakeAPI{}
	s, secrets := newTestStore(t, fc)
	ctx := context.Background()

	user := models.User{ID: "1", Email: "alice@example.com", Name: "alice"}
	raw, err := json.Marshal(user)
	require.NoError(t, err)
	require.NoError(t, secrets.Set(ctx, securestore.TokenKey, []byte("tok-1")))
	require.NoError(t, secrets.Set(ctx, securestore.UserKey, raw))

	require.True(t, s.RestoreFromStorage(ctx))

	st := s.State()
	require.True(t, st.IsAuthenticated)
	require.Equal(t, "tok-1", st.Token)
	require.Equal(t, "alice@example.com", st.User.Email)
	require.EqualValues(t, 0, fc.loginCalls.Load())
}

func TestRestoreFromStorage_AbsentData_SilentNoop(t *testing.T) {
	fc := &fakeAPI{}
	s, secrets := newTestStore(t, fc)
	ctx := context.Background()

	// Nothing stored at all.
	require.False(t, s.RestoreFromStorage(ctx))
	require.False(t, s.State().IsAuthenticated)

	// Token without user is not enough.
	require.NoError(t, secrets.Set(ctx, securestore.TokenKey, []byte("tok-1")))
	require.False(t, s.RestoreFromStorage(ctx))
	require.False(t, s.State().IsAuthenticated)
}

func TestRestoreFromStorage_CorruptUser_SilentNoop(t *testing.T) {
	fc := &fakeAPI{}
	s, secrets := newTestStore(t, fc)
	ctx := context.Background()

	require.NoError(t, secrets.Set(ctx, securestore.TokenKey, []byte("tok-1")))
	require.NoError(t, secrets.Set(ctx, securestore.UserKey, []byte("{not json")))

	require.False(t, s.RestoreFromStorage(ctx))
	require.False(t, s.State().IsAuthenticated)
}

func TestRestoreFromStorage_StorageErrorFailsOpen(t *testing.T) {
	fc := &fakeAPI{}
	s := NewStore(fc, failingStore{}, logging.Nop())

	require.False(t, s.RestoreFromStorage(context.Background()))
	require.False(t, s.State().IsAuthenticated)
}

// The design deliberately does not fence overlapping logins: each in-flight
// call writes state when it settles, so the final state belongs to the last
// settler, not the last caller.
func TestLogin_Overlapping_LastSettlerWins(t *testing.T) {
	gateA := make(chan struct{})
	gateB := make(chan struct{})
	fc := &fakeAPI{gates: map[string]chan struct{}{
		"a@example.com": gateA,
		"b@example.com": gateB,
	}}
	s, _ := newTestStore(t, fc)

	var wg sync.WaitGroup
	doneA := make(chan struct{})
	doneB := make(chan struct{})
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = s.Login(context.Background(), "a@example.com", "secret1")
		close(doneA)
	}()
	go func() {
		defer wg.Done()
		_ = s.Login(context.Background(), "b@example.com", "secret1")
		close(doneB)
	}()

	// Let B settle first, then A.
	close(gateB)
	<-doneB
	close(gateA)
	<-doneA
	wg.Wait()

	st := s.State()
	require.True(t, st.IsAuthenticated)
	require.Equal(t, "a@example.com", st.User.Email)
	require.EqualValues(t, 2, fc.loginCalls.Load())
}

func TestState_ReturnsCopy(t *testing.T) {
	fc := &fakeAPI{}
	s, _ := newTestStore(t, fc)
	require.NoError(t, s.Login(context.Background(), "alice@example.com", "secret1"))

	st := s.State()
	st.User.Email = "mutated@example.com"

	require.Equal(t, "alice@example.com", s.State().User.Email)
}
