package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/eonwallet/walletcore/internal/common"
	"github.com/eonwallet/walletcore/internal/logging"
)

type fakeTokens struct {
	token       string
	tokenErr    error
	invalidated bool
}

func (f *fakeTokens) Token(ctx context.Context) (string, error) {
	return f.token, f.tokenErr
}

func (f *fakeTokens) Invalidate(ctx context.Context) error {
	f.invalidated = true
	return nil
}

func TestHTTPGateway_Success_DecoratesRequest(t *testing.T) {
	var gotAuth, gotReqID, gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-Id")
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewEncoder(w).Encode(Response{Success: true, Data: json.RawMessage(`{"ok":true}`)})
	}))
	defer srv.Close()

	g := NewHTTP(srv.URL, time.Second, &fakeTokens{token: "tok-1"}, logging.Nop())

	resp, err := g.Do(context.Background(), Request{Method: http.MethodGet, Path: SlidesPath})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Equal(t, "Bearer tok-1", gotAuth)
	require.NotEmpty(t, gotReqID)
	require.Equal(t, "application/json", gotContentType)
}

func TestHTTPGateway_NoTokenSource_NoAuthHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(Response{Success: true})
	}))
	defer srv.Close()

	g := NewHTTP(srv.URL, time.Second, nil, logging.Nop())

	_, err := g.Do(context.Background(), Request{Method: http.MethodGet, Path: SlidesPath})
	require.NoError(t, err)
	require.Empty(t, gotAuth)
}

func TestHTTPGateway_Rejection_SurfacesEnvelopeMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(Response{Success: false, Message: "Email and password are required"})
	}))
	defer srv.Close()

	g := NewHTTP(srv.URL, time.Second, nil, logging.Nop())

	_, err := g.Do(context.Background(), Request{Method: http.MethodPost, Path: LoginPath, Body: map[string]string{}})

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	require.Equal(t, http.StatusBadRequest, gerr.Status)
	require.Equal(t, "Email and password are required", gerr.Message)
}

func TestHTTPGateway_Unauthorized_InvalidatesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(Response{Success: false, Message: "token expired"})
	}))
	defer srv.Close()

	tokens := &fakeTokens{token: "stale"}
	g := NewHTTP(srv.URL, time.Second, tokens, logging.Nop())

	_, err := g.Do(context.Background(), Request{Method: http.MethodGet, Path: SlidesPath})

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	require.Equal(t, http.StatusUnauthorized, gerr.Status)
	require.True(t, tokens.invalidated)
}

func TestHTTPGateway_EnvelopeFailureWithOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Response{Success: false, Message: "Login failed"})
	}))
	defer srv.Close()

	g := NewHTTP(srv.URL, time.Second, nil, logging.Nop())

	_, err := g.Do(context.Background(), Request{Method: http.MethodPost, Path: LoginPath, Body: map[string]string{}})

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	require.Equal(t, http.StatusBadRequest, gerr.Status)
	require.Equal(t, "Login failed", gerr.Message)
}

func TestHTTPGateway_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	g := NewHTTP(srv.URL, 200*time.Millisecond, nil, logging.Nop())
	g.client.RetryMax = 0

	_, err := g.Do(context.Background(), Request{Method: http.MethodGet, Path: SlidesPath})
	require.ErrorIs(t, err, common.ErrUnavailable)
}
