package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/eonwallet/walletcore/internal/common"
	"github.com/eonwallet/walletcore/internal/logging"
)

// TokenSource supplies the bearer token attached to outgoing requests.
// Token returns "" when no token is stored. Invalidate is called best-effort
// when the server answers 401; its failure is logged, never propagated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Invalidate(ctx context.Context) error
}

// HTTPGateway talks to the real wallet API. Responses use the same
// {success, data, message} envelope the mock produces.
type HTTPGateway struct {
	base   string
	client *retryablehttp.Client
	tokens TokenSource
	log    logging.Logger
}

// NewHTTP builds a gateway for the given base URL. tokens may be nil when no
// credential store is wired (e.g. the slides-only welcome flow).
func NewHTTP(base string, timeout time.Duration, tokens TokenSource, log logging.Logger) *HTTPGateway {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.Logger = nil
	client.HTTPClient.Timeout = timeout

	return &HTTPGateway{
		base:   strings.TrimRight(base, "/"),
		client: client,
		tokens: tokens,
		log:    log,
	}
}

func (g *HTTPGateway) Do(ctx context.Context, req Request) (*Response, error) {
	var body []byte
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = raw
	}

	hreq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, g.base+req.Path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	hreq.Header.Set("Content-Type", "application/json")
	hreq.Header.Set("X-Request-Id", uuid.NewString())

	if g.tokens != nil {
		token, err := g.tokens.Token(ctx)
		if err != nil {
			// Fail open: an unreadable token store means "no token".
			g.log.Warn(ctx, "token read failed", "error", err)
		} else if token != "" {
			hreq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := g.client.Do(hreq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %v", req.Method, req.Path, common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && g.tokens != nil {
		// The stored token is no longer honored; drop it so the next
		// restore starts anonymous.
		if err := g.tokens.Invalidate(ctx); err != nil {
			g.log.Warn(ctx, "token invalidation failed", "error", err)
		}
	}

	var envelope Response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		if resp.StatusCode >= 400 {
			return nil, &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= 400 || !envelope.Success {
		status := resp.StatusCode
		if status < 400 {
			status = http.StatusBadRequest
		}
		msg := envelope.Message
		if msg == "" {
			msg = http.StatusText(status)
		}
		return nil, &Error{Status: status, Message: msg}
	}

	return &envelope, nil
}
