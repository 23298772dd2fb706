package securestore

import "context"

// SessionTokens adapts a Store to the gateway's TokenSource contract:
// the stored auth token decorates outgoing requests, and a 401 response
// drops it.
type SessionTokens struct {
	store Store
}

func NewSessionTokens(store Store) *SessionTokens {
	return &SessionTokens{store: store}
}

func (s *SessionTokens) Token(ctx context.Context) (string, error) {
	raw, err := s.store.Get(ctx, TokenKey)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (s *SessionTokens) Invalidate(ctx context.Context) error {
	return s.store.Delete(ctx, TokenKey)
}
