// Package api exposes a typed client for the three wallet endpoints on top
// of the transport-agnostic gateway contract.
package api

import (
	"context"

	"github.com/eonwallet/walletcore/internal/models"
)

// Client is the typed API surface consumed by the state stores.
//
// Contract:
//   - Login: authenticate with email/password, returning the user and token.
//   - Slides: fetch the onboarding carousel slides.
//   - SubmitApplication: submit a card application, returning its record.
//
// Endpoint rejections surface as *gateway.Error; transport failures as
// ordinary errors. All methods honor context cancellation.
type Client interface {
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Slides(ctx context.Context) ([]models.Slide, error)
	SubmitApplication(ctx context.Context, req models.CardApplicationRequest) (*models.ApplicationRecord, error)
}
