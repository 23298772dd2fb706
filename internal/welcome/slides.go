// Package welcome serves the onboarding carousel slides, either from the
// slides endpoint or from the static in-code list, depending on build
// configuration.
package welcome

import (
	"context"

	"github.com/eonwallet/walletcore/internal/api"
	"github.com/eonwallet/walletcore/internal/logging"
	"github.com/eonwallet/walletcore/internal/models"
)

// Source selects where slides come from.
type Source string

const (
	SourceAPI    Source = "api"
	SourceStatic Source = "static"
)

// staticSlides is the built-in carousel used when no slides endpoint is
// wired.
var staticSlides = []models.Slide{
	{
		ID:              1,
		Title:           "Manage Your AEON Caards",
		Description:     "Explore the benefits of AEON Member Plus Visa Card and keep track of your day-to-day wallet expenses.",
		Icon:            "card",
		IconColor:       "#E91E63",
		BackgroundColor: "#FCE4EC",
	},
	{
		ID:              2,
		Title:           "Earn Points",
		Description:     "Collect and convert your points to make your cash back explode! Show your membership barcode upon checkouts at any AEON retail now.",
		Icon:            "gift",
		IconColor:       "#FF6B35",
		BackgroundColor: "#FFF3E0",
	},
	{
		ID:              3,
		Title:           "QR Payment",
		Description:     "Paying with the app has never been easier! Launch the app, scan the QR code at the cashier and you're set!",
		Icon:            "qr-code",
		IconColor:       "#E91E63",
		BackgroundColor: "#FCE4EC",
	},
	{
		ID:              4,
		Title:           "Instant Top Up",
		Description:     "Leave your membership card at home and enjoy rapid top up processes, anywhere and anytime, with no additional fees.",
		Icon:            "flash",
		IconColor:       "#E91E63",
		BackgroundColor: "#FCE4EC",
	},
}

// Service fetches slides for the welcome carousel.
type Service struct {
	client api.Client
	source Source
	log    logging.Logger
}

func NewService(client api.Client, source Source, log logging.Logger) *Service {
	return &Service{client: client, source: source, log: log}
}

// Slides returns the carousel content. The static source never fails and
// never touches the gateway.
func (s *Service) Slides(ctx context.Context) ([]models.Slide, error) {
	if s.source == SourceStatic {
		return append([]models.Slide(nil), staticSlides...), nil
	}

	slides, err := s.client.Slides(ctx)
	if err != nil {
		s.log.Warn(ctx, "slides fetch failed", "error", err)
		return nil, err
	}
	return slides, nil
}
