package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/eonwallet/walletcore/internal/common"
	"github.com/eonwallet/walletcore/internal/models"
)

// Artificial response delays. They are fixed on purpose: the point of the
// mock is to make the UI's loading states visible.
const (
	mockLoginDelay  = 1000 * time.Millisecond
	mockSlidesDelay = 500 * time.Millisecond
	mockSubmitDelay = 1000 * time.Millisecond
)

// mockSlides is the canned slide list served by the slides endpoint.
var mockSlides = []models.Slide{
	{
		ID:          1,
		Title:       "Secure & Safe",
		Description: "Your crypto assets are protected with bank-level security and encryption",
		Icon:        "lock.shield.fill",
	},
	{
		ID:          2,
		Title:       "Easy to Use",
		Description: "Manage your digital assets with an intuitive and user-friendly interface",
		Icon:        "hand.tap.fill",
	},
	{
		ID:          3,
		Title:       "Fast Transactions",
		Description: "Send and receive crypto instantly with low fees and high speed",
		Icon:        "bolt.fill",
	},
}

// Mock is a stateless Gateway that synthesizes responses for the three
// recognized routes after an artificial delay. It never talks to the network
// and mutates nothing.
type Mock struct {
	now func() time.Time

	loginDelay  time.Duration
	slidesDelay time.Duration
	submitDelay time.Duration
}

// NewMock returns a mock gateway with the standard delays.
func NewMock() *Mock {
	return &Mock{
		now:         time.Now,
		loginDelay:  mockLoginDelay,
		slidesDelay: mockSlidesDelay,
		submitDelay: mockSubmitDelay,
	}
}

// Do dispatches on (method, path). Unknown routes fail with ErrUnavailable:
// they are outside the mocked surface and must fail open rather than hang.
func (m *Mock) Do(ctx context.Context, req Request) (*Response, error) {
	switch {
	case req.Method == http.MethodPost && req.Path == LoginPath:
		if err := m.sleep(ctx, m.loginDelay); err != nil {
			return nil, err
		}
		return m.login(req.Body)

	case req.Method == http.MethodGet && req.Path == SlidesPath:
		if err := m.sleep(ctx, m.slidesDelay); err != nil {
			return nil, err
		}
		return success(mockSlides)

	case req.Method == http.MethodPost && req.Path == CardApplicationPath:
		if err := m.sleep(ctx, m.submitDelay); err != nil {
			return nil, err
		}
		return m.submitApplication()

	default:
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, common.ErrUnavailable)
	}
}

func (m *Mock) login(body any) (*Response, error) {
	var creds models.LoginRequest
	if err := rebind(body, &creds); err != nil {
		return nil, fmt.Errorf("decode login body: %w", err)
	}

	if creds.Email == "" || creds.Password == "" {
		return nil, &Error{Status: http.StatusBadRequest, Message: "Email and password are required"}
	}
	if len(creds.Password) < 6 {
		return nil, &Error{Status: http.StatusBadRequest, Message: "Password must be at least 6 characters"}
	}

	user := models.User{
		ID:    "1",
		Email: creds.Email,
		Name:  localPart(creds.Email),
	}
	token := fmt.Sprintf("mock-jwt-token-%d", m.now().UnixMilli())

	return success(struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}{User: user, Token: token})
}

func (m *Mock) submitApplication() (*Response, error) {
	now := m.now()
	record := models.ApplicationRecord{
		ApplicationID:           fmt.Sprintf("APP-%d", now.UnixMilli()),
		Status:                  models.ApplicationStatusPending,
		SubmittedAt:             now.UTC(),
		EstimatedProcessingTime: "3-5 business days",
	}

	resp, err := success(record)
	if err != nil {
		return nil, err
	}
	resp.Message = "Card application submitted successfully"
	return resp, nil
}

// sleep waits for the artificial delay, returning early if ctx is cancelled.
func (m *Mock) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func success(data any) (*Response, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Response{Success: true, Data: raw}, nil
}

// rebind converts a request body of any shape into dst via JSON round-trip,
// so callers may pass typed structs or generic maps.
func rebind(body, dst any) error {
	if body == nil {
		return nil
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

func localPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
