// Package application owns the multi-step card-application form: the
// usage/purpose selections, the free-text "Others" purpose, and the
// submission lifecycle.
package application

import (
	"context"
	"strings"
	"sync"

	"github.com/eonwallet/walletcore/internal/api"
	"github.com/eonwallet/walletcore/internal/logging"
	"github.com/eonwallet/walletcore/internal/models"
	"github.com/eonwallet/walletcore/internal/validation"
)

// Card usage tags.
const (
	UsageOnline   = "online"
	UsageOverseas = "overseas"
)

// Purpose tags.
const (
	PurposeMemberPrivileges   = "Member Privileges"
	PurposePaymentCard        = "Payment Card"
	PurposeProductFinancing   = "Product Financing"
	PurposeBusinessSettlement = "Business Settlement"
	PurposeOthers             = "Others"
)

// CardUsageOptions and PurposeOptions are the closed tag sets the form
// presents, in display order.
var (
	CardUsageOptions = []string{UsageOnline, UsageOverseas}
	PurposeOptions   = []string{
		PurposeMemberPrivileges,
		PurposePaymentCard,
		PurposeProductFinancing,
		PurposeBusinessSettlement,
		PurposeOthers,
	}
)

// State is the observable form state. Selections keep insertion order.
// Result is set once by a successful submission and never mutated after;
// a new submission requires Reset.
type State struct {
	SelectedCardUsage []string
	SelectedPurposes  []string
	OtherPurposeText  string
	IsLoading         bool
	Err               string
	Result            *models.ApplicationRecord
}

// Store is the card-application state machine.
type Store struct {
	mu     sync.Mutex
	client api.Client
	log    logging.Logger

	state State
}

func NewStore(client api.Client, log logging.Logger) *Store {
	return &Store{client: client, log: log}
}

// State returns a snapshot of the current form.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.SelectedCardUsage = append([]string(nil), st.SelectedCardUsage...)
	st.SelectedPurposes = append([]string(nil), st.SelectedPurposes...)
	if st.Result != nil {
		r := *st.Result
		st.Result = &r
	}
	return st
}

// ToggleCardUsage flips membership of tag in the usage selection and clears
// any pending error.
func (s *Store) ToggleCardUsage(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SelectedCardUsage = toggle(s.state.SelectedCardUsage, tag)
	s.state.Err = ""
}

// TogglePurpose flips membership of tag in the purpose selection. Toggling
// "Others" off additionally clears the free-text purpose. Clears any pending
// error.
func (s *Store) TogglePurpose(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SelectedPurposes = toggle(s.state.SelectedPurposes, tag)
	if tag == PurposeOthers && !contains(s.state.SelectedPurposes, PurposeOthers) {
		s.state.OtherPurposeText = ""
	}
	s.state.Err = ""
}

// SetOtherPurposeText overwrites the free-text purpose and clears any
// pending error.
func (s *Store) SetOtherPurposeText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.OtherPurposeText = text
	s.state.Err = ""
}

// ClearError drops the pending error without touching selections.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Err = ""
}

// Reset returns the form to its initial editing state, dropping selections,
// the free-text purpose, any error, and a previous submission result.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
}

// Submit validates the form, then submits it through the gateway. The
// precondition checks run in order and short-circuit with a validation error
// and no network call: usage selection non-empty, purpose selection
// non-empty, and a non-blank free-text purpose when "Others" is selected.
// On success the returned record is stored and the form is submitted; on
// rejection the message is surfaced as the form error and editing resumes.
func (s *Store) Submit(ctx context.Context) error {
	s.mu.Lock()
	req, verr := s.buildRequest()
	if verr != nil {
		s.state.Err = verr.Message
		s.mu.Unlock()
		return verr
	}
	s.state.IsLoading = true
	s.state.Err = ""
	s.mu.Unlock()

	record, err := s.client.SubmitApplication(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsLoading = false
	if err != nil {
		s.state.Err = err.Error()
		s.log.Warn(ctx, "card application failed", "error", err)
		return err
	}

	s.state.Result = record
	s.log.Info(ctx, "card application submitted", "application_id", record.ApplicationID)
	return nil
}

// buildRequest validates the current selections and assembles the payload.
// Caller holds the lock.
func (s *Store) buildRequest() (models.CardApplicationRequest, *validation.Error) {
	if len(s.state.SelectedCardUsage) == 0 {
		return models.CardApplicationRequest{}, &validation.Error{
			Message: "Please select at least one card usage option (Online Shopping or Overseas Use)",
		}
	}
	if len(s.state.SelectedPurposes) == 0 {
		return models.CardApplicationRequest{}, &validation.Error{
			Message: "Please select at least one purpose for transaction",
		}
	}

	othersSelected := contains(s.state.SelectedPurposes, PurposeOthers)
	otherText := strings.TrimSpace(s.state.OtherPurposeText)
	if othersSelected && otherText == "" {
		return models.CardApplicationRequest{}, &validation.Error{
			Message: `Please specify the purpose when selecting "Others"`,
		}
	}

	req := models.CardApplicationRequest{
		CardUsage: append([]string(nil), s.state.SelectedCardUsage...),
		Purposes:  append([]string(nil), s.state.SelectedPurposes...),
	}
	if othersSelected {
		req.OtherPurpose = otherText
	}
	return req, nil
}

func toggle(set []string, tag string) []string {
	if contains(set, tag) {
		out := make([]string, 0, len(set)-1)
		for _, v := range set {
			if v != tag {
				out = append(out, v)
			}
		}
		return out
	}
	return append(set, tag)
}

func contains(set []string, tag string) bool {
	for _, v := range set {
		if v == tag {
			return true
		}
	}
	return false
}
