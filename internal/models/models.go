// Package models defines the client-side data models shared by the wallet
// core: the authenticated user, onboarding slides, and the card-application
// request/result pair.
package models

import "time"

// User is the account record returned by the login endpoint. It is immutable
// once constructed; a subsequent login replaces it wholesale.
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// Slide is a single onboarding/welcome carousel entry. Read-only; sourced
// either from the static in-code list or from the slides endpoint.
type Slide struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Icon            string `json:"icon"`
	IconColor       string `json:"iconColor,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
}

// Application status values produced by the card-application endpoint.
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusApproved = "approved"
	ApplicationStatusRejected = "rejected"
)

// ApplicationRecord is the immutable result of a successful card-application
// submission.
type ApplicationRecord struct {
	ApplicationID           string    `json:"applicationId"`
	Status                  string    `json:"status"`
	SubmittedAt             time.Time `json:"submittedAt"`
	EstimatedProcessingTime string    `json:"estimatedProcessingTime"`
}

// CardApplicationRequest is the payload sent to the card-application
// endpoint. OtherPurpose is set only when the "Others" purpose is selected.
type CardApplicationRequest struct {
	CardUsage    []string `json:"cardUsage"`
	Purposes     []string `json:"purposes"`
	OtherPurpose string   `json:"otherPurpose,omitempty"`
}

// LoginRequest carries the credentials posted to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
