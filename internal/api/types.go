package api

import (
	"fmt"

	"finboard/internal/core"
)

// Wire shapes for the backend endpoints. Key casing is part of the contract:
// the date-range and normalize envelopes use lowerCamel keys while the
// add-transaction body uses the transaction record's capitalized keys.
type (
	dateRangeRequest struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}

	addTransactionRequest struct {
		Amount         string `json:"Amount"`
		Classification string `json:"Classification"`
		Receiver       string `json:"Receiver"`
		Date           string `json:"Date"`
	}

	reclassifyRequest struct {
		Original          core.Transaction `json:"original"`
		NewClassification string           `json:"newClassification"`
	}

	// paidToMe is null when zero and payers is null when empty, matching
	// what the backend expects for "nothing reimbursed".
	normalizeRequest struct {
		Original core.Transaction `json:"original"`
		PaidToMe *string          `json:"paidToMe"`
		Payers   []core.Payer     `json:"payers"`
	}

	normalizeResponse struct {
		UpdatedTransaction *core.Transaction `json:"updated_transaction"`
	}
)

// TokenStatus is one user's transaction-session status record.
type TokenStatus struct {
	UserID         string  `json:"user_id"`
	Authenticated  bool    `json:"authenticated"`
	AuthTimestamp  string  `json:"auth_timestamp"`
	ExpiresAt      string  `json:"expires_at"`
	HoursRemaining float64 `json:"hours_remaining"`
	NeedsReauth    bool    `json:"needs_reauth"`
	Message        string  `json:"message"`
}

// Error is a non-2xx backend response. The body text is the error detail
// surfaced to the user.
type Error struct {
	Status int
	Body   string
}

func (e *Error) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Body)
}
