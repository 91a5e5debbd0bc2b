package rpc

import "github.com/evenbetter/backend/internal/models"

// Amounts travel as decimal strings ("12.50") so user input is parsed
// exactly. Optional fields are pointers; nil means "not entered".

// ExpenseInput is one payer's expense as typed into the form.
type ExpenseInput struct {
	Total   string  `json:"total"`
	Meat    *string `json:"meat,omitempty"`
	General *string `json:"general,omitempty"`
}

type CreateSessionRequest struct {
	EventName string `json:"event_name"`
}

type CreateSessionResponse struct {
	Session *models.Session `json:"session"`
	// Token authorizes every later call on this session.
	Token string `json:"token"`
}

type GetSessionRequest struct{}

type GetSessionResponse struct {
	Session *models.Session `json:"session"`
}

type RenameSessionRequest struct {
	EventName string `json:"event_name"`
}

type RenameSessionResponse struct {
	Session *models.Session `json:"session"`
}

type AddParticipantRequest struct {
	Name         string        `json:"name"`
	IsVegetarian bool          `json:"is_vegetarian"`
	Expense      *ExpenseInput `json:"expense,omitempty"`
}

type AddParticipantResponse struct {
	Participant models.Participant `json:"participant"`
	Expense     *models.Expense    `json:"expense,omitempty"`
	Session     *models.Session    `json:"session"`
}

type AddExpenseRequest struct {
	PayerID string  `json:"payer_id"`
	Total   string  `json:"total"`
	Meat    *string `json:"meat,omitempty"`
	General *string `json:"general,omitempty"`
}

type AddExpenseResponse struct {
	Expense models.Expense  `json:"expense"`
	Session *models.Session `json:"session"`
}

type RemoveParticipantRequest struct {
	ParticipantID string `json:"participant_id"`
}

type RemoveParticipantResponse struct {
	Session *models.Session `json:"session"`
}

type ResetSessionRequest struct{}

type ResetSessionResponse struct {
	Session *models.Session `json:"session"`
}

type DeleteSessionRequest struct{}

type DeleteSessionResponse struct{}

type GetSettlementRequest struct{}

// SettlementErrorNoEligibleMeatPayers is the code of a meat pool nobody can bear.
const SettlementErrorNoEligibleMeatPayers = "no_eligible_meat_payers"

// SettlementError is the non-fatal outcome of a settlement that cannot be computed.
type SettlementError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// GetSettlementResponse holds at most one of Settlement and Error.
// Both are empty when there is nothing to settle yet.
type GetSettlementResponse struct {
	Settlement *models.Settlement `json:"settlement,omitempty"`
	Error      *SettlementError   `json:"error,omitempty"`
}

type ShareSettlementRequest struct {
	RoundAmounts bool `json:"round_amounts"`
}

type ShareSettlementResponse struct {
	// Message is the full report text.
	Message string `json:"message"`
	// Parts is Message cut to a safe length when an image goes along.
	Parts        []string `json:"parts"`
	IncludeImage bool     `json:"include_image"`
}

type GetPreferencesRequest struct{}

type GetPreferencesResponse struct {
	Preferences models.Preferences `json:"preferences"`
}

type UpdatePreferencesRequest struct {
	Language     *string `json:"language,omitempty"`
	Currency     *string `json:"currency,omitempty"`
	IncludeImage *bool   `json:"include_image,omitempty"`
}

type UpdatePreferencesResponse struct {
	Preferences models.Preferences `json:"preferences"`
}

type ToggleLanguageRequest struct{}

type ToggleLanguageResponse struct {
	Preferences models.Preferences `json:"preferences"`
}

type DetectPreferencesRequest struct {
	// Locale is a BCP 47 tag such as "he-IL".
	Locale string `json:"locale"`
}

type DetectPreferencesResponse struct {
	Preferences models.Preferences `json:"preferences"`
}
