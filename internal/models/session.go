package models

// Session is a persisted ledger: the participants and expenses of one event.
type Session struct {
	// ID is the unique identifier for the session (UUID format).
	ID string `json:"id"`

	// EventName is an optional title shown on the shared report.
	EventName string `json:"event_name"`

	// Snapshot holds the participants and expenses in insertion order.
	Snapshot Snapshot `json:"snapshot"`

	// CreatedAt is the Unix timestamp when the session was created.
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix timestamp of the last ledger change.
	UpdatedAt int64 `json:"updated_at"`
}

// Preferences are the presentation settings used to render a settlement.
// They are passed explicitly to the renderer; nothing reads them globally.
type Preferences struct {
	// Language is "he" or "en".
	Language string `json:"language"`

	// Currency is an ISO 4217 code used only to pick a display symbol.
	Currency string `json:"currency"`

	// IncludeImage selects image+text sharing over text only.
	IncludeImage bool `json:"include_image"`
}
