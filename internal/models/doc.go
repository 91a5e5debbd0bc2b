// Package models defines the core domain models for EvenBetter.
//
// # Core Models
//
//   - Participant: a person sharing the costs, optionally vegetarian
//   - Expense: what one participant paid, split into general and meat amounts
//   - Snapshot: an insertion-ordered copy of a ledger's participants and expenses
//   - Settlement: the computed shares, balances and payments for a snapshot
//
// # Collaborator Models
//
//   - Session: a persisted ledger snapshot plus its event name
//   - Preferences: language, currency and share settings for rendering
//
// # Design Principles
//
//  1. **Plain data**: models carry no behavior beyond small lookups, so the
//     ledger, calculator, storage and RPC layers can pass them around freely
//  2. **Avoid circular references**: expenses reference payers by ID string
//  3. **Ordered collections**: slices, never maps, so insertion order survives
//     persistence and drives deterministic settlement output
package models
