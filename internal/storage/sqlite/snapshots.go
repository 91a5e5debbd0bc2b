package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/evenbetter/backend/internal/models"
)

// SaveSnapshot replaces the participants and expenses of a session in one transaction.
// Positions preserve insertion order so settlements replay deterministically.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, sessionID string, snap models.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE sessions SET updated_at = ? WHERE id = ?",
		time.Now().Unix(), sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	if err := requireRow(res, sessionID); err != nil {
		return err
	}

	// Expenses first, they reference participants
	if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to clear expenses: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM participants WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to clear participants: %w", err)
	}

	for i, p := range snap.Participants {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO participants (session_id, id, name, is_vegetarian, position)
			 VALUES (?, ?, ?, ?, ?)`,
			sessionID, p.ID, p.Name, p.IsVegetarian, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant %s: %w", p.ID, err)
		}
	}

	for i, e := range snap.Expenses {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (session_id, id, payer_id, total_amount, general_amount, meat_amount, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			sessionID, e.ID, e.PayerID, e.TotalAmount, e.GeneralAmount, e.MeatAmount, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// loadSnapshot reads participants and expenses of a session in insertion order.
func loadSnapshot(ctx context.Context, tx *sql.Tx, sessionID string) (models.Snapshot, error) {
	snap := models.Snapshot{
		Participants: []models.Participant{},
		Expenses:     []models.Expense{},
	}

	rows, err := tx.QueryContext(ctx,
		"SELECT id, name, is_vegetarian FROM participants WHERE session_id = ? ORDER BY position",
		sessionID,
	)
	if err != nil {
		return snap, fmt.Errorf("failed to get participants: %w", err)
	}
	if err := scanRows(rows, func(rows *sql.Rows) error {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.Name, &p.IsVegetarian); err != nil {
			return err
		}
		snap.Participants = append(snap.Participants, p)
		return nil
	}); err != nil {
		return snap, fmt.Errorf("failed to scan participants: %w", err)
	}

	rows, err = tx.QueryContext(ctx,
		`SELECT id, payer_id, total_amount, general_amount, meat_amount
		 FROM expenses WHERE session_id = ? ORDER BY position`,
		sessionID,
	)
	if err != nil {
		return snap, fmt.Errorf("failed to get expenses: %w", err)
	}
	if err := scanRows(rows, func(rows *sql.Rows) error {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.PayerID, &e.TotalAmount, &e.GeneralAmount, &e.MeatAmount); err != nil {
			return err
		}
		snap.Expenses = append(snap.Expenses, e)
		return nil
	}); err != nil {
		return snap, fmt.Errorf("failed to scan expenses: %w", err)
	}

	return snap, nil
}

// scanRows calls fn for every row and closes rows.
func scanRows(rows *sql.Rows, fn func(*sql.Rows) error) error {
	defer rows.Close()
	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
