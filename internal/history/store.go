// Package history persists the item status log: check-in/check-out
// events, bulk audit confirmations and teflon-coating shipments. It is
// the read side the result table sorts on ("latest status date") and the
// write target of the bulk-audit workflow.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure-Go SQLite driver, no CGO

	"kanadex/internal/domain"
)

// Store is the SQLite-backed status log. Safe for concurrent use; the
// underlying sql.DB serializes access.
type Store struct {
	db *sql.DB
}

// Entry is one status-log row for an item
type Entry struct {
	ItemID   string
	Status   string
	Actor    string
	Note     string
	Session  string
	LoggedAt time.Time
}

// TeflonEntry is one teflon-coating shipment record
type TeflonEntry struct {
	ItemID     string
	State      string
	SentAt     time.Time
	ReturnedAt time.Time // zero while still out
}

// Open creates or opens the status log at the given path
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}
	return s, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS status_log (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			item_id    TEXT NOT NULL,
			status     TEXT NOT NULL,
			actor      TEXT NOT NULL DEFAULT '',
			note       TEXT NOT NULL DEFAULT '',
			session_id TEXT NOT NULL DEFAULT '',
			logged_at  TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_status_log_item ON status_log(item_id, logged_at)`,
		`CREATE TABLE IF NOT EXISTS teflon_log (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			item_id     TEXT NOT NULL,
			state       TEXT NOT NULL,
			sent_at     TIMESTAMP NOT NULL,
			returned_at TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_teflon_log_item ON teflon_log(item_id, sent_at)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// RecordStatus appends a status-log entry for one item
func (s *Store) RecordStatus(itemID, status, actor, note string, at time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO status_log (item_id, status, actor, note, logged_at) VALUES (?, ?, ?, ?, ?)`,
		itemID, status, actor, note, at.UTC())
	if err != nil {
		return fmt.Errorf("failed to record status: %w", err)
	}
	return nil
}

// RecordAudit writes one "audited" entry per item inside a transaction,
// stamped with the audit session id. A failed batch leaves no partial rows.
func (s *Store) RecordAudit(sessionID string, itemIDs []string, actor string, at time.Time) error {
	if len(itemIDs) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin audit transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO status_log (item_id, status, actor, session_id, logged_at) VALUES (?, 'audited', ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare audit insert: %w", err)
	}
	defer stmt.Close()

	for _, id := range itemIDs {
		if _, err := stmt.Exec(id, actor, sessionID, at.UTC()); err != nil {
			return fmt.Errorf("failed to record audit for %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit audit: %w", err)
	}
	return nil
}

// LatestStatuses returns the newest status-log entry per item id
func (s *Store) LatestStatuses() (map[string]domain.ItemStatus, error) {
	rows, err := s.db.Query(`
		SELECT l.item_id, l.status, l.logged_at
		FROM status_log l
		JOIN (
			SELECT item_id, MAX(logged_at) AS max_at
			FROM status_log
			GROUP BY item_id
		) m ON l.item_id = m.item_id AND l.logged_at = m.max_at
		GROUP BY l.item_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest statuses: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.ItemStatus)
	for rows.Next() {
		var id, status string
		var at time.Time
		if err := rows.Scan(&id, &status, &at); err != nil {
			return nil, fmt.Errorf("failed to scan status row: %w", err)
		}
		out[id] = domain.ItemStatus{Text: status, Date: at}
	}
	return out, rows.Err()
}

// History returns an item's status log, newest first
func (s *Store) History(itemID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(`
		SELECT item_id, status, actor, note, session_id, logged_at
		FROM status_log
		WHERE item_id = ?
		ORDER BY logged_at DESC, id DESC
		LIMIT ?`, itemID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ItemID, &e.Status, &e.Actor, &e.Note, &e.Session, &e.LoggedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// RecordTeflonSent records a mold leaving for teflon coating
func (s *Store) RecordTeflonSent(itemID string, at time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO teflon_log (item_id, state, sent_at) VALUES (?, 'sent', ?)`,
		itemID, at.UTC())
	if err != nil {
		return fmt.Errorf("failed to record teflon shipment: %w", err)
	}
	return nil
}

// RecordTeflonReturned closes the newest open teflon record for the item
func (s *Store) RecordTeflonReturned(itemID string, at time.Time) error {
	_, err := s.db.Exec(`
		UPDATE teflon_log
		SET state = 'returned', returned_at = ?
		WHERE id = (
			SELECT id FROM teflon_log
			WHERE item_id = ? AND returned_at IS NULL
			ORDER BY sent_at DESC LIMIT 1
		)`, at.UTC(), itemID)
	if err != nil {
		return fmt.Errorf("failed to record teflon return: %w", err)
	}
	return nil
}

// TeflonHistory returns an item's teflon-coating records, newest first
func (s *Store) TeflonHistory(itemID string) ([]TeflonEntry, error) {
	rows, err := s.db.Query(`
		SELECT item_id, state, sent_at, returned_at
		FROM teflon_log
		WHERE item_id = ?
		ORDER BY sent_at DESC, id DESC`, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to query teflon history: %w", err)
	}
	defer rows.Close()

	var out []TeflonEntry
	for rows.Next() {
		var e TeflonEntry
		var returned sql.NullTime
		if err := rows.Scan(&e.ItemID, &e.State, &e.SentAt, &returned); err != nil {
			return nil, fmt.Errorf("failed to scan teflon row: %w", err)
		}
		if returned.Valid {
			e.ReturnedAt = returned.Time
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
