// Package archive keeps a durable record of contact submissions and
// privacy-conscious visit counts in SQLite.
package archive

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Zachkp/portfolio/internal/model"
)

// Retention is how long visit rows are kept.
const Retention = 365 * 24 * time.Hour

type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

type Stats struct {
	TotalVisitors    int64           `json:"total_visitors"`
	UniqueVisitors   int64           `json:"unique_visitors"`
	VisitorsToday    int64           `json:"visitors_today"`
	VisitorsThisWeek int64           `json:"visitors_this_week"`
	TotalContacts    int64           `json:"total_contacts"`
	RecentVisitors   []Visit         `json:"recent_visitors"`
	RecentContacts   []model.Contact `json:"recent_contacts"`
}

type DB struct {
	db   *sql.DB
	salt string
	now  func() time.Time
}

// Open opens (creating if needed) the archive at path. ":memory:" gives a
// private in-memory database. salt keys the IP hashes.
func Open(path, salt string) (*DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create archive dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	// One connection: SQLite serializes writers anyway, and an in-memory
	// database only exists on the connection that created it.
	db.SetMaxOpenConns(1)

	a := &DB{db: db, salt: salt, now: time.Now}
	if err := a.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

func (a *DB) Close() error { return a.db.Close() }

func (a *DB) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS visitors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hashed_ip TEXT NOT NULL,
			user_agent TEXT,
			path TEXT,
			timestamp DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS visitors_timestamp ON visitors(timestamp)`,
		`CREATE TABLE IF NOT EXISTS contacts (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			project_type TEXT,
			message TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
	}
	for _, s := range stmts {
		if _, err := a.db.Exec(s); err != nil {
			return fmt.Errorf("migrate archive: %w", err)
		}
	}
	return nil
}

// HashIP hashes an address with the archive salt; raw IPs are never stored.
func (a *DB) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + a.salt))
	return hex.EncodeToString(sum[:])[:16]
}

func (a *DB) RecordVisit(ip, userAgent, path string) error {
	_, err := a.db.Exec(`
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, a.HashIP(ip), userAgent, path, a.now().UTC())
	return err
}

func (a *DB) SaveContact(c model.Contact) error {
	_, err := a.db.Exec(`
		INSERT INTO contacts (id, name, email, project_type, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Email, c.ProjectType, c.Message, c.CreatedAt.UTC())
	return err
}

// Cleanup deletes visits older than Retention and returns how many went.
func (a *DB) Cleanup() (int64, error) {
	res, err := a.db.Exec(`DELETE FROM visitors WHERE timestamp < ?`, a.now().UTC().Add(-Retention))
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		log.Printf("Privacy cleanup: removed %d visitor records older than 12 months", n)
	}
	return n, nil
}

func (a *DB) Stats() (*Stats, error) {
	stats := &Stats{
		RecentVisitors: []Visit{},
		RecentContacts: []model.Contact{},
	}
	now := a.now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{midnight}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{now.Add(-7 * 24 * time.Hour)}},
		{&stats.TotalContacts, `SELECT COUNT(*) FROM contacts`, nil},
	}
	for _, c := range counts {
		if err := a.db.QueryRow(c.query, c.args...).Scan(c.dst); err != nil {
			return nil, err
		}
	}

	rows, err := a.db.Query(`
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT 50
	`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var v Visit
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Timestamp); err != nil {
			rows.Close()
			return nil, err
		}
		stats.RecentVisitors = append(stats.RecentVisitors, v)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, err
	}

	rows, err = a.db.Query(`
		SELECT id, name, email, project_type, message, created_at
		FROM contacts
		ORDER BY created_at DESC
		LIMIT 20
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var c model.Contact
		var pt sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &pt, &c.Message, &c.CreatedAt); err != nil {
			return nil, err
		}
		if pt.Valid {
			c.ProjectType = model.StringPtr(pt.String)
		}
		stats.RecentContacts = append(stats.RecentContacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}
