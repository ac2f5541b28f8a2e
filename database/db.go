// Package database keeps an optional append-only history of searches in
// PostgreSQL. The JSON snapshot remains the primary artifact; this log exists
// for durability/audit and is disabled entirely when DATABASE_URL is unset.
package database

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
)

type SearchRecord struct {
	ID          string    `json:"id"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	DepartDate  string    `json:"depart_date"`
	ReturnDate  string    `json:"return_date"`
	MaxPrice    int       `json:"max_price"`
	OfferCount  int       `json:"offer_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type History struct {
	db *sql.DB
}

// Open connects to Postgres and ensures the searches table exists. An empty
// URL returns a nil History, which every method treats as a no-op.
func Open(url string) (*History, error) {
	if url == "" {
		return nil, nil
	}

	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS searches (
			id          TEXT PRIMARY KEY,
			origin      TEXT NOT NULL,
			destination TEXT NOT NULL,
			depart_date TEXT NOT NULL,
			return_date TEXT,
			max_price   INTEGER,
			offer_count INTEGER DEFAULT 0,
			created_at  TIMESTAMPTZ DEFAULT NOW()
		)`); err != nil {
		db.Close()
		return nil, err
	}

	return &History{db: db}, nil
}

// Append records a completed search. Failures are logged, never surfaced:
// history is a diagnostic artifact, like the snapshot.
func (h *History) Append(rec SearchRecord) {
	if h == nil {
		return
	}
	_, err := h.db.Exec(`
		INSERT INTO searches (id, origin, destination, depart_date, return_date, max_price, offer_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.Origin, rec.Destination, rec.DepartDate, rec.ReturnDate, rec.MaxPrice, rec.OfferCount)
	if err != nil {
		log.Printf("⚠️  Failed to append search history: %v", err)
	}
}

// Recent returns up to limit history rows, newest first.
func (h *History) Recent(limit int) ([]SearchRecord, error) {
	if h == nil {
		return nil, nil
	}

	rows, err := h.db.Query(`
		SELECT id, origin, destination, depart_date, return_date, max_price, offer_count, created_at
		FROM searches ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []SearchRecord
	for rows.Next() {
		var rec SearchRecord
		var returnDate sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Origin, &rec.Destination, &rec.DepartDate,
			&returnDate, &rec.MaxPrice, &rec.OfferCount, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.ReturnDate = returnDate.String
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (h *History) Close() error {
	if h == nil {
		return nil
	}
	return h.db.Close()
}

func (h *History) Enabled() bool {
	return h != nil
}
