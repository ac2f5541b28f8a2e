// Package snapshot persists the most recent search and its summarized results
// as a single JSON document. The file is overwritten wholesale on every
// search; concurrent writers race on last-write-wins semantics, which is fine
// for a diagnostic artifact.
package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"tripwise/services"
)

// Document is the persisted query + results payload. It doubles as the search
// response body.
type Document struct {
	Origin      string                  `json:"origin"`
	Destination string                  `json:"destination"`
	DepartDate  string                  `json:"depart_date"`
	ReturnDate  string                  `json:"return_date"`
	Offers      []services.OfferSummary `json:"offers"`
	SavedAt     string                  `json:"saved_at"`
}

type Store struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Init creates or clears the snapshot file so the store is never absent.
func (s *Store) Init() error {
	placeholder := map[string]any{
		"query":   map[string]any{},
		"results": []any{},
	}
	return s.write(placeholder)
}

// Write replaces the snapshot with doc.
func (s *Store) Write(doc Document) error {
	return s.write(doc)
}

// Read returns the current snapshot document as raw JSON.
func (s *Store) Read() (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

// ReadDocument decodes the snapshot into its typed form. After Init but
// before any search the document is the empty placeholder, which decodes to
// zero values.
func (s *Store) ReadDocument() (Document, error) {
	raw, err := s.Read()
	if err != nil {
		return Document{}, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// write marshals v and swaps it in via a temp file so a reader never sees a
// partial document.
func (s *Store) write(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.path)
}
