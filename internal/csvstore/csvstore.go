// Package csvstore persists analysis results as an append-only CSV and
// derives the resume set from it on the next run.
package csvstore

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/madetech/CodeCommit-AI-Summariser/internal/models"
)

type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// LoadProcessed returns the set of repository names already recorded in the
// output file. A missing or empty file yields an empty set. Columns are
// matched by header name, so column order does not matter. Any parse
// failure is returned as-is; the caller treats it as fatal rather than risk
// reprocessing or duplicating rows.
func (s *Store) LoadProcessed() (map[string]struct{}, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]struct{}{}, nil
		}
		return nil, fmt.Errorf("opening %s: %w", s.path, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", s.path, err)
	}
	if info.Size() == 0 {
		return map[string]struct{}{}, nil
	}

	var records []models.Record
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}

	processed := make(map[string]struct{}, len(records))
	for i, r := range records {
		if r.RepositoryName == "" {
			return nil, fmt.Errorf("parsing %s: row %d has no repository name", s.path, i+2)
		}
		processed[r.RepositoryName] = struct{}{}
	}
	return processed, nil
}

// Append writes one row, opening and closing the file per call so a crash
// after repository k leaves rows 1..k on disk. The header is written only
// when the file is new or empty.
func (s *Store) Append(rec models.Record) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", s.path, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", s.path, err)
	}

	rows := []models.Record{rec}
	if info.Size() == 0 {
		err = gocsv.Marshal(rows, f)
	} else {
		err = gocsv.MarshalWithoutHeaders(rows, f)
	}
	if err != nil {
		return fmt.Errorf("appending to %s: %w", s.path, err)
	}
	return nil
}
