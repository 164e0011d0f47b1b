package catalog

import (
	"context"
	"fmt"
	"time"
)

// Revision is one stored version of a saved query.
type Revision struct {
	Entry
	Revision int64
	Hash     string
	BatchID  string
	Source   string
	SavedAt  time.Time
}

const selectRevision = `
	SELECT r.name, r.revision, r.description, r.jql, r.fields, r.hash, r.batch_id, b.source, r.saved_at
	FROM revisions r
	JOIN batches b ON b.id = r.batch_id
`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRevision(row rowScanner) (Revision, error) {
	var (
		r          Revision
		fieldsJSON string
		savedAt    string
	)
	if err := row.Scan(
		&r.Name,
		&r.Revision,
		&r.Description,
		&r.JQL,
		&fieldsJSON,
		&r.Hash,
		&r.BatchID,
		&r.Source,
		&savedAt,
	); err != nil {
		return Revision{}, err
	}

	fields, err := unmarshalFields(fieldsJSON)
	if err != nil {
		return Revision{}, fmt.Errorf("revision %s@%d: %w", r.Name, r.Revision, err)
	}
	r.Fields = fields

	r.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt)
	if err != nil {
		return Revision{}, fmt.Errorf("revision %s@%d: parse saved_at: %w", r.Name, r.Revision, err)
	}
	return r, nil
}

// Get returns the latest revision of name, or ErrNotFound.
func (s *Store) Get(ctx context.Context, name string) (Revision, error) {
	revs, err := s.query(ctx, selectRevision+`
		WHERE r.name = ?
		ORDER BY r.revision DESC
		LIMIT 1
	`, name)
	if err != nil {
		return Revision{}, fmt.Errorf("get %q: %w", name, err)
	}
	if len(revs) == 0 {
		return Revision{}, fmt.Errorf("get %q: %w", name, ErrNotFound)
	}
	return revs[0], nil
}

// List returns the latest revision of every saved query, ordered by name.
// Returns an empty slice (not nil) when the catalog is empty.
func (s *Store) List(ctx context.Context) ([]Revision, error) {
	revs, err := s.query(ctx, selectRevision+`
		JOIN (
			SELECT name, MAX(revision) AS revision
			FROM revisions
			GROUP BY name
		) latest ON latest.name = r.name AND latest.revision = r.revision
		ORDER BY r.name COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return revs, nil
}

// History returns every revision of name, oldest first, or ErrNotFound.
func (s *Store) History(ctx context.Context, name string) ([]Revision, error) {
	revs, err := s.query(ctx, selectRevision+`
		WHERE r.name = ?
		ORDER BY r.revision ASC
	`, name)
	if err != nil {
		return nil, fmt.Errorf("history %q: %w", name, err)
	}
	if len(revs) == 0 {
		return nil, fmt.Errorf("history %q: %w", name, ErrNotFound)
	}
	return revs, nil
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]Revision, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query revisions: %w", err)
	}
	defer rows.Close()

	revs := []Revision{}
	for rows.Next() {
		r, err := scanRevision(rows)
		if err != nil {
			return nil, err
		}
		revs = append(revs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate revisions: %w", err)
	}
	return revs, nil
}
