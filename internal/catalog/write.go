package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Entry is a rendered query to save.
type Entry struct {
	Name        string
	Description string
	JQL         string
	Fields      []string
}

// SaveStatus reports what a save did to one entry.
type SaveStatus int

const (
	// StatusCreated means the name had no revisions before.
	StatusCreated SaveStatus = iota + 1
	// StatusUpdated means a new revision was appended.
	StatusUpdated
	// StatusUnchanged means the latest revision already had this content.
	StatusUnchanged
)

func (s SaveStatus) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusUpdated:
		return "updated"
	case StatusUnchanged:
		return "unchanged"
	default:
		return fmt.Sprintf("SaveStatus(%d)", int(s))
	}
}

// SaveResult is the outcome for one entry.
type SaveResult struct {
	Name     string
	Revision int64 // latest revision after the save
	Hash     string
	Status   SaveStatus
}

// Save records a single entry. See SaveBatch.
func (s *Store) Save(ctx context.Context, source string, e Entry) (SaveResult, error) {
	_, results, err := s.SaveBatch(ctx, source, []Entry{e})
	if err != nil {
		return SaveResult{}, err
	}
	return results[0], nil
}

// SaveBatch records entries in one transaction under a new import batch.
// source names where the entries came from (a file or directory path).
//
// Entries whose content matches their latest revision are left alone. The
// batch row is written only if at least one revision is; otherwise the
// returned batch ID is empty. Entry names must be unique within a call.
func (s *Store) SaveBatch(ctx context.Context, source string, entries []Entry) (string, []SaveResult, error) {
	seen := make(map[string]bool, len(entries))
	hashes := make([]string, len(entries))
	for i, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			return "", nil, fmt.Errorf("save: entry %d: name is required", i)
		}
		if seen[e.Name] {
			return "", nil, fmt.Errorf("save: entry %q appears twice", e.Name)
		}
		seen[e.Name] = true

		h, err := Hash(e)
		if err != nil {
			return "", nil, fmt.Errorf("save: %w", err)
		}
		hashes[i] = h
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", nil, fmt.Errorf("save: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	now := s.clock.Now().UTC()
	var batchID string
	results := make([]SaveResult, 0, len(entries))

	for i, e := range entries {
		latest, latestHash, err := latestRevision(ctx, tx, e.Name)
		if err != nil {
			return "", nil, fmt.Errorf("save %q: %w", e.Name, err)
		}
		if latest > 0 && latestHash == hashes[i] {
			results = append(results, SaveResult{Name: e.Name, Revision: latest, Hash: latestHash, Status: StatusUnchanged})
			continue
		}

		if batchID == "" {
			batchID = s.ids.Generate()
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO batches (id, source, created_at)
				VALUES (?, ?, ?)
			`, batchID, source, formatTime(now)); err != nil {
				return "", nil, fmt.Errorf("save: insert batch: %w", err)
			}
		}

		fieldsJSON, err := marshalFields(e.Fields)
		if err != nil {
			return "", nil, fmt.Errorf("save %q: %w", e.Name, err)
		}

		revision := latest + 1
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO revisions
			(name, revision, description, jql, fields, hash, batch_id, saved_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`,
			e.Name,
			revision,
			e.Description,
			e.JQL,
			fieldsJSON,
			hashes[i],
			batchID,
			formatTime(now),
		); err != nil {
			return "", nil, fmt.Errorf("save %q: insert revision: %w", e.Name, err)
		}

		status := StatusUpdated
		if latest == 0 {
			status = StatusCreated
		}
		results = append(results, SaveResult{Name: e.Name, Revision: revision, Hash: hashes[i], Status: status})
	}

	if err := tx.Commit(); err != nil {
		return "", nil, fmt.Errorf("save: commit: %w", err)
	}

	for _, r := range results {
		s.logger.Debug("catalog save",
			"name", r.Name,
			"revision", r.Revision,
			"status", r.Status.String(),
			"batch", batchID)
	}
	return batchID, results, nil
}

// latestRevision returns the highest revision and its hash, or 0 if the
// name has none.
func latestRevision(ctx context.Context, tx *sql.Tx, name string) (int64, string, error) {
	var (
		revision int64
		hash     string
	)
	err := tx.QueryRowContext(ctx, `
		SELECT revision, hash FROM revisions
		WHERE name = ?
		ORDER BY revision DESC
		LIMIT 1
	`, name).Scan(&revision, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", nil
	}
	if err != nil {
		return 0, "", fmt.Errorf("latest revision: %w", err)
	}
	return revision, hash, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
