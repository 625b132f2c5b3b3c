// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledge

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pdiddy/knowledge-engine/pkg/common/errors"
	"github.com/pdiddy/knowledge-engine/pkg/types"
)

// knowledgeColumns is the scalar projection shared by every read. The
// payload is deliberately absent; it is reachable only through GetFile.
const knowledgeColumns = `k.id, k.creation_date, k.issuer_id, k.summary, k.title, k.type`

// Get returns the record with the given identifier, authors expanded.
func (s *Store) Get(ctx context.Context, id string) (types.Knowledge, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+knowledgeColumns+` FROM knowledge k WHERE k.id = ?`, id)

	var k types.Knowledge
	err := row.Scan(&k.ID, &k.CreationDate, &k.IssuerID, &k.Summary, &k.Title, &k.Type)
	if err == sql.ErrNoRows {
		return types.Knowledge{}, fmt.Errorf("knowledge %s: %w", id, errors.ErrNotFound)
	}
	if err != nil {
		return types.Knowledge{}, errors.Store(fmt.Errorf("reading knowledge %s: %w", id, err))
	}

	k.Authors, err = s.authorsFor(ctx, id)
	if err != nil {
		return types.Knowledge{}, err
	}
	return k, nil
}

// GetFile returns the stored attachment payload. Records without a
// payload and unknown identifiers both report not-found.
func (s *Store) GetFile(ctx context.Context, id string) ([]byte, error) {
	var file []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT file FROM knowledge WHERE id = ?`, id).Scan(&file)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("knowledge %s: %w", id, errors.ErrNotFound)
	}
	if err != nil {
		return nil, errors.Store(fmt.Errorf("reading payload for %s: %w", id, err))
	}
	if file == nil {
		return nil, fmt.Errorf("knowledge %s has no payload: %w", id, errors.ErrNotFound)
	}
	return file, nil
}

// List returns one page of records ordered by creation year descending.
// Pagination is offset-based (skip = page*size) with the identifier as
// a stable secondary sort key; it is not cursor-stable under concurrent
// inserts.
func (s *Store) List(ctx context.Context, page, size int) ([]types.Knowledge, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+knowledgeColumns+`
		 FROM knowledge k
		 ORDER BY k.creation_date DESC, k.id
		 LIMIT ? OFFSET ?`,
		size, skip(page, size))
	if err != nil {
		return nil, errors.Store(fmt.Errorf("listing knowledge: %w", err))
	}
	return s.collect(ctx, rows)
}

// ListByAuthor returns one page of records linked to the given author
// identifier, same ordering and pagination contract as List.
func (s *Store) ListByAuthor(ctx context.Context, authorID string, page, size int) ([]types.Knowledge, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+knowledgeColumns+`
		 FROM knowledge k
		 JOIN authored_by ab ON ab.knowledge_id = k.id
		 WHERE ab.author_id = ?
		 ORDER BY k.creation_date DESC, k.id
		 LIMIT ? OFFSET ?`,
		authorID, size, skip(page, size))
	if err != nil {
		return nil, errors.Store(fmt.Errorf("listing knowledge for author %s: %w", authorID, err))
	}
	return s.collect(ctx, rows)
}

// collect scans knowledge rows and expands each record's authors.
func (s *Store) collect(ctx context.Context, rows *sql.Rows) ([]types.Knowledge, error) {
	defer rows.Close()

	var results []types.Knowledge
	for rows.Next() {
		var k types.Knowledge
		if err := rows.Scan(&k.ID, &k.CreationDate, &k.IssuerID, &k.Summary, &k.Title, &k.Type); err != nil {
			return nil, errors.Store(fmt.Errorf("scanning row: %w", err))
		}
		results = append(results, k)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Store(fmt.Errorf("iterating rows: %w", err))
	}

	recordIDs := make([]string, len(results))
	for i, k := range results {
		recordIDs[i] = k.ID
	}
	byRecord, err := s.authorsForAll(ctx, recordIDs)
	if err != nil {
		return nil, err
	}
	for i := range results {
		results[i].Authors = byRecord[results[i].ID]
	}
	return results, nil
}

// authorsFor returns the author names linked to a record, sorted by
// name. Storage order is not semantically meaningful.
func (s *Store) authorsFor(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT a.name
		 FROM authored_by ab
		 JOIN authors a ON a.id = ab.author_id
		 WHERE ab.knowledge_id = ?
		 ORDER BY a.name`, id)
	if err != nil {
		return nil, errors.Store(fmt.Errorf("reading authors for %s: %w", id, err))
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Store(fmt.Errorf("scanning author: %w", err))
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Store(fmt.Errorf("iterating authors: %w", err))
	}
	return names, nil
}

// authorsForAll expands authors for a whole page of records in one
// round trip, keyed by record identifier and sorted by name within
// each record.
func (s *Store) authorsForAll(ctx context.Context, recordIDs []string) (map[string][]string, error) {
	if len(recordIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(recordIDs)), ",")
	args := make([]any, len(recordIDs))
	for i, id := range recordIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT ab.knowledge_id, a.name
		 FROM authored_by ab
		 JOIN authors a ON a.id = ab.author_id
		 WHERE ab.knowledge_id IN (`+placeholders+`)
		 ORDER BY a.name`, args...)
	if err != nil {
		return nil, errors.Store(fmt.Errorf("reading authors for page: %w", err))
	}
	defer rows.Close()

	byRecord := make(map[string][]string, len(recordIDs))
	for rows.Next() {
		var recordID, name string
		if err := rows.Scan(&recordID, &name); err != nil {
			return nil, errors.Store(fmt.Errorf("scanning author: %w", err))
		}
		byRecord[recordID] = append(byRecord[recordID], name)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Store(fmt.Errorf("iterating authors: %w", err))
	}
	return byRecord, nil
}

func skip(page, size int) int {
	n := page * size
	if n < 0 {
		return 0
	}
	return n
}
