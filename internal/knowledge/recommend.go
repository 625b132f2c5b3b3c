// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledge

import (
	"context"
	"fmt"

	"github.com/pdiddy/knowledge-engine/pkg/common/errors"
	"github.com/pdiddy/knowledge-engine/pkg/types"
)

// Recommend returns up to limit other records that share at least one
// author with the given record, ranked by the count of distinct shared
// authors descending with the identifier as tiebreak. An unknown
// identifier, or a record with no co-authored neighbors, yields an
// empty result.
func (s *Store) Recommend(ctx context.Context, id string, limit int) ([]types.Recommendation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+knowledgeColumns+`, COUNT(DISTINCT src.author_id) AS shared_authors
		 FROM authored_by src
		 JOIN authored_by rec
			ON rec.author_id = src.author_id AND rec.knowledge_id <> src.knowledge_id
		 JOIN knowledge k ON k.id = rec.knowledge_id
		 WHERE src.knowledge_id = ?
		 GROUP BY rec.knowledge_id
		 ORDER BY shared_authors DESC, k.id
		 LIMIT ?`,
		id, limit)
	if err != nil {
		return nil, errors.Store(fmt.Errorf("recommending for %s: %w", id, err))
	}
	defer rows.Close()

	var results []types.Recommendation
	for rows.Next() {
		var r types.Recommendation
		if err := rows.Scan(&r.ID, &r.CreationDate, &r.IssuerID, &r.Summary, &r.Title, &r.Type, &r.SharedAuthors); err != nil {
			return nil, errors.Store(fmt.Errorf("scanning recommendation: %w", err))
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Store(fmt.Errorf("iterating recommendations: %w", err))
	}

	recordIDs := make([]string, len(results))
	for i, r := range results {
		recordIDs[i] = r.ID
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
