// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledge

import (
	"context"
	"fmt"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/pdiddy/knowledge-engine/pkg/common/errors"
	"github.com/pdiddy/knowledge-engine/pkg/types"
)

// Search executes a ranked full-text query. The query string is split
// on whitespace; each term becomes a disjunction of a prefix match and
// every indexed vocabulary word within edit distance 1, and the term
// clauses are joined with AND. Results are ordered by index relevance,
// then paginated. An empty query falls back to the unranked listing.
func (s *Store) Search(ctx context.Context, query string, page, size int) ([]types.Knowledge, error) {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return s.List(ctx, page, size)
	}

	match, err := s.buildMatch(ctx, terms)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+knowledgeColumns+`
		 FROM knowledge_fts
		 JOIN knowledge k ON k.rowid = knowledge_fts.rowid
		 WHERE knowledge_fts MATCH ?
		 ORDER BY knowledge_fts.rank
		 LIMIT ? OFFSET ?`,
		match, size, skip(page, size))
	if err != nil {
		return nil, errors.Store(fmt.Errorf("searching %q: %w", query, err))
	}
	return s.collect(ctx, rows)
}

// buildMatch assembles the FTS5 MATCH expression for the given terms:
// ("neural" * OR "neutral") AND ("networks" * OR "network").
func (s *Store) buildMatch(ctx context.Context, terms []string) (string, error) {
	clauses := make([]string, 0, len(terms))
	for _, term := range terms {
		folded := strings.ToLower(term)

		alternatives := []string{quoteFTS(folded) + " *"}
		variants, err := s.vocabularyVariants(ctx, folded)
		if err != nil {
			return "", err
		}
		for _, v := range variants {
			alternatives = append(alternatives, quoteFTS(v))
		}

		clauses = append(clauses, "("+strings.Join(alternatives, " OR ")+")")
	}
	return strings.Join(clauses, " AND "), nil
}

// vocabularyVariants returns indexed terms within Levenshtein distance
// 1 of term. The exact term is omitted; the prefix alternative already
// covers it. The fts5vocab scan is linear in vocabulary size, which is
// fine at this store's scale.
func (s *Store) vocabularyVariants(ctx context.Context, term string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT term FROM knowledge_fts_vocab`)
	if err != nil {
		return nil, errors.Store(fmt.Errorf("reading index vocabulary: %w", err))
	}
	defer rows.Close()

	var variants []string
	for rows.Next() {
		var candidate string
		if err := rows.Scan(&candidate); err != nil {
			return nil, errors.Store(fmt.Errorf("scanning vocabulary term: %w", err))
		}
		if candidate == term {
			continue
		}
		if levenshtein.Distance(term, candidate, nil) <= 1 {
			variants = append(variants, candidate)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Store(fmt.Errorf("iterating vocabulary: %w", err))
	}
	return variants, nil
}

// quoteFTS wraps a term as an FTS5 string literal.
func quoteFTS(term string) string {
	return `"` + strings.ReplaceAll(term, `"`, `""`) + `"`
}
