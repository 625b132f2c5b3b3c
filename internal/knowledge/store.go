// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package knowledge persists publications and authors as a small graph
// (two entity tables plus a join table) and answers browse, full-text
// search, and co-authorship recommendation queries against it.
package knowledge

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/knowledge-engine/pkg/common/errors"
	"github.com/pdiddy/knowledge-engine/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "knowledge.db"
)

// Store manages the knowledge graph SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the database at dataDir/index/knowledge.db
// and ensures the schema and the full-text index exist. Creation is
// idempotent: running it on every start, or from concurrent processes,
// is safe.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS knowledge (
			id TEXT PRIMARY KEY,
			creation_date INTEGER NOT NULL DEFAULT 0,
			issuer_id TEXT NOT NULL DEFAULT '',
			summary TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL DEFAULT '',
			author_names TEXT NOT NULL DEFAULT '',
			file BLOB
		)`,
		`CREATE TABLE IF NOT EXISTS authors (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS authored_by (
			knowledge_id TEXT NOT NULL REFERENCES knowledge(id),
			author_id TEXT NOT NULL REFERENCES authors(id),
			PRIMARY KEY (knowledge_id, author_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_authored_by_author ON authored_by(author_id)`,
		`CREATE INDEX IF NOT EXISTS idx_knowledge_creation_date ON knowledge(creation_date DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 external-content index over title, summary, and the
	// synthesized author-names string, kept in sync by triggers. The
	// unicode61 tokenizer with diacritic removal folds case and accents
	// the way the search contract requires. Needs a driver compiled
	// with FTS5: build and test with -tags sqlite_fts5 (the mage
	// targets pass it).
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='knowledge_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE IF NOT EXISTS knowledge_fts USING fts5(
				title, summary, author_names,
				content=knowledge, content_rowid=rowid,
				tokenize='unicode61 remove_diacritics 2'
			)`,
			`CREATE VIRTUAL TABLE IF NOT EXISTS knowledge_fts_vocab
				USING fts5vocab('knowledge_fts', 'row')`,
			`CREATE TRIGGER IF NOT EXISTS knowledge_ai AFTER INSERT ON knowledge BEGIN
				INSERT INTO knowledge_fts(rowid, title, summary, author_names)
				VALUES (new.rowid, new.title, new.summary, new.author_names);
			END`,
			`CREATE TRIGGER IF NOT EXISTS knowledge_ad AFTER DELETE ON knowledge BEGIN
				INSERT INTO knowledge_fts(knowledge_fts, rowid, title, summary, author_names)
				VALUES ('delete', old.rowid, old.title, old.summary, old.author_names);
			END`,
			`CREATE TRIGGER IF NOT EXISTS knowledge_au AFTER UPDATE ON knowledge BEGIN
				INSERT INTO knowledge_fts(knowledge_fts, rowid, title, summary, author_names)
				VALUES ('delete', old.rowid, old.title, old.summary, old.author_names);
				INSERT INTO knowledge_fts(rowid, title, summary, author_names)
				VALUES (new.rowid, new.title, new.summary, new.author_names);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Upsert stores a complete knowledge record in one transaction: the
// scalar fields plus the synthesized author-names string, an Author row
// merged by exact name for every listed author (a fresh identifier is
// minted only on first creation), and the authorship link to each.
// All of it commits or fails together.
func (s *Store) Upsert(ctx context.Context, k types.Knowledge) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Store(fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback()

	authorNames := strings.Join(k.Authors, " ")

	_, err = tx.ExecContext(ctx,
		`INSERT INTO knowledge (id, creation_date, issuer_id, summary, title, type, author_names, file)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			creation_date=excluded.creation_date, issuer_id=excluded.issuer_id,
			summary=excluded.summary, title=excluded.title, type=excluded.type,
			author_names=excluded.author_names, file=excluded.file`,
		k.ID, k.CreationDate, k.IssuerID, k.Summary, k.Title, k.Type, authorNames, k.File,
	)
	if err != nil {
		return errors.Store(fmt.Errorf("upserting knowledge %s: %w", k.ID, err))
	}

	for _, name := range k.Authors {
		// Merge by exact name; the generated identifier survives only
		// when the name is new.
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO authors (id, name) VALUES (?, ?) ON CONFLICT(name) DO NOTHING`,
			uuid.NewString(), name,
		); err != nil {
			return errors.Store(fmt.Errorf("merging author %q: %w", name, err))
		}

		var authorID string
		if err := tx.QueryRowContext(ctx,
			`SELECT id FROM authors WHERE name = ?`, name,
		).Scan(&authorID); err != nil {
			return errors.Store(fmt.Errorf("resolving author %q: %w", name, err))
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO authored_by (knowledge_id, author_id) VALUES (?, ?)`,
			k.ID, authorID,
		); err != nil {
			return errors.Store(fmt.Errorf("linking author %q: %w", name, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Store(fmt.Errorf("committing upsert: %w", err))
	}
	return nil
}
