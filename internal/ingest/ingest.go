// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest orchestrates landing-page ingestion: fetch the page,
// extract metadata, resolve the attachment, persist the record.
package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pdiddy/knowledge-engine/internal/acquire"
	"github.com/pdiddy/knowledge-engine/internal/extract"
	"github.com/pdiddy/knowledge-engine/internal/knowledge"
	"github.com/pdiddy/knowledge-engine/pkg/common/errors"
	"github.com/pdiddy/knowledge-engine/pkg/types"
)

// Pipeline ties the fetcher, extractor, and store together for one
// ingestion flow.
type Pipeline struct {
	fetcher        *acquire.Fetcher
	store          *knowledge.Store
	repositoryBase string
	log            *slog.Logger
}

// New creates a Pipeline.
func New(fetcher *acquire.Fetcher, store *knowledge.Store, cfg types.FetchConfig, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		fetcher:        fetcher,
		store:          store,
		repositoryBase: cfg.RepositoryBase,
		log:            logger,
	}
}

// CreateFromURL ingests one landing page and returns the persisted
// record without its payload. A fresh identifier is minted on every
// call; re-ingesting the same URL creates a new record. A page without
// an attachment link is persisted payload-free, but a discovered
// attachment that fails to download aborts the whole ingestion.
func (p *Pipeline) CreateFromURL(ctx context.Context, pageURL string) (types.Knowledge, error) {
	p.log.Info("ingesting landing page", "url", pageURL)

	doc, err := p.fetcher.FetchPage(ctx, pageURL)
	if err != nil {
		return types.Knowledge{}, errors.Upstream(fmt.Errorf("fetching page %s: %w", pageURL, err))
	}

	candidate := extract.Parse(doc, pageURL, p.repositoryBase)

	var file []byte
	if candidate.FileURL != "" {
		p.log.Info("downloading attachment", "url", candidate.FileURL)
		file, err = p.fetcher.DownloadFile(ctx, candidate.FileURL)
		if err != nil {
			return types.Knowledge{}, errors.Upstream(fmt.Errorf("downloading attachment for %s: %w", pageURL, err))
		}
	} else {
		p.log.Warn("no downloadable file link on page", "url", pageURL)
	}

	k := types.Knowledge{
		ID:           uuid.NewString(),
		Authors:      candidate.Authors,
		CreationDate: candidate.CreationDate,
		IssuerID:     candidate.IssuerID,
		Summary:      candidate.Summary,
		Title:        candidate.Title,
		Type:         candidate.Type,
		File:         file,
	}

	if err := p.store.Upsert(ctx, k); err != nil {
		return types.Knowledge{}, err
	}

	p.log.Info("created knowledge record", "id", k.ID, "authors", len(k.Authors))
	k.File = nil
	return k, nil
}
