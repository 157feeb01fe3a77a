package holdings

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/law-makers/holdings/internal/engine"
	"github.com/law-makers/holdings/pkg/models"
)

// RowWriter receives the rows of one link as a single ordered batch
type RowWriter interface {
	WriteRows(rows []models.Row) error
}

// Processor turns one fund link into CSV rows
type Processor struct {
	fetcher       engine.Fetcher
	tableSelector string
	schema        models.Schema
	writer        RowWriter
}

// NewProcessor creates a Processor sharing writer with its siblings
func NewProcessor(f engine.Fetcher, tableSelector string, schema models.Schema, w RowWriter) *Processor {
	return &Processor{
		fetcher:       f,
		tableSelector: tableSelector,
		schema:        schema,
		writer:        w,
	}
}

// PageURL drops the trailing "nav" of a NAV-page link so that
// ".../portfolio-holdings/nav" becomes ".../portfolio-holdings/"
func PageURL(link string) string {
	if strings.HasSuffix(link, "/nav") {
		return strings.TrimSuffix(link, "nav")
	}
	return link
}

// Process fetches the holdings table behind link and writes its rows.
// Unreachable pages and pages without a table return a *SkipError and
// write nothing. An empty link is a no-op.
func (p *Processor) Process(ctx context.Context, link string) (int, error) {
	if link == "" {
		return 0, nil
	}

	pageURL := PageURL(link)
	log.Info().Str("url", pageURL).Msg("Fetching data")

	rows, err := FetchRows(ctx, p.fetcher, pageURL, p.tableSelector, p.schema)
	if err != nil {
		if fe, ok := engine.AsFetchError(err); ok {
			log.Warn().Str("url", pageURL).Int("status", fe.StatusCode).Msg("Failed to retrieve page")
			return 0, &SkipError{Link: pageURL, Err: err}
		}
		if errors.Is(err, ErrTableNotFound) {
			log.Warn().Str("url", pageURL).Msg("Table not found on page")
			return 0, &SkipError{Link: pageURL, Err: err}
		}
		return 0, err
	}

	if len(rows) == 0 {
		log.Info().Str("url", pageURL).Msg("No table data found")
		return 0, nil
	}

	if err := p.writer.WriteRows(rows); err != nil {
		return 0, err
	}

	log.Debug().Str("url", pageURL).Int("rows", len(rows)).Msg("Rows written")
	return len(rows), nil
}
