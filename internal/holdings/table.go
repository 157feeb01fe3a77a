package holdings

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/holdings/internal/engine"
	"github.com/law-makers/holdings/pkg/models"
)

// HeaderMap maps a column name to its zero-based position in one page's table
type HeaderMap map[string]int

// Index returns the position of name, or false if the page lacks the column
func (h HeaderMap) Index(name string) (int, bool) {
	idx, ok := h[name]
	return idx, ok
}

// NewHeaderMap builds a HeaderMap from the header cells of a table row.
// A repeated name keeps its last position.
func NewHeaderMap(cells *goquery.Selection) HeaderMap {
	hm := make(HeaderMap, cells.Length())
	cells.Each(func(i int, s *goquery.Selection) {
		hm[normalizeText(s.Text())] = i
	})
	return hm
}

// FetchRows downloads pageURL and extracts its holdings table
func FetchRows(ctx context.Context, f engine.Fetcher, pageURL, tableSelector string, schema models.Schema) ([]models.Row, error) {
	doc, err := f.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return ParseTable(doc, pageURL, tableSelector, schema)
}

// ParseTable extracts rows from the first table matching tableSelector.
// The first tr is the header row; every later tr with at least one td yields
// one Row laid out by schema.Columns.
func ParseTable(doc *goquery.Document, pageURL, tableSelector string, schema models.Schema) ([]models.Row, error) {
	table := doc.Find(tableSelector).First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w on page %s", ErrTableNotFound, pageURL)
	}

	trs := table.Find("tr")
	if trs.Length() == 0 {
		return []models.Row{}, nil
	}

	headerCells := trs.First().Find("th")
	if headerCells.Length() == 0 {
		headerCells = trs.First().Find("td")
	}
	headers := NewHeaderMap(headerCells)

	missing := 0
	for _, name := range schema.Required {
		if _, ok := headers.Index(name); !ok {
			missing++
		}
	}
	if missing > 0 {
		log.Debug().Str("url", pageURL).Int("missing_columns", missing).Msg("Holdings table lacks some columns")
	}

	rows := make([]models.Row, 0, trs.Length()-1)
	trs.Slice(1, goquery.ToEnd).Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return
		}
		rows = append(rows, buildRow(cells, headers, pageURL, schema))
	})

	return rows, nil
}

func buildRow(cells *goquery.Selection, headers HeaderMap, pageURL string, schema models.Schema) models.Row {
	row := make(models.Row, len(schema.Columns))
	for i, col := range schema.Columns {
		if col == schema.LinkColumn {
			row[i] = pageURL
			continue
		}
		if !schema.IsRequired(col) {
			continue
		}
		idx, ok := headers.Index(col)
		if !ok || idx >= cells.Length() {
			continue
		}
		row[i] = normalizeText(cells.Eq(idx).Text())
	}
	return row
}

// normalizeText trims the text and collapses inner whitespace runs
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
