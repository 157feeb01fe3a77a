package holdings

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/law-makers/holdings/internal/engine"
	"github.com/law-makers/holdings/pkg/models"
)

// stubFetcher serves canned HTML by URL; unknown URLs are 404s
type stubFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	errs  map[string]error
	calls []string
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{pages: map[string]string{}, errs: map[string]error{}}
}

func (s *stubFetcher) Name() string { return "stub" }

func (s *stubFetcher) Fetch(_ context.Context, url string) (*goquery.Document, error) {
	s.mu.Lock()
	s.calls = append(s.calls, url)
	html, ok := s.pages[url]
	err := s.errs[url]
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, engine.NewFetchError(url, 404, "")
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func (s *stubFetcher) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.calls))
	copy(out, s.calls)
	return out
}

// memWriter collects written batches
type memWriter struct {
	mu      sync.Mutex
	batches [][]models.Row
	err     error
}

func (m *memWriter) WriteRows(rows []models.Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.batches = append(m.batches, rows)
	return nil
}

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

const fullHeader = `<tr>
	<th>Stock Invested in</th><th>Sector</th><th>Value(Mn)</th><th>% of Total Holdings</th>
	<th>1M Change</th><th>1Y Highest Holding</th><th>1Y Lowest Holding</th><th>Quantity</th>
	<th>1M Change in Qty</th>
</tr>`

func holdingsPage(rows ...string) string {
	return `<html><body><table id="equityCompleteHoldingTable">` +
		fullHeader + strings.Join(rows, "") +
		`</table></body></html>`
}

func dataRow(cells ...string) string {
	return "<tr><td>" + strings.Join(cells, "</td><td>") + "</td></tr>"
}
