// internal/engine/dynamic_test.go
package engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestDynamicFetcher(t *testing.T) *DynamicFetcher {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping headless browser test in short mode")
	}
	if FindChrome("") == "" {
		t.Skip("chrome not available")
	}
	f := NewDynamicFetcher(DynamicOptions{
		Headless:  true,
		UserAgent: "TestFetcher/1.0",
		Timeout:   20 * time.Second,
	})
	t.Cleanup(func() { f.Close() })
	return f
}

func TestDynamicFetcher_Fetch_RendersScript(t *testing.T) {
	f := newTestDynamicFetcher(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<!DOCTYPE html>
<html>
<body>
	<div id="root"></div>
	<script>
		document.getElementById("root").innerHTML = '<table id="t"><tr><th>Sector</th></tr><tr><td>Energy</td></tr></table>';
	</script>
</body>
</html>`))
	}))
	defer server.Close()

	doc, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if got := doc.Find("#t td").Text(); got != "Energy" {
		t.Errorf("Expected script-rendered cell 'Energy', got %q", got)
	}
}

func TestDynamicFetcher_Fetch_NonOKStatus(t *testing.T) {
	f := newTestDynamicFetcher(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`<html><body>oops</body></html>`))
	}))
	defer server.Close()

	_, err := f.Fetch(context.Background(), server.URL)
	fe, ok := AsFetchError(err)
	if !ok {
		t.Fatalf("Expected *FetchError, got %v", err)
	}
	if fe.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", fe.StatusCode)
	}
}

func TestDynamicFetcher_Name(t *testing.T) {
	f := NewDynamicFetcher(DynamicOptions{})
	defer f.Close()
	if f.Name() != "DynamicFetcher" {
		t.Errorf("Expected name 'DynamicFetcher', got '%s'", f.Name())
	}
}
