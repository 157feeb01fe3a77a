package urlutil

import "testing"

func TestValidate(t *testing.T) {
	valid := []string{
		"http://example.com",
		"https://www.moneycontrol.com/mutual-funds/performance-tracker/returns/small-cap-fund.html",
	}
	for _, u := range valid {
		if err := ValidateURL(u); err != nil {
			t.Fatalf("expected valid, got error: %v", err)
		}
	}

	invalid := []string{"ftp://example.com", "//example.com", "http:///", "data.csv"}
	for _, u := range invalid {
		if err := ValidateURL(u); err == nil {
			t.Fatalf("expected invalid for %s", u)
		}
	}
}

func TestResolveURL(t *testing.T) {
	base := "https://example.com/mutual-funds/list.html"
	cases := map[string]string{
		"/f1/nav":                         "https://example.com/f1/nav",
		"f2/nav":                          "https://example.com/mutual-funds/f2/nav",
		"https://other.example.org/x/nav": "https://other.example.org/x/nav",
	}
	for in, want := range cases {
		if got := ResolveURL(base, in); got != want {
			t.Errorf("ResolveURL(%q) = %q, want %q", in, got, want)
		}
	}

	// A relative base leaves the href untouched
	if got := ResolveURL("/relative/base", "/f1/nav"); got != "/f1/nav" {
		t.Errorf("expected href unchanged, got %q", got)
	}
}
