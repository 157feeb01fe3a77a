package headers

import (
	"reflect"
	"testing"
)

func TestParseHeaders(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want map[string]string
	}{
		{"basic", []string{"User-Agent: Bot", "Accept: text/html", "BadHeader"}, map[string]string{"User-Agent": "Bot", "Accept": "text/html"}},
		{"value with colon", []string{"Referer: https://example.com:8443/x"}, map[string]string{"Referer": "https://example.com:8443/x"}},
		{"empty key", []string{": nothing", "  :x"}, map[string]string{}},
		{"last wins", []string{"X-A: 1", "X-A: 2"}, map[string]string{"X-A": "2"}},
		{"nil", nil, map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseHeaders(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("unexpected parse result: %#v", got)
			}
		})
	}
}
