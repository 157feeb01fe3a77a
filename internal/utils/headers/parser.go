package headers

import (
	"strings"
)

// ParseHeaders converts "Key: Value" strings into a map. Entries without a
// colon or with an empty key are ignored; a repeated key keeps the last value.
func ParseHeaders(h []string) map[string]string {
	m := make(map[string]string, len(h))
	for _, hdr := range h {
		key, value, ok := strings.Cut(hdr, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		m[key] = strings.TrimSpace(value)
	}
	return m
}
