package model

import (
	"encoding/json"
	"strings"
	"time"
)

// Timestamps and dates are stored as TEXT, the format the legacy front-end
// expects: ISO-8601 UTC without sub-second precision, and YYYY-MM-DD dates.

func UTCNow() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05")
}

func Today() string {
	return time.Now().Format("2006-01-02")
}

// ParseStringList reads a TEXT column holding a JSON array. Legacy rows may
// hold a comma-separated string instead; both decode to the same slice.
func ParseStringList(value *string) []string {
	if value == nil || *value == "" {
		return []string{}
	}

	var items []string
	if err := json.Unmarshal([]byte(*value), &items); err == nil {
		return items
	}

	var out []string
	for _, s := range strings.Split(*value, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if out == nil {
		return []string{}
	}
	return out
}

// DumpStringList serializes a list for storage as the canonical JSON form.
func DumpStringList(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	return string(b)
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
