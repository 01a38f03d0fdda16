package app

import (
	"net/url"
	"strings"

	"github.com/lib/pq"
)

const (
	preparedBinaryParam  = "disable_prepared_binary_result"
	maxTracedQueryLength = 512
)

// postgresDSN applies the prepared binary result toggle to either DSN form.
// An explicit value already present in the DSN wins.
func postgresDSN(raw string, disablePreparedBinary bool) string {
	raw = strings.TrimSpace(raw)
	if !disablePreparedBinary || raw == "" {
		return raw
	}

	if !isPostgresURL(raw) {
		if _, found := dsnValue(raw, preparedBinaryParam); found {
			return raw
		}
		return raw + " " + preparedBinaryParam + "=yes"
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	query := parsed.Query()
	if query.Has(preparedBinaryParam) {
		return raw
	}
	query.Set(preparedBinaryParam, "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// databaseName reports the dbname of a DSN for span attributes, or "".
func databaseName(raw string) string {
	raw = strings.TrimSpace(raw)
	if isPostgresURL(raw) {
		converted, err := pq.ParseURL(raw)
		if err != nil {
			return ""
		}
		raw = converted
	}
	name, _ := dsnValue(raw, "dbname")
	return name
}

func isPostgresURL(raw string) bool {
	return strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://")
}

func dsnValue(dsn, key string) (string, bool) {
	for _, field := range strings.Fields(dsn) {
		k, v, ok := strings.Cut(field, "=")
		if ok && k == key {
			return strings.Trim(v, `'"`), true
		}
	}
	return "", false
}

// traceQuery collapses whitespace so multi-line queries read as one span
// attribute, and caps the length.
func traceQuery(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if len(normalized) > maxTracedQueryLength {
		return normalized[:maxTracedQueryLength] + "..."
	}
	return normalized
}
