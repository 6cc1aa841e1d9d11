// Package dburl handles the Postgres connection strings shared by the export
// sinks and the migration command. Both URL ("postgres://...") and keyword
// ("host=... dbname=...") forms are accepted.
package dburl

import (
	"net/url"
	"strings"
)

const preparedBinaryParam = "disable_prepared_binary_result"

// WithPreparedBinaryDisabled sets disable_prepared_binary_result=yes on URL
// style strings unless the caller already chose a value. Poolers running in
// transaction mode need it.
func WithPreparedBinaryDisabled(raw string, disable bool) string {
	if !disable {
		return raw
	}
	parsed, ok := parseURL(raw)
	if !ok {
		return raw
	}
	query := parsed.Query()
	if query.Get(preparedBinaryParam) != "" {
		return raw
	}
	query.Set(preparedBinaryParam, "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// Name returns the database name, or "" when none is set.
func Name(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if parsed, ok := parseURL(trimmed); ok {
		if name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/")); name != "" {
			return name
		}
	}
	return keyword(trimmed, "dbname")
}

// Redacted hides the password so the string can be logged.
func Redacted(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if parsed, ok := parseURL(trimmed); ok {
		return parsed.Redacted()
	}

	fields := strings.Fields(trimmed)
	for i, token := range fields {
		if strings.HasPrefix(token, "password=") {
			fields[i] = "password=xxxxx"
		}
	}
	return strings.Join(fields, " ")
}

func parseURL(raw string) (*url.URL, bool) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed == nil || parsed.Scheme == "" {
		return nil, false
	}
	return parsed, true
}

func keyword(raw, key string) string {
	prefix := key + "="
	for _, token := range strings.Fields(raw) {
		if !strings.HasPrefix(token, prefix) {
			continue
		}
		if v := strings.Trim(strings.TrimPrefix(token, prefix), `"'`); v != "" {
			return v
		}
	}
	return ""
}
