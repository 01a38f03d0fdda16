package main

import "net/url"

// withPreparedBinaryDisabled sets lib/pq's disable_prepared_binary_result
// unless the URL already carries a value for it.
func withPreparedBinaryDisabled(raw string, disable bool) string {
	if !disable {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}

	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") != "" {
		return raw
	}
	query.Set("disable_prepared_binary_result", "yes")
	parsed.RawQuery = query.Encode()

	return parsed.String()
}
