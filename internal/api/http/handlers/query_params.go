package handlers

import (
	"net/http"
	"strings"
)

// stringQuery reports the first value of key and whether the key was sent at
// all. A key sent with an empty value is present.
func stringQuery(r *http.Request, key string) (value string, present bool) {
	values, ok := r.URL.Query()[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// requiredQuery returns the trimmed value of key; empty means missing.
func requiredQuery(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}
