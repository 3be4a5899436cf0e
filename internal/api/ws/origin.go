package ws

import (
	"net/http"
	"net/url"
	"strings"
)

// normalizeOrigin reduces an origin to lower-case scheme://host
func normalizeOrigin(origin string) (string, bool) {
	parsed, err := url.Parse(strings.TrimSpace(origin))
	if err != nil {
		return "", false
	}

	if parsed.Scheme == "" || parsed.Host == "" {
		return "", false
	}

	return strings.ToLower(parsed.Scheme) + "://" + strings.ToLower(parsed.Host), true
}

// originChecker accepts requests from the single configured origin.
// Requests without an Origin header come from non-browser clients, which
// are not subject to cross-origin policy, and are accepted.
func originChecker(allowed string) func(r *http.Request) bool {
	want, ok := normalizeOrigin(allowed)

	return func(r *http.Request) bool {
		header := r.Header.Get("Origin")
		if header == "" {
			return true
		}
		if !ok {
			return false
		}
		got, valid := normalizeOrigin(header)
		return valid && got == want
	}
}
