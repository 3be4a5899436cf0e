package ws

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeOrigin(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "https://Example.com", want: "https://example.com", wantOK: true},
		{in: " http://localhost:5173 ", want: "http://localhost:5173", wantOK: true},
		{in: "https://example.com/path?q=1", want: "https://example.com", wantOK: true},
		{in: "example.com", wantOK: false},
		{in: "", wantOK: false},
		{in: "://bad", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := normalizeOrigin(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestOriginCheckerWithInvalidConfig(t *testing.T) {
	check := originChecker("not-an-origin")

	req := httptest.NewRequest("GET", "/ws", nil)
	req.Header.Set("Origin", "https://example.com")

	assert.False(t, check(req))
}
