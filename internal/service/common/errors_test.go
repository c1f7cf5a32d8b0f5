package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"client input", NewError(CodeClientInput, "Missing 'table' query parameter"), http.StatusBadRequest},
		{"configuration", NewError(CodeConfiguration, "Server not configured correctly"), http.StatusInternalServerError},
		{"origin", NewError(CodeOriginRejected, "Origin not allowed"), http.StatusForbidden},
		{"upstream passthrough", UpstreamError(http.StatusNotFound, "NOT_FOUND"), http.StatusNotFound},
		{"upstream bogus status", UpstreamError(200, ""), http.StatusBadGateway},
		{"transport", WrapError(CodeTransport, "fetch", errors.New("dial tcp")), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("outer: %w", NewError(CodeClientInput, "bad")), http.StatusBadRequest},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestPublicMessageHidesTransportDetail(t *testing.T) {
	err := WrapError(CodeTransport, "fetch records", errors.New("dial tcp 10.0.0.1:443: refused"))
	assert.Equal(t, "Proxy error", PublicMessage(err))
	assert.Equal(t, "Airtable request failed", PublicMessage(UpstreamError(http.StatusUnauthorized, "AUTHENTICATION_REQUIRED")))
}

func TestErrorIsMatchesCode(t *testing.T) {
	err := fmt.Errorf("wrap: %w", UpstreamError(http.StatusTooManyRequests, ""))
	assert.True(t, errors.Is(err, &Error{Code: CodeUpstream}))
	assert.False(t, errors.Is(err, &Error{Code: CodeTransport}))
}
