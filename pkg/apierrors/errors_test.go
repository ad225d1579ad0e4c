package apierrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   Code
	}{
		{"unauthorized", 401, CodeUnauthorized},
		{"forbidden is validation", 403, CodeValidation},
		{"not found is validation", 404, CodeValidation},
		{"unprocessable is validation", 422, CodeValidation},
		{"internal error", 500, CodeServer},
		{"bad gateway", 502, CodeServer},
		{"service unavailable", 503, CodeServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromStatus(tt.status))
		})
	}
}

func TestErrorMessageFallsBackToCode(t *testing.T) {
	err := &Error{Code: CodeServer}
	assert.Equal(t, "server_failure", err.Error())

	err.Message = "orders service exploded"
	assert.Equal(t, "orders service exploded", err.Error())
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &Error{Code: CodeNetwork, Err: cause}
	assert.ErrorIs(t, fmt.Errorf("list users: %w", err), cause)
	assert.True(t, err.IsNetwork())
}
