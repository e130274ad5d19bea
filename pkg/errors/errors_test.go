package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	err := &Error{Type: ErrorTypeAuth, Message: "Unauthorized", Code: 401}

	assert.Equal(t, "auth error (code 401): Unauthorized", err.Error())
}

func TestTypeFromStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorType
	}{
		{0, ErrorTypeNetwork},
		{http.StatusUnauthorized, ErrorTypeAuth},
		{http.StatusForbidden, ErrorTypeAuth},
		{http.StatusNotFound, ErrorTypeNotFound},
		{http.StatusConflict, ErrorTypeConflict},
		{http.StatusInternalServerError, ErrorTypeServerError},
		{http.StatusBadGateway, ErrorTypeServerError},
		{http.StatusBadRequest, ErrorTypeUnknown},
		{http.StatusOK, ErrorTypeUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TypeFromStatus(tt.status), "status %d", tt.status)
	}
}
