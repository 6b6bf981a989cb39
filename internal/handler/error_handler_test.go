package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bagdasarian/task-groups/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestGetStatusCode(t *testing.T) {
	cases := map[string]int{
		domain.CodeValidation:         http.StatusBadRequest,
		domain.CodeEmailExists:        http.StatusBadRequest,
		domain.CodeInvalidCredentials: http.StatusBadRequest,
		domain.CodeInvalidInvite:      http.StatusBadRequest,
		domain.CodeUnauthenticated:    http.StatusUnauthorized,
		domain.CodeForbidden:          http.StatusForbidden,
		domain.CodeNotFound:           http.StatusNotFound,
		"SOMETHING_ELSE":              http.StatusInternalServerError,
	}

	for code, status := range cases {
		assert.Equal(t, status, getStatusCode(code), code)
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer", "Bearer abc", "abc"},
		{"регистр схемы не важен", "bearer abc", "abc"},
		{"пустой заголовок", "", ""},
		{"другая схема", "Basic abc", ""},
		{"без токена", "Bearer", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			assert.Equal(t, tc.want, bearerToken(r))
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, validateEmail("a@x.com"))
	assert.Error(t, validateEmail("a"))
	assert.Error(t, validateEmail("Alice <a@x.com>"))
}
