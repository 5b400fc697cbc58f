package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotly/appointment-service/internal/domain"
)

func TestAuth(t *testing.T) {
	var captured Identity
	var called bool

	handler := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = GetIdentity(r.Context())
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	req.Header.Set(HeaderUserID, "42")
	req.Header.Set(HeaderUserRole, "customer")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, Identity{UserID: 42, Role: domain.RoleCustomer}, captured)
}

func TestAuth_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
	}{
		{name: "missing user id", headers: map[string]string{HeaderUserRole: "customer"}},
		{name: "non-numeric user id", headers: map[string]string{HeaderUserID: "abc", HeaderUserRole: "customer"}},
		{name: "zero user id", headers: map[string]string{HeaderUserID: "0", HeaderUserRole: "customer"}},
		{name: "missing role", headers: map[string]string{HeaderUserID: "42"}},
		{name: "unknown role", headers: map[string]string{HeaderUserID: "42", HeaderUserRole: "manager"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			handler := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestGetUserID_MissingIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)

	_, ok := GetUserID(req.Context())
	assert.False(t, ok)
}
