package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CheckinService/internal/testutil"
	"github.com/m04kA/SMC-CheckinService/pkg/auth"
)

type fakeParser map[string]*auth.Claims

func (p fakeParser) ParseToken(token string) (*auth.Claims, error) {
	claims, ok := p[token]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return claims, nil
}

func TestAdminAuth(t *testing.T) {
	parser := fakeParser{
		"admin-token": {Role: auth.RoleAdmin, Email: "admin@example.com"},
		"guest-token": {Role: "guest", Email: "guest@example.com"},
	}

	var seen *auth.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetClaims(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := AdminAuth(parser, &testutil.Logger{})(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "no header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic admin-token", wantStatus: http.StatusUnauthorized},
		{name: "empty bearer", header: "Bearer   ", wantStatus: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer forged", wantStatus: http.StatusUnauthorized},
		{name: "not admin", header: "Bearer guest-token", wantStatus: http.StatusForbidden},
		{name: "admin", header: "Bearer admin-token", wantStatus: http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusNoContent {
				if assert.NotNil(t, seen) {
					assert.Equal(t, "admin@example.com", seen.Email)
				}
			} else {
				assert.Nil(t, seen)
			}
		})
	}
}

func TestGetClaims_Missing(t *testing.T) {
	_, ok := GetClaims(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}
