package httpx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/intlakaa/pkg/errx"
	"github.com/aussiebroadwan/intlakaa/pkg/httpx"
	"github.com/aussiebroadwan/intlakaa/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct{}

func (stubVerifier) Verify(token string) (jwtx.Claims, error) {
	if token != "good" && token != "ghost" && token != "broken" {
		return jwtx.Claims{}, jwtx.ErrInvalidSig
	}
	return jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: token}}, nil
}

var stubResolver = httpx.PrincipalResolverFunc(func(ctx context.Context, c jwtx.Claims) (httpx.Principal, error) {
	switch c.Subject {
	case "good":
		return httpx.Principal{ID: "admin-1", Email: "a@b.com", Role: "admin"}, nil
	case "ghost":
		return httpx.Principal{}, errx.NotFoundf("Admin not found")
	default:
		return httpx.Principal{}, errors.New("store down")
	}
})

func TestProtect(t *testing.T) {
	var seen httpx.Principal
	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = httpx.PrincipalFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}), httpx.Protect(stubVerifier{}, stubResolver))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"bad signature", "Bearer forged", http.StatusUnauthorized},
		{"deleted admin", "Bearer ghost", http.StatusUnauthorized},
		{"resolver failure", "Bearer broken", http.StatusInternalServerError},
		{"valid", "Bearer good", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			require.Equal(t, tt.want, rec.Code)
		})
	}

	require.Equal(t, "admin-1", seen.ID)
	require.Equal(t, "admin", seen.Role)
}

func TestAuthorize(t *testing.T) {
	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), httpx.Authorize("owner"))

	t.Run("no principal", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin", nil)
		req = req.WithContext(httpx.WithPrincipal(req.Context(), httpx.Principal{ID: "x", Role: "admin"}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("owner", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin", nil)
		req = req.WithContext(httpx.WithPrincipal(req.Context(), httpx.Principal{ID: "x", Role: "owner"}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}
