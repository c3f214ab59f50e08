package httpx_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/intlakaa/pkg/errx"
	"github.com/aussiebroadwan/intlakaa/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) httpx.Envelope {
	t.Helper()
	var env httpx.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"validation", errx.Invalid("Validation failed", map[string]string{"name": "Name is required"}), 400, "Validation failed"},
		{"unauthorized", errx.Unauthorizedf("Invalid email or password"), 401, "Invalid email or password"},
		{"forbidden", errx.Forbiddenf("nope"), 403, "nope"},
		{"not found wrapped", fmt.Errorf("get: %w", errx.NotFoundf("Request not found")), 404, "Request not found"},
		{"gone", errx.Gonef("Invite has expired"), 410, "Invite has expired"},
		{"conflict", errx.Conflictf("Admin already exists"), 409, "Admin already exists"},
		{"plain error hides detail", errors.New("sql: connection reset"), 500, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			httpx.WriteError(rec, req, tt.err)

			require.Equal(t, tt.wantStatus, rec.Code)
			env := decodeEnvelope(t, rec)
			require.False(t, env.Success)
			require.Equal(t, tt.wantMessage, env.Message)
			require.Empty(t, env.Stack)
		})
	}
}

func TestWriteErrorFieldsAndHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteError(rec, httptest.NewRequest(http.MethodPost, "/", nil),
		errx.Invalid("Validation failed", map[string]string{"phone": "Phone number is required"}))

	env := decodeEnvelope(t, rec)
	require.Equal(t, "Phone number is required", env.Errors["phone"])
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	rec = httptest.NewRecorder()
	httpx.WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errx.Unauthorizedf("no"))
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
}

func TestWriteErrorDebugStack(t *testing.T) {
	httpx.SetDebug(true)
	defer httpx.SetDebug(false)

	rec := httptest.NewRecorder()
	httpx.WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil),
		fmt.Errorf("list requests: %w", errors.New("boom")))

	env := decodeEnvelope(t, rec)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, env.Stack, "list requests")
	require.Contains(t, env.Stack, "boom")
}

func TestHandlerFunc(t *testing.T) {
	ok := httpx.HandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
		httpx.WriteData(w, http.StatusCreated, "created", map[string]string{"id": "1"})
		return nil
	})
	rec := httptest.NewRecorder()
	ok.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)
	require.Equal(t, "created", env.Message)

	failing := httpx.HandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
		return errx.NotFoundf("Admin not found")
	})
	rec = httptest.NewRecorder()
	failing.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDecodeJSON(t *testing.T) {
	var body struct {
		Email string `json:"email"`
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.com"}`))
	require.NoError(t, httpx.DecodeJSON(rec, req, &body))
	require.Equal(t, "a@b.com", body.Email)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":`))
	err := httpx.DecodeJSON(rec, req, &body)
	require.Equal(t, errx.Validation, errx.KindOf(err))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	err = httpx.DecodeJSON(rec, req, &body)
	require.Equal(t, errx.Validation, errx.KindOf(err))
}

func TestNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.NotFound().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Route not found", decodeEnvelope(t, rec).Message)
}

func TestRecover(t *testing.T) {
	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	}), httpx.Recover())

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mw("first"), mw("second"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestCORS(t *testing.T) {
	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), httpx.CORS(nil))

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/requests", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unknown origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/requests", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
