package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"sync/atomic"

	"github.com/aussiebroadwan/intlakaa/pkg/errx"
	"github.com/aussiebroadwan/intlakaa/pkg/slogx"
)

// MaxBodyBytes caps JSON request bodies.
const MaxBodyBytes = 1 << 20

// Envelope is the uniform JSON shape for every API response.
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Stack   string            `json:"stack,omitempty"`
}

var debugMode atomic.Bool

// SetDebug toggles inclusion of error cause chains in error envelopes.
// Only enable this in development.
func SetDebug(enabled bool) { debugMode.Store(enabled) }

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData writes a successful envelope.
func WriteData(w http.ResponseWriter, code int, message string, data any) {
	WriteJSON(w, code, Envelope{Success: true, Message: message, Data: data})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// This is commonly required for sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// WriteError is the single place errors become HTTP responses. Classified
// errors keep their message; anything else is reported as a generic 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	status := errx.Status(err)
	env := Envelope{Success: false, Message: "Internal server error"}
	if e, ok := errx.As(err); ok && e.Kind != errx.Internal {
		env.Message = e.Message
		env.Errors = e.Fields
	}
	if debugMode.Load() {
		env.Stack = errx.Chain(err)
	}

	switch {
	case status >= http.StatusInternalServerError:
		log.Error("request failed", slog.Int("status", status), slog.Any("error", err))
	default:
		log.Debug("request rejected", slog.Int("status", status), slog.Any("error", err))
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	}
	WriteJSON(w, status, env)
}

// HandlerFunc is an http handler that reports failure by returning an error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

func (f HandlerFunc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := f(w, r); err != nil {
		WriteError(w, r, err)
	}
}

// DecodeJSON reads a bounded JSON body into v.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errx.Invalid("Request body is required", nil)
		}
		return errx.Wrap(errx.Validation, "Request body must be valid JSON", err)
	}
	return nil
}

// IsFormPost reports whether r carries an application/x-www-form-urlencoded body.
func IsFormPost(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/x-www-form-urlencoded"
}

// DecodeForm parses a bounded url-encoded body and returns its fields.
func DecodeForm(w http.ResponseWriter, r *http.Request) (map[string]string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return nil, errx.Wrap(errx.Validation, "Request body must be a valid form", err)
	}
	out := make(map[string]string, len(r.PostForm))
	for k := range r.PostForm {
		out[k] = r.PostForm.Get(k)
	}
	return out, nil
}

// NotFound answers unmatched routes.
func NotFound() http.Handler {
	return HandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
		return errx.NotFoundf("Route not found")
	})
}
