package httpx

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/intlakaa/pkg/errx"
	"github.com/aussiebroadwan/intlakaa/pkg/jwtx"
	"github.com/aussiebroadwan/intlakaa/pkg/slogx"
)

var (
	errMissingBearer = errx.Unauthorizedf("Not authorized, no token")
	errInvalidBearer = errx.Unauthorizedf("Not authorized, token failed")
	errUnknownAdmin  = errx.Unauthorizedf("Not authorized, admin not found")
)

// PrincipalResolver loads the current principal for verified token claims.
// It returns an errx NotFound error when the subject no longer exists.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, claims jwtx.Claims) (Principal, error)
}

// PrincipalResolverFunc adapts a function to PrincipalResolver.
type PrincipalResolverFunc func(ctx context.Context, claims jwtx.Claims) (Principal, error)

func (f PrincipalResolverFunc) ResolvePrincipal(ctx context.Context, c jwtx.Claims) (Principal, error) {
	return f(ctx, c)
}

// Protect verifies the bearer token, resolves the admin it names and attaches
// the resulting Principal to the request context.
func Protect(v jwtx.Verifier, resolver PrincipalResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				WriteError(w, r, errMissingBearer)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
			if raw == "" {
				WriteError(w, r, errMissingBearer)
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("jwt verify failed", slog.Any("err", err))
				WriteError(w, r, errInvalidBearer)
				return
			}

			p, err := resolver.ResolvePrincipal(ctx, claims)
			if err != nil {
				if k := errx.KindOf(err); k == errx.NotFound || k == errx.Unauthorized {
					log.Warn("token subject no longer exists", slog.String("sub", claims.Subject))
					WriteError(w, r, errUnknownAdmin)
					return
				}
				WriteError(w, r, fmt.Errorf("resolve principal: %w", err))
				return
			}

			ctx = WithPrincipal(ctx, p)
			ctx = slogx.WithContext(ctx, log.With("admin_id", p.ID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
