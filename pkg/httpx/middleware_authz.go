package httpx

import (
	"net/http"
	"slices"

	"github.com/aussiebroadwan/intlakaa/pkg/errx"
)

// Authorize requires the principal to hold one of the given roles. It must
// run after Protect.
func Authorize(roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				WriteError(w, r, errMissingBearer)
				return
			}

			if !slices.Contains(roles, p.Role) {
				WriteError(w, r, errx.Forbiddenf("Role %q is not authorized to access this route", p.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// OwnerOnly is Authorize restricted to the owner role.
func OwnerOnly() Middleware {
	return Authorize("owner")
}
