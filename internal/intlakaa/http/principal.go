package http

import (
	"context"

	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/service"
	"github.com/aussiebroadwan/intlakaa/pkg/httpx"
	"github.com/aussiebroadwan/intlakaa/pkg/jwtx"
)

// principalResolver reloads the admin on every request so deletions and
// role changes take effect before the token expires.
func principalResolver(auth *service.AuthService) httpx.PrincipalResolver {
	return httpx.PrincipalResolverFunc(func(ctx context.Context, c jwtx.Claims) (httpx.Principal, error) {
		admin, err := auth.CurrentAdmin(ctx, c.Subject)
		if err != nil {
			return httpx.Principal{}, err
		}
		return httpx.Principal{
			ID:    admin.ID,
			Email: admin.Email,
			Name:  admin.Name,
			Role:  admin.Role,
		}, nil
	})
}
