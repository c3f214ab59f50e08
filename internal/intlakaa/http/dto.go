package http

import (
	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/domain"
	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/service"
	"github.com/aussiebroadwan/intlakaa/pkg/adminsdk"
)

func toAdminResponse(a domain.Admin) adminsdk.AdminResponse {
	return adminsdk.AdminResponse{
		ID:        a.ID,
		Email:     a.Email,
		Name:      a.Name,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toTokenResponse(s service.Session) adminsdk.TokenResponse {
	return adminsdk.TokenResponse{
		Token:     s.Token,
		TokenType: "Bearer",
		ExpiresIn: int(s.TTL.Seconds()),
		ExpiresAt: s.ExpiresAt,
		Admin:     toAdminResponse(s.Admin),
	}
}

func toInviteResponse(inv domain.AdminInvite) adminsdk.InviteResponse {
	return adminsdk.InviteResponse{
		Email:     inv.Email,
		Role:      inv.Role,
		ExpiresAt: inv.ExpiresAt,
	}
}

func toRequestResponse(r domain.Request) adminsdk.RequestResponse {
	return adminsdk.RequestResponse{
		ID:            r.ID,
		Name:          r.Name,
		Phone:         r.Phone,
		StoreURL:      r.StoreURL,
		MonthlySalary: r.MonthlySalary,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
