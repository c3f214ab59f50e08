package http

import (
	"net/http"

	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/service"
	"github.com/aussiebroadwan/intlakaa/pkg/adminsdk"
	"github.com/aussiebroadwan/intlakaa/pkg/errx"
	"github.com/aussiebroadwan/intlakaa/pkg/httpx"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleLogin godoc
//
//	@Summary		Admin login
//	@Description	Exchange an email and password for an admin access token.
//	@Description	Unknown emails and wrong passwords return the same 401.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		adminsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	adminsdk.Envelope{data=adminsdk.TokenResponse}
//	@Failure		400		{object}	adminsdk.Envelope	"missing email or password"
//	@Failure		401		{object}	adminsdk.Envelope	"invalid email or password"
//	@Failure		429		{object}	adminsdk.Envelope	"rate limited"
//	@Router			/api/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) error {
	var req adminsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		return err
	}

	sess, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	httpx.NoCache(w)
	httpx.WriteData(w, http.StatusOK, "Login successful", toTokenResponse(sess))
	return nil
}

// HandleMe godoc
//
//	@Summary		Current admin
//	@Description	Returns the admin the access token belongs to.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	adminsdk.Envelope{data=adminsdk.AdminResponse}
//	@Failure		401	{object}	adminsdk.Envelope	"missing, invalid or orphaned token"
//	@Security		BearerAuth
//	@Router			/api/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) error {
	p, ok := httpx.PrincipalFrom(r.Context())
	if !ok {
		return errx.Unauthorizedf("Not authorized, no token")
	}

	admin, err := h.AuthService.CurrentAdmin(r.Context(), p.ID)
	if err != nil {
		return err
	}

	httpx.WriteData(w, http.StatusOK, "", toAdminResponse(admin))
	return nil
}
