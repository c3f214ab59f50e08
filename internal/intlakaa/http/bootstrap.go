package http

import (
	"net/http"

	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/service"
	"github.com/aussiebroadwan/intlakaa/pkg/adminsdk"
	"github.com/aussiebroadwan/intlakaa/pkg/httpx"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// HandleBootstrap godoc
//
//	@Summary		Bootstrap the first owner
//	@Description	Emails an owner invite while no admin exists. Requires the pre-configured
//	@Description	bootstrap token in the X-Bootstrap-Token header. Returns 404 when no token is configured.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string						true	"Bootstrap token"
//	@Param			request				body		adminsdk.BootstrapRequest	true	"Owner email"
//	@Success		201					{object}	adminsdk.Envelope{data=adminsdk.InviteResponse}
//	@Failure		400					{object}	adminsdk.Envelope	"invalid email"
//	@Failure		401					{object}	adminsdk.Envelope	"wrong bootstrap token"
//	@Failure		404					{object}	adminsdk.Envelope	"bootstrap disabled"
//	@Failure		409					{object}	adminsdk.Envelope	"already bootstrapped"
//	@Router			/api/auth/bootstrap [post].
func (h *BootstrapHandler) HandleBootstrap(w http.ResponseWriter, r *http.Request) error {
	var req adminsdk.BootstrapRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		return err
	}

	invite, err := h.BootstrapService.Bootstrap(r.Context(), r.Header.Get(adminsdk.BootstrapTokenHeader), req.Email)
	if err != nil {
		return err
	}

	httpx.WriteData(w, http.StatusCreated, "Owner invitation sent", toInviteResponse(invite))
	return nil
}
