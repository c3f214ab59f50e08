package http

import (
	"net/http"

	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/domain"
	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/service"
	"github.com/aussiebroadwan/intlakaa/pkg/adminsdk"
	"github.com/aussiebroadwan/intlakaa/pkg/httpx"
)

type InviteHandler struct {
	InviteService *service.InviteService
}

// HandleSend godoc
//
//	@Summary		Invite an admin
//	@Description	Emails a single-use acceptance link to the address. Re-inviting the same
//	@Description	address replaces the earlier invite. The token is never returned. Owner only.
//	@Description	Also served at POST /api/admin/invite.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		adminsdk.InviteRequest	true	"Invitee"
//	@Success		200		{object}	adminsdk.Envelope{data=adminsdk.InviteResponse}
//	@Failure		400		{object}	adminsdk.Envelope	"invalid email"
//	@Failure		401		{object}	adminsdk.Envelope
//	@Failure		403		{object}	adminsdk.Envelope	"not an owner"
//	@Failure		409		{object}	adminsdk.Envelope	"admin already exists"
//	@Failure		500		{object}	adminsdk.Envelope	"mail delivery failed"
//	@Security		BearerAuth
//	@Router			/api/auth/send-invite [post].
func (h *InviteHandler) HandleSend(w http.ResponseWriter, r *http.Request) error {
	var req adminsdk.InviteRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		return err
	}

	p, _ := httpx.PrincipalFrom(r.Context())
	invite, err := h.InviteService.SendInvite(r.Context(), p.ID, req.Email)
	if err != nil {
		return err
	}

	httpx.WriteData(w, http.StatusOK, "Invitation sent successfully", toInviteResponse(invite))
	return nil
}

// HandleVerify godoc
//
//	@Summary		Verify an invite
//	@Description	Checks that an invite token is usable without consuming it.
//	@Tags			Invitations
//	@Produce		json
//	@Param			token	query		string	true	"Invite token from the emailed link"
//	@Success		200		{object}	adminsdk.Envelope{data=adminsdk.InviteResponse}
//	@Failure		400		{object}	adminsdk.Envelope	"token missing"
//	@Failure		404		{object}	adminsdk.Envelope	"unknown token"
//	@Failure		410		{object}	adminsdk.Envelope	"expired or already used"
//	@Router			/api/auth/verify-invite [get].
func (h *InviteHandler) HandleVerify(w http.ResponseWriter, r *http.Request) error {
	invite, err := h.InviteService.VerifyInvite(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		return err
	}

	httpx.NoCache(w)
	httpx.WriteData(w, http.StatusOK, "Invite is valid", toInviteResponse(invite))
	return nil
}

// HandleAccept godoc
//
//	@Summary		Accept an invite
//	@Description	Consumes the invite, creates the admin with the invited role and logs them in.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		adminsdk.AcceptInviteRequest	true	"Token and new account details"
//	@Success		201		{object}	adminsdk.Envelope{data=adminsdk.TokenResponse}
//	@Failure		400		{object}	adminsdk.Envelope	"validation failed"
//	@Failure		404		{object}	adminsdk.Envelope	"unknown token"
//	@Failure		409		{object}	adminsdk.Envelope	"admin already exists"
//	@Failure		410		{object}	adminsdk.Envelope	"expired or already used"
//	@Router			/api/auth/accept-invite [post].
func (h *InviteHandler) HandleAccept(w http.ResponseWriter, r *http.Request) error {
	var req adminsdk.AcceptInviteRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		return err
	}

	sess, err := h.InviteService.AcceptInvite(r.Context(), domain.AcceptInput{
		Token:    req.Token,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	httpx.NoCache(w)
	httpx.WriteData(w, http.StatusCreated, "Account created successfully", toTokenResponse(sess))
	return nil
}
