package http

import (
	"net/http"

	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/domain"
	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/service"
	"github.com/aussiebroadwan/intlakaa/pkg/adminsdk"
	"github.com/aussiebroadwan/intlakaa/pkg/httpx"
)

// AdminHandler serves owner-only admin management.
type AdminHandler struct {
	AdminService *service.AdminService
}

// HandleList godoc
//
//	@Summary		List admins
//	@Description	Returns every admin in creation order. Password hashes are never included.
//	@Tags			Admins
//	@Produce		json
//	@Success		200	{object}	adminsdk.Envelope{data=[]adminsdk.AdminResponse}
//	@Failure		401	{object}	adminsdk.Envelope
//	@Failure		403	{object}	adminsdk.Envelope	"not an owner"
//	@Security		BearerAuth
//	@Router			/api/admin [get].
func (h *AdminHandler) HandleList(w http.ResponseWriter, r *http.Request) error {
	admins, err := h.AdminService.ListAdmins(r.Context())
	if err != nil {
		return err
	}

	out := make([]adminsdk.AdminResponse, 0, len(admins))
	for _, a := range admins {
		out = append(out, toAdminResponse(a))
	}
	httpx.WriteData(w, http.StatusOK, "", out)
	return nil
}

// HandleUpdate godoc
//
//	@Summary		Update an admin
//	@Description	Changes the name and/or role of an admin. The last owner cannot be demoted.
//	@Tags			Admins
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Admin ID"
//	@Param			request	body		adminsdk.UpdateAdminRequest	true	"Fields to change"
//	@Success		200		{object}	adminsdk.Envelope{data=adminsdk.AdminResponse}
//	@Failure		400		{object}	adminsdk.Envelope	"validation failed"
//	@Failure		403		{object}	adminsdk.Envelope	"not an owner"
//	@Failure		404		{object}	adminsdk.Envelope	"admin not found"
//	@Failure		409		{object}	adminsdk.Envelope	"last owner"
//	@Security		BearerAuth
//	@Router			/api/admin/{id} [put].
func (h *AdminHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) error {
	var req adminsdk.UpdateAdminRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		return err
	}
	return h.update(w, r, domain.AdminUpdate{Name: req.Name, Role: req.Role})
}

// HandleUpdateRole godoc
//
//	@Summary		Change an admin's role
//	@Tags			Admins
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Admin ID"
//	@Param			request	body		adminsdk.UpdateRoleRequest	true	"New role"
//	@Success		200		{object}	adminsdk.Envelope{data=adminsdk.AdminResponse}
//	@Failure		400		{object}	adminsdk.Envelope	"invalid role"
//	@Failure		403		{object}	adminsdk.Envelope	"not an owner"
//	@Failure		404		{object}	adminsdk.Envelope	"admin not found"
//	@Failure		409		{object}	adminsdk.Envelope	"last owner"
//	@Security		BearerAuth
//	@Router			/api/admin/{id}/role [put].
func (h *AdminHandler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) error {
	var req adminsdk.UpdateRoleRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		return err
	}
	return h.update(w, r, domain.AdminUpdate{Role: &req.Role})
}

func (h *AdminHandler) update(w http.ResponseWriter, r *http.Request, upd domain.AdminUpdate) error {
	p, _ := httpx.PrincipalFrom(r.Context())
	admin, err := h.AdminService.UpdateAdmin(r.Context(), p.ID, r.PathValue("id"), upd)
	if err != nil {
		return err
	}

	httpx.WriteData(w, http.StatusOK, "Admin updated successfully", toAdminResponse(admin))
	return nil
}

// HandleDelete godoc
//
//	@Summary		Delete an admin
//	@Description	Owners cannot delete themselves, and the last owner cannot be deleted.
//	@Tags			Admins
//	@Produce		json
//	@Param			id	path		string	true	"Admin ID"
//	@Success		200	{object}	adminsdk.Envelope
//	@Failure		403	{object}	adminsdk.Envelope	"not an owner"
//	@Failure		404	{object}	adminsdk.Envelope	"admin not found"
//	@Failure		409	{object}	adminsdk.Envelope	"self delete or last owner"
//	@Security		BearerAuth
//	@Router			/api/admin/{id} [delete].
func (h *AdminHandler) HandleDelete(w http.ResponseWriter, r *http.Request) error {
	p, _ := httpx.PrincipalFrom(r.Context())
	if err := h.AdminService.DeleteAdmin(r.Context(), p.ID, r.PathValue("id")); err != nil {
		return err
	}

	httpx.WriteData(w, http.StatusOK, "Admin deleted successfully", nil)
	return nil
}
