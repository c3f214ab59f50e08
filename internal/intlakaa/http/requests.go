package http

import (
	"net/http"

	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/domain"
	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/service"
	"github.com/aussiebroadwan/intlakaa/pkg/adminsdk"
	"github.com/aussiebroadwan/intlakaa/pkg/httpx"
)

// RequestHandler serves leads submitted from the landing page.
type RequestHandler struct {
	RequestService *service.RequestService
}

// HandleCreate godoc
//
//	@Summary		Submit a lead
//	@Description	Public form endpoint. Every field is required; new leads start as pending.
//	@Tags			Requests
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json
//	@Param			request	body		adminsdk.CreateRequestRequest	true	"Lead details"
//	@Success		201		{object}	adminsdk.Envelope{data=adminsdk.RequestResponse}
//	@Failure		400		{object}	adminsdk.Envelope	"validation failed, see errors"
//	@Failure		429		{object}	adminsdk.Envelope	"rate limited"
//	@Router			/api/requests [post].
func (h *RequestHandler) HandleCreate(w http.ResponseWriter, r *http.Request) error {
	req, err := decodeLead(w, r)
	if err != nil {
		return err
	}

	created, err := h.RequestService.CreateRequest(r.Context(), domain.RequestInput{
		Name:          string(req.Name),
		Phone:         string(req.Phone),
		StoreURL:      string(req.StoreURL),
		MonthlySalary: string(req.MonthlySalary),
	})
	if err != nil {
		return err
	}

	httpx.WriteData(w, http.StatusCreated, "Request submitted successfully", toRequestResponse(created))
	return nil
}

// decodeLead accepts the lead form as JSON or as a url-encoded form post.
func decodeLead(w http.ResponseWriter, r *http.Request) (adminsdk.CreateRequestRequest, error) {
	var req adminsdk.CreateRequestRequest
	if !httpx.IsFormPost(r) {
		return req, httpx.DecodeJSON(w, r, &req)
	}

	form, err := httpx.DecodeForm(w, r)
	if err != nil {
		return req, err
	}
	req.Name = adminsdk.FlexString(form["name"])
	req.Phone = adminsdk.FlexString(form["phone"])
	req.StoreURL = adminsdk.FlexString(form["store_url"])
	req.MonthlySalary = adminsdk.FlexString(form["monthly_salary"])
	return req, nil
}

// HandleList godoc
//
//	@Summary		List leads
//	@Description	Newest first, optionally filtered by status.
//	@Tags			Requests
//	@Produce		json
//	@Param			status	query		string	false	"Filter by status"	Enums(pending, contacted, completed)
//	@Success		200		{object}	adminsdk.Envelope{data=[]adminsdk.RequestResponse}
//	@Failure		400		{object}	adminsdk.Envelope	"invalid status"
//	@Failure		401		{object}	adminsdk.Envelope
//	@Security		BearerAuth
//	@Router			/api/requests [get].
func (h *RequestHandler) HandleList(w http.ResponseWriter, r *http.Request) error {
	reqs, err := h.RequestService.ListRequests(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		return err
	}

	out := make([]adminsdk.RequestResponse, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, toRequestResponse(req))
	}
	httpx.WriteData(w, http.StatusOK, "", out)
	return nil
}

// HandleGet godoc
//
//	@Summary		Get a lead
//	@Tags			Requests
//	@Produce		json
//	@Param			id	path		string	true	"Request ID"
//	@Success		200	{object}	adminsdk.Envelope{data=adminsdk.RequestResponse}
//	@Failure		404	{object}	adminsdk.Envelope	"request not found"
//	@Security		BearerAuth
//	@Router			/api/requests/{id} [get].
func (h *RequestHandler) HandleGet(w http.ResponseWriter, r *http.Request) error {
	req, err := h.RequestService.GetRequest(r.Context(), r.PathValue("id"))
	if err != nil {
		return err
	}

	httpx.WriteData(w, http.StatusOK, "", toRequestResponse(req))
	return nil
}

// HandleUpdateStatus godoc
//
//	@Summary		Change a lead's status
//	@Tags			Requests
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Request ID"
//	@Param			request	body		adminsdk.UpdateStatusRequest	true	"New status"
//	@Success		200		{object}	adminsdk.Envelope{data=adminsdk.RequestResponse}
//	@Failure		400		{object}	adminsdk.Envelope	"invalid status"
//	@Failure		404		{object}	adminsdk.Envelope	"request not found"
//	@Security		BearerAuth
//	@Router			/api/requests/{id}/status [patch].
func (h *RequestHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) error {
	var body adminsdk.UpdateStatusRequest
	if err := httpx.DecodeJSON(w, r, &body); err != nil {
		return err
	}

	req, err := h.RequestService.UpdateStatus(r.Context(), r.PathValue("id"), body.Status)
	if err != nil {
		return err
	}

	httpx.WriteData(w, http.StatusOK, "Request status updated", toRequestResponse(req))
	return nil
}

// HandleDelete godoc
//
//	@Summary		Delete a lead
//	@Tags			Requests
//	@Produce		json
//	@Param			id	path		string	true	"Request ID"
//	@Success		200	{object}	adminsdk.Envelope
//	@Failure		404	{object}	adminsdk.Envelope	"request not found"
//	@Security		BearerAuth
//	@Router			/api/requests/{id} [delete].
func (h *RequestHandler) HandleDelete(w http.ResponseWriter, r *http.Request) error {
	if err := h.RequestService.DeleteRequest(r.Context(), r.PathValue("id")); err != nil {
		return err
	}

	httpx.WriteData(w, http.StatusOK, "Request deleted successfully", nil)
	return nil
}
