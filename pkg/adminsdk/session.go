package adminsdk

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Session is an authenticated admin. Tokens are not refreshed; log in again
// once ExpiresAt passes.
type Session struct {
	client    *Client
	token     string
	expiresAt time.Time
	admin     AdminResponse
}

func newSession(c *Client, tok TokenResponse) *Session {
	return &Session{
		client:    c,
		token:     tok.Token,
		expiresAt: tok.ExpiresAt,
		admin:     tok.Admin,
	}
}

// NewSessionFromToken wraps an existing access token.
func (c *Client) NewSessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}

// Token returns the raw access token.
func (s *Session) Token() string { return s.token }

// ExpiresAt returns when the access token expires.
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

// Admin returns the admin the session was issued to.
func (s *Session) Admin() AdminResponse { return s.admin }

func (s *Session) do(ctx context.Context, method, path string, body any, expected int, out any) (*Envelope, error) {
	return s.client.do(ctx, method, path, s.token, body, nil, expected, out)
}

// Me returns the current admin.
func (s *Session) Me(ctx context.Context) (*AdminResponse, error) {
	var out AdminResponse
	if _, err := s.do(ctx, http.MethodGet, "/api/auth/me", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendInvite invites email through /api/auth/send-invite.
func (s *Session) SendInvite(ctx context.Context, email string) (*InviteResponse, error) {
	var out InviteResponse
	if _, err := s.do(ctx, http.MethodPost, "/api/auth/send-invite", InviteRequest{Email: email}, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// InviteAdmin invites email through /api/admin/invite.
func (s *Session) InviteAdmin(ctx context.Context, email string) (*InviteResponse, error) {
	var out InviteResponse
	if _, err := s.do(ctx, http.MethodPost, "/api/admin/invite", InviteRequest{Email: email}, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListAdmins(ctx context.Context) ([]AdminResponse, error) {
	var out []AdminResponse
	if _, err := s.do(ctx, http.MethodGet, "/api/admin", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) UpdateAdmin(ctx context.Context, id string, req UpdateAdminRequest) (*AdminResponse, error) {
	var out AdminResponse
	if _, err := s.do(ctx, http.MethodPut, "/api/admin/"+url.PathEscape(id), req, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateAdminRole(ctx context.Context, id, role string) (*AdminResponse, error) {
	var out AdminResponse
	path := "/api/admin/" + url.PathEscape(id) + "/role"
	if _, err := s.do(ctx, http.MethodPut, path, UpdateRoleRequest{Role: role}, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteAdmin(ctx context.Context, id string) error {
	_, err := s.do(ctx, http.MethodDelete, "/api/admin/"+url.PathEscape(id), nil, http.StatusOK, nil)
	return err
}

// ListRequests returns leads newest first. An empty status lists all.
func (s *Session) ListRequests(ctx context.Context, status string) ([]RequestResponse, error) {
	path := "/api/requests"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var out []RequestResponse
	if _, err := s.do(ctx, http.MethodGet, path, nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) GetRequest(ctx context.Context, id string) (*RequestResponse, error) {
	var out RequestResponse
	if _, err := s.do(ctx, http.MethodGet, "/api/requests/"+url.PathEscape(id), nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateRequestStatus(ctx context.Context, id, status string) (*RequestResponse, error) {
	var out RequestResponse
	path := "/api/requests/" + url.PathEscape(id) + "/status"
	if _, err := s.do(ctx, http.MethodPatch, path, UpdateStatusRequest{Status: status}, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteRequest(ctx context.Context, id string) error {
	_, err := s.do(ctx, http.MethodDelete, "/api/requests/"+url.PathEscape(id), nil, http.StatusOK, nil)
	return err
}
