package adminsdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// BootstrapTokenHeader carries the bootstrap token on POST /api/auth/bootstrap.
const BootstrapTokenHeader = "X-Bootstrap-Token"

// Client is a client for the Intlakaa admin API. It provides the public
// operations and creates authenticated Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new API client.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login authenticates an admin and returns a Session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var tok TokenResponse
	_, err := c.do(ctx, http.MethodPost, "/api/auth/login", "",
		LoginRequest{Email: email, Password: password}, nil, http.StatusOK, &tok)
	if err != nil {
		return nil, err
	}
	return newSession(c, tok), nil
}

// VerifyInvite checks an invite token without consuming it.
func (c *Client) VerifyInvite(ctx context.Context, token string) (*InviteResponse, error) {
	var inv InviteResponse
	_, err := c.do(ctx, http.MethodGet, "/api/auth/verify-invite?token="+url.QueryEscape(token), "",
		nil, nil, http.StatusOK, &inv)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// AcceptInvite creates the invited admin and returns their Session.
func (c *Client) AcceptInvite(ctx context.Context, token, name, password string) (*Session, error) {
	var tok TokenResponse
	_, err := c.do(ctx, http.MethodPost, "/api/auth/accept-invite", "",
		AcceptInviteRequest{Token: token, Name: name, Password: password}, nil, http.StatusCreated, &tok)
	if err != nil {
		return nil, err
	}
	return newSession(c, tok), nil
}

// Bootstrap sends the first owner invite to email.
func (c *Client) Bootstrap(ctx context.Context, bootstrapToken, email string) (*InviteResponse, error) {
	var inv InviteResponse
	_, err := c.do(ctx, http.MethodPost, "/api/auth/bootstrap", "",
		BootstrapRequest{Email: email}, map[string]string{BootstrapTokenHeader: bootstrapToken},
		http.StatusCreated, &inv)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// SubmitRequest submits a lead through the public form endpoint.
func (c *Client) SubmitRequest(ctx context.Context, req CreateRequestRequest) (*RequestResponse, error) {
	var out RequestResponse
	_, err := c.do(ctx, http.MethodPost, "/api/requests", "", req, nil, http.StatusCreated, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Root calls GET /.
func (c *Client) Root(ctx context.Context) (*RootResponse, error) {
	var out RootResponse
	if _, err := c.getJSON(ctx, "/", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Livez calls the liveness probe.
func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if _, err := c.getJSON(ctx, "/livez", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Readyz calls the readiness probe. A 503 is reported through the body's
// Status rather than as an error.
func (c *Client) Readyz(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if _, err := c.getJSON(ctx, "/readyz", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// JWKS fetches the public keys admin tokens are signed with.
func (c *Client) JWKS(ctx context.Context) (*JWKSResponse, error) {
	var out JWKSResponse
	if _, err := c.getJSON(ctx, "/.well-known/jwks.json", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
