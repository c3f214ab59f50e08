package adminsdk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aussiebroadwan/intlakaa/pkg/jwtx"
)

// Roles and request statuses as they appear on the wire.
const (
	RoleOwner = "owner"
	RoleAdmin = "admin"

	StatusPending   = "pending"
	StatusContacted = "contacted"
	StatusCompleted = "completed"
)

// Envelope is the JSON wrapper around every response. Data is left raw so
// the caller can decode it into the operation's type.
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    json.RawMessage   `json:"data,omitempty" swaggertype:"object"`
	Errors  map[string]string `json:"errors,omitempty"`
	Stack   string            `json:"stack,omitempty"`
}

// ============================================================================
// Auth
// ============================================================================

type LoginRequest struct {
	Email    string `json:"email" example:"owner@intlakaa.com"`
	Password string `json:"password" example:"correct-horse-battery"`
}

// TokenResponse is returned by login and invite acceptance.
type TokenResponse struct {
	// Token is the EdDSA-signed JWT to send as "Authorization: Bearer <token>".
	Token     string        `json:"token"`
	TokenType string        `json:"token_type" example:"Bearer"`
	ExpiresIn int           `json:"expires_in" example:"86400"`
	ExpiresAt time.Time     `json:"expires_at"`
	Admin     AdminResponse `json:"admin"`
}

type AdminResponse struct {
	ID        string    `json:"id" example:"01JD5ZQ6M3K3V0R8Y7W1X2C4B5"`
	Email     string    `json:"email" example:"owner@intlakaa.com"`
	Name      string    `json:"name" example:"Sara"`
	Role      string    `json:"role" example:"owner" enums:"owner,admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ============================================================================
// Invites
// ============================================================================

type InviteRequest struct {
	Email string `json:"email" example:"new.admin@intlakaa.com"`
}

// InviteResponse describes an issued invite. The token itself is only ever
// delivered by email.
type InviteResponse struct {
	Email     string    `json:"email"`
	Role      string    `json:"role" enums:"owner,admin"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AcceptInviteRequest struct {
	Token    string `json:"token"`
	Name     string `json:"name" example:"Sara"`
	Password string `json:"password"`
}

type BootstrapRequest struct {
	Email string `json:"email" example:"owner@intlakaa.com"`
}

// ============================================================================
// Admin management
// ============================================================================

// UpdateAdminRequest changes any provided field.
type UpdateAdminRequest struct {
	Name *string `json:"name,omitempty"`
	Role *string `json:"role,omitempty" enums:"owner,admin"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" enums:"owner,admin"`
}

// ============================================================================
// Requests (leads)
// ============================================================================

// FlexString decodes from a JSON string or number, so landing pages may
// post numeric fields such as phone or monthly_salary unquoted.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*f = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("adminsdk: expected string or number, got %s", b)
	}
	*f = FlexString(n.String())
	return nil
}

type CreateRequestRequest struct {
	Name          FlexString `json:"name" example:"Ahmed" swaggertype:"string"`
	Phone         FlexString `json:"phone" example:"+966500000000" swaggertype:"string"`
	StoreURL      FlexString `json:"store_url" example:"https://shop.example.com" swaggertype:"string"`
	MonthlySalary FlexString `json:"monthly_salary" example:"50000" swaggertype:"string"`
}

type RequestResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	StoreURL      string    `json:"store_url"`
	MonthlySalary string    `json:"monthly_salary"`
	Status        string    `json:"status" enums:"pending,contacted,completed"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" enums:"pending,contacted,completed"`
}

// ============================================================================
// System
// ============================================================================

// RootResponse is the payload of GET /.
type RootResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message" example:"Intlakaa API is running"`
	Version string `json:"version"`
}

// HealthResponse represents the health check endpoint response.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks contains the status of individual service components.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// JWKSResponse is the published key set for admin tokens.
type JWKSResponse jwtx.JWKS
