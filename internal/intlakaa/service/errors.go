package service

import (
	"errors"
	"time"

	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/domain"
	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/store"
	"github.com/aussiebroadwan/intlakaa/pkg/errx"
	"github.com/aussiebroadwan/intlakaa/pkg/idx"
)

var (
	ErrMissingCredentials = errx.Invalid("Please provide email and password", nil)
	ErrInvalidCredentials = errx.Unauthorizedf("Invalid email or password")

	ErrAdminNotFound = errx.NotFoundf("Admin not found")
	ErrAdminExists   = errx.Conflictf("Admin with this email already exists")
	ErrLastOwner     = errx.Conflictf("Cannot remove the last owner")
	ErrSelfDelete    = errx.Conflictf("You cannot delete your own account")

	ErrInviteTokenRequired = errx.Invalid("Invite token is required", map[string]string{"token": "Invite token is required"})
	ErrInviteNotFound      = errx.NotFoundf("Invalid invite token")
	ErrInviteExpired       = errx.Gonef("Invite has expired")
	ErrInviteAccepted      = errx.Gonef("Invite has already been used")

	ErrRequestNotFound = errx.NotFoundf("Request not found")
	ErrInvalidStatus   = errx.Invalid("Invalid status", map[string]string{"status": "Status must be one of pending, contacted, completed"})

	ErrBootstrapDisabled     = errx.NotFoundf("Route not found")
	ErrBootstrapUnauthorized = errx.Unauthorizedf("Invalid bootstrap token")
	ErrBootstrapAlready      = errx.Conflictf("System already bootstrapped")
)

// invalid turns field errors into a Validation error, or nil.
func invalid(fields domain.FieldErrors) error {
	if fields.OK() {
		return nil
	}
	return errx.Invalid("Validation failed", fields)
}

// notFound maps store.ErrNotFound to the given domain error.
func notFound(err error, target *errx.Error) error {
	if errors.Is(err, store.ErrNotFound) {
		return target
	}
	return err
}

// Clock returns the current time. Services default to time.Now in UTC.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}

// validID reports whether id could name a stored record, so malformed ids
// resolve to not found without a store round trip.
func validID(id string) bool {
	return idx.Valid(id)
}
