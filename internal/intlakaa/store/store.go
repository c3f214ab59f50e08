package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, mongo)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and so a Tx-scoped store can't start another transaction.
type Store interface {
	Admins() Admins
	Invites() Invites
	Requests() Requests

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. fn must only use
	// the tx it is given.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Admins interface {
	GetAdminByID(ctx context.Context, id string) (domain.Admin, error)

	// GetAdminByEmail looks up by the normalized (lowercase) email.
	GetAdminByEmail(ctx context.Context, email string) (domain.Admin, error)

	// ListAdmins returns every admin ordered by creation (oldest first).
	ListAdmins(ctx context.Context) ([]domain.Admin, error)

	// CreateAdmin inserts a new admin. A duplicate email yields ErrAlreadyExists.
	CreateAdmin(ctx context.Context, a domain.Admin) error

	// UpdateAdmin writes name, role and updated_at for a.ID.
	UpdateAdmin(ctx context.Context, a domain.Admin) error

	DeleteAdmin(ctx context.Context, id string) error

	// CountByRole returns how many admins hold role.
	CountByRole(ctx context.Context, role string) (int, error)

	// IsEmpty returns true if there are no admins.
	IsEmpty(ctx context.Context) (bool, error)
}

type Invites interface {
	// UpsertInvite writes the invite for inv.Email, replacing any previous
	// invite for that email (token, role, inviter and expiry are overwritten
	// and the accepted flag is reset).
	UpsertInvite(ctx context.Context, inv domain.AdminInvite) error

	// GetInviteByTokenHash returns the invite in whatever state it is in.
	GetInviteByTokenHash(ctx context.Context, hash string) (domain.AdminInvite, error)

	// MarkInviteAccepted flips accepted only if the invite is still
	// unaccepted; otherwise ErrNotFound.
	MarkInviteAccepted(ctx context.Context, id string, at time.Time) error

	// DeleteExpiredInvites removes unaccepted invites that expired before now.
	DeleteExpiredInvites(ctx context.Context, now time.Time) (int64, error)
}

type Requests interface {
	CreateRequest(ctx context.Context, r domain.Request) error
	GetRequestByID(ctx context.Context, id string) (domain.Request, error)

	// ListRequests returns requests newest first. An empty status means all.
	ListRequests(ctx context.Context, status string) ([]domain.Request, error)

	UpdateRequestStatus(ctx context.Context, id, status string, at time.Time) error
	DeleteRequest(ctx context.Context, id string) error
}
