// Package mailer delivers invite emails. The API never sends mail itself;
// it hands a message to a Mailer, which either logs it (development) or
// publishes it to a message broker for a separate mail worker.
package mailer

import (
	"context"
	"time"
)

// InviteEmail is the message an invitee receives.
type InviteEmail struct {
	To        string    `json:"to"`
	Role      string    `json:"role"`
	Link      string    `json:"link"`
	InvitedBy string    `json:"invited_by,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Mailer interface {
	SendInvite(ctx context.Context, msg InviteEmail) error
	Close() error
}
