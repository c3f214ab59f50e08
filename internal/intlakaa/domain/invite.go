package domain

import "time"

type AdminInvite struct {
	ID         string
	Email      string
	TokenHash  string
	Role       string // Role granted on acceptance
	InvitedBy  string // Empty for the bootstrap owner invite
	ExpiresAt  time.Time
	Accepted   bool
	AcceptedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Expired reports whether the invite is past its expiry at now.
func (i AdminInvite) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

// Usable reports whether the invite can still be verified or accepted.
func (i AdminInvite) Usable(now time.Time) bool {
	return !i.Accepted && !i.Expired(now)
}
