package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/domain"
	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/mailer"
	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/store"
	"github.com/aussiebroadwan/intlakaa/pkg/cryptox"
	"github.com/aussiebroadwan/intlakaa/pkg/idx"
	"github.com/aussiebroadwan/intlakaa/pkg/slogx"
)

// DefaultInviteTTL is how long an invite stays usable when no TTL is set.
const DefaultInviteTTL = 48 * time.Hour

type InviteService struct {
	Store       store.Store
	Mailer      mailer.Mailer
	Auth        *AuthService
	TTL         time.Duration
	FrontendURL string
	Policy      domain.PasswordPolicy
	Clock       Clock
}

// SendInvite invites email to become an admin. invitedBy is the acting
// owner's id.
func (s *InviteService) SendInvite(ctx context.Context, invitedBy, email string) (domain.AdminInvite, error) {
	return s.issue(ctx, invitedBy, email, domain.RoleAdmin)
}

// issue creates or overwrites the invite for email and mails the link.
// The raw token only ever leaves the process inside the link.
func (s *InviteService) issue(ctx context.Context, invitedBy, email, role string) (domain.AdminInvite, error) {
	log := slogx.FromContext(ctx)

	email = domain.NormalizeEmail(email)
	if err := invalid(domain.ValidateEmail(email)); err != nil {
		return domain.AdminInvite{}, err
	}

	_, err := s.Store.Admins().GetAdminByEmail(ctx, email)
	if err == nil {
		log.Warn("invite requested for existing admin", slog.String("email", email))
		return domain.AdminInvite{}, ErrAdminExists
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.AdminInvite{}, fmt.Errorf("check admin email: %w", err)
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.AdminInvite{}, fmt.Errorf("generate invite token: %w", err)
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultInviteTTL
	}
	now := s.Clock.now()
	invite := domain.AdminInvite{
		ID:        idx.NewAt(now).String(),
		Email:     email,
		TokenHash: cryptox.FingerprintToken(token),
		Role:      role,
		InvitedBy: invitedBy,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Store.Invites().UpsertInvite(ctx, invite); err != nil {
		return domain.AdminInvite{}, fmt.Errorf("store invite: %w", err)
	}

	err = s.Mailer.SendInvite(ctx, mailer.InviteEmail{
		To:        email,
		Role:      role,
		Link:      s.AcceptLink(token),
		InvitedBy: invitedBy,
		ExpiresAt: invite.ExpiresAt,
	})
	if err != nil {
		return domain.AdminInvite{}, fmt.Errorf("send invite email: %w", err)
	}

	log.Info("invite sent",
		slog.String("email", email),
		slog.String("role", role),
		slog.String("invited_by", invitedBy),
		slog.Time("expires_at", invite.ExpiresAt),
	)
	return invite, nil
}

// AcceptLink is the frontend URL an invitee opens to accept.
func (s *InviteService) AcceptLink(token string) string {
	return strings.TrimRight(s.FrontendURL, "/") + "/accept-invite?token=" + url.QueryEscape(token)
}

// VerifyInvite reports whether token names a usable invite, without
// consuming it.
func (s *InviteService) VerifyInvite(ctx context.Context, token string) (domain.AdminInvite, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.AdminInvite{}, ErrInviteTokenRequired
	}

	invite, err := s.Store.Invites().GetInviteByTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		return domain.AdminInvite{}, notFound(err, ErrInviteNotFound)
	}
	if err := s.checkUsable(invite); err != nil {
		return domain.AdminInvite{}, err
	}
	return invite, nil
}

func (s *InviteService) checkUsable(invite domain.AdminInvite) error {
	switch {
	case invite.Accepted:
		return ErrInviteAccepted
	case invite.Expired(s.Clock.now()):
		return ErrInviteExpired
	}
	return nil
}

// AcceptInvite consumes the invite, creates the admin it grants and logs
// them in. The invite is re-checked inside the transaction and marked
// accepted conditionally, so only one of two concurrent acceptances wins.
func (s *InviteService) AcceptInvite(ctx context.Context, in domain.AcceptInput) (Session, error) {
	log := slogx.FromContext(ctx)

	in = in.Normalize()
	if err := invalid(domain.ValidateAcceptInput(in, s.Policy)); err != nil {
		return Session{}, err
	}

	// Fail fast before paying for the password hash.
	if _, err := s.VerifyInvite(ctx, in.Token); err != nil {
		return Session{}, err
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	fingerprint := cryptox.FingerprintToken(in.Token)
	var admin domain.Admin
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		invite, err := tx.Invites().GetInviteByTokenHash(ctx, fingerprint)
		if err != nil {
			return notFound(err, ErrInviteNotFound)
		}
		if err := s.checkUsable(invite); err != nil {
			return err
		}

		now := s.Clock.now()
		admin = domain.Admin{
			ID:           idx.NewAt(now).String(),
			Email:        invite.Email,
			Name:         in.Name,
			PasswordHash: hash,
			Role:         invite.Role,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		// Claim the invite first so a losing concurrent acceptance fails on
		// the invite rather than on the admin email.
		if err := tx.Invites().MarkInviteAccepted(ctx, invite.ID, now); err != nil {
			return notFound(err, ErrInviteAccepted)
		}

		if err := tx.Admins().CreateAdmin(ctx, admin); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrAdminExists
			}
			return fmt.Errorf("create admin: %w", err)
		}
		return nil
	})
	if err != nil {
		return Session{}, err
	}

	log.Info("invite accepted",
		slog.String("admin_id", admin.ID),
		slog.String("email", admin.Email),
		slog.String("role", admin.Role),
	)
	return s.Auth.Issue(admin)
}
