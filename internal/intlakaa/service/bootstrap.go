package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/domain"
	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/store"
	"github.com/aussiebroadwan/intlakaa/pkg/cryptox"
	"github.com/aussiebroadwan/intlakaa/pkg/slogx"
)

// BootstrapService issues the very first owner invite. It is only usable
// while no admin exists and a bootstrap token has been configured.
type BootstrapService struct {
	Store   store.Store
	Invites *InviteService
	Token   string // Pre-configured bootstrap token
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Admins().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// Bootstrap sends an owner invite to email.
func (s *BootstrapService) Bootstrap(ctx context.Context, token, email string) (domain.AdminInvite, error) {
	l := slogx.FromContext(ctx)

	if s.Token == "" {
		return domain.AdminInvite{}, ErrBootstrapDisabled
	}

	if !cryptox.ConstantTimeEqual(token, s.Token) {
		l.Warn("unauthorized bootstrap attempt")
		return domain.AdminInvite{}, ErrBootstrapUnauthorized
	}

	bootstrapped, err := s.IsBootstrapped(ctx)
	if err != nil {
		return domain.AdminInvite{}, fmt.Errorf("check bootstrap state: %w", err)
	}
	if bootstrapped {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return domain.AdminInvite{}, ErrBootstrapAlready
	}

	invite, err := s.Invites.issue(ctx, "", email, domain.RoleOwner)
	if err != nil {
		return domain.AdminInvite{}, err
	}

	l.Info("bootstrap owner invite issued", slog.String("email", invite.Email))
	return invite, nil
}
