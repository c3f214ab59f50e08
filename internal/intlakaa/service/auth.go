package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/domain"
	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/store"
	"github.com/aussiebroadwan/intlakaa/pkg/cryptox"
	"github.com/aussiebroadwan/intlakaa/pkg/jwtx"
	"github.com/aussiebroadwan/intlakaa/pkg/slogx"
)

// Session is an issued admin access token.
type Session struct {
	Token     string
	ExpiresAt time.Time
	TTL       time.Duration
	Admin     domain.Admin
}

type AuthService struct {
	Store    store.Store
	Keys     *jwtx.Keys
	TokenTTL time.Duration
	Clock    Clock
}

// Login checks the admin's password and issues an access token. Unknown
// emails and wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	log := slogx.FromContext(ctx)

	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return Session{}, ErrMissingCredentials
	}

	admin, err := s.Store.Admins().GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Keep the unknown-email path as slow as a real verification.
			cryptox.BurnPasswordCheck(password)
			log.Info("login failed", slog.String("reason", "unknown_email"))
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("load admin: %w", err)
	}

	if err := cryptox.VerifyPassword(password, admin.PasswordHash); err != nil {
		log.Info("login failed",
			slog.String("reason", "password_mismatch"),
			slog.String("admin_id", admin.ID),
		)
		return Session{}, ErrInvalidCredentials
	}

	sess, err := s.Issue(admin)
	if err != nil {
		return Session{}, err
	}

	log.Info("admin logged in", slog.String("admin_id", admin.ID), slog.String("role", admin.Role))
	return sess, nil
}

// Issue signs a fresh access token for admin.
func (s *AuthService) Issue(admin domain.Admin) (Session, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAdminTokenTTL
	}

	token, claims, err := s.Keys.Issue(admin.ID, admin.Email, admin.Role, ttl, s.Clock.now())
	if err != nil {
		return Session{}, err
	}
	return Session{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		TTL:       ttl,
		Admin:     admin,
	}, nil
}

// CurrentAdmin reloads the admin named by an access token's subject.
func (s *AuthService) CurrentAdmin(ctx context.Context, id string) (domain.Admin, error) {
	if !validID(id) {
		return domain.Admin{}, ErrAdminNotFound
	}
	admin, err := s.Store.Admins().GetAdminByID(ctx, id)
	if err != nil {
		return domain.Admin{}, notFound(err, ErrAdminNotFound)
	}
	return admin, nil
}
