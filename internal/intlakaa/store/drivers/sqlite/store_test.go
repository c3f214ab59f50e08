package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/domain"
	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/store"
	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/store/drivers/sqlite"
	"github.com/aussiebroadwan/intlakaa/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

var base = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func newAdmin(email, role string, at time.Time) domain.Admin {
	return domain.Admin{
		ID:           idx.NewAt(at).String(),
		Email:        email,
		Name:         "Test " + role,
		PasswordHash: "$argon2id$stub",
		Role:         role,
		CreatedAt:    at,
		UpdatedAt:    at,
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestAdmins(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	empty, err := s.Admins().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	owner := newAdmin("owner@x.com", domain.RoleOwner, base)
	admin := newAdmin("admin@x.com", domain.RoleAdmin, base.Add(time.Minute))
	require.NoError(t, s.Admins().CreateAdmin(ctx, owner))
	require.NoError(t, s.Admins().CreateAdmin(ctx, admin))

	dup := newAdmin("owner@x.com", domain.RoleAdmin, base)
	err = s.Admins().CreateAdmin(ctx, dup)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	got, err := s.Admins().GetAdminByEmail(ctx, "owner@x.com")
	require.NoError(t, err)
	require.Equal(t, owner.ID, got.ID)
	require.True(t, got.CreatedAt.Equal(base))

	list, err := s.Admins().ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, owner.ID, list[0].ID)

	n, err := s.Admins().CountByRole(ctx, domain.RoleOwner)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	admin.Role = domain.RoleOwner
	admin.Name = "Promoted"
	admin.UpdatedAt = base.Add(time.Hour)
	require.NoError(t, s.Admins().UpdateAdmin(ctx, admin))
	got, err = s.Admins().GetAdminByID(ctx, admin.ID)
	require.NoError(t, err)
	require.Equal(t, "Promoted", got.Name)
	require.Equal(t, domain.RoleOwner, got.Role)

	require.NoError(t, s.Admins().DeleteAdmin(ctx, admin.ID))
	require.ErrorIs(t, s.Admins().DeleteAdmin(ctx, admin.ID), store.ErrNotFound)
	_, err = s.Admins().GetAdminByID(ctx, admin.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, s.Admins().UpdateAdmin(ctx, admin), store.ErrNotFound)
}

func TestInvites(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	inv := domain.AdminInvite{
		ID:        idx.NewAt(base).String(),
		Email:     "new@x.com",
		TokenHash: "hash-1",
		Role:      domain.RoleAdmin,
		ExpiresAt: base.Add(48 * time.Hour),
		CreatedAt: base,
		UpdatedAt: base,
	}
	require.NoError(t, s.Invites().UpsertInvite(ctx, inv))

	got, err := s.Invites().GetInviteByTokenHash(ctx, "hash-1")
	require.NoError(t, err)
	require.Equal(t, "new@x.com", got.Email)
	require.Empty(t, got.InvitedBy)
	require.False(t, got.Accepted)
	require.True(t, got.ExpiresAt.Equal(inv.ExpiresAt))

	t.Run("overwrite replaces token", func(t *testing.T) {
		again := inv
		again.ID = idx.New().String()
		again.TokenHash = "hash-2"
		again.InvitedBy = "owner-1"
		again.UpdatedAt = base.Add(time.Hour)
		require.NoError(t, s.Invites().UpsertInvite(ctx, again))

		_, err := s.Invites().GetInviteByTokenHash(ctx, "hash-1")
		require.ErrorIs(t, err, store.ErrNotFound)

		got, err := s.Invites().GetInviteByTokenHash(ctx, "hash-2")
		require.NoError(t, err)
		require.Equal(t, inv.ID, got.ID, "row id is kept")
		require.Equal(t, "owner-1", got.InvitedBy)
	})

	t.Run("accept is conditional", func(t *testing.T) {
		require.NoError(t, s.Invites().MarkInviteAccepted(ctx, inv.ID, base.Add(2*time.Hour)))
		require.ErrorIs(t, s.Invites().MarkInviteAccepted(ctx, inv.ID, base.Add(3*time.Hour)), store.ErrNotFound)

		got, err := s.Invites().GetInviteByTokenHash(ctx, "hash-2")
		require.NoError(t, err)
		require.True(t, got.Accepted)
		require.NotNil(t, got.AcceptedAt)
	})

	t.Run("re-invite resets accepted", func(t *testing.T) {
		again := inv
		again.TokenHash = "hash-3"
		require.NoError(t, s.Invites().UpsertInvite(ctx, again))
		got, err := s.Invites().GetInviteByTokenHash(ctx, "hash-3")
		require.NoError(t, err)
		require.False(t, got.Accepted)
		require.Nil(t, got.AcceptedAt)
	})
}

func TestDeleteExpiredInvites(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	mk := func(email, hash string, expires time.Time) domain.AdminInvite {
		return domain.AdminInvite{
			ID: idx.New().String(), Email: email, TokenHash: hash, Role: domain.RoleAdmin,
			ExpiresAt: expires, CreatedAt: base, UpdatedAt: base,
		}
	}
	expired := mk("old@x.com", "h-old", base.Add(time.Hour))
	accepted := mk("done@x.com", "h-done", base.Add(time.Hour))
	live := mk("live@x.com", "h-live", base.Add(72*time.Hour))
	for _, inv := range []domain.AdminInvite{expired, accepted, live} {
		require.NoError(t, s.Invites().UpsertInvite(ctx, inv))
	}
	require.NoError(t, s.Invites().MarkInviteAccepted(ctx, accepted.ID, base))

	n, err := s.Invites().DeleteExpiredInvites(ctx, base.Add(2*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = s.Invites().GetInviteByTokenHash(ctx, "h-old")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Invites().GetInviteByTokenHash(ctx, "h-done")
	require.NoError(t, err)
	_, err = s.Invites().GetInviteByTokenHash(ctx, "h-live")
	require.NoError(t, err)
}

func TestRequests(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	mk := func(name string, at time.Time) domain.Request {
		return domain.Request{
			ID: idx.NewAt(at).String(), Name: name, Phone: "123", StoreURL: "http://x.com",
			MonthlySalary: "1000", Status: domain.StatusPending, CreatedAt: at, UpdatedAt: at,
		}
	}
	first := mk("first", base)
	second := mk("second", base.Add(time.Minute))
	require.NoError(t, s.Requests().CreateRequest(ctx, first))
	require.NoError(t, s.Requests().CreateRequest(ctx, second))

	all, err := s.Requests().ListRequests(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "second", all[0].Name, "newest first")

	require.NoError(t, s.Requests().UpdateRequestStatus(ctx, first.ID, domain.StatusContacted, base.Add(time.Hour)))
	require.ErrorIs(t, s.Requests().UpdateRequestStatus(ctx, "missing", domain.StatusContacted, base), store.ErrNotFound)

	contacted, err := s.Requests().ListRequests(ctx, domain.StatusContacted)
	require.NoError(t, err)
	require.Len(t, contacted, 1)
	require.Equal(t, first.ID, contacted[0].ID)

	got, err := s.Requests().GetRequestByID(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusContacted, got.Status)
	require.True(t, got.UpdatedAt.Equal(base.Add(time.Hour)))

	require.NoError(t, s.Requests().DeleteRequest(ctx, first.ID))
	require.ErrorIs(t, s.Requests().DeleteRequest(ctx, first.ID), store.ErrNotFound)
	_, err = s.Requests().GetRequestByID(ctx, first.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Admins().CreateAdmin(ctx, newAdmin("rolled@x.com", domain.RoleAdmin, base)))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Admins().GetAdminByEmail(ctx, "rolled@x.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	err = s.WithTx(ctx, func(tx store.Tx) error {
		require.Error(t, tx.WithTx(ctx, func(store.Tx) error { return nil }), "nested tx")
		return tx.Admins().CreateAdmin(ctx, newAdmin("kept@x.com", domain.RoleAdmin, base))
	})
	require.NoError(t, err)

	_, err = s.Admins().GetAdminByEmail(ctx, "kept@x.com")
	require.NoError(t, err)
}
