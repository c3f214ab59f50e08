package service_test

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/domain"
	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/service"
	"github.com/aussiebroadwan/intlakaa/pkg/errx"
	"github.com/aussiebroadwan/intlakaa/pkg/idx"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestListAdmins(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.seedAdmin(t, "owner@intlakaa.com", domain.RoleOwner)
	admin := f.seedAdmin(t, "admin@intlakaa.com", domain.RoleAdmin)

	list, err := f.admins.ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, owner.ID, list[0].ID)
	require.Equal(t, admin.ID, list[1].ID)
}

func TestUpdateAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.seedAdmin(t, "owner@intlakaa.com", domain.RoleOwner)
	admin := f.seedAdmin(t, "admin@intlakaa.com", domain.RoleAdmin)

	got, err := f.admins.UpdateAdmin(ctx, owner.ID, admin.ID, domain.AdminUpdate{Name: strPtr(" Renamed "), Role: strPtr("owner")})
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Name)
	require.Equal(t, domain.RoleOwner, got.Role)

	// Two owners now, so one can be demoted.
	_, err = f.admins.UpdateAdmin(ctx, owner.ID, admin.ID, domain.AdminUpdate{Role: strPtr("admin")})
	require.NoError(t, err)

	t.Run("last owner cannot be demoted", func(t *testing.T) {
		_, err := f.admins.UpdateAdmin(ctx, owner.ID, owner.ID, domain.AdminUpdate{Role: strPtr("admin")})
		requireErr(t, err, service.ErrLastOwner)
		require.Equal(t, 409, errx.Status(err))
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := f.admins.UpdateAdmin(ctx, owner.ID, admin.ID, domain.AdminUpdate{Role: strPtr("root")})
		require.Equal(t, errx.Validation, errx.KindOf(err))
	})

	t.Run("unknown admin", func(t *testing.T) {
		_, err := f.admins.UpdateAdmin(ctx, owner.ID, idx.New().String(), domain.AdminUpdate{Name: strPtr("x")})
		requireErr(t, err, service.ErrAdminNotFound)
		_, err = f.admins.UpdateAdmin(ctx, owner.ID, "garbage", domain.AdminUpdate{Name: strPtr("x")})
		requireErr(t, err, service.ErrAdminNotFound)
	})
}

func TestDeleteAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.seedAdmin(t, "owner@intlakaa.com", domain.RoleOwner)
	admin := f.seedAdmin(t, "admin@intlakaa.com", domain.RoleAdmin)

	err := f.admins.DeleteAdmin(ctx, owner.ID, owner.ID)
	requireErr(t, err, service.ErrSelfDelete)

	require.NoError(t, f.admins.DeleteAdmin(ctx, owner.ID, admin.ID))
	requireErr(t, f.admins.DeleteAdmin(ctx, owner.ID, admin.ID), service.ErrAdminNotFound)

	// A deleted admin's email is free to be invited again.
	_, err = f.invites.SendInvite(ctx, owner.ID, "admin@intlakaa.com")
	require.NoError(t, err)
}
