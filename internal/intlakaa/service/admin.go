package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/domain"
	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/store"
	"github.com/aussiebroadwan/intlakaa/pkg/slogx"
)

// AdminService is the owner-only admin management surface.
type AdminService struct {
	Store store.Store
	Clock Clock
}

func (s *AdminService) ListAdmins(ctx context.Context) ([]domain.Admin, error) {
	admins, err := s.Store.Admins().ListAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return admins, nil
}

// UpdateAdmin changes an admin's name and/or role. Demoting the only owner
// is refused so the system always keeps someone able to manage admins.
func (s *AdminService) UpdateAdmin(ctx context.Context, actorID, id string, upd domain.AdminUpdate) (domain.Admin, error) {
	upd = upd.Normalize()
	if err := invalid(domain.ValidateAdminUpdate(upd)); err != nil {
		return domain.Admin{}, err
	}
	if !validID(id) {
		return domain.Admin{}, ErrAdminNotFound
	}

	var updated domain.Admin
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		admin, err := tx.Admins().GetAdminByID(ctx, id)
		if err != nil {
			return notFound(err, ErrAdminNotFound)
		}

		if upd.Role != nil && admin.IsOwner() && *upd.Role != domain.RoleOwner {
			owners, err := tx.Admins().CountByRole(ctx, domain.RoleOwner)
			if err != nil {
				return fmt.Errorf("count owners: %w", err)
			}
			if owners <= 1 {
				return ErrLastOwner
			}
		}

		if upd.Name != nil {
			admin.Name = *upd.Name
		}
		if upd.Role != nil {
			admin.Role = *upd.Role
		}
		admin.UpdatedAt = s.Clock.now()

		if err := tx.Admins().UpdateAdmin(ctx, admin); err != nil {
			return notFound(err, ErrAdminNotFound)
		}
		updated = admin
		return nil
	})
	if err != nil {
		return domain.Admin{}, err
	}

	slogx.FromContext(ctx).Info("admin updated",
		slog.String("actor_id", actorID),
		slog.String("admin_id", updated.ID),
		slog.String("role", updated.Role),
	)
	return updated, nil
}

// DeleteAdmin removes an admin. Owners can't delete themselves, which also
// means the last owner can never be deleted.
func (s *AdminService) DeleteAdmin(ctx context.Context, actorID, id string) error {
	if id == actorID {
		return ErrSelfDelete
	}
	if !validID(id) {
		return ErrAdminNotFound
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		admin, err := tx.Admins().GetAdminByID(ctx, id)
		if err != nil {
			return notFound(err, ErrAdminNotFound)
		}
		if admin.IsOwner() {
			owners, err := tx.Admins().CountByRole(ctx, domain.RoleOwner)
			if err != nil {
				return fmt.Errorf("count owners: %w", err)
			}
			if owners <= 1 {
				return ErrLastOwner
			}
		}
		return notFound(tx.Admins().DeleteAdmin(ctx, id), ErrAdminNotFound)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("admin deleted", slog.String("actor_id", actorID), slog.String("admin_id", id))
	return nil
}
