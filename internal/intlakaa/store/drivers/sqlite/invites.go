package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/domain"
)

type invitesRepo struct {
	db dbtx
}

const inviteColumns = `id, email, token_hash, role, invited_by, expires_at, accepted, accepted_at, created_at, updated_at`

func scanInvite(row rowScanner) (domain.AdminInvite, error) {
	var (
		inv                             domain.AdminInvite
		invitedBy, acceptedAt           sql.NullString
		expiresAt, createdAt, updatedAt string
		err                             error
	)
	if err = row.Scan(
		&inv.ID, &inv.Email, &inv.TokenHash, &inv.Role, &invitedBy,
		&expiresAt, &inv.Accepted, &acceptedAt, &createdAt, &updatedAt,
	); err != nil {
		return domain.AdminInvite{}, err
	}

	inv.InvitedBy = mapNullString(invitedBy)
	if inv.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return domain.AdminInvite{}, err
	}
	if inv.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.AdminInvite{}, err
	}
	if inv.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.AdminInvite{}, err
	}
	if acceptedAt.Valid {
		at, err := parseTime(acceptedAt.String)
		if err != nil {
			return domain.AdminInvite{}, err
		}
		inv.AcceptedAt = &at
	}
	return inv, nil
}

func (r *invitesRepo) UpsertInvite(ctx context.Context, inv domain.AdminInvite) error {
	// The row id and created_at of an existing invite are kept; everything
	// that makes the invite usable is replaced.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admin_invites (`+inviteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, 0, NULL, ?, ?)
		ON CONFLICT (email) DO UPDATE SET
			token_hash  = excluded.token_hash,
			role        = excluded.role,
			invited_by  = excluded.invited_by,
			expires_at  = excluded.expires_at,
			accepted    = 0,
			accepted_at = NULL,
			updated_at  = excluded.updated_at`,
		inv.ID, inv.Email, inv.TokenHash, inv.Role, mapStringNull(inv.InvitedBy),
		formatTime(inv.ExpiresAt), formatTime(inv.CreatedAt), formatTime(inv.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *invitesRepo) GetInviteByTokenHash(ctx context.Context, hash string) (domain.AdminInvite, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+inviteColumns+` FROM admin_invites WHERE token_hash = ?`, hash)
	inv, err := scanInvite(row)
	if err != nil {
		return domain.AdminInvite{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitesRepo) MarkInviteAccepted(ctx context.Context, id string, at time.Time) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE admin_invites SET accepted = 1, accepted_at = ?, updated_at = ? WHERE id = ? AND accepted = 0`,
		formatTime(at), formatTime(at), id,
	))
}

func (r *invitesRepo) DeleteExpiredInvites(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM admin_invites WHERE accepted = 0 AND expires_at <= ?`, formatTime(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
