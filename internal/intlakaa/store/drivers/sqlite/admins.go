package sqlite

import (
	"context"

	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/domain"
)

type adminsRepo struct {
	db dbtx
}

const adminColumns = `id, email, name, password_hash, role, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAdmin(row rowScanner) (domain.Admin, error) {
	var (
		a                    domain.Admin
		createdAt, updatedAt string
		err                  error
	)
	if err = row.Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash, &a.Role, &createdAt, &updatedAt); err != nil {
		return domain.Admin{}, err
	}
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Admin{}, err
	}
	if a.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.Admin{}, err
	}
	return a, nil
}

func (r *adminsRepo) GetAdminByID(ctx context.Context, id string) (domain.Admin, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admins WHERE id = ?`, id)
	a, err := scanAdmin(row)
	if err != nil {
		return domain.Admin{}, mapNotFound(err)
	}
	return a, nil
}

func (r *adminsRepo) GetAdminByEmail(ctx context.Context, email string) (domain.Admin, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admins WHERE email = ?`, email)
	a, err := scanAdmin(row)
	if err != nil {
		return domain.Admin{}, mapNotFound(err)
	}
	return a, nil
}

func (r *adminsRepo) ListAdmins(ctx context.Context) ([]domain.Admin, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+adminColumns+` FROM admins ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Admin, 0)
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *adminsRepo) CreateAdmin(ctx context.Context, a domain.Admin) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO admins (`+adminColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Email, a.Name, a.PasswordHash, a.Role, formatTime(a.CreatedAt), formatTime(a.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *adminsRepo) UpdateAdmin(ctx context.Context, a domain.Admin) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE admins SET name = ?, role = ?, updated_at = ? WHERE id = ?`,
		a.Name, a.Role, formatTime(a.UpdatedAt), a.ID,
	))
}

func (r *adminsRepo) DeleteAdmin(ctx context.Context, id string) error {
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM admins WHERE id = ?`, id))
}

func (r *adminsRepo) CountByRole(ctx context.Context, role string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins WHERE role = ?`, role).Scan(&n)
	return n, err
}

func (r *adminsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}
