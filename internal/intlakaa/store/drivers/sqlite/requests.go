package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/domain"
)

type requestsRepo struct {
	db dbtx
}

const requestColumns = `id, name, phone, store_url, monthly_salary, status, created_at, updated_at`

func scanRequest(row rowScanner) (domain.Request, error) {
	var (
		req                  domain.Request
		createdAt, updatedAt string
		err                  error
	)
	if err = row.Scan(
		&req.ID, &req.Name, &req.Phone, &req.StoreURL, &req.MonthlySalary,
		&req.Status, &createdAt, &updatedAt,
	); err != nil {
		return domain.Request{}, err
	}
	if req.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Request{}, err
	}
	if req.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.Request{}, err
	}
	return req, nil
}

func (r *requestsRepo) CreateRequest(ctx context.Context, req domain.Request) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO requests (`+requestColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		req.ID, req.Name, req.Phone, req.StoreURL, req.MonthlySalary, req.Status,
		formatTime(req.CreatedAt), formatTime(req.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *requestsRepo) GetRequestByID(ctx context.Context, id string) (domain.Request, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM requests WHERE id = ?`, id)
	req, err := scanRequest(row)
	if err != nil {
		return domain.Request{}, mapNotFound(err)
	}
	return req, nil
}

func (r *requestsRepo) ListRequests(ctx context.Context, status string) ([]domain.Request, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+requestColumns+` FROM requests
		WHERE ? = '' OR status = ?
		ORDER BY created_at DESC, id DESC`, status, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *requestsRepo) UpdateRequestStatus(ctx context.Context, id, status string, at time.Time) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE requests SET status = ?, updated_at = ? WHERE id = ?`, status, formatTime(at), id))
}

func (r *requestsRepo) DeleteRequest(ctx context.Context, id string) error {
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM requests WHERE id = ?`, id))
}
