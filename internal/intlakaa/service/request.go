package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/domain"
	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/store"
	"github.com/aussiebroadwan/intlakaa/pkg/idx"
	"github.com/aussiebroadwan/intlakaa/pkg/slogx"
)

type RequestService struct {
	Store store.Store
	Clock Clock
}

// CreateRequest stores a public lead. Nothing is written unless every field
// is present.
func (s *RequestService) CreateRequest(ctx context.Context, in domain.RequestInput) (domain.Request, error) {
	in = in.Normalize()
	if err := invalid(domain.ValidateRequestInput(in)); err != nil {
		return domain.Request{}, err
	}

	now := s.Clock.now()
	req := domain.Request{
		ID:            idx.NewAt(now).String(),
		Name:          in.Name,
		Phone:         in.Phone,
		StoreURL:      in.StoreURL,
		MonthlySalary: in.MonthlySalary,
		Status:        domain.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Store.Requests().CreateRequest(ctx, req); err != nil {
		return domain.Request{}, fmt.Errorf("create request: %w", err)
	}

	slogx.FromContext(ctx).Info("request submitted", slog.String("request_id", req.ID))
	return req, nil
}

// ListRequests returns requests newest first, optionally filtered by status.
func (s *RequestService) ListRequests(ctx context.Context, status string) ([]domain.Request, error) {
	if status != "" && !domain.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	reqs, err := s.Store.Requests().ListRequests(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return reqs, nil
}

func (s *RequestService) GetRequest(ctx context.Context, id string) (domain.Request, error) {
	if !validID(id) {
		return domain.Request{}, ErrRequestNotFound
	}
	req, err := s.Store.Requests().GetRequestByID(ctx, id)
	if err != nil {
		return domain.Request{}, notFound(err, ErrRequestNotFound)
	}
	return req, nil
}

// UpdateStatus moves a request to any allowed status.
func (s *RequestService) UpdateStatus(ctx context.Context, id, status string) (domain.Request, error) {
	if !domain.ValidStatus(status) {
		return domain.Request{}, ErrInvalidStatus
	}
	if !validID(id) {
		return domain.Request{}, ErrRequestNotFound
	}

	var updated domain.Request
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Requests().UpdateRequestStatus(ctx, id, status, s.Clock.now()); err != nil {
			return notFound(err, ErrRequestNotFound)
		}
		req, err := tx.Requests().GetRequestByID(ctx, id)
		if err != nil {
			return notFound(err, ErrRequestNotFound)
		}
		updated = req
		return nil
	})
	if err != nil {
		return domain.Request{}, err
	}

	slogx.FromContext(ctx).Info("request status changed",
		slog.String("request_id", id),
		slog.String("status", status),
	)
	return updated, nil
}

// DeleteRequest removes a request. Deleting twice fails the second time.
func (s *RequestService) DeleteRequest(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrRequestNotFound
	}
	if err := s.Store.Requests().DeleteRequest(ctx, id); err != nil {
		return notFound(err, ErrRequestNotFound)
	}
	slogx.FromContext(ctx).Info("request deleted", slog.String("request_id", id))
	return nil
}
