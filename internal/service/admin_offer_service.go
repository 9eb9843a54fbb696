package service

import (
	"context"
	"errors"

	"artist-booking/internal/model"
	"artist-booking/internal/repository"
	apperrors "artist-booking/pkg/app_errors"
	"artist-booking/pkg/logger"

	"go.uber.org/zap"
)

// AdminOfferService manages admin price annotations on a request. It never
// touches the quoted prices or the request status.
type AdminOfferService interface {
	ListForRequest(ctx context.Context, requestID int) ([]*model.AdminOffer, error)
	Get(ctx context.Context, id int) (*model.AdminOffer, error)
	Create(ctx context.Context, requestID int, adminID *int, price int, notes *string) (*model.AdminOffer, error)
	Update(ctx context.Context, id int, price *int, notes *string) (*model.AdminOffer, error)
	// Delete returns the removed record, or nil when there was none.
	Delete(ctx context.Context, id int) (*model.AdminOffer, error)
}

type AdminOfferServiceImpl struct {
	repository        repository.AdminOfferRepository
	requestRepository repository.BookingRequestRepository
}

func NewAdminOfferService(
	adminOfferRepository repository.AdminOfferRepository,
	requestRepository repository.BookingRequestRepository,
) AdminOfferService {
	return &AdminOfferServiceImpl{
		repository:        adminOfferRepository,
		requestRepository: requestRepository,
	}
}

func (s *AdminOfferServiceImpl) ListForRequest(ctx context.Context, requestID int) ([]*model.AdminOffer, error) {
	return s.repository.ListByRequest(ctx, requestID)
}

func (s *AdminOfferServiceImpl) Get(ctx context.Context, id int) (*model.AdminOffer, error) {
	offer, err := s.repository.FindByID(ctx, id)
	if errors.Is(err, apperrors.ErrAdminOfferNotFound) {
		return nil, nil
	}
	return offer, err
}

func (s *AdminOfferServiceImpl) Create(ctx context.Context, requestID int, adminID *int, price int, notes *string) (*model.AdminOffer, error) {
	if price < 0 {
		return nil, apperrors.NewValidationError("override_price", "must not be negative")
	}
	if _, err := s.requestRepository.FindByID(ctx, requestID); err != nil {
		return nil, err
	}

	offer, err := s.repository.Create(ctx, &model.AdminOffer{
		RequestID:     requestID,
		AdminID:       adminID,
		OverridePrice: price,
		Notes:         notes,
	})
	if err != nil {
		return nil, err
	}

	logger.WithComponent("service").Info("admin offer created",
		zap.Int("admin_offer_id", offer.ID),
		zap.Int("request_id", requestID),
		zap.Int("override_price", price),
	)
	return offer, nil
}

func (s *AdminOfferServiceImpl) Update(ctx context.Context, id int, price *int, notes *string) (*model.AdminOffer, error) {
	values := map[string]interface{}{}
	if price != nil {
		if *price < 0 {
			return nil, apperrors.NewValidationError("override_price", "must not be negative")
		}
		values["override_price"] = *price
	}
	if notes != nil {
		values["notes"] = *notes
	}
	return s.repository.Update(ctx, id, values)
}

func (s *AdminOfferServiceImpl) Delete(ctx context.Context, id int) (*model.AdminOffer, error) {
	offer, err := s.repository.Delete(ctx, id)
	if errors.Is(err, apperrors.ErrAdminOfferNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return offer, nil
}
