package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"artist-booking/internal/model"
	"artist-booking/internal/pricing"
	"artist-booking/internal/queue"
	"artist-booking/internal/repository"
	apperrors "artist-booking/pkg/app_errors"
	"artist-booking/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateRequest(ctx context.Context, params model.CreateBookingRequestParams) (*model.CreateRequestResult, error)
	// SetOffer returns nil, nil when the request or the request/artist pair does not exist.
	SetOffer(ctx context.Context, requestID, artistID, gage int, comment *string) (*model.BookingRequest, error)
	// ChangeStatus ignores unknown statuses and returns the request as stored.
	ChangeStatus(ctx context.Context, requestID int, status string) (*model.BookingRequest, error)
	GetArtistStatuses(ctx context.Context, requestID int) ([]*model.Offer, error)
	SetArtistStatus(ctx context.Context, requestID, artistID int, status string) (*model.Offer, error)
	SetArtistsStatus(ctx context.Context, requestID int, artistIDs []int, status string) ([]*model.Offer, error)
	SetAllArtistsStatus(ctx context.Context, requestID int, status string) ([]*model.Offer, error)
	GetRequest(ctx context.Context, id int) (*model.BookingRequest, error)
	ListRequests(ctx context.Context) ([]*model.BookingRequest, error)
	ListOffered(ctx context.Context) ([]*model.BookingRequest, error)
	DeleteRequest(ctx context.Context, id int) (bool, error)
	GetRequestsForArtistWithRecommendation(ctx context.Context, artistID int) ([]*model.RequestRecommendation, error)
	// WaitNotifications blocks until every notification batch handed off so
	// far has been published or given up on.
	WaitNotifications()
}

// publishTimeout bounds a single queue publish so a stalled broker cannot
// pile up notification goroutines.
const publishTimeout = 2 * time.Second

type BookingServiceImpl struct {
	transactor        repository.Transactor
	repository        repository.BookingRequestRepository
	offerRepository   repository.OfferRepository
	artistRepository  repository.ArtistRepository
	engine            *pricing.Engine
	agencyFeePercent  float64
	notificationQueue queue.NotificationQueue
	publishTimeout    time.Duration
	inflight          sync.WaitGroup
}

func NewBookingService(
	transactor repository.Transactor,
	requestRepository repository.BookingRequestRepository,
	offerRepository repository.OfferRepository,
	artistRepository repository.ArtistRepository,
	engine *pricing.Engine,
	agencyFeePercent float64,
	notificationQueue queue.NotificationQueue,
) BookingService {
	return &BookingServiceImpl{
		transactor:        transactor,
		repository:        requestRepository,
		offerRepository:   offerRepository,
		artistRepository:  artistRepository,
		engine:            engine,
		agencyFeePercent:  agencyFeePercent,
		notificationQueue: notificationQueue,
		publishTimeout:    publishTimeout,
	}
}

func (s *BookingServiceImpl) CreateRequest(ctx context.Context, params model.CreateBookingRequestParams) (*model.CreateRequestResult, error) {
	req, err := newBookingRequest(params)
	if err != nil {
		return nil, err
	}

	artists, err := s.artistRepository.ListByDisciplinesAndDate(ctx, req.ShowDisciplines, req.EventDate)
	if err != nil {
		return nil, err
	}

	groupPending := req.TeamSize >= 3
	if !groupPending && len(artists) > 0 {
		baseMin, baseMax := basePriceRange(artists, req.TeamSize)
		distance := 0.0
		if hasExternalArtist(artists, req.EventAddress) {
			distance = req.DistanceKM
		}
		priceMin, priceMax := s.engine.Quote(s.quoteInput(req, float64(baseMin), float64(baseMax), distance, s.agencyFeePercent))
		req.PriceMin = &priceMin
		req.PriceMax = &priceMax
	}

	artistIDs := make([]int, 0, len(artists))
	for _, a := range artists {
		artistIDs = append(artistIDs, a.ID)
	}

	err = s.transactor.WithinTx(ctx, func(tx pgx.Tx) error {
		if _, err := s.repository.Create(ctx, tx, req); err != nil {
			return err
		}
		return s.offerRepository.CreateMany(ctx, tx, req.ID, artistIDs)
	})
	if err != nil {
		return nil, err
	}
	req.ArtistIDs = artistIDs

	logger.WithComponent("service").Info("booking request created",
		zap.Int("request_id", req.ID),
		zap.Int("matched_artists", len(artistIDs)),
		zap.Int("team_size", req.TeamSize),
	)

	s.notify(ctx, model.NotificationRequestCreated, req.ID, artistIDs,
		fmt.Sprintf("New booking request for %s on %s", req.EventType, req.EventDay()))

	return &model.CreateRequestResult{
		Request:             req,
		RequestID:           req.ID,
		PriceMin:            req.PriceMin,
		PriceMax:            req.PriceMax,
		NumAvailableArtists: len(artistIDs),
		GroupPricingPending: groupPending,
	}, nil
}

func newBookingRequest(params model.CreateBookingRequestParams) (*model.BookingRequest, error) {
	eventType, err := model.ParseEventType(params.EventType)
	if err != nil {
		return nil, err
	}

	disciplines, err := model.NormalizeShowDisciplines(params.ShowDisciplines)
	if err != nil {
		return nil, err
	}

	teamSize, err := params.TeamSize.Count()
	if err != nil {
		return nil, err
	}

	eventDate, err := model.ParseDay(strings.TrimSpace(params.EventDate))
	if err != nil {
		return nil, apperrors.NewValidationError("event_date", "expected YYYY-MM-DD")
	}

	eventTime := strings.TrimSpace(params.EventTime)
	if eventTime == "" {
		eventTime = model.DefaultEventTime
	}
	if _, err := time.Parse("15:04", eventTime); err != nil {
		if _, err := time.Parse("15:04:05", eventTime); err != nil {
			return nil, apperrors.NewValidationError("event_time", "expected HH:MM")
		}
	}

	if params.DurationMinutes < 0 {
		return nil, apperrors.NewValidationError("duration_minutes", "must not be negative")
	}
	if params.NumberOfGuests < 0 {
		return nil, apperrors.NewValidationError("number_of_guests", "must not be negative")
	}
	if params.DistanceKM < 0 {
		return nil, apperrors.NewValidationError("distance_km", "must not be negative")
	}

	return &model.BookingRequest{
		ClientName:      strings.TrimSpace(params.ClientName),
		ClientEmail:     strings.TrimSpace(params.ClientEmail),
		EventDate:       eventDate,
		EventTime:       eventTime,
		DurationMinutes: params.DurationMinutes,
		EventType:       eventType,
		ShowDisciplines: disciplines,
		TeamSize:        teamSize,
		NumberOfGuests:  params.NumberOfGuests,
		EventAddress:    strings.TrimSpace(params.EventAddress),
		IsIndoor:        params.IsIndoor,
		SpecialRequests: params.SpecialRequests,
		NeedsLight:      params.NeedsLight,
		NeedsSound:      params.NeedsSound,
		DistanceKM:      params.DistanceKM,
		NewsletterOptIn: params.NewsletterOptIn,
		Status:          model.StatusRequested,
	}, nil
}

// basePriceRange spans the whole pool for solos and sums the first two matches for duos.
func basePriceRange(artists []*model.Artist, teamSize int) (int, int) {
	if teamSize == 2 {
		baseMin, baseMax := 0, 0
		for i, a := range artists {
			if i == 2 {
				break
			}
			baseMin += a.PriceMin
			baseMax += a.PriceMax
		}
		return baseMin, baseMax
	}

	baseMin, baseMax := artists[0].PriceMin, artists[0].PriceMax
	for _, a := range artists[1:] {
		if a.PriceMin < baseMin {
			baseMin = a.PriceMin
		}
		if a.PriceMax > baseMax {
			baseMax = a.PriceMax
		}
	}
	return baseMin, baseMax
}

// hasExternalArtist reports whether some artist with a known address lives outside the event city.
func hasExternalArtist(artists []*model.Artist, eventAddress string) bool {
	city := eventAddress
	if i := strings.LastIndex(eventAddress, ","); i >= 0 {
		city = eventAddress[i+1:]
	}
	city = strings.ToLower(strings.TrimSpace(city))

	for _, a := range artists {
		if a.Address == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(a.Address), city) {
			return true
		}
	}
	return false
}

func (s *BookingServiceImpl) quoteInput(req *model.BookingRequest, baseMin, baseMax, distance, feePercent float64) pricing.Input {
	return pricing.Input{
		BaseMin:         baseMin,
		BaseMax:         baseMax,
		DistanceKM:      distance,
		FeePercent:      feePercent,
		Newsletter:      req.NewsletterOptIn,
		EventType:       string(req.EventType),
		NumGuests:       req.NumberOfGuests,
		IsWeekend:       pricing.IsWeekend(req.EventDate),
		IsIndoor:        req.IsIndoor,
		NeedsLight:      req.NeedsLight,
		NeedsSound:      req.NeedsSound,
		ShowDiscipline:  strings.Join(req.ShowDisciplines, ","),
		TeamSize:        pricing.Team(req.TeamSize),
		DurationMinutes: req.DurationMinutes,
		Address:         req.EventAddress,
	}
}

func (s *BookingServiceImpl) SetOffer(ctx context.Context, requestID, artistID, gage int, comment *string) (*model.BookingRequest, error) {
	if gage < 0 {
		return nil, apperrors.NewValidationError("artist_gage", "must not be negative")
	}

	var req *model.BookingRequest
	finalized := false

	err := s.transactor.WithinTx(ctx, func(tx pgx.Tx) error {
		var err error
		// serializes submissions for the same request
		req, err = s.repository.FindByIDWithLock(ctx, tx, requestID)
		if err != nil {
			return err
		}

		if _, err := s.offerRepository.SubmitGage(ctx, tx, requestID, artistID, gage, comment); err != nil {
			return err
		}

		var base int
		if req.TeamSize == 1 {
			base = gage
		} else {
			offers, err := s.offerRepository.ListByRequestTx(ctx, tx, requestID)
			if err != nil {
				return err
			}
			if !model.AllSubmitted(offers) {
				return nil
			}
			base = model.SumGages(offers)
		}

		price, _ := s.engine.Quote(s.quoteInput(req, float64(base), float64(base), req.DistanceKM, s.agencyFeePercent))
		if err := s.repository.SetPriceOffered(ctx, tx, requestID, price, model.StatusOffered); err != nil {
			return err
		}
		req.PriceOffered = &price
		req.Status = model.StatusOffered
		finalized = true
		return nil
	})
	if errors.Is(err, apperrors.ErrRequestNotFound) || errors.Is(err, apperrors.ErrOfferNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	log := logger.WithComponent("service")
	log.Info("offer submitted",
		zap.Int("request_id", requestID),
		zap.Int("artist_id", artistID),
		zap.Int("gage", gage),
	)
	if finalized {
		log.Info("offer price finalized",
			zap.Int("request_id", requestID),
			zap.Int("price_offered", *req.PriceOffered),
		)
	}

	s.notify(ctx, model.NotificationOfferSubmitted, requestID, req.ArtistIDs,
		fmt.Sprintf("Artist %d submitted an offer for request %d", artistID, requestID))

	return req, nil
}

func (s *BookingServiceImpl) ChangeStatus(ctx context.Context, requestID int, status string) (*model.BookingRequest, error) {
	target := model.BookingStatus(status)
	if !target.IsValid() {
		logger.WithComponent("service").Debug("ignoring invalid status",
			zap.Int("request_id", requestID),
			zap.String("status", status),
		)
		return s.GetRequest(ctx, requestID)
	}

	req, err := s.repository.UpdateStatus(ctx, requestID, target)
	if errors.Is(err, apperrors.ErrRequestNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	logger.WithComponent("service").Info("booking request status changed",
		zap.Int("request_id", requestID),
		zap.String("status", status),
	)
	return req, nil
}

func (s *BookingServiceImpl) GetArtistStatuses(ctx context.Context, requestID int) ([]*model.Offer, error) {
	if _, err := s.repository.FindByID(ctx, requestID); err != nil {
		return nil, err
	}
	return s.offerRepository.ListByRequest(ctx, requestID)
}

func (s *BookingServiceImpl) SetArtistStatus(ctx context.Context, requestID, artistID int, status string) (*model.Offer, error) {
	offers, err := s.setOfferStatuses(ctx, requestID, []int{artistID}, status)
	if err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		return nil, apperrors.ErrOfferNotFound
	}
	return offers[0], nil
}

func (s *BookingServiceImpl) SetArtistsStatus(ctx context.Context, requestID int, artistIDs []int, status string) ([]*model.Offer, error) {
	if len(artistIDs) == 0 {
		return nil, apperrors.NewValidationError("artist_ids", "at least one artist is required")
	}
	return s.setOfferStatuses(ctx, requestID, artistIDs, status)
}

func (s *BookingServiceImpl) SetAllArtistsStatus(ctx context.Context, requestID int, status string) ([]*model.Offer, error) {
	return s.setOfferStatuses(ctx, requestID, nil, status)
}

func (s *BookingServiceImpl) setOfferStatuses(ctx context.Context, requestID int, artistIDs []int, status string) ([]*model.Offer, error) {
	target := model.BookingStatus(status)
	if !target.IsValid() {
		return nil, apperrors.NewValidationError("status", "invalid status %q", status)
	}

	offers, err := s.offerRepository.UpdateStatus(ctx, requestID, artistIDs, target)
	if err != nil {
		return nil, err
	}

	logger.WithComponent("service").Info("artist statuses updated",
		zap.Int("request_id", requestID),
		zap.Ints("artist_ids", artistIDs),
		zap.String("status", status),
		zap.Int("updated", len(offers)),
	)
	return offers, nil
}

func (s *BookingServiceImpl) GetRequest(ctx context.Context, id int) (*model.BookingRequest, error) {
	req, err := s.repository.FindByID(ctx, id)
	if errors.Is(err, apperrors.ErrRequestNotFound) {
		return nil, nil
	}
	return req, err
}

func (s *BookingServiceImpl) ListRequests(ctx context.Context) ([]*model.BookingRequest, error) {
	return s.repository.List(ctx)
}

func (s *BookingServiceImpl) ListOffered(ctx context.Context) ([]*model.BookingRequest, error) {
	return s.repository.ListOffered(ctx)
}

func (s *BookingServiceImpl) DeleteRequest(ctx context.Context, id int) (bool, error) {
	return s.repository.Delete(ctx, id)
}

// GetRequestsForArtistWithRecommendation previews what the artist would charge
// for each linked request: their own band, no agency fee, no travel, no tech.
func (s *BookingServiceImpl) GetRequestsForArtistWithRecommendation(ctx context.Context, artistID int) ([]*model.RequestRecommendation, error) {
	artist, err := s.artistRepository.FindByID(ctx, artistID)
	if errors.Is(err, apperrors.ErrArtistNotFound) {
		return []*model.RequestRecommendation{}, nil
	}
	if err != nil {
		return nil, err
	}

	requests, err := s.repository.ListByArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}

	out := make([]*model.RequestRecommendation, 0, len(requests))
	for _, req := range requests {
		in := s.quoteInput(req, float64(artist.PriceMin), float64(artist.PriceMax), 0, 0)
		in.Newsletter = false
		in.NeedsLight = false
		in.NeedsSound = false
		in.TeamSize = pricing.Team(1)

		recMin, recMax := s.engine.Quote(in)
		out = append(out, &model.RequestRecommendation{
			BookingRequest:      req,
			RecommendedPriceMin: recMin,
			RecommendedPriceMax: recMax,
		})
	}
	return out, nil
}

// notify is best-effort: failures are logged and never reach the caller.
func (s *BookingServiceImpl) notify(ctx context.Context, kind model.NotificationKind, requestID int, artistIDs []int, message string) {
	if s.notificationQueue == nil || len(artistIDs) == 0 {
		return
	}

	now := time.Now().UTC()
	batch := make([]*model.Notification, 0, len(artistIDs))
	for _, artistID := range artistIDs {
		batch = append(batch, &model.Notification{
			ID:        uuid.New().String(),
			Kind:      kind,
			ArtistID:  artistID,
			RequestID: requestID,
			Message:   message,
			CreatedAt: now,
		})
	}

	// detach from request cancellation; the data change is already committed
	publishCtx := context.WithoutCancel(ctx)

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		log := logger.WithComponent("service")
		for _, n := range batch {
			if err := s.publish(publishCtx, n); err != nil {
				log.Warn("failed to publish notification",
					zap.String("kind", string(kind)),
					zap.Int("request_id", requestID),
					zap.Int("artist_id", n.ArtistID),
					zap.Error(err),
				)
			}
		}
	}()
}

func (s *BookingServiceImpl) publish(ctx context.Context, n *model.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()
	return s.notificationQueue.Publish(ctx, n)
}

func (s *BookingServiceImpl) WaitNotifications() {
	s.inflight.Wait()
}
