package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"artist-booking/internal/model"
	"artist-booking/internal/repository"
	apperrors "artist-booking/pkg/app_errors"
	"artist-booking/pkg/logger"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type ArtistService interface {
	// Create stores the artist, its disciplines and the default availability window atomically.
	Create(ctx context.Context, params model.CreateArtistParams) (*model.Artist, error)
	// GetByID and GetByEmail return nil, nil when nothing matches.
	GetByID(ctx context.Context, id int) (*model.Artist, error)
	GetByEmail(ctx context.Context, email string) (*model.Artist, error)
	List(ctx context.Context, status *model.ApprovalStatus) ([]*model.Artist, error)
	ListByDisciplineAndDate(ctx context.Context, disciplines []string, date time.Time) ([]*model.Artist, error)
	Update(ctx context.Context, id int, params model.UpdateArtistParams) (*model.Artist, error)
	SetApprovalStatus(ctx context.Context, id int, status model.ApprovalStatus, reason *string, approverID *int) (*model.Artist, error)
	Submit(ctx context.Context, id int) (*model.Artist, error)
	Approve(ctx context.Context, id int, adminID int) (*model.Artist, error)
	Reject(ctx context.Context, id int, adminID int, reason string) (*model.Artist, error)
	Delete(ctx context.Context, id int) (bool, error)
	// Authenticate checks an email/password pair; every mismatch is ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*model.Artist, error)
}

type ArtistServiceImpl struct {
	transactor             repository.Transactor
	repository             repository.ArtistRepository
	disciplineRepository   repository.DisciplineRepository
	availabilityRepository repository.AvailabilityRepository
	windowDays             int
	now                    func() time.Time
}

func NewArtistService(
	transactor repository.Transactor,
	artistRepository repository.ArtistRepository,
	disciplineRepository repository.DisciplineRepository,
	availabilityRepository repository.AvailabilityRepository,
	windowDays int,
) ArtistService {
	if windowDays < 1 {
		windowDays = 365
	}
	return &ArtistServiceImpl{
		transactor:             transactor,
		repository:             artistRepository,
		disciplineRepository:   disciplineRepository,
		availabilityRepository: availabilityRepository,
		windowDays:             windowDays,
		now:                    time.Now,
	}
}

func (s *ArtistServiceImpl) Create(ctx context.Context, params model.CreateArtistParams) (*model.Artist, error) {
	// validate everything before opening the transaction
	disciplines := make([]string, 0, len(params.Disciplines))
	for _, name := range params.Disciplines {
		canonical, err := model.NormalizeDiscipline(name)
		if err != nil {
			return nil, err
		}
		disciplines = append(disciplines, canonical)
	}

	priceMin, priceMax := model.DefaultPriceMin, model.DefaultPriceMax
	if params.PriceMin != nil {
		priceMin = *params.PriceMin
	}
	if params.PriceMax != nil {
		priceMax = *params.PriceMax
	}
	if err := validatePriceBand(priceMin, priceMax); err != nil {
		return nil, err
	}

	artist := &model.Artist{
		Name:           strings.TrimSpace(params.Name),
		Email:          strings.TrimSpace(params.Email),
		PhoneNumber:    params.PhoneNumber,
		Address:        params.Address,
		PriceMin:       priceMin,
		PriceMax:       priceMax,
		IsAdmin:        params.IsAdmin,
		ApprovalStatus: model.ApprovalUnsubmitted,
	}

	if params.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		hashed := string(hash)
		artist.PasswordHash = &hashed
	}

	start := model.TruncateDay(s.now())
	end := start.AddDate(0, 0, s.windowDays-1)

	err := s.transactor.WithinTx(ctx, func(tx pgx.Tx) error {
		if _, err := s.repository.Create(ctx, tx, artist); err != nil {
			return err
		}

		ids := make([]int, 0, len(disciplines))
		names := make([]string, 0, len(disciplines))
		for _, name := range disciplines {
			d, err := s.disciplineRepository.EnsureTx(ctx, tx, name)
			if err != nil {
				return err
			}
			ids = append(ids, d.ID)
			names = append(names, d.Name)
		}
		if err := s.repository.AttachDisciplines(ctx, tx, artist.ID, ids); err != nil {
			return err
		}
		artist.Disciplines = names

		_, err := s.availabilityRepository.InsertRangeTx(ctx, tx, artist.ID, start, end)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.WithComponent("service").Info("artist created",
		zap.Int("artist_id", artist.ID),
		zap.Strings("disciplines", artist.Disciplines),
	)
	return artist, nil
}

func (s *ArtistServiceImpl) GetByID(ctx context.Context, id int) (*model.Artist, error) {
	artist, err := s.repository.FindByID(ctx, id)
	if errors.Is(err, apperrors.ErrArtistNotFound) {
		return nil, nil
	}
	return artist, err
}

func (s *ArtistServiceImpl) GetByEmail(ctx context.Context, email string) (*model.Artist, error) {
	artist, err := s.repository.FindByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, apperrors.ErrArtistNotFound) {
		return nil, nil
	}
	return artist, err
}

func (s *ArtistServiceImpl) List(ctx context.Context, status *model.ApprovalStatus) ([]*model.Artist, error) {
	if status != nil && !status.IsValid() {
		return nil, apperrors.NewValidationError("status", "invalid approval status %q", string(*status))
	}
	return s.repository.List(ctx, status)
}

// ListByDisciplineAndDate drops names that are not on the allow-list.
func (s *ArtistServiceImpl) ListByDisciplineAndDate(ctx context.Context, disciplines []string, date time.Time) ([]*model.Artist, error) {
	names := make([]string, 0, len(disciplines))
	for _, name := range disciplines {
		if canonical, ok := model.CanonicalDiscipline(name); ok {
			names = append(names, canonical)
		}
	}
	if len(names) == 0 {
		return []*model.Artist{}, nil
	}
	return s.repository.ListByDisciplinesAndDate(ctx, names, model.TruncateDay(date))
}

func (s *ArtistServiceImpl) Update(ctx context.Context, id int, params model.UpdateArtistParams) (*model.Artist, error) {
	values := map[string]interface{}{}
	if params.Name != nil {
		values["name"] = strings.TrimSpace(*params.Name)
	}
	if params.PhoneNumber != nil {
		values["phone_number"] = *params.PhoneNumber
	}
	if params.Address != nil {
		values["address"] = *params.Address
	}

	if params.PriceMin != nil || params.PriceMax != nil {
		current, err := s.repository.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		priceMin, priceMax := current.PriceMin, current.PriceMax
		if params.PriceMin != nil {
			priceMin = *params.PriceMin
			values["price_min"] = priceMin
		}
		if params.PriceMax != nil {
			priceMax = *params.PriceMax
			values["price_max"] = priceMax
		}
		if err := validatePriceBand(priceMin, priceMax); err != nil {
			return nil, err
		}
	}

	return s.repository.Update(ctx, id, values)
}

// SetApprovalStatus writes the approval columns as given.
func (s *ArtistServiceImpl) SetApprovalStatus(ctx context.Context, id int, status model.ApprovalStatus, reason *string, approverID *int) (*model.Artist, error) {
	if strings.TrimSpace(string(status)) == "" {
		return nil, apperrors.NewValidationError("status", "must not be empty")
	}

	update := model.ApprovalUpdate{Status: status, Reason: reason}
	if status == model.ApprovalApproved {
		now := s.now().UTC()
		update.ApprovedBy = approverID
		update.ApprovedAt = &now
		update.Reason = nil
	}

	artist, err := s.repository.UpdateApproval(ctx, id, update)
	if err != nil {
		return nil, err
	}

	logger.WithComponent("service").Info("artist approval status changed",
		zap.Int("artist_id", id),
		zap.String("status", string(status)),
	)
	return artist, nil
}

// Submit moves an artist into review; approved artists stay approved.
func (s *ArtistServiceImpl) Submit(ctx context.Context, id int) (*model.Artist, error) {
	artist, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if artist.ApprovalStatus == model.ApprovalApproved || artist.ApprovalStatus == model.ApprovalPending {
		return artist, nil
	}
	return s.SetApprovalStatus(ctx, id, model.ApprovalPending, nil, nil)
}

func (s *ArtistServiceImpl) Approve(ctx context.Context, id int, adminID int) (*model.Artist, error) {
	artist, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if artist.IsApproved() {
		return artist, nil
	}
	return s.SetApprovalStatus(ctx, id, model.ApprovalApproved, nil, &adminID)
}

func (s *ArtistServiceImpl) Reject(ctx context.Context, id int, adminID int, reason string) (*model.Artist, error) {
	var r *string
	if trimmed := strings.TrimSpace(reason); trimmed != "" {
		r = &trimmed
	}
	return s.SetApprovalStatus(ctx, id, model.ApprovalRejected, r, &adminID)
}

func (s *ArtistServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	return s.repository.Delete(ctx, id)
}

func validatePriceBand(priceMin, priceMax int) error {
	if priceMin < 0 || priceMax < 0 {
		return apperrors.NewValidationError("price_min", "prices must not be negative")
	}
	if priceMin > priceMax {
		return apperrors.NewValidationError("price_min", "must not exceed price_max")
	}
	return nil
}

func (s *ArtistServiceImpl) Authenticate(ctx context.Context, email, password string) (*model.Artist, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	artist, err := s.repository.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrArtistNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if artist.PasswordHash == nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*artist.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return artist, nil
}
