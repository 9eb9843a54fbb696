package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"artist-booking/internal/model"
	"artist-booking/internal/repository"
	apperrors "artist-booking/pkg/app_errors"
	"artist-booking/pkg/logger"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AvailabilityService interface {
	Add(ctx context.Context, artistID int, date time.Time) (*model.Availability, error)
	// AddMany stores all missing days in one transaction or none of them.
	AddMany(ctx context.Context, artistID int, dates []time.Time) ([]*model.Availability, error)
	// Remove returns nil, nil when the slot does not exist.
	Remove(ctx context.Context, availabilityID int) (*model.Availability, error)
	List(ctx context.Context, artistID *int) ([]*model.Availability, error)
	ReplaceForArtist(ctx context.Context, artistID int, dates []time.Time) (*model.ReplaceResult, error)
	EnsureAvailableForAllOn(ctx context.Context, date time.Time, onlyApproved bool) (*model.FillResult, error)
	EnsureRangeForArtist(ctx context.Context, artistID int, start, end time.Time) (*model.RangeResult, error)
	EnsureRollingWindowForAll(ctx context.Context, days int) (*model.RangeResult, error)
}

type AvailabilityServiceImpl struct {
	transactor       repository.Transactor
	repository       repository.AvailabilityRepository
	artistRepository repository.ArtistRepository
	now              func() time.Time
}

func NewAvailabilityService(
	transactor repository.Transactor,
	availabilityRepository repository.AvailabilityRepository,
	artistRepository repository.ArtistRepository,
) AvailabilityService {
	return &AvailabilityServiceImpl{
		transactor:       transactor,
		repository:       availabilityRepository,
		artistRepository: artistRepository,
		now:              time.Now,
	}
}

func (s *AvailabilityServiceImpl) Add(ctx context.Context, artistID int, date time.Time) (*model.Availability, error) {
	day := model.TruncateDay(date)

	existing, err := s.repository.FindByArtistAndDate(ctx, artistID, day)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrAvailabilityNotFound) {
		return nil, err
	}

	slot, err := s.repository.Insert(ctx, artistID, day)
	if errors.Is(err, apperrors.ErrAvailabilityExists) {
		// lost an insert race; the winner's row is the answer
		return s.repository.FindByArtistAndDate(ctx, artistID, day)
	}
	if err != nil {
		return nil, err
	}
	return slot, nil
}

// AddMany returns one slot per distinct day, in the order first given.
func (s *AvailabilityServiceImpl) AddMany(ctx context.Context, artistID int, dates []time.Time) ([]*model.Availability, error) {
	order := make([]string, 0, len(dates))
	days := make(map[string]time.Time, len(dates))
	for _, d := range dates {
		day := model.TruncateDay(d)
		key := day.Format(model.DateLayout)
		if _, dup := days[key]; dup {
			continue
		}
		days[key] = day
		order = append(order, key)
	}

	var slots []*model.Availability
	err := s.transactor.WithinTx(ctx, func(tx pgx.Tx) error {
		current, err := s.repository.ListForArtistTx(ctx, tx, artistID)
		if err != nil {
			return err
		}

		stored := make(map[string]struct{}, len(current))
		for _, slot := range current {
			stored[slot.Day()] = struct{}{}
		}
		var missing []time.Time
		for _, key := range order {
			if _, ok := stored[key]; !ok {
				missing = append(missing, days[key])
			}
		}

		if len(missing) > 0 {
			if _, err := s.repository.InsertDatesTx(ctx, tx, artistID, missing); err != nil {
				return err
			}
			if current, err = s.repository.ListForArtistTx(ctx, tx, artistID); err != nil {
				return err
			}
		}

		byDay := make(map[string]*model.Availability, len(current))
		for _, slot := range current {
			byDay[slot.Day()] = slot
		}
		slots = make([]*model.Availability, 0, len(order))
		for _, key := range order {
			slot, ok := byDay[key]
			if !ok {
				return fmt.Errorf("availability for %s missing after insert", key)
			}
			slots = append(slots, slot)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (s *AvailabilityServiceImpl) Remove(ctx context.Context, availabilityID int) (*model.Availability, error) {
	slot, err := s.repository.Delete(ctx, availabilityID)
	if errors.Is(err, apperrors.ErrAvailabilityNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *AvailabilityServiceImpl) List(ctx context.Context, artistID *int) ([]*model.Availability, error) {
	return s.repository.List(ctx, artistID)
}

// ReplaceForArtist makes the artist's stored days equal to dates, touching only the difference.
func (s *AvailabilityServiceImpl) ReplaceForArtist(ctx context.Context, artistID int, dates []time.Time) (*model.ReplaceResult, error) {
	target := make(map[string]time.Time, len(dates))
	for _, d := range dates {
		day := model.TruncateDay(d)
		target[day.Format(model.DateLayout)] = day
	}

	result := &model.ReplaceResult{Added: []int{}, Removed: []int{}}

	err := s.transactor.WithinTx(ctx, func(tx pgx.Tx) error {
		current, err := s.repository.ListForArtistTx(ctx, tx, artistID)
		if err != nil {
			return err
		}

		kept := make(map[string]struct{}, len(current))
		for _, slot := range current {
			key := slot.Day()
			if _, ok := target[key]; ok {
				kept[key] = struct{}{}
				continue
			}
			result.Removed = append(result.Removed, slot.ID)
		}

		var missing []time.Time
		for key, day := range target {
			if _, ok := kept[key]; !ok {
				missing = append(missing, day)
			}
		}
		sort.Slice(missing, func(i, j int) bool { return missing[i].Before(missing[j]) })

		if err := s.repository.DeleteByIDsTx(ctx, tx, artistID, result.Removed); err != nil {
			return err
		}

		added, err := s.repository.InsertDatesTx(ctx, tx, artistID, missing)
		if err != nil {
			return err
		}
		result.Added = append(result.Added, added...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithComponent("service").Info("availability replaced",
		zap.Int("artist_id", artistID),
		zap.Int("added", len(result.Added)),
		zap.Int("removed", len(result.Removed)),
	)
	return result, nil
}

func (s *AvailabilityServiceImpl) EnsureAvailableForAllOn(ctx context.Context, date time.Time, onlyApproved bool) (*model.FillResult, error) {
	created, eligible, err := s.repository.InsertForAllOn(ctx, model.TruncateDay(date), onlyApproved)
	if err != nil {
		return nil, err
	}
	return &model.FillResult{Created: created, Skipped: eligible - created}, nil
}

// EnsureRangeForArtist fills [start, end] inclusive.
func (s *AvailabilityServiceImpl) EnsureRangeForArtist(ctx context.Context, artistID int, start, end time.Time) (*model.RangeResult, error) {
	start, end = model.TruncateDay(start), model.TruncateDay(end)
	if end.Before(start) {
		return nil, apperrors.NewValidationError("end", "must not be before start")
	}
	total := int(end.Sub(start).Hours()/24) + 1

	var added int
	err := s.transactor.WithinTx(ctx, func(tx pgx.Tx) error {
		var err error
		added, err = s.repository.InsertRangeTx(ctx, tx, artistID, start, end)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &model.RangeResult{Added: added, Skipped: total - added}, nil
}

// EnsureRollingWindowForAll gives every artist a slot on each of the next days days, today included.
func (s *AvailabilityServiceImpl) EnsureRollingWindowForAll(ctx context.Context, days int) (*model.RangeResult, error) {
	if days < 1 {
		return nil, apperrors.NewValidationError("days", "must be positive")
	}

	ids, err := s.artistRepository.ListIDs(ctx, false)
	if err != nil {
		return nil, err
	}

	start := model.TruncateDay(s.now())
	end := start.AddDate(0, 0, days-1)

	total := &model.RangeResult{}
	for _, id := range ids {
		res, err := s.EnsureRangeForArtist(ctx, id, start, end)
		if err != nil {
			return nil, err
		}
		total.Added += res.Added
		total.Skipped += res.Skipped
	}

	logger.WithComponent("service").Info("rolling availability window ensured",
		zap.Int("artists", len(ids)),
		zap.Int("added", total.Added),
		zap.Int("skipped", total.Skipped),
	)
	return total, nil
}
