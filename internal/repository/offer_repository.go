package repository

import (
	"context"
	"errors"
	"fmt"

	"artist-booking/internal/model"
	apperrors "artist-booking/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OfferRepository persists the per-artist rows of a booking request.
type OfferRepository interface {
	ListByRequest(ctx context.Context, requestID int) ([]*model.Offer, error)
	UpdateStatus(ctx context.Context, requestID int, artistIDs []int, status model.BookingStatus) ([]*model.Offer, error)

	// Transaction methods
	CreateMany(ctx context.Context, tx pgx.Tx, requestID int, artistIDs []int) error
	SubmitGage(ctx context.Context, tx pgx.Tx, requestID, artistID, gage int, comment *string) (*model.Offer, error)
	ListByRequestTx(ctx context.Context, tx pgx.Tx, requestID int) ([]*model.Offer, error)
}

type OfferRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewOfferRepository(pool *pgxpool.Pool) OfferRepository {
	return &OfferRepositoryImpl{
		pool: pool,
	}
}

const offerColumns = `request_id, artist_id, requested_gage, status, comment, offered_at`

func scanOffer(row pgx.Row) (*model.Offer, error) {
	var o model.Offer
	err := row.Scan(
		&o.RequestID,
		&o.ArtistID,
		&o.RequestedGage,
		&o.Status,
		&o.Comment,
		&o.OfferedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func queryOffers(ctx context.Context, q querier, query string, args ...interface{}) ([]*model.Offer, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []*model.Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return offers, nil
}

func (r *OfferRepositoryImpl) CreateMany(ctx context.Context, tx pgx.Tx, requestID int, artistIDs []int) error {
	if len(artistIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO booking_offers (request_id, artist_id, status)
		SELECT $1, unnest($2::int[]), $3
		ON CONFLICT DO NOTHING
	`
	if _, err := tx.Exec(ctx, query, requestID, artistIDs, model.StatusRequested); err != nil {
		return fmt.Errorf("failed to create offers: %w", err)
	}
	return nil
}

// SubmitGage records the artist's fee; ErrOfferNotFound if the pair is not linked.
func (r *OfferRepositoryImpl) SubmitGage(ctx context.Context, tx pgx.Tx, requestID, artistID, gage int, comment *string) (*model.Offer, error) {
	query := `
		UPDATE booking_offers
		SET requested_gage = $1, status = $2, comment = COALESCE($3, comment), offered_at = NOW()
		WHERE request_id = $4 AND artist_id = $5
		RETURNING ` + offerColumns

	offer, err := scanOffer(tx.QueryRow(ctx, query, gage, model.StatusOffered, comment, requestID, artistID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOfferNotFound
		}
		return nil, fmt.Errorf("failed to submit gage: %w", err)
	}
	return offer, nil
}

func (r *OfferRepositoryImpl) ListByRequest(ctx context.Context, requestID int) ([]*model.Offer, error) {
	return queryOffers(ctx, r.pool, `SELECT `+offerColumns+` FROM booking_offers WHERE request_id = $1 ORDER BY artist_id`, requestID)
}

func (r *OfferRepositoryImpl) ListByRequestTx(ctx context.Context, tx pgx.Tx, requestID int) ([]*model.Offer, error) {
	return queryOffers(ctx, tx, `SELECT `+offerColumns+` FROM booking_offers WHERE request_id = $1 ORDER BY artist_id`, requestID)
}

// UpdateStatus sets the per-artist status; a nil artistIDs targets every artist on the request.
func (r *OfferRepositoryImpl) UpdateStatus(ctx context.Context, requestID int, artistIDs []int, status model.BookingStatus) ([]*model.Offer, error) {
	query := `
		UPDATE booking_offers
		SET status = $1
		WHERE request_id = $2 AND ($3::int[] IS NULL OR artist_id = ANY($3::int[]))
		RETURNING ` + offerColumns

	var ids interface{}
	if artistIDs != nil {
		ids = artistIDs
	}

	offers, err := queryOffers(ctx, r.pool, query, status, requestID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to update offer status: %w", err)
	}
	return offers, nil
}
