package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"artist-booking/internal/model"
	apperrors "artist-booking/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminOfferRepository interface {
	ListByRequest(ctx context.Context, requestID int) ([]*model.AdminOffer, error)
	FindByID(ctx context.Context, id int) (*model.AdminOffer, error)
	Create(ctx context.Context, offer *model.AdminOffer) (*model.AdminOffer, error)
	Update(ctx context.Context, id int, values map[string]interface{}) (*model.AdminOffer, error)
	Delete(ctx context.Context, id int) (*model.AdminOffer, error)
}

type AdminOfferRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewAdminOfferRepository(pool *pgxpool.Pool) AdminOfferRepository {
	return &AdminOfferRepositoryImpl{
		pool: pool,
	}
}

const adminOfferColumns = `id, request_id, admin_id, override_price, notes, created_at`

func scanAdminOffer(row pgx.Row) (*model.AdminOffer, error) {
	var o model.AdminOffer
	if err := row.Scan(&o.ID, &o.RequestID, &o.AdminID, &o.OverridePrice, &o.Notes, &o.CreatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *AdminOfferRepositoryImpl) ListByRequest(ctx context.Context, requestID int) ([]*model.AdminOffer, error) {
	query := `SELECT ` + adminOfferColumns + ` FROM admin_offers WHERE request_id = $1 ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []*model.AdminOffer
	for rows.Next() {
		o, err := scanAdminOffer(rows)
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

func (r *AdminOfferRepositoryImpl) FindByID(ctx context.Context, id int) (*model.AdminOffer, error) {
	offer, err := scanAdminOffer(r.pool.QueryRow(ctx, `SELECT `+adminOfferColumns+` FROM admin_offers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAdminOfferNotFound
		}
		return nil, err
	}
	return offer, nil
}

func (r *AdminOfferRepositoryImpl) Create(ctx context.Context, offer *model.AdminOffer) (*model.AdminOffer, error) {
	query := `
		INSERT INTO admin_offers (request_id, admin_id, override_price, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + adminOfferColumns

	created, err := scanAdminOffer(r.pool.QueryRow(ctx, query,
		offer.RequestID, offer.AdminID, offer.OverridePrice, offer.Notes,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create admin offer: %w", err)
	}
	return created, nil
}

func (r *AdminOfferRepositoryImpl) Update(ctx context.Context, id int, values map[string]interface{}) (*model.AdminOffer, error) {
	allowedFields := map[string]bool{
		"override_price": true,
		"notes":          true,
	}

	sets := []string{}
	args := []interface{}{}
	argPos := 1

	for column, value := range values {
		if ok := allowedFields[column]; !ok {
			return nil, apperrors.NewValidationError(column, "field cannot be updated")
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if len(sets) == 0 {
		return r.FindByID(ctx, id)
	}

	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE admin_offers
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), argPos, adminOfferColumns)

	offer, err := scanAdminOffer(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAdminOfferNotFound
		}
		return nil, err
	}
	return offer, nil
}

func (r *AdminOfferRepositoryImpl) Delete(ctx context.Context, id int) (*model.AdminOffer, error) {
	offer, err := scanAdminOffer(r.pool.QueryRow(ctx, `DELETE FROM admin_offers WHERE id = $1 RETURNING `+adminOfferColumns, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAdminOfferNotFound
		}
		return nil, fmt.Errorf("failed to delete admin offer: %w", err)
	}
	return offer, nil
}
