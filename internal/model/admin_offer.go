package model

import "time"

// AdminOffer is a manual price quoted by an admin alongside the computed one.
type AdminOffer struct {
	ID            int       `json:"id" db:"id"`
	RequestID     int       `json:"request_id" db:"request_id"`
	AdminID       *int      `json:"admin_id,omitempty" db:"admin_id"`
	OverridePrice int       `json:"override_price" db:"override_price"`
	Notes         *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type CreateAdminOfferRequest struct {
	OverridePrice int     `json:"override_price" binding:"min=0"`
	Notes         *string `json:"notes"`
}

type UpdateAdminOfferRequest struct {
	OverridePrice *int    `json:"override_price" binding:"omitempty,min=0"`
	Notes         *string `json:"notes"`
}
