package model

import "time"

// ApprovalStatus gates whether an artist is visible in the marketplace.
type ApprovalStatus string

const (
	ApprovalUnsubmitted ApprovalStatus = "unsubmitted"
	ApprovalPending     ApprovalStatus = "pending"
	ApprovalApproved    ApprovalStatus = "approved"
	ApprovalRejected    ApprovalStatus = "rejected"
)

func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalUnsubmitted, ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

const (
	DefaultPriceMin = 1500
	DefaultPriceMax = 1900
)

type Artist struct {
	ID              int            `json:"id" db:"id"`
	Name            string         `json:"name" db:"name"`
	Email           string         `json:"email" db:"email"`
	PhoneNumber     string         `json:"phone_number" db:"phone_number"`
	Address         string         `json:"address" db:"address"`
	PasswordHash    *string        `json:"-" db:"password_hash"`
	PriceMin        int            `json:"price_min" db:"price_min"`
	PriceMax        int            `json:"price_max" db:"price_max"`
	IsAdmin         bool           `json:"is_admin" db:"is_admin"`
	ApprovalStatus  ApprovalStatus `json:"approval_status" db:"approval_status"`
	RejectionReason *string        `json:"rejection_reason,omitempty" db:"rejection_reason"`
	ApprovedBy      *int           `json:"approved_by,omitempty" db:"approved_by"`
	ApprovedAt      *time.Time     `json:"approved_at,omitempty" db:"approved_at"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at"`

	Disciplines []string `json:"disciplines" db:"-"`
}

// IsApproved reports whether the artist may be matched and make offers.
func (a *Artist) IsApproved() bool {
	return a.ApprovalStatus == ApprovalApproved
}

type CreateArtistParams struct {
	Name        string   `json:"name" binding:"required"`
	Email       string   `json:"email" binding:"required,email"`
	PhoneNumber string   `json:"phone_number"`
	Address     string   `json:"address"`
	Password    string   `json:"password"`
	PriceMin    *int     `json:"price_min"`
	PriceMax    *int     `json:"price_max"`
	Disciplines []string `json:"disciplines" binding:"required,min=1"`
	IsAdmin     bool     `json:"-"`
}

type UpdateArtistParams struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
	PriceMin    *int    `json:"price_min"`
	PriceMax    *int    `json:"price_max"`
}

// ApprovalUpdate is a plain field write of the approval columns.
type ApprovalUpdate struct {
	Status     ApprovalStatus
	Reason     *string
	ApprovedBy *int
	ApprovedAt *time.Time
}
