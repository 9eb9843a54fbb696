package model

import "time"

type NotificationKind string

const (
	NotificationRequestCreated NotificationKind = "request_created"
	NotificationOfferSubmitted NotificationKind = "offer_submitted"
)

// Notification is a fire-and-forget message to one artist.
type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"kind"`
	ArtistID  int              `json:"artist_id"`
	RequestID int              `json:"request_id"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
}
