package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	apperrors "artist-booking/pkg/app_errors"
)

// BookingStatus is shared by requests and per-artist offers.
type BookingStatus string

const (
	StatusRequested BookingStatus = "angefragt"
	StatusOffered   BookingStatus = "angeboten"
	StatusAccepted  BookingStatus = "akzeptiert"
	StatusRejected  BookingStatus = "abgelehnt"
	StatusCancelled BookingStatus = "storniert"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusRequested, StatusOffered, StatusAccepted, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// EventType is the closed set of event categories a client can book for.
type EventType string

const (
	EventPrivate    EventType = "Private Feier"
	EventCorporate  EventType = "Firmenfeier"
	EventIncentive  EventType = "Teamevent/Incentive"
	EventStreetshow EventType = "Streetshow"
)

var eventTypeAliases = map[string]EventType{
	"private feier":       EventPrivate,
	"firmenfeier":         EventCorporate,
	"teamevent/incentive": EventIncentive,
	"teamevent":           EventIncentive,
	"incentive":           EventIncentive,
	"streetshow":          EventStreetshow,
}

// ParseEventType matches raw case-insensitively and returns the canonical value.
func ParseEventType(raw string) (EventType, error) {
	if et, ok := eventTypeAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return et, nil
	}
	return "", apperrors.NewValidationError("event_type", "invalid event type %q", raw)
}

// TeamSize accepts either a number of artists or a word such as "duo".
type TeamSize string

var teamWords = map[string]int{
	"solo":    1,
	"duo":     2,
	"trio":    3,
	"quartet": 4,
	"group":   3,
	"gruppe":  3,
}

func (t *TeamSize) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*t = TeamSize(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return apperrors.NewValidationError("team_size", "must be a number or a team word")
	}
	*t = TeamSize(s)
	return nil
}

// Count resolves the number of artists. Empty means solo; integral floats
// such as 2.0 count as whole artists.
func (t TeamSize) Count() (int, error) {
	raw := strings.ToLower(strings.TrimSpace(string(t)))
	if raw == "" {
		return 1, nil
	}
	if n, ok := teamWords[raw]; ok {
		return n, nil
	}
	if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 1 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, apperrors.NewValidationError("team_size", "invalid team size %q", string(t))
	}
	return int(f), nil
}

// BookingRequest is a client's event enquiry and its quoted prices.
type BookingRequest struct {
	ID              int           `json:"id" db:"id"`
	ClientName      string        `json:"client_name" db:"client_name"`
	ClientEmail     string        `json:"client_email" db:"client_email"`
	EventDate       time.Time     `json:"-" db:"event_date"`
	EventTime       string        `json:"event_time" db:"event_time"`
	DurationMinutes int           `json:"duration_minutes" db:"duration_minutes"`
	EventType       EventType     `json:"event_type" db:"event_type"`
	ShowDisciplines []string      `json:"show_disciplines" db:"show_disciplines"`
	TeamSize        int           `json:"team_size" db:"team_size"`
	NumberOfGuests  int           `json:"number_of_guests" db:"number_of_guests"`
	EventAddress    string        `json:"event_address" db:"event_address"`
	IsIndoor        bool          `json:"is_indoor" db:"is_indoor"`
	SpecialRequests string        `json:"special_requests" db:"special_requests"`
	NeedsLight      bool          `json:"needs_light" db:"needs_light"`
	NeedsSound      bool          `json:"needs_sound" db:"needs_sound"`
	DistanceKM      float64       `json:"distance_km" db:"distance_km"`
	NewsletterOptIn bool          `json:"newsletter_opt_in" db:"newsletter_opt_in"`
	PriceMin        *int          `json:"price_min" db:"price_min"`
	PriceMax        *int          `json:"price_max" db:"price_max"`
	PriceOffered    *int          `json:"price_offered" db:"price_offered"`
	Status          BookingStatus `json:"status" db:"status"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" db:"updated_at"`

	ArtistIDs []int `json:"artist_ids" db:"-"`
}

// EventDay renders the event date as YYYY-MM-DD.
func (r *BookingRequest) EventDay() string {
	return r.EventDate.Format(DateLayout)
}

func (r *BookingRequest) MarshalJSON() ([]byte, error) {
	type alias BookingRequest
	return json.Marshal(struct {
		*alias
		EventDate string `json:"event_date"`
	}{alias: (*alias)(r), EventDate: r.EventDay()})
}

// Offer is one artist's progress on a request: the submitted gage and its own status.
type Offer struct {
	RequestID     int           `json:"request_id" db:"request_id"`
	ArtistID      int           `json:"artist_id" db:"artist_id"`
	RequestedGage *int          `json:"requested_gage" db:"requested_gage"`
	Status        BookingStatus `json:"status" db:"status"`
	Comment       *string       `json:"comment,omitempty" db:"comment"`
	OfferedAt     *time.Time    `json:"offered_at,omitempty" db:"offered_at"`
}

// Submitted reports whether the artist has named a gage.
func (o *Offer) Submitted() bool {
	return o.RequestedGage != nil
}

// AllSubmitted reports whether every offer carries a gage.
func AllSubmitted(offers []*Offer) bool {
	if len(offers) == 0 {
		return false
	}
	for _, o := range offers {
		if !o.Submitted() {
			return false
		}
	}
	return true
}

// SumGages adds up the submitted gages.
func SumGages(offers []*Offer) int {
	total := 0
	for _, o := range offers {
		if o.RequestedGage != nil {
			total += *o.RequestedGage
		}
	}
	return total
}

type CreateBookingRequestParams struct {
	ClientName      string   `json:"client_name" binding:"required"`
	ClientEmail     string   `json:"client_email" binding:"required,email"`
	EventDate       string   `json:"event_date" binding:"required"`
	EventTime       string   `json:"event_time"`
	DurationMinutes int      `json:"duration_minutes" binding:"min=0"`
	EventType       string   `json:"event_type" binding:"required"`
	ShowDisciplines []string `json:"disciplines" binding:"required"`
	TeamSize        TeamSize `json:"team_size"`
	NumberOfGuests  int      `json:"number_of_guests" binding:"min=0"`
	EventAddress    string   `json:"event_address" binding:"required"`
	IsIndoor        bool     `json:"is_indoor"`
	SpecialRequests string   `json:"special_requests"`
	NeedsLight      bool     `json:"needs_light"`
	NeedsSound      bool     `json:"needs_sound"`
	DistanceKM      float64  `json:"distance_km" binding:"min=0"`
	NewsletterOptIn bool     `json:"newsletter_opt_in"`
}

// DefaultEventTime is used when the client leaves the start time open.
const DefaultEventTime = "18:00"

type CreateRequestResult struct {
	Request             *BookingRequest `json:"-"`
	RequestID           int             `json:"request_id"`
	PriceMin            *int            `json:"price_min"`
	PriceMax            *int            `json:"price_max"`
	NumAvailableArtists int             `json:"num_available_artists"`
	GroupPricingPending bool            `json:"group_pricing_pending"`
}

type SetOfferRequest struct {
	ArtistGage int     `json:"artist_gage" binding:"min=0"`
	Comment    *string `json:"comment"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type SetArtistStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type SetArtistsStatusRequest struct {
	Status    string `json:"status" binding:"required"`
	ArtistIDs []int  `json:"artist_ids"`
}

// RequestRecommendation pairs a request with the artist's own unmarked-up price range.
type RequestRecommendation struct {
	*BookingRequest
	RecommendedPriceMin int `json:"recommended_price_min"`
	RecommendedPriceMax int `json:"recommended_price_max"`
}

func (r *RequestRecommendation) MarshalJSON() ([]byte, error) {
	base, err := r.BookingRequest.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}
	fields["recommended_price_min"] = r.RecommendedPriceMin
	fields["recommended_price_max"] = r.RecommendedPriceMax
	return json.Marshal(fields)
}
