package model

import "time"

// DateLayout is the wire format for calendar days.
const DateLayout = "2006-01-02"

// Availability marks one whole day on which an artist can perform.
type Availability struct {
	ID       int       `json:"id" db:"id"`
	ArtistID int       `json:"artist_id" db:"artist_id"`
	Date     time.Time `json:"-" db:"date"`
}

// Day renders the slot date without a time component.
func (a *Availability) Day() string {
	return a.Date.Format(DateLayout)
}

type AvailabilityResponse struct {
	ID       int    `json:"id"`
	ArtistID int    `json:"artist_id"`
	Date     string `json:"date"`
}

func (a *Availability) Response() AvailabilityResponse {
	return AvailabilityResponse{ID: a.ID, ArtistID: a.ArtistID, Date: a.Day()}
}

type ReplaceResult struct {
	Added   []int `json:"added"`
	Removed []int `json:"removed"`
}

type FillResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

type RangeResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// TruncateDay drops the clock part of t, keeping the calendar day in UTC.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(raw string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, raw, time.UTC)
}
