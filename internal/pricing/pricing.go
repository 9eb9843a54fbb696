// Package pricing computes client-facing price ranges for booking requests.
// Quote is pure: no I/O, no shared state.
package pricing

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	TechFeeLight = 450.0
	TechFeeSound = 450.0

	DefaultRatePerKM        = 0.5
	DefaultAgencyFeePercent = 20.0
)

var eventWeights = map[string]float64{
	"Private Feier":       0.6,
	"Firmenfeier":         1.35,
	"Teamevent/Incentive": 1.05,
	"Streetshow":          0.7,
}

var munichNames = map[string]struct{}{
	"münchen":  {},
	"muenchen": {},
	"munich":   {},
}

var teamWords = map[string]int{
	"duo":     2,
	"trio":    3,
	"quartet": 4,
}

// Input carries every attribute the quote depends on.
type Input struct {
	BaseMin         float64
	BaseMax         float64
	DistanceKM      float64
	FeePercent      float64
	Newsletter      bool
	EventType       string
	NumGuests       int
	IsWeekend       bool
	IsIndoor        bool
	NeedsLight      bool
	NeedsSound      bool
	ShowDiscipline  string
	TeamSize        string
	TeamCount       int // explicit head count; wins over TeamSize when > 0
	DurationMinutes int
	Address         string
}

type Engine struct {
	RatePerKM float64
}

func NewEngine(ratePerKM float64) *Engine {
	return &Engine{RatePerKM: ratePerKM}
}

// Quote returns the (min, max) price, truncated to whole units.
func (e *Engine) Quote(in Input) (int, int) {
	minP, maxP := in.BaseMin, in.BaseMax
	fixed := in.BaseMin == in.BaseMax

	// 1. event type
	weight, ok := eventWeights[in.EventType]
	if !ok {
		weight = 1.0
	}
	if fixed && weight < 1.0 {
		weight = 1.0
	}
	minP *= weight
	maxP *= weight

	// 2. guests
	if !fixed {
		g := GuestFactor(in.NumGuests)
		minP *= g
		maxP *= g
	}

	// 3. weekend
	if in.IsWeekend {
		minP *= 1.05
		maxP *= 1.15
	}

	// 4. newsletter
	if in.Newsletter {
		minP *= 0.95
		maxP *= 0.95
	}

	// 5. outdoor
	if !in.IsIndoor {
		minP *= 1.2
		maxP *= 1.2
	}

	// 6. duration
	d := DurationFactor(in.DurationMinutes)
	minP *= d
	maxP *= d

	// 7. tech, applied once per booking
	tech := 0.0
	if in.NeedsLight {
		tech += TechFeeLight
	}
	if in.NeedsSound {
		tech += TechFeeSound
	}

	// 8. agency fee
	fee := 1 + in.FeePercent/100
	minP *= fee
	maxP *= fee

	// 9. distance bands and city discount
	surcharge := DistanceSurcharge(in.DistanceKM)
	if IsMunich(CityFromAddress(in.Address)) {
		surcharge -= 100
	}

	// 10. travel per artist
	travel := in.DistanceKM * e.RatePerKM * float64(People(in.TeamSize, in.TeamCount))

	minTotal := minP + travel + tech + surcharge
	maxTotal := maxP + travel + tech + surcharge
	return int(minTotal), int(maxTotal)
}

// GuestFactor is the multiplier for the guest-count band.
func GuestFactor(guests int) float64 {
	switch {
	case guests <= 200:
		return 0.9
	case guests <= 500:
		return 1.1
	default:
		return 1.25
	}
}

// DurationFactor rounds minutes up to a multiple of five and maps it to a multiplier.
func DurationFactor(minutes int) float64 {
	rounded := minutes
	if rem := rounded % 5; rem != 0 {
		rounded += 5 - rem
	}

	switch {
	case rounded <= 5:
		return 1.0
	case rounded == 10:
		return 1.2
	case rounded == 15:
		return 1.3
	case rounded > 15:
		// tenths keep 20 -> 1.4 exact
		return float64(13+(rounded-15)/5) / 10
	default:
		return 1.2
	}
}

// DistanceSurcharge returns the flat travel band; bands do not stack.
func DistanceSurcharge(km float64) float64 {
	switch {
	case km >= 600:
		return 300
	case km >= 300:
		return 200
	}
	return 0
}

// CityFromAddress takes the part after the last comma and returns its last word, lower-cased.
func CityFromAddress(address string) string {
	part := address
	if i := strings.LastIndex(address, ","); i >= 0 {
		part = address[i+1:]
	}
	fields := strings.Fields(part)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[len(fields)-1])
}

func IsMunich(city string) bool {
	_, ok := munichNames[city]
	return ok
}

// People resolves how many artists travel.
func People(teamSize string, teamCount int) int {
	if teamCount > 0 {
		return teamCount
	}
	raw := strings.ToLower(strings.TrimSpace(teamSize))
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(f) {
		return int(f)
	}
	if n, ok := teamWords[raw]; ok {
		return n
	}
	return 1
}

// Team renders a head count as a TeamSize string.
func Team(n int) string {
	return strconv.Itoa(n)
}

func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
