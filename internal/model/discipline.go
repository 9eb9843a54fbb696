package model

import (
	"regexp"
	"strings"

	apperrors "artist-booking/pkg/app_errors"

	"golang.org/x/text/unicode/norm"
)

// Discipline is a performance category an artist can offer.
type Discipline struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// AllowedDisciplines is the canonical allow-list, in display order.
var AllowedDisciplines = []string{
	"Zauberer",
	"Cyr-Wheel",
	"Bodenakrobatik",
	"Luftakrobatik",
	"Partnerakrobatik",
	"Chinese Pole",
	"Hula Hoop",
	"Handstand",
	"Contemporary Dance",
	"Breakdance",
	"Teeterboard",
	"Jonglage",
	"Moderation",
	"Pantomime/Entertainment",
}

var customDisciplinePattern = regexp.MustCompile(`^[A-Za-z0-9 ÄÖÜäöüß/-]+$`)

// CanonicalDiscipline returns the allow-listed spelling of name, if any.
func CanonicalDiscipline(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	for _, allowed := range AllowedDisciplines {
		if strings.EqualFold(allowed, trimmed) {
			return allowed, true
		}
	}
	return "", false
}

// NormalizeDiscipline maps free text onto the allow-list casing. Unknown but
// well-formed names pass through trimmed and NFC-composed as custom
// disciplines, so a decomposed "Ü" is stored the same as a precomposed one.
func NormalizeDiscipline(name string) (string, error) {
	if canonical, ok := CanonicalDiscipline(name); ok {
		return canonical, nil
	}

	trimmed := norm.NFC.String(strings.TrimSpace(name))
	if trimmed == "" {
		return "", apperrors.NewValidationError("discipline", "name must not be empty")
	}
	if !customDisciplinePattern.MatchString(trimmed) {
		return "", apperrors.NewValidationError("discipline", "invalid discipline name %q", trimmed)
	}
	return trimmed, nil
}

// NormalizeShowDisciplines validates a request's show disciplines strictly
// against the allow-list and returns them in canonical casing.
func NormalizeShowDisciplines(names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, apperrors.NewValidationError("show_discipline", "at least one discipline is required")
	}

	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		canonical, ok := CanonicalDiscipline(name)
		if !ok {
			return nil, apperrors.NewValidationError("show_discipline", "unknown discipline %q", strings.TrimSpace(name))
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		out = append(out, canonical)
	}
	return out, nil
}
