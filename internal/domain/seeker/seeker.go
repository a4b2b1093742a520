// Package seeker holds the job seeker's matching inputs: stored preferences and profile.
package seeker

import (
	"fmt"

	"github.com/kindph/matching/internal/domain/geo"
)

// SalaryType is the pay period a salary expectation is expressed in.
type SalaryType string

// Salary period constants.
const (
	SalaryDaily   SalaryType = "daily"
	SalaryMonthly SalaryType = "monthly"
	SalaryHourly  SalaryType = "hourly"
	SalaryOneTime SalaryType = "one-time"
)

// IsValid reports whether t is a known salary period.
func (t SalaryType) IsValid() bool {
	switch t {
	case SalaryDaily, SalaryMonthly, SalaryHourly, SalaryOneTime:
		return true
	}
	return false
}

// ParseSalaryType converts a stored value, defaulting empty input to monthly.
func ParseSalaryType(s string) (SalaryType, error) {
	if s == "" {
		return SalaryMonthly, nil
	}
	t := SalaryType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("unknown salary type %q", s)
	}
	return t, nil
}

// SalaryRange is the seeker's expected pay. Max <= 0 means no upper bound.
type SalaryRange struct {
	Min  float64
	Max  float64
	Type SalaryType
}

// IsSet reports whether the seeker gave any salary expectation.
func (r SalaryRange) IsSet() bool {
	return r.Min > 0 || r.Max > 0
}

// Preferences are the seeker's stored matching preferences.
type Preferences struct {
	SeekerID           string
	DesiredJobTitles   []string
	DesiredLocations   []string
	DesiredJobTypes    []string
	Salary             SalaryRange
	PreferredLanguages []string
	PreferredRadiusKm  float64
}

// Profile carries the seeker's skills and home coordinates.
// Coordinates is nil when the stored point is missing or malformed.
type Profile struct {
	SeekerID    string
	Skills      []string
	Coordinates *geo.Point
}

// NewProfile builds a profile from stored values, parsing the "(lng,lat)" point text.
func NewProfile(seekerID string, skills []string, pointText string) Profile {
	p := Profile{SeekerID: seekerID, Skills: skills}
	if pt, ok := geo.ParsePoint(pointText); ok {
		p.Coordinates = &pt
	}
	return p
}
