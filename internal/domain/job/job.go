// Package job models a job posting as the matching engine sees it.
package job

import (
	"fmt"
	"time"

	"github.com/kindph/matching/internal/domain/geo"
)

// Status is the lifecycle state of a posting.
type Status string

// Posting statuses. Only active postings are match candidates.
const (
	StatusActive Status = "active"
	StatusPaused Status = "paused"
	StatusClosed Status = "closed"
)

// ParseStatus validates a stored status value.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusPaused, StatusClosed:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

// Posting is a job listing created by a job poster.
type Posting struct {
	ID                 string
	Title              string
	Type               string
	Location           string
	Coordinates        *geo.Point
	Province           string
	Region             string
	RequiredSkills     []string
	PreferredLanguages []string
	Salary             string
	IsBoosted          bool
	BoostExpiresAt     *time.Time
	CreatedAt          time.Time
	ExpiresAt          *time.Time
	Status             Status
}

// IsActive reports whether the posting may be offered to seekers.
func (p *Posting) IsActive() bool {
	return p.Status == StatusActive
}

// BoostActive reports whether the posting carries an unexpired boost at now.
// A boost without an expiry never lapses.
func (p *Posting) BoostActive(now time.Time) bool {
	if !p.IsBoosted {
		return false
	}
	return p.BoostExpiresAt == nil || p.BoostExpiresAt.After(now)
}

// SetCoordinates parses stored "(lng,lat)" point text; malformed text leaves
// the posting without coordinates.
func (p *Posting) SetCoordinates(pointText string) {
	if pt, ok := geo.ParsePoint(pointText); ok {
		p.Coordinates = &pt
		return
	}
	p.Coordinates = nil
}
