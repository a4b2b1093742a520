// Package interaction records that a seeker already evaluated a posting.
package interaction

import (
	"strings"
	"time"

	"github.com/kindph/matching/internal/domain"
)

// Action is what the seeker did with a posting.
type Action string

// Interaction actions. Either one excludes the posting from future matches.
const (
	ActionApply Action = "apply"
	ActionSkip  Action = "skip"
)

// ParseAction validates a client-supplied action.
func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionApply, ActionSkip:
		return a, nil
	}
	return "", domain.NewFieldError("action", "must be \"apply\" or \"skip\"")
}

// Record is one (seeker, posting) interaction. Re-recording the pair
// replaces the action.
type Record struct {
	SeekerID   string
	JobID      string
	Action     Action
	RecordedAt time.Time
}

// NewRecord validates and creates a record.
func NewRecord(seekerID, jobID string, action Action, at time.Time) (Record, error) {
	if strings.TrimSpace(seekerID) == "" {
		return Record{}, domain.NewFieldError("seeker_id", "is required")
	}
	if strings.TrimSpace(jobID) == "" {
		return Record{}, domain.NewFieldError("job_id", "is required")
	}
	if action != ActionApply && action != ActionSkip {
		return Record{}, domain.NewFieldError("action", "must be \"apply\" or \"skip\"")
	}
	return Record{SeekerID: seekerID, JobID: jobID, Action: action, RecordedAt: at.UTC()}, nil
}
