package kind

import "time"

// Action is a seeker's decision on a posting.
type Action string

// Swipe actions. Either one removes the posting from future matches.
const (
	ActionApply Action = "apply"
	ActionSkip  Action = "skip"
)

// Breakdown holds the per-factor sub-scores (0-100).
type Breakdown struct {
	JobTitle  int
	JobType   int
	Location  int
	Salary    int
	Languages int
	Skills    int
	Priority  int
}

// Match is one ranked posting. Score exceeds 100 for boosted postings.
type Match struct {
	JobID     string
	Score     int
	Reasons   []string
	Breakdown Breakdown
}

// Interaction is a stored swipe.
type Interaction struct {
	SeekerID   string
	JobID      string
	Action     Action
	RecordedAt time.Time
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"error"
}
