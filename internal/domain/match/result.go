// Package match holds the matching engine's per-posting output.
package match

// Breakdown is the per-factor sub-score (0-100) of a match.
type Breakdown struct {
	JobTitle  int
	JobType   int
	Location  int
	Salary    int
	Languages int
	Skills    int
	Priority  int
}

// Result is a scored posting. Score may exceed 100 for boosted postings.
type Result struct {
	jobID     string
	score     int
	reasons   []string
	breakdown Breakdown
}

// New creates a match result.
func New(jobID string, score int, reasons []string, breakdown Breakdown) Result {
	return Result{jobID: jobID, score: score, reasons: reasons, breakdown: breakdown}
}

// JobID returns the posting identifier.
func (r *Result) JobID() string { return r.jobID }

// Score returns the final weighted score.
func (r *Result) Score() int { return r.score }

// Reasons returns the human-readable match reasons in factor order.
func (r *Result) Reasons() []string { return r.reasons }

// Breakdown returns the per-factor sub-scores.
func (r *Result) Breakdown() Breakdown { return r.breakdown }
