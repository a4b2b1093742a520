package matching

import (
	"math"
	"strings"
	"time"

	"github.com/kindph/matching/internal/domain/job"
	"github.com/kindph/matching/internal/domain/match"
	"github.com/kindph/matching/internal/domain/seeker"
)

// Factor weights of the composite score. They sum to 1.
const (
	weightJobTitle  = 0.40
	weightJobType   = 0.20
	weightLocation  = 0.15
	weightSalary    = 0.08
	weightLanguages = 0.02
	weightSkills    = 0.10
	weightPriority  = 0.05

	boostMultiplier = 1.5
)

// Sub-score values. Neutral floors keep unknown data from sinking a posting.
const (
	scoreFull = 100

	jobTypeMismatch = 60

	locationExact         = 100
	locationFuzzy         = 90
	locationRegion        = 85
	locationProvince      = 80
	locationRadiusFloor   = 60
	locationRadiusSpan    = 40
	locationOutsideRadius = 30
	locationNeutral       = 50

	salaryNeutral   = 50
	salaryInRange   = 100
	salaryNearRange = 80
	salaryAbove     = 70
	salaryBelow     = 40
	salaryTolRatio  = 0.2
	salaryTolMin    = 100

	languagesNoSeeker = 50
	languagesFloor    = 30

	skillsNoneRequired = 50

	priorityBase      = 50
	priorityBoost     = 30
	prioritySalaryHi  = 10
	prioritySalaryMid = 5
)

// Score computes how well posting p fits the seeker. It is a pure function of its
// inputs; now is only used for boost, recency and urgency.
//
// Postings that match neither a desired title nor any seeker skill score 0.
func Score(prefs *seeker.Preferences, profile *seeker.Profile, p *job.Posting, now time.Time) match.Result {
	if !passesGate(prefs, profile, p) {
		return match.New(p.ID, 0, []string{ReasonNoMatch}, match.Breakdown{})
	}

	b := match.Breakdown{
		JobTitle:  scoreJobTitle(prefs.DesiredJobTitles, p.Title),
		JobType:   scoreJobType(prefs.DesiredJobTypes, p.Type),
		Location:  scoreLocation(prefs, profile, p),
		Salary:    scoreSalary(prefs.Salary, p.Salary),
		Languages: scoreLanguages(prefs.PreferredLanguages, p.PreferredLanguages),
		Skills:    scoreSkills(profile.Skills, p.RequiredSkills),
		Priority:  scorePriority(p, now),
	}

	boosted := p.BoostActive(now)
	final := composite(b)
	if boosted {
		final = int(math.Round(float64(final) * boostMultiplier))
	}

	return match.New(p.ID, final, buildReasons(b, p, boosted), b)
}

func composite(b match.Breakdown) int {
	sum := float64(b.JobTitle)*weightJobTitle +
		float64(b.JobType)*weightJobType +
		float64(b.Location)*weightLocation +
		float64(b.Salary)*weightSalary +
		float64(b.Languages)*weightLanguages +
		float64(b.Skills)*weightSkills +
		float64(b.Priority)*weightPriority
	return int(math.Round(sum))
}

// passesGate: desired title or at least one overlapping skill.
func passesGate(prefs *seeker.Preferences, profile *seeker.Profile, p *job.Posting) bool {
	if containsFold(prefs.DesiredJobTitles, p.Title) {
		return true
	}
	return countMatchedSkills(profile.Skills, p.RequiredSkills) > 0
}

func scoreJobTitle(desired []string, title string) int {
	if containsFold(desired, title) {
		return scoreFull
	}
	return 0
}

func scoreJobType(desired []string, jobType string) int {
	if containsFold(desired, jobType) {
		return scoreFull
	}
	return jobTypeMismatch
}

func scoreSalary(r seeker.SalaryRange, text string) int {
	v, ok := job.ParseSalary(text)
	if !ok || !r.IsSet() {
		return salaryNeutral
	}

	amount := float64(v)
	upper := r.Max
	if upper <= 0 {
		upper = math.Inf(1)
	}
	tol := math.Max(r.Min*salaryTolRatio, salaryTolMin)

	switch {
	case amount >= r.Min && amount <= upper:
		return salaryInRange
	case amount >= r.Min-tol && amount <= upper+tol:
		return salaryNearRange
	case amount > upper+tol:
		return salaryAbove
	case amount < r.Min-tol:
		return salaryBelow
	}
	return salaryNeutral
}

func scoreLanguages(seekerLangs, jobLangs []string) int {
	required := nonEmpty(jobLangs)
	if len(required) == 0 {
		return scoreFull
	}
	if len(nonEmpty(seekerLangs)) == 0 {
		return languagesNoSeeker
	}

	common := 0
	for _, l := range required {
		if containsFold(seekerLangs, l) {
			common++
		}
	}
	return max(languagesFloor, percent(common, len(required)))
}

func scoreSkills(seekerSkills, required []string) int {
	req := nonEmpty(required)
	if len(req) == 0 {
		return skillsNoneRequired
	}
	if len(nonEmpty(seekerSkills)) == 0 {
		return 0
	}
	return percent(countMatchedSkills(seekerSkills, req), len(req))
}

func scorePriority(p *job.Posting, now time.Time) int {
	score := priorityBase
	if p.BoostActive(now) {
		score += priorityBoost
	}

	age := now.Sub(p.CreatedAt)
	switch {
	case age < 24*time.Hour:
		score += 20
	case age < 3*24*time.Hour:
		score += 15
	case age < 7*24*time.Hour:
		score += 10
	case age < 14*24*time.Hour:
		score += 5
	}

	if v, ok := job.ParseSalary(p.Salary); ok {
		switch {
		case v > 1000:
			score += prioritySalaryHi
		case v > 500:
			score += prioritySalaryMid
		}
	}

	if p.ExpiresAt != nil {
		remaining := p.ExpiresAt.Sub(now)
		switch {
		case remaining <= 0:
			// already expired
		case remaining < 3*24*time.Hour:
			score += 15
		case remaining < 7*24*time.Hour:
			score += 10
		}
	}

	return min(score, scoreFull)
}

// countMatchedSkills counts required skills that overlap any seeker skill
// (case-insensitive substring in either direction).
func countMatchedSkills(seekerSkills, required []string) int {
	have := lowerAll(seekerSkills)
	if len(have) == 0 {
		return 0
	}
	n := 0
	for _, r := range lowerAll(required) {
		for _, h := range have {
			if strings.Contains(h, r) || strings.Contains(r, h) {
				n++
				break
			}
		}
	}
	return n
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}

func containsFold(list []string, s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, v := range list {
		if strings.EqualFold(strings.TrimSpace(v), s) {
			return true
		}
	}
	return false
}

func nonEmpty(list []string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func lowerAll(list []string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

