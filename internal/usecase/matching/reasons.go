package matching

import (
	"github.com/kindph/matching/internal/domain/job"
	"github.com/kindph/matching/internal/domain/match"
)

// Reason texts, emitted in factor order: title, type, location, salary,
// languages, skills, priority.
const (
	ReasonNoMatch        = "no title or skill match"
	ReasonTitle          = "Job title matches your preferences"
	ReasonJobType        = "Work arrangement matches your preferences"
	ReasonLocationExact  = "Located in your preferred location"
	ReasonLocationClose  = "Close to your preferred location"
	ReasonLocationRegion = "In your preferred region"
	ReasonLocationRadius = "Within your preferred work radius"
	ReasonSalaryMeets    = "Salary meets your expectations"
	ReasonSalaryAbove    = "Salary is above your expected range"
	ReasonLanguages      = "You speak the preferred languages"
	ReasonSkillsStrong   = "Strong match for your skills"
	ReasonSkillsGood     = "Good match for your skills"
	ReasonSkillsSome     = "Some of your skills match"
	ReasonSkillsPartial  = "Partial skill match"
	ReasonFeatured       = "Featured job"
	ReasonHighPriority   = "Recently posted"
)

func buildReasons(b match.Breakdown, p *job.Posting, boosted bool) []string {
	reasons := make([]string, 0, 7)

	if b.JobTitle == scoreFull {
		reasons = append(reasons, ReasonTitle)
	}
	if b.JobType == scoreFull {
		reasons = append(reasons, ReasonJobType)
	}

	switch {
	case b.Location >= locationExact:
		reasons = append(reasons, ReasonLocationExact)
	case b.Location >= locationFuzzy:
		reasons = append(reasons, ReasonLocationClose)
	case b.Location >= locationProvince:
		reasons = append(reasons, ReasonLocationRegion)
	case b.Location >= locationRadiusFloor:
		reasons = append(reasons, ReasonLocationRadius)
	}

	switch {
	case b.Salary >= salaryNearRange:
		reasons = append(reasons, ReasonSalaryMeets)
	case b.Salary == salaryAbove:
		reasons = append(reasons, ReasonSalaryAbove)
	}

	if len(nonEmpty(p.PreferredLanguages)) > 0 && b.Languages >= 80 {
		reasons = append(reasons, ReasonLanguages)
	}

	if len(nonEmpty(p.RequiredSkills)) > 0 {
		switch {
		case b.Skills >= 80:
			reasons = append(reasons, ReasonSkillsStrong)
		case b.Skills >= 60:
			reasons = append(reasons, ReasonSkillsGood)
		case b.Skills >= 40:
			reasons = append(reasons, ReasonSkillsSome)
		case b.Skills > 0:
			reasons = append(reasons, ReasonSkillsPartial)
		}
	}

	switch {
	case boosted:
		reasons = append(reasons, ReasonFeatured)
	case b.Priority >= 80:
		reasons = append(reasons, ReasonHighPriority)
	}

	return reasons
}
