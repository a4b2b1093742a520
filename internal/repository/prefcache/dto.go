package prefcache

import "github.com/kindph/matching/internal/domain/seeker"

// prefsDTO is the cached JSON form of seeker.Preferences.
type prefsDTO struct {
	SeekerID           string   `json:"seeker_id"`
	DesiredJobTitles   []string `json:"desired_job_titles"`
	DesiredLocations   []string `json:"desired_locations"`
	DesiredJobTypes    []string `json:"desired_job_types"`
	SalaryMin          float64  `json:"salary_min"`
	SalaryMax          float64  `json:"salary_max"`
	SalaryType         string   `json:"salary_type"`
	PreferredLanguages []string `json:"preferred_languages"`
	PreferredRadiusKm  float64  `json:"preferred_radius_km"`
}

func prefsToDTO(p *seeker.Preferences) prefsDTO {
	return prefsDTO{
		SeekerID:           p.SeekerID,
		DesiredJobTitles:   p.DesiredJobTitles,
		DesiredLocations:   p.DesiredLocations,
		DesiredJobTypes:    p.DesiredJobTypes,
		SalaryMin:          p.Salary.Min,
		SalaryMax:          p.Salary.Max,
		SalaryType:         string(p.Salary.Type),
		PreferredLanguages: p.PreferredLanguages,
		PreferredRadiusKm:  p.PreferredRadiusKm,
	}
}

func (d *prefsDTO) toDomain() seeker.Preferences {
	st, err := seeker.ParseSalaryType(d.SalaryType)
	if err != nil {
		st = seeker.SalaryMonthly
	}
	return seeker.Preferences{
		SeekerID:           d.SeekerID,
		DesiredJobTitles:   d.DesiredJobTitles,
		DesiredLocations:   d.DesiredLocations,
		DesiredJobTypes:    d.DesiredJobTypes,
		Salary:             seeker.SalaryRange{Min: d.SalaryMin, Max: d.SalaryMax, Type: st},
		PreferredLanguages: d.PreferredLanguages,
		PreferredRadiusKm:  d.PreferredRadiusKm,
	}
}

// profileDTO keeps coordinates in the stored "(lng,lat)" text form.
type profileDTO struct {
	SeekerID    string   `json:"seeker_id"`
	Skills      []string `json:"skills"`
	Coordinates string   `json:"coordinates,omitempty"`
}

func profileToDTO(p *seeker.Profile) profileDTO {
	d := profileDTO{SeekerID: p.SeekerID, Skills: p.Skills}
	if p.Coordinates != nil {
		d.Coordinates = p.Coordinates.String()
	}
	return d
}

func (d *profileDTO) toDomain() seeker.Profile {
	return seeker.NewProfile(d.SeekerID, d.Skills, d.Coordinates)
}

