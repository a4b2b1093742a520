package matching

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/kindph/matching/internal/domain/geo"
	"github.com/kindph/matching/internal/domain/job"
	"github.com/kindph/matching/internal/domain/match"
	"github.com/kindph/matching/internal/domain/seeker"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func ptrTime(t time.Time) *time.Time { return &t }

func ptrPoint(lng, lat float64) *geo.Point { return &geo.Point{Lat: lat, Lng: lng} }

func yayaPrefs() seeker.Preferences {
	return seeker.Preferences{
		SeekerID:          "seeker-1",
		DesiredJobTitles:  []string{"Yaya"},
		DesiredLocations:  []string{"Quezon City"},
		DesiredJobTypes:   []string{"full-time"},
		Salary:            seeker.SalaryRange{Min: 400, Max: 600, Type: seeker.SalaryDaily},
		PreferredRadiusKm: 5,
	}
}

func basePosting() job.Posting {
	return job.Posting{
		ID:        "job-1",
		Title:     "Yaya",
		Type:      "full-time",
		Location:  "Marikina",
		Salary:    "500",
		CreatedAt: testNow.Add(-2 * time.Hour),
		Status:    job.StatusActive,
	}
}

func TestScore_YayaWithinRadiusBoosted(t *testing.T) {
	prefs := yayaPrefs()
	profile := seeker.Profile{SeekerID: "seeker-1", Coordinates: ptrPoint(121.0, 14.6)}

	p := basePosting()
	// ~2 km due north
	p.Coordinates = ptrPoint(121.0, 14.6+2/111.195)
	p.IsBoosted = true
	p.BoostExpiresAt = ptrTime(testNow.Add(48 * time.Hour))

	r := Score(&prefs, &profile, &p, testNow)
	b := r.Breakdown()

	if b.JobTitle != 100 {
		t.Errorf("JobTitle = %d, want 100", b.JobTitle)
	}
	if b.Location < 60 || b.Location >= 100 {
		t.Errorf("Location = %d, want radius score in [60,100)", b.Location)
	}
	if b.Salary != 100 {
		t.Errorf("Salary = %d, want 100", b.Salary)
	}
	base := composite(b)
	if r.Score() <= base {
		t.Errorf("boosted score %d should exceed base %d", r.Score(), base)
	}
	if r.Score() <= 100 {
		t.Errorf("boosted score %d should exceed 100 (scores are not clamped)", r.Score())
	}
	if want := int(math.Round(float64(base) * 1.5)); r.Score() != want {
		t.Errorf("Score = %d, want %d", r.Score(), want)
	}
	if !slices.Contains(r.Reasons(), ReasonFeatured) {
		t.Errorf("reasons %v missing %q", r.Reasons(), ReasonFeatured)
	}
}

func TestScore_GateFails(t *testing.T) {
	prefs := seeker.Preferences{SeekerID: "seeker-1"}
	profile := seeker.Profile{SeekerID: "seeker-1", Skills: []string{}}
	p := basePosting()
	p.Title = "Cook"
	p.RequiredSkills = []string{"cooking"}

	r := Score(&prefs, &profile, &p, testNow)
	if r.Score() != 0 {
		t.Fatalf("Score = %d, want 0", r.Score())
	}
	if r.Breakdown() != (match.Breakdown{}) {
		t.Errorf("Breakdown = %+v, want zero", r.Breakdown())
	}
	if !slices.Equal(r.Reasons(), []string{ReasonNoMatch}) {
		t.Errorf("Reasons = %v", r.Reasons())
	}
	if got := Rank([]match.Result{r}, 10); len(got) != 0 {
		t.Errorf("gate-failed result should not be ranked, got %d", len(got))
	}
}

func TestScore_GatePassesOnSkillOverlap(t *testing.T) {
	prefs := seeker.Preferences{SeekerID: "seeker-1", DesiredJobTitles: []string{"Driver"}}
	profile := seeker.Profile{Skills: []string{"Cooking"}}
	p := basePosting()
	p.Title = "Cook"
	p.RequiredSkills = []string{"cook", "laundry"}

	r := Score(&prefs, &profile, &p, testNow)
	if r.Score() == 0 {
		t.Fatal("expected non-zero score on skill overlap")
	}
	if r.Breakdown().JobTitle != 0 {
		t.Errorf("JobTitle = %d, want 0", r.Breakdown().JobTitle)
	}
	if r.Breakdown().Skills != 50 {
		t.Errorf("Skills = %d, want 50", r.Breakdown().Skills)
	}
}

func TestScore_TitleMatchIsCaseInsensitive(t *testing.T) {
	prefs := yayaPrefs()
	profile := seeker.Profile{}
	p := basePosting()
	p.Title = "  yaya "

	r := Score(&prefs, &profile, &p, testNow)
	if r.Breakdown().JobTitle != 100 {
		t.Errorf("JobTitle = %d, want 100", r.Breakdown().JobTitle)
	}
}

func TestScore_Deterministic(t *testing.T) {
	prefs := yayaPrefs()
	profile := seeker.Profile{Skills: []string{"childcare"}, Coordinates: ptrPoint(121.0, 14.6)}
	p := basePosting()
	p.Coordinates = ptrPoint(121.02, 14.61)
	p.RequiredSkills = []string{"Childcare", "first aid"}
	p.PreferredLanguages = []string{"Tagalog"}

	first := Score(&prefs, &profile, &p, testNow)
	for range 10 {
		again := Score(&prefs, &profile, &p, testNow)
		if again.Score() != first.Score() || again.Breakdown() != first.Breakdown() {
			t.Fatalf("non-deterministic: %+v vs %+v", again.Breakdown(), first.Breakdown())
		}
		if !slices.Equal(again.Reasons(), first.Reasons()) {
			t.Fatalf("reasons differ: %v vs %v", again.Reasons(), first.Reasons())
		}
	}
}

func TestScore_ExpiredBoostIgnored(t *testing.T) {
	prefs := yayaPrefs()
	profile := seeker.Profile{}
	p := basePosting()
	p.IsBoosted = true
	p.BoostExpiresAt = ptrTime(testNow.Add(-time.Minute))

	r := Score(&prefs, &profile, &p, testNow)
	if r.Score() != composite(r.Breakdown()) {
		t.Errorf("expired boost applied: score %d, base %d", r.Score(), composite(r.Breakdown()))
	}
	if slices.Contains(r.Reasons(), ReasonFeatured) {
		t.Error("expired boost should not be featured")
	}
}

func TestScoreSalary(t *testing.T) {
	r := seeker.SalaryRange{Min: 400, Max: 600, Type: seeker.SalaryDaily}

	tests := []struct {
		name string
		rng  seeker.SalaryRange
		text string
		want int
	}{
		{"in range", r, "500", 100},
		{"range text averaged", r, "₱450 - ₱550", 100},
		{"lower tolerance", r, "320", 80},
		{"upper tolerance", r, "700", 80},
		{"above band", r, "701", 70},
		{"below band", r, "299", 40},
		{"unparseable", r, "Negotiable", 50},
		{"no range", seeker.SalaryRange{}, "500", 50},
		{"open max", seeker.SalaryRange{Min: 12000}, "₱15,000+", 100},
		{"tolerance scales with min", seeker.SalaryRange{Min: 12000, Max: 14000}, "16000", 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreSalary(tt.rng, tt.text); got != tt.want {
				t.Errorf("scoreSalary(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestScore_PesoSalaryTextParses(t *testing.T) {
	prefs := yayaPrefs()
	prefs.Salary = seeker.SalaryRange{Min: 14000, Max: 16000, Type: seeker.SalaryMonthly}
	profile := seeker.Profile{}
	p := basePosting()
	p.Salary = "₱15,000+"

	r := Score(&prefs, &profile, &p, testNow)
	if r.Breakdown().Salary != 100 {
		t.Errorf("Salary = %d, want 100", r.Breakdown().Salary)
	}
}

func TestScoreLanguages(t *testing.T) {
	tests := []struct {
		name   string
		seeker []string
		job    []string
		want   int
	}{
		{"none required", []string{"English"}, nil, 100},
		{"seeker none", nil, []string{"English"}, 50},
		{"all", []string{"english", "Tagalog"}, []string{"English", "tagalog"}, 100},
		{"half", []string{"English"}, []string{"English", "Cebuano"}, 50},
		{"floor", []string{"Ilocano"}, []string{"English", "Cebuano"}, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreLanguages(tt.seeker, tt.job); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreSkills(t *testing.T) {
	tests := []struct {
		name     string
		seeker   []string
		required []string
		want     int
	}{
		{"none required", []string{"cooking"}, nil, 50},
		{"seeker none", nil, []string{"cooking"}, 0},
		{"substring either way", []string{"cook", "house cleaning"}, []string{"Cooking", "cleaning", "driving"}, 67},
		{"all", []string{"laundry"}, []string{"Laundry"}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreSkills(tt.seeker, tt.required); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScorePriority(t *testing.T) {
	tests := []struct {
		name string
		edit func(p *job.Posting)
		want int
	}{
		{"fresh", func(p *job.Posting) { p.Salary = "" }, 70},
		{"two days", func(p *job.Posting) { p.Salary = ""; p.CreatedAt = testNow.Add(-48 * time.Hour) }, 65},
		{"five days", func(p *job.Posting) { p.Salary = ""; p.CreatedAt = testNow.Add(-5 * 24 * time.Hour) }, 60},
		{"ten days", func(p *job.Posting) { p.Salary = ""; p.CreatedAt = testNow.Add(-10 * 24 * time.Hour) }, 55},
		{"old", func(p *job.Posting) { p.Salary = ""; p.CreatedAt = testNow.Add(-30 * 24 * time.Hour) }, 50},
		{"mid salary", func(p *job.Posting) { p.Salary = "800"; p.CreatedAt = testNow.Add(-30 * 24 * time.Hour) }, 55},
		{"high salary", func(p *job.Posting) { p.Salary = "₱15,000"; p.CreatedAt = testNow.Add(-30 * 24 * time.Hour) }, 60},
		{"expires soon", func(p *job.Posting) {
			p.Salary = ""
			p.CreatedAt = testNow.Add(-30 * 24 * time.Hour)
			p.ExpiresAt = ptrTime(testNow.Add(24 * time.Hour))
		}, 65},
		{"expires this week", func(p *job.Posting) {
			p.Salary = ""
			p.CreatedAt = testNow.Add(-30 * 24 * time.Hour)
			p.ExpiresAt = ptrTime(testNow.Add(5 * 24 * time.Hour))
		}, 60},
		{"already expired", func(p *job.Posting) {
			p.Salary = ""
			p.CreatedAt = testNow.Add(-30 * 24 * time.Hour)
			p.ExpiresAt = ptrTime(testNow.Add(-time.Hour))
		}, 50},
		{"capped", func(p *job.Posting) {
			p.Salary = "₱20,000"
			p.IsBoosted = true
			p.ExpiresAt = ptrTime(testNow.Add(time.Hour))
		}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := basePosting()
			tt.edit(&p)
			if got := scorePriority(&p, testNow); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBuildReasons_Order(t *testing.T) {
	p := basePosting()
	p.RequiredSkills = []string{"childcare"}
	p.PreferredLanguages = []string{"Tagalog"}
	b := match.Breakdown{
		JobTitle: 100, JobType: 100, Location: 100, Salary: 100,
		Languages: 100, Skills: 100, Priority: 90,
	}

	got := buildReasons(b, &p, false)
	want := []string{
		ReasonTitle, ReasonJobType, ReasonLocationExact, ReasonSalaryMeets,
		ReasonLanguages, ReasonSkillsStrong, ReasonHighPriority,
	}
	if !slices.Equal(got, want) {
		t.Errorf("reasons = %v, want %v", got, want)
	}
}

func TestBuildReasons_Tiers(t *testing.T) {
	p := basePosting()
	p.RequiredSkills = []string{"a"}

	tests := []struct {
		name string
		b    match.Breakdown
		want string
	}{
		{"skills good", match.Breakdown{Skills: 60}, ReasonSkillsGood},
		{"skills some", match.Breakdown{Skills: 40}, ReasonSkillsSome},
		{"skills partial", match.Breakdown{Skills: 10}, ReasonSkillsPartial},
		{"location close", match.Breakdown{Location: 90}, ReasonLocationClose},
		{"location region", match.Breakdown{Location: 85}, ReasonLocationRegion},
		{"location province", match.Breakdown{Location: 80}, ReasonLocationRegion},
		{"location radius", match.Breakdown{Location: 72}, ReasonLocationRadius},
		{"salary near", match.Breakdown{Salary: 80}, ReasonSalaryMeets},
		{"salary above", match.Breakdown{Salary: 70}, ReasonSalaryAbove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildReasons(tt.b, &p, false)
			if !slices.Contains(got, tt.want) {
				t.Errorf("reasons %v missing %q", got, tt.want)
			}
		})
	}
}

func TestBuildReasons_NoSkillReasonWithoutRequirements(t *testing.T) {
	p := basePosting()
	got := buildReasons(match.Breakdown{Skills: 50, Location: 50, Salary: 50}, &p, false)
	if len(got) != 0 {
		t.Errorf("expected no reasons, got %v", got)
	}
}
