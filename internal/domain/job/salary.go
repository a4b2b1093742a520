package job

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	salaryNumber = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)
	salaryRange  = regexp.MustCompile(
		`(?i)(\d[\d,]*(?:\.\d+)?)\s*(?:-|–|to)\s*(?:₱|php|p)?\s*(\d[\d,]*(?:\.\d+)?)`)
)

// ParseSalary turns free-text salary ("₱15,000+", "500-700/day") into a
// representative amount: the midpoint of an explicit range, otherwise the first
// number. Other numbers in the text ("8 hours", "13th month") are ignored.
// Returns false when the text holds no positive amount.
func ParseSalary(text string) (int, bool) {
	if m := salaryRange.FindStringSubmatch(text); m != nil {
		lo, okLo := parseAmount(m[1])
		hi, okHi := parseAmount(m[2])
		if okLo && okHi {
			return int(math.Round((lo + hi) / 2)), true
		}
	}

	first := salaryNumber.FindString(text)
	if first == "" {
		return 0, false
	}
	v, ok := parseAmount(first)
	if !ok {
		return 0, false
	}
	return int(math.Round(v)), true
}

func parseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
