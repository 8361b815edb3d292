package fingov

import (
	"math"
	"strings"
)

// Markers that identify upstream failure pages. Matched case-insensitively
// as substrings.
var errorMarkers = []string{
	"404", "500", "error", "not found", "forbidden", "access denied",
}

// Navigation vocabulary used for the boilerplate ratio.
var navWords = []string{
	"menu", "sign in", "login", "register", "navigation",
}

// Currency symbols always count toward the domain signal, on top of the
// profile's keyword set.
var currencySymbols = []string{"$", "₹", "€", "£"}

// domainSignalThreshold is the minimum number of keyword/symbol
// occurrences before content counts as domain-relevant. Occurrences are
// counted rather than tested for presence so a single stray character
// cannot flip the flag.
const domainSignalThreshold = 3

// Assessor scores raw content samples. Pure and idempotent; safe for
// concurrent use.
type Assessor struct {
	keywords     []string
	efficientMin int
	efficientMax int
	charsPerUnit float64
}

// NewAssessor creates an assessor using the profile's domain keywords and
// the governor's length/unit configuration.
func NewAssessor(profile *Profile, cfg Config) *Assessor {
	return &Assessor{
		keywords:     profile.DomainKeywords,
		efficientMin: cfg.EfficientMinChars,
		efficientMax: cfg.EfficientMaxChars,
		charsPerUnit: cfg.CharsPerUnit,
	}
}

// Assess scores a content sample. Empty content yields the zero
// assessment: score 0, no flags.
func (a *Assessor) Assess(content string) QualityAssessment {
	if strings.TrimSpace(content) == "" {
		return QualityAssessment{}
	}

	lower := strings.ToLower(content)

	qa := QualityAssessment{
		HasDomainSignal:    a.signalCount(lower) >= domainSignalThreshold,
		IsErrorPage:        isErrorPage(lower),
		IsBoilerplateHeavy: isBoilerplateHeavy(lower),
	}

	// Additive scoring, capped at 100. The base grant keeps non-empty
	// content distinguishable from no content at all.
	score := 10
	if qa.HasDomainSignal {
		score += 60
	}
	if n := len(content); n >= a.efficientMin && n <= a.efficientMax {
		score += 20
	}
	if !qa.IsErrorPage {
		score += 10
	}
	if score > 100 {
		score = 100
	}
	qa.Score = score
	return qa
}

// EstimateUnits converts text length to quota units: ceil(len/CharsPerUnit).
// Used both for budgeting before render and for the post-hoc charge.
func (a *Assessor) EstimateUnits(text string) int64 {
	if text == "" {
		return 0
	}
	return int64(math.Ceil(float64(len(text)) / a.charsPerUnit))
}

func (a *Assessor) signalCount(lower string) int {
	count := 0
	for _, sym := range currencySymbols {
		count += strings.Count(lower, sym)
	}
	for _, kw := range a.keywords {
		count += strings.Count(lower, kw)
	}
	return count
}

func isErrorPage(lower string) bool {
	for _, m := range errorMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

func isBoilerplateHeavy(lower string) bool {
	total := len(strings.Fields(lower))
	if total == 0 {
		return false
	}

	nav := 0
	for _, w := range navWords {
		nav += strings.Count(lower, w)
	}
	return float64(nav)/float64(total) > 0.25
}
