package fingov

import "regexp"

// Indicator is one labelled numeric metric pulled out of raw content.
type Indicator struct {
	Label string
	Value string
}

// Extraction patterns in fixed priority order: primary value first, then
// the secondary aggregate, then ratio and activity metrics. Each captures
// the value with its currency symbol and magnitude suffix when present.
var indicatorPatterns = []struct {
	label string
	re    *regexp.Regexp
}{
	{"price", regexp.MustCompile(`(?i)(?:price|current|last)[:\s]*([₹$€£]?\s?[0-9][0-9,]*\.?[0-9]*)`)},
	{"market cap", regexp.MustCompile(`(?i)market\s*cap[:\s]*([₹$€£]?\s?[0-9][0-9,]*\.?[0-9]*\s?(?:cr|crore|trillion|billion|million|lakh|t|b|m)?)`)},
	{"p/e", regexp.MustCompile(`(?i)p[/:]?e\s*(?:ratio)?[:\s]*([0-9][0-9,]*\.?[0-9]*)`)},
	{"volume", regexp.MustCompile(`(?i)volume[:\s]*([0-9][0-9,]*\.?[0-9]*\s?(?:cr|crore|billion|million|lakh|k|b|m)?)`)},
}

// extractIndicators returns up to max indicators found in content, in
// pattern priority order.
func extractIndicators(content string, max int) []Indicator {
	var out []Indicator
	for _, p := range indicatorPatterns {
		if len(out) >= max {
			break
		}
		m := p.re.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		out = append(out, Indicator{Label: p.label, Value: trimValue(m[1])})
	}
	return out
}

// firstIndicator returns the highest-priority indicator, if any.
func firstIndicator(content string) (Indicator, bool) {
	ind := extractIndicators(content, 1)
	if len(ind) == 0 {
		return Indicator{}, false
	}
	return ind[0], true
}

func trimValue(v string) string {
	// Collapse the optional space between symbol and number.
	out := make([]byte, 0, len(v))
	for i := 0; i < len(v); i++ {
		if v[i] == ' ' {
			continue
		}
		out = append(out, v[i])
	}
	return string(out)
}
