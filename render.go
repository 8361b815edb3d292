package fingov

import (
	"fmt"
	"strings"
)

// emptyPrompt is the fixed zero-cost reply for requests with no query or
// no content to work from.
const emptyPrompt = "A query is required to fetch data."

const ellipsis = "..."

// Renderer turns a decision into the actual reply text, bounded by the
// unit budget computed for the call. Every strategy is a pure function of
// its inputs and the configured caps; none perform I/O.
type Renderer struct {
	cfg      Config
	abbrev   map[string]string
	keywords []string
}

// NewRenderer creates a renderer using the profile's abbreviation table
// and domain keywords.
func NewRenderer(profile *Profile, cfg Config) *Renderer {
	return &Renderer{
		cfg:      cfg,
		abbrev:   profile.Abbreviations,
		keywords: profile.DomainKeywords,
	}
}

// Render produces the reply for a decision within the unit budget. The
// terminal decisions are zero-cost: Empty and ErrorEcho emit fixed
// templates, Skip emits the empty string.
func (r *Renderer) Render(dec Decision, req Request, content string, unitBudget int64) string {
	switch dec {
	case DecisionEmpty:
		return emptyPrompt
	case DecisionErrorEcho:
		return fmt.Sprintf("ERR %s: data unavailable", r.abbreviate(req.Query))
	case DecisionSkip:
		return ""
	case DecisionEmergency:
		return r.renderEmergency(req, content, unitBudget)
	case DecisionKeyMetrics:
		return r.renderKeyMetrics(content, r.charLimit(unitBudget, r.cfg.MaxChars.KeyMetrics))
	case DecisionSummary:
		return r.renderSummary(content, r.charLimit(unitBudget, r.cfg.MaxChars.Summary))
	case DecisionMinimal:
		return r.renderMinimal(req, content, r.charLimit(unitBudget, r.cfg.MaxChars.Minimal))
	case DecisionFiltered:
		return r.renderFiltered(content, r.charLimit(unitBudget, r.cfg.MaxChars.Filtered))
	default:
		return ""
	}
}

// renderEmergency emits the smallest useful reply: an abbreviated entity
// name and the single highest-priority indicator, "ABBR:value".
func (r *Renderer) renderEmergency(req Request, content string, unitBudget int64) string {
	value := "N/A"
	if ind, ok := firstIndicator(content); ok {
		value = ind.Value
	}
	out := r.abbreviate(req.Query) + ":" + value
	return truncate(out, r.charLimit(unitBudget, r.cfg.MaxChars.Emergency))
}

// renderKeyMetrics joins up to three indicators in fixed priority order.
func (r *Renderer) renderKeyMetrics(content string, limit int) string {
	inds := extractIndicators(content, 3)
	if len(inds) == 0 {
		return ""
	}

	parts := make([]string, 0, len(inds))
	for _, ind := range inds {
		parts = append(parts, ind.Label+": "+ind.Value)
	}
	return truncate(strings.Join(parts, " | "), limit)
}

// renderSummary prefers the key-metrics line; when no indicators match it
// falls back to the first content sentence carrying a domain signal.
func (r *Renderer) renderSummary(content string, limit int) string {
	if km := r.renderKeyMetrics(content, limit); km != "" {
		return km
	}
	if sentence := r.firstSignalSentence(content); sentence != "" {
		return truncate(sentence, limit)
	}
	return ""
}

// renderMinimal is key metrics prefixed with the abbreviated region or
// category tag.
func (r *Renderer) renderMinimal(req Request, content string, limit int) string {
	tag := req.Region
	if tag == "" {
		tag = req.Category
	}
	tag = strings.ToUpper(tag)

	km := r.renderKeyMetrics(content, limit)
	if km == "" {
		return ""
	}
	if tag == "" {
		return km
	}
	return truncate(tag+" | "+km, limit)
}

// renderFiltered appends labelled indicators in priority order while the
// cumulative length stays under the budget, stopping as soon as the next
// segment would exceed it.
func (r *Renderer) renderFiltered(content string, limit int) string {
	inds := extractIndicators(content, len(indicatorPatterns))

	var b strings.Builder
	for _, ind := range inds {
		segment := ind.Label + ": " + ind.Value
		add := len(segment)
		if b.Len() > 0 {
			add += 3 // separator
		}
		if b.Len()+add > limit {
			break
		}
		if b.Len() > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(segment)
	}
	return b.String()
}

// HardCap is the safety net applied after rendering regardless of the
// decision: the reply may never exceed the character allowance derived
// from the remaining capacity at call time. If the assembled reply is
// oversized, only the first content block survives, truncated with an
// ellipsis marker.
func (r *Renderer) HardCap(text string, remaining int64) string {
	maxChars := r.maxCharsFor(remaining)
	if len(text) <= maxChars {
		return text
	}

	block := text
	if i := strings.Index(block, "\n\n"); i > 0 {
		block = block[:i]
	}
	return truncate(block, maxChars)
}

// maxCharsFor derives the absolute reply ceiling from the remaining
// capacity, shrinking toward the emergency minimum as capacity depletes.
func (r *Renderer) maxCharsFor(remaining int64) int {
	if remaining < 0 {
		remaining = 0
	}
	chars := int(float64(remaining) * r.cfg.CharsPerUnit)
	if chars > r.cfg.MaxResponseChars {
		chars = r.cfg.MaxResponseChars
	}
	if chars < r.cfg.EmergencyMinChars {
		chars = r.cfg.EmergencyMinChars
	}
	return chars
}

// charLimit converts a unit budget to characters and clamps it at the
// per-decision cap.
func (r *Renderer) charLimit(unitBudget int64, decisionMax int) int {
	if unitBudget < 0 {
		unitBudget = 0
	}
	chars := int(float64(unitBudget) * r.cfg.CharsPerUnit)
	if chars > decisionMax {
		chars = decisionMax
	}
	return chars
}

// abbreviate shortens an entity query: abbreviation-table hit first, else
// the leading characters of the first token, upper-cased.
func (r *Renderer) abbreviate(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	if abbr, ok := r.abbrev[q]; ok {
		return abbr
	}

	token := q
	if i := strings.IndexAny(token, " \t"); i > 0 {
		token = token[:i]
	}
	if abbr, ok := r.abbrev[token]; ok {
		return abbr
	}

	runes := []rune(strings.ToUpper(token))
	if len(runes) > 6 {
		runes = runes[:6]
	}
	return string(runes)
}

func (r *Renderer) firstSignalSentence(content string) string {
	for _, line := range strings.FieldsFunc(content, func(c rune) bool {
		return c == '\n' || c == '.'
	}) {
		lower := strings.ToLower(line)
		for _, sym := range currencySymbols {
			if strings.Contains(lower, sym) {
				return strings.TrimSpace(line)
			}
		}
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return strings.TrimSpace(line)
			}
		}
	}
	return ""
}

// truncate cuts text to max characters, preferring a whitespace boundary
// and appending a single ellipsis marker when anything was removed.
func truncate(text string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	if max <= len(ellipsis) {
		return string(runes[:max])
	}

	cut := max - len(ellipsis)
	kept := string(runes[:cut])
	if i := strings.LastIndexAny(kept, " \t"); i > 0 {
		kept = kept[:i]
	}
	return kept + ellipsis
}
