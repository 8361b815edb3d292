package fingov

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const richContent = "price: $123.45, market cap: $10B, p/e ratio: 25.5, volume: 3M"

func newStockRenderer() *Renderer {
	return NewRenderer(BuiltinProfiles()["stock"], DefaultConfig())
}

func TestRender_TerminalDecisions(t *testing.T) {
	r := newStockRenderer()

	assert.NotEmpty(t, r.Render(DecisionEmpty, Request{}, "", 0))
	assert.Equal(t, "ERR AAPL: data unavailable",
		r.Render(DecisionErrorEcho, Request{Query: "apple"}, "", 0))
	assert.Equal(t, "", r.Render(DecisionSkip, Request{Query: "apple"}, richContent, 100))
}

func TestRender_Emergency(t *testing.T) {
	r := newStockRenderer()

	out := r.Render(DecisionEmergency, Request{Query: "apple"}, richContent, 100)
	assert.Equal(t, "AAPL:$123.45", out)

	out = r.Render(DecisionEmergency, Request{Query: "apple"}, "nothing numeric here", 100)
	assert.Equal(t, "AAPL:N/A", out)
}

func TestRender_KeyMetrics(t *testing.T) {
	r := newStockRenderer()

	out := r.Render(DecisionKeyMetrics, Request{Query: "TSLA"}, richContent, 100)
	assert.Equal(t, "price: $123.45 | market cap: $10B | p/e: 25.5", out)

	assert.Equal(t, "", r.Render(DecisionKeyMetrics, Request{Query: "TSLA"}, "no metrics at all", 100))
}

func TestRender_MinimalTagsRegion(t *testing.T) {
	r := newStockRenderer()

	out := r.Render(DecisionMinimal, Request{Query: "TSLA", Region: "in"}, richContent, 100)
	assert.True(t, strings.HasPrefix(out, "IN | price: $123.45"), out)

	out = r.Render(DecisionMinimal, Request{Query: "TSLA", Category: "stock"}, richContent, 100)
	assert.True(t, strings.HasPrefix(out, "STOCK | "), out)
}

func TestRender_SummaryFallsBackToSignalSentence(t *testing.T) {
	r := newStockRenderer()

	content := "Quarterly update.\nThe company reported strong revenue growth this quarter.\nMore filler."
	out := r.Render(DecisionSummary, Request{Query: "TSLA"}, content, 100)
	assert.Equal(t, "The company reported strong revenue growth this quarter", out)
}

func TestRender_FilteredStopsAtBudget(t *testing.T) {
	r := newStockRenderer()

	// 10 units is 35 chars: price and market cap fit, p/e does not.
	out := r.Render(DecisionFiltered, Request{Query: "TSLA"}, richContent, 10)
	assert.Equal(t, "price: $123.45 | market cap: $10B", out)

	out = r.Render(DecisionFiltered, Request{Query: "TSLA"}, richContent, 400)
	assert.Equal(t, "price: $123.45 | market cap: $10B | p/e: 25.5 | volume: 3M", out)
}

func TestRender_BudgetBound(t *testing.T) {
	r := newStockRenderer()
	a := newStockAssessor()
	req := Request{Query: "apple", Region: "in"}

	decisions := []Decision{
		DecisionEmergency, DecisionKeyMetrics, DecisionSummary,
		DecisionMinimal, DecisionFiltered,
	}
	for _, dec := range decisions {
		for _, budget := range []int64{0, 1, 5, 10, 100, 400} {
			out := r.Render(dec, req, richContent, budget)
			assert.LessOrEqual(t, a.EstimateUnits(out), budget,
				"decision %s budget %d produced %q", dec, budget, out)
		}
	}
}

func TestHardCap_PassesShortText(t *testing.T) {
	r := newStockRenderer()

	assert.Equal(t, "short reply", r.HardCap("short reply", 4000))
	assert.Equal(t, "short reply", r.HardCap("short reply", 0))
}

func TestHardCap_TruncatesOversizedText(t *testing.T) {
	r := newStockRenderer()

	long := strings.Repeat("word ", 500)
	out := r.HardCap(long, 20)
	assert.LessOrEqual(t, len(out), 70)
	assert.True(t, strings.HasSuffix(out, "..."))

	// At full capacity the absolute ceiling still applies.
	out = r.HardCap(long, 100_000)
	assert.LessOrEqual(t, len(out), DefaultMaxResponseChars)
}

func TestHardCap_KeepsFirstBlock(t *testing.T) {
	r := newStockRenderer()

	first := strings.Repeat("a", 30)
	text := first + "\n\n" + strings.Repeat("b", 40)
	assert.Equal(t, first, r.HardCap(text, 0))
}

func TestAbbreviate(t *testing.T) {
	r := newStockRenderer()

	assert.Equal(t, "AAPL", r.abbreviate("apple"))
	assert.Equal(t, "TATAMOT", r.abbreviate("tata motors"))
	assert.Equal(t, "XYZ", r.abbreviate("xyz corp"))
	assert.Equal(t, "UNKNOW", r.abbreviate("unknowncompany"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello world", truncate("hello world", 20))
	assert.Equal(t, "hello...", truncate("hello world example", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "", truncate("abcdef", 0))
}
