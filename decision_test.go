package fingov

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newDefaultEngine() *Engine {
	return NewEngine(DefaultConfig())
}

func TestDecide_EmptyInputs(t *testing.T) {
	e := newDefaultEngine()
	qa := QualityAssessment{Score: 100, HasDomainSignal: true}

	assert.Equal(t, DecisionEmpty, e.Decide(Request{Query: ""}, "content", qa, 4000))
	assert.Equal(t, DecisionEmpty, e.Decide(Request{Query: "  \n"}, "content", qa, 4000))
	assert.Equal(t, DecisionEmpty, e.Decide(Request{Query: "TSLA"}, "", qa, 4000))
	assert.Equal(t, DecisionEmpty, e.Decide(Request{Query: "TSLA"}, " \t ", qa, 4000))
}

func TestDecide_EmergencyFloor(t *testing.T) {
	e := newDefaultEngine()
	req := Request{Query: "TSLA"}

	// Below the emergency floor only domain-relevant content survives.
	withSignal := QualityAssessment{Score: 100, HasDomainSignal: true}
	assert.Equal(t, DecisionEmergency, e.Decide(req, "price: $1", withSignal, 50))

	noSignal := QualityAssessment{Score: 40}
	assert.Equal(t, DecisionSkip, e.Decide(req, "some page text", noSignal, 50))
}

func TestDecide_LowFloor(t *testing.T) {
	e := newDefaultEngine()
	req := Request{Query: "TSLA"}

	// Between the floors everything degrades to key metrics, regardless
	// of how good the content is.
	good := QualityAssessment{Score: 100, HasDomainSignal: true}
	assert.Equal(t, DecisionKeyMetrics, e.Decide(req, "price: $1", good, 200))

	errPage := QualityAssessment{Score: 10, IsErrorPage: true}
	assert.Equal(t, DecisionSkip, e.Decide(req, "500 Server Error", errPage, 200))
}

func TestDecide_ScoreBands(t *testing.T) {
	e := newDefaultEngine()
	content := "price: $100.00, market cap: $1B"

	tests := []struct {
		name   string
		req    Request
		qa     QualityAssessment
		want   Decision
	}{
		{"error page", Request{Query: "q"}, QualityAssessment{Score: 90, IsErrorPage: true}, DecisionSkip},
		{"junk", Request{Query: "q"}, QualityAssessment{Score: 30}, DecisionSkip},
		{"weak", Request{Query: "q"}, QualityAssessment{Score: 40}, DecisionEmergency},
		{"fair with region", Request{Query: "q", Region: "in"}, QualityAssessment{Score: 70}, DecisionMinimal},
		{"fair without region", Request{Query: "q"}, QualityAssessment{Score: 70}, DecisionKeyMetrics},
		{"decent", Request{Query: "q"}, QualityAssessment{Score: 85}, DecisionSummary},
		{"excellent", Request{Query: "q"}, QualityAssessment{Score: 100, HasDomainSignal: true}, DecisionFiltered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Decide(tt.req, content, tt.qa, 4000))
		})
	}
}

func TestDecide_OversizedContentSummarized(t *testing.T) {
	e := newDefaultEngine()
	req := Request{Query: "TSLA"}

	huge := strings.Repeat("price data ", 600)
	qa := QualityAssessment{Score: 100, HasDomainSignal: true}
	assert.Equal(t, DecisionSummary, e.Decide(req, huge, qa, 4000))

	// The junk band still wins over the size check.
	assert.Equal(t, DecisionSkip, e.Decide(req, huge, QualityAssessment{Score: 20}, 4000))
}

func TestDecision_Terminal(t *testing.T) {
	assert.True(t, DecisionEmpty.Terminal())
	assert.True(t, DecisionErrorEcho.Terminal())
	assert.True(t, DecisionSkip.Terminal())
	assert.False(t, DecisionEmergency.Terminal())
	assert.False(t, DecisionKeyMetrics.Terminal())
	assert.False(t, DecisionSummary.Terminal())
	assert.False(t, DecisionMinimal.Terminal())
	assert.False(t, DecisionFiltered.Terminal())
}
