package fingov

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildChain_DirectFirstForCurrentValueQueries(t *testing.T) {
	profile := BuiltinProfiles()["stock"]
	req := Request{Query: "XYZ current price", Region: "us"}

	chain := BuildChain(req, profile, PriorityCritical, nil)
	assert.Len(t, chain, 4)

	assert.Equal(t, SourceDirect, chain[0].Kind)
	assert.Equal(t, SourceDirect, chain[1].Kind)
	assert.Equal(t, SourceSearchQuery, chain[2].Kind)
	assert.Equal(t, SourceSearchQuery, chain[3].Kind)

	assert.Contains(t, chain[0].Locator, "finance.yahoo.com/quote/XYZ")
	assert.Contains(t, chain[2].Locator, "google.com/search")
}

func TestBuildChain_SearchFirstForOpenQueries(t *testing.T) {
	profile := BuiltinProfiles()["stock"]
	req := Request{Query: "XYZ fundamentals"}

	chain := BuildChain(req, profile, PriorityCritical, nil)
	assert.Equal(t, SourceSearchQuery, chain[0].Kind)
	assert.Equal(t, SourceSearchQuery, chain[1].Kind)
	assert.Equal(t, SourceDirect, chain[2].Kind)
}

func TestBuildChain_PriorityCaps(t *testing.T) {
	profile := BuiltinProfiles()["stock"]
	req := Request{Query: "XYZ current price", Region: "us"}

	assert.Len(t, BuildChain(req, profile, PriorityCritical, nil), 4)
	assert.Len(t, BuildChain(req, profile, PriorityHigh, nil), 3)
	assert.Len(t, BuildChain(req, profile, PriorityMedium, nil), 2)
	assert.Len(t, BuildChain(req, profile, PriorityLow, nil), 1)
}

func TestBuildChain_RegionFiltersTemplates(t *testing.T) {
	profile := BuiltinProfiles()["stock"]

	in := profile.Directs("RELIANCE price", "in")
	assert.Len(t, in, 3) // two NSE/BSE templates plus the wildcard
	assert.Contains(t, in[0].Locator, "RELIANCE.NS")

	all := profile.Directs("RELIANCE price", "")
	assert.Len(t, all, 4)
}

func TestDirects_SymbolExtraction(t *testing.T) {
	profile := BuiltinProfiles()["stock"]

	// Filler tokens are skipped; the entity token becomes the symbol.
	cands := profile.Directs("current price of TSLA", "us")
	assert.NotEmpty(t, cands)
	assert.Contains(t, cands[0].Locator, "/quote/TSLA")

	assert.Empty(t, profile.Directs("what is the price today", "us"))
}

func TestSearches_PriorityQualifiers(t *testing.T) {
	profile := BuiltinProfiles()["stock"]

	critical := profile.Searches("XYZ", PriorityCritical)
	assert.Len(t, critical, 2)
	assert.Contains(t, critical[0].Locator, "live+price+today")
	assert.Contains(t, critical[0].Locator, "site%3Afinance.yahoo.com")

	low := profile.Searches("XYZ", PriorityLow)
	assert.NotContains(t, low[0].Locator, "today")
}

func TestPartitionByKind_Stable(t *testing.T) {
	cands := []SourceCandidate{
		{Kind: SourceSearchQuery, Label: "s1"},
		{Kind: SourceDirect, Label: "d1"},
		{Kind: SourceSearchQuery, Label: "s2"},
		{Kind: SourceDirect, Label: "d2"},
	}

	ordered := partitionByKind(cands, SourceDirect)
	labels := make([]string, 0, len(ordered))
	for _, c := range ordered {
		labels = append(labels, c.Label)
	}
	assert.Equal(t, "d1 d2 s1 s2", strings.Join(labels, " "))
}
