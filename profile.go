package fingov

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/invopop/jsonschema"
)

// Profile parameterizes the governor for one content category. The same
// pipeline serves every category; only the vocabulary, the abbreviation
// table and the source lists differ.
type Profile struct {
	// Category is the profile key, e.g. "stock".
	Category string

	// DomainKeywords feed the quality assessor's domain-signal count and
	// the classifier's High tier.
	DomainKeywords []string

	// Abbreviations maps lower-cased entity names to short forms used by
	// the Emergency renderer.
	Abbreviations map[string]string

	// QuoteTemplates are known-good direct locators, keyed by region.
	// Each template receives the upper-cased symbol via fmt.Sprintf.
	QuoteTemplates []QuoteTemplate

	// SearchSite restricts constructed search queries to a site known to
	// carry data for this category. Empty means an open search.
	SearchSite string

	// SearchTerms are appended to every constructed search query.
	SearchTerms string
}

// QuoteTemplate is a direct source locator pattern for one region.
type QuoteTemplate struct {
	Region string // empty matches any region
	Format string // fmt pattern with one %s for the symbol
	Label  string
}

// queryFiller are tokens that never name an entity, so the symbol scan
// skips over them.
var queryFiller = map[string]bool{
	"price": true, "quote": true, "rate": true, "value": true,
	"now": true, "live": true, "current": true, "today": true,
	"latest": true, "stock": true, "share": true, "shares": true,
	"of": true, "the": true, "for": true, "what": true, "is": true,
	"nav": true, "yield": true, "futures": true, "fund": true,
}

// Directs builds the Direct candidates for a query in a region. The
// symbol is the first query token that looks like one; queries without a
// symbol-like token produce no direct candidates.
func (p *Profile) Directs(query, region string) []SourceCandidate {
	symbol := ""
	for _, tok := range strings.Fields(query) {
		low := strings.ToLower(tok)
		if queryFiller[low] || !looksLikeSymbol(low) {
			continue
		}
		symbol = strings.ToUpper(tok)
		break
	}
	if symbol == "" {
		return nil
	}

	var out []SourceCandidate
	for _, t := range p.QuoteTemplates {
		if t.Region != "" && region != "" && t.Region != region {
			continue
		}
		out = append(out, SourceCandidate{
			Kind:    SourceDirect,
			Locator: fmt.Sprintf(t.Format, symbol),
			Label:   fmt.Sprintf("%s (%s)", t.Label, symbol),
		})
	}
	return out
}

// Searches builds the SearchQuery candidates for a query, with more
// urgency and recency qualifiers for higher priorities.
func (p *Profile) Searches(query string, priority Priority) []SourceCandidate {
	qualifier := ""
	switch priority {
	case PriorityCritical:
		qualifier = " live price today"
	case PriorityHigh:
		qualifier = " price today"
	case PriorityMedium:
		qualifier = " price"
	}

	terms := query + " " + p.SearchTerms + qualifier

	var out []SourceCandidate
	if p.SearchSite != "" {
		out = append(out, SourceCandidate{
			Kind:    SourceSearchQuery,
			Locator: searchURL(terms + " site:" + p.SearchSite),
			Label:   "search (" + p.SearchSite + ")",
		})
	}
	out = append(out, SourceCandidate{
		Kind:    SourceSearchQuery,
		Locator: searchURL(terms),
		Label:   "search (open)",
	})
	return out
}

func searchURL(terms string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(strings.Join(strings.Fields(terms), " "))
}

// RequestParams is the caller-facing parameter shape for a governed
// call, published by dispatch layers alongside the tool description.
type RequestParams struct {
	Query   string `json:"query" jsonschema:"required,description=Symbol or entity name to look up"`
	Region  string `json:"region,omitempty" jsonschema:"description=Market region tag such as 'in' or 'us'"`
	Session string `json:"session_id,omitempty" jsonschema:"description=Session scope for the result cache"`
}

// InputSchema returns the JSON schema for this profile's request
// parameters.
func (p *Profile) InputSchema() *jsonschema.Schema {
	r := jsonschema.Reflector{DoNotReference: true}
	schema := r.Reflect(&RequestParams{})
	schema.Title = p.Category + " request"
	schema.Description = fmt.Sprintf("Fetch governed %s data for a named entity.", p.Category)
	return schema
}

// BuiltinProfiles returns the stock set of category profiles. Callers
// may add or replace entries before constructing the governor.
func BuiltinProfiles() map[string]*Profile {
	return map[string]*Profile{
		"stock": {
			Category: "stock",
			DomainKeywords: []string{
				"price", "market cap", "volume", "pe ratio", "p/e", "eps",
				"dividend", "revenue", "profit", "shares", "trading",
				"fundamentals", "52 week", "book value",
			},
			Abbreviations: map[string]string{
				"reliance industries": "RELIANCE",
				"tata motors":         "TATAMOT",
				"apple":               "AAPL",
				"microsoft":           "MSFT",
				"alphabet":            "GOOGL",
				"google":              "GOOGL",
			},
			QuoteTemplates: []QuoteTemplate{
				{Region: "in", Format: "https://finance.yahoo.com/quote/%s.NS/", Label: "yahoo-nse"},
				{Region: "in", Format: "https://finance.yahoo.com/quote/%s.BO/", Label: "yahoo-bse"},
				{Region: "us", Format: "https://finance.yahoo.com/quote/%s/", Label: "yahoo"},
				{Format: "https://finance.yahoo.com/quote/%s/", Label: "yahoo-global"},
			},
			SearchSite:  "finance.yahoo.com",
			SearchTerms: "stock",
		},
		"crypto": {
			Category: "crypto",
			DomainKeywords: []string{
				"price", "market cap", "volume", "supply", "circulating",
				"all-time high", "dominance", "trading",
			},
			Abbreviations: map[string]string{
				"bitcoin":  "BTC",
				"ethereum": "ETH",
				"solana":   "SOL",
				"dogecoin": "DOGE",
			},
			QuoteTemplates: []QuoteTemplate{
				{Format: "https://coinmarketcap.com/currencies/%s/", Label: "coinmarketcap"},
			},
			SearchSite:  "coinmarketcap.com",
			SearchTerms: "crypto",
		},
		"bond": {
			Category: "bond",
			DomainKeywords: []string{
				"yield", "coupon", "maturity", "price", "rating",
				"duration", "spread", "treasury",
			},
			Abbreviations: map[string]string{
				"10 year treasury": "US10Y",
				"gilt":             "GILT",
			},
			QuoteTemplates: []QuoteTemplate{
				{Format: "https://www.investing.com/rates-bonds/%s", Label: "investing"},
			},
			SearchTerms: "bond yield",
		},
		"commodity": {
			Category: "commodity",
			DomainKeywords: []string{
				"price", "futures", "spot", "contract", "volume",
				"per ounce", "per barrel", "mcx",
			},
			Abbreviations: map[string]string{
				"gold":      "XAU",
				"silver":    "XAG",
				"crude oil": "WTI",
				"brent":     "BRN",
			},
			QuoteTemplates: []QuoteTemplate{
				{Region: "in", Format: "https://in.tradingview.com/symbols/MCX-%s1!/", Label: "tradingview-mcx"},
				{Format: "https://in.tradingview.com/symbols/%s/", Label: "tradingview"},
			},
			SearchTerms: "commodity price",
		},
		"etf": {
			Category: "etf",
			DomainKeywords: []string{
				"price", "nav", "expense ratio", "aum", "holdings",
				"tracking", "dividend", "volume",
			},
			Abbreviations: map[string]string{},
			QuoteTemplates: []QuoteTemplate{
				{Format: "https://finance.yahoo.com/quote/%s/", Label: "yahoo"},
			},
			SearchSite:  "finance.yahoo.com",
			SearchTerms: "etf",
		},
		"mutual_fund": {
			Category: "mutual_fund",
			DomainKeywords: []string{
				"nav", "expense ratio", "aum", "returns", "cagr",
				"holdings", "exit load", "sip",
			},
			Abbreviations: map[string]string{},
			QuoteTemplates: []QuoteTemplate{
				{Region: "in", Format: "https://www.moneycontrol.com/mutual-funds/nav/%s", Label: "moneycontrol"},
				{Format: "https://finance.yahoo.com/quote/%s/", Label: "yahoo"},
			},
			SearchTerms: "mutual fund nav",
		},
	}
}
