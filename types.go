package fingov

// Request identifies the entity a caller wants content about.
type Request struct {
	// Query is the entity-identifying string, e.g. "TSLA" or
	// "reliance current price".
	Query string `json:"query"`

	// Category selects the profile used for the request: "stock",
	// "crypto", "bond", "commodity", "etf" or "mutual_fund". Empty
	// falls back to the governor's default category.
	Category string `json:"category,omitempty"`

	// Region is an optional market/region tag, e.g. "in" or "us".
	Region string `json:"region,omitempty"`

	// SessionID scopes result-cache entries. Optional.
	SessionID string `json:"session_id,omitempty"`
}

// ContentSample is a raw fetch result produced by a Fetcher.
type ContentSample struct {
	SourceLabel string `json:"source_label"`
	RawText     string `json:"raw_text"`
}

// QualityAssessment is the Assessor's verdict on a content sample.
type QualityAssessment struct {
	Score              int  `json:"score"` // 0..100
	HasDomainSignal    bool `json:"has_domain_signal"`
	IsErrorPage        bool `json:"is_error_page"`
	IsBoilerplateHeavy bool `json:"is_boilerplate_heavy"`
}

// EmissionRecord is the committed output of one governed call.
// Created once per call and never mutated after the ledger commit.
type EmissionRecord struct {
	Decision       Decision `json:"decision"`
	Text           string   `json:"text"`
	EstimatedUnits int64    `json:"estimated_units"`

	Governing GoverningInfo `json:"governing"`
}

// GoverningInfo describes how a governed call was served.
type GoverningInfo struct {
	ExecutionID string   `json:"execution_id"`
	Priority    Priority `json:"priority"`
	SourceLabel string   `json:"source_label"`
	Attempts    int      `json:"attempts"`
	FromCache   bool     `json:"from_cache"`
}
