package fingov

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults for every recognized option. All are overridable through the
// Config passed to New or a YAML file loaded at process start.
const (
	DefaultCapacity        = 4500
	DefaultEmergencyFloor  = 100
	DefaultLowFloor        = 300
	DefaultSwitchThreshold = 500
	DefaultMinContentLen   = 10
	DefaultMaxContentLen   = 5000
	DefaultCharsPerUnit    = 3.5
	DefaultPerCallCap      = 400

	DefaultEfficientMinChars = 20
	DefaultEfficientMaxChars = 1000

	DefaultMaxResponseChars  = 1600
	DefaultEmergencyMinChars = 48
)

// Config is the governor configuration. Zero fields are filled with the
// defaults above when the governor is constructed.
type Config struct {
	// Enabled turns governing on. When false the governor runs in
	// pass-through mode: the first accepted sample is returned raw with
	// zero charge.
	Enabled bool `yaml:"enabled"`

	// Capacity is the ledger's fixed ceiling in units.
	Capacity int64 `yaml:"capacity"`

	// EmergencyFloor forces Skip/Emergency below this remaining capacity.
	EmergencyFloor int64 `yaml:"emergency_floor"`

	// LowFloor forces Skip/KeyMetrics below this remaining capacity.
	LowFloor int64 `yaml:"low_floor"`

	// SwitchThreshold is the headroom above which signal-free content is
	// rejected in favor of the next fallback candidate.
	SwitchThreshold int64 `yaml:"switch_threshold"`

	// MinContentLen is the minimum acceptable fetched length in chars.
	MinContentLen int `yaml:"min_content_len"`

	// MaxContentLen is the raw length above which replies are summarized.
	MaxContentLen int `yaml:"max_content_len"`

	// CharsPerUnit is the unit-estimation ratio.
	CharsPerUnit float64 `yaml:"chars_per_unit"`

	// PerCallCap is the fixed per-call unit cap the priority fractions
	// apply to.
	PerCallCap int64 `yaml:"per_call_cap"`

	// EfficientMinChars/EfficientMaxChars bound the content-length
	// window rewarded by the quality score.
	EfficientMinChars int `yaml:"efficient_min_chars"`
	EfficientMaxChars int `yaml:"efficient_max_chars"`

	// MaxChars caps the rendered reply per degradation level.
	MaxChars MaxCharsConfig `yaml:"max_chars"`

	// MaxResponseChars is the hard-cap ceiling at full capacity.
	MaxResponseChars int `yaml:"max_response_chars"`

	// EmergencyMinChars is the hard-cap floor as capacity depletes.
	EmergencyMinChars int `yaml:"emergency_min_chars"`

	// DefaultCategory serves requests that carry no category. Defaults
	// to "stock".
	DefaultCategory string `yaml:"default_category"`
}

// MaxCharsConfig holds the per-decision character caps.
type MaxCharsConfig struct {
	Emergency  int `yaml:"emergency"`
	KeyMetrics int `yaml:"key_metrics"`
	Summary    int `yaml:"summary"`
	Minimal    int `yaml:"minimal"`
	Filtered   int `yaml:"filtered"`
}

// DefaultConfig returns the reference configuration. Governing itself is
// off until Enabled is set, matching the feature toggle's default.
func DefaultConfig() Config {
	return Config{}.withDefaults()
}

// LoadConfig reads and parses a YAML config file. Environment variables
// in the format ${VAR} are expanded before parsing.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("fingov: read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("fingov: parse config: %w", err)
	}

	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the config for consistency.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("fingov: config: capacity must be positive")
	}
	if c.EmergencyFloor < 0 || c.LowFloor < 0 {
		return fmt.Errorf("fingov: config: floors must be non-negative")
	}
	if c.EmergencyFloor >= c.LowFloor {
		return fmt.Errorf("fingov: config: emergency_floor (%d) must be below low_floor (%d)",
			c.EmergencyFloor, c.LowFloor)
	}
	if c.CharsPerUnit <= 0 {
		return fmt.Errorf("fingov: config: chars_per_unit must be positive")
	}
	if c.MinContentLen < 0 {
		return fmt.Errorf("fingov: config: min_content_len must be non-negative")
	}
	if c.EfficientMinChars > c.EfficientMaxChars {
		return fmt.Errorf("fingov: config: efficient_min_chars (%d) above efficient_max_chars (%d)",
			c.EfficientMinChars, c.EfficientMaxChars)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Capacity == 0 {
		c.Capacity = DefaultCapacity
	}
	if c.EmergencyFloor == 0 {
		c.EmergencyFloor = DefaultEmergencyFloor
	}
	if c.LowFloor == 0 {
		c.LowFloor = DefaultLowFloor
	}
	if c.SwitchThreshold == 0 {
		c.SwitchThreshold = DefaultSwitchThreshold
	}
	if c.MinContentLen == 0 {
		c.MinContentLen = DefaultMinContentLen
	}
	if c.MaxContentLen == 0 {
		c.MaxContentLen = DefaultMaxContentLen
	}
	if c.CharsPerUnit == 0 {
		c.CharsPerUnit = DefaultCharsPerUnit
	}
	if c.PerCallCap == 0 {
		c.PerCallCap = DefaultPerCallCap
	}
	if c.EfficientMinChars == 0 {
		c.EfficientMinChars = DefaultEfficientMinChars
	}
	if c.EfficientMaxChars == 0 {
		c.EfficientMaxChars = DefaultEfficientMaxChars
	}
	if c.MaxChars.Emergency == 0 {
		c.MaxChars.Emergency = 50
	}
	if c.MaxChars.KeyMetrics == 0 {
		c.MaxChars.KeyMetrics = 150
	}
	if c.MaxChars.Summary == 0 {
		c.MaxChars.Summary = 200
	}
	if c.MaxChars.Minimal == 0 {
		c.MaxChars.Minimal = 280
	}
	if c.MaxChars.Filtered == 0 {
		c.MaxChars.Filtered = 400
	}
	if c.MaxResponseChars == 0 {
		c.MaxResponseChars = DefaultMaxResponseChars
	}
	if c.EmergencyMinChars == 0 {
		c.EmergencyMinChars = DefaultEmergencyMinChars
	}
	if c.DefaultCategory == "" {
		c.DefaultCategory = "stock"
	}
	return c
}
