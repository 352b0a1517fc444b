package domain

import "time"

// PriceSample a closed booking's accepted price range.
// Read-only input to the price estimator, never mutated by it.
type PriceSample struct {
	PriceMin    float64
	PriceMax    float64
	FinalizedAt time.Time
}

// IsValid returns true if the pair is usable for estimation:
// both ends positive and not inverted
func (s *PriceSample) IsValid() bool {
	return s.PriceMin > 0 && s.PriceMax > 0 && s.PriceMax >= s.PriceMin
}

// Midpoint returns the middle of the accepted range
func (s *PriceSample) Midpoint() float64 {
	return (s.PriceMin + s.PriceMax) / 2
}

// ExtraItem one configured add-on job with its price range.
// PerBoard extras are charged once per board (multiplied by the
// selection count), the rest once per request.
type ExtraItem struct {
	Code     string
	Name     string
	PriceMin float64
	PriceMax float64
	PerBoard bool
}

// SelectedExtra one extra chosen in an estimate request
type SelectedExtra struct {
	Code  string
	Count int // repeat count for per-board extras; 1 for boolean extras
}

// EstimatorSettings operator-configured estimator parameters.
// Defaulting is applied once at load time (ApplyDefaults), not at use sites.
type EstimatorSettings struct {
	Enabled    bool
	MinSamples int
	Interval   float64 // desired band width
	MinPrice   float64
	MaxPrice   float64
	UpdatedAt  time.Time
}

// ApplyDefaults fills zero or inconsistent fields with compiled-in defaults
func (s *EstimatorSettings) ApplyDefaults() {
	if s.MinSamples <= 0 {
		s.MinSamples = DefaultMinSamples
	}
	if s.Interval <= 0 {
		s.Interval = DefaultEstimateInterval
	}
	if s.MinPrice <= 0 {
		s.MinPrice = DefaultEstimateMinPrice
	}
	if s.MaxPrice <= s.MinPrice {
		s.MaxPrice = s.MinPrice + DefaultEstimateMaxPrice - DefaultEstimateMinPrice
	}
}

// DefaultEstimatorSettings returns the compiled-in settings used when the
// settings store has no row or cannot be read
func DefaultEstimatorSettings() EstimatorSettings {
	return EstimatorSettings{
		Enabled:    true,
		MinSamples: DefaultMinSamples,
		Interval:   DefaultEstimateInterval,
		MinPrice:   DefaultEstimateMinPrice,
		MaxPrice:   DefaultEstimateMaxPrice,
	}
}

// PriceBand an estimated [Min, Max] price range
type PriceBand struct {
	Min float64
	Max float64
}
