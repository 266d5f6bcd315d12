package gear

import (
	"math"
	"strings"

	"github.com/okian/kitcast/internal/domain/dedupe"
)

// Planner computes wear plans and gear suggestions.
type Planner interface {
	WearPlan(sport Sport, w Observation, profile *ComfortProfile, wc *WearContext, o *Overrides) WearPlan
	GearSuggestions(sport Sport, w Observation, profile *ComfortProfile, wc *WearContext) GearSuggestion
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithTuning replaces the default tuning table.
func WithTuning(t Tuning) Option {
	return func(e *Engine) {
		if len(t.Sports) > 0 {
			e.tuning = t
		}
	}
}

// Engine implements Planner on a fixed tuning table. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	tuning Tuning
}

var _ Planner = (*Engine)(nil)

// NewEngine creates an engine with configuration options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{tuning: DefaultTuning()}

	// Apply all options
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// WearPlan builds the structured plan. A nil profile or context uses the
// defaults; a nil overrides uses the observation as is. The profile is
// normalized, so partially filled values are safe.
func (e *Engine) WearPlan(sport Sport, w Observation, profile *ComfortProfile, wc *WearContext, o *Overrides) WearPlan {
	t := &e.tuning
	resolved := o.Apply(w)
	p := resolveProfile(profile)
	c := DefaultWearContext()
	if wc != nil {
		c = *wc
	}

	effective, adjustments := t.EffectiveTemperature(sport, resolved, p, c)
	wet := t.isWet(resolved)
	coverage := t.PlanCoverage(sport, effective, wet, t.isWindy(resolved))
	confidence, optional := t.AssessConfidence(ConfidenceInput{
		EffectiveTemp:            effective,
		Sport:                    sport,
		PrecipitationProbability: resolved.PrecipitationProbability,
		WindGusts:                resolved.WindGusts,
		Wet:                      wet,
	})

	return WearPlan{
		Coverage:      coverage,
		EffectiveTemp: effective,
		Adjustments:   adjustments,
		Confidence:    confidence,
		Optional:      optional,
	}
}

// GearSuggestions builds the plan and flattens it into wear and pack lists.
// The pack list is computed from the raw observation, not from the plan.
func (e *Engine) GearSuggestions(sport Sport, w Observation, profile *ComfortProfile, wc *WearContext) GearSuggestion {
	plan := e.WearPlan(sport, w, profile, wc, nil)
	return GearSuggestion{
		Wear:     plan.Coverage.Flatten(),
		Pack:     e.tuning.PackList(w, resolveProfile(profile)),
		WearPlan: plan,
	}
}

// PackList returns what to carry for the raw observation.
func (t *Tuning) PackList(w Observation, profile ComfortProfile) []string {
	pack := dedupe.New(dedupe.WithSkipEmpty())
	pack.Add(t.PackBaseline...)

	threshold, ok := t.PackWetProbability[profile.PrecipitationPreference]
	if !ok {
		threshold = t.PackWetProbability[PrecipNeutral]
	}
	if w.PrecipitationProbability >= threshold || w.Precipitation > t.WetRate {
		pack.Add(t.PackWetItems...)
	}
	if w.WindGusts >= t.PackWindGusts {
		pack.Add(t.PackWindItems...)
	}
	if math.Min(w.Temperature, w.FeelsLike) <= t.PackColdAtOrBelow {
		pack.Add(t.PackColdItems...)
	}
	if t.PackSnowKeyword != "" && strings.Contains(strings.ToLower(w.Condition), t.PackSnowKeyword) {
		pack.Add(t.PackSnowItems...)
	}
	return pack.Items()
}

func resolveProfile(p *ComfortProfile) ComfortProfile {
	if p == nil {
		return DefaultComfortProfile()
	}
	return NormalizeComfortProfile(*p)
}

// defaultEngine backs the package-level helpers.
var defaultEngine = NewEngine() //nolint:gochecknoglobals // stateless shared engine

// GetWearPlan computes a plan with the default tuning.
func GetWearPlan(sport Sport, w Observation, profile *ComfortProfile, wc *WearContext, o *Overrides) WearPlan {
	return defaultEngine.WearPlan(sport, w, profile, wc, o)
}

// GetGearSuggestions computes suggestions with the default tuning.
func GetGearSuggestions(sport Sport, w Observation, profile *ComfortProfile, wc *WearContext) GearSuggestion {
	return defaultEngine.GearSuggestions(sport, w, profile, wc)
}
