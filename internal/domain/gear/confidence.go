package gear

import (
	"math"

	"github.com/okian/kitcast/internal/domain/dedupe"
)

// ConfidenceInput carries what the advisor needs to grade a plan.
type ConfidenceInput struct {
	EffectiveTemp            float64
	Sport                    Sport
	PrecipitationProbability float64
	WindGusts                float64
	Wet                      bool
}

// AssessConfidence grades how settled a plan is and lists optional extras.
//
// A plan is low confidence under severe weather, or when the effective
// temperature sits near a tier boundary while the weather is uncertain.
// Either condition alone gives medium. Optional items are independent flags.
func (t *Tuning) AssessConfidence(in ConfidenceInput) (Confidence, []string) {
	near := t.nearBoundary(in.Sport, in.EffectiveTemp)
	uncertain := in.PrecipitationProbability >= t.UncertainProbability || in.WindGusts >= t.UncertainGusts
	severe := in.PrecipitationProbability >= t.SevereProbability || in.WindGusts >= t.SevereGusts

	confidence := ConfidenceHigh
	switch {
	case severe, near && uncertain:
		confidence = ConfidenceLow
	case near, uncertain:
		confidence = ConfidenceMedium
	}

	optional := dedupe.New()
	if confidence == ConfidenceLow {
		optional.Add(OptionalLightShell)
	}
	if in.Wet {
		optional.Add(OptionalSpareDry)
	}
	if in.EffectiveTemp < t.ColdOptionalBelow {
		optional.Add(OptionalHandWarmers)
	}
	if in.EffectiveTemp > t.WarmOptionalAbove {
		optional.Add(OptionalCooldownWrap)
	}

	return confidence, optional.Items()
}

// nearBoundary reports whether temp is within the margin of any finite tier
// boundary of the sport.
func (t *Tuning) nearBoundary(sport Sport, temp float64) bool {
	for _, b := range t.Boundaries(sport) {
		if math.Abs(temp-b) <= t.BoundaryMargin {
			return true
		}
	}
	return false
}
