package gear

import (
	"fmt"
	"strings"
)

// trace accumulates deltas on top of a base temperature and records a
// labelled entry for every non-zero step.
type trace struct {
	temp        float64
	adjustments []string
}

func (t *trace) apply(label string, delta float64) {
	if delta == 0 {
		return
	}
	t.temp += delta
	t.adjustments = append(t.adjustments, fmt.Sprintf("%s: %+gF", label, delta))
}

// EffectiveTemperature folds sport, effort, duration, comfort, wind, wet and
// sun into one adjusted temperature. It returns the temperature and the
// adjustment trace in application order. The observation must already have
// overrides applied.
func (t *Tuning) EffectiveTemperature(sport Sport, w Observation, profile ComfortProfile, wc WearContext) (float64, []string) {
	wc = wc.withDefaults()
	tr := trace{temp: w.Temperature, adjustments: []string{}}

	tr.apply(sportLabel(sport)+" heat", t.table(sport).HeatBias)
	tr.apply(titleWord(string(wc.Exertion))+" effort", t.Exertion[wc.Exertion])
	tr.apply(titleWord(string(wc.Duration))+" outing", t.Duration[wc.Duration])

	switch profile.TemperaturePreference {
	case RunsCold:
		tr.apply("Runs cold", -t.ComfortOffset)
	case RunsHot:
		tr.apply("Runs warm", t.ComfortOffset)
	}

	tr.apply("Wind chill", -t.windPenalty(w, profile.WindSensitivity))

	if t.isWet(w) {
		tr.apply("Wet conditions", -t.WetPenalty)
	}

	switch {
	case w.CloudCover <= t.BrightSunCloudCover:
		tr.apply("Bright sun", t.SunOffset)
	case w.CloudCover >= t.LowSunCloudCover:
		tr.apply("Low sun", -t.SunOffset)
	}

	return tr.temp, tr.adjustments
}

// windPenalty returns the degrees wind removes for the given sensitivity,
// or zero below the trigger.
func (t *Tuning) windPenalty(w Observation, s WindSensitivity) float64 {
	rule, ok := t.Wind[s]
	if !ok {
		rule = t.Wind[WindNormal]
	}
	if w.WindSpeed >= rule.SpeedThreshold || w.WindGusts >= rule.GustThreshold {
		return rule.Penalty
	}
	return 0
}

// isWet reports likely or measurable precipitation.
func (t *Tuning) isWet(w Observation) bool {
	return w.PrecipitationProbability >= t.WetProbability || w.Precipitation > t.WetRate
}

// isWindy reports wind strong enough for a wind layer, regardless of the
// user's sensitivity.
func (t *Tuning) isWindy(w Observation) bool {
	return w.WindSpeed >= t.WindySpeed || w.WindGusts >= t.WindyGusts
}

func sportLabel(s Sport) string {
	if !s.Valid() {
		s = SportRunning
	}
	return titleWord(string(s))
}

// titleWord upper-cases the first ASCII letter of an enum value.
func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
