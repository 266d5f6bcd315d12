// Package gear turns a weather observation and a user's comfort settings into
// a wear/pack plan for an outdoor activity.
//
// Every entry point is a pure function of its arguments: no I/O, no retained
// state. An Engine may be shared freely across goroutines.
package gear

// Sport selects the tier table and the fixed heat bias.
type Sport string

// Supported sports.
const (
	SportRunning Sport = "running"
	SportSkiing  Sport = "skiing"
)

// Valid reports whether s is a known sport.
func (s Sport) Valid() bool {
	return s == SportRunning || s == SportSkiing
}

// Zone names a body area in a coverage plan.
type Zone string

// Body zones.
const (
	ZoneLegs     Zone = "legs"
	ZoneTorso    Zone = "torso"
	ZoneHands    Zone = "hands"
	ZoneHead     Zone = "head"
	ZoneFeet     Zone = "feet"
	ZoneNeckFace Zone = "neckFace"
	ZoneEyes     Zone = "eyes"
)

// Zones lists every zone in canonical display order.
var Zones = []Zone{ZoneLegs, ZoneTorso, ZoneHands, ZoneHead, ZoneFeet, ZoneNeckFace, ZoneEyes}

// TemperaturePreference describes whether a user tends to feel cold or warm.
type TemperaturePreference string

// Temperature preferences.
const (
	RunsCold           TemperaturePreference = "runs_cold"
	TemperatureNeutral TemperaturePreference = "neutral"
	RunsHot            TemperaturePreference = "runs_hot"
)

// WindSensitivity scales how strongly wind lowers the effective temperature.
type WindSensitivity string

// Wind sensitivities.
const (
	WindLow    WindSensitivity = "low"
	WindNormal WindSensitivity = "normal"
	WindHigh   WindSensitivity = "high"
)

// PrecipitationPreference shifts the rain probability at which rain gear is packed.
type PrecipitationPreference string

// Precipitation preferences.
const (
	PrecipAvoid   PrecipitationPreference = "avoid"
	PrecipNeutral PrecipitationPreference = "neutral"
	PrecipOkay    PrecipitationPreference = "okay"
)

// Exertion is the planned effort level.
type Exertion string

// Exertion levels.
const (
	ExertionEasy   Exertion = "easy"
	ExertionSteady Exertion = "steady"
	ExertionHard   Exertion = "hard"
)

// Duration is the planned outing length.
type Duration string

// Durations.
const (
	DurationShort  Duration = "short"
	DurationMedium Duration = "medium"
	DurationLong   Duration = "long"
)

// Confidence grades how settled a plan is.
type Confidence string

// Confidence levels.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Observation is one weather reading. Temperatures are °F, speeds mph,
// precipitation in/hr, probabilities and cloud cover 0-100.
type Observation struct {
	Temperature              float64 `json:"temperature"`
	FeelsLike                float64 `json:"feels_like"`
	WindSpeed                float64 `json:"wind_speed"`
	WindGusts                float64 `json:"wind_gusts"`
	PrecipitationProbability float64 `json:"precipitation_probability"`
	Precipitation            float64 `json:"precipitation"`
	Condition                string  `json:"condition"`
	CloudCover               float64 `json:"cloud_cover"`
}

// ComfortProfile holds a user's comfort tendencies. Use
// NormalizeComfortProfile to build one from untrusted input.
type ComfortProfile struct {
	TemperaturePreference   TemperaturePreference   `json:"temperature_preference"`
	WindSensitivity         WindSensitivity         `json:"wind_sensitivity"`
	PrecipitationPreference PrecipitationPreference `json:"precipitation_preference"`
}

// DefaultComfortProfile returns the zero-adjustment baseline.
func DefaultComfortProfile() ComfortProfile {
	return ComfortProfile{
		TemperaturePreference:   TemperatureNeutral,
		WindSensitivity:         WindNormal,
		PrecipitationPreference: PrecipNeutral,
	}
}

// WearContext describes the planned outing.
type WearContext struct {
	Exertion Exertion `json:"exertion"`
	Duration Duration `json:"duration"`
}

// DefaultWearContext returns a steady, medium-length outing.
func DefaultWearContext() WearContext {
	return WearContext{Exertion: ExertionSteady, Duration: DurationMedium}
}

// withDefaults fills unknown fields from DefaultWearContext.
func (c WearContext) withDefaults() WearContext {
	switch c.Exertion {
	case ExertionEasy, ExertionSteady, ExertionHard:
	default:
		c.Exertion = ExertionSteady
	}
	switch c.Duration {
	case DurationShort, DurationMedium, DurationLong:
	default:
		c.Duration = DurationMedium
	}
	return c
}

// Overrides replaces individual observation fields. A nil field keeps the
// observed value.
type Overrides struct {
	Temperature              *float64 `json:"temperature,omitempty"`
	WindSpeed                *float64 `json:"wind_speed,omitempty"`
	WindGusts                *float64 `json:"wind_gusts,omitempty"`
	PrecipitationProbability *float64 `json:"precipitation_probability,omitempty"`
	Precipitation            *float64 `json:"precipitation,omitempty"`
	CloudCover               *float64 `json:"cloud_cover,omitempty"`
}

// Apply returns w with every set override applied. A nil receiver returns w.
func (o *Overrides) Apply(w Observation) Observation {
	if o == nil {
		return w
	}
	if o.Temperature != nil {
		w.Temperature = *o.Temperature
	}
	if o.WindSpeed != nil {
		w.WindSpeed = *o.WindSpeed
	}
	if o.WindGusts != nil {
		w.WindGusts = *o.WindGusts
	}
	if o.PrecipitationProbability != nil {
		w.PrecipitationProbability = *o.PrecipitationProbability
	}
	if o.Precipitation != nil {
		w.Precipitation = *o.Precipitation
	}
	if o.CloudCover != nil {
		w.CloudCover = *o.CloudCover
	}
	return w
}

// Coverage maps each covered zone to its garments in display order.
// Zones without garments are absent.
type Coverage map[Zone][]string

// WearPlan is the structured recommendation for one outing.
type WearPlan struct {
	Coverage      Coverage   `json:"coverage"`
	EffectiveTemp float64    `json:"effective_temp"`
	Adjustments   []string   `json:"adjustments"`
	Confidence    Confidence `json:"confidence"`
	Optional      []string   `json:"optional"`
}

// GearSuggestion is a flattened view of a WearPlan plus a pack list.
type GearSuggestion struct {
	Wear     []string `json:"wear"`
	Pack     []string `json:"pack"`
	WearPlan WearPlan `json:"wear_plan"`
}
