package gear

import "math"

// Tier is one temperature band of a sport's garment table. A tier applies
// when the effective temperature is at or below MaxTemp.
type Tier struct {
	MaxTemp float64
	Items   Coverage
}

// WindRule is the wind-chill trigger and penalty for one sensitivity.
type WindRule struct {
	SpeedThreshold float64
	GustThreshold  float64
	Penalty        float64
}

// SportTable holds everything that differs per sport.
type SportTable struct {
	HeatBias float64
	Tiers    []Tier
	// Always is merged into every tier, ahead of tier items.
	Always Coverage
	// WetItems and WindyItems are appended when the flag is set.
	WetItems   Coverage
	WindyItems Coverage
}

// Tuning is the full set of thresholds and offsets the engine applies.
// Every numeric rule of the engine reads from here.
type Tuning struct {
	Sports map[Sport]SportTable

	Exertion map[Exertion]float64
	Duration map[Duration]float64

	ComfortOffset float64

	Wind map[WindSensitivity]WindRule

	WetProbability float64 // percent, inclusive
	WetRate        float64 // in/hr, exclusive
	WetPenalty     float64

	BrightSunCloudCover float64 // percent, inclusive upper bound
	LowSunCloudCover    float64 // percent, inclusive lower bound
	SunOffset           float64

	WindySpeed float64
	WindyGusts float64

	BoundaryMargin       float64
	UncertainProbability float64
	UncertainGusts       float64
	SevereProbability    float64
	SevereGusts          float64
	ColdOptionalBelow    float64
	WarmOptionalAbove    float64

	PackBaseline       []string
	PackWetProbability map[PrecipitationPreference]float64
	PackWindGusts      float64
	PackColdAtOrBelow  float64
	PackSnowKeyword    string
	PackWetItems       []string
	PackWindItems      []string
	PackColdItems      []string
	PackSnowItems      []string
}

// Garment and pack names shared between tables.
const (
	itemWaterproofShell = "Waterproof shell"
	itemWindShell       = "Wind shell"
	itemStormShell      = "Storm shell"
	itemNeckGaiter      = "Neck gaiter"
	itemHandWarmers     = "Hand warmers"
	itemHelmet          = "Helmet"
	itemGoggles         = "Goggles"
)

// Optional item names.
const (
	OptionalLightShell   = "Pack a light shell"
	OptionalSpareDry     = "Spare dry layer"
	OptionalHandWarmers  = itemHandWarmers
	OptionalCooldownWrap = "Light layer for cooldown"
)

// DefaultTuning returns the production table. Each call builds a fresh copy,
// so callers may modify the result.
func DefaultTuning() Tuning {
	return Tuning{
		Sports: map[Sport]SportTable{
			SportRunning: runningTable(),
			SportSkiing:  skiingTable(),
		},
		Exertion: map[Exertion]float64{
			ExertionEasy:   -3,
			ExertionSteady: 0,
			ExertionHard:   5,
		},
		Duration: map[Duration]float64{
			DurationShort:  2,
			DurationMedium: 0,
			DurationLong:   -3,
		},
		ComfortOffset: 6,
		Wind: map[WindSensitivity]WindRule{
			WindLow:    {SpeedThreshold: 15, GustThreshold: 25, Penalty: 2},
			WindNormal: {SpeedThreshold: 10, GustThreshold: 20, Penalty: 4},
			WindHigh:   {SpeedThreshold: 6, GustThreshold: 14, Penalty: 6},
		},
		WetProbability: 50,
		WetRate:        0.02,
		WetPenalty:     3,

		BrightSunCloudCover: 25,
		LowSunCloudCover:    75,
		SunOffset:           2,

		WindySpeed: 15,
		WindyGusts: 25,

		BoundaryMargin:       3,
		UncertainProbability: 30,
		UncertainGusts:       20,
		SevereProbability:    60,
		SevereGusts:          30,
		ColdOptionalBelow:    32,
		WarmOptionalAbove:    70,

		PackBaseline: []string{"Water", "Energy snack"},
		PackWetProbability: map[PrecipitationPreference]float64{
			PrecipAvoid:   20,
			PrecipNeutral: 40,
			PrecipOkay:    60,
		},
		PackWindGusts:     20,
		PackColdAtOrBelow: 35,
		PackSnowKeyword:   "snow",
		PackWetItems:      []string{itemWaterproofShell, "Dry socks"},
		PackWindItems:     []string{itemWindShell},
		PackColdItems:     []string{"Spare base layer", itemHandWarmers},
		PackSnowItems:     []string{"Gaiters", "Lens cloth"},
	}
}

func runningTable() SportTable {
	return SportTable{
		HeatBias: 6,
		Tiers: []Tier{
			{MaxTemp: 25, Items: Coverage{
				ZoneLegs:     {"Thermal tights"},
				ZoneTorso:    {"Thermal base layer", "Insulated jacket"},
				ZoneHands:    {"Insulated gloves"},
				ZoneHead:     {"Thermal beanie"},
				ZoneFeet:     {"Wool socks"},
				ZoneNeckFace: {itemNeckGaiter},
			}},
			{MaxTemp: 40, Items: Coverage{
				ZoneLegs:     {"Tights"},
				ZoneTorso:    {"Long-sleeve base layer", "Light jacket"},
				ZoneHands:    {"Light gloves"},
				ZoneHead:     {"Beanie"},
				ZoneFeet:     {"Wool socks"},
				ZoneNeckFace: {itemNeckGaiter},
			}},
			{MaxTemp: 55, Items: Coverage{
				ZoneLegs:  {"Capris"},
				ZoneTorso: {"Long-sleeve top"},
				ZoneHands: {"Light gloves"},
				ZoneHead:  {"Headband"},
				ZoneFeet:  {"Running socks"},
			}},
			{MaxTemp: 68, Items: Coverage{
				ZoneLegs:  {"Shorts"},
				ZoneTorso: {"Short-sleeve top"},
				ZoneHead:  {"Cap"},
				ZoneFeet:  {"Running socks"},
			}},
			{MaxTemp: math.Inf(1), Items: Coverage{
				ZoneLegs:  {"Shorts"},
				ZoneTorso: {"Ultralight top"},
				ZoneHead:  {"Sun cap"},
				ZoneFeet:  {"Light socks"},
				ZoneEyes:  {"Sunglasses"},
			}},
		},
		WetItems: Coverage{
			ZoneTorso: {itemWaterproofShell},
			ZoneHead:  {"Brimmed cap"},
		},
		WindyItems: Coverage{
			ZoneTorso: {itemWindShell},
		},
	}
}

func skiingTable() SportTable {
	return SportTable{
		HeatBias: 0,
		Tiers: []Tier{
			{MaxTemp: 10, Items: Coverage{
				ZoneLegs:     {"Base layer bottoms", "Insulated ski pants"},
				ZoneTorso:    {"Thermal base layer", "Fleece mid-layer", "Insulated ski jacket"},
				ZoneHands:    {"Insulated mittens"},
				ZoneHead:     {"Balaclava"},
				ZoneFeet:     {"Wool ski socks"},
				ZoneNeckFace: {itemNeckGaiter},
			}},
			{MaxTemp: 25, Items: Coverage{
				ZoneLegs:     {"Base layer bottoms", "Ski pants"},
				ZoneTorso:    {"Thermal base layer", "Fleece mid-layer", "Ski jacket"},
				ZoneHands:    {"Insulated gloves"},
				ZoneHead:     {"Helmet liner"},
				ZoneFeet:     {"Wool ski socks"},
				ZoneNeckFace: {itemNeckGaiter},
			}},
			{MaxTemp: 40, Items: Coverage{
				ZoneLegs:  {"Light base layer bottoms", "Ski pants"},
				ZoneTorso: {"Light base layer", "Ski jacket"},
				ZoneHands: {"Ski gloves"},
				ZoneFeet:  {"Ski socks"},
			}},
			{MaxTemp: math.Inf(1), Items: Coverage{
				ZoneLegs:  {"Shell pants"},
				ZoneTorso: {"Light base layer", "Shell jacket"},
				ZoneHands: {"Light gloves"},
				ZoneFeet:  {"Light ski socks"},
			}},
		},
		Always: Coverage{
			ZoneHead: {itemHelmet},
			ZoneEyes: {itemGoggles},
		},
		// Wet and windy share the storm shell; the set union keeps one copy.
		WetItems: Coverage{
			ZoneTorso: {itemStormShell},
			ZoneEyes:  {"Low-light lens"},
		},
		WindyItems: Coverage{
			ZoneTorso:    {itemStormShell},
			ZoneNeckFace: {itemNeckGaiter},
		},
	}
}

// table returns the sport's table, falling back to running for unknown sports.
func (t *Tuning) table(s Sport) SportTable {
	if st, ok := t.Sports[s]; ok {
		return st
	}
	return t.Sports[SportRunning]
}

// Boundaries returns the finite tier boundaries of a sport, coldest first.
func (t *Tuning) Boundaries(s Sport) []float64 {
	tiers := t.table(s).Tiers
	out := make([]float64, 0, len(tiers))
	for _, tier := range tiers {
		if math.IsInf(tier.MaxTemp, 1) {
			continue
		}
		out = append(out, tier.MaxTemp)
	}
	return out
}
