package scenarios

import (
	"math"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/okian/kitcast/internal/domain/gear"
)

var (
	sports       = []gear.Sport{gear.SportRunning, gear.SportSkiing}
	temperatures = []gear.TemperaturePreference{gear.RunsCold, gear.TemperatureNeutral, gear.RunsHot}
	winds        = []gear.WindSensitivity{gear.WindLow, gear.WindNormal, gear.WindHigh}
	precips      = []gear.PrecipitationPreference{gear.PrecipAvoid, gear.PrecipNeutral, gear.PrecipOkay}
	exertions    = []gear.Exertion{gear.ExertionEasy, gear.ExertionSteady, gear.ExertionHard}
	durations    = []gear.Duration{gear.DurationShort, gear.DurationMedium, gear.DurationLong}
	conditions   = []string{"Clear", "Partly Cloudy", "Overcast", "Light Rain", "Heavy Rain", "Light Snow", "Heavy Snow", "Fog", ""}
)

// Generator produces random but reproducible scenarios.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator seeded with seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Generate returns n scenarios.
func (g *Generator) Generate(n int) []Scenario {
	out := make([]Scenario, n)
	for i := range out {
		out[i] = g.Scenario()
	}
	return out
}

// Scenario returns one random scenario. Profile and context are each
// omitted a third of the time so the server defaults get exercised too.
func (g *Generator) Scenario() Scenario {
	s := Scenario{
		ID:      uuid.NewString(),
		Sport:   pick(g.rng, sports),
		Weather: g.weather(),
	}
	if g.rng.IntN(3) > 0 {
		s.ComfortProfile = &gear.ComfortProfile{
			TemperaturePreference:   pick(g.rng, temperatures),
			WindSensitivity:         pick(g.rng, winds),
			PrecipitationPreference: pick(g.rng, precips),
		}
	}
	if g.rng.IntN(3) > 0 {
		s.Context = &gear.WearContext{
			Exertion: pick(g.rng, exertions),
			Duration: pick(g.rng, durations),
		}
	}
	return s
}

func (g *Generator) weather() gear.Observation {
	temp := round1(minTemperature + g.rng.Float64()*temperatureRange)
	wind := round1(g.rng.Float64() * maxWindSpeed)
	return gear.Observation{
		Temperature:              temp,
		FeelsLike:                round1(temp - g.rng.Float64()*feelsLikeSpread),
		WindSpeed:                wind,
		WindGusts:                round1(wind + g.rng.Float64()*maxGustExtra),
		PrecipitationProbability: math.Round(g.rng.Float64() * percentRange),
		Precipitation:            math.Round(g.rng.Float64()*maxPrecipitation*100) / 100,
		Condition:                pick(g.rng, conditions),
		CloudCover:               math.Round(g.rng.Float64() * percentRange),
	}
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
