package scenarios

import (
	"testing"

	"github.com/okian/kitcast/internal/domain/gear"
	. "github.com/smartystreets/goconvey/convey"
)

func rules(vs []Violation) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Rule
	}
	return out
}

func TestVerifyPlan(t *testing.T) {
	ski := Scenario{ID: "s1", Sport: gear.SportSkiing}
	run := Scenario{ID: "r1", Sport: gear.SportRunning}

	Convey("Given plans from the engine", t, func() {
		obs := gear.Observation{Temperature: 20, FeelsLike: 10, WindSpeed: 20, WindGusts: 35,
			PrecipitationProbability: 80, Precipitation: 0.1, Condition: "Heavy Snow", CloudCover: 90}

		Convey("Then a skiing plan passes", func() {
			plan := gear.GetWearPlan(gear.SportSkiing, obs, nil, nil, nil)
			So(VerifyPlan(ski, EndpointWearPlan, plan), ShouldBeEmpty)
		})

		Convey("Then a gear suggestion passes", func() {
			sug := gear.GetGearSuggestions(gear.SportRunning, obs, nil, nil)
			So(VerifyGear(run, EndpointGear, sug), ShouldBeEmpty)
		})
	})

	Convey("Given broken plans", t, func() {
		Convey("When coverage is empty and confidence unknown", func() {
			vs := VerifyPlan(run, EndpointWearPlan, gear.WearPlan{Confidence: "sure"})

			Convey("Then both are reported", func() {
				So(rules(vs), ShouldResemble, []string{RuleEmptyCoverage, RuleConfidence})
				So(vs[0].ScenarioID, ShouldEqual, "r1")
				So(vs[0].Endpoint, ShouldEqual, EndpointWearPlan)
			})
		})

		Convey("When a zone repeats an item", func() {
			plan := gear.WearPlan{
				Coverage:   gear.Coverage{gear.ZoneTorso: {"Tee", "Tee"}},
				Confidence: gear.ConfidenceHigh,
			}
			So(rules(VerifyPlan(run, EndpointBatch, plan)), ShouldResemble, []string{RuleDuplicateItem})
		})

		Convey("When a zone repeats an item in another case", func() {
			plan := gear.WearPlan{
				Coverage:   gear.Coverage{gear.ZoneHead: {"Cap", "cap"}},
				Confidence: gear.ConfidenceHigh,
			}
			vs := VerifyPlan(run, EndpointWearPlan, plan)
			So(rules(vs), ShouldResemble, []string{RuleDuplicateItem})
			So(vs[0].Detail, ShouldContainSubstring, `"cap"`)
		})

		Convey("When a zone is empty or unknown", func() {
			plan := gear.WearPlan{
				Coverage:   gear.Coverage{gear.ZoneLegs: {}, "tail": {"Fluff"}},
				Confidence: gear.ConfidenceLow,
			}
			So(rules(VerifyPlan(run, EndpointWearPlan, plan)), ShouldContain, RuleEmptyZone)
			So(rules(VerifyPlan(run, EndpointWearPlan, plan)), ShouldContain, RuleUnknownZone)
		})

		Convey("When a skiing plan lacks helmet and goggles", func() {
			plan := gear.WearPlan{
				Coverage:   gear.Coverage{gear.ZoneHead: {"Beanie"}},
				Confidence: gear.ConfidenceMedium,
			}
			So(rules(VerifyPlan(ski, EndpointWearPlan, plan)), ShouldResemble,
				[]string{RuleMissingHelmet, RuleMissingGoggles})
		})

		Convey("When the wear list disagrees with the plan", func() {
			sug := gear.GearSuggestion{
				Wear: []string{"Shorts"},
				WearPlan: gear.WearPlan{
					Coverage:   gear.Coverage{gear.ZoneLegs: {"Tights"}},
					Confidence: gear.ConfidenceHigh,
				},
			}
			So(rules(VerifyGear(run, EndpointGear, sug)), ShouldResemble, []string{RuleWearMismatch})
		})
	})
}
