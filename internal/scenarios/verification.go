package scenarios

import (
	"fmt"
	"slices"

	"github.com/okian/kitcast/internal/domain/dedupe"
	"github.com/okian/kitcast/internal/domain/gear"
)

// Invariant rule names reported in violations.
const (
	RuleEmptyCoverage  = "empty_coverage"
	RuleUnknownZone    = "unknown_zone"
	RuleEmptyZone      = "empty_zone"
	RuleDuplicateItem  = "duplicate_item"
	RuleMissingHelmet  = "missing_helmet"
	RuleMissingGoggles = "missing_goggles"
	RuleConfidence     = "invalid_confidence"
	RuleWearMismatch   = "wear_mismatch"
)

// VerifyPlan checks a wear plan returned for s.
func VerifyPlan(s Scenario, endpoint string, plan gear.WearPlan) []Violation {
	var out []Violation
	report := func(rule, format string, args ...any) {
		out = append(out, Violation{
			ScenarioID: s.ID,
			Endpoint:   endpoint,
			Rule:       rule,
			Detail:     fmt.Sprintf(format, args...),
		})
	}

	if len(plan.Coverage) == 0 {
		report(RuleEmptyCoverage, "no zones covered")
	}
	for zone, items := range plan.Coverage {
		if !slices.Contains(gear.Zones, zone) {
			report(RuleUnknownZone, "zone %q", zone)
		}
		if len(items) == 0 {
			report(RuleEmptyZone, "zone %q has no items", zone)
		}
		if dup, ok := firstDuplicate(items); ok {
			report(RuleDuplicateItem, "zone %q repeats %q", zone, dup)
		}
	}
	if dup, ok := firstDuplicate(plan.Optional); ok {
		report(RuleDuplicateItem, "optional repeats %q", dup)
	}

	if s.Sport == gear.SportSkiing {
		if !slices.Contains(plan.Coverage[gear.ZoneHead], "Helmet") {
			report(RuleMissingHelmet, "head is %v", plan.Coverage[gear.ZoneHead])
		}
		if !slices.Contains(plan.Coverage[gear.ZoneEyes], "Goggles") {
			report(RuleMissingGoggles, "eyes is %v", plan.Coverage[gear.ZoneEyes])
		}
	}

	switch plan.Confidence {
	case gear.ConfidenceHigh, gear.ConfidenceMedium, gear.ConfidenceLow:
	default:
		report(RuleConfidence, "confidence %q", plan.Confidence)
	}
	return out
}

// VerifyGear checks a gear suggestion: its wear plan must hold and the wear
// list must be the plan's items.
func VerifyGear(s Scenario, endpoint string, g gear.GearSuggestion) []Violation {
	out := VerifyPlan(s, endpoint, g.WearPlan)
	want := g.WearPlan.Coverage.Flatten()
	if !slices.Equal(g.Wear, want) {
		out = append(out, Violation{
			ScenarioID: s.ID,
			Endpoint:   endpoint,
			Rule:       RuleWearMismatch,
			Detail:     fmt.Sprintf("wear %v, plan %v", g.Wear, want),
		})
	}
	return out
}

// firstDuplicate returns the first item repeated in items. Letter case is
// ignored, so "Tee" and "tee" count as the same garment.
func firstDuplicate(items []string) (string, bool) {
	seen := dedupe.New(dedupe.WithCapacity(len(items)), dedupe.WithCaseInsensitive())
	for _, it := range items {
		if seen.Has(it) {
			return it, true
		}
		seen.Add(it)
	}
	return "", false
}
