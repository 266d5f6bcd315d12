package gear

import "github.com/okian/kitcast/internal/domain/dedupe"

// PlanCoverage selects garments per zone for the effective temperature and
// appends condition layers. Each returned zone list is non-empty and free of
// duplicates; zones without garments are omitted.
func (t *Tuning) PlanCoverage(sport Sport, effectiveTemp float64, wet, windy bool) Coverage {
	st := t.table(sport)

	zones := make(map[Zone]*dedupe.Set, len(Zones))
	add := func(c Coverage) {
		for zone, items := range c {
			set, ok := zones[zone]
			if !ok {
				set = dedupe.New(dedupe.WithSkipEmpty())
				zones[zone] = set
			}
			set.Add(items...)
		}
	}

	// Always first so fixed items (helmet, goggles) lead their zone.
	add(st.Always)
	add(selectTier(st.Tiers, effectiveTemp).Items)
	if wet {
		add(st.WetItems)
	}
	if windy {
		add(st.WindyItems)
	}

	out := make(Coverage, len(zones))
	for _, zone := range Zones {
		set, ok := zones[zone]
		if !ok || set.Len() == 0 {
			continue
		}
		out[zone] = set.Items()
	}
	return out
}

// selectTier returns the first tier whose MaxTemp is at or above temp,
// scanning coldest first. The last tier catches everything warmer.
func selectTier(tiers []Tier, temp float64) Tier {
	if len(tiers) == 0 {
		return Tier{}
	}
	for _, tier := range tiers {
		if temp <= tier.MaxTemp {
			return tier
		}
	}
	return tiers[len(tiers)-1]
}

// Flatten lists every garment in canonical zone order without repeats.
func (c Coverage) Flatten() []string {
	var all []string
	for _, zone := range Zones {
		all = append(all, c[zone]...)
	}
	return dedupe.Strings(all...)
}
