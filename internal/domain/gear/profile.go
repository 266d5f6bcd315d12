package gear

import (
	"encoding/json"
	"strings"
)

// Storage and wire keys recognized for each profile field.
var (
	temperatureKeys   = []string{"temperaturePreference", "temperature_preference"}
	windKeys          = []string{"windSensitivity", "wind_sensitivity"}
	precipitationKeys = []string{"precipitationPreference", "precipitation_preference"}
)

// NormalizeComfortProfile builds a fully populated profile from untrusted
// input such as a decoded settings blob. It never fails: unknown shapes,
// missing fields, and unrecognized values fall back to the defaults.
//
// Accepted inputs are ComfortProfile, *ComfortProfile, map[string]any,
// map[string]string, and JSON encoded as []byte, json.RawMessage or string.
func NormalizeComfortProfile(raw any) ComfortProfile {
	switch v := raw.(type) {
	case ComfortProfile:
		return normalizeFields(string(v.TemperaturePreference), string(v.WindSensitivity), string(v.PrecipitationPreference))
	case *ComfortProfile:
		if v == nil {
			return DefaultComfortProfile()
		}
		return NormalizeComfortProfile(*v)
	case map[string]any:
		return normalizeFields(lookupString(v, temperatureKeys), lookupString(v, windKeys), lookupString(v, precipitationKeys))
	case map[string]string:
		return normalizeFields(lookupPlain(v, temperatureKeys), lookupPlain(v, windKeys), lookupPlain(v, precipitationKeys))
	case json.RawMessage:
		return normalizeJSON(v)
	case []byte:
		return normalizeJSON(v)
	case string:
		return normalizeJSON([]byte(v))
	default:
		return DefaultComfortProfile()
	}
}

// normalizeJSON decodes data as an object; anything else yields the default.
func normalizeJSON(data []byte) ComfortProfile {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return DefaultComfortProfile()
	}
	return NormalizeComfortProfile(obj)
}

func normalizeFields(temperature, wind, precipitation string) ComfortProfile {
	p := DefaultComfortProfile()
	switch t := TemperaturePreference(temperature); t {
	case RunsCold, TemperatureNeutral, RunsHot:
		p.TemperaturePreference = t
	}
	switch w := WindSensitivity(wind); w {
	case WindLow, WindNormal, WindHigh:
		p.WindSensitivity = w
	}
	switch pr := PrecipitationPreference(precipitation); pr {
	case PrecipAvoid, PrecipNeutral, PrecipOkay:
		p.PrecipitationPreference = pr
	}
	return p
}

// lookupString returns the first string value stored under any of keys.
// Non-string values are treated as absent.
func lookupString(m map[string]any, keys []string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func lookupPlain(m map[string]string, keys []string) string {
	for _, k := range keys {
		if s, ok := m[k]; ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
