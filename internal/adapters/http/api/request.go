package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/okian/kitcast/internal/domain/gear"
	"github.com/okian/kitcast/internal/domain/model"
)

// weatherRequest mirrors the Weather schema. Temperature is required;
// feels_like falls back to it when absent.
type weatherRequest struct {
	Temperature              *float64 `json:"temperature" validate:"required"`
	FeelsLike                *float64 `json:"feels_like"`
	WindSpeed                float64  `json:"wind_speed" validate:"gte=0"`
	WindGusts                float64  `json:"wind_gusts" validate:"gte=0"`
	PrecipitationProbability float64  `json:"precipitation_probability" validate:"gte=0,lte=100"`
	Precipitation            float64  `json:"precipitation" validate:"gte=0"`
	Condition                string   `json:"condition" validate:"max=64"`
	CloudCover               float64  `json:"cloud_cover" validate:"gte=0,lte=100"`
}

// overridesRequest mirrors the Overrides schema with the same ranges as
// weatherRequest; absent fields keep the observed value.
type overridesRequest struct {
	Temperature              *float64 `json:"temperature"`
	WindSpeed                *float64 `json:"wind_speed" validate:"omitempty,gte=0"`
	WindGusts                *float64 `json:"wind_gusts" validate:"omitempty,gte=0"`
	PrecipitationProbability *float64 `json:"precipitation_probability" validate:"omitempty,gte=0,lte=100"`
	Precipitation            *float64 `json:"precipitation" validate:"omitempty,gte=0"`
	CloudCover               *float64 `json:"cloud_cover" validate:"omitempty,gte=0,lte=100"`
}

func (o *overridesRequest) toModel() *gear.Overrides {
	if o == nil {
		return nil
	}
	return &gear.Overrides{
		Temperature:              o.Temperature,
		WindSpeed:                o.WindSpeed,
		WindGusts:                o.WindGusts,
		PrecipitationProbability: o.PrecipitationProbability,
		Precipitation:            o.Precipitation,
		CloudCover:               o.CloudCover,
	}
}

type contextRequest struct {
	Exertion string `json:"exertion" validate:"omitempty,oneof=easy steady hard"`
	Duration string `json:"duration" validate:"omitempty,oneof=short medium long"`
}

// planRequest mirrors the WearPlanRequest schema shared by /v1/wear-plan,
// /v1/gear and every batch scenario. The comfort profile is kept raw so the
// normalizer can repair it instead of rejecting the request.
type planRequest struct {
	Sport          string            `json:"sport" validate:"required,oneof=running skiing"`
	Weather        *weatherRequest   `json:"weather" validate:"required"`
	ComfortProfile json.RawMessage   `json:"comfort_profile"`
	Context        *contextRequest   `json:"context"`
	Overrides      *overridesRequest `json:"overrides"`
}

type batchRequest struct {
	Scenarios []planRequest `json:"scenarios" validate:"required,min=1,dive"`
}

func (w *weatherRequest) observation() gear.Observation {
	obs := gear.Observation{
		Temperature:              *w.Temperature,
		FeelsLike:                *w.Temperature,
		WindSpeed:                w.WindSpeed,
		WindGusts:                w.WindGusts,
		PrecipitationProbability: w.PrecipitationProbability,
		Precipitation:            w.Precipitation,
		Condition:                w.Condition,
		CloudCover:               w.CloudCover,
	}
	if w.FeelsLike != nil {
		obs.FeelsLike = *w.FeelsLike
	}
	return obs
}

// hasProfile reports whether a comfort profile was sent at all.
func (r *planRequest) hasProfile() bool {
	raw := bytes.TrimSpace(r.ComfortProfile)
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

// toModel converts a validated request. normalize turns the raw profile into
// a ComfortProfile.
func (r *planRequest) toModel(normalize func(raw any) gear.ComfortProfile) model.PlanRequest {
	out := model.PlanRequest{
		Sport:     gear.Sport(r.Sport),
		Weather:   r.Weather.observation(),
		Overrides: r.Overrides.toModel(),
	}
	if r.hasProfile() {
		p := normalize(r.ComfortProfile)
		out.Profile = &p
	}
	if r.Context != nil {
		out.Context = &gear.WearContext{
			Exertion: gear.Exertion(r.Context.Exertion),
			Duration: gear.Duration(r.Context.Duration),
		}
	}
	return out
}

// newValidator reports field errors by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// describeValidation flattens validator errors into one readable line.
func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: must satisfy %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s", field, fe.Tag()))
		}
	}
	return errors.New(strings.Join(parts, "; "))
}
