package types_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/kitcast/internal/domain/gear"
	types "github.com/okian/kitcast/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBatchResponse(t *testing.T) {
	Convey("Given a batch response with one planned scenario", t, func() {
		resp := types.BatchResponse{
			BatchID: "batch-1",
			Results: []types.BatchItem{{
				JobID: "job-1",
				Index: 0,
				Plan: gear.WearPlan{
					Coverage:      gear.Coverage{gear.ZoneHead: {"Helmet"}},
					EffectiveTemp: 20,
					Adjustments:   []string{},
					Confidence:    gear.ConfidenceHigh,
					Optional:      []string{},
				},
			}},
		}

		Convey("When encoding it as JSON", func() {
			data, err := json.Marshal(resp)
			So(err, ShouldBeNil)

			var decoded map[string]any
			So(json.Unmarshal(data, &decoded), ShouldBeNil)

			Convey("Then it uses snake_case keys", func() {
				So(decoded["batch_id"], ShouldEqual, "batch-1")
				results, ok := decoded["results"].([]any)
				So(ok, ShouldBeTrue)
				So(len(results), ShouldEqual, 1)

				item := results[0].(map[string]any)
				So(item["job_id"], ShouldEqual, "job-1")
				So(item["index"], ShouldEqual, 0.0)

				plan := item["plan"].(map[string]any)
				So(plan["confidence"], ShouldEqual, "high")
				So(plan["effective_temp"], ShouldEqual, 20.0)
			})
		})
	})
}
