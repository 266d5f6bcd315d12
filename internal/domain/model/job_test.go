package model_test

import (
	"testing"

	"github.com/okian/kitcast/internal/domain/gear"
	"github.com/okian/kitcast/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestJob(t *testing.T) {
	Convey("Given a job with a reply channel", t, func() {
		reply := make(chan model.Result, 1)
		job := model.Job{
			ID:      "job-1",
			BatchID: "batch-1",
			Index:   3,
			Request: model.PlanRequest{
				Sport:   gear.SportSkiing,
				Weather: gear.Observation{Temperature: 20},
			},
			Reply: reply,
		}

		Convey("When a result is sent back", func() {
			job.Reply <- model.Result{JobID: job.ID, Index: job.Index}
			got := <-reply

			Convey("Then the caller receives it keyed by job and index", func() {
				So(got.JobID, ShouldEqual, "job-1")
				So(got.Index, ShouldEqual, 3)
			})
		})

		Convey("Then optional request parts default to nil", func() {
			So(job.Request.Profile, ShouldBeNil)
			So(job.Request.Context, ShouldBeNil)
			So(job.Request.Overrides, ShouldBeNil)
		})
	})
}
