package scenarios

import (
	"testing"

	"github.com/okian/kitcast/internal/domain/gear"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerator(t *testing.T) {
	Convey("Given two generators with the same seed", t, func() {
		a := NewGenerator(42).Generate(50)
		b := NewGenerator(42).Generate(50)

		Convey("Then they produce the same scenarios with distinct IDs", func() {
			So(len(a), ShouldEqual, 50)
			for i := range a {
				So(a[i].Sport, ShouldEqual, b[i].Sport)
				So(a[i].Weather, ShouldResemble, b[i].Weather)
				So(a[i].ComfortProfile, ShouldResemble, b[i].ComfortProfile)
				So(a[i].Context, ShouldResemble, b[i].Context)
				So(a[i].ID, ShouldNotEqual, b[i].ID)
			}
		})
	})

	Convey("Given a large generated set", t, func() {
		set := NewGenerator(7).Generate(500)

		Convey("Then every observation is within the accepted ranges", func() {
			for _, s := range set {
				w := s.Weather
				So(w.Temperature, ShouldBeBetweenOrEqual, minTemperature, minTemperature+temperatureRange)
				So(w.FeelsLike, ShouldBeLessThanOrEqualTo, w.Temperature)
				So(w.WindSpeed, ShouldBeGreaterThanOrEqualTo, 0)
				So(w.WindGusts, ShouldBeGreaterThanOrEqualTo, w.WindSpeed)
				So(w.PrecipitationProbability, ShouldBeBetweenOrEqual, 0, 100)
				So(w.Precipitation, ShouldBeBetweenOrEqual, 0, maxPrecipitation)
				So(w.CloudCover, ShouldBeBetweenOrEqual, 0, 100)
			}
		})

		Convey("Then both sports and optional parts appear", func() {
			var skiing, running, noProfile, noContext int
			for _, s := range set {
				switch s.Sport {
				case gear.SportSkiing:
					skiing++
				case gear.SportRunning:
					running++
				}
				if s.ComfortProfile == nil {
					noProfile++
				}
				if s.Context == nil {
					noContext++
				}
			}
			So(skiing, ShouldBeGreaterThan, 0)
			So(running, ShouldBeGreaterThan, 0)
			So(noProfile, ShouldBeGreaterThan, 0)
			So(noContext, ShouldBeGreaterThan, 0)
		})
	})
}
