package dedupe_test

import (
	"testing"

	dedupe "github.com/okian/kitcast/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSet(t *testing.T) {
	Convey("Given a new Set", t, func() {
		Convey("When creating a set with default options", func() {
			s := dedupe.New()

			Convey("Then it should be empty", func() {
				So(s, ShouldNotBeNil)
				So(s.Len(), ShouldEqual, 0)
				So(s.Items(), ShouldNotBeNil)
				So(s.Items(), ShouldBeEmpty)
			})
		})

		Convey("When adding items with repeats", func() {
			s := dedupe.New(dedupe.WithCapacity(4))
			added := s.Add("Shorts", "Cap", "Shorts", "Light socks", "Cap")

			Convey("Then only the first occurrence of each is kept in order", func() {
				So(added, ShouldEqual, 3)
				So(s.Items(), ShouldResemble, []string{"Shorts", "Cap", "Light socks"})
				So(s.Has("Cap"), ShouldBeTrue)
				So(s.Has("Beanie"), ShouldBeFalse)
			})
		})

		Convey("When adding across several calls", func() {
			s := dedupe.New()
			s.Add("Thermal base layer")
			s.Add("Insulated jacket", "Thermal base layer")
			s.Add("Waterproof shell")

			Convey("Then insertion order spans calls", func() {
				So(s.Items(), ShouldResemble, []string{"Thermal base layer", "Insulated jacket", "Waterproof shell"})
			})
		})

		Convey("When the returned slice is modified", func() {
			s := dedupe.New()
			s.Add("Helmet")
			items := s.Items()
			items[0] = "Beanie"

			Convey("Then the set is unaffected", func() {
				So(s.Items(), ShouldResemble, []string{"Helmet"})
			})
		})

		Convey("When skipping empty strings", func() {
			s := dedupe.New(dedupe.WithSkipEmpty())
			s.Add("", "Goggles", "")

			Convey("Then empty strings are not recorded", func() {
				So(s.Items(), ShouldResemble, []string{"Goggles"})
			})
		})

		Convey("When folding case", func() {
			s := dedupe.New(dedupe.WithCaseInsensitive())
			s.Add("Hand warmers", "hand warmers", "HAND WARMERS", "Water")

			Convey("Then the first spelling wins", func() {
				So(s.Items(), ShouldResemble, []string{"Hand warmers", "Water"})
				So(s.Has("WATER"), ShouldBeTrue)
			})
		})
	})
}

func TestStrings(t *testing.T) {
	Convey("Given a list with duplicates", t, func() {
		out := dedupe.Strings("Water", "Energy snack", "Water", "Hand warmers", "Energy snack")

		Convey("Then Strings keeps first-seen order", func() {
			So(out, ShouldResemble, []string{"Water", "Energy snack", "Hand warmers"})
		})
	})

	Convey("Given no input", t, func() {
		Convey("Then Strings returns an empty list", func() {
			So(dedupe.Strings(), ShouldBeEmpty)
		})
	})
}
