package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the logger package", t, func() {
		Convey("When initializing with defaults", func() {
			err := Init()

			Convey("Then a global logger is available", func() {
				So(err, ShouldBeNil)
				So(Get(), ShouldNotBeNil)
				So(Sync(), ShouldBeNil)
			})
		})

		Convey("When initializing with an unknown format", func() {
			err := Init(WithFormat("xml"))

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "xml")
			})
		})
	})
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a JSON logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(Init(WithFormat(FormatJSON), WithOutput(&buf)), ShouldBeNil)
		So(SetLevelString("info"), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging with fields", func() {
			Named("planner").Info(ctx, "plan computed",
				String("sport", "skiing"),
				Float64("effective_temp", 11),
				Bool("wet", true),
				Strings("optional", []string{"Spare dry layer"}),
				Error(errors.New("boom")),
			)

			Convey("Then the record carries every field", func() {
				var rec map[string]any
				So(json.Unmarshal(buf.Bytes(), &rec), ShouldBeNil)
				So(rec["msg"], ShouldEqual, "plan computed")
				So(rec["component"], ShouldEqual, "planner")
				So(rec["sport"], ShouldEqual, "skiing")
				So(rec["effective_temp"], ShouldEqual, 11.0)
				So(rec["wet"], ShouldEqual, true)
				So(rec["error"], ShouldEqual, "boom")
				So(rec["source"], ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When logging through a logger with bound fields", func() {
			Named("worker-pool").With(String("worker", "worker-2")).Warn(ctx, "slow job")

			Convey("Then the bound fields appear on the record", func() {
				var rec map[string]any
				So(json.Unmarshal(buf.Bytes(), &rec), ShouldBeNil)
				So(rec["component"], ShouldEqual, "worker-pool")
				So(rec["worker"], ShouldEqual, "worker-2")
			})
		})

		Convey("When the level is above the message", func() {
			So(SetLevelString("warn"), ShouldBeNil)
			Get().Debug(ctx, "hidden")
			Get().Info(ctx, "hidden")

			Convey("Then nothing is written", func() {
				So(buf.Len(), ShouldEqual, 0)
			})
		})

		Reset(func() {
			_ = SetLevelString("info")
			_ = Init()
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level names", t, func() {
		Convey("Then known names are accepted in any case", func() {
			for _, lvl := range []string{"debug", "INFO", "", "warn", "Warning", "error"} {
				So(SetLevelString(lvl), ShouldBeNil)
			}
		})

		Convey("Then unknown names are rejected", func() {
			err := SetLevelString("verbose")
			So(err, ShouldNotBeNil)
			So(strings.Contains(err.Error(), "verbose"), ShouldBeTrue)
		})

		Reset(func() { _ = SetLevelString("info") })
	})
}
