package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then the defaults are applied", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "kitcast")
				So(manager.subsystem, ShouldEqual, "planner")
				So(len(manager.histogramBuckets), ShouldBeGreaterThan, 0)
				So(len(manager.temperatureBuckets), ShouldEqual, 13)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithTemperatureBuckets([]float64{0, 32, 64}),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.plansComputed.WithLabelValues("running", "high").Inc()

			Convey("Then the registry exposes names and constant labels", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				var found bool
				for _, f := range families {
					if f.GetName() != "test_namespace_test_subsystem_plans_computed_total" {
						continue
					}
					found = true
					labels := f.GetMetric()[0].GetLabel()
					var env string
					for _, l := range labels {
						if l.GetName() == "env" {
							env = l.GetValue()
						}
					}
					So(env, ShouldEqual, "test")
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When empty option values are passed", func() {
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithCustomLabels(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then the defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "kitcast")
				So(manager.subsystem, ShouldEqual, "planner")
				So(manager.customLabels, ShouldNotBeNil)
			})
		})
	})
}

func TestPlanningMetrics(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When a plan is recorded", func() {
			before := testutil.ToFloat64(globalManager.plansComputed.WithLabelValues("skiing", "low"))
			RecordPlan("skiing", "low", 11)

			Convey("Then the plan counter grows by one", func() {
				after := testutil.ToFloat64(globalManager.plansComputed.WithLabelValues("skiing", "low"))
				So(after-before, ShouldEqual, 1)
			})
		})

		Convey("When adjustments are recorded", func() {
			before := testutil.ToFloat64(globalManager.adjustmentsApplied.WithLabelValues("Wind chill"))
			RecordAdjustment("Wind chill")
			RecordAdjustment("Wind chill")

			Convey("Then they are counted per factor", func() {
				after := testutil.ToFloat64(globalManager.adjustmentsApplied.WithLabelValues("Wind chill"))
				So(after-before, ShouldEqual, 2)
			})
		})

		Convey("When the remaining planning metrics are recorded", func() {
			Convey("Then nothing panics", func() {
				So(func() { RecordSuggestion("running") }, ShouldNotPanic)
				So(func() { RecordPlanningLatency(0.4) }, ShouldNotPanic)
				So(func() { RecordProfileNormalized() }, ShouldNotPanic)
			})
		})
	})
}

func TestBatchAndQueueMetrics(t *testing.T) {
	Convey("Given batch and queue metrics", t, func() {
		Convey("When a batch is rejected", func() {
			before := testutil.ToFloat64(globalManager.batchRejected.WithLabelValues("backpressure"))
			RecordBatchRejected("backpressure")

			Convey("Then the reason is counted", func() {
				after := testutil.ToFloat64(globalManager.batchRejected.WithLabelValues("backpressure"))
				So(after-before, ShouldEqual, 1)
			})
		})

		Convey("When queue gauges are updated", func() {
			UpdateQueueSize(7)
			UpdateQueueCapacity(100)
			UpdateQueueUtilization(0.07)
			UpdateWorkerCount(4)

			Convey("Then the gauges hold the last value", func() {
				So(testutil.ToFloat64(globalManager.queueSize), ShouldEqual, 7)
				So(testutil.ToFloat64(globalManager.queueCapacity), ShouldEqual, 100)
				So(testutil.ToFloat64(globalManager.queueUtilization), ShouldEqual, 0.07)
				So(testutil.ToFloat64(globalManager.workerCount), ShouldEqual, 4)
			})
		})

		Convey("When counters and histograms are recorded", func() {
			Convey("Then nothing panics", func() {
				So(func() { RecordBatch(12) }, ShouldNotPanic)
				So(func() { RecordQueueEnqueue() }, ShouldNotPanic)
				So(func() { RecordQueueDequeue() }, ShouldNotPanic)
				So(func() { RecordQueueEnqueueError() }, ShouldNotPanic)
				So(func() { RecordQueueWait(1.5) }, ShouldNotPanic)
				So(func() { RecordWorkerProcessingLatency(0.2) }, ShouldNotPanic)
				So(func() { RecordWorkerError() }, ShouldNotPanic)
			})
		})
	})
}

func TestHTTPAndErrorMetrics(t *testing.T) {
	Convey("Given HTTP and error metrics", t, func() {
		Convey("When a request is rate limited", func() {
			before := testutil.ToFloat64(globalManager.httpRateLimited.WithLabelValues("/v1/batch"))
			RecordRateLimited("/v1/batch")

			Convey("Then the endpoint counter grows", func() {
				after := testutil.ToFloat64(globalManager.httpRateLimited.WithLabelValues("/v1/batch"))
				So(after-before, ShouldEqual, 1)
			})
		})

		Convey("When requests and errors are recorded", func() {
			Convey("Then nothing panics", func() {
				So(func() { RecordHTTPRequest("/v1/gear", "POST", "200") }, ShouldNotPanic)
				So(func() { RecordHTTPRequestDuration("/v1/gear", "POST", "200", 1.2) }, ShouldNotPanic)
				So(func() { RecordErrorByComponent("api", "validation") }, ShouldNotPanic)
				So(func() { RecordErrorByType("validation", "low") }, ShouldNotPanic)
				So(func() { RecordErrorByEndpoint("/v1/gear", "POST", "validation") }, ShouldNotPanic)
			})
		})

		Convey("When system metrics are recorded", func() {
			Convey("Then nothing panics", func() {
				So(func() { UpdateSystemMemoryUsage(1 << 20) }, ShouldNotPanic)
				So(func() { UpdateSystemGoroutineCount(12) }, ShouldNotPanic)
				So(func() { RecordSystemGCPauseTime(0.1) }, ShouldNotPanic)
			})
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the custom registry", t, func() {
		RecordPlan("running", "high", 83)

		Convey("Then it gathers kitcast metrics only", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
			for _, f := range families {
				So(strings.HasPrefix(f.GetName(), "kitcast_planner_"), ShouldBeTrue)
			}
		})
	})
}
