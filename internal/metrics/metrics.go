// Package metrics exposes Prometheus collectors for simulation runs and
// runtime memory snapshots.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mcsim"

// Metrics owns a private registry so several instances can coexist in
// tests. It implements simulation.WorkerObserver and
// orchestration.RunObserver.
type Metrics struct {
	registry *prometheus.Registry

	runsTotal      *prometheus.CounterVec
	trialsTotal    *prometheus.CounterVec
	runDuration    *prometheus.HistogramVec
	activeWorkers  prometheus.Gauge
	workerTrials   prometheus.Counter
	workerFailures prometheus.Counter
	httpRequests   *prometheus.CounterVec
}

// New creates the collectors and registers them, together with the Go
// runtime, process and heap collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Finished experiment runs by status.",
		}, []string{"experiment", "status"}),
		trialsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trials_total",
			Help:      "Trials aggregated by successful runs.",
		}, []string{"experiment"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of experiment runs.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms to ~4min
		}, []string{"experiment"}),
		activeWorkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_workers",
			Help:      "Workers currently executing trials.",
		}),
		workerTrials: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "worker_trials_total",
			Help:      "Trials executed by workers, including failed runs.",
		}),
		workerFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "worker_failures_total",
			Help:      "Workers that stopped with an error.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Requests served by the metrics endpoint.",
		}, []string{"path", "code"}),
	}

	heap := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "heap_alloc_bytes",
		Help:      "Heap bytes in use at scrape time.",
	}, func() float64 { return float64(ReadMemory().HeapAlloc) })

	m.registry.MustRegister(
		m.runsTotal, m.trialsTotal, m.runDuration,
		m.activeWorkers, m.workerTrials, m.workerFailures, m.httpRequests,
		heap,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// WorkerStarted marks a worker as active.
func (m *Metrics) WorkerStarted(int) {
	m.activeWorkers.Inc()
}

// WorkerFinished records the trials of a worker and whether it failed.
func (m *Metrics) WorkerFinished(_ int, trials uint64, err error) {
	m.activeWorkers.Dec()
	m.workerTrials.Add(float64(trials))
	if err != nil {
		m.workerFailures.Inc()
	}
}

// RunFinished records one finished experiment run.
func (m *Metrics) RunFinished(experiment string, trials uint64, elapsed time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.runsTotal.WithLabelValues(experiment, status).Inc()
	m.runDuration.WithLabelValues(experiment).Observe(elapsed.Seconds())
	if err == nil {
		m.trialsTotal.WithLabelValues(experiment).Add(float64(trials))
	}
}

// ObserveRequest counts one HTTP request by path and status code.
func (m *Metrics) ObserveRequest(path string, code int) {
	m.httpRequests.WithLabelValues(path, strconv.Itoa(code)).Inc()
}

// Handler returns the Prometheus exposition handler for the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
