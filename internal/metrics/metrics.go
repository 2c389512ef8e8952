// Package metrics records per-run pipeline counters. A batch run has no
// scrape endpoint, so the registry is written out as a node_exporter
// textfile when a run finishes.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const defaultNamespace = "mmfeatures"

// Recorder holds one run's metrics on its own registry.
type Recorder struct {
	namespace string
	registry  *prometheus.Registry

	seasonsLoaded         prometheus.Counter
	seasonsSkipped        prometheus.Counter
	seasonsWithoutTourney prometheus.Counter
	featureRows           prometheus.Gauge
	matchupRows           prometheus.Gauge
	seasonMatchups        *prometheus.GaugeVec
	lastSuccess           prometheus.Gauge
}

// New creates a Recorder.
func New(opts ...Option) *Recorder {
	r := &Recorder{namespace: defaultNamespace}
	for _, opt := range opts {
		opt(r)
	}
	if r.registry == nil {
		r.registry = prometheus.NewRegistry()
	}

	r.seasonsLoaded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "seasons_loaded_total",
		Help:      "Seasons whose summary file loaded.",
	})
	r.seasonsSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "seasons_skipped_total",
		Help:      "Requested seasons skipped because their summary file failed to load.",
	})
	r.seasonsWithoutTourney = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "seasons_without_tourney_total",
		Help:      "Loaded seasons with no seeded team.",
	})
	r.featureRows = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Name:      "feature_rows",
		Help:      "Rows written to the feature table.",
	})
	r.matchupRows = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Name:      "matchup_rows",
		Help:      "Rows written to the matchup table.",
	})
	r.seasonMatchups = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Name:      "season_matchup_rows",
		Help:      "Matchup rows per season.",
	}, []string{"season"})
	r.lastSuccess = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Name:      "last_success",
		Help:      "1 if the run wrote its output files.",
	})

	r.registry.MustRegister(
		r.seasonsLoaded, r.seasonsSkipped, r.seasonsWithoutTourney,
		r.featureRows, r.matchupRows, r.seasonMatchups, r.lastSuccess,
	)
	return r
}

// SeasonsLoaded adds n loaded seasons.
func (r *Recorder) SeasonsLoaded(n int) { r.seasonsLoaded.Add(float64(n)) }

// SeasonsSkipped adds n skipped seasons.
func (r *Recorder) SeasonsSkipped(n int) { r.seasonsSkipped.Add(float64(n)) }

// SeasonWithoutTourney counts a season that had no tournament teams.
func (r *Recorder) SeasonWithoutTourney() { r.seasonsWithoutTourney.Inc() }

// FeatureRows sets the feature row count.
func (r *Recorder) FeatureRows(n int) { r.featureRows.Set(float64(n)) }

// MatchupRows sets the total matchup row count.
func (r *Recorder) MatchupRows(n int) { r.matchupRows.Set(float64(n)) }

// SeasonMatchups sets one season's matchup row count.
func (r *Recorder) SeasonMatchups(season, n int) {
	r.seasonMatchups.WithLabelValues(strconv.Itoa(season)).Set(float64(n))
}

// Succeeded marks the run as having written its outputs.
func (r *Recorder) Succeeded() { r.lastSuccess.Set(1) }

// Gatherer exposes the registry, mainly for tests.
func (r *Recorder) Gatherer() prometheus.Gatherer { return r.registry }

// WriteTextfile writes every metric in text exposition format to path.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
