package http

import (
	"context"
	"time"

	"github.com/octofit/octofit-web/pkg/errs"
	"github.com/octofit/octofit-web/pkg/record"
	"github.com/octofit/octofit-web/pkg/service"
	"github.com/octofit/octofit-web/pkg/tracker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

var _ service.TrackerAPI = &trackerAPI{}

type trackerAPI struct {
	fetcher  tracker.Fetcher
	log      zerolog.Logger
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func (a *trackerAPI) EndpointURL(entity service.Entity) string {
	return a.fetcher.EndpointURL(entity.Name)
}

func (a *trackerAPI) GetCollection(ctx context.Context, entity service.Entity) (record.Collection, error) {
	const op errs.Op = "trackerAPI.GetCollection"

	start := time.Now()
	collection, err := a.fetcher.GetCollection(ctx, entity.Name)
	a.duration.WithLabelValues(entity.Name).Observe(time.Since(start).Seconds())

	if err != nil {
		a.requests.WithLabelValues(entity.Name, outcomeFailure).Inc()
		return nil, errs.E(op, err)
	}

	a.requests.WithLabelValues(entity.Name, outcomeSuccess).Inc()

	a.log.Debug().
		Str("endpoint", a.EndpointURL(entity)).
		Int("records", len(collection)).
		Msgf("fetched %s", entity.Name)

	return collection, nil
}

// Metrics returns the collectors describing requests made to the tracker API.
func (a *trackerAPI) Metrics() []prometheus.Collector {
	return []prometheus.Collector{a.requests, a.duration}
}

func NewTrackerAPI(fetcher tracker.Fetcher, log zerolog.Logger) *trackerAPI {
	return &trackerAPI{
		fetcher: fetcher,
		log:     log,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "octofit_web",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Requests made to the tracker API, by entity and outcome.",
		}, []string{"entity", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "octofit_web",
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Time spent fetching a collection from the tracker API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"entity"}),
	}
}
