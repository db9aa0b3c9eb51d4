package api

import (
	"github.com/octofit/octofit-web/pkg/service"
	httpapi "github.com/octofit/octofit-web/pkg/service/core/api/http"
	"github.com/octofit/octofit-web/pkg/tracker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

type Clients struct {
	TrackerAPI service.TrackerAPI

	collectors []prometheus.Collector
}

// Metrics returns the collectors of all API clients.
func (c *Clients) Metrics() []prometheus.Collector {
	return c.collectors
}

func NewClients(
	trackerFetcher tracker.Fetcher,
	log zerolog.Logger,
) *Clients {
	trackerAPI := httpapi.NewTrackerAPI(
		trackerFetcher,
		log.With().Str("component", "tracker").Logger(),
	)

	return &Clients{
		TrackerAPI: trackerAPI,
		collectors: trackerAPI.Metrics(),
	}
}
