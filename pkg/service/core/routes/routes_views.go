package routes

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/octofit/octofit-web/pkg/service"
	"github.com/octofit/octofit-web/pkg/service/core/handlers"
	"github.com/octofit/octofit-web/pkg/service/core/transport"
	"github.com/rs/zerolog"
)

type EntityEndpoint struct {
	Path      string
	MountView http.HandlerFunc
}

type ViewsEndpoints struct {
	Welcome  http.HandlerFunc
	Entities []EntityEndpoint
	GetView  http.HandlerFunc
	NotFound http.HandlerFunc
}

func NewViewsEndpoints(log zerolog.Logger, h *handlers.ViewsHandler, entities []service.Entity) *ViewsEndpoints {
	e := &ViewsEndpoints{
		Welcome:  transport.For(h.Welcome).Build(log),
		GetView:  transport.For(h.GetView).Build(log),
		NotFound: transport.For(h.NotFound).Build(log),
	}

	for _, entity := range entities {
		e.Entities = append(e.Entities, EntityEndpoint{
			Path:      entity.Path,
			MountView: transport.For(h.MountView(entity)).Build(log.With().Str("view", entity.Name).Logger()),
		})
	}

	return e
}

func NewViewsRoutes(endpoints *ViewsEndpoints) AddRoutesFn {
	return func(router chi.Router) {
		router.Get(service.RootPath, endpoints.Welcome)

		for _, e := range endpoints.Entities {
			router.Get(e.Path, e.MountView)
		}

		router.Get("/api/views/{entity}", endpoints.GetView)
		router.NotFound(endpoints.NotFound)
	}
}
