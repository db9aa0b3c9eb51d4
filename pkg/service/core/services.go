package core

import (
	"github.com/octofit/octofit-web/pkg/service"
	"github.com/octofit/octofit-web/pkg/service/core/api"
	"github.com/octofit/octofit-web/pkg/state"
	"github.com/rs/zerolog"
)

type Services struct {
	ViewService service.ViewService
}

func NewServices(
	entities []service.Entity,
	clients *api.Clients,
	store state.Store,
	log zerolog.Logger,
) (*Services, error) {
	viewService, err := NewViewService(
		entities,
		clients.TrackerAPI,
		store,
		log.With().Str("component", "views").Logger(),
	)
	if err != nil {
		return nil, err
	}

	return &Services{
		ViewService: viewService,
	}, nil
}
