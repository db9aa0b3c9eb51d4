package core

import (
	"context"
	"fmt"

	"github.com/lithammer/shortuuid/v4"
	"github.com/octofit/octofit-web/pkg/errs"
	"github.com/octofit/octofit-web/pkg/record"
	"github.com/octofit/octofit-web/pkg/service"
	"github.com/octofit/octofit-web/pkg/state"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// View is the table view of a single entity. Each mount starts from an empty
// collection, replaced only by a successful fetch. Concurrent mounts share one
// outstanding request to the tracker API.
type View struct {
	entity service.Entity
	api    service.TrackerAPI
	store  state.Store
	log    zerolog.Logger

	flight singleflight.Group
}

func (v *View) Entity() service.Entity {
	return v.entity
}

func (v *View) Mount(ctx context.Context) (*service.TableView, error) {
	const op errs.Op = "View.Mount"

	mountID := shortuuid.New()
	log := v.log.With().Str("mount_id", mountID).Logger()

	// Other mounts may be waiting on the same fetch, so it must not be
	// cancelled when the mount that started it goes away.
	fetchCtx := context.WithoutCancel(ctx)

	result := v.flight.DoChan(v.entity.Name, func() (any, error) {
		return v.fetch(fetchCtx, log)
	})

	collection := record.Collection{}

	select {
	case <-ctx.Done():
		return nil, errs.E(op, errs.IO, errs.Parameter(v.entity.Name), ctx.Err())
	case res := <-result:
		if res.Shared {
			log.Debug().Msg("joined in-flight fetch")
		}

		if res.Err == nil {
			collection = res.Val.(record.Collection)
		}
	}

	return &service.TableView{
		Entity:  v.entity,
		MountID: mountID,
		Table:   record.Tabulate(collection),
	}, nil
}

func (v *View) fetch(ctx context.Context, log zerolog.Logger) (record.Collection, error) {
	collection, err := v.api.GetCollection(ctx, v.entity)
	if err != nil {
		log.Error().
			Err(err).
			Str("endpoint", v.api.EndpointURL(v.entity)).
			Msgf("fetching %s", v.entity.Name)

		return nil, err
	}

	if collection == nil {
		collection = record.Collection{}
	}

	v.store.Set(v.entity.Name, collection)

	return collection, nil
}

func NewView(entity service.Entity, api service.TrackerAPI, store state.Store, log zerolog.Logger) *View {
	return &View{
		entity: entity,
		api:    api,
		store:  store,
		log:    log.With().Str("view", entity.Name).Logger(),
	}
}

var _ service.ViewService = &viewService{}

type viewService struct {
	entities []service.Entity
	views    map[string]*View
}

func (s *viewService) Mount(ctx context.Context, name string) (*service.TableView, error) {
	const op errs.Op = "viewService.Mount"

	v, ok := s.views[name]
	if !ok {
		return nil, errs.E(op, errs.NotExist, errs.Parameter("entity"), fmt.Sprintf("unknown entity: %s", name))
	}

	tv, err := v.Mount(ctx)
	if err != nil {
		return nil, errs.E(op, err)
	}

	return tv, nil
}

func (s *viewService) Entities() []service.Entity {
	return s.entities
}

// NewViewService builds one view per entity.
func NewViewService(entities []service.Entity, api service.TrackerAPI, store state.Store, log zerolog.Logger) (*viewService, error) {
	const op errs.Op = "core.NewViewService"

	s := &viewService{
		views: make(map[string]*View, len(entities)),
	}

	for _, e := range entities {
		if _, exists := s.views[e.Name]; exists {
			return nil, errs.E(op, errs.Validation, errs.Parameter("entity"), fmt.Sprintf("duplicate entity: %s", e.Name))
		}

		s.views[e.Name] = NewView(e, api, store, log)
		s.entities = append(s.entities, e)
	}

	return s, nil
}
