package service

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"
	"github.com/octofit/octofit-web/pkg/record"
)

type TrackerAPI interface {
	GetCollection(ctx context.Context, entity Entity) (record.Collection, error)
	EndpointURL(entity Entity) string
}

type ViewService interface {
	// Mount shows the table view of the named entity, fetching its
	// collection once. A failed fetch is not an error; the view then shows
	// an empty collection.
	Mount(ctx context.Context, name string) (*TableView, error)
	Entities() []Entity
}

// Entity is one kind of record listed by the tracker API.
type Entity struct {
	// Name is the API path segment, e.g. "activities".
	Name string `json:"entity"`
	// Label is the display name, e.g. "Activities".
	Label string `json:"label"`
	// Path is the dashboard route showing the entity.
	Path string `json:"path"`
	// EmptyNotice replaces the table body when there are no records.
	EmptyNotice string `json:"-"`
}

// NewEntity derives an entity from its display label.
func NewEntity(label string) Entity {
	name := slug.Make(label)

	return Entity{
		Name:        name,
		Label:       label,
		Path:        "/" + name,
		EmptyNotice: fmt.Sprintf("No %s found.", name),
	}
}

// Entities are the views of the dashboard, in menu order.
func Entities() []Entity {
	return []Entity{
		NewEntity("Activities"),
		NewEntity("Leaderboard"),
		NewEntity("Teams"),
		NewEntity("Users"),
		NewEntity("Workouts"),
	}
}

type TableView struct {
	Entity
	MountID string       `json:"mount_id"`
	Table   record.Table `json:"table"`
}
