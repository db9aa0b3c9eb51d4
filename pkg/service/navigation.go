package service

import "strings"

const (
	BrandLabel = "Octofit Tracker"
	RootPath   = "/"
)

type MenuItem struct {
	Label string
	Path  string
}

// IsActive reports whether the item should be highlighted at path. The root
// item matches only itself, other items also match anything below them.
func (m MenuItem) IsActive(path string) bool {
	if m.Path == RootPath {
		return path == RootPath
	}

	return path == m.Path || strings.HasPrefix(path, m.Path+"/")
}

type Menu struct {
	Brand MenuItem
	Items []MenuItem
}

func NewMenu(entities []Entity) Menu {
	m := Menu{
		Brand: MenuItem{Label: BrandLabel, Path: RootPath},
	}

	for _, e := range entities {
		m.Items = append(m.Items, MenuItem{Label: e.Label, Path: e.Path})
	}

	return m
}
