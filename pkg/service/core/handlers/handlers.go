package handlers

import (
	"github.com/octofit/octofit-web/pkg/service/core"
	"github.com/octofit/octofit-web/pkg/web"
)

type Handlers struct {
	ViewsHandler *ViewsHandler
}

func NewHandlers(s *core.Services, renderer *web.Renderer) *Handlers {
	return &Handlers{
		ViewsHandler: NewViewsHandler(s.ViewService, renderer),
	}
}
