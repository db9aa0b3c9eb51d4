package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/octofit/octofit-web/pkg/service"
	"github.com/octofit/octofit-web/pkg/web"
)

type ViewsHandler struct {
	viewService service.ViewService
	renderer    *web.Renderer
}

func (h *ViewsHandler) Welcome(_ context.Context, r *http.Request, _ any) (*web.Page, error) {
	return h.renderer.Welcome(r.URL.Path)
}

// MountView returns the target that mounts the table view of entity.
func (h *ViewsHandler) MountView(entity service.Entity) func(context.Context, *http.Request, any) (*web.Page, error) {
	return func(ctx context.Context, r *http.Request, _ any) (*web.Page, error) {
		view, err := h.viewService.Mount(ctx, entity.Name)
		if err != nil {
			return nil, err
		}

		return h.renderer.Table(r.URL.Path, view)
	}
}

func (h *ViewsHandler) NotFound(_ context.Context, r *http.Request, _ any) (*web.Page, error) {
	return h.renderer.NotFound(r.URL.Path)
}

func (h *ViewsHandler) GetView(ctx context.Context, _ *http.Request, _ any) (*service.TableView, error) {
	return h.viewService.Mount(ctx, chi.URLParamFromCtx(ctx, "entity"))
}

func NewViewsHandler(s service.ViewService, renderer *web.Renderer) *ViewsHandler {
	return &ViewsHandler{
		viewService: s,
		renderer:    renderer,
	}
}
