// Package web renders the dashboard pages: the navigation shell with one of
// the welcome message, an entity table or nothing in its content slot.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/octofit/octofit-web/pkg/errs"
	"github.com/octofit/octofit-web/pkg/service"
)

//go:embed templates/*.html
var templates embed.FS

const (
	pageWelcome = "welcome"
	pageTable   = "table"
	pageEmpty   = "empty"
)

// MountIDHeader carries the mount id of a rendered table view.
const MountIDHeader = "X-Mount-Id"

type link struct {
	Label  string
	Path   string
	Active bool
}

type layoutData struct {
	Title   string
	Brand   link
	Links   []link
	Content any
}

// Page is a rendered HTML document ready to be written.
type Page struct {
	status  int
	mountID string
	body    []byte
}

func (p *Page) StatusCode() int {
	return p.status
}

func (p *Page) MountID() string {
	return p.mountID
}

func (p *Page) Body() []byte {
	return p.body
}

func (p *Page) Encode(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	if p.mountID != "" {
		w.Header().Set(MountIDHeader, p.mountID)
	}

	w.WriteHeader(p.status)

	_, err := w.Write(p.body)

	return err
}

type Renderer struct {
	menu  service.Menu
	pages map[string]*template.Template
}

func (r *Renderer) Welcome(path string) (*Page, error) {
	return r.render(pageWelcome, path, http.StatusOK, "", service.BrandLabel)
}

func (r *Renderer) Table(path string, view *service.TableView) (*Page, error) {
	return r.render(pageTable, path, http.StatusOK, view.MountID, view)
}

// NotFound renders the shell with nothing in the content slot.
func (r *Renderer) NotFound(path string) (*Page, error) {
	return r.render(pageEmpty, path, http.StatusNotFound, "", nil)
}

func (r *Renderer) render(name, path string, status int, mountID string, content any) (*Page, error) {
	const op errs.Op = "web.Renderer.render"

	data := layoutData{
		Title:   r.menu.Brand.Label,
		Brand:   newLink(r.menu.Brand, path),
		Content: content,
	}

	for _, item := range r.menu.Items {
		l := newLink(item, path)
		if l.Active {
			data.Title = item.Label + " | " + r.menu.Brand.Label
		}

		data.Links = append(data.Links, l)
	}

	var buf bytes.Buffer

	err := r.pages[name].ExecuteTemplate(&buf, "layout", data)
	if err != nil {
		return nil, errs.E(op, errs.Internal, errs.Parameter(name), err)
	}

	return &Page{
		status:  status,
		mountID: mountID,
		body:    buf.Bytes(),
	}, nil
}

func newLink(item service.MenuItem, path string) link {
	return link{
		Label:  item.Label,
		Path:   item.Path,
		Active: item.IsActive(path),
	}
}

func NewRenderer(menu service.Menu) (*Renderer, error) {
	const op errs.Op = "web.NewRenderer"

	layout, err := template.ParseFS(templates, "templates/layout.html")
	if err != nil {
		return nil, errs.E(op, errs.Internal, err)
	}

	r := &Renderer{
		menu:  menu,
		pages: map[string]*template.Template{},
	}

	for _, name := range []string{pageWelcome, pageTable, pageEmpty} {
		t, err := layout.Clone()
		if err != nil {
			return nil, errs.E(op, errs.Internal, errs.Parameter(name), err)
		}

		t, err = t.ParseFS(templates, "templates/"+name+".html")
		if err != nil {
			return nil, errs.E(op, errs.Internal, errs.Parameter(name), err)
		}

		r.pages[name] = t
	}

	return r, nil
}
