package web

import (
	"embed"
	"fmt"
	"html/template"
	"sync"

	"github.com/gorilla/mux"
)

const (
	BaseFilename = "_base.html"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// handler provides global values that must be
// safe for concurrent use from multiple goroutines
// to each handler method.
type handler struct {
	*Global

	router *mux.Router

	// Mutex protected values
	mu       sync.RWMutex
	template map[string]*template.Template
}

func newHandler(g *Global, router *mux.Router) (*handler, error) {
	h := &handler{Global: g, router: router}
	base, err := template.New(BaseFilename).Funcs(template.FuncMap{
		"add": func(a, b int) int { return a + b },
	}).ParseFS(embeddedTemplates, "templates/"+BaseFilename)
	if err != nil {
		return nil, fmt.Errorf("handler.go:newHandler: %w", err)
	}
	h.template = map[string]*template.Template{BaseFilename: base}
	return h, nil
}

// urlFor gives the path of a named route.
func (h *handler) urlFor(name string) string {
	if route := h.router.Get(name); route != nil {
		if u, err := route.URL(); err == nil {
			return u.Path
		}
	}
	h.Global.log.Println("no route named", name)
	return "/"
}

// Template returns the base template with templateFilename parsed on
// top of it. Each page gets its own clone, so the `define` blocks of
// one page do not leak into another. The base itself is never executed,
// since an executed template cannot be cloned.
func (h *handler) Template(templateFilename string) (*template.Template, error) {
	if templateFilename == BaseFilename {
		return nil, fmt.Errorf("handler.go:Template: %s is not a page", BaseFilename)
	}
	h.mu.RLock()
	tpl, ok := h.template[templateFilename]
	h.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if tpl, ok := h.template[templateFilename]; ok {
		return tpl, nil
	}
	h.Global.log.Println("Initializing HTML template for", templateFilename)
	clone, err := h.template[BaseFilename].Clone()
	if err != nil {
		return nil, err
	}
	if tpl, err = clone.ParseFS(embeddedTemplates, "templates/"+templateFilename); err != nil {
		return nil, fmt.Errorf("handler.go:Template: %w", err)
	}
	h.template[templateFilename] = tpl
	return tpl, nil
}
