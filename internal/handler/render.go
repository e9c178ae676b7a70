package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"time"

	"github.com/shopspring/decimal"

	"github.com/travelxplore/site/internal/domain"
	"github.com/travelxplore/site/internal/form"
	"github.com/travelxplore/site/web"
)

// templateData is the value every page template is executed with.
// Page-specific fields are left zero when unused.
type templateData struct {
	Title   string
	User    *domain.User
	Notices []Notice
	Form    *form.Form
	Next    string

	Profile      *domain.Profile
	Traveler     *domain.Traveler
	Travelers    []domain.Traveler
	Message      *domain.ContactMessage
	Messages     []domain.ContactMessage
	Destination  *domain.Destination
	Destinations []domain.Destination
	Categories   []domain.Category
}

// IsAdmin reports whether the signed-in user may manage destinations.
func (d templateData) IsAdmin() bool {
	return d.User != nil && domain.IsAdmin(*d.User)
}

// fieldView is the argument of the shared "field" template.
type fieldView struct {
	Form  *form.Form
	Name  string
	Label string
	Type  string
}

// renderer holds one parsed template set per page, each combining base.html
// with the page file.
type renderer struct {
	pages map[string]*template.Template
}

func newRenderer(media MediaURLs) (*renderer, error) {
	funcs := template.FuncMap{
		"field": func(f *form.Form, name, label, typ string) fieldView {
			return fieldView{Form: f, Name: name, Label: label, Type: typ}
		},
		"mediaURL": func(rel string) string {
			if media == nil {
				return ""
			}
			return media.URLFor(rel)
		},
		"price":    func(d decimal.Decimal) string { return d.StringFixed(2) },
		"date":     func(t time.Time) string { return t.Format("Jan 2, 2006") },
		"datetime": func(t time.Time) string { return t.Format("Jan 2, 2006 15:04") },
		"year":     func() int { return time.Now().Year() },
	}

	fsys := web.Templates()
	names, err := fs.Glob(fsys, "pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("handler.newRenderer: %w", err)
	}

	r := &renderer{pages: make(map[string]*template.Template, len(names))}
	for _, name := range names {
		t, err := template.New(path.Base(name)).Funcs(funcs).ParseFS(fsys, "base.html", name)
		if err != nil {
			return nil, fmt.Errorf("handler.newRenderer: %s: %w", name, err)
		}
		r.pages[path.Base(name)] = t
	}
	return r, nil
}

// render executes page into a buffer first so a template failure becomes a
// clean 500 instead of a half-written page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data templateData) {
	t, ok := s.pages.pages[page]
	if !ok {
		s.serverError(w, r, fmt.Errorf("handler.render: unknown page %q", page))
		return
	}

	data.User = currentUser(r.Context())
	data.Notices = append(data.Notices, popNotices(w, r)...)
	if data.Form == nil {
		data.Form = form.New(nil, nil)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		s.serverError(w, r, fmt.Errorf("handler.render: %s: %w", page, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
