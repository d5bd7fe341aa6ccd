package httpserver

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/rs/zerolog/log"

	"booking_web/internal/app"
	"booking_web/internal/auth"
	"booking_web/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer holds one template set per page, each sharing the layout.
type Renderer struct {
	pages map[string]*template.Template
}

type view struct {
	Title string
	State auth.State
	Path  string
	Data  any
}

var funcs = template.FuncMap{
	"money":       app.FormatMoney,
	"date":        app.FormatDate,
	"statusTone":  app.StatusTone,
	"paymentTone": app.PaymentTone,
	"signedIn":    func(s auth.State) bool { return s.Status == auth.StatusAuthenticated },
	"is": func(s auth.State, role string) bool {
		return s.Status == auth.StatusAuthenticated && s.Role == domain.Role(role)
	},
	"add": func(a, b int) int { return a + b },
	"pageURL": func(base string, q url.Values, page int) string {
		v := url.Values{}
		for k, vs := range q {
			v[k] = vs
		}
		v.Set("page", fmt.Sprint(page))
		return base + "?" + v.Encode()
	},
	"contains": func(list []string, s string) bool {
		for _, x := range list {
			if x == s {
				return true
			}
		}
		return false
	},
	"split": func(s string) []string {
		var out []string
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	},
}

func NewRenderer() (*Renderer, error) {
	layout, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, err
	}
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	rd := &Renderer{pages: map[string]*template.Template{}}
	for _, f := range files {
		name := strings.TrimSuffix(path.Base(f), ".html")
		if name == "layout" {
			continue
		}
		t, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f, err)
		}
		rd.pages[name] = t
	}
	return rd, nil
}

// Page renders into a buffer first so a template error never leaves a half-written page.
func (rd *Renderer) Page(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	t, ok := rd.pages[name]
	if !ok {
		log.Error().Str("page", name).Msg("unknown page template")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	v := view{Title: title, State: stateFrom(r.Context()), Path: r.URL.Path, Data: data}
	if err := t.ExecuteTemplate(&buf, "layout", v); err != nil {
		log.Error().Err(err).Str("page", name).Msg("render failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Str("page", name).Msg("write page failed")
	}
}
