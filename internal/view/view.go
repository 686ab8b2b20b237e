// Package view renders the HTML pages. Each page template is parsed
// together with the shared base layout and looked up by name.
package view

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = []string{
	"home",
	"users",
	"user_form",
	"user_edit",
	"user_detail",
	"post_form",
	"post_edit",
	"post_detail",
	"error",
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	templates map[string]*template.Template
}

func New() (*Renderer, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.ParseFS(templatesFS, "templates/base.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("view: parse %s: %w", page, err)
		}
		templates[page] = t
	}
	return &Renderer{templates: templates}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("view: unknown template %q", name)
	}
	return t.ExecuteTemplate(w, "base", data)
}

// HTTPErrorHandler renders errors as the error page instead of echo's
// default JSON body.
func HTTPErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		message := http.StatusText(code)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if msg, ok := he.Message.(string); ok {
				message = msg
			}
		}
		if rerr := c.Render(code, "error", echo.Map{"Code": code, "Message": message}); rerr != nil {
			e.Logger.Error(rerr)
		}
	}
}
