package render

import (
	"html/template"
	"io"

	"github.com/pkg/errors"

	"github.com/kreyling/cragg/internal/dashboard"
	"github.com/kreyling/cragg/internal/jenkins"
)

// HTML renders d with the html/template tmpl, which uses [[ ]] delimiters.
func HTML(w io.Writer, tmpl []byte, d *dashboard.Dashboard, job jenkins.Job) error {
	t, err := template.New("dashboard").Delims("[[", "]]").Parse(string(tmpl))
	if err != nil {
		return errors.Wrap(err, "unable to parse dashboard template")
	}
	if err := t.Execute(w, NewPage(d, job)); err != nil {
		return errors.Wrap(err, "unable to render dashboard")
	}
	return nil
}
