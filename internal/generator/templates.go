package generator

import (
	"bytes"
	"embed"
	"fmt"
	"sync"
	"text/template"

	"github.com/cockroachdb/errors"
)

const (
	tmplClass  = "class"
	tmplEnum   = "enum"
	tmplAlias  = "alias"
	tmplHeader = "header"
	tmplLoader = "loader"
)

const templatePattern = "templates/*.gtpl"

//go:embed templates/*.gtpl
var templatesFS embed.FS

var (
	bodyTmpl     *template.Template
	tmplInitOnce sync.Once
	tmplInitErr  error
)

// validateTemplates ensures all required templates are defined
func validateTemplates() error {
	requiredTemplates := []string{
		tmplClass,
		tmplEnum,
		tmplAlias,
		tmplHeader,
		tmplLoader,
	}
	for _, name := range requiredTemplates {
		if bodyTmpl.Lookup(name) == nil {
			return fmt.Errorf("required template %q not found", name)
		}
	}
	return nil
}

// ensureTemplates parses and validates templates exactly once.
func ensureTemplates() error {
	tmplInitOnce.Do(func() {
		var t *template.Template
		t, tmplInitErr = template.New(tmplClass).ParseFS(templatesFS, templatePattern)
		if tmplInitErr != nil {
			return
		}
		bodyTmpl = t
		tmplInitErr = validateTemplates()
	})
	return tmplInitErr
}

// execTemplate renders one named template into a string.
func execTemplate(name string, data any) (string, error) {
	if err := ensureTemplates(); err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := bodyTmpl.ExecuteTemplate(&out, name, data); err != nil {
		return "", errors.Wrapf(err, "executing template %s", name)
	}
	return out.String(), nil
}
