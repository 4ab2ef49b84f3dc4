package exporters

import (
	"bytes"
	"embed"
	"fmt"
	"sync"
	"text/template"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var (
	tmplMu    sync.Mutex
	tmplCache = make(map[string]*template.Template)
)

// renderTemplate renders an embedded template, parsing it once and
// caching the parse.
func renderTemplate(path string, data any) ([]byte, error) {
	tmplMu.Lock()
	tmpl, ok := tmplCache[path]
	if !ok {
		raw, err := templatesFS.ReadFile(path)
		if err != nil {
			tmplMu.Unlock()
			return nil, fmt.Errorf("failed to read template %s: %w", path, err)
		}
		tmpl, err = template.New(path).Parse(string(raw))
		if err != nil {
			tmplMu.Unlock()
			return nil, fmt.Errorf("failed to parse template %s: %w", path, err)
		}
		tmplCache[path] = tmpl
	}
	tmplMu.Unlock()

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template %s: %w", path, err)
	}
	return buf.Bytes(), nil
}
