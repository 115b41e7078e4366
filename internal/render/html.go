package render

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/tejusbharadwaj/weatherboard/internal/formatter"
)

const (
	DefaultTemplatePath = "templates/weather.html"
	DefaultOutputPath   = "weather/weather.html"

	templateCacheSize = 8
)

// HTML renders the report through an html/template file and writes the result.
type HTML struct {
	TemplatePath string
	OutputPath   string

	// Parsed templates, keyed by path. Scheduled runs re-render often and the
	// template only changes when someone edits it.
	templates *lru.Cache
}

type cachedTemplate struct {
	tmpl    *template.Template
	modTime time.Time
}

func NewHTML(templatePath, outputPath string) (*HTML, error) {
	cache, err := lru.New(templateCacheSize)
	if err != nil {
		return nil, err
	}
	if templatePath == "" {
		templatePath = DefaultTemplatePath
	}
	if outputPath == "" {
		outputPath = DefaultOutputPath
	}
	return &HTML{
		TemplatePath: templatePath,
		OutputPath:   outputPath,
		templates:    cache,
	}, nil
}

func (h *HTML) Name() string {
	return "html"
}

// Render executes the template into memory first so a broken template never
// leaves a half-written report behind.
func (h *HTML) Render(report *formatter.Report) (string, error) {
	tmpl, err := h.load()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, report.TemplateContext()); err != nil {
		return "", fmt.Errorf("%w: executing %s: %v", ErrRender, h.TemplatePath, err)
	}

	if err := os.MkdirAll(filepath.Dir(h.OutputPath), 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.WriteFile(h.OutputPath, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}

	return h.OutputPath, nil
}

func (h *HTML) load() (*template.Template, error) {
	info, err := os.Stat(h.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("%w: template %s: %v", ErrRender, h.TemplatePath, err)
	}

	if v, ok := h.templates.Get(h.TemplatePath); ok {
		cached := v.(cachedTemplate)
		if cached.modTime.Equal(info.ModTime()) {
			return cached.tmpl, nil
		}
	}

	tmpl, err := template.New(filepath.Base(h.TemplatePath)).
		Option("missingkey=error").
		ParseFiles(h.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrRender, h.TemplatePath, err)
	}

	h.templates.Add(h.TemplatePath, cachedTemplate{tmpl: tmpl, modTime: info.ModTime()})
	return tmpl, nil
}
