// Package render drives the final page assembly: it stamps the page template
// around the document's own render and writes the output file.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"git.home.luguber.info/inful/homer/internal/config"
	"git.home.luguber.info/inful/homer/internal/model"
	"git.home.luguber.info/inful/homer/internal/stamper"
	"git.home.luguber.info/inful/homer/internal/theme"
)

// Writer renders a document to the configured output path.
type Writer struct {
	cfg       *config.Config
	templates theme.Set
	now       func() time.Time
}

// NewWriter creates a writer for the given configuration and resolved
// template set.
func NewWriter(cfg *config.Config, templates theme.Set) *Writer {
	return &Writer{cfg: cfg, templates: templates, now: time.Now}
}

// Render produces the full page without touching the filesystem output.
// The @GENERATED_DATE on the page level is the write time, not the document
// creation time.
func (w *Writer) Render(doc *model.Document) (string, error) {
	opts := model.RenderOptions{
		Templates: w.templates,
		Markdown:  w.cfg.Render.MarkdownDescriptions,
	}

	body, err := doc.Render(opts)
	if err != nil {
		return "", err
	}

	return stamper.StampFile(w.templates.Page, []stamper.Token{
		{Placeholder: "@HOMER_MODEL", Value: body},
		{Placeholder: "@TITLE", Value: w.cfg.Page.Title},
		{Placeholder: "@SUBTITLE", Value: w.cfg.Page.Subtitle},
		{Placeholder: "@TOTAL_GROUPS", Value: strconv.Itoa(doc.TotalGroups())},
		{Placeholder: "@TOTAL_LINKS", Value: strconv.Itoa(doc.TotalLinks())},
		{Placeholder: "@GENERATED_DATE", Value: w.now().Format(model.GeneratedDateFormat)},
	})
}

// Write renders the document and overwrites the configured output path.
// The write is atomic so a failure never leaves a truncated page behind.
func (w *Writer) Write(doc *model.Document) error {
	page, err := w.Render(doc)
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(w.cfg.Output, strings.NewReader(page)); err != nil {
		return fmt.Errorf("write output %s: %w", w.cfg.Output, err)
	}
	return nil
}
