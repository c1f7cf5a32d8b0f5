// Package render paints case records into the case page template. Each page
// section is an independent handler of the data ready signal that clears its
// targets and repopulates them, so raising the signal again is harmless.
package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/scarevision/casebook/internal/service/casebook/domain/record"
	"github.com/scarevision/casebook/internal/service/casebook/domain/schema"
)

//go:embed templates/case.html
var caseTemplate []byte

// Markdown converts markdown source to HTML. A nil Markdown makes the
// assessment section emit its text verbatim.
type Markdown func(src string) (string, error)

// Goldmark returns a GitHub flavoured markdown converter. Raw HTML in the
// source is dropped.
func Goldmark() Markdown {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	return func(src string) (string, error) {
		var buf bytes.Buffer
		if err := md.Convert([]byte(src), &buf); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
}

// Section is one named handler writing into a document.
type Section struct {
	Name   string
	Render func(doc *Document, records []record.Record)
}

type Renderer struct {
	fields   schema.Schema
	markdown Markdown
	rich     richText
	template []byte
	logger   *zap.Logger
}

type Option func(*Renderer)

// WithTemplate replaces the embedded case page.
func WithTemplate(page []byte) Option {
	return func(r *Renderer) { r.template = page }
}

func WithMarkdown(md Markdown) Option {
	return func(r *Renderer) { r.markdown = md }
}

func NewRenderer(fields schema.Schema, logger *zap.Logger, opts ...Option) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Renderer{
		fields:   fields,
		markdown: Goldmark(),
		rich:     newRichText(),
		template: caseTemplate,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewDocument parses a fresh copy of the page template.
func (r *Renderer) NewDocument() (*Document, error) {
	return ParseDocument(bytes.NewReader(r.template))
}

// Sections returns the seven page sections.
func (r *Renderer) Sections() []Section {
	return []Section{
		{Name: "Candidate Instructions", Render: r.renderPatient},
		{Name: "Doctor Instructions", Render: r.renderDoctor},
		{Name: "Marking", Render: r.renderMarking},
		{Name: "Key Issues", Render: r.renderKeyIssues},
		{Name: "Explanation", Render: r.renderExplanation},
		{Name: "Assessment / Management", Render: r.renderAssessment},
		{Name: "References", Render: r.renderReferences},
	}
}

// Bind registers sections as listeners writing into doc. An empty record
// set aborts that section only.
func (r *Renderer) Bind(sig *Signal, doc *Document, sections []Section) {
	for _, sec := range sections {
		sec := sec
		sig.Listen(sec.Name, func(records []record.Record) {
			if len(records) == 0 {
				r.logger.Warn("no records found or failed to fetch records", zap.String("section", sec.Name))
				return
			}
			sec.Render(doc, records)
		})
	}
}

// RenderPage renders records into a fresh template and writes the page.
func (r *Renderer) RenderPage(w io.Writer, records []record.Record) error {
	doc, err := r.NewDocument()
	if err != nil {
		return err
	}
	// Records are loaded before the sections attach, so they catch up on
	// the signal instead of waiting for it.
	sig := NewSignal(r.logger)
	sig.Publish(records)
	r.Bind(sig, doc, r.Sections())
	sig.Catchup()
	if len(records) == 0 {
		r.logger.Warn("no records to render")
	}
	if err := doc.Render(w); err != nil {
		return fmt.Errorf("render case page: %w", err)
	}
	return nil
}

// target looks up a section target. A missing target is not an error: the
// sub-section is skipped.
func (r *Renderer) target(doc *Document, id string) *html.Node {
	n := doc.ByID(id)
	if n == nil {
		r.logger.Debug("render target missing", zap.String("id", id))
	}
	return n
}
