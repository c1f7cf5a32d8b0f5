package render

import (
	"strings"

	"github.com/scarevision/casebook/internal/service/casebook/domain/record"
)

func (r *Renderer) renderExplanation(doc *Document, records []record.Record) {
	if n := r.target(doc, "explanation"); n != nil {
		r.rich.set(n, strings.Join(record.CollectAndSortStrings(records, r.fields.Explanation.Text), "<br>"))
	}
}
