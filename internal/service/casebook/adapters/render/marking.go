package render

import (
	"fmt"
	"strconv"

	"golang.org/x/net/html"

	"github.com/scarevision/casebook/internal/service/casebook/domain/marking"
	"github.com/scarevision/casebook/internal/service/casebook/domain/record"
)

// renderMarking builds the three rubric checklists. Checkboxes carry their
// section, polarity and checklist position as data attributes; the scoring
// client posts those back instead of calling named global functions.
func (r *Renderer) renderMarking(doc *Document, records []record.Record) {
	for _, section := range marking.Sections {
		r.renderCriteria(doc, records, section)
	}
}

func (r *Renderer) renderCriteria(doc *Document, records []record.Record, section marking.Section) {
	fields := r.fields.Marking.For(section)
	positiveList := r.target(doc, string(section)+"PositiveList")
	negativeList := r.target(doc, string(section)+"NegativeList")
	if positiveList == nil || negativeList == nil {
		return
	}
	clearChildren(positiveList)
	clearChildren(negativeList)

	var valid []record.Record
	for _, rec := range records {
		if record.Truthy(rec.Get(fields.Positive)) || record.Truthy(rec.Get(fields.Negative)) {
			valid = append(valid, rec)
		}
	}

	positives, negatives := 0, 0
	for _, rec := range record.SortByOrder(valid) {
		for _, item := range record.Strings(rec.Get(fields.Positive)) {
			positiveList.AppendChild(r.criterion(section, marking.Positive, positives, item))
			positives++
		}
		for _, item := range record.Strings(rec.Get(fields.Negative)) {
			negativeList.AppendChild(r.criterion(section, marking.Negative, negatives, item))
			negatives++
		}
	}

	if n := r.target(doc, string(section)+"Score"); n != nil {
		setText(n, "Score: 0")
	}
	if n := r.target(doc, string(section)+"Result"); n != nil {
		setText(n, marking.StartMarking.Label)
		setClasses(n, marking.BandClasses, marking.StartMarking.Class)
	}
}

func (r *Renderer) criterion(section marking.Section, polarity marking.Polarity, index int, label string) *html.Node {
	kind := "Positive"
	if polarity == marking.Negative {
		kind = "Negative"
	}
	id := fmt.Sprintf("%s%s%d", section, kind, index+1)

	input := el("input",
		"type", "checkbox",
		"id", id,
		"data-section", string(section),
		"data-polarity", string(polarity),
		"data-index", strconv.Itoa(index))
	lbl := el("label", "for", id, "class", string(polarity))
	r.rich.append(lbl, label)

	return appendTo(el("li", "class", "criteria-item"), input, lbl)
}
