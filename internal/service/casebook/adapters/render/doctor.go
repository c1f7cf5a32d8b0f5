package render

import (
	"strings"

	"github.com/scarevision/casebook/internal/service/casebook/domain/record"
)

// renderDoctor fills the role player brief: instructions, history, ICE and
// reactions.
func (r *Renderer) renderDoctor(doc *Document, records []record.Record) {
	f := r.fields.Doctor

	if n := r.target(doc, "instructions"); n != nil {
		r.rich.set(n, strings.Join(record.CollectAndSortStrings(records, f.Instructions), "<br>"))
	}
	if n := r.target(doc, "openingSentence"); n != nil {
		r.rich.set(n, strings.Join(record.CollectAndSortStrings(records, f.OpeningSentence), "<br>"))
	}

	if n := r.target(doc, "openHistory"); n != nil {
		fillParagraphs(n, record.CollectAndSortStrings(records, f.DivulgeFreely))
	}
	if n := r.target(doc, "historyIfAsked"); n != nil {
		fillParagraphs(n, record.CollectAndSortStrings(records, f.DivulgeAsked))
	}
	if n := r.target(doc, "socialHistory"); n != nil {
		fillList(n, record.CollectAndSortStrings(records, f.SocialHistory))
	}
	if n := r.target(doc, "pastMedicalHistory"); n != nil {
		fillList(n, record.CollectAndSortStrings(records, f.PMHx))
	}
	if n := r.target(doc, "familyHistory"); n != nil {
		fillList(n, record.CollectAndSortStrings(records, f.FamilyHistory))
	}

	// ICE rows are ideas, concerns and expectations in order.
	ice := record.CollectAndSortStrings(records, f.ICE)
	for i, id := range []string{"ideas", "concerns", "expectations"} {
		if n := r.target(doc, id); n != nil {
			r.rich.set(n, at(ice, i))
		}
	}

	if n := r.target(doc, "reactionContent"); n != nil {
		clearChildren(n)
		for _, reaction := range record.CollectAndSortStrings(records, f.Reaction) {
			n.AppendChild(appendTo(el("div", "class", "reaction-item"), textNode(reaction)))
		}
	}
}
