package render

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/scarevision/casebook/internal/service/casebook/domain/record"
)

const imageStyle = "width:100%;max-width:800px;height:auto;display:block;margin:10px auto"

// renderPatient fills the candidate instructions: patient details, medical
// notes with their photos, and results.
func (r *Renderer) renderPatient(doc *Document, records []record.Record) {
	f := r.fields.Patient

	if n := r.target(doc, "patientName"); n != nil {
		setText(n, joinOr(record.CollectAndSortStrings(records, f.Name), ", ", "N/A"))
	}
	if n := r.target(doc, "patientAge"); n != nil {
		setText(n, joinOr(record.CollectAndSortStrings(records, f.Age), ", ", "N/A"))
	}
	if n := r.target(doc, "patientPMHx"); n != nil {
		fillList(n, record.CollectAndSortStrings(records, f.PMHx))
	}
	if n := r.target(doc, "patientDHx"); n != nil {
		fillList(n, record.CollectAndSortStrings(records, f.DHx))
	}

	if n := r.target(doc, "medicalNotes"); n != nil {
		notes := record.CollectAndSortStrings(records, f.MedicalNotes)
		contents := record.CollectAndSortStrings(records, f.MedicalNotesContent)
		photos := record.CollectAndSortValues(records, f.NotesPhoto)

		clearChildren(n)
		for i, note := range notes {
			r.appendTitledBlock(n, note, at(contents, i), "quote-box-medical")
			if i < len(photos) {
				for _, photo := range record.WithURL(record.Attachments(photos[i])) {
					n.AppendChild(el("img",
						"src", photo.URL,
						"alt", "Medical Notes Image",
						"style", imageStyle))
				}
			}
		}
	}

	if n := r.target(doc, "resultsContent"); n != nil {
		results := record.CollectAndSortStrings(records, f.Results)
		contents := record.CollectAndSortStrings(records, f.ResultsContent)

		clearChildren(n)
		for i, result := range results {
			r.appendTitledBlock(n, result, at(contents, i), "quote-box-results")
		}
	}
}

// appendTitledBlock appends an underlined title followed by a quote box whose
// line breaks are preserved.
func (r *Renderer) appendTitledBlock(parent *html.Node, title, content, boxClass string) {
	parent.AppendChild(appendTo(el("div", "class", "underline"), textNode(title)))
	box := el("div", "class", "quote-box "+boxClass)
	r.rich.append(box, strings.ReplaceAll(content, "\n", "<br>")+"<br>")
	parent.AppendChild(box)
}

// fillList replaces the children of a list with one li per item.
func fillList(list *html.Node, items []string) {
	clearChildren(list)
	for _, item := range items {
		list.AppendChild(appendTo(el("li"), textNode(item)))
	}
}

func fillParagraphs(n *html.Node, items []string) {
	clearChildren(n)
	for _, item := range items {
		n.AppendChild(appendTo(el("p", "class", "paragraph"), textNode(item)))
	}
}

func joinOr(items []string, sep, fallback string) string {
	if s := strings.Join(items, sep); s != "" {
		return s
	}
	return fallback
}

func at(items []string, i int) string {
	if i < len(items) {
		return items[i]
	}
	return ""
}
