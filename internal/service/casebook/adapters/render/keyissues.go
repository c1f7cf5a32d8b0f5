package render

import (
	"github.com/scarevision/casebook/internal/service/casebook/domain/record"
)

// renderKeyIssues joins three separately ordered lists on their Order value.
// The first relevance and mapping sharing an issue's order win.
func (r *Renderer) renderKeyIssues(doc *Document, records []record.Record) {
	n := r.target(doc, "keyIssuesContent")
	if n == nil {
		return
	}
	f := r.fields.KeyIssues
	issues := record.CollectAndSortKeyed(records, f.Text)
	relevance := record.CollectAndSortKeyed(records, f.Relevance)
	mapping := record.CollectAndSortKeyed(records, f.Mapping)

	clearChildren(n)
	for _, issue := range issues {
		heading := appendTo(el("div", "class", "bold-dark-green"), el("br"))
		r.rich.append(heading, record.Text(issue.Value))
		n.AppendChild(heading)

		box := el("div", "class", "key-issues-quote-box")
		box.AppendChild(appendTo(el("span", "class", "bold-dark-green"), textNode("Relevance:")))
		box.AppendChild(textNode(" "))
		r.rich.append(box, matchOrder(relevance, issue.Order))
		box.AppendChild(el("br"))
		box.AppendChild(appendTo(el("span", "class", "bold-dark-green"), textNode("Mapping:")))
		box.AppendChild(textNode(" "))
		r.rich.append(box, matchOrder(mapping, issue.Order))
		n.AppendChild(box)
	}
}

func matchOrder(items []record.OrderedItem[any], order float64) string {
	for _, it := range items {
		if it.Order == order {
			return record.Text(it.Value)
		}
	}
	return ""
}
