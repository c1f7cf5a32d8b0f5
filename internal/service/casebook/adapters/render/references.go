package render

import (
	"strings"
	"time"

	"github.com/scarevision/casebook/internal/service/casebook/domain/record"
)

// InvalidDate is shown when no update date can be parsed.
const InvalidDate = "Invalid date"

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	"01/02/2006",
}

func (r *Renderer) renderReferences(doc *Document, records []record.Record) {
	f := r.fields.References

	if n := r.target(doc, "referenceContent"); n != nil {
		clearChildren(n)
		for _, rec := range record.SortByOrder(records) {
			if _, ok := rec.Order(); !ok || !record.Truthy(rec.Get(f.Reference)) {
				continue
			}
			item := el("div", "class", "reference-item")
			text := record.Text(rec.Get(f.Reference))
			if url := record.Text(rec.Get(f.URL)); url != "" {
				link := el("a", "href", url, "target", "_blank", "title", "Read more")
				link.AppendChild(textNode(text))
				item.AppendChild(link)
			} else {
				item.AppendChild(textNode(text))
			}
			n.AppendChild(item)
		}
	}

	if n := r.target(doc, "applicationContent"); n != nil {
		clearChildren(n)
		for _, app := range record.CollectAndSortStrings(records, f.Application) {
			n.AppendChild(appendTo(el("div", "class", "application-item"), textNode(app)))
		}
	}

	if n := r.target(doc, "lastUpdated"); n != nil {
		var dates []string
		for _, rec := range records {
			if v := rec.Get(f.Updated); record.Truthy(v) {
				dates = append(dates, record.Text(v))
			}
		}
		if len(dates) > 0 {
			setText(n, FormatMonthYear(latestDate(dates)))
		}
	}
}

// latestDate picks the most recent parseable date. With none parseable it
// returns the first value unchanged.
func latestDate(dates []string) string {
	if len(dates) == 0 {
		return ""
	}
	latest, pick := time.Time{}, dates[0]
	found := false
	for _, d := range dates {
		t, ok := parseDate(d)
		if !ok {
			continue
		}
		if !found || t.After(latest) {
			latest, pick, found = t, d, true
		}
	}
	return pick
}

// FormatMonthYear renders a date as "<Month> <Year>" in UTC, or InvalidDate.
func FormatMonthYear(s string) string {
	t, ok := parseDate(s)
	if !ok {
		return InvalidDate
	}
	return t.Format("January 2006")
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
