package render

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/scarevision/casebook/internal/service/casebook/domain/record"
)

const managementImageStyle = "width:100%;max-width:100%;height:auto;display:block;margin:10px auto"

// blockStart matches text that opens a list item or heading.
var blockStart = regexp.MustCompile(`^\s*(?:[-*+]\s|\d+\.\s|#{1,6}\s)`)

type managementEntry struct {
	texts  []string
	images []record.Attachment
}

// renderAssessment renders the combined assessment text followed by one
// block per management order, each carrying its own images.
func (r *Renderer) renderAssessment(doc *Document, records []record.Record) {
	box := r.target(doc, "assessmentManagement")
	if box == nil {
		return
	}
	f := r.fields.Assessment

	assessment := record.CollectAndSortStrings(records, f.Assessment)

	byOrder := make(map[float64]*managementEntry)
	for _, rec := range records {
		order, ok := rec.Order()
		if !ok {
			continue
		}
		text := rec.Get(f.Management)
		images := record.WithURL(record.Attachments(rec.Get(f.ManagementImage)))
		if !record.Truthy(text) && len(images) == 0 {
			continue
		}
		entry, ok := byOrder[order]
		if !ok {
			entry = &managementEntry{}
			byOrder[order] = entry
		}
		if record.Truthy(text) {
			entry.texts = append(entry.texts, record.Text(text))
		}
		entry.images = append(entry.images, images...)
	}
	orders := make([]float64, 0, len(byOrder))
	for o := range byOrder {
		orders = append(orders, o)
	}
	sort.Float64s(orders)

	clearChildren(box)
	if len(assessment) == 0 && len(orders) == 0 {
		setAttr(box, "style", "display:none")
		return
	}
	removeAttr(box, "style")

	if len(assessment) > 0 {
		wrap := el("div", "class", "assessment-section")
		r.appendMarkdown(wrap, strings.Join(assessment, "\n\n"))
		box.AppendChild(wrap)
	}

	for _, order := range orders {
		entry := byOrder[order]
		section := el("div", "class", "management-section", "style", "margin-top:12px")
		if len(entry.texts) > 0 {
			text := el("div", "class", "management-text")
			r.appendMarkdown(text, strings.Join(entry.texts, "\n\n"))
			section.AppendChild(text)
		}
		if len(entry.images) > 0 {
			images := el("div", "class", "management-images")
			for _, img := range entry.images {
				alt := img.Filename
				if alt == "" {
					alt = "Management image"
				}
				images.AppendChild(el("img",
					"src", img.URL,
					"alt", alt,
					"loading", "lazy",
					"style", managementImageStyle))
			}
			section.AppendChild(images)
		}
		box.AppendChild(section)
	}
}

// appendMarkdown renders normalised markdown into parent. Without a
// converter, or when conversion fails, the text goes in as is.
func (r *Renderer) appendMarkdown(parent *html.Node, src string) {
	src = normalizeMarkdown(src)
	if r.markdown == nil {
		parent.AppendChild(textNode(src))
		return
	}
	out, err := r.markdown(src)
	if err != nil {
		r.logger.Warn("markdown conversion failed", zap.Error(err))
		parent.AppendChild(textNode(src))
		return
	}
	r.rich.append(parent, out)
	removeEmptyParagraphsAfterLists(parent)
}

// normalizeMarkdown turns single line breaks into paragraph breaks unless the
// next line opens a list item or heading.
func normalizeMarkdown(src string) string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\t", "  ")

	var b strings.Builder
	b.Grow(len(src) + len(src)/8)
	for i := 0; i < len(src); i++ {
		b.WriteByte(src[i])
		if src[i] != '\n' || i == 0 || src[i-1] == '\n' {
			continue
		}
		rest := src[i+1:]
		if strings.HasPrefix(rest, "\n") || blockStart.MatchString(rest) {
			continue
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func removeEmptyParagraphsAfterLists(root *html.Node) {
	var empty []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if c.Data == "p" {
				text := strings.TrimSpace(strings.ReplaceAll(textContent(c), "\u00a0", ""))
				if prev := previousElement(c); text == "" && prev != nil && (prev.Data == "ul" || prev.Data == "ol") {
					empty = append(empty, c)
				}
			}
			walk(c)
		}
	}
	walk(root)
	for _, p := range empty {
		p.Parent.RemoveChild(p)
	}
}

func previousElement(n *html.Node) *html.Node {
	for p := n.PrevSibling; p != nil; p = p.PrevSibling {
		if p.Type == html.ElementNode {
			return p
		}
	}
	return nil
}
