package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed page that section handlers write into by element id.
type Document struct {
	root *html.Node
}

// ParseDocument parses a full HTML page.
func ParseDocument(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &Document{root: root}, nil
}

// ByID returns the first element with the given id, or nil.
func (d *Document) ByID(id string) *html.Node {
	return findElement(d.root, func(n *html.Node) bool { return attr(n, "id") == id })
}

func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// InnerHTML renders the children of the element with the given id.
func (d *Document) InnerHTML(id string) string {
	n := d.ByID(id)
	if n == nil {
		return ""
	}
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

func findElement(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, match); found != nil {
			return found
		}
	}
	return nil
}

// el builds an element. attrs are key, value pairs.
func el(tag string, attrs ...string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func appendTo(parent *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		parent.AppendChild(c)
	}
	return parent
}

func clearChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

// setText replaces all children with a single text node.
func setText(n *html.Node, s string) {
	clearChildren(n)
	if s != "" {
		n.AppendChild(textNode(s))
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Key != key {
			out = append(out, a)
		}
	}
	n.Attr = out
}

func setClasses(n *html.Node, remove []string, add ...string) {
	drop := make(map[string]bool, len(remove)+len(add))
	for _, c := range remove {
		drop[c] = true
	}
	for _, c := range add {
		drop[c] = true
	}
	var kept []string
	for _, c := range strings.Fields(attr(n, "class")) {
		if !drop[c] {
			kept = append(kept, c)
		}
	}
	kept = append(kept, add...)
	if len(kept) == 0 {
		removeAttr(n, "class")
		return
	}
	setAttr(n, "class", strings.Join(kept, " "))
}

// richText sanitises markup that the record service stores as HTML and
// appends the resulting nodes to parent.
type richText struct {
	policy *bluemonday.Policy
}

func newRichText() richText {
	p := bluemonday.UGCPolicy()
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return richText{policy: p}
}

func (rt richText) append(parent *html.Node, markup string) {
	if markup == "" {
		return
	}
	clean := rt.policy.Sanitize(markup)
	nodes, err := html.ParseFragment(strings.NewReader(clean), parent)
	if err != nil {
		parent.AppendChild(textNode(markup))
		return
	}
	for _, n := range nodes {
		parent.AppendChild(n)
	}
}

// set replaces the children of n with sanitised markup.
func (rt richText) set(n *html.Node, markup string) {
	clearChildren(n)
	rt.append(n, markup)
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
