package dom

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Node describes an element or text node to be built into the document.
// Text is always escaped on output; there is no raw-markup node.
type Node struct {
	Tag      string
	Text     string
	Attrs    []html.Attribute
	Children []Node
}

// El builds an element with an optional class list and children.
func El(tag, class string, children ...Node) Node {
	n := Node{Tag: tag, Children: children}
	if class != "" {
		n.Attrs = append(n.Attrs, html.Attribute{Key: "class", Val: class})
	}
	return n
}

// Text builds a text node.
func Text(s string) Node { return Node{Text: s} }

// Attr returns a copy of n with the attribute added.
func (n Node) Attr(key, val string) Node {
	attrs := make([]html.Attribute, 0, len(n.Attrs)+1)
	attrs = append(attrs, n.Attrs...)
	n.Attrs = append(attrs, html.Attribute{Key: key, Val: val})
	return n
}

// Icon builds a Font Awesome icon element.
func Icon(name, class string) Node {
	cls := "fas fa-" + name
	if class != "" {
		cls += " " + class
	}
	return El("i", cls)
}

// IsText reports whether n is a text node.
func (n Node) IsText() bool { return n.Tag == "" }

// HTML converts the description into a detached node tree.
func (n Node) HTML() *html.Node {
	if n.IsText() {
		return &html.Node{Type: html.TextNode, Data: n.Text}
	}
	tag := strings.ToLower(n.Tag)
	out := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     append([]html.Attribute(nil), n.Attrs...),
	}
	for _, c := range n.Children {
		out.AppendChild(c.HTML())
	}
	return out
}

// Render serializes nodes in order.
func Render(nodes ...Node) (string, error) {
	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n.HTML()); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
