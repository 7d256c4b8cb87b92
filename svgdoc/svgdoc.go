// Package svgdoc is an in-memory SVG tree, used as
// the element factory of the card composer, and
// serialized as XML (optionally gzipped).
package svgdoc

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/benoitkugler/missioncard/svgcard"
	"github.com/klauspost/compress/gzip"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// Node is an SVG element. Attributes keep their insertion order.
type Node struct {
	Tag      string
	Attrs    []xml.Attr
	Children []*Node
	Text     string
}

// Document creates Nodes.
type Document struct{}

var _ svgcard.ElementFactory = Document{}

func (Document) CreateElement(tag string) svgcard.Element { return &Node{Tag: tag} }

// SetAttribute adds or replaces the attribute `name`.
func (n *Node) SetAttribute(name, value string) {
	for i, attr := range n.Attrs {
		if attr.Name.Local == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
}

// AppendChild panics if `child` was not created by a Document.
func (n *Node) AppendChild(child svgcard.Element) {
	n.Children = append(n.Children, child.(*Node))
}

func (n *Node) SetText(text string) { n.Text = text }

// Attr returns the value of the attribute `name`.
func (n *Node) Attr(name string) (string, bool) {
	for _, attr := range n.Attrs {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Walk calls fn for n and its descendants, in document order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// MarshalXML implements xml.Marshaler.
func (n *Node) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: n.Tag}, Attr: n.Attrs}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if n.Text != "" {
		if err := e.EncodeToken(xml.CharData(n.Text)); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := e.Encode(c); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// Encode writes the XML document rooted at `root`, adding
// the SVG namespace if needed.
func Encode(w io.Writer, root *Node) error {
	if _, ok := root.Attr("xmlns"); !ok {
		withNS := *root
		withNS.Attrs = append([]xml.Attr{{Name: xml.Name{Local: "xmlns"}, Value: svgNamespace}}, root.Attrs...)
		root = &withNS
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(root); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Write encodes `root` to `w`, gzip compressed if `compress` is true (.svgz).
func Write(w io.Writer, root *Node, compress bool) error {
	if !compress {
		return Encode(w, root)
	}
	gz := gzip.NewWriter(w)
	if err := Encode(gz, root); err != nil {
		return err
	}
	return gz.Close()
}

// WriteFile creates or truncates the file at `path`.
func WriteFile(path string, root *Node, compress bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, root, compress); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
