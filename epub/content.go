package epub

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/beevik/etree"
	"github.com/fwojciec/cfiloc"
	"golang.org/x/net/html"
)

// node is the part of a content document that CFI steps are computed over:
// elements and runs of character data. Comments and processing instructions
// are dropped and adjacent text is merged.
type node struct {
	tag      string // lower-cased local name; empty for text
	text     string
	children []*node
}

func (n *node) isText() bool {
	return n.tag == ""
}

// blockTags are elements that start a new paragraph.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"body": true, "caption": true, "center": true, "dd": true, "div": true,
	"dl": true, "dt": true, "figcaption": true, "figure": true, "footer": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "li": true, "nav": true, "ol": true, "p": true, "pre": true,
	"section": true, "table": true, "tbody": true, "td": true, "tfoot": true,
	"th": true, "thead": true, "tr": true, "ul": true,
}

// skipTags never contribute text.
var skipTags = map[string]bool{
	"head": true, "script": true, "style": true, "svg": true, "math": true,
}

// extractParagraphs parses a content document and returns its paragraphs
// with CFIs prefixed by the spine steps.
func extractParagraphs(data []byte, prefix string) ([]cfiloc.Paragraph, error) {
	root, err := parseXHTML(data)
	if err != nil {
		if root, err = parseHTML(data); err != nil {
			return nil, err
		}
	}

	w := &walker{}
	elems := 0
	for _, child := range root.children {
		if child.isText() {
			continue
		}
		elems++
		if child.tag == "body" {
			w.walk(child, prefix+"/"+strconv.Itoa(2*elems))
			break
		}
	}
	return w.paragraphs, nil
}

// parseXHTML reads a well-formed content document, resolving HTML entities.
func parseXHTML(data []byte) (*node, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Entity = xml.HTMLEntity
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	root := doc.Root()
	if root == nil {
		return nil, cfiloc.Errorf(cfiloc.EINVALID, "content document has no root element")
	}
	return fromElement(root), nil
}

func fromElement(e *etree.Element) *node {
	n := &node{tag: strings.ToLower(e.Tag)}
	for _, tok := range e.Child {
		switch t := tok.(type) {
		case *etree.Element:
			n.children = append(n.children, fromElement(t))
		case *etree.CharData:
			n.appendText(t.Data)
		}
	}
	return n
}

// parseHTML reads a content document that is not well-formed XML.
func parseHTML(data []byte) (*node, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, cfiloc.Errorf(cfiloc.EINVALID, "failed to parse content document: %v", err)
	}
	sel := doc.Find("html").First()
	if sel.Length() == 0 {
		return nil, cfiloc.Errorf(cfiloc.EINVALID, "content document has no html element")
	}
	return fromHTML(sel.Get(0)), nil
}

func fromHTML(h *html.Node) *node {
	n := &node{tag: strings.ToLower(h.Data)}
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			n.children = append(n.children, fromHTML(c))
		case html.TextNode:
			n.appendText(c.Data)
		}
	}
	return n
}

func (n *node) appendText(s string) {
	if k := len(n.children); k > 0 && n.children[k-1].isText() {
		n.children[k-1].text += s
		return
	}
	n.children = append(n.children, &node{text: s})
}

type walker struct {
	paragraphs []cfiloc.Paragraph
}

// walk emits n as one paragraph when it holds text but no nested blocks, and
// otherwise descends, emitting loose text runs on their own.
func (w *walker) walk(n *node, path string) {
	if skipTags[n.tag] {
		return
	}

	if !hasBlock(n) {
		if text := textContent(n); strings.TrimSpace(text) != "" {
			w.emit(text, path+"/1:0")
		}
		return
	}

	// The k-th child element is step 2k; text before it is step 2k-1.
	elems := 0
	for _, c := range n.children {
		if c.isText() {
			if strings.TrimSpace(c.text) != "" {
				w.emit(c.text, path+"/"+strconv.Itoa(2*elems+1)+":0")
			}
			continue
		}
		elems++
		w.walk(c, path+"/"+strconv.Itoa(2*elems))
	}
}

func (w *walker) emit(text, location string) {
	w.paragraphs = append(w.paragraphs, cfiloc.Paragraph{Text: text, Location: location})
}

// hasBlock reports whether any descendant of n is a block element.
func hasBlock(n *node) bool {
	for _, c := range n.children {
		if c.isText() || skipTags[c.tag] {
			continue
		}
		if blockTags[c.tag] || hasBlock(c) {
			return true
		}
	}
	return false
}

func textContent(n *node) string {
	if n.isText() {
		return n.text
	}
	var b strings.Builder
	for _, c := range n.children {
		if !c.isText() && skipTags[c.tag] {
			continue
		}
		b.WriteString(textContent(c))
	}
	return b.String()
}
