package source

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/jmcrae/rubrica/model"
)

// DecodeHOCR builds a document from hOCR markup, the HTML-based
// positioned-text format emitted by recognition tools. Pages come from
// elements with class "ocr_page", words from class "ocrx_word"; both
// carry their geometry in a title attribute's bbox property.
func DecodeHOCR(data []byte) (*model.Document, error) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse hOCR: %w", err)
	}

	doc := model.NewDocument()
	walkHOCR(root, doc, nil)
	if doc.PageCount() == 0 {
		return nil, fmt.Errorf("hOCR input has no ocr_page elements")
	}
	return doc, nil
}

// walkHOCR descends the parsed tree, opening a page on each ocr_page
// element and collecting ocrx_word spans into the current page
func walkHOCR(n *html.Node, doc *model.Document, current *model.Page) {
	if n.Type == html.ElementNode {
		switch {
		case hasClass(n, "ocr_page"):
			if rect, ok := bboxFromTitle(attr(n, "title")); ok {
				current = model.NewPage(rect.Width(), rect.Height())
			} else {
				current = model.NewPage(612, 792)
			}
			doc.AddPage(current)

		case hasClass(n, "ocrx_word") && current != nil:
			if rect, ok := bboxFromTitle(attr(n, "title")); ok {
				if text := strings.TrimSpace(nodeText(n)); text != "" {
					current.AddWord(text, rect)
				}
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkHOCR(c, doc, current)
	}
}

// bboxFromTitle extracts the "bbox x0 y0 x1 y1" property from an hOCR
// title attribute, whose properties are semicolon-separated
func bboxFromTitle(title string) (model.Rect, bool) {
	for _, prop := range strings.Split(title, ";") {
		fields := strings.Fields(strings.TrimSpace(prop))
		if len(fields) != 5 || fields[0] != "bbox" {
			continue
		}

		var coords [4]float64
		ok := true
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				ok = false
				break
			}
			coords[i] = v
		}
		if !ok {
			continue
		}
		return model.NewRect(coords[0], coords[1], coords[2], coords[3]), true
	}
	return model.Rect{}, false
}

// hasClass reports whether the element carries the CSS class
func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// attr returns the value of the named attribute, or ""
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// nodeText concatenates the text content beneath a node
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}
