// Package markup wraps the HTML5 tree builder used by every stage of the
// site pipeline. Parsing never fails: malformed input is repaired the way a
// browser would repair it.
package markup

import (
	"bytes"
	"log"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is a mutable HTML tree owned by one pipeline stage at a time.
type Document struct {
	*goquery.Document
}

// Parse builds a Document from src.
func Parse(src string) *Document {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		// Only reader errors surface here; a strings.Reader has none.
		log.Printf("WARN: html parse failed, using empty document: %v", err)
		root, _ = html.Parse(strings.NewReader(""))
	}
	return &Document{goquery.NewDocumentFromNode(root)}
}

// Serialize renders the whole document, doctype included.
func (d *Document) Serialize() string {
	var buf bytes.Buffer
	for _, n := range d.Nodes {
		if err := html.Render(&buf, n); err != nil {
			log.Printf("WARN: html render stopped early: %v", err)
			break
		}
	}
	return buf.String()
}

// Serialize is the function form of (*Document).Serialize.
func Serialize(d *Document) string {
	return d.Serialize()
}

// Clone returns an independent copy of the document.
func (d *Document) Clone() *Document {
	return Parse(d.Serialize())
}

// Head returns the <head> element; the tree builder always creates one.
func (d *Document) Head() *goquery.Selection {
	return d.Find("head").First()
}

// Body returns the <body> element.
func (d *Document) Body() *goquery.Selection {
	return d.Find("body").First()
}

var (
	htmlFence  = regexp.MustCompile("```html\\s*")
	bareFence  = regexp.MustCompile("```\\s*")
	leadFence  = regexp.MustCompile("^\\s*```html\\s*")
	trailFence = regexp.MustCompile("\\s*```\\s*$")
)

// StripCodeFences removes every markdown fence marker (```html, ```) from text.
func StripCodeFences(text string) string {
	text = htmlFence.ReplaceAllString(text, "")
	text = bareFence.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// TrimOuterFence removes a single leading ```html and trailing ``` pair,
// leaving fences inside the markup alone.
func TrimOuterFence(text string) string {
	text = leadFence.ReplaceAllString(text, "")
	text = trailFence.ReplaceAllString(text, "")
	return text
}

const responseSeparator = "\n---\n"

// SplitResponse separates the model's code from the markdown explanation it
// writes after a line containing only "---".
func SplitResponse(text string) (code, description string) {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, responseSeparator); idx >= 0 {
		return strings.TrimSpace(text[:idx]), strings.TrimSpace(text[idx+len(responseSeparator):])
	}
	return text, ""
}
