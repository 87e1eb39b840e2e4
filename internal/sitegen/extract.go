package sitegen

import (
	"strings"

	"sitegen_server/internal/markup"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	StylesheetFile = "styles.css"
	ScriptFile     = "scripts.js"
	IndexFile      = "index.html"
)

const assetSeparator = "\n\n"

// Extraction holds the inline CSS and JS pulled out of one document.
// It belongs to the request that produced it.
type Extraction struct {
	CSS string
	JS  string
}

// ExtractAssets runs the CSS pass and then the JS pass over doc.
func ExtractAssets(doc *markup.Document) Extraction {
	return Extraction{
		CSS: ExtractCSS(doc),
		JS:  ExtractJS(doc),
	}
}

// ExtractCSS removes every <style> element, returning the non-empty ones'
// text joined by a blank line. When anything was captured a link to
// styles.css becomes the first child of <head>.
func ExtractCSS(doc *markup.Document) string {
	var parts []string
	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		if text := s.Text(); text != "" {
			parts = append(parts, text)
		}
		s.Remove()
	})

	if len(parts) == 0 {
		return ""
	}
	doc.Head().PrependNodes(elementNode(atom.Link, "link",
		html.Attribute{Key: "rel", Val: "stylesheet"},
		html.Attribute{Key: "href", Val: StylesheetFile},
	))
	return strings.Join(parts, assetSeparator)
}

// ExtractJS removes every inline <script> without a src attribute and
// returns their text joined by a blank line. External scripts stay put.
// When anything was captured a scripts.js include is appended to <body>.
func ExtractJS(doc *markup.Document) string {
	var parts []string
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if _, external := s.Attr("src"); external {
			return
		}
		text := s.Text()
		if text == "" {
			return
		}
		parts = append(parts, text)
		s.Remove()
	})

	if len(parts) == 0 {
		return ""
	}
	doc.Body().AppendNodes(elementNode(atom.Script, "script",
		html.Attribute{Key: "src", Val: ScriptFile},
	))
	return strings.Join(parts, assetSeparator)
}

func elementNode(a atom.Atom, tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     tag,
		Attr:     attrs,
	}
}
