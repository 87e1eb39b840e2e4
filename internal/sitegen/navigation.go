package sitegen

import (
	"path"
	"path/filepath"
	"strings"

	"sitegen_server/internal/markup"
	"sitegen_server/internal/types"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var skippedPrefixes = []string{"http://", "https://", "//", "mailto:", "tel:", "#"}

// DiscoverPages scans every anchor in doc for internal .html links and
// returns one descriptor per distinct filename, in first-seen order.
// Hrefs are reduced to a project-relative name first, so "/about.html",
// "./about.html" and "about.html" are one page; links that leave the project
// are skipped. Empty, "#" and "index.html" links are home links and never
// produce a page. The document is not modified.
func DiscoverPages(doc *markup.Document) []types.PageDescriptor {
	var pages []types.PageDescriptor
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if isSkippedHref(href) {
			return
		}
		name, ok := pageFilename(href)
		if !ok || seen[name] {
			return
		}
		seen[name] = true

		label := strings.TrimSpace(s.Text())
		if label == "" {
			label = titleFromFilename(name)
		}
		pages = append(pages, types.PageDescriptor{
			Filename: name,
			Title:    label,
			NavText:  label,
		})
	})

	return pages
}

func isSkippedHref(href string) bool {
	if href == "" || href == "#" || href == IndexFile {
		return true
	}
	for _, p := range skippedPrefixes {
		if strings.HasPrefix(href, p) {
			return true
		}
	}
	return false
}

// pageFilename maps an internal href to the stored page name.
func pageFilename(href string) (string, bool) {
	name := strings.TrimLeft(href, "/")
	name = path.Clean(name)
	if name == IndexFile || !strings.HasSuffix(name, ".html") || !filepath.IsLocal(name) {
		return "", false
	}
	return name, true
}

// titleFromFilename turns "our-team.html" into "Our Team".
func titleFromFilename(filename string) string {
	name := strings.ReplaceAll(filename, ".html", "")
	name = strings.ReplaceAll(name, "-", " ")
	return cases.Title(language.English).String(name)
}
