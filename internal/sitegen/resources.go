package sitegen

import (
	"fmt"
	"regexp"
	"strings"
)

// commonResources is inserted at the top of <head> once per generation.
const commonResources = `
    <link href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.0/dist/css/bootstrap.min.css" rel="stylesheet">
    <link href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.0.0/css/all.min.css" rel="stylesheet">
    <link href="https://unpkg.com/aos@2.3.1/dist/aos.css" rel="stylesheet">
    <link href="https://cdn.jsdelivr.net/npm/swiper@8/swiper-bundle.min.css" rel="stylesheet">

    <script src="https://cdn.jsdelivr.net/npm/bootstrap@5.3.0/dist/js/bootstrap.bundle.min.js"></script>
    <script src="https://unpkg.com/aos@2.3.1/dist/aos.js"></script>
    <script src="https://cdn.jsdelivr.net/npm/swiper@8/swiper-bundle.min.js"></script>
    `

var headOpenTag = regexp.MustCompile(`(?i)<head(\s[^>]*)?>`)

// InjectCommonResources inserts the CDN includes right after the first <head>
// tag. Applying it twice duplicates the includes.
func InjectCommonResources(code string) string {
	loc := headOpenTag.FindStringIndex(code)
	if loc == nil {
		return code
	}
	return code[:loc[1]] + commonResources + code[loc[1]:]
}

// imageCategories is checked in order; the first keyword found in the prompt wins.
var imageCategories = []struct {
	keyword string
	hint    string
}{
	{"clothing", "fashion,clothing,apparel"},
	{"food", "restaurant,food,cuisine"},
	{"tech", "technology,gadget,computer"},
	{"fitness", "gym,fitness,workout"},
	{"beauty", "cosmetics,makeup,beauty"},
}

// CategoryForPrompt returns the image category hint for a free-text prompt.
func CategoryForPrompt(prompt string) (string, bool) {
	lower := strings.ToLower(prompt)
	for _, c := range imageCategories {
		if strings.Contains(lower, c.keyword) {
			return c.hint, true
		}
	}
	return "", false
}

var placeholderSrc = regexp.MustCompile(`src=["'](https?://[^"']*/placeholder[^"']*)["']`)

// ReplacePlaceholderImages points every placeholder image at a seeded picsum
// URL. The seed is the first comma-separated token of category.
func ReplacePlaceholderImages(code, category string) string {
	seed := strings.TrimSpace(strings.SplitN(category, ",", 2)[0])
	replacement := fmt.Sprintf(`src="https://picsum.photos/seed/%s/800/600"`, seed)
	return placeholderSrc.ReplaceAllLiteralString(code, replacement)
}
