package prompts

import (
	"fmt"
	"net/url"
)

// GetPageContentPrompt builds the prompt for the <main> content of one
// secondary page. imageSeed keeps the page's placeholder images consistent.
func GetPageContentPrompt(pageTitle, imageSeed, originalPrompt string) string {
	prompt := `
		Generate ONLY the main content HTML for a %[1]s page of a website.

		Context: This is part of a %[2]s website.
		Page Type: %[1]s

		CORE STRUCTURE:
		*   Output ONLY the <main> section. No <!DOCTYPE>, <html>, <head> or <body>.
		*   Real, detailed, professional content appropriate for a %[1]s page.
		*   Semantic, accessible HTML with a clear heading hierarchy.

		LINK RULES:
		*   The home link must be href="index.html". Never use href="/" or href="#".
		*   All internal links use .html filenames.

		DESIGN:
		*   Use Bootstrap 5 grid, spacing utilities and components (card, badge, btn, shadow-lg, rounded-4).
		*   Use Font Awesome icons where they add clarity.
		*   Use placeholder images only from https://picsum.photos/seed/%[3]s/800/600

		Every interactive element must work; no decorative-only code.
	`

	return fmt.Sprintf(prompt, pageTitle, originalPrompt, url.PathEscape(imageSeed))
}
