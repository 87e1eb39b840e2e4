package prompts

import "fmt"

// GetSiteCodeChangePrompt builds the prompt for modifying an existing index.html.
func GetSiteCodeChangePrompt(userQuery string, previousCode string) string {
	prompt := `
		You are a site generator AI helping to **update an existing website**.

		RULES:
		1.  Make the specific changes requested by the user.
		2.  Keep every other part of the code exactly the same unless the user asks for new pages or features.
		3.  Return the COMPLETE updated index.html, keeping it under 350 lines.
		4.  After the code, add a line containing only --- and then explain what you changed in Markdown.

		ADDING NEW PAGES:
		*   Add a navigation link with a lowercase, hyphenated filename, e.g. <a href="web-design.html">Web Design</a>.
		*   The page file itself is generated automatically from that link.

		CURRENT CODE:
		` + "```html" + `
		%s
		` + "```" + `

		USER REQUEST: %s

		Make ONLY the requested changes and return the complete updated HTML.
	`

	return fmt.Sprintf(prompt, previousCode, userQuery)
}
