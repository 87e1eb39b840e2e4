package sitegen

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"

	"sitegen_server/internal/ai/prompts"
	"sitegen_server/internal/markup"
	"sitegen_server/internal/types"
	"sitegen_server/internal/utils"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"
)

// TextGenerator is the text-model collaborator. *ai.Generator satisfies it.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts types.GenerationOptions) (string, error)
}

var pageOptions = types.GenerationOptions{Temperature: 0.8, MaxTokens: 8192, TopP: 0.95}

// PageSynthesizer builds the secondary pages of a site around the shared shell.
type PageSynthesizer struct {
	gen TextGenerator
}

func NewPageSynthesizer(gen TextGenerator) *PageSynthesizer {
	return &PageSynthesizer{gen: gen}
}

// shell is the chrome copied from the index document onto every page.
type shell struct {
	nav    string
	footer string
	head   string
}

func extractShell(doc *markup.Document) shell {
	var sh shell
	if nav := doc.Find("nav, header").First(); nav.Length() > 0 {
		sh.nav, _ = goquery.OuterHtml(nav)
	}
	if footer := doc.Find("footer").First(); footer.Length() > 0 {
		sh.footer, _ = goquery.OuterHtml(footer)
	}

	var head strings.Builder
	doc.Head().Find("link, meta, title").Each(func(_ int, s *goquery.Selection) {
		if duplicatesBoilerplate(s) {
			return
		}
		tag, err := goquery.OuterHtml(s)
		if err != nil {
			return
		}
		head.WriteString("    ")
		head.WriteString(tag)
		head.WriteString("\n")
	})
	sh.head = head.String()
	return sh
}

// duplicatesBoilerplate reports head tags the page template already emits.
func duplicatesBoilerplate(s *goquery.Selection) bool {
	switch goquery.NodeName(s) {
	case "title":
		return true
	case "meta":
		if _, ok := s.Attr("charset"); ok {
			return true
		}
		name, _ := s.Attr("name")
		return strings.EqualFold(name, "viewport")
	case "link":
		href, _ := s.Attr("href")
		return href == StylesheetFile
	}
	return false
}

// Synthesize produces one complete page for the descriptor. A failed or
// empty model call yields fallback content instead of an error, so one page
// never aborts the batch. shellSource is read, never modified.
func (p *PageSynthesizer) Synthesize(ctx context.Context, page types.PageDescriptor, shellSource *markup.Document, intent string) *markup.Document {
	return p.synthesize(ctx, page, extractShell(shellSource), intent)
}

func (p *PageSynthesizer) synthesize(ctx context.Context, page types.PageDescriptor, sh shell, intent string) *markup.Document {
	content := p.mainContent(ctx, page, intent)
	return markup.Parse(assemblePage(page.Title, sh, content))
}

func (p *PageSynthesizer) mainContent(ctx context.Context, page types.PageDescriptor, intent string) string {
	prompt := prompts.GetPageContentPrompt(page.Title, strings.ToLower(page.NavText), intent)

	raw, err := p.gen.Generate(ctx, prompt, pageOptions)
	if err != nil {
		log.Printf("ERROR: AI generation failed for %s: %s", page.Filename, utils.SanitizeError(err, "AI service error"))
		return fallbackContent(page.Title)
	}
	content := markup.StripCodeFences(raw)
	if content == "" {
		log.Printf("WARN: AI returned no content for %s, using fallback", page.Filename)
		return fallbackContent(page.Title)
	}
	return content
}

func fallbackContent(title string) string {
	t := html.EscapeString(title)
	return fmt.Sprintf(`<main class="container py-5">
        <div class="text-center mb-5">
            <h1 class="display-3 fw-bold mb-3">%[1]s</h1>
            <p class="lead">Content for %[1]s will be displayed here.</p>
        </div>
    </main>`, t)
}

func assemblePage(title string, sh shell, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
%s    <link rel="stylesheet" href="%s">
</head>
<body>
    %s

    %s

    %s

    <script src="%s"></script>
</body>
</html>`, html.EscapeString(title), sh.head, StylesheetFile, sh.nav, content, sh.footer, ScriptFile)
}

// SynthesizeAll builds every worklist page. With concurrency <= 1 the calls
// run one after another; otherwise at most concurrency calls are in flight.
// The returned slice is in worklist order.
func (p *PageSynthesizer) SynthesizeAll(ctx context.Context, worklist []types.PageDescriptor, shellSource *markup.Document, intent string, concurrency int) []*markup.Document {
	sh := extractShell(shellSource)
	pages := make([]*markup.Document, len(worklist))

	if concurrency <= 1 {
		for i, page := range worklist {
			log.Printf("Generating content for: %s", page.Filename)
			pages[i] = p.synthesize(ctx, page, sh, intent)
		}
		return pages
	}

	// Page failures degrade to fallback content, so no goroutine returns an error.
	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, page := range worklist {
		g.Go(func() error {
			log.Printf("Generating content for: %s", page.Filename)
			pages[i] = p.synthesize(ctx, page, sh, intent)
			return nil
		})
	}
	g.Wait()
	return pages
}
