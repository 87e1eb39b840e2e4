package sitegen

import (
	"strings"
	"testing"
)

func TestInjectCommonResourcesAfterHead(t *testing.T) {
	in := `<!DOCTYPE html><html><head lang="en"><title>x</title></head><body></body></html>`
	out := InjectCommonResources(in)

	headEnd := strings.Index(out, `<head lang="en">`) + len(`<head lang="en">`)
	bootstrap := strings.Index(out, "bootstrap@5.3.0/dist/css/bootstrap.min.css")
	title := strings.Index(out, "<title>")
	if bootstrap < headEnd || bootstrap > title {
		t.Errorf("includes not placed at the top of head:\n%s", out)
	}
	for _, lib := range []string{"font-awesome/6.0.0", "aos@2.3.1", "swiper@8"} {
		if !strings.Contains(out, lib) {
			t.Errorf("missing %s include", lib)
		}
	}
}

func TestInjectCommonResourcesIsNotIdempotent(t *testing.T) {
	twice := InjectCommonResources(InjectCommonResources("<html><head></head></html>"))
	if n := strings.Count(twice, "bootstrap.min.css"); n != 2 {
		t.Errorf("expected duplicated includes, got %d", n)
	}
}

func TestInjectCommonResourcesWithoutHead(t *testing.T) {
	in := "<div>fragment</div>"
	if out := InjectCommonResources(in); out != in {
		t.Errorf("fragment changed: %q", out)
	}
}

func TestReplacePlaceholderImages(t *testing.T) {
	in := `<img src="https://x.test/placeholder/1.png" alt="a"><img src='http://cdn.test/img/placeholder-2.jpg'><img src="https://x.test/real.png">`
	out := ReplacePlaceholderImages(in, "fashion,clothing,apparel")

	if strings.Contains(out, "placeholder") {
		t.Errorf("placeholder URL survived: %s", out)
	}
	if n := strings.Count(out, "https://picsum.photos/seed/fashion/800/600"); n != 2 {
		t.Errorf("expected 2 seeded URLs, got %d in %s", n, out)
	}
	if !strings.Contains(out, "https://x.test/real.png") {
		t.Error("non-placeholder image was rewritten")
	}
}

func TestCategoryForPrompt(t *testing.T) {
	if hint, ok := CategoryForPrompt("An online CLOTHING boutique"); !ok || !strings.HasPrefix(hint, "fashion") {
		t.Errorf("unexpected hint %q, %v", hint, ok)
	}
	if hint, ok := CategoryForPrompt("healthy food for tech workers"); !ok || !strings.HasPrefix(hint, "restaurant") {
		t.Errorf("expected first table entry to win, got %q", hint)
	}
	if _, ok := CategoryForPrompt("a law firm"); ok {
		t.Error("expected no category")
	}
}
