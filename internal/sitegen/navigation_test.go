package sitegen

import (
	"reflect"
	"testing"

	"sitegen_server/internal/markup"
	"sitegen_server/internal/types"
)

func TestDiscoverPagesSkipsHomeAndAnchors(t *testing.T) {
	doc := markup.Parse(`<a href="about.html">About</a><a href="#">X</a><a href="index.html">Home</a><a href="contact.html">Contact Us</a>`)

	got := DiscoverPages(doc)
	want := []types.PageDescriptor{
		{Filename: "about.html", Title: "About", NavText: "About"},
		{Filename: "contact.html", Title: "Contact Us", NavText: "Contact Us"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DiscoverPages = %+v, want %+v", got, want)
	}
}

func TestDiscoverPagesFirstTextWins(t *testing.T) {
	doc := markup.Parse(`<nav><a href="services.html">Services</a></nav>
<footer><a href="services.html">What we do</a></footer>`)

	got := DiscoverPages(doc)
	if len(got) != 1 || got[0].Title != "Services" {
		t.Errorf("expected one Services entry, got %+v", got)
	}
}

func TestDiscoverPagesSkipsExternalLinks(t *testing.T) {
	doc := markup.Parse(`
<a href="https://example.com/page.html">ext</a>
<a href="http://example.com/a.html">ext</a>
<a href="mailto:hi@example.com">mail</a>
<a href="tel:123">call</a>
<a href="#team">team</a>
<a href="">empty</a>
<a href="menu.pdf">pdf</a>
<a>no href</a>
<a href="gallery.html"> Gallery </a>`)

	got := DiscoverPages(doc)
	if len(got) != 1 || got[0].Filename != "gallery.html" || got[0].NavText != "Gallery" {
		t.Errorf("unexpected worklist %+v", got)
	}
}

func TestDiscoverPagesTitleFromFilename(t *testing.T) {
	doc := markup.Parse(`<a href="our-team.html"><i class="fa fa-users"></i></a>`)

	got := DiscoverPages(doc)
	if len(got) != 1 || got[0].Title != "Our Team" || got[0].NavText != "Our Team" {
		t.Errorf("unexpected descriptor %+v", got)
	}
}

func TestDiscoverPagesDoesNotMutate(t *testing.T) {
	doc := markup.Parse(`<nav><a href="about.html">About</a></nav>`)
	before := doc.Serialize()
	DiscoverPages(doc)
	if after := doc.Serialize(); after != before {
		t.Errorf("document changed:\nbefore: %s\nafter:  %s", before, after)
	}
}

func TestDiscoverPagesNormalizesHrefs(t *testing.T) {
	doc := markup.Parse(`
<a href="/about.html">About</a>
<a href="./about.html">About again</a>
<a href="about.html">About once more</a>
<a href="/index.html">Home</a>
<a href="../secret.html">Up</a>
<a href="/../../etc/passwd.html">Root</a>
<a href="//cdn.example.com/x.html">CDN</a>
<a href="./team/../contact.html">Contact</a>`)

	got := DiscoverPages(doc)
	want := []types.PageDescriptor{
		{Filename: "about.html", Title: "About", NavText: "About"},
		{Filename: "contact.html", Title: "Contact", NavText: "Contact"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DiscoverPages = %+v, want %+v", got, want)
	}
}
