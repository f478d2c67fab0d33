package extractor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cticrawl/internal/extractor"
)

const linkFormsHTML = `<!DOCTYPE html>
<html>
<body>
  <a href="/relative/page">relative</a>
  <a href="sibling.html">document-relative</a>
  <a href="//cdn.example.org/asset">protocol-relative</a>
  <a href="https://other.example.com/abs">absolute</a>
</body>
</html>`

func TestExtractLinksResolvesAllForms(t *testing.T) {
	links := extractor.ExtractLinks(linkFormsHTML, "https://example.com/blog/index.html")

	assert.Equal(t, []string{
		"https://example.com/relative/page",
		"https://example.com/blog/sibling.html",
		"https://cdn.example.org/asset",
		"https://other.example.com/abs",
	}, links)
}

const fragmentHTML = `<html><body>
  <a href="/a?x=1#y">one</a>
  <a href="/a?x=1#z">two</a>
  <a href="/a?x=2">three</a>
</body></html>`

// Only the fragment is stripped; query and path are preserved, so the first
// two anchors collapse to the same URL and the third stays distinct.
func TestExtractLinksStripsFragmentOnly(t *testing.T) {
	links := extractor.ExtractLinks(fragmentHTML, "https://example.com/")

	assert.Equal(t, []string{
		"https://example.com/a?x=1",
		"https://example.com/a?x=1",
		"https://example.com/a?x=2",
	}, links)
}

const schemeFilterHTML = `<html><body>
  <a href="mailto:someone@example.com">mail</a>
  <a href="javascript:void(0)">js</a>
  <a href="tel:+15551234567">tel</a>
  <a href="ftp://files.example.com/x">ftp</a>
  <a href="https://example.com/ok">ok</a>
</body></html>`

func TestExtractLinksFiltersNonWebSchemes(t *testing.T) {
	links := extractor.ExtractLinks(schemeFilterHTML, "https://example.com/")

	assert.Equal(t, []string{"https://example.com/ok"}, links)
}

func TestExtractLinksKeepsDuplicates(t *testing.T) {
	html := `<html><body><a href="/x">a</a><a href="/x">b</a></body></html>`
	links := extractor.ExtractLinks(html, "https://example.com/")

	// Deduplication is the frontier's job, not the extractor's.
	assert.Len(t, links, 2)
}

func TestExtractLinksMalformedHTML(t *testing.T) {
	// Unclosed tags and stray brackets: parse what is parseable, never abort.
	html := `<html><body><a href="/ok">ok<div><a href="/also-ok"`
	links := extractor.ExtractLinks(html, "https://example.com/")

	assert.Contains(t, links, "https://example.com/ok")
}

func TestExtractLinksIgnoresAnchorsWithoutHref(t *testing.T) {
	html := `<html><body><a name="top">top</a><a href="">empty</a><a href="   ">blank</a></body></html>`
	links := extractor.ExtractLinks(html, "https://example.com/")

	assert.Empty(t, links)
}

func TestExtractLinksBadBaseURL(t *testing.T) {
	links := extractor.ExtractLinks(`<a href="/x">x</a>`, "://not-a-url")

	assert.Empty(t, links)
}
