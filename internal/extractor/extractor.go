// Package extractor pulls outbound links from fetched HTML pages.
package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractLinks parses every anchor with an href attribute and resolves it
// against baseURL. Fragments are stripped; query and path are preserved.
// Only absolute http/https URLs are returned. Duplicates within one page are
// kept; deduplication happens at the frontier level. Malformed HTML degrades
// gracefully: whatever anchors are parseable are returned.
func ExtractLinks(htmlContent, baseURL string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}

		abs := base.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			return
		}
		abs.Fragment = ""

		links = append(links, abs.String())
	})

	return links
}
