// Package pdflinks finds literal PDF links in text or HTML documents. It is a
// collaborator of the crawler, not part of it: no crawling, no classification,
// shared only through the flat output-directory convention.
package pdflinks

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var pdfLinkPattern = regexp.MustCompile(`https?://[^\s"'<>()\[\]]+?\.pdf(\?[^\s"'<>()\[\]]*)?`)

// ScanText returns every absolute .pdf link literally present in body
// (markdown, plain text), deduplicated in first-seen order.
func ScanText(body string) []string {
	return dedupe(pdfLinkPattern.FindAllString(body, -1))
}

// ScanHTML returns .pdf links from anchor hrefs, resolved against baseURL,
// plus any literal links in the raw markup.
func ScanHTML(body, baseURL string) []string {
	links := pdfLinkPattern.FindAllString(body, -1)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return dedupe(links)
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return dedupe(links)
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			return
		}
		if strings.HasSuffix(strings.ToLower(abs.Path), ".pdf") {
			links = append(links, abs.String())
		}
	})

	return dedupe(links)
}

// RewriteGitHubBlob converts a GitHub blob URL to its raw.githubusercontent
// equivalent so the PDF bytes can be downloaded directly. Non-blob URLs are
// returned unchanged.
func RewriteGitHubBlob(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || !strings.HasSuffix(u.Hostname(), "github.com") {
		return rawURL
	}

	// path like /user/repo/blob/branch/path/to/file.pdf
	parts := strings.Split(u.Path, "/")
	blobIdx := -1
	for i, p := range parts {
		if p == "blob" {
			blobIdx = i
			break
		}
	}
	if blobIdx < 3 || blobIdx+1 >= len(parts) {
		return rawURL
	}

	user, repo := parts[1], parts[2]
	branch := parts[blobIdx+1]
	rest := strings.Join(parts[blobIdx+2:], "/")

	raw := "https://raw.githubusercontent.com/" + user + "/" + repo + "/" + branch + "/" + rest
	if u.RawQuery != "" {
		raw += "?" + u.RawQuery
	}
	return raw
}

// FilenameFor derives a local filename from the link's path, falling back to
// a fixed name when the path ends in a separator.
func FilenameFor(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return "download.pdf"
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	name := segments[len(segments)-1]
	if name == "" {
		return "download.pdf"
	}
	return name
}

func dedupe(links []string) []string {
	seen := make(map[string]struct{}, len(links))
	var out []string
	for _, l := range links {
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
