package pdflinks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cticrawl/internal/pdflinks"
)

const readmeMarkdown = `# Threat Reports

- [APT29 deep dive](https://example.com/reports/apt29-deep-dive.pdf)
- [Quarterly summary](https://github.com/org/cti/blob/main/q3/summary.pdf)
- duplicate: https://example.com/reports/apt29-deep-dive.pdf
- not a pdf: https://example.com/reports/apt29.html
- with query: https://example.com/dl/ioc.pdf?version=2
`

func TestScanText(t *testing.T) {
	links := pdflinks.ScanText(readmeMarkdown)

	assert.Equal(t, []string{
		"https://example.com/reports/apt29-deep-dive.pdf",
		"https://github.com/org/cti/blob/main/q3/summary.pdf",
		"https://example.com/dl/ioc.pdf?version=2",
	}, links)
}

const indexHTML = `<html><body>
  <a href="/files/relative.pdf">relative</a>
  <a href="https://example.com/abs.pdf">absolute</a>
  <a href="https://example.com/page.html">html</a>
  <a href="mailto:x@example.com">mail</a>
</body></html>`

func TestScanHTML(t *testing.T) {
	links := pdflinks.ScanHTML(indexHTML, "https://example.com/docs/")

	assert.Contains(t, links, "https://example.com/files/relative.pdf")
	assert.Contains(t, links, "https://example.com/abs.pdf")
	assert.NotContains(t, links, "https://example.com/page.html")
	assert.Len(t, links, 2)
}

func TestRewriteGitHubBlob(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "blob URL is rewritten to raw",
			in:   "https://github.com/user/repo/blob/main/path/file.pdf",
			out:  "https://raw.githubusercontent.com/user/repo/main/path/file.pdf",
		},
		{
			name: "query is preserved",
			in:   "https://github.com/user/repo/blob/main/file.pdf?plain=1",
			out:  "https://raw.githubusercontent.com/user/repo/main/file.pdf?plain=1",
		},
		{
			name: "non-blob github URL unchanged",
			in:   "https://github.com/user/repo/releases/file.pdf",
			out:  "https://github.com/user/repo/releases/file.pdf",
		},
		{
			name: "non-github host unchanged",
			in:   "https://example.com/blob/main/file.pdf",
			out:  "https://example.com/blob/main/file.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.out, pdflinks.RewriteGitHubBlob(tt.in))
		})
	}
}

func TestFilenameFor(t *testing.T) {
	assert.Equal(t, "summary.pdf", pdflinks.FilenameFor("https://example.com/q3/summary.pdf"))
	assert.Equal(t, "ioc.pdf", pdflinks.FilenameFor("https://example.com/dl/ioc.pdf?version=2"))
	assert.Equal(t, "download.pdf", pdflinks.FilenameFor("https://example.com/"))
}
