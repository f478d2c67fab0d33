// Package archive persists report pages as flat files with provenance headers.
package archive

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"cticrawl/internal/domain"
)

const fileExt = ".html"

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// Archiver writes one file per archived report into a single output
// directory. Writes are atomic (temp file then rename) so an interrupt can
// never leave a truncated artifact behind.
type Archiver struct {
	dir    string
	logger *zap.Logger
	now    func() time.Time
}

func New(dir string, logger *zap.Logger) (*Archiver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &Archiver{dir: dir, logger: logger, now: time.Now}, nil
}

// Dir returns the output directory the archiver writes into.
func (a *Archiver) Dir() string {
	return a.dir
}

// Save writes body to a derived filename, prefixed with two comment lines
// recording the source URL and crawl time. Files are write-once: the content
// hash in the filename keeps distinct pages from colliding, so nothing is
// ever overwritten.
func (a *Archiver) Save(rawURL, body string) (*domain.ArchivedReport, error) {
	crawledAt := a.now()
	hash := contentHash(body)
	filename := Filename(rawURL, hash, crawledAt)
	path := filepath.Join(a.dir, filename)

	header := fmt.Sprintf("<!-- Source URL: %s -->\n<!-- Crawled: %s -->\n",
		rawURL, crawledAt.Format(time.RFC3339))

	tmp, err := os.CreateTemp(a.dir, ".archive-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(header + body); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return nil, fmt.Errorf("write %s: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return nil, fmt.Errorf("close %s: %w", filename, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return nil, fmt.Errorf("rename %s: %w", filename, err)
	}

	a.logger.Info("saved report",
		zap.String("url", rawURL),
		zap.String("file", filename))

	return &domain.ArchivedReport{
		URL:         rawURL,
		CrawledAt:   crawledAt,
		Filename:    filename,
		Path:        path,
		ContentHash: hash,
	}, nil
}

// Filename derives <base>_<YYYYMMDD_HHMMSS>_<8-hex-hash>.html. The base is
// the last path segment longer than two characters, or the second-level
// domain label when the path has none, sanitized to [A-Za-z0-9_-].
func Filename(rawURL, hash string, ts time.Time) string {
	base := baseName(rawURL)
	return fmt.Sprintf("%s_%s_%s%s", base, ts.Format("20060102_150405"), hash, fileExt)
}

func baseName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "page"
	}

	var base string
	for _, part := range strings.Split(strings.Trim(u.Path, "/"), "/") {
		if len(part) > 2 {
			base = part
		}
	}
	if base == "" {
		labels := strings.Split(u.Hostname(), ".")
		if len(labels) >= 2 {
			base = labels[len(labels)-2]
		} else {
			base = u.Hostname()
		}
	}

	base = strings.Trim(unsafeChars.ReplaceAllString(base, "_"), "_")
	if base == "" {
		base = "page"
	}
	return base
}

// contentHash returns the first 8 hex characters of the body's SHA-256 sum:
// stable per content, so identical pages saved at different times remain
// distinguishable only by timestamp.
func contentHash(body string) string {
	sum := sha256.Sum256([]byte(body))
	return hex.EncodeToString(sum[:])[:8]
}
