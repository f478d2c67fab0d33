// pdffetch scans one document (markdown or HTML) for literal PDF links and
// downloads them into a flat directory. It does not crawl or classify.
package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cticrawl/internal/pdflinks"
)

const userAgent = "cti-pdf-downloader/1.0"

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	var (
		docURL  string
		outDir  string
		timeout int
	)

	cmd := &cobra.Command{
		Use:          "pdffetch",
		Short:        "Download every PDF linked from a document",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := &http.Client{Timeout: time.Duration(timeout) * time.Second}
			return run(client, logger, docURL, outDir)
		},
	}

	cmd.Flags().StringVar(&docURL, "url", "", "document URL to scan for PDF links")
	cmd.Flags().StringVar(&outDir, "out", "./reports", "directory to download PDFs into")
	cmd.Flags().IntVar(&timeout, "timeout", 30, "request timeout in seconds")
	cmd.MarkFlagRequired("url")

	if err := cmd.Execute(); err != nil {
		logger.Error("pdffetch failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(client *http.Client, logger *zap.Logger, docURL, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	body, contentType, err := get(client, docURL)
	if err != nil {
		return fmt.Errorf("fetch document: %w", err)
	}

	var links []string
	if strings.Contains(strings.ToLower(contentType), "text/html") {
		links = pdflinks.ScanHTML(string(body), docURL)
	} else {
		links = pdflinks.ScanText(string(body))
	}
	logger.Info("scanned document", zap.String("url", docURL), zap.Int("pdf_links", len(links)))

	downloaded := 0
	for _, link := range links {
		raw := pdflinks.RewriteGitHubBlob(link)
		dest := filepath.Join(outDir, pdflinks.FilenameFor(raw))

		if _, err := os.Stat(dest); err == nil {
			logger.Info("already downloaded, skipping", zap.String("file", dest))
			continue
		}

		if err := download(client, raw, dest); err != nil {
			logger.Warn("download failed", zap.String("url", raw), zap.Error(err))
			continue
		}
		logger.Info("downloaded", zap.String("url", raw), zap.String("file", dest))
		downloaded++
	}

	logger.Info("done", zap.Int("downloaded", downloaded), zap.Int("skipped", len(links)-downloaded))
	return nil
}

func get(client *http.Client, url string) ([]byte, string, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	return body, resp.Header.Get("Content-Type"), err
}

// download writes to a temp file first so an interrupted transfer never
// leaves a truncated PDF behind.
func download(client *http.Client, url, dest string) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, dest)
}
