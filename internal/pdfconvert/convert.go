// Package pdfconvert turns PDF files into minimal styled HTML wrappers around
// their extracted text. Pure file-format transform, no crawling.
package pdfconvert

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"
)

// contentMarker separates the source PDF's basename from the page number in
// the files written by content extraction.
const contentMarker = "_Content_page_"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 40px;
            line-height: 1.6;
            max-width: 1200px;
        }
        .content { white-space: pre-wrap; }
        .header {
            background-color: #f0f0f0;
            padding: 20px;
            margin-bottom: 30px;
            border-radius: 5px;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.Title}}</h1>
        <p>Converted from PDF to HTML</p>
    </div>
    <div class="content">{{.Content}}</div>
</body>
</html>
`))

type pageData struct {
	Title   string
	Content string
}

// ConvertFile extracts the text of pdfPath and writes <name>.html into
// outDir. It returns the path of the written file.
func ConvertFile(pdfPath, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	text, err := extractText(pdfPath)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", pdfPath, err)
	}

	name := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	outPath := filepath.Join(outDir, name+".html")

	out, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", outPath, err)
	}
	defer out.Close()

	if err := pageTemplate.Execute(out, pageData{Title: name, Content: text}); err != nil {
		return "", fmt.Errorf("render %s: %w", outPath, err)
	}
	return outPath, nil
}

// ConvertDir converts every *.pdf in inDir. Per-file failures are logged and
// skipped; the count of successful conversions is returned.
func ConvertDir(inDir, outDir string, logger *zap.Logger) (int, error) {
	entries, err := os.ReadDir(inDir)
	if err != nil {
		return 0, fmt.Errorf("read input directory: %w", err)
	}

	converted := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		src := filepath.Join(inDir, entry.Name())
		outPath, err := ConvertFile(src, outDir)
		if err != nil {
			logger.Error("conversion failed", zap.String("file", src), zap.Error(err))
			continue
		}
		logger.Info("converted", zap.String("file", src), zap.String("output", outPath))
		converted++
	}
	return converted, nil
}

// extractText pulls per-page content streams out of the PDF and concatenates
// them in page order. pdfcpu has no direct text extraction, so the raw
// content extraction is used, matching what it can recover.
func extractText(pdfPath string) (string, error) {
	pdfCtx, err := api.ReadContextFile(pdfPath)
	if err != nil {
		return "", fmt.Errorf("read PDF: %w", err)
	}
	pageCount := pdfCtx.PageCount

	tmpDir, err := os.MkdirTemp("", "pdfconvert-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(tmpDir)

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractContentFile(pdfPath, tmpDir, nil, conf); err != nil {
		return "", fmt.Errorf("extract content: %w", err)
	}

	files, err := os.ReadDir(tmpDir)
	if err != nil {
		return "", err
	}

	// Content files are named <pdf-basename>_Content_page_<n>.txt, so the
	// page number has to be parsed off the tail, not the front.
	pageTexts := make(map[int]string, pageCount)
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		name := f.Name()
		idx := strings.LastIndex(name, contentMarker)
		if idx < 0 {
			continue
		}
		numPart := strings.TrimSuffix(name[idx+len(contentMarker):], filepath.Ext(name))
		pageNum, err := strconv.Atoi(numPart)
		if err != nil {
			continue
		}
		content, err := os.ReadFile(filepath.Join(tmpDir, name))
		if err != nil {
			continue
		}
		pageTexts[pageNum] = string(content)
	}

	if len(pageTexts) == 0 {
		return "", fmt.Errorf("no page content recovered from %s", pdfPath)
	}

	pages := make([]int, 0, len(pageTexts))
	for p := range pageTexts {
		pages = append(pages, p)
	}
	sort.Ints(pages)

	var builder strings.Builder
	for i, p := range pages {
		if i > 0 {
			builder.WriteString("\n\n")
		}
		builder.WriteString(pageTexts[p])
	}
	return builder.String(), nil
}
