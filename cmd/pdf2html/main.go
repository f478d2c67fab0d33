// pdf2html converts every PDF in a directory into a minimal styled HTML
// wrapper around its extracted text. Stateless transform, no crawling.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cticrawl/internal/pdfconvert"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	var (
		inDir  string
		outDir string
	)

	cmd := &cobra.Command{
		Use:          "pdf2html",
		Short:        "Convert PDFs in a directory to HTML",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			converted, err := pdfconvert.ConvertDir(inDir, outDir, logger)
			if err != nil {
				return err
			}
			logger.Info("done", zap.Int("converted", converted))
			return nil
		},
	}

	cmd.Flags().StringVar(&inDir, "in", "./reports", "directory containing PDF files")
	cmd.Flags().StringVar(&outDir, "out", "./data", "directory to write HTML files into")

	if err := cmd.Execute(); err != nil {
		logger.Error("pdf2html failed", zap.Error(err))
		os.Exit(1)
	}
}
