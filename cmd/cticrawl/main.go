package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cticrawl/internal/archive"
	"cticrawl/internal/config"
	"cticrawl/internal/crawler"
	"cticrawl/internal/domain"
	"cticrawl/internal/fetcher"
	"cticrawl/internal/monitoring"
	"cticrawl/internal/scheduler"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fallback, _ := zap.NewProduction()
		fallback.Fatal("could not load config", zap.Error(err))
	}

	// Initialize structured logger: live console stream plus a persistent
	// log file, so every fetch, classification hit, save, and error is
	// observable after the fact.
	logger, err := newLogger(cfg.LogFile)
	if err != nil {
		fallback, _ := zap.NewProduction()
		fallback.Fatal("could not initialize logger", zap.Error(err))
	}
	defer logger.Sync()

	root := newRootCmd(cfg, logger)
	root.AddCommand(newServeCmd(cfg, logger))

	if err := root.Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(logFile string) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{"stdout", logFile}
	zc.ErrorOutputPaths = []string{"stderr", logFile}
	return zc.Build()
}

func newRootCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	var (
		urls     []string
		depth    int
		workers  int
		output   string
		realtime bool
		interval int
	)

	cmd := &cobra.Command{
		Use:          "cticrawl",
		Short:        "Depth-bounded crawler that archives public CTI reports",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			seeds := urls
			if len(seeds) == 0 {
				seeds = cfg.Seeds()
			}
			job := domain.CrawlJob{
				Seeds:     seeds,
				MaxDepth:  depth,
				Workers:   workers,
				OutputDir: output,
			}

			engine, err := buildEngine(cfg, job.OutputDir, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if realtime {
				sched := scheduler.New(engine, logger,
					time.Duration(interval)*time.Minute,
					time.Duration(cfg.RetryDelay)*time.Minute)
				sched.Run(ctx, job)
				return nil
			}

			_, err = engine.Run(ctx, job)
			return err
		},
	}

	cmd.Flags().StringSliceVar(&urls, "urls", nil, "seed URLs (default: built-in CTI sources)")
	cmd.Flags().IntVar(&depth, "depth", cfg.MaxDepth, "maximum crawl depth")
	cmd.Flags().IntVar(&workers, "workers", cfg.CrawlWorkers, "number of concurrent workers")
	cmd.Flags().StringVar(&output, "output", cfg.OutputDir, "directory for archived reports")
	cmd.Flags().BoolVar(&realtime, "realtime", false, "repeat the crawl on a fixed interval until interrupted")
	cmd.Flags().IntVar(&interval, "interval", cfg.CrawlInterval, "minutes between recurring runs")

	return cmd
}

func buildEngine(cfg *config.Config, outputDir string, logger *zap.Logger) (*crawler.Engine, error) {
	metrics := monitoring.NewMetrics(prometheus.DefaultRegisterer)
	fetch := fetcher.New(time.Duration(cfg.FetchTimeout)*time.Second, logger)
	archiver, err := archive.New(outputDir, logger)
	if err != nil {
		return nil, err
	}
	return crawler.NewEngine(fetch, archiver, metrics, logger,
		time.Duration(cfg.LevelPause)*time.Second), nil
}
