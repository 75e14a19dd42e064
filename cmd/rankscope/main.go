package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"RankScope/internal/animation"
	"RankScope/internal/calculator"
	"RankScope/internal/collector"
	"RankScope/internal/config"
	"RankScope/internal/console"
	"RankScope/internal/logger"
	"RankScope/internal/render"
	"RankScope/internal/scheduler"
	"RankScope/internal/viewport"
)

func main() {
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	flag.StringVar(&cfgPath, "config", cfgPath, "path to the YAML config file")
	once := flag.Bool("once", false, "render all charts once and exit")
	dryRun := flag.Bool("dry-run", false, "aggregate and serve commands without writing chart files")
	flag.Parse()

	// Load config
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("config validation: %v", err)
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("RankScope starting...")

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load dataset
	fetcher := collector.NewFetcher(cfg.Data.Source, cfg.Proxy, cfg.Data.Timeout)
	logger.Info("data source: %s", fetcher.Name())
	ds, err := collector.NewCollector(fetcher).Collect(ctx)
	if err != nil {
		logger.Fatal("load dataset: %v", err)
	}

	vp, err := viewport.NewManager(ds, cfg.Lines.BucketWidth, cfg.Lines.PlotWidth)
	if err != nil {
		logger.Fatal("init viewport: %v", err)
	}
	bars, err := calculator.PriceBars(ds.Records, cfg.Bars.Start, cfg.Bars.End, cfg.Bars.Width)
	if err != nil {
		logger.Fatal("compute price bars: %v", err)
	}

	// Init renderer
	var rnd render.Renderer
	if *dryRun {
		logger.Info("dry run: charts are not written")
		rnd = render.NewNoopRenderer()
	} else {
		format, err := render.ParseFormat(cfg.Output.Format)
		if err != nil {
			logger.Fatal("%v", err)
		}
		cr, err := render.NewChartRenderer(render.Options{
			Dir:     cfg.Output.Dir,
			Format:  format,
			Width:   cfg.Output.Width,
			Height:  cfg.Output.Height,
			MaxRank: ds.MaxRank,
		})
		if err != nil {
			logger.Fatal("init renderer: %v", err)
		}
		rnd = cr
	}
	defer rnd.Close()

	timing := animation.Timing{Delay: cfg.Bars.Delay, Duration: cfg.Bars.Duration, Pause: cfg.Bars.Pause}
	sched := scheduler.NewScheduler(ds, vp, rnd, bars, timing)

	// Initial render
	if err := sched.RenderAll(); err != nil {
		logger.Error("initial render: %v", err)
	}
	if *once {
		logger.Info("charts rendered to %s, exiting", cfg.Output.Dir)
		return
	}

	if err := sched.Register(cfg.Schedule.FrameCron); err != nil {
		logger.Fatal("register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if cfg.StdinSource() {
		// stdin was consumed by the dataset; only a signal ends the session
		logger.Info("RankScope is running without a console (dataset read from stdin). Ctrl+C to stop.")
	} else {
		// Console EOF ends the session like a signal does.
		go func() {
			defer stop()
			if err := console.StartPolling(ctx, os.Stdin, os.Stdout, sched.HandleCommand); err != nil {
				logger.Warn("console: %v", err)
			}
		}()
		logger.Info("RankScope is running. Type 'help' for commands, Ctrl+C to stop.")
	}
	<-ctx.Done()

	logger.Info("shutting down...")
}
