package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"adlens/internal/pipeline"
	"adlens/shared/config"
	"adlens/shared/scheduler"
)

func main() {
	var (
		brand     = flag.String("brand", "", "Brand name (e.g. Coca-Cola)")
		urls      = flag.String("urls", "", "Path to text file with video URLs")
		perf      = flag.String("perf", "", "Path to daily performance CSV")
		sched     = flag.String("sched", "", "Path to flight schedule CSV")
		scheduled = flag.Bool("scheduled", false, "Run on the configured cron schedule instead of once")
	)
	flag.Parse()

	if *brand == "" || *urls == "" {
		fmt.Fprintln(os.Stderr, "usage: adlens -brand NAME -urls FILE [-perf FILE] [-sched FILE] [-scheduled]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	p := pipeline.New(cfg, pipeline.Options{
		Brand:        *brand,
		URLsPath:     *urls,
		PerfPath:     *perf,
		SchedulePath: *sched,
	})
	s := scheduler.New(cfg.CronExpr, fmt.Sprintf("%d", cfg.Monitoring.HealthPort), p)

	if *scheduled {
		fmt.Println("Starting scheduler...")
		if err := s.Start(ctx); err != nil {
			log.Fatalf("Scheduler failed: %v", err)
		}
		return
	}

	if err := p.Initialize(); err != nil {
		log.Fatalf("Failed to initialize pipeline: %v", err)
	}
	if err := s.RunOnce(ctx); err != nil {
		log.Fatalf("Failed to run: %v", err)
	}
}
