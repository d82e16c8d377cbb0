package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/app"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/config"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/domain/scoringrun"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/infrastructure/jobqueue"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/observability"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/logging"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type options struct {
	Mode     string
	SeasonID string
	Week     int
	LeagueID string
	Cron     string
	Timeout  time.Duration
	Enqueue  bool
	Delay    time.Duration
}

func parseFlags(args []string, defaultCron string) (options, error) {
	fs := flag.NewFlagSet("scoring", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	opts := options{}
	fs.StringVar(&opts.Mode, "mode", string(scoringrun.ModeSeason), "run mode: week, season or league")
	fs.StringVar(&opts.SeasonID, "season", "", "season id")
	fs.IntVar(&opts.Week, "week", -1, "canonical week (week mode)")
	fs.StringVar(&opts.LeagueID, "league", "", "league id (league mode)")
	fs.StringVar(&opts.Cron, "cron", "", "cron spec; runs season mode on schedule (defaults to SCORING_CRON when no run flags are given)")
	fs.DurationVar(&opts.Timeout, "timeout", 10*time.Minute, "timeout for a single run")
	fs.BoolVar(&opts.Enqueue, "enqueue", false, "publish the run to QStash instead of running it here")
	fs.DurationVar(&opts.Delay, "delay", 0, "delivery delay for -enqueue")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	runFlags := explicit["mode"] || explicit["week"] || explicit["league"] || explicit["enqueue"]

	opts.SeasonID = strings.TrimSpace(opts.SeasonID)
	opts.LeagueID = strings.TrimSpace(opts.LeagueID)
	opts.Cron = strings.TrimSpace(opts.Cron)
	if !explicit["cron"] && !runFlags {
		opts.Cron = strings.TrimSpace(defaultCron)
	}
	if opts.SeasonID == "" {
		return options{}, fmt.Errorf("-season is required")
	}
	if opts.Timeout <= 0 {
		return options{}, fmt.Errorf("-timeout must be > 0")
	}
	if opts.Enqueue && opts.Cron != "" {
		return options{}, fmt.Errorf("-enqueue cannot be combined with -cron")
	}
	if opts.Delay < 0 {
		return options{}, fmt.Errorf("-delay must be >= 0")
	}
	if opts.Cron != "" {
		if explicit["week"] || explicit["league"] {
			return options{}, fmt.Errorf("-week and -league cannot be combined with -cron")
		}
		if explicit["mode"] && !strings.EqualFold(strings.TrimSpace(opts.Mode), string(scoringrun.ModeSeason)) {
			return options{}, fmt.Errorf("-cron only runs season mode, got -mode %s", opts.Mode)
		}
		if _, err := cron.ParseStandard(opts.Cron); err != nil {
			return options{}, fmt.Errorf("invalid -cron %q: %w", opts.Cron, err)
		}
		opts.Mode = string(scoringrun.ModeSeason)
		return opts, nil
	}

	mode, err := scoringrun.ParseMode(opts.Mode)
	if err != nil {
		return options{}, err
	}
	opts.Mode = string(mode)
	if mode == scoringrun.ModeWeek && opts.Week < 0 {
		return options{}, fmt.Errorf("-week is required in week mode")
	}
	if mode == scoringrun.ModeLeague && opts.LeagueID == "" {
		return options{}, fmt.Errorf("-league is required in league mode")
	}

	return opts, nil
}

func (o options) request() scoringrun.Request {
	req := scoringrun.Request{
		Mode:     scoringrun.Mode(o.Mode),
		SeasonID: o.SeasonID,
		LeagueID: o.LeagueID,
	}
	if req.Mode == scoringrun.ModeWeek {
		req.Week = o.Week
	}
	return req
}

func main() {
	if err := config.LoadDotEnv(os.Getenv("ENV_FILE")); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	opts, err := parseFlags(os.Args[1:], cfg.ScoringCron)
	if err != nil {
		fmt.Fprintln(os.Stderr, "scoring:", err)
		fmt.Fprintln(os.Stderr, "usage: scoring -mode week|season|league -season ID [-week N] [-league ID] [-enqueue [-delay D]] | -cron \"<spec>\" -season ID")
		os.Exit(2)
	}

	logger := logging.NewJSONWriter(cfg.LogLevel, os.Stderr).With("service", cfg.ServiceName, "env", cfg.AppEnv)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.Enqueue {
		publisher := jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			Timeout:          cfg.QStashTimeout,
		}, logger.Named("qstash"))
		if err := enqueue(ctx, publisher, opts, os.Stdout); err != nil {
			logger.Error("enqueue scoring run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	rt, err := app.NewRuntime(ctx, cfg, logger)
	if err != nil {
		logger.Error("build runtime", "error", err)
		os.Exit(1)
	}
	defer func() { _ = rt.Close() }()

	if opts.Cron != "" {
		if err := runSchedule(ctx, rt.Services.Pipeline, opts, logger); err != nil {
			logger.Error("scheduler failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := runOnce(ctx, rt.Services.Pipeline, opts, os.Stdout); err != nil {
		logger.Error("scoring run failed", "error", err)
		os.Exit(1)
	}
}

type publisher interface {
	PublishScoringRun(ctx context.Context, req scoringrun.Request, delay time.Duration) (string, error)
}

func enqueue(ctx context.Context, pub publisher, opts options, out io.Writer) error {
	messageID, err := pub.PublishScoringRun(ctx, opts.request(), opts.Delay)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "{\"message_id\":%q}\n", messageID)
	return err
}

type runner interface {
	Run(ctx context.Context, req scoringrun.Request) (scoringrun.Summary, error)
}

// runOnce executes a single run and writes its summary as JSON. Per-entity
// failures live in the summary and do not fail the command.
func runOnce(ctx context.Context, pipeline runner, opts options, out io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	summary, err := pipeline.Run(ctx, opts.request())
	if err != nil {
		return err
	}

	payload, err := sonic.ConfigDefault.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	if _, err := fmt.Fprintln(out, string(payload)); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

func runSchedule(ctx context.Context, pipeline runner, opts options, logger *logging.Logger) error {
	scheduler := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(zap.NewStdLog(logger.Zap())))),
	)

	req := scoringrun.Request{Mode: scoringrun.ModeSeason, SeasonID: opts.SeasonID}
	_, err := scheduler.AddFunc(opts.Cron, func() {
		runCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
		defer cancel()

		summary, err := pipeline.Run(runCtx, req)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				logger.Error("scheduled scoring run failed", "season_id", opts.SeasonID, "error", err)
			}
			return
		}
		logger.Info("scheduled scoring run finished",
			"run_id", summary.RunID,
			"status", summary.Status,
			"failed_stages", summary.FailedCount,
			"issues", len(summary.Issues),
		)
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", opts.Cron, err)
	}

	logger.Info("scoring scheduler started", "cron", opts.Cron, "season_id", opts.SeasonID)
	scheduler.Start()
	<-ctx.Done()

	stopped := scheduler.Stop()
	select {
	case <-stopped.Done():
	case <-time.After(opts.Timeout):
		logger.Warn("scheduled run still active at shutdown")
	}
	logger.Info("scoring scheduler stopped")
	return nil
}
