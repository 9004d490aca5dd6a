package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"followerwatch"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	watchInterval time.Duration
	statusAddr    string
)

var rootCmd = &cobra.Command{
	Use:           "follower-watch",
	Short:         "Track changes to a GitHub user's follower list",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch followers once, diff against the last snapshot, and report",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := logger()
		if err != nil {
			return err
		}
		defer log.Sync()
		watcher, err := setup(log)
		if err != nil {
			return err
		}
		return watcher.Run()
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Check followers on an interval and keep reporting changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if watchInterval < time.Second {
			return fmt.Errorf("minimum interval is one second")
		}
		log, err := logger()
		if err != nil {
			return err
		}
		defer log.Sync()
		watcher, err := setup(log, followerwatch.WithInterval(watchInterval))
		if err != nil {
			return err
		}
		if statusAddr != "" {
			srv := followerwatch.NewStatusServer(statusAddr, watcher, log)
			defer srv.Shutdown(context.Background())
		}
		log.Infow("starting")
		watcher.Watch()
		return nil
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", time.Hour,
		"how often to check for follower changes")
	watchCmd.Flags().StringVar(&statusAddr, "addr", "",
		"address for the HTTP status server (disabled when empty)")
	rootCmd.AddCommand(runCmd, watchCmd)
}

func setup(log *zap.SugaredLogger, options ...func(*followerwatch.Watcher)) (*followerwatch.Watcher, error) {
	cfg, err := followerwatch.ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	lister := followerwatch.NewLister(cfg.Token,
		followerwatch.WithListerLogger(log))
	store := followerwatch.NewSnapshotStore(cfg.SnapshotPath)

	var notifier *followerwatch.IssueNotifier
	if cfg.CreateIssues && cfg.Repository != "" {
		notifier, err = followerwatch.NewIssueNotifier(cfg.Repository, cfg.Token,
			followerwatch.WithIssueLogger(log))
		if err != nil {
			return nil, err
		}
	}
	options = append(options, followerwatch.WithWatcherLogger(log))
	return followerwatch.NewWatcher(cfg, lister, store, notifier, options...), nil
}

func logger() (*zap.SugaredLogger, error) {
	var (
		log *zap.Logger
		err error
	)
	switch strings.ToLower(os.Getenv("ENV")) {
	case "dev", "development":
		log, err = zap.NewDevelopment()
	case "prod", "production":
		log, err = zap.NewProduction()
	default:
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	return log.Sugar(), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
