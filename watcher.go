package followerwatch

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Watcher runs the fetch-diff-report cycle for a single user: fetch the
// current follower list, diff it against the last snapshot, report the
// changes, optionally open an issue, and persist the new snapshot. The
// snapshot is only written as the final step of a fully successful cycle,
// so a mid-run failure leaves the previous snapshot untouched.
type Watcher struct {
	// Interval is how often Watch re-runs the cycle.
	Interval time.Duration

	cfg      Config
	lister   *Lister
	store    *SnapshotStore
	notifier *IssueNotifier

	out  io.Writer
	log  *zap.SugaredLogger
	stop chan struct{}

	mu     sync.Mutex
	status RunStatus
}

// RunStatus describes the most recent completed cycle, for the watch-mode
// status endpoint.
type RunStatus struct {
	LastRun       time.Time `json:"last_run"`
	FollowerCount int       `json:"follower_count"`
	AddedCount    int       `json:"added_count"`
	RemovedCount  int       `json:"removed_count"`
	Runs          int       `json:"runs"`
}

// NewWatcher wires a Watcher from its parts. notifier may be nil when
// issue creation is disabled.
func NewWatcher(
	cfg Config,
	lister *Lister,
	store *SnapshotStore,
	notifier *IssueNotifier,
	options ...func(*Watcher)) *Watcher {

	w := &Watcher{
		Interval: time.Hour,
		cfg:      cfg,
		lister:   lister,
		store:    store,
		notifier: notifier,
		out:      os.Stdout,
		log:      zap.NewNop().Sugar(),
		stop:     make(chan struct{}),
	}
	for _, o := range options {
		o(w)
	}
	return w
}

// WithWatcherLogger sets the *zap.SugaredLogger the Watcher uses internally.
func WithWatcherLogger(logger *zap.SugaredLogger) func(*Watcher) {
	return func(w *Watcher) {
		w.log = logger
	}
}

// WithOutput redirects the console report, which goes to stdout by default.
func WithOutput(out io.Writer) func(*Watcher) {
	return func(w *Watcher) {
		w.out = out
	}
}

// WithInterval sets how often Watch re-runs the cycle.
func WithInterval(d time.Duration) func(*Watcher) {
	return func(w *Watcher) {
		w.Interval = d
	}
}

// Run executes one full cycle. An unreadable snapshot is recovered as an
// empty previous state; any other failure aborts the cycle before the
// snapshot is written.
func (w *Watcher) Run() error {
	log := w.log.With("run_id", uuid.NewString(), "user", w.cfg.TargetUser)

	current, err := w.lister.FetchAll(w.cfg.TargetUser)
	if err != nil {
		return errors.Wrap(err, "fetching current followers")
	}

	previous, err := w.store.Load()
	if err != nil {
		log.Warnw("treating previous snapshot as empty", "err", err.Error())
	}

	diff := Diff(previous, current)
	log.Infow("diffed followers",
		"total", len(current),
		"added", len(diff.Added),
		"removed", len(diff.Removed))

	ConsoleReport(w.out, diff)
	if w.cfg.OutputPath != "" {
		if err := WriteCIOutputs(w.cfg.OutputPath, diff); err != nil {
			return err
		}
	}

	if w.shouldNotify(diff) {
		now := time.Now()
		ref, err := w.notifier.CreateIssue(IssueTitle(now), IssueBody(diff, len(current), now))
		if err != nil {
			return errors.Wrap(err, "creating follower change issue")
		}
		log.Infow("follower change issue opened", "number", ref.Number, "url", ref.URL)
	}

	if err := w.store.Save(current); err != nil {
		return err
	}
	w.recordRun(len(current), diff)
	return nil
}

func (w *Watcher) shouldNotify(diff DiffResult) bool {
	return w.notifier != nil &&
		w.cfg.RunningInCI &&
		w.cfg.CreateIssues &&
		diff.HasChanges()
}

// Watch runs cycles on a ticker until Stop is called. The first cycle runs
// immediately rather than waiting out the first interval. A failed cycle
// is logged and the loop keeps going; watch mode is meant to survive
// transient API trouble that would fail a one-shot run.
func (w *Watcher) Watch() {
	w.log.Infow("watching followers",
		"user", w.cfg.TargetUser,
		"poll_interval", w.Interval)

	t := time.NewTicker(w.Interval)
	defer t.Stop()
	for {
		if err := w.Run(); err != nil {
			w.log.Errorw("follower check failed",
				"user", w.cfg.TargetUser,
				"err", err.Error())
		}
		select {
		case <-w.stop:
			return
		case <-t.C:
		}
	}
}

// Stop ends a Watch loop after the in-flight cycle completes.
func (w *Watcher) Stop() {
	close(w.stop)
}

// Status returns a copy of the most recent cycle's result.
func (w *Watcher) Status() RunStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

func (w *Watcher) recordRun(total int, diff DiffResult) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status = RunStatus{
		LastRun:       time.Now(),
		FollowerCount: total,
		AddedCount:    len(diff.Added),
		RemovedCount:  len(diff.Removed),
		Runs:          w.status.Runs + 1,
	}
}
