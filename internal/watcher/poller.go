package watcher

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kyleking/gh-runwatch/internal/runs"
)

const (
	// DefaultInterval is the default delay between poll cycles.
	DefaultInterval = 30 * time.Second

	// DefaultRunLimit is how many recent runs are fetched per repository.
	DefaultRunLimit = 10

	// maxConcurrentFetches bounds per-cycle fan-out so a large watch list
	// does not burn through the API rate limit.
	maxConcurrentFetches = 4
)

// RunSource is the slice of the GitHub client the poller consumes.
type RunSource interface {
	RecentRuns(ctx context.Context, repo string, limit int) ([]runs.RunInfo, error)
}

// Poller periodically fetches run state for every watched repository and
// publishes one Update per repository per cycle. It runs on its own
// goroutine, fully independent of whatever drives the UI.
//
// A Poller is single-use: Start once, Stop once. Stop is cooperative; the
// in-flight cycle is allowed to finish (its network calls are cancelled via
// context) and Stop blocks until the loop has exited.
type Poller struct {
	source   RunSource
	watch    *WatchSet
	interval time.Duration
	logger   *slog.Logger

	subMu       sync.Mutex
	subscribers []Subscriber

	// deliverMu serializes fan-out so updates from the periodic loop and
	// on-demand refreshes never interleave within one delivery; whichever
	// delivery happens later wins.
	deliverMu sync.Mutex

	ctx      context.Context
	cancel   context.CancelFunc
	started  atomic.Bool
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewPoller creates a poller over the given source and watch set. A
// non-positive interval falls back to DefaultInterval.
func NewPoller(source RunSource, watch *WatchSet, interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}

	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Poller{
		source:   source,
		watch:    watch,
		interval: interval,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Subscribe registers a subscriber. Registration is allowed before or after
// Start; a late registration takes effect from the next delivery.
func (p *Poller) Subscribe(s Subscriber) {
	p.subMu.Lock()
	defer p.subMu.Unlock()

	p.subscribers = append(p.subscribers, s)
}

// AddRepository adds a repository to the watch set, effective next cycle.
// It reports whether the repository was not already watched.
func (p *Poller) AddRepository(repo string) bool {
	return p.watch.Add(repo)
}

// RemoveRepository removes a repository from the watch set, effective next
// cycle.
func (p *Poller) RemoveRepository(repo string) bool {
	return p.watch.Remove(repo)
}

// Start launches the background poll loop. Subsequent calls are no-ops.
func (p *Poller) Start() {
	if !p.started.CompareAndSwap(false, true) {
		return
	}

	p.wg.Add(1)

	go p.loop()
}

// Stop requests shutdown and waits for the loop to exit. Safe to call
// multiple times.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		p.cancel()
		p.wg.Wait()
	})
}

// Refresh fetches one repository immediately, outside the periodic cycle,
// and publishes through the same subscriber set. It blocks until delivered,
// so UI callers should run it off their render path.
func (p *Poller) Refresh(ctx context.Context, repo string) {
	p.fetchAndPublish(ctx, repo)
}

func (p *Poller) loop() {
	defer p.wg.Done()

	for {
		p.pollOnce(p.ctx)

		select {
		case <-p.ctx.Done():
			return
		case <-time.After(p.interval):
		}
	}
}

// pollOnce runs one full cycle: snapshot the watch set, fetch every member
// with bounded parallelism, publish per-repository results. One
// repository's failure never cancels its siblings.
func (p *Poller) pollOnce(ctx context.Context) {
	repos := p.watch.Snapshot()
	if len(repos) == 0 {
		return
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for _, repo := range repos {
		g.Go(func() error {
			if ctx.Err() != nil {
				// Stop was requested mid-cycle; skip remaining fetches.
				return nil
			}

			p.fetchAndPublish(ctx, repo)

			return nil
		})
	}

	_ = g.Wait()
}

func (p *Poller) fetchAndPublish(ctx context.Context, repo string) {
	result, err := p.source.RecentRuns(ctx, repo, DefaultRunLimit)
	if err != nil {
		p.logger.Warn("fetch failed", "repo", repo, "error", err)
		p.publish(Update{Repo: repo, Err: err})

		return
	}

	p.publish(Update{Repo: repo, Runs: result})
}

// publish delivers one update to every subscriber in registration order.
// A panicking subscriber is recovered and logged; the remaining
// subscribers still receive the update.
func (p *Poller) publish(u Update) {
	p.subMu.Lock()
	subs := make([]Subscriber, len(p.subscribers))
	copy(subs, p.subscribers)
	p.subMu.Unlock()

	p.deliverMu.Lock()
	defer p.deliverMu.Unlock()

	for _, s := range subs {
		p.notify(s, u)
	}
}

func (p *Poller) notify(s Subscriber, u Update) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("subscriber panicked", "repo", u.Repo, "panic", r)
		}
	}()

	s.OnUpdate(u)
}
