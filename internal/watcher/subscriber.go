package watcher

import (
	"log/slog"

	"github.com/kyleking/gh-runwatch/internal/runs"
)

// Update is one delivery of fetched run state for a repository. Exactly one
// of Runs or Err is meaningful: a nil Err with an empty Runs slice means the
// repository genuinely reported no runs, while a non-nil Err means the fetch
// failed and Runs is nil.
type Update struct {
	Repo string
	Runs []runs.RunInfo
	Err  error
}

// Subscriber receives updates published by the poller. OnUpdate is invoked
// synchronously on the poller's goroutine; implementations that touch UI
// state must hand the update off to the UI's own scheduling (see
// UpdateChannel) rather than mutate it in place.
type Subscriber interface {
	OnUpdate(Update)
}

// SubscriberFunc adapts a plain function to the Subscriber interface.
type SubscriberFunc func(Update)

func (f SubscriberFunc) OnUpdate(u Update) {
	f(u)
}

// UpdateChannel adapts the subscriber protocol to message passing: the
// poller pushes updates into a buffered channel which the consumer drains
// on its own schedule. When the buffer is full the oldest pending update is
// dropped in favor of the newest, since the next poll cycle supersedes
// stale state anyway.
type UpdateChannel struct {
	ch     chan Update
	logger *slog.Logger
}

// NewUpdateChannel creates a channel-backed subscriber with the given
// buffer size (a sensible default is applied for size <= 0).
func NewUpdateChannel(size int, logger *slog.Logger) *UpdateChannel {
	if size <= 0 {
		size = 64
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &UpdateChannel{ch: make(chan Update, size), logger: logger}
}

// OnUpdate implements Subscriber. Deliveries from the poller are serialized,
// so the drop-oldest loop below has a single producer and cannot livelock.
func (u *UpdateChannel) OnUpdate(update Update) {
	for {
		select {
		case u.ch <- update:
			return
		default:
		}

		select {
		case stale := <-u.ch:
			u.logger.Warn("update channel full, dropping stale update", "repo", stale.Repo)
		default:
		}
	}
}

// C returns the receive side of the channel.
func (u *UpdateChannel) C() <-chan Update {
	return u.ch
}
