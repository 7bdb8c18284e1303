// Package watcher polls GitHub Actions run state for a set of watched
// repositories and fans updates out to subscribers.
package watcher

import (
	"sort"
	"sync"
)

// WatchSet is the set of repository identifiers ("owner/name") currently
// being monitored. It is mutated from the UI goroutine and read by the
// poll loop, so all access is synchronized. Identifiers are compared by
// exact string match; no case or whitespace normalization is performed.
type WatchSet struct {
	mu    sync.RWMutex
	repos map[string]struct{}
}

// NewWatchSet creates a watch set seeded with the given repositories.
func NewWatchSet(repos ...string) *WatchSet {
	w := &WatchSet{repos: make(map[string]struct{}, len(repos))}
	for _, repo := range repos {
		w.repos[repo] = struct{}{}
	}

	return w
}

// Add inserts a repository, reporting whether it was not already present.
// Re-adding a watched repository is a no-op.
func (w *WatchSet) Add(repo string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.repos[repo]; ok {
		return false
	}

	w.repos[repo] = struct{}{}

	return true
}

// Remove deletes a repository, reporting whether it was present.
func (w *WatchSet) Remove(repo string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.repos[repo]; !ok {
		return false
	}

	delete(w.repos, repo)

	return true
}

// Has reports whether a repository is being watched.
func (w *WatchSet) Has(repo string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	_, ok := w.repos[repo]

	return ok
}

// Len returns the number of watched repositories.
func (w *WatchSet) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return len(w.repos)
}

// Snapshot returns a sorted copy of the current members. The poll loop
// takes one snapshot at the start of each cycle; mutations take effect on
// the next cycle.
func (w *WatchSet) Snapshot() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	repos := make([]string, 0, len(w.repos))
	for repo := range w.repos {
		repos = append(repos, repo)
	}

	sort.Strings(repos)

	return repos
}
