package trash

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/babarot/nctrash/internal/trash/core"
	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"
)

// Progress receives the lifecycle of a restore run.
// Completed is called exactly once per dispatched item and may be called
// from several goroutines at once.
type Progress interface {
	Start(total int)
	Completed(item core.Item, err error)
	Finish()
}

type nopProgress struct{}

func (nopProgress) Start(int)                   {}
func (nopProgress) Completed(core.Item, error) {}
func (nopProgress) Finish()                     {}

// Failure is an item whose restore gave up
type Failure struct {
	Item     core.Item
	Attempts int
	Err      error
}

// Result summarizes a restore run
type Result struct {
	// Total is the number of items dispatched, excluding skipped ones
	Total    int
	Restored int
	Skipped  []core.Item
	Failures []Failure
	Elapsed  time.Duration
}

// OK reports whether every dispatched item was restored
func (r Result) OK() bool {
	return len(r.Failures) == 0 && r.Restored == r.Total
}

// Manager restores the contents of a trash bin with a bounded worker pool
type Manager struct {
	storage     core.Storage
	concurrency int
	retry       core.RetryPolicy
	filter      FilterOptions
	progress    Progress
	logger      *slog.Logger
}

type ManagerOption func(*Manager)

// WithConcurrency sets the worker-pool size
func WithConcurrency(n int) ManagerOption {
	return func(m *Manager) {
		m.concurrency = n
	}
}

func WithRetryPolicy(p core.RetryPolicy) ManagerOption {
	return func(m *Manager) {
		m.retry = p
	}
}

func WithFilter(opts FilterOptions) ManagerOption {
	return func(m *Manager) {
		m.filter = opts
	}
}

func WithProgress(p Progress) ManagerOption {
	return func(m *Manager) {
		if p != nil {
			m.progress = p
		}
	}
}

func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a new trash manager for the given storage
func NewManager(storage core.Storage, opts ...ManagerOption) (*Manager, error) {
	if storage == nil {
		return nil, errors.New("no storage backend configured")
	}

	m := &Manager{
		storage:     storage,
		concurrency: core.DefaultConcurrency,
		retry:       core.NewDefaultRetryPolicy(),
		progress:    nopProgress{},
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.concurrency < 1 {
		return nil, fmt.Errorf("concurrency must be at least 1, got %d", m.concurrency)
	}
	if info := storage.Info(); info != nil && info.Concurrency < m.concurrency {
		m.logger.Warn("storage connection pool is smaller than the worker pool",
			"pool", info.Concurrency, "workers", m.concurrency)
	}
	return m, nil
}

// List takes a snapshot of the trash and applies the exclude rules.
// Items trashed after the snapshot are not part of it.
func (m *Manager) List(ctx context.Context) (items []core.Item, skipped []core.Item, err error) {
	all, err := m.storage.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list trash: %w", err)
	}
	opts := m.filter
	if opts.Logger == nil {
		opts.Logger = m.logger
	}
	items, skipped = Filter(all, opts)
	m.logger.Debug("trash listed", "found", len(all), "kept", len(items), "skipped", len(skipped))
	return items, skipped, nil
}

// RestoreAll restores every item of a fresh snapshot of the trash.
//
// Listing errors are returned as is and nothing is restored. Restore errors
// are retried per the retry policy; items that still fail end up in
// Result.Failures. When ctx is cancelled the remaining work is abandoned and
// ctx.Err() is returned along with the partial result.
func (m *Manager) RestoreAll(ctx context.Context) (Result, error) {
	start := time.Now()

	items, skipped, err := m.List(ctx)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Total:   len(items),
		Skipped: skipped,
	}
	m.logger.Info("restoring trash",
		"items", len(items),
		"skipped", len(skipped),
		"threads", m.concurrency,
	)

	if len(items) == 0 {
		result.Elapsed = time.Since(start)
		return result, nil
	}

	m.progress.Start(len(items))
	defer m.progress.Finish()

	var (
		restored atomic.Int64
		mu       sync.Mutex
		failures []Failure
	)

	var g errgroup.Group
	g.SetLimit(m.concurrency)

	for _, item := range items {
		if ctx.Err() != nil {
			break
		}
		item := item // per-iteration copy (go directive < 1.22)
		g.Go(func() error {
			attempts, err := m.restoreWithRetry(ctx, item)
			if err != nil && ctx.Err() != nil {
				// abandoned, not a completion
				return ctx.Err()
			}
			m.progress.Completed(item, err)

			if err != nil {
				m.logger.Warn("restore failed", "item", item.Href, "attempts", attempts, "error", err)
				mu.Lock()
				failures = append(failures, Failure{Item: item, Attempts: attempts, Err: err})
				mu.Unlock()
				return nil
			}
			restored.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(failures, func(i, j int) bool {
		return failures[i].Item.Href < failures[j].Item.Href
	})
	result.Restored = int(restored.Load())
	result.Failures = failures
	result.Elapsed = time.Since(start)

	if err := ctx.Err(); err != nil {
		return result, err
	}

	m.logger.Info("restore finished",
		"restored", result.Restored,
		"failed", len(result.Failures),
		"elapsed", result.Elapsed,
	)
	return result, nil
}

// restoreWithRetry restores item, backing off exponentially between
// attempts. It returns the number of attempts made.
func (m *Manager) restoreWithRetry(ctx context.Context, item core.Item) (int, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = m.retry.InitialInterval
	bo.MaxInterval = m.retry.MaxInterval
	bo.MaxElapsedTime = 0
	bo.Reset()

	var b backoff.BackOff = bo
	if !m.retry.Unlimited() {
		b = backoff.WithMaxRetries(b, uint64(m.retry.MaxRetries))
	}

	attempts := 0
	operation := func() error {
		attempts++
		err := m.storage.Restore(ctx, item)
		if err != nil && core.IsPermanent(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), func(err error, d time.Duration) {
		m.logger.Debug("restore attempt failed",
			"item", item.Href,
			"attempt", attempts,
			"next", d,
			"error", err,
		)
	})
	return attempts, err
}
