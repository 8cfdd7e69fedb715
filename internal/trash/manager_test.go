package trash

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/babarot/nctrash/internal/config"
	"github.com/babarot/nctrash/internal/trash/core"
)

// memStorage is an in-memory trash bin for testing
type memStorage struct {
	hrefs   []string
	listErr error

	// failures[href] is how many times Restore fails before succeeding
	failures map[string]int
	// restoreErr is returned by every failing attempt
	restoreErr error
	delay      time.Duration
	block      chan struct{}

	mu       sync.Mutex
	attempts map[string]int
	restored []string

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	calls       atomic.Int32
}

func (s *memStorage) List(ctx context.Context) ([]core.Item, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	if len(s.hrefs) <= 1 {
		return []core.Item{}, nil
	}
	items := make([]core.Item, 0, len(s.hrefs)-1)
	for _, href := range s.hrefs[1:] {
		items = append(items, core.Item{Href: href})
	}
	return items, nil
}

func (s *memStorage) Restore(ctx context.Context, item core.Item) error {
	s.calls.Add(1)
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		cur := s.maxInFlight.Load()
		if n <= cur || s.maxInFlight.CompareAndSwap(cur, n) {
			break
		}
	}

	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attempts == nil {
		s.attempts = make(map[string]int)
	}
	s.attempts[item.Href]++
	if s.attempts[item.Href] <= s.failures[item.Href] {
		if s.restoreErr != nil {
			return s.restoreErr
		}
		return &core.RequestError{Op: "restore", Path: item.Href, Status: http.StatusInternalServerError}
	}
	s.restored = append(s.restored, item.Href)
	return nil
}

func (s *memStorage) Info() *core.StorageInfo {
	return &core.StorageInfo{Root: "mem://trash", User: "alice", Concurrency: 64}
}

// recordingProgress counts the calls made by the manager
type recordingProgress struct {
	mu        sync.Mutex
	total     int
	started   int
	completed int
	failed    int
	finished  int
}

func (p *recordingProgress) Start(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.started++
	p.total = total
}

func (p *recordingProgress) Completed(_ core.Item, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.completed++
	if err != nil {
		p.failed++
	}
}

func (p *recordingProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.finished++
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fastRetries(maxRetries int) core.RetryPolicy {
	return core.RetryPolicy{
		MaxRetries:      maxRetries,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
	}
}

func hrefs(n int) []string {
	out := []string{"/trash/"}
	for i := 0; i < n; i++ {
		out = append(out, fmt.Sprintf("/trash/file%03d.txt", i))
	}
	return out
}

func newTestManager(t *testing.T, s core.Storage, opts ...ManagerOption) *Manager {
	t.Helper()
	opts = append([]ManagerOption{WithLogger(testLogger()), WithRetryPolicy(fastRetries(10))}, opts...)
	m, err := NewManager(s, opts...)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestRestoreAll(t *testing.T) {
	s := &memStorage{hrefs: []string{"/trash/", "/trash/a.txt", "/trash/b.txt"}}
	p := &recordingProgress{}

	result, err := newTestManager(t, s, WithProgress(p), WithConcurrency(2)).RestoreAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Total != 2 || result.Restored != 2 || !result.OK() {
		t.Errorf("unexpected result %+v", result)
	}
	if len(s.restored) != 2 {
		t.Errorf("restored %v", s.restored)
	}
	if p.started != 1 || p.finished != 1 || p.total != 2 || p.completed != 2 {
		t.Errorf("unexpected progress %+v", p)
	}
}

func TestRestoreAllEmpty(t *testing.T) {
	for _, listing := range [][]string{nil, {"/trash/"}} {
		s := &memStorage{hrefs: listing}
		p := &recordingProgress{}

		result, err := newTestManager(t, s, WithProgress(p)).RestoreAll(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Total != 0 || !result.OK() {
			t.Errorf("unexpected result %+v", result)
		}
		if s.calls.Load() != 0 {
			t.Errorf("expected no restore calls, got %d", s.calls.Load())
		}
		if p.started != 0 || p.completed != 0 {
			t.Errorf("expected no progress, got %+v", p)
		}
	}
}

func TestRestoreAllEventuallySucceeds(t *testing.T) {
	const (
		n = 25
		k = 3
	)

	for _, policy := range []core.RetryPolicy{fastRetries(0), fastRetries(k)} {
		t.Run(fmt.Sprintf("max_retries=%d", policy.MaxRetries), func(t *testing.T) {
			s := &memStorage{hrefs: hrefs(n), failures: map[string]int{}}
			for _, href := range s.hrefs[1:] {
				s.failures[href] = k
			}
			p := &recordingProgress{}

			result, err := newTestManager(t, s, WithProgress(p), WithRetryPolicy(policy), WithConcurrency(5)).
				RestoreAll(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if result.Restored != n || !result.OK() {
				t.Errorf("restored %d of %d, failures %v", result.Restored, n, result.Failures)
			}
			if p.completed != n {
				t.Errorf("progress reported %d completions, want %d", p.completed, n)
			}
			for href, got := range s.attempts {
				if got != k+1 {
					t.Errorf("%s: %d attempts, want %d", href, got, k+1)
				}
			}
		})
	}
}

func TestRestoreAllListError(t *testing.T) {
	listErr := &core.RequestError{Op: "list", Path: "/trash", Status: http.StatusUnauthorized}
	s := &memStorage{hrefs: hrefs(3), listErr: listErr}

	_, err := newTestManager(t, s).RestoreAll(context.Background())
	if !errors.Is(err, listErr) {
		t.Fatalf("expected the listing error, got %v", err)
	}
	if s.calls.Load() != 0 {
		t.Errorf("expected no restore calls, got %d", s.calls.Load())
	}
}

func TestRestoreAllConcurrencyBound(t *testing.T) {
	for _, n := range []int{1, 3, 8} {
		t.Run(fmt.Sprintf("threads=%d", n), func(t *testing.T) {
			s := &memStorage{hrefs: hrefs(40), delay: 2 * time.Millisecond}

			result, err := newTestManager(t, s, WithConcurrency(n)).RestoreAll(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Restored != 40 {
				t.Errorf("restored %d, want 40", result.Restored)
			}
			if got := s.maxInFlight.Load(); got > int32(n) {
				t.Errorf("%d restores in flight, limit is %d", got, n)
			}
		})
	}
}

func TestRestoreAllGivesUp(t *testing.T) {
	t.Run("retries exhausted", func(t *testing.T) {
		s := &memStorage{hrefs: []string{"/trash/", "/trash/ok.txt", "/trash/stuck.txt"}, failures: map[string]int{"/trash/stuck.txt": 1000}}
		p := &recordingProgress{}

		result, err := newTestManager(t, s, WithProgress(p), WithRetryPolicy(fastRetries(4))).RestoreAll(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.OK() || result.Restored != 1 || len(result.Failures) != 1 {
			t.Fatalf("unexpected result %+v", result)
		}
		f := result.Failures[0]
		if f.Item.Href != "/trash/stuck.txt" || f.Attempts != 5 {
			t.Errorf("unexpected failure %+v", f)
		}
		if !core.IsRequestError(f.Err) {
			t.Errorf("last error should be kept, got %v", f.Err)
		}
		if p.completed != 2 || p.failed != 1 {
			t.Errorf("unexpected progress %+v", p)
		}
	})

	t.Run("permanent error is not retried", func(t *testing.T) {
		s := &memStorage{
			hrefs:      []string{"/trash/", "/trash/gone.txt"},
			failures:   map[string]int{"/trash/gone.txt": 1000},
			restoreErr: &core.RequestError{Op: "restore", Path: "/trash/gone.txt", Status: http.StatusNotFound},
		}

		result, err := newTestManager(t, s, WithRetryPolicy(fastRetries(0))).RestoreAll(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Failures) != 1 || result.Failures[0].Attempts != 1 {
			t.Fatalf("unexpected result %+v", result)
		}
	})
}

func TestRestoreAllSkipsExcluded(t *testing.T) {
	s := &memStorage{hrefs: []string{"/trash/", "/trash/keep.txt", "/trash/cache.tmp"}}

	result, err := newTestManager(t, s, WithFilter(FilterOptions{
		Exclude: config.ExcludeConfig{Globs: []string{"*.tmp"}},
	})).RestoreAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 1 || result.Restored != 1 || len(result.Skipped) != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Skipped[0].Href != "/trash/cache.tmp" {
		t.Errorf("skipped %v", result.Skipped)
	}
	if len(s.restored) != 1 || s.restored[0] != "/trash/keep.txt" {
		t.Errorf("restored %v", s.restored)
	}
}

func TestRestoreAllCancel(t *testing.T) {
	s := &memStorage{hrefs: hrefs(10), block: make(chan struct{})}
	p := &recordingProgress{}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		for s.calls.Load() == 0 {
			time.Sleep(time.Millisecond)
		}
		cancel()
	}()

	result, err := newTestManager(t, s, WithProgress(p), WithConcurrency(2)).RestoreAll(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.Restored != 0 {
		t.Errorf("restored %d", result.Restored)
	}
	if p.completed != 0 {
		t.Errorf("abandoned items must not count as completed, got %d", p.completed)
	}
}

func TestNewManager(t *testing.T) {
	if _, err := NewManager(nil); err == nil {
		t.Error("expected an error without storage")
	}
	if _, err := NewManager(&memStorage{}, WithConcurrency(0)); err == nil {
		t.Error("expected an error for zero concurrency")
	}
}
