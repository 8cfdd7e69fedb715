package webdav

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/babarot/nctrash/internal/trash/core"
)

const (
	methodPropfind = "PROPFIND"
	methodMove     = "MOVE"
)

// Storage is a Nextcloud trash bin reached over WebDAV
type Storage struct {
	config core.Config
	base   *url.URL
	root   *url.URL
	client *http.Client
	logger *slog.Logger
}

// statically ensure that Storage implements core.Storage.
var _ core.Storage = (*Storage)(nil)

// NewStorage validates cfg and prepares a client for it.
// No request is sent until List or Restore is called.
func NewStorage(cfg *core.Config, logger *slog.Logger) (*Storage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidConfig, err)
	}

	// the trash collection lives below any path prefix of the base url
	rootRef, err := url.Parse(strings.TrimSuffix(base.EscapedPath(), "/") + TrashPath(cfg.User))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidConfig, err)
	}

	s := &Storage{
		config: *cfg,
		base:   base,
		root:   base.ResolveReference(rootRef),
		logger: logger.With("storage", "webdav"),
	}
	s.client = &http.Client{
		Timeout: cfg.Timeout,
		// following a 301/302/303 would turn MOVE into GET and
		// report a restore that never happened
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
		Transport: &authRoundTripper{
			rt:        newTransport(cfg.Concurrency),
			user:      cfg.User,
			password:  cfg.Password,
			userAgent: cfg.UserAgent,
			logger:    s.logger,
		},
	}

	return s, nil
}

// List returns every item in the trash bin. The first entry of the
// listing is the trash collection itself and is not returned.
func (s *Storage) List(ctx context.Context) ([]core.Item, error) {
	req, err := http.NewRequestWithContext(ctx, methodPropfind, s.root.String(), strings.NewReader(propfindBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Depth", "1")
	req.Header.Set("Content-Type", "application/xml; charset=utf-8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.root.Path, err)
	}
	defer drainAndClose(resp)

	if !isSuccess(resp.StatusCode) {
		return nil, &core.RequestError{Op: "list", Path: s.root.Path, Status: resp.StatusCode}
	}

	hrefs, err := parseHrefs(resp.Body)
	if err != nil {
		return nil, &core.ParseError{Path: s.root.Path, Err: err}
	}

	if len(hrefs) <= 1 {
		return []core.Item{}, nil
	}

	items := make([]core.Item, 0, len(hrefs)-1)
	for _, href := range hrefs[1:] {
		items = append(items, core.Item{Href: href})
	}
	s.logger.Debug("listed trash", "root", s.root.Path, "items", len(items))
	return items, nil
}

// Restore moves item from the trash to its restore location
func (s *Storage) Restore(ctx context.Context, item core.Item) error {
	dst, err := RestoreDestination(item.Href)
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}

	ref, err := url.Parse(item.Href)
	if err != nil {
		return fmt.Errorf("restore %q: %w", item.Href, err)
	}

	req, err := http.NewRequestWithContext(ctx, methodMove, s.base.ResolveReference(ref).String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Destination", dst)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("restore %s: %w", item.Href, err)
	}
	defer drainAndClose(resp)

	if !isSuccess(resp.StatusCode) {
		return &core.RequestError{Op: "restore", Path: item.Href, Status: resp.StatusCode}
	}
	return nil
}

// Info returns information about the storage
func (s *Storage) Info() *core.StorageInfo {
	return &core.StorageInfo{
		Root:        s.root.Redacted(),
		User:        s.config.User,
		Concurrency: s.config.Concurrency,
	}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func drainAndClose(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
