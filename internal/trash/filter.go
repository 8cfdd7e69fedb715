package trash

import (
	"log/slog"
	"regexp"

	"github.com/babarot/nctrash/internal/config"
	"github.com/gobwas/glob"
	"github.com/samber/lo"
)

// Filterable defines the interface that trashed items must implement to be filtered
type Filterable interface {
	// GetName returns the base name of the item
	GetName() string
	// GetPath returns the path of the item in trash
	GetPath() string
}

// FilterOptions holds filtering configuration
type FilterOptions struct {
	Exclude config.ExcludeConfig

	// Logger reports exclude rules that do not compile
	Logger *slog.Logger
}

// Filter drops the items matched by any exclude rule and returns the
// remaining items together with the rejected ones.
func Filter[T Filterable](items []T, opts FilterOptions) (kept []T, rejected []T) {
	kept = items
	kept = rejectByNames(kept, opts.Exclude.Names)
	kept = rejectByPatterns(kept, opts.Exclude.Patterns, opts.Logger)
	kept = rejectByGlobs(kept, opts.Exclude.Globs, opts.Logger)

	keptPaths := lo.SliceToMap(kept, func(item T) (string, struct{}) {
		return item.GetPath(), struct{}{}
	})
	rejected = lo.Reject(items, func(item T, _ int) bool {
		_, ok := keptPaths[item.GetPath()]
		return ok
	})
	return kept, rejected
}

func rejectByNames[T Filterable](items []T, names []string) []T {
	if len(names) == 0 {
		return items
	}

	return lo.Reject(items, func(item T, _ int) bool {
		return lo.Contains(names, item.GetName())
	})
}

func rejectByPatterns[T Filterable](items []T, patterns []string, logger *slog.Logger) []T {
	if len(patterns) == 0 {
		return items
	}

	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			if logger != nil {
				logger.Warn("skipping invalid exclude pattern", "pattern", pattern, "error", err)
			}
			continue
		}
		res = append(res, re)
	}

	return lo.Reject(items, func(item T, _ int) bool {
		return lo.SomeBy(res, func(re *regexp.Regexp) bool {
			return re.MatchString(item.GetName())
		})
	})
}

func rejectByGlobs[T Filterable](items []T, globs []string, logger *slog.Logger) []T {
	if len(globs) == 0 {
		return items
	}

	gs := make([]glob.Glob, 0, len(globs))
	for _, g := range globs {
		compiled, err := glob.Compile(g)
		if err != nil {
			if logger != nil {
				logger.Warn("skipping invalid exclude glob", "glob", g, "error", err)
			}
			continue
		}
		gs = append(gs, compiled)
	}

	return lo.Reject(items, func(item T, _ int) bool {
		return lo.SomeBy(gs, func(g glob.Glob) bool {
			return g.Match(item.GetName())
		})
	})
}
