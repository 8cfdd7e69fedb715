package trash

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/babarot/nctrash/internal/config"
)

// TestItem is a mock implementation of Filterable for testing
type TestItem struct {
	name string
	path string
}

func (t TestItem) GetName() string {
	return t.name
}

func (t TestItem) GetPath() string {
	return t.path
}

// createTestItems generates a slice of test items for various test scenarios
func createTestItems() []TestItem {
	return []TestItem{
		{name: "file1.txt.d1", path: "/trash/file1.txt.d1"},
		{name: "file2.log.d2", path: "/trash/file2.log.d2"},
		{name: "important.txt.d3", path: "/trash/important.txt.d3"},
		{name: "temp.tmp.d4", path: "/trash/temp.tmp.d4"},
	}
}

func names(items []TestItem) []string {
	var out []string
	for _, item := range items {
		out = append(out, item.name)
	}
	return out
}

func TestFilter(t *testing.T) {
	testCases := []struct {
		name         string
		exclude      config.ExcludeConfig
		wantKept     []string
		wantRejected []string
	}{
		{
			name:     "No filter",
			exclude:  config.ExcludeConfig{},
			wantKept: []string{"file1.txt.d1", "file2.log.d2", "important.txt.d3", "temp.tmp.d4"},
		},
		{
			name:         "Exclude by name",
			exclude:      config.ExcludeConfig{Names: []string{"important.txt.d3"}},
			wantKept:     []string{"file1.txt.d1", "file2.log.d2", "temp.tmp.d4"},
			wantRejected: []string{"important.txt.d3"},
		},
		{
			name:         "Exclude by pattern",
			exclude:      config.ExcludeConfig{Patterns: []string{`\.log\.d\d+$`}},
			wantKept:     []string{"file1.txt.d1", "important.txt.d3", "temp.tmp.d4"},
			wantRejected: []string{"file2.log.d2"},
		},
		{
			name:         "Exclude by glob",
			exclude:      config.ExcludeConfig{Globs: []string{"*.tmp.*", "file*"}},
			wantKept:     []string{"important.txt.d3"},
			wantRejected: []string{"file1.txt.d1", "file2.log.d2", "temp.tmp.d4"},
		},
		{
			name: "Invalid rules are ignored",
			exclude: config.ExcludeConfig{
				Patterns: []string{"("},
				Globs:    []string{"[a"},
			},
			wantKept: []string{"file1.txt.d1", "file2.log.d2", "important.txt.d3", "temp.tmp.d4"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			kept, rejected := Filter(createTestItems(), FilterOptions{Exclude: tc.exclude})

			if got := names(kept); !equal(got, tc.wantKept) {
				t.Errorf("kept = %v, want %v", got, tc.wantKept)
			}
			if got := names(rejected); !equal(got, tc.wantRejected) {
				t.Errorf("rejected = %v, want %v", got, tc.wantRejected)
			}
		})
	}
}

func TestFilterReportsInvalidRules(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	kept, _ := Filter(createTestItems(), FilterOptions{
		Exclude: config.ExcludeConfig{Patterns: []string{"("}, Globs: []string{"[a"}},
		Logger:  logger,
	})
	if len(kept) != len(createTestItems()) {
		t.Errorf("invalid rules must not exclude anything, kept %v", names(kept))
	}
	for _, want := range []string{"skipping invalid exclude pattern", "skipping invalid exclude glob"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("logger missing %q: %q", want, logs.String())
		}
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
