package table

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/babarot/nctrash/internal/trash"
	"github.com/babarot/nctrash/internal/trash/core"
	"github.com/fatih/color"
)

func TestPrintItems(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	PrintItems(&buf, []core.Item{
		{Href: "/trash/b.txt.d2"},
		{Href: "/trash/a%20b.txt.d1"},
	})

	out := buf.String()
	a := strings.Index(out, "/trash/a%20b.txt.d1")
	b := strings.Index(out, "/trash/b.txt.d2")
	if a < 0 || b < 0 || a > b {
		t.Errorf("items missing or unsorted: %q", out)
	}
	if !strings.Contains(out, "a b.txt.d1") {
		t.Errorf("name not unescaped: %q", out)
	}
}

func TestPrintSummary(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	PrintSummary(&buf, trash.Result{
		Total:    1200,
		Restored: 1199,
		Skipped:  []core.Item{{Href: "/trash/skip"}},
		Failures: []trash.Failure{
			{Item: core.Item{Href: "/trash/locked.d1"}, Attempts: 11, Err: errors.New("423 Locked")},
		},
		Elapsed: 3 * time.Second,
	})

	out := buf.String()
	for _, want := range []string{"Restored 1,199 of 1,200 items in 3s", "(1 excluded)", "locked.d1", "423 Locked"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q: %q", want, out)
		}
	}
}
