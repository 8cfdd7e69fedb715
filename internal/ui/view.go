package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/babarot/nctrash/internal/ui/styles"
)

func (m Model) View() string {
	counter := fmt.Sprintf("%d/%d", m.done, m.total)

	barWidth := m.width - padding*2 - len(counter) - 1
	if barWidth > maxBarWidth {
		barWidth = maxBarWidth
	}
	if barWidth < 10 {
		barWidth = 10
	}
	m.bar.Width = barWidth

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", padding))
	b.WriteString(m.bar.ViewAs(m.percent()))
	b.WriteString(" ")
	b.WriteString(styles.Counter.Render(counter))
	if m.failed > 0 {
		b.WriteString(" ")
		b.WriteString(styles.Failed.Render(fmt.Sprintf("%d failed", m.failed)))
	}
	b.WriteString("\n")

	if m.quitting {
		elapsed := time.Since(m.started).Round(100 * time.Millisecond)
		b.WriteString(strings.Repeat(" ", padding))
		b.WriteString(styles.Done.Render("done"))
		b.WriteString(styles.Current.Render(" in " + elapsed.String()))
		b.WriteString("\n")
		return b.String()
	}

	if m.current != "" {
		b.WriteString(strings.Repeat(" ", padding))
		b.WriteString(styles.Current.Render(m.current))
		b.WriteString("\n")
	}
	return b.String()
}
