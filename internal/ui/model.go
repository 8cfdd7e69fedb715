package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
)

const (
	defaultWidth = 80
	maxBarWidth  = 60
	padding      = 2
)

// Model renders a progress bar for a restore run following the Bubble Tea pattern
type Model struct {
	bar progress.Model

	total    int
	done     int
	failed   int
	current  string
	started  time.Time
	width    int
	quitting bool
}

// NewModel creates a new progress model
func NewModel() Model {
	return Model{
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		width:   defaultWidth,
		started: time.Now(),
	}
}

// percent returns the completed fraction, 1 when there is nothing to do
func (m Model) percent() float64 {
	if m.total == 0 {
		return 1
	}
	return float64(m.done) / float64(m.total)
}
