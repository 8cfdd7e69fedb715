package ui

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/babarot/nctrash/internal/trash"
	"github.com/babarot/nctrash/internal/trash/core"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

const (
	ProgressAuto  = "auto"
	ProgressBar   = "bar"
	ProgressPlain = "plain"
	ProgressNone  = "none"
)

// NewProgress returns the progress reporter for mode, writing to w.
// "auto" draws a bar when stdout is a terminal and plain lines otherwise.
func NewProgress(mode string, w io.Writer, logger *slog.Logger) trash.Progress {
	switch mode {
	case ProgressNone:
		return nopProgress{}
	case ProgressPlain:
		return NewPlainProgress(w)
	case ProgressBar:
		return NewBarProgress(w, logger)
	default:
		if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			return NewBarProgress(w, logger)
		}
		return NewPlainProgress(w)
	}
}

type nopProgress struct{}

func (nopProgress) Start(int)                   {}
func (nopProgress) Completed(core.Item, error) {}
func (nopProgress) Finish()                     {}

// BarProgress draws a Bubble Tea progress bar
type BarProgress struct {
	out    io.Writer
	logger *slog.Logger
	p      *tea.Program
	done   chan struct{}
}

func NewBarProgress(w io.Writer, logger *slog.Logger) *BarProgress {
	return &BarProgress{out: w, logger: logger}
}

func (b *BarProgress) Start(total int) {
	// input is left alone so interrupts reach the caller's signal handler
	b.p = tea.NewProgram(NewModel(),
		tea.WithOutput(b.out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	b.done = make(chan struct{})
	go func() {
		defer close(b.done)
		if _, err := b.p.Run(); err != nil && b.logger != nil {
			b.logger.Error("progress bar failed", "error", err)
		}
	}()
	b.p.Send(startMsg{total: total})
}

func (b *BarProgress) Completed(item core.Item, err error) {
	if b.p != nil {
		b.p.Send(completedMsg{item: item, err: err})
	}
}

func (b *BarProgress) Finish() {
	if b.p == nil {
		return
	}
	b.p.Send(finishMsg{})
	<-b.done
}

// PlainProgress prints one line per finished item
type PlainProgress struct {
	mu    sync.Mutex
	out   io.Writer
	total int
	done  int
}

func NewPlainProgress(w io.Writer) *PlainProgress {
	return &PlainProgress{out: w}
}

func (p *PlainProgress) Start(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = total
	p.done = 0
}

func (p *PlainProgress) Completed(item core.Item, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	if err != nil {
		fmt.Fprintf(p.out, "[%d/%d] failed %s: %v\n", p.done, p.total, item.Name(), err)
		return
	}
	fmt.Fprintf(p.out, "[%d/%d] restored %s\n", p.done, p.total, item.Name())
}

func (p *PlainProgress) Finish() {}

// Count returns the number of completions reported so far
func (p *PlainProgress) Count() (done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done, p.total
}
