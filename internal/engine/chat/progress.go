package chat

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ReviewingMessage is shown while a review is in flight.
const ReviewingMessage = "🔍 **Reviewing your code...**"

// Progress renders review status to an io.Writer: the session output in
// chat, stderr for one-shot reviews.
// Output is suppressed in JSON mode to avoid corrupting machine-readable output.
type Progress struct {
	w          io.Writer
	suppressed bool
	render     func(string) string
	mu         sync.Mutex
	reviews    int
	failed     int
}

// NewProgress creates a progress reporter writing to w. render turns the
// markdown status line into terminal output; nil writes it unchanged.
func NewProgress(w io.Writer, suppressed bool, render func(string) string) *Progress {
	if render == nil {
		render = func(s string) string { return s }
	}
	return &Progress{w: w, suppressed: suppressed, render: render}
}

// OnStart is called when a review request is sent to the model.
func (p *Progress) OnStart() {
	if p.suppressed {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(p.w, p.render(ReviewingMessage))
}

// OnComplete is called when the model call returns.
func (p *Progress) OnComplete(err error, dur time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.reviews++
	if err != nil {
		p.failed++
	}
	if p.suppressed {
		return
	}

	if err != nil {
		fmt.Fprintf(p.w, "  ❌ review failed after %s\n", formatDuration(dur))
		return
	}
	fmt.Fprintf(p.w, "  ✅ review finished in %s\n", formatDuration(dur))
}

// Counts returns how many reviews ran and how many of them failed.
func (p *Progress) Counts() (reviews, failed int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reviews, p.failed
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
