package output

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// Progress renders a single-line resource counter for long Azure walks.
// It redraws at most every half second to avoid flicker, and is safe for
// use from the walker while totals keep growing.
type Progress struct {
	mu        sync.Mutex
	message   string
	total     int
	processed int
	lastDraw  time.Time
}

// NewProgress creates a progress tracker with the given message prefix.
func NewProgress(message string) *Progress {
	return &Progress{message: message}
}

// AddTotal grows the expected resource count (totals are discovered
// incrementally, one subscription at a time).
func (p *Progress) AddTotal(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total += n
}

// Increment marks one resource as processed and redraws if due.
func (p *Progress) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.processed++
	if JSONMode || p.total == 0 {
		return
	}
	now := time.Now()
	if now.Sub(p.lastDraw) < 500*time.Millisecond {
		return
	}
	p.lastDraw = now
	percent := float64(p.processed) / float64(p.total) * 100
	line := fmt.Sprintf("%s: %d/%d (%.1f%%)", p.message, p.processed, p.total, percent)
	if !NoColor() {
		line = StyleMuted.Render(line)
	}
	fmt.Fprintf(os.Stderr, "\r%s", line)
}

// Done clears the progress line.
func (p *Progress) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if JSONMode || p.total == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "\r\033[K")
}

// Counts returns processed and total resource counts.
func (p *Progress) Counts() (processed, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.processed, p.total
}
