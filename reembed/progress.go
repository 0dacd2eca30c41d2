package reembed

import (
	"fmt"
	"io"
	"time"
)

// progressReporter prints periodic throughput lines for a reembedding
// run. Run drives it from a single goroutine, so it carries no lock.
type progressReporter struct {
	w         io.Writer
	total     int
	interval  int
	done      int
	lastPrint int
	start     time.Time
}

func newProgressReporter(w io.Writer, total, interval int) *progressReporter {
	return &progressReporter{w: w, total: total, interval: interval, start: time.Now()}
}

// Advance records n more embedded links. A line is printed whenever the
// report interval is crossed, and once more when the run completes.
func (p *progressReporter) Advance(n int) {
	p.done += n
	if p.done > p.total {
		p.done = p.total
	}
	if p.done-p.lastPrint < p.interval && p.done < p.total {
		return
	}
	p.lastPrint = p.done

	percent := 0.0
	if p.total > 0 {
		percent = float64(p.done) / float64(p.total) * 100
	}
	fmt.Fprintf(p.w, "embedded %d/%d links (%.0f%%, %.1f links/s)\n",
		p.done, p.total, percent, float64(p.done)/time.Since(p.start).Seconds())
}

// Elapsed reports how long the run has been going.
func (p *progressReporter) Elapsed() time.Duration {
	return time.Since(p.start)
}
