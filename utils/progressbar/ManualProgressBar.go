// Package progressbar implements functionality of printing a progress
// bar to a terminal
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/samuelfneumann/gemgrid/utils/intutils"
)

// ManualProgressBar implements progress bar functionality that must
// be manually managed. That is, Display must be called whenever an
// updated progress bar should be printed.
//
// ManualProgressBar does not use concurrency.
type ManualProgressBar struct {
	out             io.Writer
	width           int
	maxProgress     int
	currentProgress int
	status          string
	startTime       time.Time
	now             func() time.Time
}

// NewManualProgressBar returns a new ManualProgressBar which is width
// characters wide, reaches 100% after max calls to Increment, and is
// printed to out
func NewManualProgressBar(out io.Writer, width, max int) *ManualProgressBar {
	return &ManualProgressBar{
		out:         out,
		width:       intutils.Max(width, 0),
		maxProgress: intutils.Max(max, 1),
		startTime:   time.Now(),
		now:         time.Now,
	}
}

// Increment increments the internal progress counter. Each time an
// iteration is performed, Increment should be called.
func (p *ManualProgressBar) Increment() {
	if p.currentProgress < p.maxProgress {
		p.currentProgress++
	}
}

// SetStatus sets a message which is printed after the bar
func (p *ManualProgressBar) SetStatus(format string, a ...interface{}) {
	p.status = fmt.Sprintf(format, a...)
}

// Progress returns the fraction of the work done, in [0, 1]
func (p *ManualProgressBar) Progress() float64 {
	return float64(p.currentProgress) / float64(p.maxProgress)
}

// String returns the progress bar
func (p *ManualProgressBar) String() string {
	var bar strings.Builder
	bar.WriteString("|")

	filled := int(p.Progress() * float64(p.width))
	bar.WriteString(strings.Repeat("█", filled))
	bar.WriteString(strings.Repeat(" ", p.width-filled))

	fmt.Fprintf(&bar, "| [%.2f%% | elapsed: %v]", p.Progress()*100,
		p.now().Sub(p.startTime).Truncate(time.Second))
	if p.status != "" {
		bar.WriteString(" " + p.status)
	}
	return bar.String()
}

// Display prints the progress bar over the previously displayed one
func (p *ManualProgressBar) Display() {
	fmt.Fprintf(p.out, "\r\033[K%v", p.String())
}

// Close moves the output past the progress bar
func (p *ManualProgressBar) Close() {
	fmt.Fprintln(p.out)
}
