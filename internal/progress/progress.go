// Package progress draws a single-line console progress bar.
package progress

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// DefaultWidth is the number of cells between the brackets.
const DefaultWidth = 70

// Bar renders "[=====>    ] 42% 1.3s" lines terminated by a carriage
// return, so successive renders overwrite each other.
//
// A Bar with a nil writer counts ticks but draws nothing.
type Bar struct {
	w     io.Writer
	total int
	width int
	ticks int
	start time.Time
	now   func() time.Time
}

// New returns a bar for total ticks. width <= 0 selects DefaultWidth.
func New(w io.Writer, total, width int) *Bar {
	if width <= 0 {
		width = DefaultWidth
	}
	b := &Bar{w: w, total: total, width: width, now: time.Now}
	b.start = b.now()
	return b
}

// Inc advances the bar by one tick and returns the new count.
func (b *Bar) Inc() int {
	b.ticks++
	return b.ticks
}

// Ticks returns the number of completed ticks.
func (b *Bar) Ticks() int {
	return b.ticks
}

// Percent returns the completed share in [0, 100].
func (b *Bar) Percent() int {
	if b.total <= 0 {
		return 100
	}
	return min(b.ticks*100/b.total, 100)
}

// String formats the bar without the trailing carriage return.
func (b *Bar) String() string {
	pos := b.width
	if b.total > 0 {
		pos = min(b.width*b.ticks/b.total, b.width)
	}

	var sb strings.Builder
	sb.Grow(b.width + 16)
	sb.WriteByte('[')
	sb.WriteString(strings.Repeat("=", pos))
	if pos < b.width {
		sb.WriteByte('>')
		sb.WriteString(strings.Repeat(" ", b.width-pos-1))
	}
	elapsed := b.now().Sub(b.start).Seconds()
	fmt.Fprintf(&sb, "] %d%% %.1fs", b.Percent(), elapsed)
	return sb.String()
}

// Render draws the current state.
func (b *Bar) Render() {
	if b.w == nil {
		return
	}
	fmt.Fprintf(b.w, "%s\r", b)
}

// Done draws the final state and ends the line.
func (b *Bar) Done() {
	if b.w == nil {
		return
	}
	fmt.Fprintf(b.w, "%s\n", b)
}
