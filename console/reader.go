package console

import (
	"context"
	"time"
)

// DefaultReadTimeout bounds every interactive prompt.
const DefaultReadTimeout = 30 * time.Second

// maxLineLen clamps one input line; bytes beyond it are dropped rather than
// grown into an unbounded buffer.
const maxLineLen = 128

const timeoutNotice = "\r\nUser input timeout...\r\n"

// Result is the outcome of one timed line read.
type Result struct {
	OK   bool   // a terminator arrived before the deadline
	Quit bool   // the line was exactly "q" or "Q"
	Text string // line content without the terminator
}

// Reader assembles newline-terminated lines from the pump's byte stream,
// bounded by a per-call deadline measured at entry.
type Reader struct {
	in      <-chan byte
	w       *Writer
	timeout time.Duration
}

func NewReader(in <-chan byte, w *Writer, timeout time.Duration) *Reader {
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}
	return &Reader{in: in, w: w, timeout: timeout}
}

// ReadLine reads bytes until a terminator ('\r' or '\n') or the deadline.
// On timeout it posts exactly one notice to the write queue and reports
// OK=false; the caller restarts its own prompt loop. An empty line before
// the deadline is a success with empty text. A line of exactly q/Q sets
// Quit; the caller must treat that as "abort and return to the dispatcher",
// not as input.
func (r *Reader) ReadLine(ctx context.Context) Result {
	deadline := time.NewTimer(r.timeout)
	defer deadline.Stop()

	var buf []byte
	for {
		select {
		case <-ctx.Done():
			return Result{}
		case <-deadline.C:
			r.w.Post(timeoutNotice)
			return Result{}
		case b := <-r.in:
			if b == '\r' || b == '\n' {
				quit := len(buf) == 1 && (buf[0] == 'q' || buf[0] == 'Q')
				return Result{OK: true, Quit: quit, Text: string(buf)}
			}
			if len(buf) < maxLineLen {
				buf = append(buf, b)
			}
		}
	}
}
