// Package prompt is the shared prompt/read/parse step every interactive
// sub-application is built from: post one prompt, take one timed line,
// optionally parse and range-check a number.
package prompt

import (
	"context"

	"deviceconsole-go/console"
	"deviceconsole-go/x/conv"
)

const invalidNotice = "\r\nError: Invalid input\r\n"

// IO bundles the console endpoints a sub-application talks through.
type IO struct {
	W *console.Writer
	R *console.Reader
}

// Line posts the prompt and reads one timed line. Timeout and quit handling
// stay with the caller; the reader has already posted the timeout notice.
func (io IO) Line(ctx context.Context, text string) console.Result {
	io.W.Post(text)
	return io.R.ReadLine(ctx)
}

// Number posts the prompt and reads one number in [lo, hi]. ok is false when
// the read failed, the user quit, or the value did not parse or is out of
// range; parse and range failures post the invalid-input notice, read
// failures do not (abort handling belongs to the caller).
func (io IO) Number(ctx context.Context, text string, lo, hi int32) (int32, console.Result, bool) {
	res := io.Line(ctx, text)
	if !res.OK || res.Quit {
		return 0, res, false
	}
	n, parsed := conv.ParseDigits(res.Text)
	if !parsed || n < lo || n > hi {
		io.W.Post(invalidNotice)
		return 0, res, false
	}
	return n, res, true
}
