// Package blink drives the periodic LED toggle. The toggle goroutine is
// created lazily on first enable and only ever paused after that; disable
// stops the ticker and forces the pin off.
package blink

import (
	"context"
	"sync"
	"time"

	"deviceconsole-go/platform"
)

const DefaultPeriod = 500 * time.Millisecond

type Controller struct {
	led platform.LED
	ctx context.Context

	mu     sync.Mutex
	ticker *time.Ticker
	on     bool
}

func New(ctx context.Context, led platform.LED) *Controller {
	return &Controller{led: led, ctx: ctx}
}

// Enable starts or restarts the toggle at the given period. Enabling while
// already enabled just restarts the cadence.
func (c *Controller) Enable(period time.Duration) {
	if period <= 0 {
		period = DefaultPeriod
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ticker == nil {
		c.ticker = time.NewTicker(period)
		go c.loop(c.ticker)
	} else {
		c.ticker.Reset(period)
	}
	c.on = true
}

// Disable pauses the toggle and switches the LED off. The ticker survives for
// the next enable. Disabling while already disabled is a no-op.
func (c *Controller) Disable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ticker == nil {
		return
	}
	c.ticker.Stop()
	c.on = false
	c.led.Set(false)
}

// Enabled reports whether the toggle is currently running.
func (c *Controller) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.on
}

func (c *Controller) loop(t *time.Ticker) {
	for {
		select {
		case <-c.ctx.Done():
			return
		case <-t.C:
			// A tick already delivered when Disable ran must not undo the
			// forced-off pin.
			c.mu.Lock()
			if c.on {
				c.led.Toggle()
			}
			c.mu.Unlock()
		}
	}
}
