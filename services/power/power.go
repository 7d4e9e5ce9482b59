// Package power is the idle-state sleep loop. While the sleep flag is set it
// re-enters the platform's low-power wait after every wake, the way an idle
// hook re-issues WFI until the wake interrupt clears the flag.
package power

import (
	"context"
	"time"

	"deviceconsole-go/platform"
	"deviceconsole-go/signal"
)

type Idle struct {
	lp    platform.LowPower
	sleep *signal.Flag
}

func NewIdle(lp platform.LowPower, sleep *signal.Flag) *Idle {
	return &Idle{lp: lp, sleep: sleep}
}

// Start launches the idle loop.
func (i *Idle) Start(ctx context.Context) {
	go func() {
		for {
			if ctx.Err() != nil {
				return
			}
			if i.sleep.Get() {
				i.lp.WaitForInterrupt()
				continue
			}
			// Not sleeping: stay parked cheaply until the flag is set again.
			time.Sleep(time.Millisecond)
		}
	}()
}
