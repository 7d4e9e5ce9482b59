// Package dispatch is the top-level menu task. It owns the main menu, hands
// the console to one exclusive sub-application at a time over notification
// pairs, and manages the background monitor, the LED toggle, and sleep mode
// inline.
package dispatch

import (
	"context"
	"time"

	"deviceconsole-go/console"
	"deviceconsole-go/services/blink"
	"deviceconsole-go/services/prompt"
	"deviceconsole-go/services/tempmon"
	"deviceconsole-go/signal"
)

const menu = "\r\n===============================================" +
	"\r\nThis is a general device console application" +
	"\r\nPress the letter Q (or q) and the return key" +
	"\r\nto return to the main menu below any time" +
	"\r\n=================MAIN MENU=====================" +
	"\r\nSelect one of the sub-applications below to run" +
	"\r\nTime and Alarms                        ----> 1" +
	"\r\nGuess-A-Number Game                    ----> 2" +
	"\r\nCalculator                             ----> 3" +
	"\r\nMonitor temperature                    ----> 4" +
	"\r\nToggle LED                             ----> 5" +
	"\r\nSleep and Wait for Interrupt           ----> 6" +
	"\r\nType your option: "

const monitorMenu = "\r\n\nThis is a temperature monitoring sub-application" +
	"\r\nStart temperature monitoring     ------> 1" +
	"\r\nDisplay temperature statistics   ------> 2" +
	"\r\nStop temperature monitoring      ------> 3" +
	"\r\nEnter your option here: "

const blinkPrompt = "\r\nToggle the LED?" +
	"\r\nTo start toggling the LED press ---> y/Y" +
	"\r\nTo stop toggling the LED press  ---> n/N\r\n"

const (
	unrecognized    = "\r\nError: Unrecognized option selected\r\n"
	monitorStarted  = "\r\n\nTemperature monitor started\r\n"
	monitorStopped  = "\r\n\nTemperature monitor stopped\r\n"
	monitorNotUp    = "\r\n\nTemperature monitor has not been started yet\r\nNo temperature statistics exist\r\n"
	sleepNotice     = "\r\n\nWent to sleep\r\nPress any keyboard letter/number to wake up\r\n"
	wakeNotice      = "\r\nWoke up from sleep mode\r\n"
	alarmNotice     = "\r\nThe alarm was triggered\r\n"
	alarmAsleepNote = "\r\nStill in sleep mode\r\nPress any keyboard letter/number to wake up\r\n"
)

// Handoff is one exclusive sub-application's notification pair: the
// dispatcher notifies Run and blocks on Done until the sub-application hands
// the console back.
type Handoff struct {
	Run  *signal.Note
	Done *signal.Note
}

func NewHandoff() Handoff {
	return Handoff{Run: signal.NewNote(), Done: signal.NewNote()}
}

// Config carries the dispatcher's collaborators and tunables.
type Config struct {
	IO   prompt.IO
	Pump *console.Pump

	Clock Handoff
	Game  Handoff
	Calc  Handoff

	Monitor *tempmon.Service
	// MonitorStart is the same note the monitor service idles on.
	MonitorStart *signal.Note

	Blink       *blink.Controller
	BlinkPeriod time.Duration

	// SettleDelay lets background output reach the write queue ahead of the
	// next menu print.
	SettleDelay time.Duration
}

type Dispatcher struct {
	cfg   Config
	sleep signal.Flag
	wake  *signal.Note
}

func New(cfg Config) *Dispatcher {
	if cfg.BlinkPeriod <= 0 {
		cfg.BlinkPeriod = blink.DefaultPeriod
	}
	return &Dispatcher{cfg: cfg, wake: signal.NewNote()}
}

// SleepFlag exposes the sleep-requested flag for the idle loop.
func (d *Dispatcher) SleepFlag() *signal.Flag { return &d.sleep }

// AlarmFired is the alarm trigger handler. It runs outside task context and
// only uses never-blocking console paths. The alarm does not wake the system;
// while asleep it additionally reminds the user how to.
func (d *Dispatcher) AlarmFired() {
	d.cfg.IO.W.PostFromISR(alarmNotice)
	if d.sleep.Get() {
		d.cfg.IO.W.PostFromISR(alarmAsleepNote)
	}
}

// Run is the dispatcher loop. It owns the calling goroutine until ctx ends.
func (d *Dispatcher) Run(ctx context.Context) {
	for ctx.Err() == nil {
		res := d.cfg.IO.Line(ctx, menu)
		if !res.OK || res.Quit {
			// Timeout or a stray quit at the top menu: just redraw.
			continue
		}
		if len(res.Text) == 0 {
			d.cfg.IO.W.Post(unrecognized)
			continue
		}
		switch res.Text[0] {
		case '1':
			d.handoff(ctx, d.cfg.Clock)
		case '2':
			d.handoff(ctx, d.cfg.Game)
		case '3':
			d.handoff(ctx, d.cfg.Calc)
		case '4':
			d.manageMonitor(ctx)
		case '5':
			d.manageBlink(ctx)
		case '6':
			d.manageSleep(ctx)
		default:
			d.cfg.IO.W.Post(unrecognized)
		}
	}
}

// handoff gives the console to one exclusive sub-application and blocks until
// it signals completion. Strictly alternating: no other exclusive
// sub-application can run meanwhile.
func (d *Dispatcher) handoff(ctx context.Context, h Handoff) {
	h.Run.Notify()
	h.Done.Wait(ctx)
}

func (d *Dispatcher) manageMonitor(ctx context.Context) {
	res := d.cfg.IO.Line(ctx, monitorMenu)
	if !res.OK || res.Quit || len(res.Text) == 0 {
		return
	}
	switch res.Text[0] {
	case '1':
		d.cfg.MonitorStart.Notify()
		d.cfg.IO.W.Post(monitorStarted)
		d.settle(ctx)
	case '2':
		if !d.cfg.Monitor.Running.Get() {
			d.cfg.IO.W.Post(monitorNotUp)
			return
		}
		d.cfg.Monitor.ShowStats.Set()
		// Let the stats land on the write queue before the next menu.
		d.settle(ctx)
	case '3':
		d.cfg.Monitor.Running.Clear()
		d.cfg.IO.W.Post(monitorStopped)
	default:
		d.cfg.IO.W.Post(unrecognized)
	}
}

func (d *Dispatcher) manageBlink(ctx context.Context) {
	res := d.cfg.IO.Line(ctx, blinkPrompt)
	if !res.OK || res.Quit || len(res.Text) == 0 {
		return
	}
	switch res.Text[0] {
	case 'y', 'Y':
		d.cfg.Blink.Enable(d.cfg.BlinkPeriod)
	case 'n', 'N':
		d.cfg.Blink.Disable()
	default:
		d.cfg.IO.W.Post(unrecognized)
	}
}

// manageSleep stops the background activity, arms the wake interrupt, and
// parks until one input byte wakes the system. The wake handler clears the
// sleep flag before the dispatcher resumes.
func (d *Dispatcher) manageSleep(ctx context.Context) {
	d.cfg.Blink.Disable()
	d.cfg.Monitor.Running.Clear()

	// A wake byte racing the previous disarm can leave a stale pending
	// notification; discard it so only a byte received from here on wakes us.
	d.wake.Drain()
	d.cfg.Pump.ArmWake(func() {
		d.sleep.Clear()
		d.wake.NotifyFromISR()
	})
	d.sleep.Set()
	d.cfg.IO.W.Post(sleepNotice)

	if !d.wake.Wait(ctx) {
		d.cfg.Pump.DisarmWake()
		return
	}
	d.cfg.IO.W.Post(wakeNotice)
	d.cfg.Pump.DisarmWake()
}

func (d *Dispatcher) settle(ctx context.Context) {
	if d.cfg.SettleDelay <= 0 {
		return
	}
	t := time.NewTimer(d.cfg.SettleDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
