// Package app assembles the console application: the serialized writer and
// input pump around the platform's console device, the interactive
// sub-applications, the background monitor, the blink controller, the idle
// sleep loop, and the dispatcher that owns the menu.
package app

import (
	"context"

	"deviceconsole-go/config"
	"deviceconsole-go/console"
	"deviceconsole-go/platform"
	"deviceconsole-go/services/blink"
	"deviceconsole-go/services/calc"
	"deviceconsole-go/services/clock"
	"deviceconsole-go/services/dispatch"
	"deviceconsole-go/services/game"
	"deviceconsole-go/services/power"
	"deviceconsole-go/services/prompt"
	"deviceconsole-go/services/tempmon"
	"deviceconsole-go/signal"
)

type App struct {
	cfg  config.Config
	plat *platform.Platform

	writer *console.Writer
	pump   *console.Pump
	reader *console.Reader
}

// New builds the console plumbing. Write-queue creation is the one fatal
// startup failure: on error the application must not start.
func New(cfg config.Config, plat *platform.Platform) (*App, error) {
	cfg.Normalize()

	w, err := console.NewWriter(plat.Console, cfg.QueueDepth)
	if err != nil {
		return nil, err
	}
	p := console.NewPump(plat.Console, 64)
	r := console.NewReader(p.Bytes(), w, cfg.ReadTimeout)

	return &App{cfg: cfg, plat: plat, writer: w, pump: p, reader: r}, nil
}

// Run starts every task and then owns the calling goroutine as the
// dispatcher loop until ctx ends.
func (a *App) Run(ctx context.Context) error {
	a.writer.Start(ctx)
	a.pump.Start(ctx)

	io := prompt.IO{W: a.writer, R: a.reader}

	monStart := signal.NewNote()
	monitor := tempmon.New(a.writer, a.plat.Clock, a.plat.Sensor, monStart, a.cfg.SamplePeriod)

	clockH := dispatch.NewHandoff()
	gameH := dispatch.NewHandoff()
	calcH := dispatch.NewHandoff()

	d := dispatch.New(dispatch.Config{
		IO:           io,
		Pump:         a.pump,
		Clock:        clockH,
		Game:         gameH,
		Calc:         calcH,
		Monitor:      monitor,
		MonitorStart: monStart,
		Blink:        blink.New(ctx, a.plat.LED),
		BlinkPeriod:  a.cfg.BlinkPeriod,
		SettleDelay:  a.cfg.SettleDelay,
	})

	monitor.Start(ctx)
	clock.New(io, clockH.Run, clockH.Done, a.plat.Clock, d.AlarmFired).Start(ctx)
	game.New(io, gameH.Run, gameH.Done, a.cfg.GameMax).Start(ctx)
	calc.New(io, calcH.Run, calcH.Done).Start(ctx)
	power.NewIdle(a.plat.Power, d.SleepFlag()).Start(ctx)

	d.Run(ctx)
	return nil
}
