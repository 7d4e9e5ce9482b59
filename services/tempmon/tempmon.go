// Package tempmon is the background temperature monitor. It idles until
// started, then samples on a fixed cadence, tracking running extrema with
// their timestamps. Stats are published on demand as three ordered messages.
package tempmon

import (
	"context"
	"time"

	"deviceconsole-go/console"
	"deviceconsole-go/platform"
	"deviceconsole-go/signal"
	"deviceconsole-go/types"
	"deviceconsole-go/x/fmtx"
)

const (
	currentMsg = "\r\n\n%02d-%02d-%02d %02d:%02d:%02d Current Temp Recorded = %.2f C"
	highestMsg = "\r\n\n%02d-%02d-%02d %02d:%02d:%02d Highest Temp Recorded = %.2f C"
	lowestMsg  = "\r\n\n%02d-%02d-%02d %02d:%02d:%02d Lowest Temp Recorded = %.2f C\r\n"
)

const DefaultSamplePeriod = 500 * time.Millisecond

type Service struct {
	w      *console.Writer
	rtc    platform.Clock
	sensor platform.TempSensor
	period time.Duration

	start *signal.Note

	// Running is cleared by the dispatcher to stop the monitor; the monitor
	// itself sets it when the start notification arrives. ShowStats is set
	// by the dispatcher and cleared here after publishing.
	Running   signal.Flag
	ShowStats signal.Flag

	rec types.TempRecord
}

func New(w *console.Writer, rtc platform.Clock, sensor platform.TempSensor, start *signal.Note, period time.Duration) *Service {
	if period <= 0 {
		period = DefaultSamplePeriod
	}
	return &Service{w: w, rtc: rtc, sensor: sensor, start: start, period: period}
}

// Start launches the monitor task.
func (s *Service) Start(ctx context.Context) {
	go s.loop(ctx)
}

func (s *Service) loop(ctx context.Context) {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	for {
		if !s.Running.Get() {
			// Idle: the record from the previous session is discarded and a
			// fresh one starts when the next session does.
			s.rec.Reset()
			if !s.start.Wait(ctx) {
				return
			}
			s.Running.Set()
			ticker.Reset(s.period)
		}

		now := s.rtc.Now()
		s.rec.Observe(s.sensor.Sample(), now)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if s.ShowStats.Get() {
			s.publish()
			s.ShowStats.Clear()
		}
	}
}

// publish posts current, highest, lowest in that order. Ordering across the
// three is guaranteed by the write queue's FIFO.
func (s *Service) publish() {
	s.w.Post(statLine(currentMsg, s.rec.CurrentAt, s.rec.Current))
	s.w.Post(statLine(highestMsg, s.rec.HighestAt, s.rec.Highest))
	s.w.Post(statLine(lowestMsg, s.rec.LowestAt, s.rec.Lowest))
}

func statLine(format string, at types.DateTime, v float32) string {
	return fmtx.Sprintf(format,
		at.Day, at.Month, at.Year,
		at.Hour, at.Minute, at.Second, v)
}
