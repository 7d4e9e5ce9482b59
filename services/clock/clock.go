// Package clock is the time-and-alarms sub-application: display the current
// date and time, set them, or arm the daily alarm.
package clock

import (
	"context"

	"deviceconsole-go/platform"
	"deviceconsole-go/services/prompt"
	"deviceconsole-go/signal"
	"deviceconsole-go/types"
	"deviceconsole-go/x/fmtx"
)

const menu = "\r\n\nThis is a clock sub-application" +
	"\r\nDisplay date and time   ------> 1" +
	"\r\nSet date and time       ------> 2" +
	"\r\nSet an alarm            ------> 3" +
	"\r\nQuit application        ------> 4" +
	"\r\nEnter your option here: "

const (
	dateTimeMsg  = "\r\n\nTime: %02d:%02d:%02d\r\nDate: %02d-%02d-%02d"
	unrecognized = "\r\nError: Unrecognized option selected\r\n"
	setDateErr   = "\r\n\nRTC set date error\r\n"
	setTimeErr   = "\r\n\nRTC set time error\r\n"
	setAlarmErr  = "\r\n\nRTC set alarm error\r\n"

	hourPrompt   = "\r\n\nConfiguring the time\r\nEnter the hour in 24 hour format\r\n"
	minutePrompt = "\r\n\nEnter the minute\r\n"
	secondPrompt = "\r\n\nEnter the second\r\n"

	dayPrompt   = "\r\n\nConfiguring the date\r\nEnter the day of the month\r\n"
	monthPrompt = "\r\n\nEnter the month\r\n"
	yearPrompt  = "\r\n\nEnter the year\r\nEnter 20 for 2020\r\n"

	alarmHourPrompt   = "\r\nEnter the hour of the Alarm\r\n"
	alarmMinutePrompt = "\r\nEnter the minute of the Alarm\r\n"
	alarmSecondPrompt = "\r\nEnter the second of the Alarm\r\n"
)

const weekdayPrompt = "\r\n\nEnter the day of the week" +
	"\r\nEnter 1 for Monday" +
	"\r\nEnter 2 for Tuesday" +
	"\r\nEnter 3 for Wednesday" +
	"\r\nEnter 4 for Thursday" +
	"\r\nEnter 5 for Friday" +
	"\r\nEnter 6 for Saturday" +
	"\r\nEnter 7 for Sunday\r\n"

type Service struct {
	io   prompt.IO
	run  *signal.Note
	done *signal.Note
	rtc  platform.Clock

	// fire runs when the armed alarm triggers; it must only use
	// never-blocking console paths.
	fire func()
}

func New(io prompt.IO, run, done *signal.Note, rtc platform.Clock, fire func()) *Service {
	return &Service{io: io, run: run, done: done, rtc: rtc, fire: fire}
}

func (s *Service) Start(ctx context.Context) {
	go func() {
		if !s.run.Wait(ctx) {
			return
		}
		for {
			if quit := s.session(ctx); quit {
				s.done.Notify()
				if !s.run.Wait(ctx) {
					return
				}
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()
}

// session shows the sub-menu once and runs the selected flow.
func (s *Service) session(ctx context.Context) (quit bool) {
	res := s.io.Line(ctx, menu)
	if res.Quit {
		return true
	}
	if !res.OK || len(res.Text) == 0 {
		return false
	}
	switch res.Text[0] {
	case '1':
		s.display()
	case '2':
		return s.setDateTime(ctx)
	case '3':
		return s.setAlarm(ctx)
	case '4':
		return true
	default:
		s.io.W.Post(unrecognized)
	}
	return false
}

func (s *Service) display() {
	now := s.rtc.Now()
	s.io.W.Post(fmtx.Sprintf(dateTimeMsg,
		now.Hour, now.Minute, now.Second,
		now.Day, now.Month, now.Year))
}

// setDateTime walks the user through time then date. Each field group is
// committed atomically once all of its fields validate; an abort during the
// date fields leaves an already-committed time update in place.
func (s *Service) setDateTime(ctx context.Context) (quit bool) {
	hour, res, ok := s.io.Number(ctx, hourPrompt, 0, 23)
	if res.Quit {
		return true
	}
	if !ok {
		return false
	}
	minute, res, ok := s.io.Number(ctx, minutePrompt, 0, 59)
	if res.Quit {
		return true
	}
	if !ok {
		return false
	}
	second, res, ok := s.io.Number(ctx, secondPrompt, 0, 59)
	if res.Quit {
		return true
	}
	if !ok {
		return false
	}
	if err := s.rtc.SetTime(uint8(hour), uint8(minute), uint8(second)); err != nil {
		s.io.W.Post(setTimeErr)
		return false
	}

	day, res, ok := s.io.Number(ctx, dayPrompt, 1, 31)
	if res.Quit {
		return true
	}
	if !ok {
		return false
	}
	month, res, ok := s.io.Number(ctx, monthPrompt, 1, 12)
	if res.Quit {
		return true
	}
	if !ok {
		return false
	}
	year, res, ok := s.io.Number(ctx, yearPrompt, 0, 99)
	if res.Quit {
		return true
	}
	if !ok {
		return false
	}
	weekday, res, ok := s.io.Number(ctx, weekdayPrompt, 1, 7)
	if res.Quit {
		return true
	}
	if !ok {
		return false
	}
	if err := s.rtc.SetDate(uint8(year), uint8(month), uint8(day), uint8(weekday)); err != nil {
		s.io.W.Post(setDateErr)
	}
	return false
}

// setAlarm arms the daily alarm once hour, minute, and second all validate.
func (s *Service) setAlarm(ctx context.Context) (quit bool) {
	hour, res, ok := s.io.Number(ctx, alarmHourPrompt, 0, 23)
	if res.Quit {
		return true
	}
	if !ok {
		return false
	}
	minute, res, ok := s.io.Number(ctx, alarmMinutePrompt, 0, 59)
	if res.Quit {
		return true
	}
	if !ok {
		return false
	}
	second, res, ok := s.io.Number(ctx, alarmSecondPrompt, 0, 59)
	if res.Quit {
		return true
	}
	if !ok {
		return false
	}
	cfg := types.AlarmConfig{
		Hour:   uint8(hour),
		Minute: uint8(minute),
		Second: uint8(second),
		Daily:  true,
	}
	if err := s.rtc.SetAlarm(cfg, s.fire); err != nil {
		s.io.W.Post(setAlarmErr)
	}
	return false
}
