package clock

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"deviceconsole-go/console"
	"deviceconsole-go/errcode"
	"deviceconsole-go/platform"
	"deviceconsole-go/services/prompt"
	"deviceconsole-go/signal"
	"deviceconsole-go/types"
)

type sink struct {
	mu   sync.Mutex
	msgs []string
}

func (s *sink) WriteString(msg string) error {
	s.mu.Lock()
	s.msgs = append(s.msgs, msg)
	s.mu.Unlock()
	return nil
}

func (s *sink) waitFor(t *testing.T, substr string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		s.mu.Lock()
		for _, m := range s.msgs {
			if strings.Contains(m, substr) {
				s.mu.Unlock()
				return
			}
		}
		s.mu.Unlock()
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("message containing %q never transmitted", substr)
}

// fakeRTC records the calls the sub-application makes.
type fakeRTC struct {
	mu       sync.Mutex
	now      types.DateTime
	setTimes []([3]uint8)
	setDates []([4]uint8)
	alarms   []types.AlarmConfig
}

func (f *fakeRTC) Now() types.DateTime {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeRTC) SetTime(h, m, s uint8) error {
	f.mu.Lock()
	f.setTimes = append(f.setTimes, [3]uint8{h, m, s})
	f.mu.Unlock()
	return nil
}

func (f *fakeRTC) SetDate(y, mo, d, wd uint8) error {
	f.mu.Lock()
	f.setDates = append(f.setDates, [4]uint8{y, mo, d, wd})
	f.mu.Unlock()
	return nil
}

func (f *fakeRTC) SetAlarm(cfg types.AlarmConfig, fire func()) error {
	f.mu.Lock()
	f.alarms = append(f.alarms, cfg)
	f.mu.Unlock()
	return nil
}

func typeLine(in chan byte, line string) {
	for i := 0; i < len(line); i++ {
		in <- line[i]
	}
	in <- '\r'
}

func newService(t *testing.T, rtc platform.Clock) (*sink, chan byte, *signal.Note, *signal.Note, context.Context) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	dev := &sink{}
	w, err := console.NewWriter(dev, console.DefaultQueueDepth)
	if err != nil {
		t.Fatalf("writer: %v", err)
	}
	w.Start(ctx)

	in := make(chan byte, 64)
	r := console.NewReader(in, w, 5*time.Second)

	run, done := signal.NewNote(), signal.NewNote()
	New(prompt.IO{W: w, R: r}, run, done, rtc, func() {}).Start(ctx)
	return dev, in, run, done, ctx
}

func TestDisplayDateTime(t *testing.T) {
	rtc := &fakeRTC{now: types.DateTime{
		Year: 26, Month: 8, Day: 28, Weekday: 5,
		Hour: 7, Minute: 30, Second: 5,
	}}
	dev, in, run, _, _ := newService(t, rtc)

	run.Notify()
	typeLine(in, "1")

	dev.waitFor(t, "Time: 07:30:05")
	dev.waitFor(t, "Date: 28-08-26")
}

func TestSetDateTimeFullFlow(t *testing.T) {
	rtc := &fakeRTC{}
	dev, in, run, done, ctx := newService(t, rtc)

	run.Notify()
	typeLine(in, "2")
	typeLine(in, "10")
	typeLine(in, "30")
	typeLine(in, "45")
	typeLine(in, "28")
	typeLine(in, "8")
	typeLine(in, "26")
	typeLine(in, "4")
	dev.waitFor(t, "This is a clock sub-application")
	typeLine(in, "4") // quit
	if !done.Wait(ctx) {
		t.Fatal("done notification never arrived")
	}

	rtc.mu.Lock()
	defer rtc.mu.Unlock()
	if len(rtc.setTimes) != 1 || rtc.setTimes[0] != [3]uint8{10, 30, 45} {
		t.Errorf("setTimes = %v, want one 10:30:45", rtc.setTimes)
	}
	if len(rtc.setDates) != 1 || rtc.setDates[0] != [4]uint8{26, 8, 28, 4} {
		t.Errorf("setDates = %v, want one 26-8-28 wd4", rtc.setDates)
	}
}

// An abort during the date fields leaves the committed time in place and the
// date untouched.
func TestSetDateTimeAbortAfterTimeCommit(t *testing.T) {
	rtc := &fakeRTC{}
	dev, in, run, done, ctx := newService(t, rtc)

	run.Notify()
	typeLine(in, "2")
	typeLine(in, "10")
	typeLine(in, "30")
	typeLine(in, "45")
	typeLine(in, "bogus") // day fails to parse
	dev.waitFor(t, "Invalid input")
	typeLine(in, "4") // quit from the sub-menu
	if !done.Wait(ctx) {
		t.Fatal("done notification never arrived")
	}

	rtc.mu.Lock()
	defer rtc.mu.Unlock()
	if len(rtc.setTimes) != 1 {
		t.Errorf("setTimes = %v, want exactly one commit", rtc.setTimes)
	}
	if len(rtc.setDates) != 0 {
		t.Errorf("setDates = %v, want none", rtc.setDates)
	}
}

// An invalid time field aborts before any commit at all.
func TestSetTimeOutOfRangeCommitsNothing(t *testing.T) {
	rtc := &fakeRTC{}
	dev, in, run, done, ctx := newService(t, rtc)

	run.Notify()
	typeLine(in, "2")
	typeLine(in, "24") // hour out of range
	dev.waitFor(t, "Invalid input")
	typeLine(in, "4")
	if !done.Wait(ctx) {
		t.Fatal("done notification never arrived")
	}

	rtc.mu.Lock()
	defer rtc.mu.Unlock()
	if len(rtc.setTimes) != 0 || len(rtc.setDates) != 0 {
		t.Errorf("commits = %v / %v, want none", rtc.setTimes, rtc.setDates)
	}
}

// rejectingRTC refuses writes the way a disconnected RTC chip would.
type rejectingRTC struct{ fakeRTC }

func (f *rejectingRTC) SetTime(h, m, s uint8) error {
	return &errcode.E{C: errcode.ClockRejected, Op: "platform.Clock.SetTime"}
}

func TestSetTimeRejectedIsReported(t *testing.T) {
	rtc := &rejectingRTC{}
	dev, in, run, done, ctx := newService(t, rtc)

	run.Notify()
	typeLine(in, "2")
	typeLine(in, "10")
	typeLine(in, "30")
	typeLine(in, "45")
	dev.waitFor(t, "RTC set time error")
	typeLine(in, "4")
	if !done.Wait(ctx) {
		t.Fatal("done notification never arrived")
	}

	// The flow aborts before the date fields: nothing else is committed.
	rtc.mu.Lock()
	defer rtc.mu.Unlock()
	if len(rtc.setDates) != 0 {
		t.Errorf("setDates = %v, want none after a rejected time", rtc.setDates)
	}
}

func TestSetAlarm(t *testing.T) {
	rtc := &fakeRTC{}
	dev, in, run, done, ctx := newService(t, rtc)

	run.Notify()
	typeLine(in, "3")
	typeLine(in, "7")
	typeLine(in, "30")
	typeLine(in, "0")
	dev.waitFor(t, "This is a clock sub-application")
	typeLine(in, "4")
	if !done.Wait(ctx) {
		t.Fatal("done notification never arrived")
	}

	rtc.mu.Lock()
	defer rtc.mu.Unlock()
	want := types.AlarmConfig{Hour: 7, Minute: 30, Second: 0, Daily: true}
	if len(rtc.alarms) != 1 || rtc.alarms[0] != want {
		t.Errorf("alarms = %v, want one %v", rtc.alarms, want)
	}
}

func TestUnrecognizedOption(t *testing.T) {
	rtc := &fakeRTC{}
	dev, in, run, _, _ := newService(t, rtc)

	run.Notify()
	typeLine(in, "9")
	dev.waitFor(t, "Unrecognized option")
}
