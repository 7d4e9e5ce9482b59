//go:build !(rp2040 || rp2350)

package platform

import (
	"bufio"
	"os"
	"sync"
	"time"

	"deviceconsole-go/console"
	"deviceconsole-go/types"
)

// NewHost assembles a host platform around the given console device
// (stdio or a serial port).
func NewHost(dev console.Device) *Platform {
	return &Platform{
		Console: dev,
		Clock:   NewSimClock(),
		Sensor:  NewSimSensor(),
		LED:     &HostLED{},
		Power:   hostPower{},
	}
}

// ---- stdio console device ----

type StdioDevice struct {
	in *bufio.Reader
}

func NewStdioDevice() *StdioDevice {
	return &StdioDevice{in: bufio.NewReader(os.Stdin)}
}

func (d *StdioDevice) WriteString(s string) error {
	_, err := os.Stdout.WriteString(s)
	return err
}

func (d *StdioDevice) ReadByte() (byte, error) { return d.in.ReadByte() }

// ---- simulated clock ----

// SimClock keeps a settable calendar time as an offset from the monotonic
// host clock, and a single software daily alarm.
type SimClock struct {
	mu   sync.Mutex
	base time.Time // simulated datetime at ref
	ref  time.Time

	alarm dailyAlarm
}

func NewSimClock() *SimClock {
	now := time.Now()
	return &SimClock{base: now, ref: now}
}

func (c *SimClock) now() time.Time {
	return c.base.Add(time.Since(c.ref))
}

func (c *SimClock) Now() types.DateTime {
	c.mu.Lock()
	t := c.now()
	c.mu.Unlock()
	return fromTime(t)
}

func (c *SimClock) SetTime(hour, minute, second uint8) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now()
	c.base = time.Date(t.Year(), t.Month(), t.Day(), int(hour), int(minute), int(second), 0, t.Location())
	c.ref = time.Now()
	return nil
}

// SetDate keeps the current time of day. The weekday argument is accepted
// for interface parity; the simulated calendar derives it from the date.
func (c *SimClock) SetDate(year, month, day, _ uint8) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now()
	c.base = time.Date(2000+int(year), time.Month(month), int(day),
		t.Hour(), t.Minute(), t.Second(), 0, t.Location())
	c.ref = time.Now()
	return nil
}

func (c *SimClock) SetAlarm(cfg types.AlarmConfig, fire func()) error {
	c.alarm.Arm(func() time.Duration { return c.until(cfg) }, cfg.Daily, fire)
	return nil
}

// until computes the delay to the next h:m:s occurrence in simulated time.
func (c *SimClock) until(cfg types.AlarmConfig) time.Duration {
	c.mu.Lock()
	now := c.now()
	c.mu.Unlock()
	next := time.Date(now.Year(), now.Month(), now.Day(),
		int(cfg.Hour), int(cfg.Minute), int(cfg.Second), 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(now)
}

func fromTime(t time.Time) types.DateTime {
	wd := uint8(t.Weekday())
	if wd == 0 {
		wd = 7 // Sunday maps to 7; Monday is 1
	}
	return types.DateTime{
		Year:    uint8(t.Year() % 100),
		Month:   uint8(t.Month()),
		Day:     uint8(t.Day()),
		Weekday: wd,
		Hour:    uint8(t.Hour()),
		Minute:  uint8(t.Minute()),
		Second:  uint8(t.Second()),
	}
}

// ---- simulated temperature sensor ----

// SimSensor wanders deterministically around room temperature with a
// triangle wave, good enough for interactive host runs.
type SimSensor struct {
	mu   sync.Mutex
	step int
}

func NewSimSensor() *SimSensor { return &SimSensor{} }

func (s *SimSensor) Sample() float32 {
	s.mu.Lock()
	s.step++
	phase := s.step % 40
	s.mu.Unlock()
	if phase > 20 {
		phase = 40 - phase
	}
	return 22.0 + float32(phase)*0.25
}

// ---- host LED ----

type HostLED struct {
	mu sync.Mutex
	on bool
}

func (l *HostLED) Set(on bool) {
	l.mu.Lock()
	l.on = on
	l.mu.Unlock()
}

func (l *HostLED) Toggle() {
	l.mu.Lock()
	l.on = !l.on
	l.mu.Unlock()
}

func (l *HostLED) State() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}

// ---- host low-power wait ----

type hostPower struct{}

// WaitForInterrupt approximates WFI: yield briefly, then let the idle loop
// re-check the sleep flag.
func (hostPower) WaitForInterrupt() { time.Sleep(time.Millisecond) }
