//go:build rp2040 || rp2350

package platform

import (
	"context"
	"device/arm"
	"machine"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/ds3231"
	"tinygo.org/x/drivers/shtc3"

	"deviceconsole-go/errcode"
	"deviceconsole-go/types"
)

// MCUConfig carries the pin/bus assignments for the board.
type MCUConfig struct {
	UARTBaud uint32
	UARTTX   int
	UARTRX   int
	I2CSDA   int
	I2CSCL   int
	LEDPin   int
}

// NewMCU brings up UART0 for the console, I2C0 for the DS3231 clock and
// SHTC3 sensor, and the LED pin.
func NewMCU(cfg MCUConfig) (*Platform, error) {
	if cfg.UARTBaud == 0 {
		cfg.UARTBaud = 115200
	}
	u := uartx.UART0
	if err := u.Configure(uartx.UARTConfig{
		BaudRate: cfg.UARTBaud,
		TX:       machine.Pin(cfg.UARTTX),
		RX:       machine.Pin(cfg.UARTRX),
	}); err != nil {
		return nil, err
	}

	sda := machine.Pin(cfg.I2CSDA)
	scl := machine.Pin(cfg.I2CSCL)
	sda.Configure(machine.PinConfig{Mode: machine.PinI2C})
	scl.Configure(machine.PinConfig{Mode: machine.PinI2C})
	if err := machine.I2C0.Configure(machine.I2CConfig{SDA: sda, SCL: scl, Frequency: 400_000}); err != nil {
		return nil, err
	}

	rtc := ds3231.New(machine.I2C0)
	rtc.Configure()

	led := machine.Pin(cfg.LEDPin)
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	led.Low()

	return &Platform{
		Console: &uartConsole{u: u},
		Clock:   &rtcClock{dev: &rtc},
		Sensor:  newSHTC3(),
		LED:     &mcuLED{pin: led},
		Power:   mcuPower{},
	}, nil
}

// ---- UART console ----

type uartConsole struct {
	u *uartx.UART
}

func (c *uartConsole) WriteString(s string) error {
	_, err := c.u.Write([]byte(s))
	return err
}

func (c *uartConsole) ReadByte() (byte, error) {
	var buf [1]byte
	for {
		n, err := c.u.RecvSomeContext(context.Background(), buf[:])
		if err != nil {
			return 0, err
		}
		if n == 1 {
			return buf[0], nil
		}
	}
}

// ---- DS3231-backed clock ----

type rtcClock struct {
	dev   *ds3231.Device
	alarm dailyAlarm
}

func (c *rtcClock) read() time.Time {
	t, err := c.dev.ReadTime()
	if err != nil {
		println("Error: rtc read:", err.Error())
		return time.Time{}
	}
	return t
}

func (c *rtcClock) Now() types.DateTime { return fromTime(c.read()) }

func (c *rtcClock) SetTime(hour, minute, second uint8) error {
	t := c.read()
	if err := c.dev.SetTime(time.Date(t.Year(), t.Month(), t.Day(),
		int(hour), int(minute), int(second), 0, t.Location())); err != nil {
		return &errcode.E{C: errcode.ClockRejected, Op: "platform.Clock.SetTime", Err: err}
	}
	return nil
}

func (c *rtcClock) SetDate(year, month, day, _ uint8) error {
	t := c.read()
	if err := c.dev.SetTime(time.Date(2000+int(year), time.Month(month), int(day),
		t.Hour(), t.Minute(), t.Second(), 0, t.Location())); err != nil {
		return &errcode.E{C: errcode.ClockRejected, Op: "platform.Clock.SetDate", Err: err}
	}
	return nil
}

// SetAlarm runs in software against the RTC's time base; the DS3231 hardware
// alarm registers are not used.
func (c *rtcClock) SetAlarm(cfg types.AlarmConfig, fire func()) error {
	c.alarm.Arm(func() time.Duration { return untilNext(c.read(), cfg) }, cfg.Daily, fire)
	return nil
}

func untilNext(now time.Time, cfg types.AlarmConfig) time.Duration {
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

// ---- SHTC3 temperature sensor ----

type shtc3Sensor struct {
	drv  shtc3.Device
	last float32
}

func newSHTC3() *shtc3Sensor {
	return &shtc3Sensor{drv: shtc3.New(machine.I2C0), last: 22.0}
}

func (s *shtc3Sensor) Sample() float32 {
	_ = s.drv.WakeUp()
	defer func() { _ = s.drv.Sleep() }()
	milliC, _, err := s.drv.ReadTemperatureHumidity()
	if err != nil {
		// Keep the last good reading rather than poisoning the extrema.
		return s.last
	}
	s.last = float32(milliC) / 1000.0
	return s.last
}

// ---- LED pin ----

type mcuLED struct {
	pin machine.Pin
}

func (l *mcuLED) Set(on bool) { l.pin.Set(on) }
func (l *mcuLED) Toggle() {
	if l.pin.Get() {
		l.pin.Low()
	} else {
		l.pin.High()
	}
}

// ---- low-power wait ----

type mcuPower struct{}

func (mcuPower) WaitForInterrupt() { arm.Asm("wfi") }
