// Package config holds the tunables for the console application. Defaults
// match the shipped firmware behaviour; host runs may override them from a
// TOML file.
package config

import "time"

type Config struct {
	// Console.
	QueueDepth  int           `toml:"queue_depth"`
	ReadTimeout time.Duration `toml:"read_timeout"`

	// Services.
	BlinkPeriod  time.Duration `toml:"blink_period"`
	SamplePeriod time.Duration `toml:"sample_period"`
	SettleDelay  time.Duration `toml:"settle_delay"`
	GameMax      int32         `toml:"game_max"`

	// Host serial console; ignored on hardware builds.
	SerialDevice string `toml:"serial_device"`
	SerialBaud   int    `toml:"serial_baud"`
}

func Default() Config {
	return Config{
		QueueDepth:   10,
		ReadTimeout:  30 * time.Second,
		BlinkPeriod:  500 * time.Millisecond,
		SamplePeriod: 500 * time.Millisecond,
		SettleDelay:  500 * time.Millisecond,
		GameMax:      25,
		SerialBaud:   115200,
	}
}

// Normalize clamps out-of-range values back to their defaults so a bad config
// file degrades rather than wedging the console.
func (c *Config) Normalize() {
	d := Default()
	if c.QueueDepth <= 0 {
		c.QueueDepth = d.QueueDepth
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.BlinkPeriod < 10*time.Millisecond {
		c.BlinkPeriod = d.BlinkPeriod
	}
	if c.SamplePeriod < 10*time.Millisecond {
		c.SamplePeriod = d.SamplePeriod
	}
	if c.SettleDelay < 0 {
		c.SettleDelay = d.SettleDelay
	}
	if c.GameMax <= 0 {
		c.GameMax = d.GameMax
	}
	if c.SerialBaud <= 0 {
		c.SerialBaud = d.SerialBaud
	}
}
