package tempmon

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"deviceconsole-go/console"
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

func (s *sink) snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.msgs...)
}

type fixedClock struct{ at types.DateTime }

func (c fixedClock) Now() types.DateTime                      { return c.at }
func (c fixedClock) SetTime(_, _, _ uint8) error              { return nil }
func (c fixedClock) SetDate(_, _, _, _ uint8) error           { return nil }
func (c fixedClock) SetAlarm(types.AlarmConfig, func()) error { return nil }

// rampSensor replays a fixed sequence, then repeats the last value.
type rampSensor struct {
	mu   sync.Mutex
	vals []float32
	i    int
}

func (s *rampSensor) Sample() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.i < len(s.vals)-1 {
		s.i++
		return s.vals[s.i-1]
	}
	return s.vals[len(s.vals)-1]
}

func TestStatsPublishOrderAndExtrema(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dev := &sink{}
	w, err := console.NewWriter(dev, console.DefaultQueueDepth)
	if err != nil {
		t.Fatalf("writer: %v", err)
	}
	w.Start(ctx)

	sensor := &rampSensor{vals: []float32{23.5, 25.0, 21.0, 22.0}}
	start := signal.NewNote()
	clk := fixedClock{at: types.DateTime{Year: 26, Month: 8, Day: 28, Hour: 12}}
	s := New(w, clk, sensor, start, 5*time.Millisecond)
	s.Start(ctx)

	start.Notify()

	// Let the whole ramp be observed before requesting stats.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		sensor.mu.Lock()
		done := sensor.i >= len(sensor.vals)-1
		sensor.mu.Unlock()
		if done {
			break
		}
		time.Sleep(time.Millisecond)
	}
	s.ShowStats.Set()

	var stats []string
	deadline = time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && len(stats) < 3 {
		stats = stats[:0]
		for _, m := range dev.snapshot() {
			if strings.Contains(m, "Temp Recorded") {
				stats = append(stats, m)
			}
		}
		time.Sleep(time.Millisecond)
	}
	if len(stats) < 3 {
		t.Fatalf("got %d stats messages, want 3: %q", len(stats), stats)
	}

	if !strings.Contains(stats[0], "Current Temp Recorded") {
		t.Errorf("first stat %q, want current", stats[0])
	}
	if !strings.Contains(stats[1], "Highest Temp Recorded = 25.00 C") {
		t.Errorf("second stat %q, want highest 25.00", stats[1])
	}
	if !strings.Contains(stats[2], "Lowest Temp Recorded = 21.00 C") {
		t.Errorf("third stat %q, want lowest 21.00", stats[2])
	}

	if s.ShowStats.Get() {
		t.Error("show-stats flag not cleared after publishing")
	}
	if !s.Running.Get() {
		t.Error("running flag not set while sampling")
	}
}

func TestStopReturnsToIdleAndResets(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dev := &sink{}
	w, err := console.NewWriter(dev, console.DefaultQueueDepth)
	if err != nil {
		t.Fatalf("writer: %v", err)
	}
	w.Start(ctx)

	sensor := &rampSensor{vals: []float32{40.0, 22.0}}
	start := signal.NewNote()
	s := New(w, fixedClock{}, sensor, start, 5*time.Millisecond)
	s.Start(ctx)

	start.Notify()
	time.Sleep(50 * time.Millisecond)
	s.Running.Clear()
	time.Sleep(50 * time.Millisecond)

	// Second session: the 40.0 high from the first session must be gone.
	start.Notify()
	time.Sleep(50 * time.Millisecond)
	s.ShowStats.Set()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		for _, m := range dev.snapshot() {
			if strings.Contains(m, "Highest Temp Recorded") {
				if strings.Contains(m, "40.00") {
					t.Fatalf("stale extremum survived restart: %q", m)
				}
				return
			}
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("stats never published in second session")
}
