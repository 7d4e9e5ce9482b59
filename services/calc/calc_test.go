package calc

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"deviceconsole-go/console"
	"deviceconsole-go/errcode"
	"deviceconsole-go/services/prompt"
	"deviceconsole-go/signal"
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

func typeLine(in chan byte, line string) {
	for i := 0; i < len(line); i++ {
		in <- line[i]
	}
	in <- '\r'
}

func newService(t *testing.T) (*sink, chan byte, *signal.Note, *signal.Note, context.Context) {
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
	New(prompt.IO{W: w, R: r}, run, done).Start(ctx)
	return dev, in, run, done, ctx
}

func TestMultiplySevenByThree(t *testing.T) {
	dev, in, run, _, _ := newService(t)

	run.Notify()
	typeLine(in, "7")
	typeLine(in, "3")
	typeLine(in, "*")

	dev.waitFor(t, "The calculated integer is 21")
}

func TestDivideByZeroIsReported(t *testing.T) {
	dev, in, run, _, _ := newService(t)

	run.Notify()
	typeLine(in, "7")
	typeLine(in, "0")
	typeLine(in, "/")

	dev.waitFor(t, "Division by zero")
}

func TestUnknownOperatorIsReported(t *testing.T) {
	dev, in, run, _, _ := newService(t)

	run.Notify()
	typeLine(in, "4")
	typeLine(in, "2")
	typeLine(in, "%")

	dev.waitFor(t, "Unrecognized mathematical operator")
}

func TestQuitMidSessionHandsBack(t *testing.T) {
	dev, in, run, done, ctx := newService(t)

	run.Notify()
	typeLine(in, "7")
	dev.waitFor(t, "Enter the second integer")
	typeLine(in, "q")

	if !done.Wait(ctx) {
		t.Fatal("done notification never arrived")
	}
}

func TestApply(t *testing.T) {
	cases := []struct {
		a, b int32
		op   byte
		want int32
	}{
		{7, 3, '+', 10},
		{7, 3, '-', 4},
		{7, 3, '*', 21},
		{7, 3, '/', 2},
		{1<<31 - 1, 1, '+', -1 << 31}, // wraps
	}
	for _, c := range cases {
		got, err := Apply(c.a, c.b, c.op)
		if err != nil {
			t.Errorf("Apply(%d, %d, %c): %v", c.a, c.b, c.op, err)
			continue
		}
		if got != c.want {
			t.Errorf("Apply(%d, %d, %c) = %d, want %d", c.a, c.b, c.op, got, c.want)
		}
	}

	if _, err := Apply(1, 0, '/'); errcode.Of(err) != errcode.DivideByZero {
		t.Errorf("divide by zero: got %v", err)
	}
	if _, err := Apply(1, 2, '?'); errcode.Of(err) != errcode.Unrecognized {
		t.Errorf("unknown operator: got %v", err)
	}
}
