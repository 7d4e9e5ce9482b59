package console

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"deviceconsole-go/errcode"
)

// scriptDev replays a scripted byte stream through the blocking ReadByte
// contract.
type scriptDev struct {
	ch chan byte
}

func newScriptDev() *scriptDev { return &scriptDev{ch: make(chan byte, 64)} }

func (d *scriptDev) ReadByte() (byte, error) {
	b, ok := <-d.ch
	if !ok {
		return 0, io.EOF
	}
	return b, nil
}

func (d *scriptDev) send(s string) {
	for i := 0; i < len(s); i++ {
		d.ch <- s[i]
	}
}

func collect(t *testing.T, p *Pump, n int) string {
	t.Helper()
	var out []byte
	for i := 0; i < n; i++ {
		select {
		case b := <-p.Bytes():
			out = append(out, b)
		case <-time.After(time.Second):
			t.Fatalf("timeout after %d of %d bytes (%q)", i, n, out)
		}
	}
	return string(out)
}

func TestPumpCollapsesCRLF(t *testing.T) {
	dev := newScriptDev()
	p := NewPump(dev, 16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	dev.send("ab\r\ncd\r")
	if got := collect(t, p, 6); got != "ab\rcd\r" {
		t.Fatalf("got %q, want %q", got, "ab\rcd\r")
	}
}

func TestPumpBareLFPassesThrough(t *testing.T) {
	dev := newScriptDev()
	p := NewPump(dev, 16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	dev.send("x\n")
	if got := collect(t, p, 2); got != "x\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPumpWakeHookConsumesBytes(t *testing.T) {
	dev := newScriptDev()
	p := NewPump(dev, 16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	woke := make(chan struct{}, 8)
	p.ArmWake(func() { woke <- struct{}{} })
	dev.send("z")
	select {
	case <-woke:
	case <-time.After(time.Second):
		t.Fatal("wake hook never fired")
	}
	// The waking byte is discarded, not delivered to the line reader.
	select {
	case b := <-p.Bytes():
		t.Fatalf("byte %q leaked past the wake hook", b)
	case <-time.After(50 * time.Millisecond):
	}

	p.DisarmWake()
	dev.send("7")
	if got := collect(t, p, 1); got != "7" {
		t.Fatalf("got %q after disarm", got)
	}
}

func TestPumpReportsDeviceClosed(t *testing.T) {
	dev := newScriptDev()
	p := NewPump(dev, 16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	if err := p.Err(); err != nil {
		t.Fatalf("pump reported %v before the device closed", err)
	}
	close(dev.ch)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) && p.Err() == nil {
		time.Sleep(time.Millisecond)
	}
	err := p.Err()
	if err == nil {
		t.Fatal("pump never reported the closed device")
	}
	if got := errcode.Of(err); got != errcode.DeviceClosed {
		t.Errorf("code = %q, want %q", got, errcode.DeviceClosed)
	}
	if !errors.Is(err, io.EOF) {
		t.Errorf("cause not preserved: %v", err)
	}
}
