package console

import (
	"context"
	"sync/atomic"

	"deviceconsole-go/errcode"
)

// Pump is the single reader of the console device. It feeds received bytes
// into a bounded channel for the line reader, collapsing CRLF pairs to one
// terminator.
//
// While a wake hook is armed the pump behaves like a receive interrupt: the
// next byte (and every byte until the hook is disarmed) is consumed by the
// hook instead of the line buffer. The hook runs on the pump goroutine and
// must only use never-blocking paths.
type Pump struct {
	dev RxDevice
	out chan byte

	wake  atomic.Pointer[wakeHook]
	drops uint32
	err   atomic.Pointer[errcode.E]
}

type wakeHook struct {
	fire func()
}

func NewPump(dev RxDevice, buf int) *Pump {
	if buf <= 0 {
		buf = 64
	}
	return &Pump{dev: dev, out: make(chan byte, buf)}
}

// Bytes is the receive stream consumed by the line reader.
func (p *Pump) Bytes() <-chan byte { return p.out }

// ArmWake installs the wake hook. Armed until DisarmWake.
func (p *Pump) ArmWake(fire func()) {
	p.wake.Store(&wakeHook{fire: fire})
}

// DisarmWake removes the wake hook; bytes flow to the line reader again.
func (p *Pump) DisarmWake() {
	p.wake.Store(nil)
}

// Start launches the pump goroutine. It exits when the device reports an
// error or ctx is cancelled.
func (p *Pump) Start(ctx context.Context) {
	go func() {
		var prev byte
		for {
			b, err := p.dev.ReadByte()
			if err != nil {
				e := &errcode.E{C: errcode.DeviceClosed, Op: "console.Pump", Msg: err.Error(), Err: err}
				p.err.Store(e)
				println("Info: console input closed:", e.Error())
				return
			}
			if ctx.Err() != nil {
				return
			}
			if b == '\n' && prev == '\r' {
				prev = b
				continue
			}
			prev = b

			if h := p.wake.Load(); h != nil {
				// The byte wakes the system and is otherwise discarded.
				h.fire()
				continue
			}
			select {
			case p.out <- b:
			default:
				atomic.AddUint32(&p.drops, 1)
			}
		}
	}()
}

// Drops reports bytes discarded on a full receive buffer.
func (p *Pump) Drops() uint32 { return atomic.LoadUint32(&p.drops) }

// Err reports why the pump stopped pumping, or nil while it still runs.
func (p *Pump) Err() error {
	if e := p.err.Load(); e != nil {
		return e
	}
	return nil
}
