package console

import (
	"context"
	"sync/atomic"

	"deviceconsole-go/errcode"
)

// DefaultQueueDepth matches the ten-slot write queue the application has
// always used.
const DefaultQueueDepth = 10

// Writer serializes console output. Producers enqueue whole messages; a
// single consumer goroutine dequeues them in FIFO order and transmits each
// one completely before the next, so messages never interleave at the byte
// level.
type Writer struct {
	dev TxDevice
	q   chan string

	drops uint32 // ISR-path drop counter
}

// NewWriter builds the write queue. A non-positive depth is the one fatal
// startup failure this component has; queue creation failure means the
// application must not start at all, so it is reported rather than clamped.
func NewWriter(dev TxDevice, depth int) (*Writer, error) {
	if depth <= 0 {
		return nil, &errcode.E{C: errcode.QueueInvalid, Op: "console.NewWriter", Msg: "queue depth must be positive"}
	}
	return &Writer{dev: dev, q: make(chan string, depth)}, nil
}

// Start launches the consumer goroutine. It owns the transmit side of the
// device exclusively; nothing else writes to it.
func (w *Writer) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-w.q:
				if err := w.dev.WriteString(msg); err != nil {
					println("Error: console write:", err.Error())
				}
			}
		}
	}()
}

// Post enqueues one message, blocking until queue space is available.
// Task context only; never call from an interrupt path.
func (w *Writer) Post(msg string) {
	w.q <- msg
}

// PostFromISR enqueues without ever blocking. When the queue is full the
// message is dropped and counted; an interrupt path must not wait.
func (w *Writer) PostFromISR(msg string) bool {
	select {
	case w.q <- msg:
		return true
	default:
		atomic.AddUint32(&w.drops, 1)
		return false
	}
}

// Drops reports how many ISR-path messages were discarded on a full queue.
func (w *Writer) Drops() uint32 { return atomic.LoadUint32(&w.drops) }
