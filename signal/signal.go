// Package signal holds the two synchronisation primitives the application is
// built on: single-writer boolean flags and single-slot task notifications.
package signal

import (
	"context"
	"sync/atomic"
)

// Flag is a process-lifetime boolean with one writer and any number of
// readers. A plain atomic word is enough; no flag in this application is
// read-modify-written from more than one task.
type Flag struct {
	v atomic.Bool
}

func (f *Flag) Set()      { f.v.Store(true) }
func (f *Flag) Clear()    { f.v.Store(false) }
func (f *Flag) Get() bool { return f.v.Load() }

// Note is a single-slot wake notification between exactly two named tasks,
// the Go rendering of an RTOS task notification. Notify never blocks:
// a redundant notify while the slot is already pending coalesces. Wait
// blocks until the slot is filled.
//
// NotifyFromISR is the interrupt-context variant. It is the same
// non-blocking send; the separate name keeps the never-blocks requirement
// visible at call sites that run outside task context.
type Note struct {
	ch chan struct{}
}

func NewNote() *Note {
	return &Note{ch: make(chan struct{}, 1)}
}

func (n *Note) Notify() {
	select {
	case n.ch <- struct{}{}:
	default:
	}
}

func (n *Note) NotifyFromISR() {
	select {
	case n.ch <- struct{}{}:
	default:
	}
}

// Wait blocks until a notification is pending, or ctx is cancelled.
// Returns false on cancellation.
func (n *Note) Wait(ctx context.Context) bool {
	select {
	case <-n.ch:
		return true
	case <-ctx.Done():
		return false
	}
}

// Drain clears a pending notification without blocking.
func (n *Note) Drain() {
	select {
	case <-n.ch:
	default:
	}
}
