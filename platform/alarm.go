package platform

import (
	"sync"
	"time"
)

// dailyAlarm schedules the single software alarm both clock implementations
// share. delay is evaluated against the owning clock's own notion of "now"
// each time the alarm is (re)armed, so a daily alarm tracks clock updates
// made between firings.
type dailyAlarm struct {
	mu    sync.Mutex
	timer *time.Timer
}

// Arm replaces any pending alarm. fire runs on the timer goroutine.
func (a *dailyAlarm) Arm(delay func() time.Duration, daily bool, fire func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(delay(), func() { a.fired(delay, daily, fire) })
}

func (a *dailyAlarm) fired(delay func() time.Duration, daily bool, fire func()) {
	fire()
	if !daily {
		return
	}
	a.mu.Lock()
	a.timer = time.AfterFunc(delay(), func() { a.fired(delay, daily, fire) })
	a.mu.Unlock()
}
