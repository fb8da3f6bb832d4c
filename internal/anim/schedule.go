package anim

import (
	"sync"
	"sync/atomic"
	"time"
)

// Handle is a cancellable scheduled task. Cancel is immediate and idempotent.
type Handle struct {
	id   uint64
	stop chan struct{}
	once sync.Once
}

func NewHandle(id uint64) *Handle {
	return &Handle{id: id, stop: make(chan struct{})}
}

func (h *Handle) ID() uint64 { return h.id }

func (h *Handle) Cancel() {
	h.once.Do(func() { close(h.stop) })
}

// Done is closed once the handle is cancelled.
func (h *Handle) Done() <-chan struct{} { return h.stop }

func (h *Handle) Canceled() bool {
	select {
	case <-h.stop:
		return true
	default:
		return false
	}
}

// Scheduler runs fn every interval until the returned handle is cancelled.
type Scheduler interface {
	Schedule(interval time.Duration, fn func(*Handle)) *Handle
}

// TimerScheduler drives ticks from a time.Ticker on its own goroutine.
type TimerScheduler struct {
	ids atomic.Uint64
}

func (s *TimerScheduler) Schedule(interval time.Duration, fn func(*Handle)) *Handle {
	h := NewHandle(s.ids.Add(1))
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-h.stop:
				return
			case <-t.C:
				fn(h)
			}
		}
	}()
	return h
}
