package sched

import (
	"sync"
	"time"

	"livevip/internal/core/ports"
)

// Scheduler runs callbacks on real wall-clock timers.
type Scheduler struct{}

func New() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) After(d time.Duration, fn func()) ports.TimerHandle {
	t := time.AfterFunc(d, fn)
	return &afterHandle{timer: t}
}

func (s *Scheduler) Every(d time.Duration, fn func()) ports.TimerHandle {
	h := &everyHandle{done: make(chan struct{})}
	ticker := time.NewTicker(d)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fn()
			case <-h.done:
				return
			}
		}
	}()
	return h
}

type afterHandle struct {
	timer *time.Timer
}

func (h *afterHandle) Cancel() {
	h.timer.Stop()
}

type everyHandle struct {
	once sync.Once
	done chan struct{}
}

func (h *everyHandle) Cancel() {
	h.once.Do(func() { close(h.done) })
}

// Clock reports real time.
type Clock struct{}

func (Clock) Now() time.Time { return time.Now() }
