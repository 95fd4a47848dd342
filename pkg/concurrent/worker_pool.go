package concurrent

import (
	"errors"
	"time"
)

// ErrScheduleTimeout returned by Pool to indicate that no free
// goroutines during some period of time.
var ErrScheduleTimeout = errors.New("schedule error: timed out")

// Pool contains logic of goroutine reuse.
// ref: https://sergey.kamardin.org/articles/million-websockets-and-go/
type Pool struct {
	sem  chan struct{}
	work chan func()
}

// NewPool creates new goroutine pool with given size. It also creates a
// work queue of given size.
func NewPool(size, queue int) *Pool {
	return &Pool{
		sem:  make(chan struct{}, size),
		work: make(chan func(), queue),
	}
}

// Spawn starts n resident workers up front so the first connections do
// not pay the goroutine startup cost.
func (p *Pool) Spawn(n int) {
	for i := 0; i < n; i++ {
		p.sem <- struct{}{}
		go p.worker(func() {})
	}
}

// Schedule schedules task to be executed over pool's workers.
func (p *Pool) Schedule(task func()) {
	_ = p.schedule(task, nil)
}

// ScheduleTimeout schedules task to be executed over pool's workers.
// It returns ErrScheduleTimeout when no free workers met during given
// timeout.
func (p *Pool) ScheduleTimeout(timeout time.Duration, task func()) error {
	return p.schedule(task, time.After(timeout))
}

func (p *Pool) schedule(task func(), timeout <-chan time.Time) error {
	select {
	case <-timeout:
		return ErrScheduleTimeout
	case p.work <- task:
		return nil
	case p.sem <- struct{}{}:
		go p.worker(task)
		return nil
	}
}

func (p *Pool) worker(task func()) {
	defer func() { <-p.sem }()

	task()

	for task := range p.work {
		task()
	}
}

// Close stops accepting new work; resident workers drain the queue and
// exit.
func (p *Pool) Close() {
	close(p.work)
}
