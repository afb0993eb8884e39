package shell

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"
)

// Scheduler runs fire-and-forget continuations after a delay. Tasks never
// block the caller and report nothing back.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// TimerScheduler schedules tasks on real timers. Tasks still pending when
// the scheduler's context ends are dropped.
type TimerScheduler struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewTimerScheduler creates a scheduler bound to parent's lifetime
func NewTimerScheduler(parent context.Context) *TimerScheduler {
	ctx, cancel := context.WithCancel(parent)
	return &TimerScheduler{ctx: ctx, cancel: cancel}
}

// After runs fn once d has elapsed unless the scheduler was stopped first
func (s *TimerScheduler) After(d time.Duration, fn func()) {
	if s.ctx.Err() != nil {
		return
	}
	time.AfterFunc(d, func() {
		if s.ctx.Err() != nil {
			return
		}
		runTask(fn)
	})
}

// Stop drops every task that has not started yet
func (s *TimerScheduler) Stop() {
	s.cancel()
}

func runTask(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Scheduler] Deferred task panicked: %v", r)
		}
	}()
	fn()
}

// ManualScheduler is a Scheduler driven by a virtual clock
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []manualTask
}

type manualTask struct {
	at  time.Duration
	seq int
	fn  func()
}

// NewManualScheduler creates a scheduler at virtual time zero
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// After queues fn to run when the clock reaches now+d
func (m *ManualScheduler) After(d time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.tasks = append(m.tasks, manualTask{at: m.now + d, seq: m.seq, fn: fn})
}

// Advance moves the clock forward by d, running due tasks in time order.
// Tasks scheduled by running tasks are honoured if they fall due in range.
func (m *ManualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		sort.SliceStable(m.tasks, func(i, j int) bool {
			if m.tasks[i].at != m.tasks[j].at {
				return m.tasks[i].at < m.tasks[j].at
			}
			return m.tasks[i].seq < m.tasks[j].seq
		})
		if len(m.tasks) == 0 || m.tasks[0].at > target {
			m.now = target
			m.mu.Unlock()
			return
		}
		task := m.tasks[0]
		m.tasks = m.tasks[1:]
		m.now = task.at
		m.mu.Unlock()

		runTask(task.fn)
	}
}

// Now returns the virtual time
func (m *ManualScheduler) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending returns the number of queued tasks
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}
