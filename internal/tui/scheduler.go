package tui

import (
	"sort"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// taskMsg carries a browser continuation into the program's update loop.
type taskMsg struct {
	sched *Scheduler
	id    uint64
}

// run executes the continuation unless Stop already has.
func (t taskMsg) run() bool {
	task := t.sched.claim(t.id)
	if task == nil {
		return false
	}
	task()
	return true
}

// Sender delivers messages to a running program. *tea.Program is one.
type Sender interface {
	Send(msg tea.Msg)
}

// Scheduler runs browser continuations as program messages, so the surface
// is only touched from Update. A program that has exited drops messages
// without telling the sender, so every posted task stays pending until it
// runs in Update or in Stop.
type Scheduler struct {
	sender Sender

	mu      sync.Mutex
	pending map[uint64]func()
	next    uint64
	stopped bool
}

func NewScheduler(sender Sender) *Scheduler {
	return &Scheduler{sender: sender, pending: make(map[uint64]func())}
}

// Post hands task to the program. It reports false once Stop was called.
func (s *Scheduler) Post(task func()) bool {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return false
	}
	s.next++
	id := s.next
	s.pending[id] = task
	s.mu.Unlock()

	s.sender.Send(taskMsg{sched: s, id: id})
	return true
}

// Stop rejects further tasks and runs, in posting order, those the program
// never got to. Call it once the program has returned.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	ids := make([]uint64, 0, len(s.pending))
	for id := range s.pending {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if task := s.claim(id); task != nil {
			task()
		}
	}
}

func (s *Scheduler) claim(id uint64) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := s.pending[id]
	delete(s.pending, id)
	return task
}
