package background_tasks

import (
	"sync"
	"time"
)

// Scheduler runs each task on its own goroutine, repeatedly, until stopped.
// Stop requests are observed between runs only: a run in progress always
// completes, and Stop waits for it.
type Scheduler struct {
	tasks      map[int]*Task // Map of tasks by their ID.
	stopChan   chan struct{} // Channel to signal stopping the scheduler.
	wg         sync.WaitGroup
	lastTaskID int  // Counter for assigning unique IDs to tasks.
	started    bool // Start has been called.
	stopped    bool // Stop has been called.
	mu         sync.Mutex
}

// NewScheduler creates a new, idle Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		tasks:    make(map[int]*Task),
		stopChan: make(chan struct{}),
	}
}

// AddTask registers a task. Tasks added after Start begin running
// immediately.
func (s *Scheduler) AddTask(task *Task) *Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	task.ID = s.lastTaskID
	s.tasks[task.ID] = task
	s.lastTaskID++

	if s.started && !s.stopped {
		s.launch(task)
	}
	return task
}

// Start begins running every registered task.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.stopped {
		return
	}
	s.started = true

	for _, task := range s.tasks {
		s.launch(task)
	}
}

// Stop signals all task loops to exit and waits for in-flight runs to finish.
// It is safe to call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.stopped {
		s.stopped = true
		close(s.stopChan)
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// LastExecution returns the most recent run of a task and how many runs have
// completed.
func (s *Scheduler) LastExecution(taskID int) (Execution, uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[taskID]
	if !ok {
		return Execution{}, 0, false
	}
	return task.last, task.runs, true
}

// launch must be called with s.mu held.
func (s *Scheduler) launch(task *Task) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop(task)
	}()
}

func (s *Scheduler) loop(task *Task) {
	for {
		select {
		case <-s.stopChan:
			return
		default:
		}

		s.runTask(task)

		next := task.Trigger.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-s.stopChan:
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// runTask executes a task once and records the outcome. Failures are logged
// and otherwise ignored; the task runs again at its next trigger time.
func (s *Scheduler) runTask(task *Task) {
	execution := Execution{StartedAt: time.Now()}

	err := task.Function()
	execution.EndedAt = time.Now()
	if err != nil {
		execution.Status = StatusFailed
		execution.Error = err.Error()
		zlog.Sugar().Warnf("task %q failed: %v", task.Name, err)
	} else {
		execution.Status = StatusSuccess
	}

	s.mu.Lock()
	task.last = execution
	task.runs++
	s.mu.Unlock()
}
