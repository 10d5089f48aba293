package gui

import (
	"context"
	"errors"
	"sync"
	"time"

	"codeberg.org/snonux/flashgen/internal/processor"
)

var (
	// ErrBusy is returned when a job is submitted while another one runs
	ErrBusy = errors.New("a flashcard generation is already running")

	// ErrStopped is returned when a job is submitted after Stop
	ErrStopped = errors.New("job runner is stopped")
)

// GenerationJob represents one run of the pipeline on one input file
type GenerationJob struct {
	ID          int
	Input       string
	Status      JobStatus
	Result      *processor.Result
	Error       error
	StartedAt   time.Time
	CompletedAt time.Time
}

// JobStatus represents the current state of a job
type JobStatus int

const (
	StatusQueued JobStatus = iota
	StatusProcessing
	StatusCompleted
	StatusFailed
)

func (s JobStatus) String() string {
	switch s {
	case StatusQueued:
		return "Queued"
	case StatusProcessing:
		return "Processing"
	case StatusCompleted:
		return "Completed"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// JobFunc does the work of a job
type JobFunc func(ctx context.Context) (*processor.Result, error)

// JobRunner runs at most one job at a time on a background goroutine.
// Callbacks receive a copy of the job and run on that goroutine.
type JobRunner struct {
	current *GenerationJob
	nextID  int
	stopped bool
	mu      sync.RWMutex

	// Callbacks for UI updates
	onStatusUpdate func(job *GenerationJob)
	onJobComplete  func(job *GenerationJob)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewJobRunner creates a runner whose jobs are cancelled together with ctx
func NewJobRunner(ctx context.Context) *JobRunner {
	runnerCtx, cancel := context.WithCancel(ctx)
	return &JobRunner{
		nextID: 1,
		ctx:    runnerCtx,
		cancel: cancel,
	}
}

// SetCallbacks sets the callback functions for UI updates
func (r *JobRunner) SetCallbacks(onStatusUpdate, onJobComplete func(*GenerationJob)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onStatusUpdate = onStatusUpdate
	r.onJobComplete = onJobComplete
}

// Submit starts fn in the background. It returns ErrBusy while another job runs.
func (r *JobRunner) Submit(input string, fn JobFunc) (*GenerationJob, error) {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return nil, ErrStopped
	}
	if r.current != nil {
		r.mu.Unlock()
		return nil, ErrBusy
	}

	job := &GenerationJob{
		ID:     r.nextID,
		Input:  input,
		Status: StatusQueued,
	}
	r.nextID++
	r.current = job
	r.wg.Add(1)
	r.mu.Unlock()

	snapshot := *job
	r.notify(job, false)

	go r.run(job, fn)

	return &snapshot, nil
}

func (r *JobRunner) run(job *GenerationJob, fn JobFunc) {
	defer r.wg.Done()

	r.mu.Lock()
	job.Status = StatusProcessing
	job.StartedAt = time.Now()
	r.mu.Unlock()
	r.notify(job, false)

	result, err := fn(r.ctx)

	r.mu.Lock()
	job.CompletedAt = time.Now()
	if err != nil {
		job.Status = StatusFailed
		job.Error = err
	} else {
		job.Status = StatusCompleted
		job.Result = result
	}
	// Release before the callback so the UI can submit the next job from it
	r.current = nil
	r.mu.Unlock()

	r.notify(job, true)
}

// notify hands a snapshot of job to the matching callback
func (r *JobRunner) notify(job *GenerationJob, done bool) {
	r.mu.RLock()
	snapshot := *job
	callback := r.onStatusUpdate
	if done {
		callback = r.onJobComplete
	}
	r.mu.RUnlock()

	if callback != nil {
		callback(&snapshot)
	}
}

// Busy reports whether a job is running
func (r *JobRunner) Busy() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current != nil
}

// Current returns a copy of the running job, or nil
func (r *JobRunner) Current() *GenerationJob {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.current == nil {
		return nil
	}
	snapshot := *r.current
	return &snapshot
}

// Wait blocks until the running job, if any, has finished
func (r *JobRunner) Wait() {
	r.wg.Wait()
}

// Stop cancels the running job and waits for it to return
func (r *JobRunner) Stop() {
	r.mu.Lock()
	r.stopped = true
	r.mu.Unlock()

	r.cancel()
	r.wg.Wait()
}
