// Package jobs runs named background tasks in-process and tracks their
// lifecycle for the jobs API.
package jobs

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a job.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusRunning Status = "RUNNING"
	StatusSuccess Status = "SUCCESS"
	StatusError   Status = "ERROR"
)

// Task is the unit of work a job executes.
type Task func(ctx context.Context) (any, error)

// Info is a point-in-time snapshot of one job.
type Info struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Status     Status     `json:"status"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Error      string     `json:"error,omitempty"`
	Result     any        `json:"result,omitempty"`
}

type job struct {
	info Info
	done chan struct{}
}

// Manager tracks in-process jobs. Jobs are ephemeral: they live in memory and
// do not survive a restart.
type Manager struct {
	mu   sync.Mutex
	jobs map[string]*job
	wg   sync.WaitGroup
	log  *slog.Logger
}

// NewManager creates an empty job manager.
func NewManager(log *slog.Logger) *Manager {
	return &Manager{
		jobs: make(map[string]*job),
		log:  log,
	}
}

// Start registers a job and runs its task on a new goroutine. The returned
// snapshot carries the id clients use to poll for completion.
func (m *Manager) Start(ctx context.Context, name string, task Task) Info {
	j := &job{
		info: Info{
			ID:     uuid.NewString(),
			Name:   name,
			Status: StatusPending,
		},
		done: make(chan struct{}),
	}

	m.mu.Lock()
	m.jobs[j.info.ID] = j
	info := j.info
	m.mu.Unlock()

	// Snapshot taken before the goroutine starts; run mutates j.info under
	// the lock from here on.
	m.wg.Add(1)
	go m.run(ctx, j, task)

	return info
}

func (m *Manager) run(ctx context.Context, j *job, task Task) {
	defer m.wg.Done()
	defer close(j.done)

	started := time.Now().UTC()
	m.update(j, func(info *Info) {
		info.Status = StatusRunning
		info.StartedAt = &started
	})

	result, err := task(ctx)

	finished := time.Now().UTC()
	m.update(j, func(info *Info) {
		info.FinishedAt = &finished
		if err != nil {
			info.Status = StatusError
			info.Error = err.Error()
			return
		}
		info.Status = StatusSuccess
		info.Result = result
	})

	if err != nil {
		m.log.Error("job failed",
			slog.String("job_id", j.info.ID),
			slog.String("job_name", j.info.Name),
			slog.String("error", err.Error()),
		)
		return
	}
	m.log.Info("job finished",
		slog.String("job_id", j.info.ID),
		slog.String("job_name", j.info.Name),
		slog.Duration("duration", finished.Sub(started)),
	)
}

func (m *Manager) update(j *job, fn func(*Info)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&j.info)
}

// Get returns the snapshot of one job.
func (m *Manager) Get(id string) (Info, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return Info{}, false
	}
	return j.info, true
}

// List returns snapshots of every known job, oldest first.
func (m *Manager) List() []Info {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Info, 0, len(m.jobs))
	for _, j := range m.jobs {
		out = append(out, j.info)
	}
	sort.Slice(out, func(i, k int) bool {
		a, b := out[i], out[k]
		switch {
		case a.StartedAt == nil:
			return false
		case b.StartedAt == nil:
			return true
		case a.StartedAt.Equal(*b.StartedAt):
			return a.ID < b.ID
		default:
			return a.StartedAt.Before(*b.StartedAt)
		}
	})
	return out
}

// Active returns snapshots of jobs that are currently running.
func (m *Manager) Active() []Info {
	all := m.List()
	out := all[:0]
	for _, info := range all {
		if info.Status == StatusRunning {
			out = append(out, info)
		}
	}
	return out
}

// Wait blocks until the given job finishes. It reports false for unknown ids.
func (m *Manager) Wait(id string) bool {
	m.mu.Lock()
	j, ok := m.jobs[id]
	m.mu.Unlock()
	if !ok {
		return false
	}
	<-j.done
	return true
}

// Drain waits for every started job to finish or the context to expire. Used
// during graceful shutdown.
func (m *Manager) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
