package meiligo

import (
	"context"
	"fmt"
	"time"

	"meiligo/internal/metrics"
	"meiligo/meilierr"
)

// TaskStatus is the lifecycle status of a server-side task.
type TaskStatus string

const (
	TaskEnqueued   TaskStatus = "enqueued"
	TaskProcessing TaskStatus = "processing"
	TaskSucceeded  TaskStatus = "succeeded"
	TaskFailed     TaskStatus = "failed"
)

// IsTerminal reports whether the task has finished. Statuses this
// client does not know about count as terminal so the poller never
// spins on them.
func (s TaskStatus) IsTerminal() bool {
	return s != TaskEnqueued && s != TaskProcessing
}

// String returns the string representation of the status.
func (s TaskStatus) String() string {
	return string(s)
}

// TaskInfo is the acknowledgment returned by mutating endpoints.
type TaskInfo struct {
	TaskUID    int64      `json:"taskUid"`
	IndexUID   string     `json:"indexUid"`
	Status     TaskStatus `json:"status"`
	Type       string     `json:"type"`
	EnqueuedAt Timestamp  `json:"enqueuedAt"`
}

// TaskError describes why a task failed.
type TaskError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Type    string `json:"type"`
	Link    string `json:"link"`
}

// Task is the full task record from the task status endpoints.
type Task struct {
	UID        int64          `json:"uid"`
	IndexUID   string         `json:"indexUid"`
	Status     TaskStatus     `json:"status"`
	Type       string         `json:"type"`
	Details    map[string]any `json:"details,omitempty"`
	Error      *TaskError     `json:"error,omitempty"`
	Duration   string         `json:"duration,omitempty"`
	EnqueuedAt Timestamp      `json:"enqueuedAt"`
	StartedAt  Timestamp      `json:"startedAt"`
	FinishedAt Timestamp      `json:"finishedAt"`
}

// TaskList is the reply from the task list endpoints.
type TaskList struct {
	Results []Task `json:"results"`
}

// Defaults for WaitForTask when no WaitParams are given.
const (
	DefaultWaitTimeout  = 5 * time.Second
	DefaultWaitInterval = 50 * time.Millisecond
)

// WaitParams bound the task polling loop. A zero or negative Timeout
// still allows exactly one status check before timing out.
type WaitParams struct {
	Timeout  time.Duration
	Interval time.Duration
}

func (p *WaitParams) withDefaults() WaitParams {
	if p == nil {
		return WaitParams{Timeout: DefaultWaitTimeout, Interval: DefaultWaitInterval}
	}
	out := *p
	if out.Interval <= 0 {
		out.Interval = DefaultWaitInterval
	}
	return out
}

// awaitTask polls get until the task is terminal or the timeout
// elapses. Status reads are the only requests ever repeated; a failed
// read aborts the wait. The sleep is cancellable through ctx.
func awaitTask(ctx context.Context, get func(context.Context) (*Task, error), taskUID int64, params *WaitParams) (*Task, error) {
	p := params.withDefaults()
	start := time.Now()
	for {
		task, err := get(ctx)
		if err != nil {
			return nil, err
		}
		if task.Status.IsTerminal() {
			metrics.RecordTaskWait(task.Status.String(), time.Since(start))
			return task, nil
		}
		if time.Since(start) >= p.Timeout {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.Interval):
		}
		if time.Since(start) >= p.Timeout {
			break
		}
	}
	metrics.RecordTaskWait("timeout", time.Since(start))
	return nil, &meilierr.TimeoutError{
		Message: fmt.Sprintf("timeout of %s exceeded while waiting for task %d", p.Timeout, taskUID),
	}
}
