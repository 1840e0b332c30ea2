package model

import (
	"time"
)

// RunSummary holds the aggregate outcome of a batch run.
// Succeeded + Failed always equals Total once every task has finished.
type RunSummary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// AllSucceeded reports whether every input file was converted
func (s RunSummary) AllSucceeded() bool {
	return s.Succeeded == s.Total
}

// Batch represents one run over a working directory and its conversion tasks
type Batch struct {
	ID         string            `json:"id"`
	WorkDir    string            `json:"work_dir"`
	OutputDir  string            `json:"output_dir"`
	Tasks      []*ConversionTask `json:"tasks"`
	TotalTasks int               `json:"total_tasks"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// NewBatch creates a new batch instance
func NewBatch(id, workDir, outputDir string) *Batch {
	now := time.Now()
	return &Batch{
		ID:        id,
		WorkDir:   workDir,
		OutputDir: outputDir,
		Tasks:     make([]*ConversionTask, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddTask adds a task to the batch
func (b *Batch) AddTask(task *ConversionTask) {
	b.Tasks = append(b.Tasks, task)
	b.TotalTasks = len(b.Tasks)
	b.UpdatedAt = time.Now()
}

// GetPendingTasks returns all tasks with pending status
func (b *Batch) GetPendingTasks() []*ConversionTask {
	return b.tasksWithStatus(TaskStatusPending)
}

// GetCompletedTasks returns all completed tasks
func (b *Batch) GetCompletedTasks() []*ConversionTask {
	return b.tasksWithStatus(TaskStatusCompleted)
}

// GetFailedTasks returns all tasks that ended with an error
func (b *Batch) GetFailedTasks() []*ConversionTask {
	return b.tasksWithStatus(TaskStatusError)
}

func (b *Batch) tasksWithStatus(status TaskStatus) []*ConversionTask {
	var matched []*ConversionTask
	for _, task := range b.Tasks {
		if task.Status == status {
			matched = append(matched, task)
		}
	}
	return matched
}

// HasErrors checks if any task has errors
func (b *Batch) HasErrors() bool {
	for _, task := range b.Tasks {
		if task.Status == TaskStatusError {
			return true
		}
	}
	return false
}

// Summary counts finished tasks. Tasks that are still pending or converting
// are included in Total only.
func (b *Batch) Summary() RunSummary {
	summary := RunSummary{Total: b.TotalTasks}
	for _, task := range b.Tasks {
		if !task.Status.IsFinished() {
			continue
		}
		if task.Status == TaskStatusCompleted {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}
	return summary
}
