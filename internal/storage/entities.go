package storage

import (
	"time"

	"github.com/sandeepkv93/schrosk/internal/model"
)

// TaskRecord is the persisted JSON shape of a task. CreatedAt is epoch
// milliseconds.
type TaskRecord struct {
	ID          string  `json:"id"`
	Text        string  `json:"text"`
	Status      string  `json:"status"`
	CreatedAt   int64   `json:"createdAt"`
	Probability float64 `json:"probability"`
}

type Snapshot struct {
	Tasks         []model.Task
	CollapseCount int
}

func recordFromTask(t model.Task) TaskRecord {
	return TaskRecord{
		ID:          t.ID,
		Text:        t.Text,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt.UnixMilli(),
		Probability: t.Probability,
	}
}

// toTask clamps the probability into [0,1]; stored values outside that
// range are still tasks.
func (r TaskRecord) toTask() model.Task {
	status := model.TaskStatus(r.Status)
	if r.Status == "" {
		status = model.TaskStatusUnobserved
	}
	return model.Task{
		ID:          r.ID,
		Text:        r.Text,
		Status:      status,
		CreatedAt:   time.UnixMilli(r.CreatedAt).UTC(),
		Probability: model.ClampProbability(r.Probability),
	}
}
