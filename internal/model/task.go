package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	ErrInvalidStatus      = errors.New("model: invalid task status")
	ErrInvalidProbability = errors.New("model: invalid task probability")
)

const DefaultProbability = 0.5

type TaskStatus string

const (
	TaskStatusUnobserved TaskStatus = "unobserved"
	TaskStatusCollapsing TaskStatus = "collapsing"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusUnobserved, TaskStatusCollapsing:
		return true
	default:
		return false
	}
}

type Task struct {
	ID          string
	Text        string
	Status      TaskStatus
	CreatedAt   time.Time
	Probability float64
}

// NewTask builds a task in its initial state. CreatedAt is truncated to the
// millisecond, the resolution it is persisted with.
func NewTask(id, text string, now time.Time) Task {
	return Task{
		ID:          id,
		Text:        text,
		Status:      TaskStatusUnobserved,
		CreatedAt:   now.Truncate(time.Millisecond),
		Probability: DefaultProbability,
	}
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return errors.New("model: task text is required")
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	if math.IsNaN(t.Probability) || t.Probability < 0 || t.Probability > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidProbability, t.Probability)
	}
	return nil
}

func ClampProbability(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}
