package model

import "time"

// DefaultCollapseDelay is how long a row stays in the collapsing phase before
// its task is removed.
const DefaultCollapseDelay = 3500 * time.Millisecond

type FeedbackLabel string

const (
	FeedbackCollapse FeedbackLabel = "collapse!"
	FeedbackObserved FeedbackLabel = "observed."
	FeedbackCatAlive FeedbackLabel = "cat is alive 🐱"
)

// RandomSource yields uniform values in [0,1). *math/rand/v2.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

func DrawFeedbackLabel(src RandomSource) FeedbackLabel {
	r := src.Float64()
	switch {
	case r > 0.99:
		return FeedbackCatAlive
	case r > 0.90:
		return FeedbackObserved
	default:
		return FeedbackCollapse
	}
}

type CollapsePhase string

const (
	CollapsePhaseIdle       CollapsePhase = "idle"
	CollapsePhaseCollapsing CollapsePhase = "collapsing"
)

// CollapseRow is the transient, never persisted, collapse state of one
// displayed task.
type CollapseRow struct {
	TaskID    string
	Phase     CollapsePhase
	Label     FeedbackLabel
	StartedAt time.Time
}

func NewCollapseRow(taskID string) *CollapseRow {
	return &CollapseRow{TaskID: taskID, Phase: CollapsePhaseIdle}
}

// Trigger moves the row from idle to collapsing and draws its feedback label.
// It reports false when the row is already collapsing.
func (r *CollapseRow) Trigger(src RandomSource, now time.Time) bool {
	if r.Phase == CollapsePhaseCollapsing {
		return false
	}
	r.Phase = CollapsePhaseCollapsing
	r.Label = DrawFeedbackLabel(src)
	r.StartedAt = now
	return true
}

func (r *CollapseRow) Collapsing() bool {
	return r != nil && r.Phase == CollapsePhaseCollapsing
}

// DueAt is when the pending removal fires. Zero while idle.
func (r *CollapseRow) DueAt(delay time.Duration) time.Time {
	if !r.Collapsing() {
		return time.Time{}
	}
	return r.StartedAt.Add(delay)
}
