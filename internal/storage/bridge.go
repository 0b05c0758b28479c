package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/schrosk/internal/model"
)

const (
	TasksKey         = "schrosk-tasks"
	CollapseCountKey = "schrosk-collapse-count"
)

var (
	ErrMalformedTasks = errors.New("storage: malformed persisted tasks")
	ErrMalformedCount = errors.New("storage: malformed persisted collapse count")
)

// LoadResult carries whatever could be read. A failed value is left at its
// default and its error is reported separately so the other value can still
// be applied.
type LoadResult struct {
	Snapshot
	TasksErr error
	CountErr error
}

// Bridge maps the in-memory state onto two KV entries.
type Bridge struct {
	kv KV
}

func NewBridge(kv KV) *Bridge {
	return &Bridge{kv: kv}
}

func (b *Bridge) Save(ctx context.Context, snap Snapshot) error {
	records := make([]TaskRecord, 0, len(snap.Tasks))
	for _, t := range snap.Tasks {
		records = append(records, recordFromTask(t))
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := b.kv.Set(ctx, TasksKey, string(payload)); err != nil {
		return fmt.Errorf("write tasks: %w", err)
	}
	if err := b.kv.Set(ctx, CollapseCountKey, strconv.Itoa(snap.CollapseCount)); err != nil {
		return fmt.Errorf("write collapse count: %w", err)
	}
	return nil
}

func (b *Bridge) Load(ctx context.Context) LoadResult {
	var out LoadResult
	out.Tasks, out.TasksErr = b.loadTasks(ctx)
	out.CollapseCount, out.CountErr = b.loadCount(ctx)
	return out
}

func (b *Bridge) loadTasks(ctx context.Context) ([]model.Task, error) {
	raw, ok, err := b.kv.Get(ctx, TasksKey)
	if err != nil {
		return []model.Task{}, fmt.Errorf("read tasks: %w", err)
	}
	if !ok {
		return []model.Task{}, nil
	}
	var records []TaskRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return []model.Task{}, fmt.Errorf("%w: %v", ErrMalformedTasks, err)
	}
	tasks := make([]model.Task, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, rec := range records {
		if _, dup := seen[rec.ID]; dup {
			return []model.Task{}, fmt.Errorf("%w: duplicate id %q", ErrMalformedTasks, rec.ID)
		}
		seen[rec.ID] = struct{}{}
		task := rec.toTask()
		if err := task.Validate(); err != nil {
			return []model.Task{}, fmt.Errorf("%w: record %d: %v", ErrMalformedTasks, i, err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (b *Bridge) loadCount(ctx context.Context) (int, error) {
	raw, ok, err := b.kv.Get(ctx, CollapseCountKey)
	if err != nil {
		return 0, fmt.Errorf("read collapse count: %w", err)
	}
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedCount, raw)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative value %d", ErrMalformedCount, n)
	}
	return n, nil
}
