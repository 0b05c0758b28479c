package controller

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/schrosk/internal/log"
	"github.com/sandeepkv93/schrosk/internal/model"
	"github.com/sandeepkv93/schrosk/internal/storage"
)

var ErrEmptyText = errors.New("controller: task text is empty")

type Persister interface {
	Load(ctx context.Context) storage.LoadResult
	Save(ctx context.Context, snap storage.Snapshot) error
}

type Options struct {
	Persister Persister
	NewID     func() string
	Now       func() time.Time
}

// Controller owns the task collection and the collapse counter. Once Load
// has run, every mutation rewrites both persisted values.
type Controller struct {
	mu            sync.Mutex
	tasks         []model.Task
	collapseCount int
	ready         bool

	persister Persister
	newID     func() string
	now       func() time.Time
}

func New(opts Options) *Controller {
	c := &Controller{
		tasks:     []model.Task{},
		persister: opts.Persister,
		newID:     opts.NewID,
		now:       opts.Now,
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Load reads the persisted state once. A value that fails to load stays at
// its default while the other is still applied.
func (c *Controller) Load(ctx context.Context) storage.LoadResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	var res storage.LoadResult
	if c.persister != nil {
		res = c.persister.Load(ctx)
	}
	if res.TasksErr != nil {
		log.Warnf("load tasks: %v", res.TasksErr)
		res.Tasks = nil
	}
	if res.CountErr != nil {
		log.Warnf("load collapse count: %v", res.CountErr)
		res.CollapseCount = 0
	}
	c.tasks = append([]model.Task{}, res.Tasks...)
	c.collapseCount = res.CollapseCount
	c.ready = true
	log.Infof("loaded %d task(s), collapse count %d", len(c.tasks), c.collapseCount)
	return res
}

func (c *Controller) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}

func (c *Controller) Add(ctx context.Context, text string) (model.Task, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return model.Task{}, ErrEmptyText
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	task := model.NewTask(c.newID(), trimmed, c.now())
	c.tasks = append([]model.Task{task}, c.tasks...)
	log.Debugf("added task %s", task.ID)
	return task, c.persistLocked(ctx)
}

// SetProbability stores value as given. Unknown ids are ignored.
func (c *Controller) SetProbability(ctx context.Context, id string, value float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.indexLocked(id)
	if idx < 0 {
		return nil
	}
	c.tasks[idx].Probability = value
	return c.persistLocked(ctx)
}

// Remove deletes the task and counts one collapse. Unknown ids are ignored
// and do not count.
func (c *Controller) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.indexLocked(id)
	if idx < 0 {
		return nil
	}
	c.tasks = slices.Delete(c.tasks, idx, idx+1)
	c.collapseCount++
	log.Debugf("collapsed task %s, count %d", id, c.collapseCount)
	return c.persistLocked(ctx)
}

func (c *Controller) ResetCollapseCount(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.collapseCount = 0
	return c.persistLocked(ctx)
}

func (c *Controller) CollapseCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.collapseCount
}

func (c *Controller) Tasks() []model.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.tasks)
}

func (c *Controller) Task(id string) (model.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.indexLocked(id)
	if idx < 0 {
		return model.Task{}, false
	}
	return c.tasks[idx], true
}

func (c *Controller) Histogram() model.Histogram {
	c.mu.Lock()
	defer c.mu.Unlock()
	return model.BuildHistogram(c.tasks)
}

func (c *Controller) indexLocked(id string) int {
	return slices.IndexFunc(c.tasks, func(t model.Task) bool { return t.ID == id })
}

func (c *Controller) persistLocked(ctx context.Context) error {
	if !c.ready || c.persister == nil {
		return nil
	}
	snap := storage.Snapshot{Tasks: slices.Clone(c.tasks), CollapseCount: c.collapseCount}
	if err := c.persister.Save(ctx, snap); err != nil {
		log.Errorf("persist state: %v", err)
		return err
	}
	return nil
}
