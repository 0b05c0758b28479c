package update

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/schrosk/internal/controller"
	"github.com/sandeepkv93/schrosk/internal/model"
	"github.com/sandeepkv93/schrosk/internal/scheduler"
	"github.com/sandeepkv93/schrosk/internal/storage"
	"github.com/sandeepkv93/schrosk/internal/views"
)

type fixedRandom float64

func (f fixedRandom) Float64() float64 { return float64(f) }

type failingKV struct {
	*storage.MemoryStore
}

func (failingKV) Set(context.Context, string, string) error { return errors.New("disk full") }

func newLoadedModel(t *testing.T, opts Options, texts ...string) (Model, *controller.Controller) {
	t.Helper()
	ctrl := controller.New(controller.Options{Persister: storage.NewBridge(storage.NewMemoryStore())})
	ctrl.Load(t.Context())
	for _, text := range texts {
		if _, err := ctrl.Add(t.Context(), text); err != nil {
			t.Fatalf("seed %q: %v", text, err)
		}
	}
	if opts.Random == nil {
		opts.Random = fixedRandom(0.5)
	}
	m := NewModel(ctrl, opts)
	updated, _ := m.Update(StateLoadedMsg{})
	return updated.(Model), ctrl
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		var updated tea.Model
		updated, cmd = m.Update(msg)
		m = updated.(Model)
	}
	return m, cmd
}

func TestViewIsEmptyUntilLoaded(t *testing.T) {
	ctrl := controller.New(controller.Options{})
	m := NewModel(ctrl, Options{})
	if out := m.View(); out != "" {
		t.Fatalf("expected empty view before load, got %q", out)
	}
	m, _ = press(t, m, "i")
	if m.Capturing {
		t.Fatal("keys should be ignored before load")
	}

	msg := loadStateCmd(ctrl)()
	loaded, ok := msg.(StateLoadedMsg)
	if !ok {
		t.Fatalf("expected StateLoadedMsg, got %T", msg)
	}
	updated, _ := m.Update(loaded)
	next := updated.(Model)
	out := next.View()
	if !strings.Contains(out, "SCHRÖSK") || !strings.Contains(out, "Observation Creates Reality") {
		t.Fatalf("expected header in output: %q", out)
	}
	if !strings.Contains(out, views.EmptyListText) {
		t.Fatalf("expected empty state in output: %q", out)
	}
}

func TestQuitAllowedBeforeLoad(t *testing.T) {
	m := NewModel(nil, Options{})
	next, cmd := press(t, m, "q")
	if !next.Quitting || cmd == nil {
		t.Fatal("expected quit before load")
	}
}

func TestAddTaskWithKeyboard(t *testing.T) {
	m, ctrl := newLoadedModel(t, Options{})
	m, _ = press(t, m, "i", "buy milk", "enter")

	tasks := ctrl.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "buy milk" || tasks[0].Probability != 0.5 {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
	if ctrl.CollapseCount() != 0 {
		t.Fatalf("counter should be unchanged")
	}
	m, _ = press(t, m, "esc")
	out := m.View()
	if !strings.Contains(out, "buy milk") || !strings.Contains(out, "50%") {
		t.Fatalf("expected new row in output: %q", out)
	}
}

func TestAddEmptyTextIsIgnored(t *testing.T) {
	m, ctrl := newLoadedModel(t, Options{})
	m, _ = press(t, m, "i", "   ", "enter")
	if len(ctrl.Tasks()) != 0 {
		t.Fatalf("expected no tasks, got %d", len(ctrl.Tasks()))
	}
	if m.Status.Text != "empty state ignored" {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
}

func TestProbabilityKeysStepAndClamp(t *testing.T) {
	m, ctrl := newLoadedModel(t, Options{}, "measure")
	id := ctrl.Tasks()[0].ID

	m, _ = press(t, m, "L", "L", "L", "L", "L", "L")
	if got, _ := ctrl.Task(id); got.Probability != 1 {
		t.Fatalf("expected clamp at 1, got %v", got.Probability)
	}
	m, _ = press(t, m, "h")
	if got, _ := ctrl.Task(id); got.Probability != 0.99 {
		t.Fatalf("expected 0.99, got %v", got.Probability)
	}
	for i := 0; i < 12; i++ {
		m, _ = press(t, m, "H")
	}
	if got, _ := ctrl.Task(id); got.Probability != 0 {
		t.Fatalf("expected clamp at 0, got %v", got.Probability)
	}
	if !strings.Contains(m.View(), "0%") {
		t.Fatalf("expected zero percent in view")
	}
}

func TestCursorSelectsRowForAdjustment(t *testing.T) {
	m, ctrl := newLoadedModel(t, Options{}, "a", "b", "c")
	m, _ = press(t, m, "j", "l")
	tasks := ctrl.Tasks()
	if tasks[1].Text != "b" || tasks[1].Probability != 0.51 {
		t.Fatalf("expected b at 0.51, got %+v", tasks[1])
	}
	if tasks[0].Probability != 0.5 || tasks[2].Probability != 0.5 {
		t.Fatalf("other rows should be untouched: %+v", tasks)
	}
	m, _ = press(t, m, "j", "j", "j")
	if m.Cursor != 2 {
		t.Fatalf("cursor should stop at the last row, got %d", m.Cursor)
	}
	m, _ = press(t, m, "k", "k", "k", "k")
	if m.Cursor != 0 {
		t.Fatalf("cursor should stop at the first row, got %d", m.Cursor)
	}
}

func TestCollapseRemovesTaskAfterDelay(t *testing.T) {
	m, ctrl := newLoadedModel(t, Options{}, "buy milk")
	id := ctrl.Tasks()[0].ID

	m, cmd := press(t, m, " ")
	if cmd == nil {
		t.Fatal("expected timer cmd")
	}
	if !m.Rows[id].Collapsing() {
		t.Fatal("expected row to be collapsing")
	}
	if !strings.Contains(m.View(), string(model.FeedbackCollapse)) {
		t.Fatalf("expected feedback label in view: %q", m.View())
	}
	if len(ctrl.Tasks()) != 1 {
		t.Fatal("task must stay until the delay elapses")
	}

	updated, _ := m.Update(CollapseDueMsg{TaskID: id})
	next := updated.(Model)
	if len(ctrl.Tasks()) != 0 || ctrl.CollapseCount() != 1 {
		t.Fatalf("expected removal and count 1, got %d tasks count %d", len(ctrl.Tasks()), ctrl.CollapseCount())
	}
	if len(next.Rows) != 0 {
		t.Fatalf("expected row to be torn down")
	}
	if !strings.Contains(next.View(), "Ψ 1") {
		t.Fatalf("expected counter in view")
	}
}

func TestCollapseLabelFollowsRandomDraw(t *testing.T) {
	m, ctrl := newLoadedModel(t, Options{Random: fixedRandom(0.995)}, "cat")
	id := ctrl.Tasks()[0].ID
	m, _ = press(t, m, "c")
	if m.Rows[id].Label != model.FeedbackCatAlive {
		t.Fatalf("expected rare label, got %q", m.Rows[id].Label)
	}
}

func TestCollapseTwiceIsNoOp(t *testing.T) {
	m, ctrl := newLoadedModel(t, Options{}, "once")
	id := ctrl.Tasks()[0].ID
	m, _ = press(t, m, "c")
	started := m.Rows[id].StartedAt

	m, cmd := press(t, m, "c")
	if cmd != nil {
		t.Fatal("second trigger should not arm another timer")
	}
	if !m.Rows[id].StartedAt.Equal(started) {
		t.Fatal("second trigger should not restart the row")
	}
}

func TestLateCollapseFireIsIgnored(t *testing.T) {
	m, ctrl := newLoadedModel(t, Options{}, "keep")
	updated, _ := m.Update(CollapseDueMsg{TaskID: "gone"})
	_ = updated.(Model)
	updated, _ = m.Update(CollapseDueMsg{TaskID: ctrl.Tasks()[0].ID})
	_ = updated.(Model)
	if len(ctrl.Tasks()) != 1 || ctrl.CollapseCount() != 0 {
		t.Fatal("fire without a collapsing row must not remove anything")
	}
}

func TestCollapseAboveCursorKeepsSelection(t *testing.T) {
	m, ctrl := newLoadedModel(t, Options{}, "a", "b", "c")
	tasks := ctrl.Tasks()
	collapsed, selected := tasks[0].ID, tasks[2].ID

	m, _ = press(t, m, "c", "j", "j")
	if task, _ := m.selectedTask(); task.ID != selected {
		t.Fatalf("expected %s selected before collapse, got %s", selected, task.ID)
	}

	updated, _ := m.Update(CollapseDueMsg{TaskID: collapsed})
	next := updated.(Model)
	if len(ctrl.Tasks()) != 2 {
		t.Fatalf("expected 2 tasks after collapse, got %d", len(ctrl.Tasks()))
	}
	task, ok := next.selectedTask()
	if !ok || task.ID != selected {
		t.Fatalf("selection moved off %s to %s", selected, task.ID)
	}
	if next.Cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", next.Cursor)
	}
}

func TestCollapseOfSelectedRowKeepsCursorInRange(t *testing.T) {
	m, ctrl := newLoadedModel(t, Options{}, "a", "b")
	m, _ = press(t, m, "j")
	last := ctrl.Tasks()[1].ID

	m, _ = press(t, m, "c")
	updated, _ := m.Update(CollapseDueMsg{TaskID: last})
	next := updated.(Model)
	if next.Cursor != 0 {
		t.Fatalf("expected cursor clamped to 0, got %d", next.Cursor)
	}
}

func TestCollapsingRowLocksSlider(t *testing.T) {
	m, ctrl := newLoadedModel(t, Options{}, "locked")
	id := ctrl.Tasks()[0].ID
	m, _ = press(t, m, "c", "l")
	if got, _ := ctrl.Task(id); got.Probability != 0.5 {
		t.Fatalf("slider should be locked, got %v", got.Probability)
	}
	if m.Status.Text != "state is collapsing" {
		t.Fatalf("unexpected status %+v", m.Status)
	}
}

func TestCollapseThroughScheduler(t *testing.T) {
	engine := scheduler.NewEngine(4)
	engine.Start()
	defer engine.Stop()

	m, ctrl := newLoadedModel(t, Options{Scheduler: engine, CollapseDelay: 10 * time.Millisecond}, "scheduled")
	id := ctrl.Tasks()[0].ID
	m, _ = press(t, m, "c")

	var ev scheduler.Event
	select {
	case ev = <-engine.C():
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for collapse event")
	}
	if ev.TaskID != id {
		t.Fatalf("unexpected event %+v", ev)
	}

	updated, cmd := m.Update(CollapseDueMsg{TaskID: ev.TaskID, fromScheduler: true})
	_ = updated.(Model)
	if cmd == nil {
		t.Fatal("expected listener to be re-armed")
	}
	if len(ctrl.Tasks()) != 0 || ctrl.CollapseCount() != 1 {
		t.Fatal("expected task to be removed")
	}
}

func TestQuitCancelsPendingCollapse(t *testing.T) {
	engine := scheduler.NewEngine(4)
	engine.Start()
	defer engine.Stop()

	m, ctrl := newLoadedModel(t, Options{Scheduler: engine, CollapseDelay: time.Hour}, "survivor")
	m, _ = press(t, m, "c")
	if engine.Pending() != 1 {
		t.Fatalf("expected one pending collapse, got %d", engine.Pending())
	}

	m, cmd := press(t, m, "q")
	if !m.Quitting || cmd == nil {
		t.Fatal("expected quit")
	}
	if engine.Pending() != 0 {
		t.Fatalf("expected pending collapse to be cancelled, got %d", engine.Pending())
	}
	if len(ctrl.Tasks()) != 1 {
		t.Fatal("task should survive an interrupted collapse")
	}
}

func TestResetKeyClearsCounter(t *testing.T) {
	m, ctrl := newLoadedModel(t, Options{}, "x")
	id := ctrl.Tasks()[0].ID
	m, _ = press(t, m, "c")
	updated, _ := m.Update(CollapseDueMsg{TaskID: id})
	m = updated.(Model)
	if ctrl.CollapseCount() != 1 {
		t.Fatalf("expected count 1")
	}

	m, _ = press(t, m, "r")
	if ctrl.CollapseCount() != 0 {
		t.Fatalf("expected reset to zero, got %d", ctrl.CollapseCount())
	}
	if !strings.Contains(m.View(), "Ψ 0") {
		t.Fatalf("expected reset counter in view")
	}
}

func TestPaletteAddAndProbability(t *testing.T) {
	m, ctrl := newLoadedModel(t, Options{})
	m, _ = press(t, m, "/", "add walk cat", "enter")
	if m.Palette.Active {
		t.Fatal("palette should close after executing")
	}
	tasks := ctrl.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "walk cat" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}

	m, _ = press(t, m, "/", "prob 73%", "enter")
	got, _ := ctrl.Task(tasks[0].ID)
	if got.Probability != 0.73 {
		t.Fatalf("expected 0.73, got %v", got.Probability)
	}
	if h := ctrl.Histogram(); h.Buckets[7] != 1 {
		t.Fatalf("expected task in bucket 7, got %+v", h.Buckets)
	}
	if m.Status.Text != "probability 0.73" {
		t.Fatalf("unexpected status %+v", m.Status)
	}

	m, _ = press(t, m, "/", "prob 4", "enter")
	if got, _ := ctrl.Task(tasks[0].ID); got.Probability != 1 {
		t.Fatalf("palette value should be clamped, got %v", got.Probability)
	}
}

func TestPaletteCollapseArmsTimer(t *testing.T) {
	m, ctrl := newLoadedModel(t, Options{}, "palette")
	m, cmd := press(t, m, "/", "collapse", "enter")
	if cmd == nil {
		t.Fatal("expected timer cmd from palette collapse")
	}
	if !m.Rows[ctrl.Tasks()[0].ID].Collapsing() {
		t.Fatal("expected collapsing row")
	}
}

func TestPaletteUnknownCommandShowsError(t *testing.T) {
	m, _ := newLoadedModel(t, Options{})
	m, _ = press(t, m, "/", "observe all", "enter")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "unknown_command") {
		t.Fatalf("expected unknown command error, got %+v", m.Status)
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := newLoadedModel(t, Options{})
	m, _ = press(t, m, "?")
	if !m.HelpVisible {
		t.Fatal("expected manual visible")
	}
	if !strings.Contains(m.View(), "QUANTUM MANUAL") {
		t.Fatalf("expected manual in view")
	}
	m, _ = press(t, m, "?")
	if m.HelpVisible {
		t.Fatal("expected manual hidden")
	}
}

func TestAnimationTickAdvancesPhases(t *testing.T) {
	m, _ := newLoadedModel(t, Options{Animations: true, AnimationInterval: time.Second / 60})
	updated, cmd := m.Update(AnimationTickMsg{gen: m.Anim.gen})
	next := updated.(Model)
	if cmd == nil {
		t.Fatal("expected next tick")
	}
	if math.Abs(next.Anim.WaveT-0.01) > 1e-9 || math.Abs(next.Anim.SphereTheta-0.002) > 1e-9 {
		t.Fatalf("unexpected phases: %+v", next.Anim)
	}
}

func TestAnimationToggleDropsStaleTicks(t *testing.T) {
	m, _ := newLoadedModel(t, Options{Animations: true})
	stale := m.Anim.gen

	m, cmd := press(t, m, "v")
	if m.Animations || cmd != nil {
		t.Fatal("expected animations paused without a tick")
	}
	if !strings.Contains(m.View(), "animations paused") {
		t.Fatalf("expected paused marker in view")
	}
	m, cmd = press(t, m, "v")
	if !m.Animations || cmd == nil {
		t.Fatal("expected animations resumed with a tick")
	}

	updated, cmd := m.Update(AnimationTickMsg{gen: stale})
	next := updated.(Model)
	if cmd != nil || next.Anim.WaveT != 0 {
		t.Fatal("stale tick should be ignored")
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m, _ := newLoadedModel(t, Options{})
	updated, _ := m.Update(SetStatusMsg{Text: "ready", IsError: false})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	updated, _ = next.Update(AppErrorMsg{Err: errors.New("boom")})
	next = updated.(Model)
	if next.LastError == nil || next.LastError.Error() != "boom" {
		t.Fatalf("expected last error boom, got: %v", next.LastError)
	}
	if !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}
	if !strings.Contains(next.View(), "status: error: boom") {
		t.Fatalf("expected error status in view")
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestStateLoadedReportsMalformedStorage(t *testing.T) {
	m := NewModel(nil, Options{})
	updated, _ := m.Update(StateLoadedMsg{Result: storage.LoadResult{TasksErr: storage.ErrMalformedTasks}})
	next := updated.(Model)
	if !next.Loaded || !next.Status.IsError {
		t.Fatalf("expected loaded with error status, got %+v", next.Status)
	}
}

func TestWriteFailureSurfacesInStatus(t *testing.T) {
	ctrl := controller.New(controller.Options{Persister: storage.NewBridge(failingKV{storage.NewMemoryStore()})})
	ctrl.Load(t.Context())
	m := NewModel(ctrl, Options{Random: fixedRandom(0.5)})
	updated, _ := m.Update(StateLoadedMsg{})
	m = updated.(Model)

	m, _ = press(t, m, "i", "doomed", "enter")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "disk full") {
		t.Fatalf("expected write error in status, got %+v", m.Status)
	}
	if len(ctrl.Tasks()) != 1 {
		t.Fatal("in-memory add should survive a failed write")
	}
}

func TestQuitKey(t *testing.T) {
	m, _ := newLoadedModel(t, Options{})
	next, cmd := press(t, m, "q")
	if !next.Quitting {
		t.Fatal("expected quitting flag true")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}
