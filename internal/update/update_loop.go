package update

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/schrosk/internal/controller"
	"github.com/sandeepkv93/schrosk/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadStateCmd(m.ctrl)}
	if m.Scheduler != nil {
		cmds = append(cmds, waitForCollapseCmd(m.Scheduler.C()))
	}
	if m.Animations {
		cmds = append(cmds, animationTickCmd(m.animInterval, m.Anim.gen))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case StateLoadedMsg:
		m.Loaded = true
		m.clampCursor()
		switch {
		case typed.Result.TasksErr != nil:
			m.Status = StatusBar{Text: "stored tasks unreadable, starting empty", IsError: true}
		case typed.Result.CountErr != nil:
			m.Status = StatusBar{Text: "stored collapse count unreadable, reset to 0", IsError: true}
		default:
			m.Status = StatusBar{Text: fmt.Sprintf("%d quantum state(s) restored", len(m.ctrl.Tasks()))}
		}
		return m, nil
	case AddTaskMsg:
		next := m.addTask(typed.Text)
		return next, nil
	case CollapseDueMsg:
		next := m.completeCollapse(typed.TaskID)
		if typed.fromScheduler && m.Scheduler != nil {
			return next, waitForCollapseCmd(m.Scheduler.C())
		}
		return next, nil
	case AnimationTickMsg:
		return m.onAnimationTick(typed)
	case spinner.TickMsg:
		if !m.anyCollapsing() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(typed)
		return m, cmd
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		return m.quit()
	}
	if !m.Loaded {
		if keyStr == m.Keys.Quit {
			return m.quit()
		}
		return m, nil
	}

	if m.Palette.Active {
		if keyStr == m.Keys.Help {
			m.HelpVisible = !m.HelpVisible
			return m, nil
		}
		return m.handlePaletteKey(msg)
	}

	if m.Capturing {
		return m.handleInputKey(msg), nil
	}

	if m.HelpVisible {
		switch keyStr {
		case m.Keys.Help, "esc":
			m.HelpVisible = false
			m.Status = StatusBar{Text: "manual hidden"}
			return m, nil
		case m.Keys.Quit:
			return m.quit()
		}
		var cmd tea.Cmd
		m.manual, cmd = m.manual.Update(msg)
		return m, cmd
	}

	switch keyStr {
	case m.Keys.Palette:
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.Focus()
		m.commandInput.SetValue("")
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = true
		m.manual.GotoTop()
		m.Status = StatusBar{Text: "manual shown"}
		return m, nil
	case m.Keys.Add, "a":
		m.Capturing = true
		m.addInput.Focus()
		m.Status = StatusBar{Text: "capture mode"}
		return m, nil
	case m.Keys.Reset:
		return m.resetCollapseCount(), nil
	case m.Keys.Animation:
		return m.toggleAnimations()
	case m.Keys.Quit:
		return m.quit()
	}
	return m.handleListKey(msg)
}

func (m Model) View() string {
	if !m.Loaded {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	rightPane := m.renderDashboard()
	if palette := m.renderCommandPalette(); palette != "" {
		rightPane = palette + "\n\n" + rightPane
	}
	if m.HelpVisible {
		rightPane = m.renderHelpView()
	} else {
		rightPane += "\n\n" + m.renderAnimations()
	}

	return views.RenderApp(views.AppData{
		Header:       "SCHRÖSK",
		Tagline:      "Observation Creates Reality",
		LeftPane:     m.renderTaskList(),
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: strings.TrimSpace(m.renderNotificationsView()),
		Footer: fmt.Sprintf("keys: %s add | j/k move | h/l ±0.01 | H/L ±0.10 | %s collapse | %s reset | %s anim | %s cmd | %s help | %s quit",
			m.Keys.Add, m.Keys.Collapse, m.Keys.Reset, m.Keys.Animation, m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
	})
}

// quit drops pending collapses; a task whose delay has not elapsed stays.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.teardownRows()
	m.Quitting = true
	return m, tea.Quit
}

func loadStateCmd(ctrl *controller.Controller) tea.Cmd {
	return func() tea.Msg {
		return StateLoadedMsg{Result: ctrl.Load(context.Background())}
	}
}
