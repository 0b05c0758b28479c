package views

import (
	"fmt"
	"strings"
)

const EmptyListText = "[System: No quantum states detected]"

type TaskRowData struct {
	ID          string
	Text        string
	Selected    bool
	Collapsing  bool
	Label       string
	SpinnerView string
	SliderView  string
	Percent     int
}

type TaskListData struct {
	InputView string
	Capturing bool
	Rows      []TaskRowData
}

type HelpPanelData struct {
	ManualView string
	Bindings   []string
	HelpView   string
}

func RenderTaskList(data TaskListData) string {
	var b strings.Builder
	mode := "[i] add"
	if data.Capturing {
		mode = "[enter] submit [esc] leave"
	}
	b.WriteString(labelStyle.Render("QUANTUM STATES") + "  " + dimStyle.Render(mode) + "\n")
	b.WriteString(data.InputView + "\n\n")
	if len(data.Rows) == 0 {
		b.WriteString(dimStyle.Render(EmptyListText))
		return b.String()
	}
	for _, row := range data.Rows {
		b.WriteString(renderTaskRow(row))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderTaskRow(row TaskRowData) string {
	cursor := " "
	if row.Selected {
		cursor = ">"
	}
	control := "Φ"
	if row.Collapsing && row.SpinnerView != "" {
		control = row.SpinnerView
	}
	line := fmt.Sprintf("%s %s %s", cursor, control, row.Text)
	if row.Collapsing && row.Label != "" {
		line += "  " + labelStyle.Render(row.Label)
	}
	slider := fmt.Sprintf("    0 %s 1 %3d%%", row.SliderView, row.Percent)
	if row.Collapsing {
		slider = dimStyle.Render(slider + " locked")
	}
	return line + "\n" + slider + "\n"
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("QUANTUM MANUAL") + "\n")
	b.WriteString(data.ManualView + "\n\n")
	b.WriteString("keys:\n")
	b.WriteString(strings.Join(data.Bindings, "\n"))
	if data.HelpView != "" {
		b.WriteString("\n" + data.HelpView)
	}
	return b.String()
}
