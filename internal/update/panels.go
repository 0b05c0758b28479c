package update

import (
	"strings"

	"github.com/sandeepkv93/schrosk/internal/model"
	"github.com/sandeepkv93/schrosk/internal/views"
)

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m Model) renderTaskList() string {
	tasks := m.ctrl.Tasks()
	rows := make([]views.TaskRowData, 0, len(tasks))
	for i, t := range tasks {
		row := m.Rows[t.ID]
		data := views.TaskRowData{
			ID:         t.ID,
			Text:       t.Text,
			Selected:   i == m.Cursor && !m.Capturing,
			Collapsing: row.Collapsing(),
			SliderView: m.slider.ViewAs(t.Probability),
			Percent:    percent(t.Probability),
		}
		if data.Collapsing {
			data.Label = string(row.Label)
			data.SpinnerView = m.spinner.View()
		}
		rows = append(rows, data)
	}
	return views.RenderTaskList(views.TaskListData{
		InputView: m.addInput.View(),
		Capturing: m.Capturing,
		Rows:      rows,
	})
}

func (m Model) renderDashboard() string {
	h := m.ctrl.Histogram()
	ratios := make([]float64, model.BucketCount)
	labels := make([]string, model.BucketCount)
	for i := range model.BucketCount {
		ratios[i] = h.Ratio(i)
		labels[i] = model.BucketLabel(i)
	}
	return views.RenderDashboard(views.DashboardData{
		Buckets:   h.Buckets[:],
		Ratios:    ratios,
		Labels:    labels,
		Observed:  h.Total,
		Collapsed: m.ctrl.CollapseCount(),
	})
}

func (m Model) renderAnimations() string {
	return views.RenderAnimations(views.AnimationData{
		Enabled: m.Animations,
		Wave:    views.WaveData{Width: waveWidth, Height: waveHeight, T: m.Anim.WaveT},
		Sphere:  views.SphereData{Width: sphereWidth, Height: sphereHeight, Theta: m.Anim.SphereTheta},
	})
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	m.Notifications = append(m.Notifications, Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.now().UTC(),
	})
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
}
