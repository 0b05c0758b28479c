package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Phase increments per 60 Hz frame.
const (
	waveStepPerFrame   = 0.01
	sphereStepPerFrame = 0.002
)

func animationTickCmd(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return AnimationTickMsg{At: t, gen: gen} })
}

func (m Model) onAnimationTick(msg AnimationTickMsg) (tea.Model, tea.Cmd) {
	if !m.Animations || msg.gen != m.Anim.gen {
		return m, nil
	}
	m.Anim = m.Anim.advance(m.animInterval)
	return m, animationTickCmd(m.animInterval, m.Anim.gen)
}

func (m Model) toggleAnimations() (tea.Model, tea.Cmd) {
	m.Animations = !m.Animations
	if !m.Animations {
		m.Status = StatusBar{Text: "animations paused"}
		return m, nil
	}
	// A tick already in flight belongs to the previous generation.
	m.Anim.gen++
	m.Status = StatusBar{Text: "animations running"}
	return m, animationTickCmd(m.animInterval, m.Anim.gen)
}

func (a AnimationState) advance(d time.Duration) AnimationState {
	frames := d.Seconds() * 60
	a.WaveT += waveStepPerFrame * frames
	a.SphereTheta += sphereStepPerFrame * frames
	return a
}
