package views

import "fmt"

type AnimationData struct {
	Enabled bool
	Wave    WaveData
	Sphere  SphereData
}

func RenderAnimations(data AnimationData) string {
	if !data.Enabled {
		return dimStyle.Render("animations paused [v]")
	}
	return fmt.Sprintf("%s\n%s\n%s\n%s",
		dimStyle.Render("Ψ(x,t)"),
		RenderWave(data.Wave),
		dimStyle.Render("|ψ⟩"),
		RenderSphere(data.Sphere),
	)
}
