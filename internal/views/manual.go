package views

const Version = "v1.0.0"

// ManualMarkdown is the body of the in-app manual.
const ManualMarkdown = `## 01. SUPERPOSITION

Tasks exist in a state of flux. Enter a task to create a new quantum state.
It is not fully real until observed.

## 02. PROBABILITY

Adjust the slider ` + "`[0-1]`" + ` to set the likelihood of task completion.
Higher probability increases the wave function density.

## 03. COLLAPSE

Press ` + "`Φ`" + ` (space, enter or c) to collapse the wave function. The task
will be observed and removed from your reality.

---

_Schrösk ` + Version + `_
`
