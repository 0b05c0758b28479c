package update

import (
	"math"

	"github.com/sandeepkv93/schrosk/internal/log"
)

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func (m Model) reportError(err error) Model {
	log.Errorf("%v", err)
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.notify("Error", err.Error(), "error")
	return m
}

func percent(p float64) int {
	return int(math.Round(p * 100))
}
