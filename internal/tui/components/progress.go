package components

import (
	"fmt"
	"strings"

	"github.com/caixinha/caixinha/internal/tui/tuistyles"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar shows how many steps of a run have finished
type ProgressBar struct {
	Current int
	Total   int
	Width   int
	Label   string
}

// NewProgressBar creates a new progress bar
func NewProgressBar(current, total int) *ProgressBar {
	return &ProgressBar{
		Current: current,
		Total:   total,
		Width:   30,
	}
}

// WithLabel sets the progress label
func (p *ProgressBar) WithLabel(label string) *ProgressBar {
	p.Label = label
	return p
}

// Percentage returns the completion percentage
func (p *ProgressBar) Percentage() float64 {
	if p.Total <= 0 {
		return 0
	}
	pct := float64(p.Current) / float64(p.Total) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// IsComplete reports whether every step has finished
func (p *ProgressBar) IsComplete() bool {
	return p.Total > 0 && p.Current >= p.Total
}

// Render returns the styled progress bar
func (p *ProgressBar) Render() string {
	var content strings.Builder

	if p.Label != "" {
		content.WriteString(tuistyles.ParameterLabelStyle.Bold(true).Render(p.Label))
		content.WriteString("\n")
	}

	filled := int(float64(p.Width) * p.Percentage() / 100)
	barStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess)
	emptyStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorBorder)

	content.WriteString("[")
	content.WriteString(barStyle.Render(strings.Repeat("█", filled)))
	content.WriteString(emptyStyle.Render(strings.Repeat("░", p.Width-filled)))
	content.WriteString("] ")
	content.WriteString(tuistyles.SubtitleStyle.Render(fmt.Sprintf("%d/%d", p.Current, p.Total)))

	return content.String()
}

// StepStatus is the state of one step in a StepList
type StepStatus int

const (
	StepPending StepStatus = iota
	StepRunning
	StepDone
	StepFailed
)

// Step is one line of a StepList
type Step struct {
	Label   string
	Status  StepStatus
	Message string
}

// StepList renders a run as a list of steps with status icons
type StepList struct {
	Steps []Step
}

// Render returns one line per step, with its message underneath
func (s *StepList) Render() string {
	var lines []string
	for _, step := range s.Steps {
		icon, style := statusIcon(step.Status)
		line := style.Render(icon) + " " + tuistyles.ParameterLabelStyle.Render(step.Label)
		if step.Message != "" {
			line += "\n  " + tuistyles.InfoStyle.Render(step.Message)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func statusIcon(status StepStatus) (string, lipgloss.Style) {
	switch status {
	case StepRunning:
		return "◐", lipgloss.NewStyle().Foreground(tuistyles.ColorInfo)
	case StepDone:
		return "●", lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess)
	case StepFailed:
		return "✗", lipgloss.NewStyle().Foreground(tuistyles.ColorDanger)
	default:
		return "○", lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	}
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner is a frame counter for busy states
type Spinner struct {
	Frame   int
	Message string
}

// Next advances the spinner to the next frame
func (s *Spinner) Next() {
	s.Frame++
}

// Render returns the current spinner frame and message
func (s *Spinner) Render() string {
	frame := spinnerFrames[s.Frame%len(spinnerFrames)]
	rendered := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary).Bold(true).Render(frame)
	if s.Message != "" {
		rendered += " " + s.Message
	}
	return rendered
}
