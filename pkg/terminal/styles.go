package terminal

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-signup/pkg/feedback"
)

// Styles colours the messages printed after each submission.
type Styles struct {
	Error   lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style
}

// StylesFromRenderer derives terminal styles from the renderer's theme tokens
// so the terminal matches the page palette.
func StylesFromRenderer(r *feedback.Renderer) Styles {
	block := func(fg, bg string) lipgloss.Style {
		style := lipgloss.NewStyle().Bold(true).Padding(0, 1)
		if fg != "" {
			style = style.Foreground(lipgloss.Color(fg))
		}
		if bg != "" {
			style = style.Background(lipgloss.Color(bg))
		}
		return style
	}
	return Styles{
		Error:   block(r.Token(feedback.TokenErrorFG), r.Token(feedback.TokenErrorBG)),
		Success: block(r.Token(feedback.TokenSuccessFG), r.Token(feedback.TokenSuccessBG)),
		Muted:   lipgloss.NewStyle().Faint(true),
	}
}
