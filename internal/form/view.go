package form

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#3498DB"})

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"})

	focusedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#3498DB"})

	selectedOptionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#3498DB"})

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#696969"})

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"})

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"})

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}).
			Background(lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#2D3436"})

	buttonFocusStyle = lipgloss.NewStyle().
				Padding(0, 2).
				Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}).
				Background(lipgloss.AdaptiveColor{Light: "#3498DB", Dark: "#3498DB"})
)

// View renders the form.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Patient Registration"))
	b.WriteString("\n\n")

	b.WriteString(m.renderInput("Name", m.name.View(), focusName))
	b.WriteString(m.renderInput("Age", m.age.View(), focusAge))
	b.WriteString(m.renderGender())
	b.WriteString(m.renderInput("Contact", m.contact.View(), focusContact))

	b.WriteString("\n")
	b.WriteString(m.renderSubmit())
	b.WriteString("\n")

	if line := m.renderStatus(); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("tab/↓: next • shift+tab/↑: prev • enter: submit • esc: quit"))
	b.WriteString("\n")

	return b.String()
}

// renderInput renders one labelled text input row.
func (m Model) renderInput(label, input string, focus int) string {
	return m.focusMarker(focus) + labelStyle.Render(fmt.Sprintf("%-8s", label)) + input + "\n"
}

// renderGender renders the gender selector row with every option visible and
// the current one highlighted.
func (m Model) renderGender() string {
	opts := make([]string, len(genderOptions))
	for i, opt := range genderOptions {
		if i == m.gender {
			opts[i] = selectedOptionStyle.Render("[" + opt + "]")
		} else {
			opts[i] = mutedStyle.Render(" " + opt + " ")
		}
	}

	row := m.focusMarker(focusGender) + labelStyle.Render(fmt.Sprintf("%-8s", "Gender")) + strings.Join(opts, " ")
	if m.focus == focusGender {
		row += mutedStyle.Render("  ←/→")
	}
	return row + "\n"
}

// renderSubmit renders the submit button, or the in-flight indicator while a
// submission is running.
func (m Model) renderSubmit() string {
	if m.state == StateSubmitting {
		return "  " + m.spinner.View() + " Registering..."
	}
	if m.focus == focusSubmit {
		return m.focusMarker(focusSubmit) + buttonFocusStyle.Render("Register")
	}
	return m.focusMarker(focusSubmit) + buttonStyle.Render("Register")
}

// renderStatus renders the success or error line under the button.
func (m Model) renderStatus() string {
	if m.message == "" {
		return ""
	}
	switch m.state {
	case StateSuccess:
		return "  " + successStyle.Render("✓ "+m.message)
	case StateError:
		return "  " + errorStyle.Render("✗ "+m.message)
	default:
		// Local validation feedback while still Idle.
		return "  " + errorStyle.Render(m.message)
	}
}

// focusMarker renders the leading cursor for the row at the given position.
func (m Model) focusMarker(focus int) string {
	if m.focus == focus {
		return focusedStyle.Render("> ")
	}
	return "  "
}
