// Package form implements the interactive patient registration form as a
// Bubble Tea program.
package form

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/patientreg/patientreg/pkg/client"
)

// State is the submission lifecycle of the form.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Focus positions, in traversal order. The submit button is the last stop.
const (
	focusName = iota
	focusAge
	focusGender
	focusContact
	focusSubmit
	focusCount
)

// genderOptions are the selectable gender values, in display order. The first
// entry is the default.
var genderOptions = []string{"male", "female", "other"}

// RegisterFunc submits a registration to the API. It is injected so the form
// can be driven in tests without a live server.
type RegisterFunc func(ctx context.Context, sub client.Submission) (*client.Patient, error)

// resultMsg carries the outcome of an in-flight submission.
type resultMsg struct {
	patient *client.Patient
	err     error
}

// Model is the registration form state.
//
// Model is immutable - Update returns a new Model rather than modifying the
// receiver.
type Model struct {
	register RegisterFunc

	name    textinput.Model
	age     textinput.Model
	contact textinput.Model
	gender  int // index into genderOptions

	focus int

	state      State
	message    string
	registered *client.Patient // last successful registration

	spinner       spinner.Model
	submitTimeout time.Duration

	width, height int
}

// New creates a form that submits registrations through register.
func New(register RegisterFunc) Model {
	name := textinput.New()
	name.Placeholder = "Full name"
	name.CharLimit = 255
	name.Focus()

	age := textinput.New()
	age.Placeholder = "Age"
	age.CharLimit = 3

	contact := textinput.New()
	contact.Placeholder = "Phone or email"
	contact.CharLimit = 255

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = focusedStyle

	return Model{
		register:      register,
		name:          name,
		age:           age,
		contact:       contact,
		spinner:       sp,
		submitTimeout: client.DefaultTimeout,
	}
}

// State returns the current lifecycle state.
func (m Model) State() State {
	return m.state
}

// Message returns the status line shown under the form, if any.
func (m Model) Message() string {
	return m.message
}

// Registered returns the record created by the most recent successful
// submission, or nil.
func (m Model) Registered() *client.Patient {
	return m.registered
}

// Init returns the initial command for the Bubble Tea model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the form.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.state != StateSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case resultMsg:
		if msg.err != nil {
			// Entered values are retained for correction.
			m.state = StateError
			m.message = msg.err.Error()
			return m, nil
		}
		m.state = StateSuccess
		m.registered = msg.patient
		m.message = fmt.Sprintf("Registered %s (id %d)", msg.patient.Name, msg.patient.ID)
		m = m.resetFields()
		return m, textinput.Blink

	case tea.KeyMsg:
		// One submission at a time: the form is inert while submitting.
		if m.state == StateSubmitting {
			if msg.Type == tea.KeyCtrlC {
				return m, tea.Quit
			}
			return m, nil
		}
		return m.handleKey(msg)
	}

	return m.updateFocusedInput(msg)
}

// handleKey processes keyboard input outside the Submitting state.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyTab, tea.KeyDown:
		m = m.moveFocus(1)
		return m, textinput.Blink

	case tea.KeyShiftTab, tea.KeyUp:
		m = m.moveFocus(-1)
		return m, textinput.Blink

	case tea.KeyLeft:
		if m.focus == focusGender {
			m = m.touch()
			m.gender = (m.gender + len(genderOptions) - 1) % len(genderOptions)
			return m, nil
		}

	case tea.KeyRight:
		if m.focus == focusGender {
			m = m.touch()
			m.gender = (m.gender + 1) % len(genderOptions)
			return m, nil
		}

	case tea.KeyEnter:
		if m.focus == focusSubmit {
			return m.submit()
		}
		m = m.moveFocus(1)
		return m, textinput.Blink
	}

	// Everything else is field input.
	m = m.touch()
	return m.updateFocusedInput(msg)
}

// updateFocusedInput forwards a message to whichever text input has focus.
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusName:
		m.name, cmd = m.name.Update(msg)
	case focusAge:
		m.age, cmd = m.age.Update(msg)
	case focusContact:
		m.contact, cmd = m.contact.Update(msg)
	}
	return m, cmd
}

// touch applies the implicit Success/Error -> Idle transition that happens
// when the user resumes editing, and clears any stale status line.
func (m Model) touch() Model {
	if m.state == StateSuccess || m.state == StateError {
		m.state = StateIdle
	}
	m.message = ""
	return m
}

// submit validates locally and, when clean, fires the registration call.
func (m Model) submit() (tea.Model, tea.Cmd) {
	sub := m.submission()

	if msg := validate(sub); msg != "" {
		// Invalid input never leaves Idle and never clears entered data.
		m.state = StateIdle
		m.message = msg
		return m, nil
	}

	m.state = StateSubmitting
	m.message = ""

	register := m.register
	timeout := m.submitTimeout
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		p, err := register(ctx, sub)
		return resultMsg{patient: p, err: err}
	})
}

// submission assembles the current field values into a Submission.
func (m Model) submission() client.Submission {
	age, _ := strconv.Atoi(strings.TrimSpace(m.age.Value()))
	return client.Submission{
		Name:    strings.TrimSpace(m.name.Value()),
		Age:     age,
		Gender:  genderOptions[m.gender],
		Contact: strings.TrimSpace(m.contact.Value()),
	}
}

// validate mirrors the server-side rules so obviously bad submissions never
// cost a round trip. The server remains the authoritative gate.
func validate(sub client.Submission) string {
	if sub.Name == "" {
		return "name must not be empty"
	}
	if sub.Age < 1 || sub.Age > 120 {
		return "age must be between 1 and 120"
	}
	if sub.Contact == "" {
		return "contact must not be empty"
	}
	return ""
}

// resetFields returns the form to its pristine values after a successful
// registration. Focus returns to the name field.
func (m Model) resetFields() Model {
	m.name.SetValue("")
	m.age.SetValue("")
	m.contact.SetValue("")
	m.gender = 0
	return m.setFocus(focusName)
}

// moveFocus advances focus by delta, wrapping through the submit button.
func (m Model) moveFocus(delta int) Model {
	next := (m.focus + delta + focusCount) % focusCount
	return m.setFocus(next)
}

// setFocus blurs every input and focuses the one at the given position.
func (m Model) setFocus(focus int) Model {
	m.focus = focus
	m.name.Blur()
	m.age.Blur()
	m.contact.Blur()

	switch focus {
	case focusName:
		m.name.Focus()
	case focusAge:
		m.age.Focus()
	case focusContact:
		m.contact.Focus()
	}
	return m
}
