package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var ErrDialogOpen = errors.New("dialog already open")

// OutcomeKind is how a dialog session ended.
type OutcomeKind int

const (
	Submitted OutcomeKind = iota + 1
	Cancelled
)

func (k OutcomeKind) String() string {
	switch k {
	case Submitted:
		return "submitted"
	case Cancelled:
		return "cancelled"
	default:
		return "none"
	}
}

// Outcome is the single result of an open/close cycle. Text is only set
// for Submitted and may be empty.
type Outcome struct {
	Kind OutcomeKind
	Text string
}

type dialogFocus int

const (
	focusInput dialogFocus = iota
	focusOK
	focusCancel
	focusCount
)

// Dialog is a modal text-entry overlay with OK and Cancel controls.
type Dialog struct {
	title string
	input textinput.Model
	open  bool
	focus dialogFocus
}

// NewDialog returns a closed dialog.
func NewDialog(title, placeholder string) Dialog {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 0
	ti.Width = 30
	return Dialog{title: title, input: ti}
}

// Open starts a session with an empty buffer and the input focused.
func (d *Dialog) Open() (tea.Cmd, error) {
	if d.open {
		return nil, ErrDialogOpen
	}
	d.open = true
	d.focus = focusInput
	d.input.Reset()
	return d.input.Focus(), nil
}

// IsOpen reports whether the overlay is shown.
func (d Dialog) IsOpen() bool { return d.open }

// Update consumes msg while the dialog is open. A non-nil Outcome means the
// session ended and the dialog is closed again. Every message is swallowed.
func (d *Dialog) Update(msg tea.Msg) (*Outcome, tea.Cmd) {
	if !d.open {
		return nil, nil
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		if _, mouse := msg.(tea.MouseMsg); mouse {
			return nil, nil
		}
		if d.focus != focusInput {
			return nil, nil
		}
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return nil, cmd
	}

	switch km.String() {
	case "esc":
		return d.close(Outcome{Kind: Cancelled}), nil
	case "tab":
		d.setFocus((d.focus + 1) % focusCount)
		return nil, nil
	case "shift+tab":
		d.setFocus((d.focus + focusCount - 1) % focusCount)
		return nil, nil
	case "enter":
		if d.focus == focusCancel {
			return d.close(Outcome{Kind: Cancelled}), nil
		}
		return d.close(Outcome{Kind: Submitted, Text: d.input.Value()}), nil
	}

	if d.focus != focusInput {
		return nil, nil
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(km)
	return nil, cmd
}

func (d *Dialog) setFocus(f dialogFocus) {
	d.focus = f
	if f == focusInput {
		d.input.Focus()
		return
	}
	d.input.Blur()
}

func (d *Dialog) close(o Outcome) *Outcome {
	d.open = false
	d.focus = focusInput
	d.input.Blur()
	d.input.Reset()
	return &o
}

// View renders the overlay centered in width x height, or "" when closed.
func (d Dialog) View(width, height int) string {
	if !d.open {
		return ""
	}
	ok, cancel := buttonStyle, buttonStyle
	switch d.focus {
	case focusOK:
		ok = activeButtonStyle
	case focusCancel:
		cancel = activeButtonStyle
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, ok.Render("OK"), " ", cancel.Render("Cancel"))
	body := strings.Join([]string{
		titleStyle.Render(d.title),
		"",
		d.input.View(),
		"",
		buttons,
		infoStyle.Render("tab focus • enter confirm • esc cancel"),
	}, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, dialogStyle.Render(body))
}
