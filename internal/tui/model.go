package tui

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/projecteru2/core/log"
	"golang.org/x/term"

	"github.com/adrianmross/mpctl/pkg/config"
	"github.com/adrianmross/mpctl/pkg/multipass"
	"github.com/adrianmross/mpctl/pkg/runner"
)

// chrome is the number of lines drawn around the list: header, help, status.
const chrome = 4

var (
	writeClipboard = clipboard.WriteAll
	shellCommand   = func(tool, name string) *exec.Cmd {
		if tool == "" {
			tool = runner.DefaultBinary
		}
		return exec.Command(tool, "shell", name)
	}
)

type instancesLoadedMsg struct {
	instances []multipass.Instance
	err       error
}

type opResultMsg struct {
	label    string
	launched *string // dialog text of a pending row, set for launches from the dialog
	err      error
}

type tableLoadedMsg struct {
	table multipass.Table
	err   error
}

type versionMsg struct {
	version string
	err     error
}

type shellExitedMsg struct {
	name string
	err  error
}

// Model is the Bubble Tea model of the instance manager.
type Model struct {
	client *multipass.Client
	cfg    config.Config
	keys   keyMap

	items     ItemList
	dialog    Dialog
	spinner   spinner.Model
	table     table.Model
	showTable bool

	pending   int // in-flight multipass commands
	status    string
	statusErr bool
	version   string
	width     int
	height    int
	quitting  bool
}

// New returns a Model that drives client. The first refresh is issued by Init.
func New(client *multipass.Client, cfg config.Config) Model {
	// Set a reasonable default size to avoid zero-height rendering when no resize event arrives.
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		if w > 0 {
			width = w
		}
		if h > 0 {
			height = h
		}
	}
	if width < 40 {
		width = 40
	}
	if height < 12 {
		height = 12
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return Model{
		client:  client,
		cfg:     cfg,
		keys:    defaultKeyMap(),
		items:   NewItemList(width, height-chrome, cfg.UI.Compact),
		dialog:  NewDialog("Launch instance", "instance name (blank for a generated one)"),
		spinner: s,
		pending: 1,
		status:  "loading instances…",
		width:   width,
		height:  height,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadInstances(), m.loadVersion())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.dialog.IsOpen() {
		switch msg.(type) {
		case tea.KeyMsg, tea.MouseMsg:
			return m.updateDialog(msg)
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.items.SetSize(msg.Width, max(msg.Height-chrome, 1))
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(max(msg.Height-chrome, 3))
		return m, nil
	case spinner.TickMsg:
		if m.pending == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case instancesLoadedMsg:
		m.done()
		if msg.err != nil {
			m.fail("refresh", msg.err)
			return m, nil
		}
		m.items.Replace(msg.instances)
		m.setStatus(fmt.Sprintf("%d instances", len(msg.instances)))
		return m, nil
	case opResultMsg:
		m.done()
		if msg.err != nil {
			m.fail(msg.label, msg.err)
		} else {
			if msg.launched != nil {
				m.items.Resolve(*msg.launched)
			}
			m.setStatus(msg.label + ": done")
		}
		// resync with multipass either way, a failed delete must bring the row back
		return m, m.refresh()
	case tableLoadedMsg:
		m.done()
		if msg.err != nil {
			m.showTable = false
			m.fail("table", msg.err)
			return m, nil
		}
		m.table = newTableView(msg.table, m.width, m.height-chrome)
		if n := len(msg.table.Ragged); n > 0 {
			m.setStatus(fmt.Sprintf("%d malformed csv rows normalised", n))
		}
		return m, nil
	case versionMsg:
		if msg.err != nil {
			log.WithFunc("tui.Update").Warnf(context.Background(), "multipass version: %v", msg.err)
			return m, nil
		}
		m.version = msg.version
		return m, nil
	case shellExitedMsg:
		if msg.err != nil {
			m.fail("shell "+msg.name, msg.err)
		} else {
			m.setStatus("left shell " + msg.name)
		}
		return m, m.refresh()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.dialog.IsOpen() {
		_, cmd := m.dialog.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateDialog(msg tea.Msg) (tea.Model, tea.Cmd) {
	out, cmd := m.dialog.Update(msg)
	if out == nil {
		return m, cmd
	}
	switch out.Kind {
	case Submitted:
		text := out.Text
		m.items.Append(text)
		opts := m.cfg.LaunchOptions(multipass.LaunchOptions{Name: strings.TrimSpace(text)})
		label := "launch"
		if opts.Name != "" {
			label += " " + opts.Name
		}
		return m, m.dispatch(func() tea.Msg {
			err := m.client.Launch(context.Background(), opts)
			return opResultMsg{label: label, launched: &text, err: err}
		})
	case Cancelled:
		m.setStatus("add cancelled")
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.showTable {
		if key.Matches(msg, m.keys.Table) || msg.String() == "esc" {
			m.showTable = false
			return m, nil
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Add):
		cmd, err := m.dialog.Open()
		if err != nil {
			m.fail("add", err)
		}
		return m, cmd
	case key.Matches(msg, m.keys.Delete):
		removed, ok := m.items.DeleteSelected()
		if !ok {
			return m, nil
		}
		if removed.pending() {
			m.setStatus("removed " + removed.Title())
			return m, nil
		}
		return m, m.runOp("delete "+removed.text, func(ctx context.Context) error {
			return m.client.Delete(ctx, removed.text)
		})
	case key.Matches(msg, m.keys.Refresh):
		m.setStatus("refreshing…")
		return m, m.refresh()
	case key.Matches(msg, m.keys.Start):
		return m.onSelected("start", m.client.Start)
	case key.Matches(msg, m.keys.Stop):
		return m.onSelected("stop", m.client.Stop)
	case key.Matches(msg, m.keys.Suspend):
		return m.onSelected("suspend", m.client.Suspend)
	case key.Matches(msg, m.keys.Recover):
		return m.onSelected("recover", m.client.Recover)
	case key.Matches(msg, m.keys.Purge):
		return m, m.runOp("purge", m.client.Purge)
	case key.Matches(msg, m.keys.StartAll):
		return m, m.runOp("start all", m.client.StartAll)
	case key.Matches(msg, m.keys.StopAll):
		return m, m.runOp("stop all", m.client.StopAll)
	case key.Matches(msg, m.keys.Launch):
		opts := m.cfg.LaunchOptions(multipass.LaunchOptions{})
		return m, m.runOp("launch", func(ctx context.Context) error {
			return m.client.Launch(ctx, opts)
		})
	case key.Matches(msg, m.keys.Table):
		m.showTable = true
		return m, m.loadTable()
	case key.Matches(msg, m.keys.CopyIP):
		m.copySelectedIP()
		return m, nil
	case key.Matches(msg, m.keys.Shell):
		sel, ok := m.items.Selected()
		if !ok || sel.pending() {
			m.setStatus("no instance selected")
			return m, nil
		}
		name := sel.text
		return m, tea.ExecProcess(shellCommand(m.cfg.Options.Tool, name), func(err error) tea.Msg {
			return shellExitedMsg{name: name, err: err}
		})
	}

	var cmd tea.Cmd
	m.items, cmd = m.items.Update(msg)
	return m, cmd
}

// onSelected runs a per-instance lifecycle verb on the selected row.
func (m Model) onSelected(verb string, fn func(context.Context, ...string) error) (tea.Model, tea.Cmd) {
	sel, ok := m.items.Selected()
	if !ok || sel.pending() {
		m.setStatus("no instance selected")
		return m, nil
	}
	name := sel.text
	return m, m.runOp(verb+" "+name, func(ctx context.Context) error {
		return fn(ctx, name)
	})
}

func (m *Model) copySelectedIP() {
	sel, ok := m.items.Selected()
	if !ok || sel.pending() {
		m.setStatus("no instance selected")
		return
	}
	ip := sel.instance.PrimaryIPv4()
	if ip == "" {
		m.setStatus(sel.text + " has no IPv4 address")
		return
	}
	if err := writeClipboard(ip); err != nil {
		m.fail("copy", fmt.Errorf("clipboard unavailable: %w", err))
		return
	}
	m.setStatus("copied " + ip)
}

func (m *Model) runOp(label string, fn func(context.Context) error) tea.Cmd {
	m.setStatus(label + "…")
	return m.dispatch(func() tea.Msg {
		return opResultMsg{label: label, err: fn(context.Background())}
	})
}

func (m *Model) refresh() tea.Cmd {
	return m.dispatch(m.loadInstances())
}

func (m *Model) loadTable() tea.Cmd {
	client := m.client
	return m.dispatch(func() tea.Msg {
		t, err := client.ListTable(context.Background())
		return tableLoadedMsg{table: t, err: err}
	})
}

func (m Model) loadInstances() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		instances, err := client.ListInstances(context.Background())
		return instancesLoadedMsg{instances: instances, err: err}
	}
}

func (m Model) loadVersion() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		v, err := client.Version(context.Background())
		return versionMsg{version: v, err: err}
	}
}

// dispatch counts cmd as in flight and restarts the spinner when idle.
func (m *Model) dispatch(cmd tea.Cmd) tea.Cmd {
	m.pending++
	if m.pending == 1 {
		return tea.Batch(cmd, m.spinner.Tick)
	}
	return cmd
}

func (m *Model) done() {
	if m.pending > 0 {
		m.pending--
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) fail(label string, err error) {
	log.WithFunc("tui.Model").Errorf(context.Background(), err, "%s failed", label)
	m.status = fmt.Sprintf("%s: %v", label, err)
	m.statusErr = true
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	header := titleStyle.Render("mpctl")
	if m.version != "" {
		header += infoStyle.Render(" · multipass " + m.version)
	}
	if m.pending > 0 {
		header += " " + m.spinner.View()
	}

	var help []string
	for _, b := range m.keys.shortHelp() {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	hint := infoStyle.Render(strings.Join(help, " • "))

	body := m.items.View()
	switch {
	case m.dialog.IsOpen():
		body = m.dialog.View(m.width, max(m.height-chrome, 1))
	case m.showTable:
		hint = infoStyle.Render("table | ↑/↓ move • v/esc back • q quit")
		body = m.table.View()
		if len(m.table.Columns()) == 0 {
			body = infoStyle.Render("loading table…")
		}
	}

	status := infoStyle.Render(m.status)
	if m.statusErr {
		status = errorStyle.Render(m.status)
	}
	return fmt.Sprintf("%s\n%s\n%s\n%s", header, hint, body, status)
}
