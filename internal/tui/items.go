package tui

import (
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/adrianmross/mpctl/pkg/multipass"
)

// entry is one row of the instance list. Rows added from the dialog have no
// instance until a refresh reports it.
type entry struct {
	text     string
	instance *multipass.Instance
}

func (e entry) Title() string {
	if e.text == "" {
		return "(unnamed)"
	}
	return e.text
}

func (e entry) Description() string {
	if e.instance == nil {
		return "pending launch"
	}
	parts := []string{string(e.instance.State)}
	if ip := e.instance.PrimaryIPv4(); ip != "" {
		parts = append(parts, ip)
	}
	if e.instance.Release != "" {
		parts = append(parts, e.instance.Release)
	}
	if e.instance.Memory != "" {
		parts = append(parts, "mem "+multipass.HumanSize(e.instance.Memory))
	}
	return strings.Join(parts, " • ")
}

func (e entry) FilterValue() string { return e.text }

func (e entry) pending() bool { return e.instance == nil }

// ItemList is the ordered, selectable list of instances. Selection is
// always either absent (empty list) or a valid index.
type ItemList struct {
	list list.Model
}

// NewItemList returns an empty list sized width x height.
func NewItemList(width, height int, compact bool) ItemList {
	l := list.New(nil, newEntryDelegate(compact), width, height)
	l.Title = "multipass instances"
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.DisableQuitKeybindings()
	if compact {
		l.Title = ""
		l.SetShowTitle(false)
	}
	return ItemList{list: l}
}

// Append adds text at the end of the list.
func (l *ItemList) Append(text string) {
	items := l.list.Items()
	l.list.InsertItem(len(items), entry{text: text})
	if len(items) == 0 {
		l.list.Select(0)
	}
}

// DeleteSelected removes the selected item, if any, and returns it. The
// selection is clamped to the new last item, or cleared when the list
// becomes empty.
func (l *ItemList) DeleteSelected() (entry, bool) {
	idx, ok := l.Selection()
	if !ok {
		return entry{}, false
	}
	removed := l.list.Items()[idx].(entry)
	l.list.RemoveItem(idx)
	l.clamp(idx)
	return removed, true
}

// Selection returns the selected index, or false when nothing is selected.
func (l ItemList) Selection() (int, bool) {
	n := len(l.list.Items())
	if n == 0 {
		return 0, false
	}
	idx := l.list.Index()
	if idx < 0 || idx >= n {
		return 0, false
	}
	return idx, true
}

// Selected returns the selected entry.
func (l ItemList) Selected() (entry, bool) {
	idx, ok := l.Selection()
	if !ok {
		return entry{}, false
	}
	return l.list.Items()[idx].(entry), true
}

// Replace swaps in a fresh instance snapshot. Pending rows that the snapshot
// does not name yet are kept at the end. The selection follows the selected
// name when it still exists.
func (l *ItemList) Replace(instances []multipass.Instance) {
	prevIdx, hadSel := l.Selection()
	var prevName string
	if sel, ok := l.Selected(); ok {
		prevName = sel.text
	}

	known := make(map[string]bool, len(instances))
	items := make([]list.Item, 0, len(instances))
	for i := range instances {
		inst := instances[i]
		known[inst.Name] = true
		items = append(items, entry{text: inst.Name, instance: &inst})
	}
	for _, it := range l.list.Items() {
		if e := it.(entry); e.pending() && !known[e.text] {
			items = append(items, e)
		}
	}
	l.list.SetItems(items)

	if !hadSel {
		l.clamp(0)
		return
	}
	for i, it := range items {
		if it.(entry).text == prevName {
			l.list.Select(i)
			return
		}
	}
	l.clamp(prevIdx)
}

// Resolve drops the first pending row with text, once its launch completed.
func (l *ItemList) Resolve(text string) {
	for i, it := range l.list.Items() {
		if e := it.(entry); e.pending() && e.text == text {
			idx, _ := l.Selection()
			l.list.RemoveItem(i)
			if i < idx {
				idx--
			}
			l.clamp(idx)
			return
		}
	}
}

// Texts returns the display text of every row in order.
func (l ItemList) Texts() []string {
	items := l.list.Items()
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.(entry).text)
	}
	return out
}

// Len is the number of rows.
func (l ItemList) Len() int { return len(l.list.Items()) }

// SetSize resizes the underlying list.
func (l *ItemList) SetSize(width, height int) { l.list.SetSize(width, height) }

func (l ItemList) Update(msg tea.Msg) (ItemList, tea.Cmd) {
	var cmd tea.Cmd
	l.list, cmd = l.list.Update(msg)
	return l, cmd
}

func (l ItemList) View() string { return l.list.View() }

func (l *ItemList) clamp(idx int) {
	n := len(l.list.Items())
	if n == 0 {
		l.list.ResetSelected()
		return
	}
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	l.list.Select(idx)
}

// entryDelegate colors pending rows and instance states.
type entryDelegate struct {
	list.DefaultDelegate
}

func newEntryDelegate(compact bool) entryDelegate {
	d := list.NewDefaultDelegate()
	if compact {
		d.SetHeight(1)
		d.SetSpacing(0)
		d.ShowDescription = false
	} else {
		d.SetHeight(2)
		d.SetSpacing(0)
		d.ShowDescription = true
	}
	return entryDelegate{DefaultDelegate: d}
}

func (d entryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	e, ok := item.(entry)
	if !ok {
		d.DefaultDelegate.Render(w, m, index, item)
		return
	}
	color := infoColor
	switch {
	case e.pending():
		color = pendingColor
	case e.instance.State == multipass.StateRunning:
		color = runningColor
	case e.instance.State == multipass.StateStopped, e.instance.State == multipass.StateSuspended:
		color = stoppedColor
	}
	d.Styles.NormalDesc = d.Styles.NormalDesc.Foreground(color)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.Foreground(color)
	if e.pending() {
		d.Styles.NormalTitle = d.Styles.NormalTitle.Foreground(pendingColor)
	}
	d.DefaultDelegate.Render(w, m, index, item)
}
