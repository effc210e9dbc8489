// Package tui is the interactive terminal client. All state lives in Model and
// changes only in Update, one message at a time.
package tui

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"pantryservice/internal/inventory"
	"pantryservice/internal/recipe"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// API is the pantry server as seen by the terminal client. Mutations return
// the refreshed list.
type API interface {
	ListItems(ctx context.Context, search string) ([]inventory.Item, error)
	Increment(ctx context.Context, name string, amount float64) ([]inventory.Item, error)
	Decrement(ctx context.Context, name string) ([]inventory.Item, error)
	SuggestRecipe(ctx context.Context, names []string) (recipe.Suggestion, error)
}

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeAdd
	modeRecipe
)

type (
	itemsMsg struct{ items []inventory.Item }
	errMsg   struct{ err error }

	suggestionMsg struct {
		seq        int
		suggestion recipe.Suggestion
	}
)

var (
	errNameRequired  = errors.New("item name is required")
	errBadQuantity   = errors.New("quantity must be a number")
	errNothingChosen = errors.New("no item selected")
)

type Model struct {
	ctx context.Context
	api API

	// items is the last list the server returned successfully.
	items  []inventory.Item
	cursor int
	mode   mode
	err    error

	search    textinput.Model
	nameInput textinput.Model
	qtyInput  textinput.Model

	loading    bool
	spinner    spinner.Model
	recipeSeq  int
	suggestion *recipe.Suggestion
}

func New(ctx context.Context, api API) Model {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search items"

	name := textinput.New()
	name.Prompt = "Item name: "
	name.CharLimit = 100

	qty := textinput.New()
	qty.Prompt = "Quantity:  "
	qty.SetValue("1")

	return Model{
		ctx:       ctx,
		api:       api,
		search:    search,
		nameInput: name,
		qtyInput:  qty,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), m.spinner.Tick)
}

// Visible returns the items matching the current search.
func (m Model) Visible() []inventory.Item {
	return inventory.Filter(m.items, m.search.Value())
}

func (m Model) Loading() bool { return m.loading }

func (m Model) Err() error { return m.err }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case itemsMsg:
		m.items = msg.items
		m.err = nil
		m.clampCursor()
		return m, nil

	case errMsg:
		// Keep the last good list.
		m.err = msg.err
		return m, nil

	case suggestionMsg:
		m.loading = false
		if msg.seq == m.recipeSeq && m.mode == modeRecipe {
			s := msg.suggestion
			m.suggestion = &s
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeAdd:
			return m.updateAdd(msg)
		case modeRecipe:
			return m.updateRecipe(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.Visible())-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Increment):
		item, ok := m.selected()
		if !ok {
			m.err = errNothingChosen
			return m, nil
		}
		return m, m.increment(item.Name, 1)
	case key.Matches(msg, keys.Decrement):
		item, ok := m.selected()
		if !ok {
			m.err = errNothingChosen
			return m, nil
		}
		return m, m.decrement(item.Name)
	case key.Matches(msg, keys.Add):
		m.mode = modeAdd
		m.err = nil
		m.qtyInput.Blur()
		return m, m.nameInput.Focus()
	case key.Matches(msg, keys.Search):
		m.mode = modeSearch
		return m, m.search.Focus()
	case key.Matches(msg, keys.Recipe):
		if m.loading {
			return m, nil
		}
		m.mode = modeRecipe
		m.loading = true
		m.suggestion = nil
		m.recipeSeq++
		return m, tea.Batch(m.suggest(m.recipeSeq, inventory.Names(m.items)), m.spinner.Tick)
	case key.Matches(msg, keys.Refresh):
		return m, m.refresh()
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Submit) || key.Matches(msg, keys.Cancel) {
		m.mode = modeBrowse
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.clampCursor()
	return m, cmd
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Cancel):
		m.closeAdd()
		return m, nil

	case key.Matches(msg, keys.Next):
		if m.nameInput.Focused() {
			m.nameInput.Blur()
			return m, m.qtyInput.Focus()
		}
		m.qtyInput.Blur()
		return m, m.nameInput.Focus()

	case key.Matches(msg, keys.Submit):
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			m.err = errNameRequired
			return m, nil
		}
		qty, err := parseQuantity(m.qtyInput.Value())
		if err != nil {
			m.err = err
			return m, nil
		}
		m.closeAdd()
		return m, m.increment(name, qty)
	}

	var cmd tea.Cmd
	if m.nameInput.Focused() {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.qtyInput, cmd = m.qtyInput.Update(msg)
	}
	return m, cmd
}

func (m Model) updateRecipe(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Cancel) || key.Matches(msg, keys.Submit) {
		// An outstanding request keeps running; its result is dropped.
		m.mode = modeBrowse
		m.suggestion = nil
	}
	return m, nil
}

func (m *Model) closeAdd() {
	m.mode = modeBrowse
	m.nameInput.Blur()
	m.qtyInput.Blur()
	m.nameInput.Reset()
	m.qtyInput.SetValue("1")
}

func (m *Model) clampCursor() {
	n := len(m.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selected() (inventory.Item, bool) {
	visible := m.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return inventory.Item{}, false
	}
	return visible[m.cursor], true
}

// parseQuantity coerces free text to a number. Blank text counts as zero.
func parseQuantity(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errBadQuantity
	}
	return v, nil
}

func (m Model) refresh() tea.Cmd {
	return func() tea.Msg {
		return itemsOrErr(m.api.ListItems(m.ctx, ""))
	}
}

func (m Model) increment(name string, amount float64) tea.Cmd {
	return func() tea.Msg {
		return itemsOrErr(m.api.Increment(m.ctx, name, amount))
	}
}

func (m Model) decrement(name string) tea.Cmd {
	return func() tea.Msg {
		return itemsOrErr(m.api.Decrement(m.ctx, name))
	}
}

func (m Model) suggest(seq int, names []string) tea.Cmd {
	return func() tea.Msg {
		s, err := m.api.SuggestRecipe(m.ctx, names)
		if err != nil {
			s = recipe.Fallback()
		}
		return suggestionMsg{seq: seq, suggestion: s}
	}
}

func itemsOrErr(items []inventory.Item, err error) tea.Msg {
	if err != nil {
		return errMsg{err: err}
	}
	return itemsMsg{items: items}
}
