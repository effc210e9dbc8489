package tui

import (
	"fmt"
	"strconv"
	"strings"

	"pantryservice/internal/inventory"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Pantry"))
	b.WriteString("\n\n")

	switch m.mode {
	case modeAdd:
		b.WriteString(m.addView())
	case modeRecipe:
		b.WriteString(m.recipeView())
	default:
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
		b.WriteString(m.listView())
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) listView() string {
	visible := m.Visible()
	if len(visible) == 0 {
		if len(m.items) == 0 {
			return mutedStyle.Render("The pantry is empty. Press a to add an item.") + "\n"
		}
		return mutedStyle.Render("No items match the search.") + "\n"
	}

	var b strings.Builder
	for i, item := range visible {
		line := fmt.Sprintf("%-30s %s", inventory.DisplayName(item.Name), quantityStyle.Render(formatQuantity(item.Quantity)))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) addView() string {
	body := strings.Join([]string{
		"Add Item",
		"",
		m.nameInput.View(),
		m.qtyInput.View(),
	}, "\n")
	return modalStyle.Render(body) + "\n"
}

func (m Model) recipeView() string {
	var body string
	switch {
	case m.loading:
		body = m.spinner.View() + " Asking for a recipe..."
	case m.suggestion != nil:
		body = m.suggestion.RecipeName
		if m.suggestion.SearchLink != "" {
			body += "\n\n" + linkStyle.Render(m.suggestion.SearchLink)
		}
	}
	return modalStyle.Render("Recipe Suggestion\n\n"+body) + "\n"
}

func (m Model) help() string {
	switch m.mode {
	case modeSearch:
		return "enter/esc: done"
	case modeAdd:
		return "tab: next field • enter: add • esc: cancel"
	case modeRecipe:
		return "esc: close"
	default:
		return "↑/↓: move • +/-: change • a: add • /: search • r: recipe • ctrl+r: refresh • q: quit"
	}
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
