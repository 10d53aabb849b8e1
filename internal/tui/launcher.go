package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/deskwm/internal/apps"
)

// appItem is a list item for one launchable application.
type appItem struct {
	desc    apps.Descriptor
	running int
}

func (i appItem) Title() string {
	if i.running > 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●") + " " + i.desc.Name
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("·") + " " + i.desc.Name
}

func (i appItem) Description() string {
	d := fmt.Sprintf("%s  %.0f×%.0f", i.desc.ID, i.desc.DefaultSize.Width, i.desc.DefaultSize.Height)
	if i.running > 0 {
		d += fmt.Sprintf("  (%d open)", i.running)
	}
	return d
}

func (i appItem) FilterValue() string { return i.desc.Name }

func newLauncher(descs []apps.Descriptor) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("15")).
		BorderForeground(lipgloss.Color("62"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("250")).
		BorderForeground(lipgloss.Color("62"))

	l := list.New(launcherItems(descs, nil), delegate, 0, 0)
	l.Title = "Applications"
	l.Styles.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("62")).
		Padding(0, 1)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	return l
}

func launcherItems(descs []apps.Descriptor, running map[string]int) []list.Item {
	items := make([]list.Item, 0, len(descs))
	for _, d := range descs {
		items = append(items, appItem{desc: d, running: running[d.ID]})
	}
	return items
}

var launcherBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("62")).
	Padding(0, 1)
