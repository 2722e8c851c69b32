package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/glide/internal/perf"
	"github.com/andyrewlee/glide/internal/ui/common"
)

// View renders the header, the list, the status line and the help bar.
func (a *App) View() tea.View {
	defer perf.Time("view")()

	view := tea.View{
		AltScreen:       true,
		MouseMode:       tea.MouseModeCellMotion,
		BackgroundColor: lipgloss.Color(string(common.ColorBackground)),
		ForegroundColor: lipgloss.Color(string(common.ColorForeground)),
	}

	if a.quitting {
		view.SetContent("")
		return view
	}
	if !a.ready {
		view.SetContent("Loading...")
		return view
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(),
		a.list.View(),
		a.list.StatusLine(a.width),
		a.renderFooter(),
	)
	view.SetContent(a.zone.Scan(content))
	return view
}

func (a *App) renderHeader() string {
	title := a.styles.Title.Render("glide")
	sub := a.styles.Muted.Render("  drag to fling · wheel to nudge")
	if a.version != "" {
		sub += a.styles.Muted.Render("  " + a.version)
	}
	return ansi.Truncate(title+sub, a.width, "…")
}

func (a *App) renderFooter() string {
	if a.toast.Visible() {
		return ansi.Truncate(a.toast.View(), a.width, "…")
	}
	var items []common.HelpItem
	for _, b := range a.list.Keys().ShortHelp() {
		h := b.Help()
		items = append(items, common.HelpItem{Key: h.Key, Desc: h.Desc})
	}
	h := a.keymap.Quit.Help()
	items = append(items, common.HelpItem{Key: h.Key, Desc: h.Desc})
	return common.RenderHelpBar(a.styles, items, a.width)
}
