package home

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathforge/internal/screen"
	"github.com/abhisek/mathforge/internal/treasury"
	"github.com/abhisek/mathforge/internal/ui/components"
	"github.com/abhisek/mathforge/internal/ui/theme"
)

// marketItem is one storefront entry.
type marketItem struct {
	ID    string
	Name  string
	Blurb string
	Cost  int
}

var marketItems = []marketItem{
	{treasury.ItemFreeze, "Frost Charm", "Pause the countdown for one question", 50},
	{treasury.ItemExtraTime, "Hourglass Shard", "Add 5 seconds to the clock", 30},
	{treasury.ItemFiftyFifty, "Petal Wind", "Blow away all but one wrong answer", 40},
}

// buildMarketMenu rebuilds the storefront menu from the current
// treasury snapshot. Items the player cannot afford are disabled.
func (h *HomeScreen) buildMarketMenu() components.Menu {
	snap := h.treasury.Snapshot()

	items := make([]components.MenuItem, len(marketItems))
	for i, it := range marketItems {
		it := it
		items[i] = components.MenuItem{
			Label:    fmt.Sprintf("%-16s %3d ✿   held: %d", it.Name, it.Cost, snap.Inventory[it.ID]),
			Disabled: snap.Petals < it.Cost,
			Action: func() tea.Cmd {
				if h.treasury.BuyItem(context.Background(), it.ID, it.Cost, treasury.CurrencyPetals) {
					h.marketNote = fmt.Sprintf("Bought %s for %d petals", it.Name, it.Cost)
				} else {
					h.marketNote = fmt.Sprintf("Not enough petals for %s (%d needed)", it.Name, it.Cost)
				}
				return nil
			},
		}
	}

	menu := components.NewMenu(items)
	if h.market.Selected < len(items) {
		menu.Selected = h.market.Selected
	}
	return menu
}

func (h *HomeScreen) updateMarket(kmsg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch kmsg.String() {
	case "esc", "q":
		h.marketOpen = false
		h.marketNote = ""
		return h, nil
	}

	var cmd tea.Cmd
	h.market, cmd = h.market.Update(kmsg)
	if kmsg.String() == "enter" {
		// Balances and held counts changed; redraw the storefront.
		h.market = h.buildMarketMenu()
	}
	return h, cmd
}

func (h *HomeScreen) viewMarket(width, height int) string {
	snap := h.treasury.Snapshot()

	title := theme.Title.Render("✿ Petal Market ✿")
	balance := theme.Subtitle.Render(fmt.Sprintf("%d petals in your pouch", snap.Petals))

	body := title + "\n" + balance + "\n\n" + h.market.View()
	if h.market.Selected >= 0 && h.market.Selected < len(marketItems) {
		body += theme.Hint.Render("    " + marketItems[h.market.Selected].Blurb)
	}
	if h.marketNote != "" {
		body += "\n\n" + theme.Hint.Render(h.marketNote)
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}
