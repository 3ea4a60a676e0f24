package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// palette is one display theme.
type palette struct {
	background   tcell.Color
	text         tcell.Color
	muted        tcell.Color
	accent       tcell.Color
	selectedText tcell.Color
}

var (
	darkPalette = palette{
		background:   tcell.ColorBlack,
		text:         tcell.ColorWhite,
		muted:        tcell.ColorLightGray,
		accent:       tcell.ColorGold,
		selectedText: tcell.ColorBlack,
	}
	lightPalette = palette{
		background:   tcell.ColorWhite,
		text:         tcell.ColorBlack,
		muted:        tcell.ColorDimGray,
		accent:       tcell.ColorNavy,
		selectedText: tcell.ColorWhite,
	}
)

func paletteFor(dark bool) palette {
	if dark {
		return darkPalette
	}
	return lightPalette
}

// setDefaultStyles makes primitives created later (modals, new pages) match p.
func setDefaultStyles(p palette) {
	tview.Styles.PrimitiveBackgroundColor = p.background
	tview.Styles.ContrastBackgroundColor = p.background
	tview.Styles.MoreContrastBackgroundColor = p.background
	tview.Styles.BorderColor = p.accent
	tview.Styles.TitleColor = p.accent
	tview.Styles.GraphicsColor = p.accent
	tview.Styles.PrimaryTextColor = p.text
	tview.Styles.SecondaryTextColor = p.muted
	tview.Styles.TertiaryTextColor = p.accent
	tview.Styles.InverseTextColor = p.selectedText
	tview.Styles.ContrastSecondaryTextColor = p.selectedText
}

func styleBox(b *tview.Box, p palette) {
	b.SetBackgroundColor(p.background)
	b.SetBorderColor(p.accent)
	b.SetTitleColor(p.accent)
}

// applyTheme restyles every primitive for the current dark flag.
func (ui *UI) applyTheme() {
	p := paletteFor(ui.dark)
	setDefaultStyles(p)

	for _, b := range []*tview.Box{
		ui.root.Box, ui.pages.Box, ui.listPanel.Box, ui.detailPanel.Box, ui.list.Box, ui.search.Box,
		ui.pager.Box, ui.detail.Box, ui.status.Box,
	} {
		styleBox(b, p)
	}

	ui.list.SetMainTextColor(p.text)
	ui.list.SetSelectedTextColor(p.selectedText)
	ui.list.SetSelectedBackgroundColor(p.accent)

	ui.search.SetLabelColor(p.accent)
	ui.search.SetFieldBackgroundColor(p.background)
	ui.search.SetFieldTextColor(p.text)
	ui.search.SetPlaceholderTextColor(p.muted)

	ui.pager.SetTextColor(p.text)
	ui.detail.SetTextColor(p.text)
	ui.status.SetTextColor(p.muted)
}
