// Package tui is the interactive terminal browser: a searchable, paged list
// of the collection and a detail page with cry playback.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/meur/dexview/internal/audio"
	"github.com/meur/dexview/internal/catalog"
	"github.com/meur/dexview/internal/config"
	"github.com/meur/dexview/internal/detail"
	"github.com/meur/dexview/internal/models"
	"github.com/meur/dexview/internal/storage"
	"github.com/rivo/tview"
)

const helpText = " [::b]/[::-] search  [::b]n/p[::-] page  [::b]Enter[::-] details  [::b]c[::-] cry  [::b]t[::-] theme  [::b]r[::-] reload  [::b]Esc[::-] back  [::b]q[::-] quit"

// narrowColumns is the terminal width below which the compact page selector is used.
const narrowColumns = 80

const (
	pageList   = "list"
	pageDetail = "detail"
)

// Deps are the services the browser drives.
type Deps struct {
	Library  *catalog.Library
	Viewer   *detail.Viewer
	Prefs    *storage.Store // optional; without it the theme is not persisted
	ClientID string
	View     config.ViewConfig
	Logger   *slog.Logger
}

// UI is the browser state. All fields are owned by the tview event loop.
type UI struct {
	deps Deps
	ctx  context.Context

	app         *tview.Application
	root        *tview.Flex
	pages       *tview.Pages // list and detail
	listPanel   *tview.Flex
	detailPanel *tview.Flex
	search      *tview.InputField
	list        *tview.List
	pager       *tview.TextView
	detail      *tview.TextView
	status      *tview.TextView

	model   *catalog.ListModel // nil until a load succeeds
	items   []models.Creature  // rows of the current page
	buttons int
	dark    bool
	message string

	openID  int // record shown or being fetched on the detail page, 0 for none
	current *detail.View

	// queue runs f on the event loop; replaced in tests.
	queue func(f func())
}

// Run shows the browser until the user quits or ctx is cancelled. The first
// load starts immediately.
func Run(ctx context.Context, deps Deps) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ui := New(ctx, deps)
	go func() {
		<-ctx.Done()
		ui.app.Stop()
	}()

	ui.startReload()
	err := ui.app.SetRoot(ui.root, true).EnableMouse(true).Run()
	if cerr := deps.Viewer.Close(); cerr != nil {
		deps.Logger.Warn("release cry", "error", cerr)
	}
	return err
}

// New builds the browser without starting the event loop.
func New(ctx context.Context, deps Deps) *UI {
	ui := &UI{
		deps:    deps,
		ctx:     ctx,
		app:     tview.NewApplication(),
		buttons: catalog.WidePageButtons,
		message: "Loading Pokemon...",
	}
	ui.queue = func(f func()) { ui.app.QueueUpdateDraw(f) }

	if deps.Prefs != nil {
		prefs, err := deps.Prefs.PreferencesOrDefault(deps.ClientID)
		if err != nil {
			deps.Logger.Warn("read preferences", "error", err)
		} else {
			ui.dark = prefs.Dark
		}
	}

	ui.build()
	ui.applyTheme()
	ui.refreshStatus()

	deps.Library.OnLoaded(func(coll models.Collection) {
		ui.queue(func() { ui.setCollection(coll) })
	})
	return ui
}

func (ui *UI) build() {
	ui.search = tview.NewInputField().SetLabel(" Search ").SetFieldWidth(0).SetPlaceholder("name...")
	ui.search.SetChangedFunc(ui.applySearch)

	ui.list = tview.NewList().ShowSecondaryText(false)
	ui.list.SetSelectedFunc(func(index int, _, _ string, _ rune) {
		if index >= 0 && index < len(ui.items) {
			ui.openDetail(ui.items[index].ID)
		}
	})

	ui.pager = tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignCenter)

	ui.listPanel = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(ui.search, 1, 0, false).
		AddItem(ui.list, 0, 1, true).
		AddItem(ui.pager, 1, 0, false)
	ui.listPanel.SetBorder(true).SetTitle(" Pokemon ")

	ui.detail = tview.NewTextView().SetDynamicColors(true).SetWrap(true)
	ui.detailPanel = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(ui.detail, 0, 1, true)
	ui.detailPanel.SetBorder(true).SetTitle(" Details ")

	ui.status = tview.NewTextView().SetDynamicColors(true)

	ui.pages = tview.NewPages().
		AddPage(pageList, ui.listPanel, true, true).
		AddPage(pageDetail, ui.detailPanel, true, false)

	ui.root = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(ui.pages, 0, 1, true).
		AddItem(ui.status, 1, 0, false)

	ui.app.SetFocus(ui.list)
	ui.app.SetInputCapture(ui.handleKey)
	ui.app.SetBeforeDrawFunc(ui.beforeDraw)
}

func (ui *UI) handleKey(ev *tcell.EventKey) *tcell.EventKey {
	if _, inInput := ui.app.GetFocus().(*tview.InputField); inInput {
		switch ev.Key() {
		case tcell.KeyEsc, tcell.KeyEnter, tcell.KeyDown, tcell.KeyTab:
			ui.app.SetFocus(ui.list)
			return nil
		case tcell.KeyCtrlC:
			ui.app.Stop()
			return nil
		}
		return ev
	}

	detailOpen := ui.openID != 0

	switch ev.Key() {
	case tcell.KeyCtrlC:
		ui.app.Stop()
		return nil
	case tcell.KeyEsc:
		if detailOpen {
			ui.closeDetail()
			return nil
		}
	case tcell.KeyRight:
		if !detailOpen {
			ui.nextPage()
			return nil
		}
	case tcell.KeyLeft:
		if !detailOpen {
			ui.prevPage()
			return nil
		}
	case tcell.KeyRune:
	default:
		return ev
	}

	switch ev.Rune() {
	case 'q':
		ui.app.Stop()
		return nil
	case 't':
		ui.toggleTheme()
		return nil
	case 'c':
		if detailOpen {
			ui.toggleCry()
			return nil
		}
	case '/':
		if !detailOpen {
			ui.app.SetFocus(ui.search)
			return nil
		}
	case 'n':
		if !detailOpen {
			ui.nextPage()
			return nil
		}
	case 'p':
		if !detailOpen {
			ui.prevPage()
			return nil
		}
	case 'r':
		if !detailOpen {
			ui.startReload()
			return nil
		}
	}
	return ev
}

// beforeDraw switches the page selector window when the terminal is resized.
func (ui *UI) beforeDraw(screen tcell.Screen) bool {
	width, _ := screen.Size()
	ui.setPageButtons(catalog.MaxPageButtons(width, narrowColumns))
	return false
}

func (ui *UI) setPageButtons(n int) {
	if n == ui.buttons {
		return
	}
	ui.buttons = n
	if ui.model != nil {
		ui.model.SetMaxPageButtons(n)
		ui.pager.SetText(pagerText(ui.model.View()))
	}
}

// --- List page ---

// startReload runs a full load in the background. Success arrives through
// the library's OnLoaded hook.
func (ui *UI) startReload() {
	ui.message = "Loading Pokemon..."
	ui.refreshStatus()

	go func() {
		if err := ui.deps.Library.Reload(ui.ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			ui.queue(func() { ui.showLoadError(err) })
		}
	}()
}

func (ui *UI) setCollection(coll models.Collection) {
	opts := catalog.Options{PageSize: ui.deps.View.PageSize, MaxPageButtons: ui.buttons}
	if ui.model == nil {
		ui.model = catalog.NewListModel(coll, opts)
	} else {
		ui.model.Replace(coll)
	}
	ui.search.SetText("")
	ui.message = fmt.Sprintf("Loaded %d Pokemon.", len(coll))
	ui.refreshList()
	ui.refreshStatus()
}

func (ui *UI) showLoadError(err error) {
	ui.deps.Logger.Error("load failed", "error", err)
	ui.model = nil
	ui.items = nil
	ui.list.Clear()
	ui.pager.SetText("")
	ui.message = "[red]Failed to fetch Pokemon data.[-] Press r to retry."
	ui.refreshStatus()
}

func (ui *UI) refreshList() {
	ui.list.Clear()
	if ui.model == nil {
		ui.items = nil
		ui.pager.SetText("")
		return
	}

	v := ui.model.View()
	ui.items = v.Items
	if len(v.Items) == 0 {
		ui.list.AddItem(noMatchesText, "", 0, nil)
	}
	for _, c := range v.Items {
		ui.list.AddItem(listRow(c), "", 0, nil)
	}
	ui.pager.SetText(pagerText(v))
	ui.listPanel.SetTitle(fmt.Sprintf(" Pokemon (%d) ", v.TotalCount))
}

// applySearch filters the list; a changed term goes back to page 1.
func (ui *UI) applySearch(text string) {
	if ui.model == nil {
		return
	}
	ui.model.SetSearchTerm(text)
	ui.refreshList()
}

func (ui *UI) nextPage() {
	if ui.model == nil {
		return
	}
	if _, ok := ui.model.NextPage(); ok {
		ui.refreshList()
	}
}

func (ui *UI) prevPage() {
	if ui.model == nil {
		return
	}
	if _, ok := ui.model.PrevPage(); ok {
		ui.refreshList()
	}
}

// --- Detail page ---

// openDetail navigates to id. The fetch runs in the background; a reply for
// a page the user already left is dropped.
func (ui *UI) openDetail(id int) {
	ui.openID = id
	ui.current = nil
	ui.detail.SetText("Loading...")
	ui.detailPanel.SetTitle(fmt.Sprintf(" #%03d ", id))
	ui.pages.SwitchToPage(pageDetail)
	ui.app.SetFocus(ui.detail)

	go func() {
		view, err := ui.deps.Viewer.Open(ui.ctx, id)
		ui.queue(func() { ui.showDetail(id, view, err) })
	}()
}

// showDetail installs the result of a fetch started by openDetail.
func (ui *UI) showDetail(id int, view *detail.View, err error) {
	if ui.openID != id {
		if view != nil {
			view.Close()
		}
		return
	}
	if errors.Is(err, detail.ErrSuperseded) {
		return
	}
	if err != nil {
		ui.detail.SetText(detailErrorText(id, err))
		return
	}
	view.Cry.OnChange(func(audio.State) {
		go ui.queue(ui.renderDetail)
	})
	view.Cry.OnError(func(error) {
		go ui.queue(func() {
			ui.message = "[red]Could not play the cry.[-]"
			ui.refreshStatus()
		})
	})
	ui.current = view
	ui.renderDetail()
}

func (ui *UI) renderDetail() {
	if ui.current == nil {
		return
	}
	ui.detail.SetText(detailText(ui.current.Creature, ui.current.Cry.State()))
	ui.detail.ScrollToBeginning()
}

func (ui *UI) closeDetail() {
	ui.openID = 0
	ui.current = nil
	if err := ui.deps.Viewer.Close(); err != nil {
		ui.deps.Logger.Warn("release cry", "error", err)
	}
	ui.pages.SwitchToPage(pageList)
	ui.app.SetFocus(ui.list)
}

func (ui *UI) toggleCry() {
	if ui.current == nil {
		return
	}
	err := ui.current.Cry.Play()
	switch {
	case err == nil:
		return
	case errors.Is(err, audio.ErrNoCry):
		ui.message = "This Pokemon has no cry."
	case errors.Is(err, audio.ErrPlaybackStartFailed):
		ui.message = "[red]Could not play the cry.[-]"
	default:
		ui.message = err.Error()
	}
	ui.refreshStatus()
}

// --- Theme and status ---

func (ui *UI) toggleTheme() {
	if ui.deps.Prefs == nil {
		ui.dark = !ui.dark
	} else {
		prefs, err := ui.deps.Prefs.ToggleTheme(ui.deps.ClientID)
		if err != nil {
			ui.deps.Logger.Warn("save theme", "error", err)
			ui.dark = !ui.dark
		} else {
			ui.dark = prefs.Dark
		}
	}
	ui.applyTheme()
	ui.message = "Theme: " + models.Preferences{Dark: ui.dark}.Theme()
	ui.refreshStatus()
}

func (ui *UI) refreshStatus() {
	ui.status.SetText(" " + ui.message + "  |" + helpText)
}
