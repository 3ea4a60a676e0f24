package catalog

import "github.com/meur/dexview/internal/models"

// ViewState is the ephemeral list state: a search term and the current page.
// The page goes back to 1 whenever the search term changes.
type ViewState struct {
	searchTerm  string
	currentPage int
}

// NewViewState returns the initial state: no search, page 1.
func NewViewState() ViewState {
	return ViewState{currentPage: 1}
}

func (s *ViewState) SearchTerm() string { return s.searchTerm }

func (s *ViewState) CurrentPage() int { return s.currentPage }

// SetSearchTerm changes the term and resets the page. Setting the same term
// again is not a change and keeps the page.
func (s *ViewState) SetSearchTerm(term string) {
	if term == s.searchTerm {
		return
	}
	s.searchTerm = term
	s.currentPage = 1
}

// HandlePageClick moves to requested if it lies in [1, totalPages] and
// reports whether the state changed. Anything else is a no-op.
func (s *ViewState) HandlePageClick(requested, totalPages int) bool {
	if requested < 1 || requested > totalPages {
		return false
	}
	s.currentPage = requested
	return true
}

// ListModel binds a loaded collection to a ViewState and re-derives the
// view after every change. It is what interactive shells drive.
type ListModel struct {
	coll  models.Collection
	state ViewState
	opts  Options
}

// NewListModel creates a model over coll starting at page 1 with no search.
func NewListModel(coll models.Collection, opts Options) *ListModel {
	return &ListModel{
		coll:  coll,
		state: NewViewState(),
		opts:  opts.withDefaults(),
	}
}

// View derives the current list view.
func (m *ListModel) View() models.View {
	return Derive(m.coll, m.state.SearchTerm(), m.state.CurrentPage(), m.opts)
}

// State returns a copy of the current view state.
func (m *ListModel) State() ViewState {
	return m.state
}

// SetSearchTerm updates the search (resetting the page) and returns the new view.
func (m *ListModel) SetSearchTerm(term string) models.View {
	m.state.SetSearchTerm(term)
	return m.View()
}

// GoToPage applies a page click. ok is false when the page was out of range
// and the state is unchanged.
func (m *ListModel) GoToPage(page int) (v models.View, ok bool) {
	total := TotalPages(len(Filter(m.coll, m.state.SearchTerm())), m.opts.PageSize)
	ok = m.state.HandlePageClick(page, total)
	return m.View(), ok
}

// NextPage and PrevPage step one page, subject to the same bounds.
func (m *ListModel) NextPage() (models.View, bool) {
	return m.GoToPage(m.state.CurrentPage() + 1)
}

func (m *ListModel) PrevPage() (models.View, bool) {
	return m.GoToPage(m.state.CurrentPage() - 1)
}

// SetMaxPageButtons changes the page-selector window, e.g. on a resize.
func (m *ListModel) SetMaxPageButtons(n int) {
	if n > 0 {
		m.opts.MaxPageButtons = n
	}
}

// Replace swaps in a freshly loaded collection and resets the view state.
func (m *ListModel) Replace(coll models.Collection) {
	m.coll = coll
	m.state = NewViewState()
}
