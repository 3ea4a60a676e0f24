package catalog

import (
	"strings"

	"github.com/meur/dexview/internal/models"
)

const (
	// DefaultPageSize is the number of records shown per page.
	DefaultPageSize = 20

	// NarrowPageButtons and WidePageButtons are the page-selector window
	// sizes on each side of the current page.
	NarrowPageButtons = 1
	WidePageButtons   = 3

	// DefaultNarrowWidth is the viewport width below which the narrow window applies.
	DefaultNarrowWidth = 640
)

// Options tunes the derived view.
type Options struct {
	PageSize       int
	MaxPageButtons int
}

func (o Options) withDefaults() Options {
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	if o.MaxPageButtons <= 0 {
		o.MaxPageButtons = WidePageButtons
	}
	return o
}

// MaxPageButtons picks the page-selector window for a viewport width.
func MaxPageButtons(width, narrowWidth int) int {
	if narrowWidth <= 0 {
		narrowWidth = DefaultNarrowWidth
	}
	if width < narrowWidth {
		return NarrowPageButtons
	}
	return WidePageButtons
}

// Filter returns the records whose name contains term, ignoring case.
// An empty term matches everything.
func Filter(coll models.Collection, term string) []models.Creature {
	if term == "" {
		return coll
	}
	needle := strings.ToLower(term)
	out := make([]models.Creature, 0, len(coll))
	for _, c := range coll {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			out = append(out, c)
		}
	}
	return out
}

// TotalPages is ceil(count/pageSize); zero when there is nothing to show.
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// PageSlice returns page (1-based) of items. Out-of-range pages are empty.
func PageSlice(items []models.Creature, page, pageSize int) []models.Creature {
	if page < 1 || pageSize <= 0 {
		return []models.Creature{}
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []models.Creature{}
	}
	end := min(start+pageSize, len(items))
	return items[start:end]
}

// PageLabels builds the page selector: a window of up to maxButtons pages on
// each side of current, widened at either edge, with page 1 and the last page
// pinned and ellipses marking the gaps.
func PageLabels(current, totalPages, maxButtons int) []models.PageLabel {
	startPage := max(1, current-maxButtons)
	endPage := min(totalPages, current+maxButtons)

	if current <= maxButtons {
		endPage = min(totalPages, 2*maxButtons+1)
	}
	if current > totalPages-maxButtons {
		startPage = max(1, totalPages-2*maxButtons)
	}

	labels := make([]models.PageLabel, 0, max(0, endPage-startPage+1)+4)

	if startPage > 1 {
		labels = append(labels, pageLabel(1, current))
		if startPage > 2 {
			labels = append(labels, models.PageLabel{Kind: models.PageLabelEllipsis})
		}
	}

	for i := startPage; i <= endPage; i++ {
		labels = append(labels, pageLabel(i, current))
	}

	if endPage < totalPages {
		if endPage < totalPages-1 {
			labels = append(labels, models.PageLabel{Kind: models.PageLabelEllipsis})
		}
		labels = append(labels, pageLabel(totalPages, current))
	}

	return labels
}

func pageLabel(page, current int) models.PageLabel {
	return models.PageLabel{Kind: models.PageLabelNumber, Page: page, Selected: page == current}
}

// Derive computes the render-ready list view for a collection and view state.
// It is a pure function of its inputs.
func Derive(coll models.Collection, searchTerm string, currentPage int, opts Options) models.View {
	opts = opts.withDefaults()

	filtered := Filter(coll, searchTerm)
	total := TotalPages(len(filtered), opts.PageSize)

	return models.View{
		SearchTerm:  searchTerm,
		CurrentPage: currentPage,
		PageSize:    opts.PageSize,
		TotalPages:  total,
		TotalCount:  len(filtered),
		Items:       PageSlice(filtered, currentPage, opts.PageSize),
		PageLabels:  PageLabels(currentPage, total, opts.MaxPageButtons),
	}
}
