package models

// PageLabelKind distinguishes the tokens of a pagination control
type PageLabelKind string

const (
	PageLabelNumber   PageLabelKind = "page"
	PageLabelEllipsis PageLabelKind = "ellipsis"
)

// PageLabel is one renderable token of the page selector.
// Page is zero for ellipsis markers.
type PageLabel struct {
	Kind     PageLabelKind `json:"kind"`
	Page     int           `json:"page,omitempty"`
	Selected bool          `json:"selected,omitempty"`
}

// View is the derived, render-ready state of the list page
type View struct {
	SearchTerm  string      `json:"search_term"`
	CurrentPage int         `json:"current_page"`
	PageSize    int         `json:"page_size"`
	TotalPages  int         `json:"total_pages"`
	TotalCount  int         `json:"total_count"` // records matching the search term
	Items       []Creature  `json:"items"`
	PageLabels  []PageLabel `json:"page_labels"`
}
