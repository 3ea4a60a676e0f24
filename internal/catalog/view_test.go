package catalog

import (
	"fmt"
	"strings"
	"testing"

	"github.com/meur/dexview/internal/models"
)

func kantoSample() models.Collection {
	names := []string{
		"bulbasaur", "ivysaur", "venusaur", "charmander", "charmeleon", "charizard",
		"squirtle", "wartortle", "blastoise", "pikachu", "raichu", "Chansey",
	}
	coll := make(models.Collection, len(names))
	for i, n := range names {
		coll[i] = models.Creature{ID: i + 1, Name: n}
	}
	return coll
}

func names(items []models.Creature) []string {
	out := make([]string, len(items))
	for i, c := range items {
		out[i] = c.Name
	}
	return out
}

func TestFilter_CaseInsensitiveSubstring(t *testing.T) {
	coll := kantoSample()

	tests := []struct {
		term string
		want []string
	}{
		{"char", []string{"charmander", "charmeleon", "charizard"}},
		{"CHAR", []string{"charmander", "charmeleon", "charizard"}},
		{"saur", []string{"bulbasaur", "ivysaur", "venusaur"}},
		{"chan", []string{"Chansey"}},
		{"zzz999", []string{}},
	}
	for _, tt := range tests {
		got := names(Filter(coll, tt.term))
		if fmt.Sprint(got) != fmt.Sprint(tt.want) {
			t.Errorf("Filter(%q) = %v, want %v", tt.term, got, tt.want)
		}
	}
}

func TestFilter_ExactlyTheMatchingRecords(t *testing.T) {
	coll := kantoSample()
	for _, term := range []string{"", "a", "r", "ch", "tort", "u", "x"} {
		got := Filter(coll, term)
		want := 0
		for _, c := range coll {
			if strings.Contains(strings.ToLower(c.Name), strings.ToLower(term)) {
				want++
			}
		}
		if len(got) != want {
			t.Errorf("Filter(%q) returned %d records, want %d", term, len(got), want)
		}
		for _, c := range got {
			if !strings.Contains(strings.ToLower(c.Name), strings.ToLower(term)) {
				t.Errorf("Filter(%q) returned non-matching %q", term, c.Name)
			}
		}
	}
}

func TestFilter_EmptyTermKeepsOrder(t *testing.T) {
	coll := kantoSample()
	got := Filter(coll, "")
	if len(got) != len(coll) || got[0].Name != "bulbasaur" || got[len(got)-1].Name != "Chansey" {
		t.Errorf("Filter(\"\") = %v", names(got))
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct{ count, want int }{
		{0, 0}, {1, 1}, {20, 1}, {21, 2}, {45, 3}, {151, 8},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.count, 20); got != tt.want {
			t.Errorf("TotalPages(%d, 20) = %d, want %d", tt.count, got, tt.want)
		}
	}
}

func TestPages_CoverEveryRecordOnce(t *testing.T) {
	for _, n := range []int{0, 1, 19, 20, 21, 45, 100, 151} {
		coll := makeCollection(n, "mon")
		total := TotalPages(n, 20)

		seen := map[int]int{}
		sum := 0
		for p := 1; p <= total; p++ {
			page := PageSlice(coll, p, 20)
			sum += len(page)
			for _, c := range page {
				seen[c.ID]++
			}
		}
		if sum != n {
			t.Errorf("n=%d: pages hold %d records", n, sum)
		}
		for id, k := range seen {
			if k != 1 {
				t.Errorf("n=%d: record %d appears %d times", n, id, k)
			}
		}
	}
}

func TestDerive_FortyFiveRecords(t *testing.T) {
	coll := makeCollection(45, "mon")

	wantLens := map[int]int{1: 20, 2: 20, 3: 5, 4: 0, 0: 0}
	for page, want := range wantLens {
		v := Derive(coll, "", page, Options{PageSize: 20})
		if v.TotalPages != 3 {
			t.Fatalf("page %d: total pages = %d, want 3", page, v.TotalPages)
		}
		if len(v.Items) != want {
			t.Errorf("page %d: %d items, want %d", page, len(v.Items), want)
		}
	}

	v := Derive(coll, "", 3, Options{PageSize: 20})
	if v.Items[0].ID != 41 || v.Items[4].ID != 45 {
		t.Errorf("page 3 = ids %d..%d, want 41..45", v.Items[0].ID, v.Items[4].ID)
	}
}

func TestDerive_NoMatches(t *testing.T) {
	v := Derive(kantoSample(), "zzz999", 1, Options{})
	if v.TotalPages != 0 || v.TotalCount != 0 {
		t.Errorf("total pages/count = %d/%d, want 0/0", v.TotalPages, v.TotalCount)
	}
	if len(v.Items) != 0 {
		t.Errorf("items = %v, want empty", names(v.Items))
	}
	if len(v.PageLabels) != 0 {
		t.Errorf("labels = %v, want none", v.PageLabels)
	}
	if v.Items == nil {
		t.Error("items should be an empty slice, not nil")
	}
}

func TestDerive_DefaultsPageSize(t *testing.T) {
	v := Derive(makeCollection(151, "mon"), "", 1, Options{})
	if v.PageSize != DefaultPageSize || len(v.Items) != 20 || v.TotalPages != 8 {
		t.Errorf("view = size %d, %d items, %d pages", v.PageSize, len(v.Items), v.TotalPages)
	}
}

// render turns labels into a compact string: selected pages in brackets, "…" for gaps.
func render(labels []models.PageLabel) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		switch {
		case l.Kind == models.PageLabelEllipsis:
			parts[i] = "…"
		case l.Selected:
			parts[i] = fmt.Sprintf("[%d]", l.Page)
		default:
			parts[i] = fmt.Sprint(l.Page)
		}
	}
	return strings.Join(parts, " ")
}

func TestPageLabels(t *testing.T) {
	tests := []struct {
		current, total, max int
		want                string
	}{
		{1, 0, 3, ""},
		{1, 1, 3, "[1]"},
		{1, 3, 3, "[1] 2 3"},
		{1, 8, 3, "[1] 2 3 4 5 6 7 8"},
		{1, 20, 3, "[1] 2 3 4 5 6 7 … 20"},
		{3, 20, 3, "1 2 [3] 4 5 6 7 … 20"},
		{5, 20, 3, "1 2 3 4 [5] 6 7 8 … 20"},
		{6, 20, 3, "1 … 3 4 5 [6] 7 8 9 … 20"},
		{10, 20, 3, "1 … 7 8 9 [10] 11 12 13 … 20"},
		{17, 20, 3, "1 … 14 15 16 [17] 18 19 20"},
		{20, 20, 3, "1 … 14 15 16 17 18 19 [20]"},
		{1, 3, 1, "[1] 2 3"},
		{1, 8, 1, "[1] 2 3 … 8"},
		{4, 8, 1, "1 … 3 [4] 5 … 8"},
		{8, 8, 1, "1 … 6 7 [8]"},
		{2, 8, 1, "1 [2] 3 … 8"},
	}
	for _, tt := range tests {
		got := render(PageLabels(tt.current, tt.total, tt.max))
		if got != tt.want {
			t.Errorf("PageLabels(%d, %d, %d) = %q, want %q", tt.current, tt.total, tt.max, got, tt.want)
		}
	}
}

func TestPageLabels_OutOfRangeCurrent(t *testing.T) {
	// Callers clamp, but a stale page must not panic.
	if got := PageLabels(100, 0, 3); len(got) != 0 {
		t.Errorf("labels = %v, want none", got)
	}
}

func TestMaxPageButtons(t *testing.T) {
	if got := MaxPageButtons(320, 640); got != NarrowPageButtons {
		t.Errorf("narrow = %d, want %d", got, NarrowPageButtons)
	}
	if got := MaxPageButtons(1024, 640); got != WidePageButtons {
		t.Errorf("wide = %d, want %d", got, WidePageButtons)
	}
	if got := MaxPageButtons(640, 0); got != WidePageButtons {
		t.Errorf("boundary = %d, want %d", got, WidePageButtons)
	}
}
