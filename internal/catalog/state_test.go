package catalog

import "testing"

func TestViewState_SearchResetsPage(t *testing.T) {
	for _, start := range []int{1, 2, 5, 8} {
		s := NewViewState()
		s.HandlePageClick(start, 8)

		s.SetSearchTerm("char")
		if s.CurrentPage() != 1 {
			t.Errorf("from page %d: page after search = %d, want 1", start, s.CurrentPage())
		}
	}
}

func TestViewState_SameTermKeepsPage(t *testing.T) {
	s := NewViewState()
	s.SetSearchTerm("a")
	s.HandlePageClick(3, 5)
	s.SetSearchTerm("a")
	if s.CurrentPage() != 3 {
		t.Errorf("page = %d, want 3", s.CurrentPage())
	}
}

func TestViewState_HandlePageClick(t *testing.T) {
	tests := []struct {
		requested, total int
		wantOK           bool
		wantPage         int
	}{
		{0, 3, false, 2},
		{-1, 3, false, 2},
		{4, 3, false, 2},
		{1, 0, false, 2},
		{1, 3, true, 1},
		{3, 3, true, 3},
	}
	for _, tt := range tests {
		s := NewViewState()
		s.HandlePageClick(2, 3)

		ok := s.HandlePageClick(tt.requested, tt.total)
		if ok != tt.wantOK || s.CurrentPage() != tt.wantPage {
			t.Errorf("HandlePageClick(%d, %d) = %v, page %d; want %v, page %d",
				tt.requested, tt.total, ok, s.CurrentPage(), tt.wantOK, tt.wantPage)
		}
	}
}

func TestListModel_Scenario(t *testing.T) {
	m := NewListModel(makeCollection(45, "mon"), Options{PageSize: 20})

	v := m.View()
	if v.CurrentPage != 1 || len(v.Items) != 20 || v.TotalPages != 3 {
		t.Fatalf("initial view = page %d, %d items, %d pages", v.CurrentPage, len(v.Items), v.TotalPages)
	}

	v, ok := m.GoToPage(3)
	if !ok || len(v.Items) != 5 {
		t.Fatalf("page 3: ok=%v items=%d", ok, len(v.Items))
	}

	v, ok = m.GoToPage(4)
	if ok || v.CurrentPage != 3 {
		t.Errorf("page 4 should be a no-op: ok=%v page=%d", ok, v.CurrentPage)
	}

	if _, ok := m.NextPage(); ok {
		t.Error("NextPage past the end should be a no-op")
	}
	v, ok = m.PrevPage()
	if !ok || v.CurrentPage != 2 {
		t.Errorf("PrevPage: ok=%v page=%d", ok, v.CurrentPage)
	}

	v = m.SetSearchTerm("mon-4")
	// mon-4 and mon-40..45
	if v.CurrentPage != 1 || v.TotalCount != 7 || v.TotalPages != 1 {
		t.Errorf("search view = page %d, count %d, pages %d", v.CurrentPage, v.TotalCount, v.TotalPages)
	}
}

func TestListModel_PageButtonsAndReplace(t *testing.T) {
	m := NewListModel(makeCollection(200, "mon"), Options{})
	m.SetMaxPageButtons(NarrowPageButtons)
	if got := render(m.View().PageLabels); got != "[1] 2 3 … 10" {
		t.Errorf("narrow labels = %q", got)
	}

	m.GoToPage(5)
	m.SetSearchTerm("x")
	m.Replace(makeCollection(10, "mon"))
	if st := m.State(); st.CurrentPage() != 1 || st.SearchTerm() != "" {
		t.Errorf("state after Replace = page %d, term %q", st.CurrentPage(), st.SearchTerm())
	}
	if v := m.View(); v.TotalCount != 10 {
		t.Errorf("count after Replace = %d", v.TotalCount)
	}
}
