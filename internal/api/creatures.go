package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/meur/dexview/internal/catalog"
	"github.com/meur/dexview/internal/detail"
	"github.com/meur/dexview/internal/models"
	"github.com/meur/dexview/internal/pokeapi"
)

// statBar is a base stat with its display label and bar width
type statBar struct {
	Name      string  `json:"name"`
	Label     string  `json:"label"`
	BaseValue int     `json:"base_value"`
	Percent   float64 `json:"percent"`
}

// typeTag is a type name with its badge color
type typeTag struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// creatureDetail is the detail page payload: the record plus values derived for display
type creatureDetail struct {
	*models.Creature
	DisplayName     string    `json:"display_name"`
	HeightMeters    float64   `json:"height_m"`
	WeightKilograms float64   `json:"weight_kg"`
	TypeTags        []typeTag `json:"type_tags"`
	StatBars        []statBar `json:"stat_bars"`
	HasCry          bool      `json:"has_cry"`
}

func newCreatureDetail(c *models.Creature) creatureDetail {
	d := creatureDetail{
		Creature:        c,
		DisplayName:     models.DisplayName(c.Name),
		HeightMeters:    c.HeightMeters(),
		WeightKilograms: c.WeightKilograms(),
		TypeTags:        make([]typeTag, 0, len(c.Types)),
		StatBars:        make([]statBar, 0, len(c.Stats)),
		HasCry:          c.HasCry(),
	}
	for _, t := range c.Types {
		d.TypeTags = append(d.TypeTags, typeTag{Name: t.Name, Color: models.TypeColor(t.Name)})
	}
	for _, st := range c.Stats {
		d.StatBars = append(d.StatBars, statBar{
			Name:      st.Name,
			Label:     models.DisplayName(st.Name),
			BaseValue: st.BaseValue,
			Percent:   st.Percent(),
		})
	}
	return d
}

// handleListCreatures derives one page of the filtered collection.
// Query: q (search term), page, and either narrow=true or width (pixels)
// to pick the page selector window.
func (s *Server) handleListCreatures(w http.ResponseWriter, r *http.Request) {
	coll, err := s.library.Collection()
	if err != nil {
		s.respondCollectionError(w, err)
		return
	}

	q := r.URL.Query()
	page := 1
	if p := q.Get("page"); p != "" {
		page, err = strconv.Atoi(p)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid page")
			return
		}
	}

	m := catalog.NewListModel(coll, catalog.Options{
		PageSize:       s.view.PageSize,
		MaxPageButtons: s.pageButtons(r),
	})
	m.SetSearchTerm(q.Get("q"))
	view, _ := m.GoToPage(page)

	respondJSON(w, http.StatusOK, view)
}

// pageButtons picks the page selector window from the narrow or width hints.
func (s *Server) pageButtons(r *http.Request) int {
	q := r.URL.Query()
	if narrow, err := strconv.ParseBool(q.Get("narrow")); err == nil {
		if narrow {
			return catalog.NarrowPageButtons
		}
		return catalog.WidePageButtons
	}
	if width, err := strconv.Atoi(q.Get("width")); err == nil {
		return catalog.MaxPageButtons(width, s.view.NarrowWidth)
	}
	return catalog.WidePageButtons
}

func (s *Server) handleGetCreature(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid creature ID")
		return
	}

	c, err := s.details.LoadOne(r.Context(), id)
	switch {
	case err == nil:
	case errors.Is(err, detail.ErrInvalidID):
		respondError(w, http.StatusBadRequest, "Invalid creature ID")
		return
	case errors.Is(err, pokeapi.ErrNotFound):
		respondError(w, http.StatusNotFound, "Pokemon not found")
		return
	default:
		respondError(w, http.StatusBadGateway, "Failed to fetch Pokemon details")
		return
	}

	respondJSON(w, http.StatusOK, newCreatureDetail(c))
}

// respondCollectionError maps a Library error onto a status code.
func (s *Server) respondCollectionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotLoaded):
		respondError(w, http.StatusServiceUnavailable, "Pokemon data is still loading")
	case errors.Is(err, catalog.ErrFetchFailed):
		respondError(w, http.StatusBadGateway, "Failed to fetch Pokemon data")
	default:
		s.logger.Error("collection unavailable", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error")
	}
}
