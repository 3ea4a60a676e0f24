package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/meur/dexview/internal/models"
)

// clientCookie identifies a browser across requests for its preferences
const clientCookie = "dexview_client"

// clientID returns the caller's id, issuing a new cookie on first contact.
func clientID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(clientCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}
	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     clientCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.store.PreferencesOrDefault(clientID(w, r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, prefs)
}

func (s *Server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	id := clientID(w, r)

	var req models.PreferencesUpdate
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Dark == nil {
		respondError(w, http.StatusBadRequest, "dark is required")
		return
	}

	prefs, err := s.store.SetDark(id, *req.Dark)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, prefs)
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.store.ToggleTheme(clientID(w, r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, prefs)
}
