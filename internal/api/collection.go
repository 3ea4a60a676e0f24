package api

import (
	"context"
	"net/http"
)

func (s *Server) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.library.Snapshot())
}

// handleReloadCollection runs a full load and answers once it finishes.
// The load outlives a disconnecting client so the library is never left
// half-way through a reload.
func (s *Server) handleReloadCollection(w http.ResponseWriter, r *http.Request) {
	ctx := context.WithoutCancel(r.Context())
	if err := s.library.Reload(ctx); err != nil {
		s.logger.Error("reload failed", "error", err, "request_id", RequestIDFromContext(r.Context()))
		respondJSON(w, http.StatusBadGateway, s.library.Snapshot())
		return
	}
	respondJSON(w, http.StatusOK, s.library.Snapshot())
}
