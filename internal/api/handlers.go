package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/smartdev09/startup-perks/internal/models"
	"github.com/smartdev09/startup-perks/internal/query"
)

// Response helpers

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// Health handler

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":      "healthy",
		"instance_id": s.instanceID,
		"time":        time.Now().UTC().Format(time.RFC3339),
	})
}

// Perk handlers

// handleListPerks runs the composite filter pipeline from query parameters:
// q, categories (comma-separated), featured, value_range, sort. Unknown
// parameter values pass through without effect.
func (s *Server) handleListPerks(w http.ResponseWriter, r *http.Request) {
	opts := query.Options{
		SearchQuery:  r.URL.Query().Get("q"),
		FeaturedOnly: r.URL.Query().Get("featured") == "true",
		ValueRange:   query.ValueRange(r.URL.Query().Get("value_range")),
		SortBy:       query.SortKey(r.URL.Query().Get("sort")),
	}

	if raw := r.URL.Query().Get("categories"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if c, ok := models.ParseCategory(strings.TrimSpace(part)); ok {
				opts.Categories = append(opts.Categories, c)
			}
		}
	}

	perks := query.Filter(s.store.All(), opts)
	respondJSON(w, http.StatusOK, map[string]any{
		"perks": perks,
		"total": len(perks),
	})
}

func (s *Server) handleGetPerk(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	perk := s.store.ByID(id)
	if perk == nil {
		respondError(w, http.StatusNotFound, "not_found", "perk not found")
		return
	}

	respondJSON(w, http.StatusOK, perk)
}

// Category handlers

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories := s.store.CategorySummaries()
	respondJSON(w, http.StatusOK, map[string]any{
		"categories": categories,
		"total":      len(categories),
	})
}

func (s *Server) handleCategoryPerks(w http.ResponseWriter, r *http.Request) {
	c, ok := models.ParseCategory(chi.URLParam(r, "category"))
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "category not found")
		return
	}

	perks := s.store.ByCategory(c)
	respondJSON(w, http.StatusOK, map[string]any{
		"category": c,
		"label":    c.Label(),
		"perks":    perks,
		"total":    len(perks),
	})
}

// Featured and stats handlers

func (s *Server) handleFeatured(w http.ResponseWriter, r *http.Request) {
	perks := s.store.Featured()
	respondJSON(w, http.StatusOK, map[string]any{
		"perks": perks,
		"total": len(perks),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.Stats())
}
