package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/chrismlittle123/finchly/core"
	"github.com/chrismlittle123/finchly/storage"
	"github.com/go-chi/chi/v5"
)

// linkResponse is the wire representation of a stored link. IDs are
// rendered as decimal strings since they don't fit in a JSON number.
type linkResponse struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Source      string    `json:"source"`
	Enriched    bool      `json:"enriched"`
	CreatedAt   time.Time `json:"created_at"`
}

func toLinkResponse(link *core.Link) *linkResponse {
	return &linkResponse{
		ID:          strconv.FormatUint(uint64(link.Id), 10),
		URL:         link.URL,
		Title:       link.Title,
		Description: link.Description,
		Summary:     link.Summary,
		Tags:        link.Tags,
		ImageURL:    link.ImageURL,
		Source:      link.Source.String(),
		Enriched:    link.Enriched(),
		CreatedAt:   link.CreatedAt,
	}
}

type matchResponse struct {
	*linkResponse
	Similarity float32 `json:"similarity"`
}

func toMatchResponses(matches []*core.RetrievalMatch) []*matchResponse {
	out := make([]*matchResponse, len(matches))
	for i, m := range matches {
		out[i] = &matchResponse{linkResponse: toLinkResponse(m.Link), Similarity: m.Similarity}
	}
	return out
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListLinks(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	links, err := s.repository.RecentLinks(r.Context(), limit)
	if err != nil {
		s.logger.Error("list links failed", "err", err)
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]*linkResponse, len(links))
	for i, link := range links {
		out[i] = toLinkResponse(link)
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"links": out})
}

func (s *Server) handleCreateLink(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	link := &core.Link{URL: req.URL}
	link.Source = core.DetectSourceKind(req.URL)

	inserted, err := s.repository.InsertIfAbsent(r.Context(), link)
	if err != nil {
		if errors.Is(err, core.ErrInvalidLink) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("create link failed", "url", req.URL, "err", err)
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !inserted {
		s.respondError(w, http.StatusConflict, "link already saved")
		return
	}

	// Enrichment runs in the background; the response carries the bare link
	s.pipeline.Submit(link.URL)

	s.respondJSON(w, http.StatusCreated, toLinkResponse(link))
}

func (s *Server) handleGetLink(w http.ResponseWriter, r *http.Request) {
	id, err := parseLinkID(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid link id")
		return
	}

	link, err := s.repository.GetLink(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "link not found")
			return
		}
		s.logger.Error("get link failed", "id", id, "err", err)
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, toLinkResponse(link))
}

func (s *Server) handleDeleteLink(w http.ResponseWriter, r *http.Request) {
	id, err := parseLinkID(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid link id")
		return
	}

	if err := s.repository.DeleteLinks(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "link not found")
			return
		}
		s.logger.Error("delete link failed", "id", id, "err", err)
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Query     string  `json:"query"`
		Limit     int     `json:"limit"`
		Threshold float32 `json:"threshold"`
	}{Limit: 5, Threshold: 0.3}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		s.respondError(w, http.StatusBadRequest, "query is required")
		return
	}
	if req.Limit < 1 || req.Threshold < 0 || req.Threshold > 1 {
		s.respondError(w, http.StatusBadRequest, "invalid limit or threshold")
		return
	}

	matches, err := s.searcher.Search(r.Context(), req.Query, req.Limit, req.Threshold)
	if err != nil {
		s.logger.Error("search failed", "query", req.Query, "err", err)
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"results": toMatchResponses(matches)})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Question == "" {
		s.respondError(w, http.StatusBadRequest, "question is required")
		return
	}

	answer, err := s.rag.Ask(r.Context(), req.Question)
	if err != nil {
		s.logger.Error("ask failed", "question", req.Question, "err", err)
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"answer":  answer.Answer,
		"sources": toMatchResponses(answer.Sources),
	})
}

func parseLinkID(raw string) (core.ID, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	return core.ID(id), err
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("error encoding response", "err", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]any{"error": message})
}
