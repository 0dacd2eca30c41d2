package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/chrismlittle123/finchly/chat"
	"github.com/chrismlittle123/finchly/core"
)

// handleEvents receives chat platform webhooks. The platform expects a
// response within a few seconds, so enrichment is always backgrounded.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "could not read body")
		return
	}

	if !chat.VerifySignature(
		s.config.SigningSecret,
		r.Header.Get("X-Slack-Signature"),
		r.Header.Get("X-Slack-Request-Timestamp"),
		body,
	) {
		s.respondError(w, http.StatusUnauthorized, "invalid signature")
		return
	}

	var payload chat.Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if payload.Type == chat.TypeURLVerification {
		s.respondJSON(w, http.StatusOK, map[string]string{"challenge": payload.Challenge})
		return
	}

	for _, saved := range chat.ExtractSavedURLs(&payload) {
		if s.config.ChannelID != "" && saved.ChannelID != s.config.ChannelID {
			continue
		}

		link := &core.Link{
			URL:       saved.URL,
			Source:    core.DetectSourceKind(saved.URL),
			ChannelID: saved.ChannelID,
			UserID:    saved.UserID,
			MessageTS: saved.MessageTS,
		}

		inserted, err := s.repository.InsertIfAbsent(r.Context(), link)
		if err != nil {
			s.logger.Warn("could not save shared link", "url", saved.URL, "err", err)
			continue
		}
		if inserted {
			s.pipeline.Submit(saved.URL)
		}
	}

	// Always acknowledge; the platform retries non-200 responses
	s.respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
