package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"derrclan.com/ayah-printer/internal/ayah"
	"derrclan.com/ayah-printer/internal/domain/entities"
	"derrclan.com/ayah-printer/internal/infra/sqlite/repository"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// handleHistory lists the most recent printed outputs.
// Accepts a "limit" query parameter, 20 by default and at most 100.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	entries, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error("failed to list history", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleHistoryEntry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	entry, err := s.history.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrHistoryNotFound) {
			writeError(w, http.StatusNotFound, "history entry not found")
			return
		}
		s.logger.Error("failed to get history entry", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// handleJournal handles GET and POST requests for reflections.
func (s *Server) handleJournal(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleGetJournal(w, r)
	case http.MethodPost:
		s.handlePostJournal(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleGetJournal retrieves the reflection for the "date" query parameter
// (YYYY-MM-DD). Defaults to today if not provided.
func (s *Server) handleGetJournal(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = s.today()
	}
	if !validDate(date) {
		writeError(w, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
		return
	}

	entry, err := s.journal.Get(r.Context(), date)
	if err != nil {
		s.logger.Error("failed to get journal entry", zap.String("date", date), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handlePostJournal(w http.ResponseWriter, r *http.Request) {
	var entry entities.JournalEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		s.logger.Debug("failed to decode journal entry", zap.Error(err))
		writeError(w, http.StatusBadRequest, "Bad request")
		return
	}
	if entry.Date == "" {
		entry.Date = s.today()
	}
	if !validDate(entry.Date) {
		writeError(w, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
		return
	}

	if err := s.journal.Save(r.Context(), &entry); err != nil {
		s.logger.Error("failed to save journal entry", zap.String("date", entry.Date), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to save data")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// shareRequest selects an ayah the same way /api/ayah does and names who
// receives it.
type shareRequest struct {
	Recipient string `json:"recipient"`
	Surah     string `json:"surah"`
	Ayah      string `json:"ayah"`
	Mode      string `json:"mode"`
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	if s.mailer == nil {
		writeError(w, http.StatusServiceUnavailable, "e-mail sharing is not configured")
		return
	}

	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Bad request")
		return
	}
	req.Recipient = strings.TrimSpace(req.Recipient)
	if req.Recipient == "" {
		writeError(w, http.StatusBadRequest, "recipient is required")
		return
	}

	res, mode, err := s.printMode(r.Context(), entities.Mode(req.Mode), req.Surah, req.Ayah)
	if err != nil {
		s.writePrintError(w, err, mode)
		return
	}

	subject := ayah.SurahTitle(res.Chapter.Name) + ", Ayah " + res.AyahLabel()
	if err := s.mailer.Send(r.Context(), req.Recipient, subject, ayah.Format(res, ayah.HTMLRenderer{})); err != nil {
		s.logger.Error("failed to share ayah", zap.Error(err))
		writeError(w, http.StatusBadGateway, "Failed to send e-mail. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "sent", "history_id": res.HistoryID})
}
