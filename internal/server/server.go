package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"go.uber.org/zap"

	"derrclan.com/ayah-printer/internal/ayah"
	"derrclan.com/ayah-printer/internal/domain/entities"
)

//go:embed web
var web embed.FS

var errUnknownMode = errors.New("unknown mode")

// Printer produces formatted ayat.
type Printer interface {
	Print(ctx context.Context, sel entities.Selection) (*ayah.Result, error)
	Random(ctx context.Context) (*ayah.Result, error)
	Today(ctx context.Context) (*ayah.Result, error)
}

// HistoryStore reads the printing history.
type HistoryStore interface {
	Recent(ctx context.Context, limit int) ([]entities.HistoryEntry, error)
	Get(ctx context.Context, id string) (*entities.HistoryEntry, error)
}

// JournalStore keeps daily reflections.
type JournalStore interface {
	Get(ctx context.Context, date string) (*entities.JournalEntry, error)
	Save(ctx context.Context, entry *entities.JournalEntry) error
}

// Mailer sends HTML e-mail.
type Mailer interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// Server serves the form page, the formatted partials and the JSON API.
type Server struct {
	printer Printer
	history HistoryStore
	journal JournalStore
	mailer  Mailer
	logger  *zap.Logger
	tmpl    *template.Template
	now     func() time.Time
}

// New parses the embedded templates. mailer may be nil, which disables
// sharing.
func New(printer Printer, history HistoryStore, journal JournalStore, mailer Mailer, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	funcMap := template.FuncMap{
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
	}
	tmpl, err := template.New("").Funcs(funcMap).ParseFS(web, "web/*.html", "web/*.gotmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Server{
		printer: printer,
		history: history,
		journal: journal,
		mailer:  mailer,
		logger:  logger,
		tmpl:    tmpl,
		now:     time.Now,
	}, nil
}

func (s *Server) Muxer() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("GET /ayah", s.handleAyah)
	mux.HandleFunc("GET /ayah/random", s.handleRandom)
	mux.HandleFunc("GET /ayah/today", s.handleToday)

	mux.HandleFunc("GET /api/ayah", s.handleAPIAyah)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("GET /api/history/{id}", s.handleHistoryEntry)
	mux.HandleFunc("/api/journal", s.handleJournal)
	mux.HandleFunc("POST /api/share", s.handleShare)

	// Create a subdirectory filesystem for the web directory
	webFS, err := fs.Sub(web, "web")
	if err != nil {
		s.logger.Error("failed to create web subdirectory filesystem", zap.Error(err))
	} else {
		mux.Handle("/web/", http.StripPrefix("/web/", http.FileServer(http.FS(webFS))))
	}

	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	// Only handle root path
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	today := s.today()
	entry, err := s.journal.Get(r.Context(), today)
	if err != nil {
		s.logger.Warn("failed to load journal entry", zap.String("date", today), zap.Error(err))
		entry = &entities.JournalEntry{Date: today}
	}

	data := map[string]any{
		"date":    today,
		"journal": entry,
	}

	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.Error("failed to execute template", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}

// handleAyah renders the output partial for an explicit selection (for HTMX).
func (s *Server) handleAyah(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sel := entities.Selection{
		Chapter: q.Get("surah"),
		Ayah:    q.Get("ayah"),
		Mode:    entities.ModeExplicit,
	}
	res, err := s.printer.Print(r.Context(), sel)
	s.renderAyah(w, res, err, sel.Mode)
}

func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	res, err := s.printer.Random(r.Context())
	s.renderAyah(w, res, err, entities.ModeRandom)
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	res, err := s.printer.Today(r.Context())
	s.renderAyah(w, res, err, entities.ModeDaily)
}

func (s *Server) renderAyah(w http.ResponseWriter, res *ayah.Result, err error, mode entities.Mode) {
	data := map[string]any{
		"shareEnabled": s.mailer != nil,
	}

	if err != nil {
		s.logFailure(err, mode)
		w.WriteHeader(statusFor(err))
		data["error"] = ayah.UserMessage(err, mode)
	} else {
		data["result"] = res
		data["html"] = ayah.Format(res, ayah.HTMLRenderer{})
	}

	if err := s.tmpl.ExecuteTemplate(w, "ayah.gotmpl", data); err != nil {
		s.logger.Error("failed to execute ayah template", zap.Error(err))
	}
}

// ayahResponse is the JSON form of a printed ayah.
type ayahResponse struct {
	Result *ayah.Result `json:"result"`
	Text   string       `json:"text"`
	HTML   string       `json:"html"`
}

func (s *Server) handleAPIAyah(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := entities.Mode(q.Get("mode"))

	res, mode, err := s.printMode(r.Context(), mode, q.Get("surah"), q.Get("ayah"))
	if err != nil {
		s.writePrintError(w, err, mode)
		return
	}

	writeJSON(w, http.StatusOK, ayahResponse{
		Result: res,
		Text:   ayah.Format(res, ayah.TextRenderer{}),
		HTML:   ayah.Format(res, ayah.HTMLRenderer{}),
	})
}

// printMode dispatches on mode. An empty mode is explicit; surah and
// ayahSpec are ignored for the other modes.
func (s *Server) printMode(ctx context.Context, mode entities.Mode, surah, ayahSpec string) (*ayah.Result, entities.Mode, error) {
	switch mode {
	case entities.ModeRandom:
		res, err := s.printer.Random(ctx)
		return res, mode, err
	case entities.ModeDaily:
		res, err := s.printer.Today(ctx)
		return res, mode, err
	case "", entities.ModeExplicit:
		res, err := s.printer.Print(ctx, entities.Selection{
			Chapter: surah,
			Ayah:    ayahSpec,
			Mode:    entities.ModeExplicit,
		})
		return res, entities.ModeExplicit, err
	default:
		return nil, mode, errUnknownMode
	}
}

func (s *Server) writePrintError(w http.ResponseWriter, err error, mode entities.Mode) {
	if errors.Is(err, errUnknownMode) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown mode %q", mode))
		return
	}
	s.logFailure(err, mode)
	writeError(w, statusFor(err), ayah.UserMessage(err, mode))
}

// logFailure logs remote and internal failures. Validation errors are the
// user's input and only reach the response.
func (s *Server) logFailure(err error, mode entities.Mode) {
	if ayah.IsValidation(err) {
		return
	}
	s.logger.Error("failed to print ayah", zap.String("mode", string(mode)), zap.Error(err))
}

func (s *Server) today() string {
	return s.now().Format("2006-01-02")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
