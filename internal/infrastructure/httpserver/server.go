// Package httpserver provides the HTTP server: chat API, transcript
// endpoints and the embedded chat UI.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/datadecoders/shopbot-go/internal/config"
	"github.com/datadecoders/shopbot-go/internal/domain/entities"
	"github.com/datadecoders/shopbot-go/internal/domain/ports"
	"github.com/datadecoders/shopbot-go/internal/domain/usecases"
)

const sessionCookie = "shopbot_session"

// Server is the HTTP server for the chat API and UI.
type Server struct {
	responder   *usecases.RespondUseCase
	index       *usecases.IndexUseCase
	transcripts ports.TranscriptStore
	cfg         config.ServerConfig
	historyLim  int
	log         zerolog.Logger
	now         func() time.Time
}

// NewServer creates the HTTP server.
func NewServer(
	responder *usecases.RespondUseCase,
	index *usecases.IndexUseCase,
	transcripts ports.TranscriptStore,
	cfg config.ServerConfig,
	historyLimit int,
	log zerolog.Logger,
) *Server {
	return &Server{
		responder:   responder,
		index:       index,
		transcripts: transcripts,
		cfg:         cfg,
		historyLim:  historyLimit,
		log:         log,
		now:         time.Now,
	}
}

// Router builds the chi handler with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: false,
	}).Handler)

	r.Get("/", s.handleIndex)
	r.Post("/api/chat", s.handleChat)
	r.Get("/api/history", s.handleHistory)
	r.Get("/api/sessions", s.handleSessions)
	r.Get("/api/health", s.handleHealth)

	return r
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Router(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.GracefulShutdown)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	s.log.Info().Str("addr", s.cfg.Addr).Msg("http server starting")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply  string  `json:"reply"`
	Source string  `json:"source"`
	Score  float64 `json:"score,omitempty"`
}

// handleChat runs one message through the pipeline and persists the turn.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result := s.responder.Respond(r.Context(), req.Message)

	sessionID := s.sessionID(w, r)
	// Persistence is best-effort: the reply was already computed and is
	// delivered regardless of what happens here.
	if err := s.transcripts.SaveTurn(r.Context(), sessionID, req.Message, result.Reply); err != nil {
		s.log.Warn().Err(err).Str("session", sessionID).Msg("saving chat turn failed")
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Reply:  result.Reply,
		Source: string(result.Source),
		Score:  result.Score,
	})
}

// handleHistory returns the caller's session transcript.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		writeJSON(w, http.StatusOK, []entities.ChatMessage{})
		return
	}

	messages, err := s.transcripts.History(r.Context(), cookie.Value, s.historyLim)
	if err != nil {
		s.log.Warn().Err(err).Msg("loading history failed")
		writeJSON(w, http.StatusOK, []entities.ChatMessage{})
		return
	}
	if messages == nil {
		messages = []entities.ChatMessage{}
	}
	writeJSON(w, http.StatusOK, messages)
}

// handleSessions lists all sessions for the admin view.
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.transcripts.Sessions(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "listing sessions failed"})
		return
	}
	if sessions == nil {
		sessions = []entities.SessionSummary{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

// handleHealth reports liveness and whether semantic search is up.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"semantic": s.index != nil && s.index.Available(),
	})
}

// sessionID returns the request's session ID, minting a cookie if absent.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
