package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"grimm.is/langportal/internal/api"
	"grimm.is/langportal/internal/health"
	"grimm.is/langportal/internal/i18n"
	"grimm.is/langportal/internal/logging"
	"grimm.is/langportal/internal/models"
)

// Server serves the backend REST contract from a Provider.
type Server struct {
	p      api.Provider
	logger *logging.Logger
	router *mux.Router
	h      http.Handler
}

// NewServer routes every endpoint under prefix to p.
func NewServer(p api.Provider, prefix string, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{p: p, logger: logger, router: mux.NewRouter()}
	r := s.router.PathPrefix(prefix).Subrouter()

	// Dashboard
	r.HandleFunc("/dashboard/last_study_session", s.handle(func(ctx context.Context, _ *http.Request) (any, error) {
		return s.p.LastStudySession(ctx)
	})).Methods(http.MethodGet)
	r.HandleFunc("/dashboard/study_progress", s.handle(func(ctx context.Context, _ *http.Request) (any, error) {
		return s.p.StudyProgress(ctx)
	})).Methods(http.MethodGet)
	r.HandleFunc("/dashboard/quick-stats", s.handle(func(ctx context.Context, _ *http.Request) (any, error) {
		return s.p.QuickStats(ctx)
	})).Methods(http.MethodGet)

	// Study activities
	r.HandleFunc("/study_activities", s.handle(func(ctx context.Context, _ *http.Request) (any, error) {
		return s.p.StudyActivities(ctx)
	})).Methods(http.MethodGet)
	r.HandleFunc("/study_activities", s.handle(func(ctx context.Context, req *http.Request) (any, error) {
		var in models.LaunchInput
		if err := decodeBody(req, &in); err != nil {
			return nil, err
		}
		return s.p.LaunchStudyActivity(ctx, in.StudyActivityID, in.GroupID)
	})).Methods(http.MethodPost)
	r.HandleFunc("/study_activities/{id:[0-9]+}", s.handle(func(ctx context.Context, req *http.Request) (any, error) {
		return s.p.StudyActivity(ctx, pathID(req, "id"))
	})).Methods(http.MethodGet)
	r.HandleFunc("/study_activities/{id:[0-9]+}/study_sessions", s.handle(func(ctx context.Context, req *http.Request) (any, error) {
		return s.p.StudyActivitySessions(ctx, pathID(req, "id"), page(req))
	})).Methods(http.MethodGet)

	// Words
	r.HandleFunc("/words", s.handle(func(ctx context.Context, req *http.Request) (any, error) {
		return s.p.Words(ctx, page(req))
	})).Methods(http.MethodGet)
	r.HandleFunc("/words", s.handle(func(ctx context.Context, req *http.Request) (any, error) {
		var in models.WordInput
		if err := decodeBody(req, &in); err != nil {
			return nil, err
		}
		return s.p.CreateWord(ctx, in)
	})).Methods(http.MethodPost)
	r.HandleFunc("/words/{id:[0-9]+}", s.handle(func(ctx context.Context, req *http.Request) (any, error) {
		return s.p.Word(ctx, pathID(req, "id"))
	})).Methods(http.MethodGet)
	r.HandleFunc("/words/{id:[0-9]+}", s.handle(func(ctx context.Context, req *http.Request) (any, error) {
		var in models.WordInput
		if err := decodeBody(req, &in); err != nil {
			return nil, err
		}
		return s.p.UpdateWord(ctx, pathID(req, "id"), in)
	})).Methods(http.MethodPut)
	r.HandleFunc("/words/{id:[0-9]+}", s.handle(func(ctx context.Context, req *http.Request) (any, error) {
		return success, s.p.DeleteWord(ctx, pathID(req, "id"))
	})).Methods(http.MethodDelete)

	// Groups
	r.HandleFunc("/groups", s.handle(func(ctx context.Context, req *http.Request) (any, error) {
		return s.p.Groups(ctx, page(req))
	})).Methods(http.MethodGet)
	r.HandleFunc("/groups", s.handle(func(ctx context.Context, req *http.Request) (any, error) {
		var in models.GroupInput
		if err := decodeBody(req, &in); err != nil {
			return nil, err
		}
		return s.p.CreateGroup(ctx, in)
	})).Methods(http.MethodPost)
	r.HandleFunc("/groups/{id:[0-9]+}", s.handle(func(ctx context.Context, req *http.Request) (any, error) {
		return s.p.Group(ctx, pathID(req, "id"))
	})).Methods(http.MethodGet)
	r.HandleFunc("/groups/{id:[0-9]+}", s.handle(func(ctx context.Context, req *http.Request) (any, error) {
		var in models.GroupInput
		if err := decodeBody(req, &in); err != nil {
			return nil, err
		}
		return s.p.UpdateGroup(ctx, pathID(req, "id"), in)
	})).Methods(http.MethodPut)
	r.HandleFunc("/groups/{id:[0-9]+}", s.handle(func(ctx context.Context, req *http.Request) (any, error) {
		return success, s.p.DeleteGroup(ctx, pathID(req, "id"))
	})).Methods(http.MethodDelete)
	r.HandleFunc("/groups/{id:[0-9]+}/words", s.handle(func(ctx context.Context, req *http.Request) (any, error) {
		return s.p.GroupWords(ctx, pathID(req, "id"), page(req))
	})).Methods(http.MethodGet)
	r.HandleFunc("/groups/{id:[0-9]+}/words", s.handle(func(ctx context.Context, req *http.Request) (any, error) {
		var ids []int
		if err := decodeBody(req, &ids); err != nil {
			return nil, err
		}
		return success, s.p.AddWordsToGroup(ctx, pathID(req, "id"), ids)
	})).Methods(http.MethodPost)
	r.HandleFunc("/groups/{id:[0-9]+}/words/{word:[0-9]+}", s.handle(func(ctx context.Context, req *http.Request) (any, error) {
		return success, s.p.RemoveWordFromGroup(ctx, pathID(req, "id"), pathID(req, "word"))
	})).Methods(http.MethodDelete)
	r.HandleFunc("/groups/{id:[0-9]+}/study_sessions", s.handle(func(ctx context.Context, req *http.Request) (any, error) {
		return s.p.GroupStudySessions(ctx, pathID(req, "id"), page(req))
	})).Methods(http.MethodGet)

	// Study sessions
	r.HandleFunc("/study_sessions", s.handle(func(ctx context.Context, req *http.Request) (any, error) {
		return s.p.StudySessions(ctx, page(req))
	})).Methods(http.MethodGet)
	r.HandleFunc("/study_sessions/{id:[0-9]+}", s.handle(func(ctx context.Context, req *http.Request) (any, error) {
		return s.p.StudySession(ctx, pathID(req, "id"))
	})).Methods(http.MethodGet)
	r.HandleFunc("/study_sessions/{id:[0-9]+}/words", s.handle(func(ctx context.Context, req *http.Request) (any, error) {
		return s.p.StudySessionWords(ctx, pathID(req, "id"), page(req))
	})).Methods(http.MethodGet)
	r.HandleFunc("/study_sessions/{id:[0-9]+}/reset", s.handle(func(ctx context.Context, req *http.Request) (any, error) {
		return s.p.ResetStudySession(ctx, pathID(req, "id"))
	})).Methods(http.MethodPost)
	r.HandleFunc("/study_sessions/{id:[0-9]+}/submit", s.handle(func(ctx context.Context, req *http.Request) (any, error) {
		var in models.ReviewInput
		if err := decodeBody(req, &in); err != nil {
			return nil, err
		}
		return s.p.SubmitReview(ctx, pathID(req, "id"), in)
	})).Methods(http.MethodPost)

	// Settings
	r.HandleFunc("/reset_history", s.handle(func(ctx context.Context, _ *http.Request) (any, error) {
		return s.p.ResetHistory(ctx)
	})).Methods(http.MethodPost)
	r.HandleFunc("/full_reset", s.handle(func(ctx context.Context, _ *http.Request) (any, error) {
		return s.p.ResetFull(ctx)
	})).Methods(http.MethodPost)

	checker := health.NewChecker()
	checker.Register("store", health.Probe(health.StatusUnhealthy, "data set loaded", func(ctx context.Context) error {
		_, err := s.p.StudyActivities(ctx)
		return err
	}))
	s.router.HandleFunc("/healthz", checker.Handler()).Methods(http.MethodGet)
	s.router.HandleFunc("/livez", health.LivenessHandler()).Methods(http.MethodGet)
	s.router.HandleFunc("/readyz", checker.ReadinessHandler()).Methods(http.MethodGet)

	noRoute := func(status int) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := i18n.GetPrinter(r.Context())
			sendError(w, status, p.Sprintf(i18n.MsgNoRoute, r.Method, r.URL.Path))
		})
	}
	s.router.NotFoundHandler = noRoute(http.StatusNotFound)
	s.router.MethodNotAllowedHandler = noRoute(http.StatusMethodNotAllowed)
	s.h = corsMiddleware(i18n.Middleware(s.router))
	return s
}

var success = models.ResetResult{Success: true}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.h.ServeHTTP(w, r)
}

// handle adapts a provider call to a handler. Unknown ids answer 404 and
// every other failure 400, both with an {"error": message} body.
func (s *Server) handle(fn func(ctx context.Context, r *http.Request) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := fn(r.Context(), r)
		if err != nil {
			status := http.StatusBadRequest
			msg := err.Error()
			var nf *api.NotFoundError
			if errors.As(err, &nf) {
				status = http.StatusNotFound
				msg = i18n.GetPrinter(r.Context()).Sprintf(i18n.MsgNotFound, nf.Kind, nf.ID)
			}
			s.logger.Debug("request failed", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
			sendError(w, status, msg)
			return
		}
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path)
		sendJSON(w, http.StatusOK, v)
	}
}

func sendJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, status int, msg string) {
	sendJSON(w, status, map[string]string{"error": msg})
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func pathID(r *http.Request, name string) int {
	id, _ := strconv.Atoi(mux.Vars(r)[name])
	return id
}

func page(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept-Language")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
