package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"adaptive-quiz-service/internal/app"
	"adaptive-quiz-service/internal/domain"
	"adaptive-quiz-service/internal/llm"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const maxBodyBytes = 1 << 16

// Handler serves the REST quiz endpoints.
type Handler struct {
	service *app.QuizService
	logger  *log.Logger
}

func NewHandler(service *app.QuizService, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{service: service, logger: logger}
}

// NewRouter mounts the REST and websocket endpoints.
func NewRouter(h *Handler, ws *WSHandler, allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Route("/quiz", func(qr chi.Router) {
		// generation can take a while; answers and listings should not
		qr.Post("/start", h.Start)
		qr.Group(func(gr chi.Router) {
			gr.Use(middleware.Timeout(10 * time.Second))
			gr.Post("/answer", h.Answer)
			gr.Get("/results", h.Results)
		})
	})
	if ws != nil {
		r.Get("/ws", ws.ServeWS)
	}
	return r
}

type startRequest struct {
	Topic string `json:"topic"`
}

// answerRequest keeps answerIndex as a pointer so a missing index is a bad
// request instead of a silent answer of 0.
type answerRequest struct {
	SessionID   string `json:"sessionId"`
	QuestionID  string `json:"questionId"`
	AnswerIndex *int   `json:"answerIndex"`
}

type resultsResponse struct {
	Results []domain.QuizResult `json:"results"`
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}
	resp, err := h.service.Start(r.Context(), req.Topic)
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AnswerIndex == nil {
		writeErr(w, http.StatusBadRequest, domain.Invalid("answerIndex is required").Error())
		return
	}
	resp, err := h.service.SubmitAnswer(r.Context(), req.SessionID, req.QuestionID, *req.AnswerIndex)
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Results(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeErr(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	results, err := h.service.RecentResults(r.Context(), limit)
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resultsResponse{Results: results})
}

func (h *Handler) writeServiceErr(w http.ResponseWriter, err error) {
	status, msg := errorStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Printf("quiz request failed: %v", err)
	}
	writeErr(w, status, msg)
}

// errorStatus maps service errors to an HTTP status and a client message.
func errorStatus(err error) (int, string) {
	var (
		genErr      *domain.GenerationError
		rateErr     *llm.ErrRateLimit
		unavailable *llm.ErrProviderUnavailable
	)
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrQuestionMismatch):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrPoolExhausted):
		return http.StatusConflict, err.Error()
	case errors.As(err, &rateErr), errors.As(err, &unavailable):
		return http.StatusServiceUnavailable, "question generator is unavailable, try again later"
	case errors.As(err, &genErr):
		return http.StatusInternalServerError, "could not generate questions for this topic"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errResp struct {
	Error string `json:"error"`
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errResp{Error: msg})
}
