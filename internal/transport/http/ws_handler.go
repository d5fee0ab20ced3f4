package http

import (
	"encoding/json"
	"log"
	"net/http"

	"adaptive-quiz-service/internal/app"
	"adaptive-quiz-service/internal/domain"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	service  *app.QuizService
	logger   *log.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, logger *log.Logger) *WSHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &WSHandler{
		service: service,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// wsAnswerPayload may omit sessionId to answer in the session last started
// on this connection.
type wsAnswerPayload struct {
	SessionID   string `json:"sessionId"`
	QuestionID  string `json:"questionId"`
	AnswerIndex *int   `json:"answerIndex"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// ServeWS upgrades the request and runs start/answer messages against the
// quiz service until the client disconnects.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxBodyBytes)

	send := make(chan outboundMessage, 16)
	writerDone := make(chan struct{})

	// single writer; gorilla connections allow one concurrent writer
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	fail := func(status int, msg string) {
		send <- outboundMessage{Type: "error", Payload: errorPayload{Message: msg, Status: status}}
	}
	failErr := func(err error) {
		status, msg := errorStatus(err)
		if status >= http.StatusInternalServerError {
			h.logger.Printf("ws quiz request failed: %v", err)
		}
		fail(status, msg)
	}

	var currentSession string
	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "start":
			var payload startRequest
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				fail(http.StatusBadRequest, "invalid start payload")
				continue
			}
			resp, err := h.service.Start(r.Context(), payload.Topic)
			if err != nil {
				failErr(err)
				continue
			}
			currentSession = resp.SessionID
			send <- outboundMessage{Type: "question", Payload: resp}
		case "answer":
			var payload wsAnswerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				fail(http.StatusBadRequest, "invalid answer payload")
				continue
			}
			if payload.AnswerIndex == nil {
				failErr(domain.Invalid("answerIndex is required"))
				continue
			}
			if payload.SessionID == "" {
				payload.SessionID = currentSession
			}
			resp, err := h.service.SubmitAnswer(r.Context(), payload.SessionID, payload.QuestionID, *payload.AnswerIndex)
			if err != nil {
				failErr(err)
				continue
			}
			if resp.QuizOver && payload.SessionID == currentSession {
				currentSession = ""
			}
			send <- outboundMessage{Type: "answerResult", Payload: resp}
		default:
			fail(http.StatusBadRequest, "unsupported message type")
		}
	}

	close(send)
	<-writerDone
}
