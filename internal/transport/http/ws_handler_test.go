package http

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestWebSocketQuizFlow(t *testing.T) {
	server := newTestServer(t, cannedProvider())
	conn := dialWS(t, server)

	send(t, conn, "start", map[string]any{"topic": "Part III"})
	typ, payload := readNext(conn, t, "question")
	if typ != "question" {
		t.Fatalf("expected question, got %s", typ)
	}
	sessionID, _ := payload["sessionId"].(string)
	if sessionID == "" {
		t.Fatalf("expected session id in %v", payload)
	}
	question := payload["question"].(map[string]any)
	if question["difficulty"] != "easy" {
		t.Fatalf("expected easy first question, got %v", question)
	}
	if _, leaked := question["correctAnswerIndex"]; leaked {
		t.Fatalf("question leaked the answer: %v", question)
	}

	// sessionId omitted: the connection remembers the started session
	questionID := question["id"].(string)
	for i := 0; i < 5; i++ {
		send(t, conn, "answer", map[string]any{"questionId": questionID, "answerIndex": 0})
		_, payload = readNext(conn, t, "answerResult")
		if _, ok := payload["result"].(map[string]any)["correctAnswerIndex"]; !ok {
			t.Fatalf("result must reveal the answer: %v", payload)
		}
		if i < 4 {
			questionID = payload["question"].(map[string]any)["id"].(string)
		}
	}
	if payload["quizOver"] != true {
		t.Fatalf("expected quiz over after five answers, got %v", payload)
	}

	send(t, conn, "answer", map[string]any{"sessionId": sessionID, "questionId": questionID, "answerIndex": 0})
	_, payload = readNext(conn, t, "error")
	if payload["status"] != float64(404) {
		t.Fatalf("expected not found after quiz over, got %v", payload)
	}
}

func TestWebSocketRejectsBadMessages(t *testing.T) {
	server := newTestServer(t, cannedProvider())
	conn := dialWS(t, server)

	send(t, conn, "shout", map[string]any{})
	typ, _ := readNext(conn, t, "error")
	if typ != "error" {
		t.Fatalf("expected error, got %s", typ)
	}

	send(t, conn, "answer", map[string]any{"questionId": "e0"})
	_, payload := readNext(conn, t, "error")
	if payload["status"] != float64(400) {
		t.Fatalf("expected 400 for missing answerIndex, got %v", payload)
	}

	send(t, conn, "start", map[string]any{"topic": ""})
	_, payload = readNext(conn, t, "error")
	if payload["status"] != float64(400) {
		t.Fatalf("expected 400 for empty topic, got %v", payload)
	}
}

func dialWS(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	u := "ws" + server.URL[len("http"):] + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	if err := conn.WriteJSON(map[string]any{"type": typ, "payload": payload}); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

func readNext(conn *websocket.Conn, t *testing.T, expect string) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s (%v)", expect, msg.Type, msg.Payload)
	}
	return msg.Type, msg.Payload
}
