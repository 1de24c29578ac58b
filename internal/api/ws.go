package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

const wsReplyTimeout = 10 * time.Second

// wsChatRequest is one inbound chat message on the websocket.
type wsChatRequest struct {
	Message          string `json:"message"`
	CompletedCourses []int  `json:"completed_courses"`
}

// handleChatSocket serves GET /ws/chat: a persistent chat session. Each
// inbound message gets exactly one reply, so clients can keep a conversation
// open without re-posting their completion history on every request.
func (s *Server) handleChatSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		slog.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	for {
		var req wsChatRequest
		if err := wsjson.Read(ctx, conn, &req); err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway || errors.Is(err, context.Canceled) {
				return
			}
			conn.Close(websocket.StatusInvalidFramePayloadData, "expected a JSON chat message")
			return
		}
		if req.Message == "" {
			writeCtx, cancel := context.WithTimeout(ctx, wsReplyTimeout)
			err = wsjson.Write(writeCtx, conn, envelope{Success: false, Error: "message is required"})
			cancel()
			if err != nil {
				return
			}
			continue
		}

		resp := s.assistant.Reply(req.Message, req.CompletedCourses)
		s.logEvent(r, "chat_message", map[string]any{"intent": resp.Intent, "transport": "websocket"})

		writeCtx, cancel := context.WithTimeout(ctx, wsReplyTimeout)
		err = wsjson.Write(writeCtx, conn, resp)
		cancel()
		if err != nil {
			return
		}
	}
}
