package chat

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/zhouzirui/warmline/backend/internal/service/classifier"
	chatservice "github.com/zhouzirui/warmline/backend/internal/service/chat"
	"github.com/zhouzirui/warmline/backend/internal/service/turn"
)

// WebSocketHandler WebSocket聊天处理器。每个连接绑定一个会话，
// 消息按到达顺序逐轮处理，同一连接内不存在并发轮次。
type WebSocketHandler struct {
	chatSvc  *chatservice.Service
	turnSvc  *turn.Service
	upgrader websocket.Upgrader
}

// NewWebSocketHandler 创建WebSocket处理器
func NewWebSocketHandler(chatSvc *chatservice.Service, turnSvc *turn.Service) *WebSocketHandler {
	return &WebSocketHandler{
		chatSvc: chatSvc,
		turnSvc: turnSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterWebSocketRoutes 注册WebSocket路由
func (h *WebSocketHandler) RegisterWebSocketRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

type inboundMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type outboundMessage struct {
	Event  string       `json:"event"`
	Error  string       `json:"error,omitempty"`
	Result *turn.Result `json:"result,omitempty"`
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if _, err := h.chatSvc.GetSession(r.Context(), sessionID); err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for session=%s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	log.Printf("[ws] connection opened for session=%s", sessionID)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] read failed for session=%s: %v", sessionID, err)
			}
			return
		}

		if inbound.Type != "message" {
			h.writeJSON(conn, sessionID, outboundMessage{Event: "error", Error: "unsupported message type"})
			continue
		}

		result, err := h.turnSvc.Process(r.Context(), sessionID, inbound.Text)
		if err != nil {
			if errors.Is(err, classifier.ErrEmptyInput) {
				h.writeJSON(conn, sessionID, outboundMessage{Event: "error", Error: err.Error()})
				continue
			}
			h.writeJSON(conn, sessionID, outboundMessage{Event: "error", Error: "turn processing failed"})
			continue
		}

		h.writeJSON(conn, sessionID, outboundMessage{Event: "reply", Result: &result})
	}
}

func (h *WebSocketHandler) writeJSON(conn *websocket.Conn, sessionID string, msg outboundMessage) {
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("[ws] write failed for session=%s: %v", sessionID, err)
	}
}
