package handler

import (
	"net"
	"net/http"
	"strconv"

	"github.com/spiritually/spiritually/internal/service"
)

// ChatHandler serves per-tradition chat turns.
type ChatHandler struct {
	chat    *service.ChatService
	limiter *service.RateLimiter
}

// NewChatHandler creates a new ChatHandler. limiter may be nil to disable
// rate limiting.
func NewChatHandler(chat *service.ChatService, limiter *service.RateLimiter) *ChatHandler {
	return &ChatHandler{chat: chat, limiter: limiter}
}

// HandleChat forwards a user message to the chat provider in the persona
// of the addressed tradition. No transcript is kept server-side.
// POST /chat/{type}/{id}
// Request:  {"message":"..."}
// Response: {"role":"assistant","content":"..."}
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	if h.limiter != nil && !h.limiter.Allow(chatKey(r)) {
		writeError(w, http.StatusTooManyRequests, "Too many chat requests. Please slow down.")
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	content, err := h.chat.Chat(r.Context(), r.PathValue("type"), r.PathValue("id"), req.Message)
	if err != nil {
		writeServiceError(w, "tradition chat", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"role":    "assistant",
		"content": content,
	})
}

// chatKey picks the rate-limit key: the authenticated user when present,
// the client IP otherwise.
func chatKey(r *http.Request) string {
	if user := UserFromContext(r.Context()); user != nil {
		return "user:" + strconv.FormatInt(user.ID, 10)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "ip:" + r.RemoteAddr
	}
	return "ip:" + host
}
