package handler

import (
	"net/http"

	"github.com/spiritually/spiritually/internal/domain"
	"github.com/spiritually/spiritually/internal/service"
)

// Options tunes route registration.
type Options struct {
	// ChatRequiresAuth gates POST /chat behind authentication. Off by
	// default; some deployments want chat limited to account holders.
	ChatRequiresAuth bool
	// ChatLimiter rate limits chat turns per client. Nil disables it.
	ChatLimiter *service.RateLimiter
}

// RegisterRoutes sets up all HTTP routes on the given mux. The collection
// routes are derived from domain.Collections so every tradition type is
// wired identically.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, knowledge *service.KnowledgeService, chat *service.ChatService, opts Options) {
	authH := NewAuthHandler(auth)
	knowledgeH := NewKnowledgeHandler(knowledge)
	chatH := NewChatHandler(chat, opts.ChatLimiter)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("POST /auth/register", authH.HandleRegister)
	mux.HandleFunc("POST /auth/login", authH.HandleLogin)
	mux.Handle("GET /auth/profile", RequireAuth(auth, http.HandlerFunc(authH.HandleProfile)))
	mux.Handle("PUT /auth/profile", RequireAuth(auth, http.HandlerFunc(authH.HandleUpdateProfile)))
	mux.Handle("POST /auth/password", RequireAuth(auth, http.HandlerFunc(authH.HandleChangePassword)))
	mux.Handle("GET /auth/readings", RequireAuth(auth, http.HandlerFunc(authH.HandleReadings)))
	mux.Handle("POST /auth/readings", RequireAuth(auth, http.HandlerFunc(authH.HandleRecordReading)))

	mux.HandleFunc("GET /traditions", knowledgeH.HandleListAll)
	mux.HandleFunc("GET /search", knowledgeH.HandleSearch)
	mux.Handle("GET /enhanced/search", RequireAuth(auth, http.HandlerFunc(knowledgeH.HandleEnhancedSearch)))

	for _, c := range domain.Collections {
		mux.HandleFunc("GET /"+c.Tag, knowledgeH.HandleCollection(c.Tag))
		mux.HandleFunc("GET /"+c.Tag+"/{id}", knowledgeH.HandleGetByID(c.Tag))
		mux.Handle("GET /enhanced/"+c.Tag, RequireAuth(auth, knowledgeH.HandleEnhancedCollection(c.Tag)))
	}

	var chatHandler http.Handler = http.HandlerFunc(chatH.HandleChat)
	if opts.ChatRequiresAuth {
		chatHandler = RequireAuth(auth, chatHandler)
	} else {
		// Attach the user when a token is supplied so rate limiting can
		// key on the account instead of the IP.
		chatHandler = OptionalAuth(auth, chatHandler)
	}
	mux.Handle("POST /chat/{type}/{id}", chatHandler)
}
