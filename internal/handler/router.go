package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chatHandler "github.com/zhouzirui/warmline/backend/internal/handler/chat"
	embeddingHandler "github.com/zhouzirui/warmline/backend/internal/handler/embedding"
	emotionHandler "github.com/zhouzirui/warmline/backend/internal/handler/emotion"
	middlewarePkg "github.com/zhouzirui/warmline/backend/internal/middleware"
	"github.com/zhouzirui/warmline/backend/internal/service/classifier"
	chatService "github.com/zhouzirui/warmline/backend/internal/service/chat"
	"github.com/zhouzirui/warmline/backend/internal/service/embedding"
	"github.com/zhouzirui/warmline/backend/internal/service/turn"
	"github.com/zhouzirui/warmline/backend/web"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(chatSvc *chatService.Service, turnSvc *turn.Service, classifierSvc *classifier.Service, embeddingClient *embedding.Client) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	chatH := chatHandler.New(chatSvc, turnSvc)
	wsH := chatHandler.NewWebSocketHandler(chatSvc, turnSvc)
	emotionH := emotionHandler.New(classifierSvc)
	embeddingH := embeddingHandler.New(embeddingClient)

	r.Route("/api", func(api chi.Router) {
		chatH.RegisterRoutes(api)
		wsH.RegisterWebSocketRoutes(api)
		emotionH.RegisterRoutes(api)
		embeddingH.RegisterRoutes(api)
	})

	// 单页聊天界面
	r.Handle("/*", web.Handler())

	return r
}
