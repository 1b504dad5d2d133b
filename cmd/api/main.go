package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zhouzirui/warmline/backend/internal/config"
	"github.com/zhouzirui/warmline/backend/internal/handler"
	"github.com/zhouzirui/warmline/backend/internal/service/classifier"
	chatservice "github.com/zhouzirui/warmline/backend/internal/service/chat"
	"github.com/zhouzirui/warmline/backend/internal/service/embedding"
	"github.com/zhouzirui/warmline/backend/internal/service/suggestion"
	"github.com/zhouzirui/warmline/backend/internal/service/turn"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize classifier: hosted inference model behind a blackbox interface
	model := classifier.NewHFModel(classifier.HFConfig{
		APIKey:  cfg.Classifier.APIKey,
		BaseURL: cfg.Classifier.BaseURL,
		Model:   cfg.Classifier.Model,
		Timeout: cfg.Classifier.Timeout,
	}, "")
	classifierSvc := classifier.NewService(model)
	if cfg.Classifier.Enabled() {
		log.Println("Emotion classifier initialized with hosted inference credentials")
	} else {
		log.Println("HF_API_KEY 未配置，情绪分类将以匿名额度调用推理接口")
	}

	// Initialize suggestion service; without credentials every turn uses fallback responses
	generator := suggestion.NewTogetherGenerator(cfg.Generation, "")
	if generator != nil {
		log.Printf("Suggestion service initialized with model %s", cfg.Generation.Model)
	} else {
		log.Println("TOGETHER_API_KEY 未配置，回复生成将始终使用本地兜底文案")
	}
	suggestionSvc := suggestion.NewService(generatorOrNil(generator))

	// Initialize embedding client (optional, not part of the chat turn path)
	embeddingClient := embedding.NewClient(cfg.Embedding, "")
	if embeddingClient != nil {
		log.Println("Embedding service initialized successfully")
	} else {
		log.Println("VOYAGE_API_KEY 未配置，跳过向量化功能初始化")
	}

	chatSvc := chatservice.NewService()
	turnSvc := turn.NewService(classifierSvc, suggestionSvc, chatSvc)

	router := handler.NewRouter(chatSvc, turnSvc, classifierSvc, embeddingClient)

	startServer(ctx, cfg.Server, router)
}

// generatorOrNil 避免把带类型的 nil 指针塞进接口。
func generatorOrNil(g *suggestion.TogetherGenerator) suggestion.Generator {
	if g == nil {
		return nil
	}
	return g
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Warmline backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
