package embedding

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/warmline/backend/internal/service/embedding"
	"github.com/zhouzirui/warmline/backend/pkg/utils"
)

// Handler 向量化接口的HTTP处理器。对话主流程不依赖它。
type Handler struct {
	client *embedding.Client
}

// New 创建向量化处理器。client 允许为 nil（未配置密钥）。
func New(client *embedding.Client) *Handler {
	return &Handler{client: client}
}

// RegisterRoutes 注册向量化相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/embeddings", h.handleEmbed)
}

// handleEmbed 把一批文本转成向量。
func (h *Handler) handleEmbed(w http.ResponseWriter, r *http.Request) {
	if h.client == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "embedding service not configured")
		return
	}

	var payload struct {
		Input []string `json:"input"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vectors, err := h.client.EmbedBatch(r.Context(), payload.Input)
	if err != nil {
		if errors.Is(err, embedding.ErrEmptyInput) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondError(w, http.StatusBadGateway, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"vectors": vectors})
}
