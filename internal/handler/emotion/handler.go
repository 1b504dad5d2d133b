package emotion

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/warmline/backend/internal/service/classifier"
	"github.com/zhouzirui/warmline/backend/pkg/utils"
)

// Handler 情绪分类的HTTP处理器，独立于会话流程提供检测能力。
type Handler struct {
	classifier *classifier.Service
}

// New 创建情绪处理器
func New(classifierSvc *classifier.Service) *Handler {
	return &Handler{classifier: classifierSvc}
}

// RegisterRoutes 注册情绪相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/emotion", h.handleClassify)
}

// handleClassify 对一段文本做情绪分类。
func (h *Handler) handleClassify(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
		TopN int    `json:"topN"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	scores, err := h.classifier.Classify(r.Context(), payload.Text)
	if err != nil {
		if errors.Is(err, classifier.ErrEmptyInput) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondError(w, http.StatusBadGateway, err.Error())
		return
	}

	topN := payload.TopN
	if topN <= 0 {
		topN = 3
	}
	label, confidence := scores.Best()

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"emotion":     label,
		"confidence":  confidence,
		"scores":      scores,
		"topEmotions": scores.Top(topN),
	})
}
