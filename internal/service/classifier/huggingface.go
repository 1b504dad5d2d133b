package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zhouzirui/warmline/backend/internal/analysis/emotion"
)

// 输入超过该长度时截断，与模型侧 512 token 的上限保持安全距离。
const maxInputChars = 2000

// HFConfig 配置 HuggingFace 托管推理客户端。
type HFConfig struct {
	// APIKey 用于 Bearer 认证。
	APIKey string

	// BaseURL 默认指向官方推理接口，可替换为自建推理服务。
	BaseURL string

	// Model 是文本分类模型标识。
	Model string

	// Timeout 是单次请求超时，默认 30 秒。
	Timeout time.Duration
}

// HFModel 通过 HuggingFace 托管推理接口实现 Model。
// 可以并发使用。
type HFModel struct {
	cfg    HFConfig
	client *http.Client
}

// NewHFModel 创建托管推理客户端。apiKey 参数优先于配置中的密钥。
func NewHFModel(cfg HFConfig, apiKey string) *HFModel {
	if apiKey != "" {
		cfg.APIKey = apiKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api-inference.huggingface.co"
	}
	if cfg.Model == "" {
		cfg.Model = "j-hartmann/emotion-english-distilroberta-base"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &HFModel{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// --- minimal inference wire types ---

type hfRequest struct {
	Inputs  string    `json:"inputs"`
	Options hfOptions `json:"options"`
}

type hfOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type hfScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Probabilities 调用推理接口并把结果整理成固定原生顺序的概率向量。
func (m *HFModel) Probabilities(ctx context.Context, text string) ([]float64, error) {
	truncated := truncateRunes(text, maxInputChars)

	body, err := json.Marshal(hfRequest{
		Inputs:  truncated,
		Options: hfOptions{WaitForModel: true},
	})
	if err != nil {
		return nil, fmt.Errorf("classifier: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s", strings.TrimRight(m.cfg.BaseURL, "/"), m.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("classifier: create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// 没有密钥时不带认证头，走接口的匿名额度。
	if m.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.cfg.APIKey)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classifier: http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("classifier: read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier: inference API status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	// 接口按得分降序返回 [[{label,score},...]]，需要重排成固定原生顺序。
	var payload [][]hfScore
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return nil, fmt.Errorf("classifier: decode API response: %w", err)
	}
	if len(payload) == 0 || len(payload[0]) == 0 {
		return nil, fmt.Errorf("classifier: empty inference result")
	}

	byLabel := make(map[string]float64, len(payload[0]))
	for _, entry := range payload[0] {
		byLabel[strings.ToLower(entry.Label)] = entry.Score
	}

	probs := make([]float64, len(emotion.NativeLabels))
	for i, native := range emotion.NativeLabels {
		probs[i] = byLabel[string(native)]
	}
	return probs, nil
}

// truncateRunes 在字符边界截断，避免把多字节字符劈成乱码发给接口。
func truncateRunes(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
