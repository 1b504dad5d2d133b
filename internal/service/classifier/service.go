package classifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zhouzirui/warmline/backend/internal/analysis/emotion"
)

// ErrEmptyInput 表示分类输入为空或全为空白字符。
// 该错误必须透传给调用方，由界面层提示用户，不允许悄悄替换成默认情绪。
var ErrEmptyInput = errors.New("text cannot be empty")

// Model 是底层六分类模型的黑盒接口：输入文本，
// 输出与 emotion.NativeLabels 顺序一致的概率向量。
type Model interface {
	Probabilities(ctx context.Context, text string) ([]float64, error)
}

// Service 把黑盒模型的原生概率换算成标准情绪得分。
type Service struct {
	model Model
}

// NewService 创建情绪分类服务。
func NewService(model Model) *Service {
	return &Service{model: model}
}

// Classify 返回六个标准情绪的归一化得分。
func (s *Service) Classify(ctx context.Context, text string) (emotion.Scores, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	probs, err := s.model.Probabilities(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("classifier model failed: %w", err)
	}

	return emotion.Blend(probs, text), nil
}

// TopEmotions 返回得分最高的前 n 个情绪，n<=0 时取默认值 3。
func (s *Service) TopEmotions(ctx context.Context, text string, n int) ([]emotion.Ranked, error) {
	if n <= 0 {
		n = 3
	}

	scores, err := s.Classify(ctx, text)
	if err != nil {
		return nil, err
	}
	return scores.Top(n), nil
}

// Predict 返回单个最高得分情绪及其置信度。
func (s *Service) Predict(ctx context.Context, text string) (emotion.Label, float64, error) {
	scores, err := s.Classify(ctx, text)
	if err != nil {
		return "", 0, err
	}

	label, confidence := scores.Best()
	return label, confidence, nil
}
