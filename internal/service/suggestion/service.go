package suggestion

import (
	"context"
	"log"
	"strings"

	"github.com/zhouzirui/warmline/backend/internal/analysis/emotion"
	"github.com/zhouzirui/warmline/backend/internal/model/chat"
)

// 过短或带有该套话的候选一律视为低质量回复而丢弃。
const (
	minResponseLength = 50
	bannedPhrase      = "thank you for sharing"
)

// Service 为每轮对话生成回复：优先调用托管模型，
// 任何失败都落到确定性的兜底文案，调用方永远能拿到一条回复。
type Service struct {
	generator Generator
}

// NewService 创建回复生成服务。generator 为 nil 时始终使用兜底回复。
func NewService(generator Generator) *Service {
	return &Service{generator: generator}
}

// Enabled 表示是否配置了可用的生成客户端。
func (s *Service) Enabled() bool {
	return s != nil && s.generator != nil
}

// Respond 组装出站消息、调用生成接口并做质量把关。
// 生成失败从不向上抛错：没有密钥、传输错误、空候选或低质量候选
// 都会换成按关键词挑选的兜底回复。
func (s *Service) Respond(ctx context.Context, userMessage string, emotionLabel emotion.Label, history []chat.Message) string {
	if !s.Enabled() {
		return fallbackFor(userMessage)
	}

	messages := buildMessages(history, userMessage, string(emotionLabel))
	messages = validateMessages(messages, userMessage, string(emotionLabel))

	text, err := s.generator.Complete(ctx, messages)
	if err != nil {
		log.Printf("[suggestion] generation failed, using fallback: %v", err)
		return fallbackFor(userMessage)
	}

	trimmed := strings.TrimSpace(text)
	if len(trimmed) <= minResponseLength {
		log.Printf("[suggestion] candidate too short (%d chars), using fallback", len(trimmed))
		return fallbackFor(userMessage)
	}
	if strings.Contains(strings.ToLower(trimmed), bannedPhrase) {
		log.Printf("[suggestion] candidate contains boilerplate, using fallback")
		return fallbackFor(userMessage)
	}

	return trimmed
}
