package suggestion

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/zhouzirui/warmline/backend/internal/config"
	"github.com/zhouzirui/warmline/backend/internal/model/chat"
)

// Generator 是文本生成接口的黑盒抽象：输入出站消息列表，输出首个候选文本。
type Generator interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// TogetherGenerator 通过 OpenAI 兼容协议调用 Together 的聊天补全接口。
// 每轮只发起一次请求，失败不重试，由上层决定兜底。
type TogetherGenerator struct {
	client      openai.Client
	model       string
	maxTokens   int
	temperature float64
	topP        float64
}

// NewTogetherGenerator 创建生成客户端。apiKey 参数优先于配置中的密钥；
// 两者都为空时返回 nil，表示本进程始终走兜底回复。
func NewTogetherGenerator(cfg config.GenerationConfig, apiKey string) *TogetherGenerator {
	if apiKey == "" {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		return nil
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithRequestTimeout(cfg.Timeout),
		option.WithMaxRetries(0),
	)

	return &TogetherGenerator{
		client:      client,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
	}
}

// Complete 发送一次聊天补全请求并返回首个候选的文本。
func (g *TogetherGenerator) Complete(ctx context.Context, messages []Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(g.model),
		Messages:    toUnionMessages(messages),
		MaxTokens:   openai.Int(int64(g.maxTokens)),
		Temperature: openai.Float(g.temperature),
		TopP:        openai.Float(g.topP),
	}

	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("suggestion: chat completion request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("suggestion: no candidates returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func toUnionMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	union := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case roleSystem:
			union = append(union, openai.SystemMessage(msg.Content))
		case chat.RoleAssistant:
			union = append(union, openai.AssistantMessage(msg.Content))
		default:
			union = append(union, openai.UserMessage(msg.Content))
		}
	}
	return union
}
