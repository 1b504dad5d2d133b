package turn

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/zhouzirui/warmline/backend/internal/model/chat"
	"github.com/zhouzirui/warmline/backend/internal/service/classifier"
	chatservice "github.com/zhouzirui/warmline/backend/internal/service/chat"
	"github.com/zhouzirui/warmline/backend/internal/service/suggestion"
)

// Service 串起一轮对话：情绪分类 → 生成回复 → 落会话历史。
// 同一会话内同一时刻只有一轮在处理，两次外部调用顺序阻塞执行。
type Service struct {
	classifier *classifier.Service
	suggester  *suggestion.Service
	chatSvc    *chatservice.Service
}

// Result 是一轮对话的产物：已入库的用户消息与助手回复。
type Result struct {
	UserMessage chat.Message `json:"userMessage"`
	Reply       chat.Message `json:"reply"`
}

// NewService 创建对话轮次服务。
func NewService(classifierSvc *classifier.Service, suggester *suggestion.Service, chatSvc *chatservice.Service) *Service {
	return &Service{
		classifier: classifierSvc,
		suggester:  suggester,
		chatSvc:    chatSvc,
	}
}

// Process 处理一条用户消息并返回助手回复。
// 空输入与未知会话原样报错给调用方；其余任何失败都不会中断会话，
// 而是以一条道歉消息落入历史，保证会话始终可用。
func (s *Service) Process(ctx context.Context, sessionID, text string) (Result, error) {
	history, err := s.chatSvc.Transcript(ctx, sessionID)
	if err != nil {
		return Result{}, err
	}

	scores, err := s.classifier.Classify(ctx, text)
	if err != nil {
		if errors.Is(err, classifier.ErrEmptyInput) {
			return Result{}, err
		}
		// 分类黑盒失败：落一条可见的道歉消息，会话继续可用。
		log.Printf("[turn] classification failed for session=%s: %v", sessionID, err)
		return s.apologize(ctx, sessionID, text, err)
	}

	label, confidence := scores.Best()
	topEmotions := scores.Top(3)

	userMsg, err := s.chatSvc.SaveMessage(ctx, chat.Message{
		SessionID: sessionID,
		Role:      chat.RoleUser,
		Content:   text,
	})
	if err != nil {
		return Result{}, err
	}

	// 历史上下文不含本轮消息，本轮消息由出站列表末尾的 user 条目承载。
	response := s.suggester.Respond(ctx, text, label, history)

	reply, err := s.chatSvc.SaveMessage(ctx, chat.Message{
		SessionID:   sessionID,
		Role:        chat.RoleAssistant,
		Content:     response,
		Emotion:     label,
		Confidence:  confidence,
		TopEmotions: topEmotions,
	})
	if err != nil {
		return Result{}, err
	}

	log.Printf("[turn] session=%s emotion=%s confidence=%.2f reply=%d chars",
		sessionID, label, confidence, len(response))
	return Result{UserMessage: userMsg, Reply: reply}, nil
}

func (s *Service) apologize(ctx context.Context, sessionID, text string, cause error) (Result, error) {
	userMsg, err := s.chatSvc.SaveMessage(ctx, chat.Message{
		SessionID: sessionID,
		Role:      chat.RoleUser,
		Content:   text,
	})
	if err != nil {
		return Result{}, err
	}

	reply, err := s.chatSvc.SaveMessage(ctx, chat.Message{
		SessionID: sessionID,
		Role:      chat.RoleAssistant,
		Content:   fmt.Sprintf("I apologize, but I encountered an error: %v. Please try again.", cause),
	})
	if err != nil {
		return Result{}, err
	}

	return Result{UserMessage: userMsg, Reply: reply}, nil
}
