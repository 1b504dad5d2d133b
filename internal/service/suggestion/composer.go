package suggestion

import (
	"fmt"
	"strings"

	"github.com/zhouzirui/warmline/backend/internal/model/chat"
)

// Message 是发往文本生成接口的一条出站消息。
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const roleSystem = "system"

// systemPrompt 固定的共情助手人设指令。
const systemPrompt = `You are an empathetic and supportive mental health assistant.

Your task:
- Respond in a natural, conversational tone.
- Be SPECIFIC to the user's message - reference what they actually said.
- Do NOT give generic advice like "thank you for sharing" or "I'm here to listen" - provide actual helpful suggestions.
- Provide 3-5 specific, actionable suggestions that directly address their situation.
- Keep it encouraging and emotionally intelligent.
- Make your answer meaningful and deep (4-8 sentences minimum).
- Reference specific details from what they shared.
- Provide thoughtful, empathetic insights that show you truly understand their situation.
- Be warm, supportive, and show genuine care.
- Give practical, actionable advice they can use right now.`

// historyWindow 只取最近几轮历史作为上下文。
const historyWindow = 4

// userPromptFor 组装最终的用户消息：原始输入、检测到的情绪与固定指令后缀。
func userPromptFor(userMessage, emotionLabel string) string {
	return fmt.Sprintf("User message: %s\n\nDetected emotion: %s\n\nNow speak to the user:", userMessage, emotionLabel)
}

// buildMessages 组装出站消息列表。生成接口要求 system 之后严格的
// user/assistant 交替并以 user 开头，这里在遍历历史时直接保证：
// 空内容与未知角色跳过，首个 user 之前的 assistant 跳过，
// 相邻同角色消息用空行合并而不是新增条目。
func buildMessages(history []chat.Message, userMessage, emotionLabel string) []Message {
	messages := []Message{{Role: roleSystem, Content: systemPrompt}}

	recent := history
	if len(recent) > historyWindow {
		recent = recent[len(recent)-historyWindow:]
	}

	lastRole := roleSystem
	firstAfterSystem := true
	for _, msg := range recent {
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			continue
		}
		if msg.Role != chat.RoleUser && msg.Role != chat.RoleAssistant {
			continue
		}
		if firstAfterSystem && msg.Role == chat.RoleAssistant {
			continue
		}

		if msg.Role != lastRole {
			messages = append(messages, Message{Role: msg.Role, Content: content})
			lastRole = msg.Role
			firstAfterSystem = false
		} else if messages[len(messages)-1].Role == msg.Role {
			messages[len(messages)-1].Content += "\n\n" + content
		}
	}

	userPrompt := userPromptFor(userMessage, emotionLabel)
	if messages[len(messages)-1].Role == chat.RoleUser {
		messages[len(messages)-1].Content += "\n\n" + userPrompt
	} else {
		messages = append(messages, Message{Role: chat.RoleUser, Content: userPrompt})
	}

	return messages
}

// validateMessages 在发送前整体复检：system 只能出现在开头，
// 之后 user/assistant 严格交替（重复角色并入上一条），
// 结尾的 assistant 会被丢弃（生成必须补全 user 轮次）。
// 复检后不足两条时退化为最简的 [system, user]。
func validateMessages(messages []Message, userMessage, emotionLabel string) []Message {
	valid := make([]Message, 0, len(messages))
	lastRole := ""

	for _, msg := range messages {
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			continue
		}

		switch msg.Role {
		case roleSystem:
			if len(valid) == 0 {
				valid = append(valid, Message{Role: roleSystem, Content: content})
				lastRole = roleSystem
			}
		case chat.RoleUser, chat.RoleAssistant:
			if lastRole != msg.Role {
				valid = append(valid, Message{Role: msg.Role, Content: content})
				lastRole = msg.Role
			} else if len(valid) > 0 {
				valid[len(valid)-1].Content += "\n\n" + content
			}
		}
	}

	if len(valid) > 0 && valid[len(valid)-1].Role == chat.RoleAssistant {
		valid = valid[:len(valid)-1]
	}

	if len(valid) < 2 {
		return []Message{
			{Role: roleSystem, Content: systemPrompt},
			{Role: chat.RoleUser, Content: userPromptFor(userMessage, emotionLabel)},
		}
	}

	return valid
}
