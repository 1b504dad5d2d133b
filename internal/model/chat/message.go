package chat

import (
	"time"

	"github.com/zhouzirui/warmline/backend/internal/analysis/emotion"
)

// 消息角色只有两种，创建后不再变化。
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message 记录会话中的一轮发言。assistant 消息会附带情绪检测结果。
type Message struct {
	ID          string           `json:"id"`
	SessionID   string           `json:"sessionId"`
	Role        string           `json:"role"`
	Content     string           `json:"content"`
	Emotion     emotion.Label    `json:"emotion,omitempty"`
	Confidence  float64          `json:"confidence,omitempty"`
	TopEmotions []emotion.Ranked `json:"topEmotions,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}
