package model

import (
	"time"

	"gorm.io/datatypes"
)

// 消息角色
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatSession 聊天会话
type ChatSession struct {
	ID        string        `gorm:"primaryKey;size:36" json:"_id"`
	UserID    string        `gorm:"index;size:36;not null" json:"user"`
	Title     string        `gorm:"size:255;default:New Chat" json:"title"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
	Messages  []ChatMessage `gorm:"foreignKey:SessionID" json:"messages"`
}

// ChatMessage 聊天消息
// 消息只追加不修改，Seq 保证会话内顺序
type ChatMessage struct {
	ID               string                                       `gorm:"primaryKey;size:36" json:"-"`
	SessionID        string                                       `gorm:"index;size:36;not null" json:"-"`
	Seq              int                                          `gorm:"not null" json:"-"`
	Role             string                                       `gorm:"size:20;not null" json:"role"`
	Content          string                                       `gorm:"type:text" json:"content"`
	Timestamp        time.Time                                    `gorm:"autoCreateTime" json:"timestamp"`
	EmotionalContext *datatypes.JSONType[EmotionalContext]        `gorm:"type:jsonb" json:"emotionalContext,omitempty"`
}

// EmotionalContext 单条用户消息的情绪分析结果
type EmotionalContext struct {
	TextSentiment string `json:"textSentiment,omitempty"`
	VoiceTone     string `json:"voiceTone,omitempty"`
	FacialEmotion string `json:"facialEmotion,omitempty"`
	// 7 个固定标签到归一化权重的映射，存在任一来源时权重和为 1
	CombinedEmotionScore map[string]float64 `json:"combinedEmotionScore,omitempty"`
}

// TableName 指定表名
func (ChatSession) TableName() string {
	return "chat_sessions"
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
