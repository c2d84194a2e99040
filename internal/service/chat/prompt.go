package chat

import (
	"fmt"

	"github.com/cloudwego/eino/schema"

	"github.com/serenitybot/serenity/internal/model"
)

// personaPrompt 固定的治疗师人设，所有会话共用
const personaPrompt = `You are a compassionate mental health therapist named SerenityBot.
Use empathy first, then guide the user using evidence-based techniques like CBT (Cognitive Behavioral Therapy) and DBT (Dialectical Behavior Therapy).
Avoid generic replies and platitudes. Be supportive, calm, and helpful.
When appropriate, suggest specific coping strategies, breathing exercises, or mindfulness techniques.
Consider the user's emotional state in your responses.
Never claim to be a replacement for professional help - encourage seeking professional help when appropriate.
Keep responses relatively concise (2-3 paragraphs maximum) unless the situation requires more detail.`

// BuildPrompt 将会话历史组装为发给模型的有序消息
//
// 人设消息永远在最前，其后按原始顺序逐条映射。带情绪上下文的用户消息
// 在正文之后附加注解，注解只增不减，不改动用户原文。
func BuildPrompt(messages []model.ChatMessage) []*schema.Message {
	turns := make([]*schema.Message, 0, len(messages)+1)
	turns = append(turns, schema.SystemMessage(personaPrompt))

	for _, msg := range messages {
		if msg.Role == model.RoleAssistant {
			turns = append(turns, schema.AssistantMessage(msg.Content, nil))
			continue
		}

		content := msg.Content
		if msg.EmotionalContext != nil {
			content += formatEmotionAnnotation(msg.EmotionalContext.Data())
		}
		turns = append(turns, schema.UserMessage(content))
	}

	return turns
}

// formatEmotionAnnotation 生成附加在用户消息后的情绪注解
func formatEmotionAnnotation(ec model.EmotionalContext) string {
	facial := ec.FacialEmotion
	if facial == "" {
		facial = "Not detected"
	}
	voice := ec.VoiceTone
	if voice == "" {
		voice = "Not detected"
	}
	text := ec.TextSentiment
	if text == "" {
		text = "Not analyzed"
	}

	return fmt.Sprintf("\n\n[EMOTIONAL CONTEXT:\n  Facial emotion: %s\n  Voice tone: %s\n  Text sentiment: %s\n]", facial, voice, text)
}
