// Package emotion 将文本、语音、表情三路独立的情绪信号合成为一个
// 归一化的情绪上下文。
package emotion

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/serenitybot/serenity/internal/model"
	"github.com/serenitybot/serenity/internal/service/llm"
)

// ErrClassification 上游分类失败
var ErrClassification = errors.New("classification failed")

// 各来源权重，来源可信度越高权重越大
const (
	textWeight  = 1.0
	voiceWeight = 1.5
	faceWeight  = 2.0
)

const textPrompt = `Analyze the emotional state in this text. Categorize it as one of the following:
- Happy
- Sad
- Anxious
- Angry
- Neutral
- Stressed
- Depressed

Text: %q

Return only the emotion category name.`

// VoiceClassifier 语音情绪分类能力
// 同步返回 7 类标签之一，不保证准确度；可替换为真实模型实现
type VoiceClassifier interface {
	ClassifyVoice(ctx context.Context, audio []byte) (string, error)
}

// FaceClassifier 表情情绪分类能力，契约与 VoiceClassifier 相同
type FaceClassifier interface {
	ClassifyFace(ctx context.Context, image []byte) (string, error)
}

// NeutralVoiceClassifier 占位实现，恒返回 Neutral
type NeutralVoiceClassifier struct{}

func (NeutralVoiceClassifier) ClassifyVoice(_ context.Context, _ []byte) (string, error) {
	return "Neutral", nil
}

// NeutralFaceClassifier 占位实现，恒返回 Neutral
type NeutralFaceClassifier struct{}

func (NeutralFaceClassifier) ClassifyFace(_ context.Context, _ []byte) (string, error) {
	return "Neutral", nil
}

// Scorer 情绪打分器
type Scorer struct {
	gen   llm.Generator
	voice VoiceClassifier
	face  FaceClassifier
}

// NewScorer 创建情绪打分器，语音/表情分类器在构造时注入
func NewScorer(gen llm.Generator, voice VoiceClassifier, face FaceClassifier) *Scorer {
	if voice == nil {
		voice = NeutralVoiceClassifier{}
	}
	if face == nil {
		face = NeutralFaceClassifier{}
	}
	return &Scorer{gen: gen, voice: voice, face: face}
}

// ClassifyText 用固定选项提示词对文本做情绪分类
func (s *Scorer) ClassifyText(ctx context.Context, text string) (string, error) {
	label, err := s.gen.GenerateText(ctx, fmt.Sprintf(textPrompt, text))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrClassification, err)
	}
	return strings.TrimSpace(label), nil
}

// ClassifyVoice 委托给注入的语音分类器
func (s *Scorer) ClassifyVoice(ctx context.Context, audio []byte) (string, error) {
	return s.voice.ClassifyVoice(ctx, audio)
}

// ClassifyFace 表情分类
// 客户端已检测出情绪时直接采信，不再计算
func (s *Scorer) ClassifyFace(ctx context.Context, image []byte, clientHint string) (string, error) {
	if clientHint != "" {
		return clientHint, nil
	}
	return s.face.ClassifyFace(ctx, image)
}

// Combine 合成情绪上下文
//
// 文本是必选来源，语音和表情仅在有对应载荷时参与。每个存在的来源按
// 权重计入其标签，再对所有存在来源的权重和归一化。任何分类失败都被
// 吸收为中性降级结果，不会阻断对话链路。
func (s *Scorer) Combine(ctx context.Context, text string, audio, image []byte, clientHint string) model.EmotionalContext {
	textSentiment, err := s.ClassifyText(ctx, text)
	if err != nil {
		log.Printf("emotion: text classification failed, degrading to neutral: %v", err)
		return model.EmotionalContext{TextSentiment: "Neutral"}
	}

	var voiceTone, facialEmotion string
	if len(audio) > 0 {
		if voiceTone, err = s.ClassifyVoice(ctx, audio); err != nil {
			log.Printf("emotion: voice classification failed, degrading to neutral: %v", err)
			return model.EmotionalContext{TextSentiment: "Neutral"}
		}
	}
	if len(image) > 0 {
		if facialEmotion, err = s.ClassifyFace(ctx, image, clientHint); err != nil {
			log.Printf("emotion: face classification failed, degrading to neutral: %v", err)
			return model.EmotionalContext{TextSentiment: "Neutral"}
		}
	}

	scores := make(map[string]float64, 7)
	for _, l := range Labels() {
		scores[l] = 0
	}

	var totalWeight float64
	accumulate := func(raw string, weight float64) {
		label := normalizeLabel(raw)
		if isKnownLabel(label) {
			scores[label] += weight
		}
		totalWeight += weight
	}

	accumulate(textSentiment, textWeight)
	if voiceTone != "" {
		accumulate(voiceTone, voiceWeight)
	}
	if facialEmotion != "" {
		accumulate(facialEmotion, faceWeight)
	}

	if totalWeight > 0 {
		for label := range scores {
			scores[label] /= totalWeight
		}
	}

	return model.EmotionalContext{
		TextSentiment:        textSentiment,
		VoiceTone:            voiceTone,
		FacialEmotion:        facialEmotion,
		CombinedEmotionScore: scores,
	}
}
