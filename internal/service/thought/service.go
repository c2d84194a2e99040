// Package thought 提供认知扭曲识别与想法重构，独立于会话状态。
package thought

import (
	"context"
	"fmt"
	"strings"

	"github.com/serenitybot/serenity/internal/service/llm"
)

const distortionPrompt = `Analyze the following negative thought and identify which cognitive distortion it most closely represents from the following options:
1. Black and White Thinking: Seeing things in absolute, all-or-nothing categories.
2. Catastrophizing: Expecting the worst possible outcome.
3. Mind Reading: Assuming you know what others are thinking without evidence.
4. Emotional Reasoning: Assuming your feelings reflect reality.

Negative thought: %q

Return ONLY the name of the cognitive distortion (e.g., "Black and White Thinking") without any other text or explanation.`

const reframePrompt = `You are a skilled cognitive behavioral therapist with expertise in thought reframing.

The user has provided the following negative thought:
%q

The cognitive distortion identified is: %s

Please generate a reframed version of this thought that is:
1. More balanced and realistic
2. Challenges the identified cognitive distortion
3. Supportive and compassionate, not toxic positivity
4. Specific to the original thought's context

Return only the reframed thought without any additional explanations, introductions, or comments.`

// Service 想法重构服务
type Service struct {
	gen llm.Generator
}

// NewService 创建想法重构服务
func NewService(gen llm.Generator) *Service {
	return &Service{gen: gen}
}

// AnalyzeDistortion 识别负面想法对应的认知扭曲类别
func (s *Service) AnalyzeDistortion(ctx context.Context, negativeThought string) (string, error) {
	out, err := s.gen.GenerateText(ctx, fmt.Sprintf(distortionPrompt, negativeThought))
	if err != nil {
		return "", fmt.Errorf("failed to analyze cognitive distortion: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// Reframe 生成重构后的想法
// distortion 为空时先做一次扭曲识别
func (s *Service) Reframe(ctx context.Context, negativeThought, distortion string) (string, string, error) {
	if distortion == "" {
		var err error
		distortion, err = s.AnalyzeDistortion(ctx, negativeThought)
		if err != nil {
			return "", "", err
		}
	}

	out, err := s.gen.GenerateText(ctx, fmt.Sprintf(reframePrompt, negativeThought, distortion))
	if err != nil {
		return "", "", fmt.Errorf("failed to generate reframed thought: %w", err)
	}
	return strings.TrimSpace(out), distortion, nil
}
