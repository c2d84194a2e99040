// Package emotion 情绪打分单元测试
package emotion

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/cloudwego/eino/schema"
)

// mockGenerator 固定返回标签的生成器
type mockGenerator struct {
	label string
	err   error
}

func (m *mockGenerator) Generate(_ context.Context, _ []*schema.Message) (string, error) {
	return m.label, m.err
}

func (m *mockGenerator) GenerateText(_ context.Context, _ string) (string, error) {
	return m.label, m.err
}

// fixedVoice 固定返回某标签的语音分类器
type fixedVoice struct{ label string }

func (f fixedVoice) ClassifyVoice(_ context.Context, _ []byte) (string, error) {
	return f.label, nil
}

// fixedFace 固定返回某标签的表情分类器
type fixedFace struct{ label string }

func (f fixedFace) ClassifyFace(_ context.Context, _ []byte) (string, error) {
	return f.label, nil
}

const epsilon = 1e-9

func TestCombineTextOnly(t *testing.T) {
	scorer := NewScorer(&mockGenerator{label: "Happy"}, nil, nil)

	ec := scorer.Combine(context.Background(), "I feel great", nil, nil, "")

	if ec.TextSentiment != "Happy" {
		t.Errorf("TextSentiment = %q, want %q", ec.TextSentiment, "Happy")
	}
	if ec.VoiceTone != "" || ec.FacialEmotion != "" {
		t.Errorf("VoiceTone/FacialEmotion = %q/%q, want empty", ec.VoiceTone, ec.FacialEmotion)
	}
	if got := ec.CombinedEmotionScore[Happy]; math.Abs(got-1.0) > epsilon {
		t.Errorf("happy score = %v, want 1.0", got)
	}
	for _, label := range Labels() {
		if label == Happy {
			continue
		}
		if got := ec.CombinedEmotionScore[label]; got != 0 {
			t.Errorf("%s score = %v, want 0", label, got)
		}
	}
}

func TestCombineThreeSources(t *testing.T) {
	scorer := NewScorer(&mockGenerator{label: "Sad"}, fixedVoice{label: "Angry"}, fixedFace{label: "Happy"})

	ec := scorer.Combine(context.Background(), "rough day", []byte("audio"), []byte("image"), "")

	want := map[string]float64{
		Sad:   1.0 / 4.5,
		Angry: 1.5 / 4.5,
		Happy: 2.0 / 4.5,
	}
	for label, w := range want {
		if got := ec.CombinedEmotionScore[label]; math.Abs(got-w) > epsilon {
			t.Errorf("%s score = %v, want %v", label, got, w)
		}
	}

	var sum float64
	for _, v := range ec.CombinedEmotionScore {
		sum += v
	}
	if math.Abs(sum-1.0) > epsilon {
		t.Errorf("score sum = %v, want 1.0", sum)
	}
}

func TestCombineScoreProperties(t *testing.T) {
	tests := []struct {
		name  string
		audio []byte
		image []byte
	}{
		{name: "text only"},
		{name: "text and voice", audio: []byte("a")},
		{name: "text and face", image: []byte("i")},
		{name: "all sources", audio: []byte("a"), image: []byte("i")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scorer := NewScorer(&mockGenerator{label: "Anxious"}, fixedVoice{label: "Neutral"}, fixedFace{label: "Stressed"})

			ec := scorer.Combine(context.Background(), "some text", tt.audio, tt.image, "")

			var sum float64
			for label, v := range ec.CombinedEmotionScore {
				if v < 0 || v > 1 {
					t.Errorf("%s score = %v, want within [0,1]", label, v)
				}
				sum += v
			}
			if math.Abs(sum-1.0) > epsilon {
				t.Errorf("score sum = %v, want 1.0", sum)
			}
		})
	}
}

func TestCombineCaseInsensitiveLabels(t *testing.T) {
	scorer := NewScorer(&mockGenerator{label: "DEPRESSED"}, nil, nil)

	ec := scorer.Combine(context.Background(), "text", nil, nil, "")

	if got := ec.CombinedEmotionScore[Depressed]; math.Abs(got-1.0) > epsilon {
		t.Errorf("depressed score = %v, want 1.0", got)
	}
}

func TestCombineClassificationFailure(t *testing.T) {
	scorer := NewScorer(&mockGenerator{err: errors.New("upstream down")}, nil, nil)

	ec := scorer.Combine(context.Background(), "text", []byte("audio"), []byte("image"), "")

	if ec.TextSentiment != "Neutral" {
		t.Errorf("TextSentiment = %q, want Neutral fallback", ec.TextSentiment)
	}
	if ec.VoiceTone != "" || ec.FacialEmotion != "" {
		t.Errorf("fallback should leave voice/face empty, got %q/%q", ec.VoiceTone, ec.FacialEmotion)
	}
	if ec.CombinedEmotionScore != nil {
		t.Errorf("fallback should carry no score map, got %v", ec.CombinedEmotionScore)
	}
}

func TestClassifyText(t *testing.T) {
	tests := []struct {
		name    string
		gen     *mockGenerator
		want    string
		wantErr bool
	}{
		{name: "returns trimmed label", gen: &mockGenerator{label: "  Happy\n"}, want: "Happy"},
		{name: "upstream failure", gen: &mockGenerator{err: errors.New("timeout")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scorer := NewScorer(tt.gen, nil, nil)

			got, err := scorer.ClassifyText(context.Background(), "some text")

			if tt.wantErr {
				if err == nil {
					t.Fatal("ClassifyText() expected error, got nil")
				}
				if !errors.Is(err, ErrClassification) {
					t.Errorf("error = %v, want ErrClassification", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ClassifyText() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ClassifyText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyFaceClientHint(t *testing.T) {
	scorer := NewScorer(&mockGenerator{label: "Neutral"}, nil, fixedFace{label: "Sad"})

	// 客户端已检测到情绪时直接采信
	got, err := scorer.ClassifyFace(context.Background(), []byte("image"), "Happy")
	if err != nil {
		t.Fatalf("ClassifyFace() error = %v", err)
	}
	if got != "Happy" {
		t.Errorf("ClassifyFace() = %q, want client hint %q", got, "Happy")
	}

	// 无提示时走注入的分类器
	got, err = scorer.ClassifyFace(context.Background(), []byte("image"), "")
	if err != nil {
		t.Fatalf("ClassifyFace() error = %v", err)
	}
	if got != "Sad" {
		t.Errorf("ClassifyFace() = %q, want %q", got, "Sad")
	}
}

func TestNeutralClassifiers(t *testing.T) {
	voice, err := NeutralVoiceClassifier{}.ClassifyVoice(context.Background(), []byte("audio"))
	if err != nil || voice != "Neutral" {
		t.Errorf("ClassifyVoice() = %q, %v, want Neutral, nil", voice, err)
	}

	face, err := NeutralFaceClassifier{}.ClassifyFace(context.Background(), []byte("image"))
	if err != nil || face != "Neutral" {
		t.Errorf("ClassifyFace() = %q, %v, want Neutral, nil", face, err)
	}
}
