package emotion

import "strings"

// Label 情绪标签，固定 7 类
type Label = string

const (
	Happy     Label = "happy"
	Sad       Label = "sad"
	Angry     Label = "angry"
	Anxious   Label = "anxious"
	Neutral   Label = "neutral"
	Stressed  Label = "stressed"
	Depressed Label = "depressed"
)

// Labels 返回完整标签集
func Labels() []Label {
	return []Label{Happy, Sad, Angry, Anxious, Neutral, Stressed, Depressed}
}

// normalizeLabel 输入大小写不敏感，打分统一用小写
func normalizeLabel(s string) Label {
	return Label(strings.ToLower(strings.TrimSpace(s)))
}

// isKnownLabel 标签是否在固定分类内
func isKnownLabel(l Label) bool {
	switch l {
	case Happy, Sad, Angry, Anxious, Neutral, Stressed, Depressed:
		return true
	}
	return false
}
