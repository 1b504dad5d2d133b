package emotion

import "strings"

// overrideRule 将一组关键词映射到一个标准情绪。规则按优先级排列并短路求值，
// 前面的规则会刻意遮蔽后面的规则（例如 "hard" 命中 frustration 后，
// 同一句话里的 anger 线索不再生效），不要调整顺序。
type overrideRule struct {
	target   Label
	keywords []string
}

var overrideRules = []overrideRule{
	{
		target: Frustration,
		keywords: []string{
			"tired of", "sick of", "fed up", "frustrat", "stuck", "can't",
			"cannot", "difficult", "hard", "struggl", "overwhelm", "too much",
			"assignment", "homework", "work", "deadline", "pressure",
		},
	},
	{
		target: Depression,
		keywords: []string{
			"depress", "hopeless", "worthless", "empty", "numb", "nothing matters",
			"no point", "give up", "suicide", "end it",
		},
	},
	{
		target: Anxiety,
		keywords: []string{
			"anxious", "worried", "nervous", "panic", "scared", "afraid",
			"fear", "stress", "stressed", "overthink",
		},
	},
	{
		target: Sadness,
		keywords: []string{
			"sad", "unhappy", "down", "cry", "crying", "lonely", "alone",
			"miss", "hurt", "pain", "grief", "loss",
		},
	},
	{
		target: Happiness,
		keywords: []string{
			"happy", "glad", "excited", "great", "wonderful", "amazing",
			"love", "joy", "pleased", "delighted", "thrilled",
		},
	},
	{
		target: Anger,
		keywords: []string{
			"angry", "mad", "furious", "rage", "hate", "disgust", "annoyed",
			"pissed", "irritated", "livid",
		},
	},
}

// matchOverride 在原始输入上做一次全局关键词判定。整个调用只执行一次，
// 命中后所有原生概率质量都会落到同一个标准情绪上。
func matchOverride(text string) (Label, bool) {
	lower := strings.ToLower(text)
	for _, rule := range overrideRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.target, true
			}
		}
	}
	return "", false
}

// remapNative 在没有关键词命中时按原生标签回退映射。
func remapNative(native NativeLabel, text string) Label {
	lower := strings.ToLower(text)

	switch native {
	case NativeJoy:
		return Happiness
	case NativeSadness:
		return Sadness
	case NativeAnger:
		if containsAny(lower, "tired", "sick of", "fed up") {
			return Frustration
		}
		return Anger
	case NativeFear:
		return Anxiety
	case NativeSurprise:
		if containsAny(lower, "happy", "glad", "excited", "great") {
			return Happiness
		}
		return Anxiety
	case NativeDisgust:
		return Anger
	}
	return Sadness
}

// Resolve 返回某个原生标签在给定文本下对应的标准情绪。
// 全局关键词覆盖优先于按标签回退映射。
func Resolve(native NativeLabel, text string) Label {
	if target, ok := matchOverride(text); ok {
		return target
	}
	return remapNative(native, text)
}

func containsAny(lower string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
