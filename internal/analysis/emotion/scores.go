package emotion

import "sort"

// Scores 保存六个标准情绪的归一化得分，六个键总是全部存在。
type Scores map[Label]float64

// Ranked 是 (情绪, 得分) 的有序对。
type Ranked struct {
	Label Label   `json:"label"`
	Score float64 `json:"score"`
}

// Blend 把原生概率向量与输入文本合成标准情绪得分。
// 每个原生标签先解析到标准情绪，同一标准情绪下的概率取算术平均
// （不是求和，吸收更多原生类别的情绪不会因此被放大），
// 缺失的情绪补零，最后在总和为正时归一化。
func Blend(probs []float64, text string) Scores {
	grouped := make(map[Label][]float64, len(Labels))
	for i, prob := range probs {
		if i >= len(NativeLabels) {
			break
		}
		target := Resolve(NativeLabels[i], text)
		grouped[target] = append(grouped[target], prob)
	}

	scores := make(Scores, len(Labels))
	for target, values := range grouped {
		scores[target] = mean(values)
	}
	for _, label := range Labels {
		if _, ok := scores[label]; !ok {
			scores[label] = 0.0
		}
	}

	scores.normalize()
	return scores
}

// Rank 按得分降序排列全部情绪。得分相同时按 Labels 的固定顺序排，
// 以保证结果确定。
func (s Scores) Rank() []Ranked {
	ranked := make([]Ranked, 0, len(Labels))
	for _, label := range Labels {
		ranked = append(ranked, Ranked{Label: label, Score: s[label]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Top 返回得分最高的前 n 个情绪。
func (s Scores) Top(n int) []Ranked {
	ranked := s.Rank()
	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// Best 返回得分最高的单个情绪。
func (s Scores) Best() (Label, float64) {
	top := s.Rank()[0]
	return top.Label, top.Score
}

// normalize 按 Labels 的固定顺序累加，避免 map 遍历顺序影响
// 浮点加法的低位，保证同一输入得到逐位相同的结果。
func (s Scores) normalize() {
	total := 0.0
	for _, label := range Labels {
		total += s[label]
	}
	if total <= 0 {
		return
	}
	for _, label := range Labels {
		s[label] = s[label] / total
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
