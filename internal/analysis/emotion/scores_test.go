package emotion

import (
	"math"
	"testing"
)

var neutralProbs = []float64{0.3, 0.2, 0.15, 0.15, 0.1, 0.1}

func TestBlendScoresSumToOne(t *testing.T) {
	scores := Blend(neutralProbs, "okay then")
	if len(scores) != len(Labels) {
		t.Fatalf("expected %d labels, got %d", len(Labels), len(scores))
	}

	total := 0.0
	for label, score := range scores {
		if score < 0 {
			t.Fatalf("negative score for %s: %f", label, score)
		}
		total += score
	}
	if math.Abs(total-1.0) > 1e-9 {
		t.Fatalf("scores should sum to 1, got %f", total)
	}
}

func TestBlendKeywordCollapsesDistribution(t *testing.T) {
	// 关键词命中时全部原生质量落入同一情绪，均值归一化后约等于 1。
	scores := Blend(neutralProbs, "I am fed up with everything")
	if scores[Frustration] < 0.999 {
		t.Fatalf("expected frustration to absorb all mass, got %f", scores[Frustration])
	}
	for _, label := range Labels {
		if label == Frustration {
			continue
		}
		if scores[label] != 0 {
			t.Fatalf("expected zero for %s, got %f", label, scores[label])
		}
	}
}

func TestBlendUsesMeanNotSum(t *testing.T) {
	// 无关键词时：anger 吸收 native anger 与 disgust，取两者均值而非和。
	scores := Blend(neutralProbs, "okay then")

	angerRaw := (0.15 + 0.1) / 2  // native anger, disgust
	anxietyRaw := (0.15 + 0.1) / 2 // native fear, surprise
	happinessRaw := 0.3
	sadnessRaw := 0.2
	total := angerRaw + anxietyRaw + happinessRaw + sadnessRaw

	if math.Abs(scores[Anger]-angerRaw/total) > 1e-9 {
		t.Fatalf("unexpected anger score: %f", scores[Anger])
	}
	if math.Abs(scores[Happiness]-happinessRaw/total) > 1e-9 {
		t.Fatalf("unexpected happiness score: %f", scores[Happiness])
	}
	if scores[Frustration] != 0 || scores[Depression] != 0 {
		t.Fatalf("expected zero frustration/depression, got %f/%f",
			scores[Frustration], scores[Depression])
	}
}

func TestBlendAllZeroStaysZero(t *testing.T) {
	scores := Blend([]float64{0, 0, 0, 0, 0, 0}, "okay then")
	for label, score := range scores {
		if score != 0 {
			t.Fatalf("expected zero for %s, got %f", label, score)
		}
	}
}

func TestBlendBitwiseDeterministic(t *testing.T) {
	// 归一化必须按固定顺序累加：同一输入重复计算要逐位相同，
	// 不允许 map 遍历顺序造成低位差异。
	first := Blend(neutralProbs, "okay then")
	for i := 0; i < 100; i++ {
		again := Blend(neutralProbs, "okay then")
		for _, label := range Labels {
			if again[label] != first[label] {
				t.Fatalf("%s: %v != %v on repeat %d", label, again[label], first[label], i)
			}
		}
	}
}

func TestRankDeterministicTieBreak(t *testing.T) {
	scores := Scores{
		Happiness:   0.2,
		Sadness:     0.2,
		Anger:       0.2,
		Anxiety:     0.2,
		Frustration: 0.1,
		Depression:  0.1,
	}
	ranked := scores.Rank()
	want := []Label{Happiness, Sadness, Anger, Anxiety, Frustration, Depression}
	for i, r := range ranked {
		if r.Label != want[i] {
			t.Fatalf("rank[%d]: expected %s, got %s", i, want[i], r.Label)
		}
	}
}

func TestTopReturnsRequestedCount(t *testing.T) {
	scores := Blend(neutralProbs, "okay then")
	top := scores.Top(3)
	if len(top) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(top))
	}
	full := scores.Rank()
	for i := range top {
		if top[i] != full[i] {
			t.Fatalf("top[%d] mismatch with full ranking", i)
		}
	}
	if top[0].Score < top[1].Score || top[1].Score < top[2].Score {
		t.Fatal("top entries not sorted descending")
	}
}

func TestBestPicksHighestScore(t *testing.T) {
	scores := Blend(neutralProbs, "okay then")
	label, score := scores.Best()
	if label != Happiness {
		t.Fatalf("expected happiness, got %s", label)
	}
	if score <= 0 {
		t.Fatalf("expected positive confidence, got %f", score)
	}
}
