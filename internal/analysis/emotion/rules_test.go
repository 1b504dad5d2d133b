package emotion

import "testing"

func TestResolveKeywordOverrideWinsForEveryNative(t *testing.T) {
	// 关键词命中后，所有原生标签都应解析到同一个标准情绪。
	for _, native := range NativeLabels {
		if got := Resolve(native, "I feel hopeless today"); got != Depression {
			t.Fatalf("native=%s: expected depression, got %s", native, got)
		}
	}
}

func TestResolvePriorityShadowing(t *testing.T) {
	// "hard" 属于 frustration 集合，优先级高于同句中的 anger 线索。
	if got := Resolve(NativeAnger, "this is hard and I am furious"); got != Frustration {
		t.Fatalf("expected frustration to shadow anger, got %s", got)
	}
}

func TestResolveFallbackMapping(t *testing.T) {
	cases := []struct {
		native NativeLabel
		text   string
		want   Label
	}{
		{NativeJoy, "okay then", Happiness},
		{NativeSadness, "okay then", Sadness},
		{NativeAnger, "okay then", Anger},
		{NativeFear, "okay then", Anxiety},
		{NativeSurprise, "okay then", Anxiety},
		{NativeDisgust, "okay then", Anger},
	}
	for _, tc := range cases {
		if got := Resolve(tc.native, tc.text); got != tc.want {
			t.Fatalf("native=%s: expected %s, got %s", tc.native, tc.want, got)
		}
	}
}

func TestResolveNativeAngerTiredBecomesFrustration(t *testing.T) {
	// "tired" 不在覆盖关键词里（覆盖集合只有 "tired of"），
	// 此时回退映射应把 anger 改判为 frustration。
	if got := Resolve(NativeAnger, "so tired right now"); got != Frustration {
		t.Fatalf("expected frustration, got %s", got)
	}
}

func TestResolveUnknownNativeDefaultsToSadness(t *testing.T) {
	if got := Resolve(NativeLabel("confusion"), "okay then"); got != Sadness {
		t.Fatalf("expected sadness default, got %s", got)
	}
}
