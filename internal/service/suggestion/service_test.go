package suggestion

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/zhouzirui/warmline/backend/internal/analysis/emotion"
	"github.com/zhouzirui/warmline/backend/internal/model/chat"
)

type stubGenerator struct {
	text string
	err  error
	got  []Message
}

func (g *stubGenerator) Complete(_ context.Context, messages []Message) (string, error) {
	g.got = messages
	return g.text, g.err
}

const goodResponse = "It sounds like the deadline pressure has been building for a while. " +
	"Try splitting tonight's task into one page at a time, and give yourself a short walk between pages."

func TestRespondAcceptsQualityCandidate(t *testing.T) {
	gen := &stubGenerator{text: goodResponse}
	svc := NewService(gen)

	got := svc.Respond(context.Background(), "deadline is close", emotion.Frustration, nil)
	if got != goodResponse {
		t.Fatalf("expected generated text, got %q", got)
	}
	if len(gen.got) < 2 {
		t.Fatalf("generator should receive at least [system, user], got %d", len(gen.got))
	}
}

func TestRespondNoGeneratorUsesFallback(t *testing.T) {
	svc := NewService(nil)

	got := svc.Respond(context.Background(), "I feel so tired and exhausted", emotion.Sadness, nil)
	if !strings.Contains(got, "I hear that you're feeling tired") {
		t.Fatalf("expected tiredness fallback, got %q", got)
	}
}

func TestRespondTransportErrorUsesFallback(t *testing.T) {
	svc := NewService(&stubGenerator{err: errors.New("connection refused")})

	got := svc.Respond(context.Background(), "so much homework", emotion.Frustration, nil)
	if got != workFallback {
		t.Fatalf("expected work fallback, got %q", got)
	}
}

func TestRespondRejectsBannedPhrase(t *testing.T) {
	svc := NewService(&stubGenerator{
		text: "Thank you for sharing your feelings with me today, it really means a lot that you opened up.",
	})

	got := svc.Respond(context.Background(), "just a bad day", emotion.Sadness, nil)
	if got != defaultFallback {
		t.Fatalf("expected default fallback for boilerplate candidate, got %q", got)
	}
}

func TestRespondRejectsShortCandidate(t *testing.T) {
	svc := NewService(&stubGenerator{text: "Hang in there."})

	got := svc.Respond(context.Background(), "feeling sad tonight", emotion.Sadness, nil)
	if got != sadnessFallback {
		t.Fatalf("expected sadness fallback for short candidate, got %q", got)
	}
}

func TestRespondPassesHistoryToGenerator(t *testing.T) {
	gen := &stubGenerator{text: goodResponse}
	svc := NewService(gen)
	history := []chat.Message{
		{Role: chat.RoleUser, Content: "I am tired"},
		{Role: chat.RoleAssistant, Content: "That sounds exhausting."},
		{Role: chat.RoleUser, Content: "of homework"},
	}

	svc.Respond(context.Background(), "it never ends", emotion.Frustration, history)

	if gen.got[0].Role != roleSystem {
		t.Fatalf("expected system entry first, got %s", gen.got[0].Role)
	}
	last := gen.got[len(gen.got)-1]
	if last.Role != chat.RoleUser || !strings.Contains(last.Content, "it never ends") {
		t.Fatalf("final entry must be the current user turn, got %+v", last)
	}
}

func TestFallbackPriorityOrder(t *testing.T) {
	cases := []struct {
		message string
		want    string
	}{
		{"I have no motivation at all", motivationFallback},
		// "tired" 线索排在 "work" 之前。
		{"tired after work", tirednessFallback},
		{"my assignment is due", workFallback},
		{"feeling unhappy lately", sadnessFallback},
		{"I am furious", angerFallback},
		{"so worried about tomorrow", anxietyFallback},
		{"I am stuck on this", frustrationFallback},
		{"hello there", defaultFallback},
	}

	for _, tc := range cases {
		if got := fallbackFor(tc.message); got != tc.want {
			t.Fatalf("fallbackFor(%q) selected wrong template", tc.message)
		}
	}
}
