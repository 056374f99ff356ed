package agent

import (
	"context"
	"errors"
	"testing"
)

func TestWithRetryRecovers(t *testing.T) {
	transient := errors.New("transient")
	inner := NewScriptedAgent(
		Response{Err: transient},
		Response{Text: "ok"},
	)

	wrapped := WithRetry(inner, RetryConfig{MaxAttempts: 3})
	text, err := wrapped.Generate(context.Background(), nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if text != "ok" {
		t.Errorf("expected the scripted response, got %q", text)
	}
}

func TestWithRetryGivesUp(t *testing.T) {
	boom := errors.New("boom")
	inner := NewScriptedAgent(
		Response{Err: boom},
		Response{Err: boom},
	)

	wrapped := WithRetry(inner, RetryConfig{MaxAttempts: 2})
	if _, err := wrapped.Generate(context.Background(), nil); !errors.Is(err, boom) {
		t.Fatalf("expected the last error, got %v", err)
	}
}

func TestWithRetryHonorsShouldRetry(t *testing.T) {
	fatal := errors.New("fatal")
	inner := NewScriptedAgent(
		Response{Err: fatal},
		Response{Text: "never reached"},
	)

	wrapped := WithRetry(inner, RetryConfig{
		MaxAttempts: 3,
		ShouldRetry: func(err error) bool { return !errors.Is(err, fatal) },
	})
	if _, err := wrapped.Generate(context.Background(), nil); !errors.Is(err, fatal) {
		t.Fatalf("expected the fatal error, got %v", err)
	}
}

func TestScriptedAgentExhaustion(t *testing.T) {
	a := NewScriptedAgent(Response{Text: "only one"})

	if _, err := a.Generate(context.Background(), nil); err != nil {
		t.Fatalf("first Generate failed: %v", err)
	}
	if _, err := a.Generate(context.Background(), nil); err == nil {
		t.Error("an exhausted script should fail")
	}
}

func TestWithRetryStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	wrapped := WithRetry(NewScriptedAgent(Response{Text: "ok"}), RetryConfig{MaxAttempts: 3})
	if _, err := wrapped.Generate(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
