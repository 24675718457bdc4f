package logger

import (
	"context"
	"testing"
)

func TestRIDRoundTrip(t *testing.T) {
	ctx := WithRID(context.Background(), "7:42:42")
	if got := RIDFrom(ctx); got != "7:42:42" {
		t.Fatalf("rid = %q", got)
	}
	if got := RIDFrom(context.Background()); got != "" {
		t.Fatalf("rid on a bare context = %q, expected empty", got)
	}
}

func TestBuildRID(t *testing.T) {
	if got := BuildRID(7, 100, 200); got != "7:100:200" {
		t.Fatalf("rid = %q, expected updateID:chatID:userID", got)
	}
}

func TestUpdateMetaRoundTrip(t *testing.T) {
	ctx := WithUpdateMeta(context.Background(), 42, 99)
	if got := UserIDFrom(ctx); got != 42 {
		t.Fatalf("user id = %d", got)
	}
	if got := ChatIDFrom(ctx); got != 99 {
		t.Fatalf("chat id = %d", got)
	}
	if UserIDFrom(context.Background()) != 0 || ChatIDFrom(context.Background()) != 0 {
		t.Fatal("a bare context must yield zero identifiers")
	}
}

func TestMetaAttrs(t *testing.T) {
	ctx := WithRID(context.Background(), "1:42:42")
	ctx = WithUpdateMeta(ctx, 42, 42)
	attrs := metaAttrs(ctx)
	if len(attrs) != 2 {
		t.Fatalf("attrs = %v, expected rid and user_id only for a private chat", attrs)
	}

	ctx = WithUpdateMeta(context.Background(), 42, -100500)
	attrs = metaAttrs(ctx)
	found := false
	for _, a := range attrs {
		if a.Key == "chat_id" && a.Value.Int64() == -100500 {
			found = true
		}
	}
	if !found {
		t.Fatalf("attrs = %v, expected a distinct chat_id to be logged", attrs)
	}
}

func TestSanitize(t *testing.T) {
	if got := Sanitize("ab\x00c\nd"); got != "abc\nd" {
		t.Fatalf("sanitized = %q", got)
	}
	if got := SanitizeLimit("привет мир", 6); got != "привет" {
		t.Fatalf("limited = %q, expected a rune-count cut", got)
	}
	if got := SanitizeLimit("x", 0); got != "" {
		t.Fatalf("zero limit = %q", got)
	}
}
