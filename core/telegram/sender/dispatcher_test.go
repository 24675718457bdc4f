package sender

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSameKeySendsKeepOrder(t *testing.T) {
	d := New(Options{Workers: 4, QueueSize: 16})
	defer d.Close()

	started := make(chan struct{})
	release := make(chan struct{})
	ran := make(chan int, 2)

	err := d.Enqueue(context.Background(), "first", 42, func() error {
		close(started)
		<-release
		ran <- 1
		return nil
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	<-started

	err = d.Enqueue(context.Background(), "second", 42, func() error {
		ran <- 2
		return nil
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	select {
	case got := <-ran:
		t.Fatalf("job %d finished while the first was still in flight", got)
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	if got := <-ran; got != 1 {
		t.Fatalf("first finished job = %d", got)
	}
	if got := <-ran; got != 2 {
		t.Fatalf("second finished job = %d", got)
	}
}

func TestEnqueueAfterClose(t *testing.T) {
	d := New(Options{Workers: 1, QueueSize: 1})
	d.Close()

	err := d.Enqueue(context.Background(), "late", 1, func() error { return nil })
	if !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("err = %v, expected ErrQueueClosed", err)
	}
}

func TestEnqueueQueueFull(t *testing.T) {
	d := New(Options{Workers: 1, QueueSize: 1})

	release := make(chan struct{})
	started := make(chan struct{})
	if err := d.Enqueue(context.Background(), "busy", 1, func() error {
		close(started)
		<-release
		return nil
	}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	<-started

	if err := d.Enqueue(context.Background(), "buffered", 1, func() error { return nil }); err != nil {
		t.Fatalf("enqueue into the free buffer slot: %v", err)
	}
	if err := d.Enqueue(context.Background(), "overflow", 1, func() error { return nil }); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("err = %v, expected ErrQueueFull", err)
	}

	close(release)
	d.Close()
}

func TestErrorCount(t *testing.T) {
	d := New(Options{Workers: 1, QueueSize: 4, MaxRetries: 0})

	if err := d.Enqueue(context.Background(), "fail", 1, func() error {
		return errors.New("telegram: forbidden")
	}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	d.Close()

	if got := d.ErrorCount(); got != 1 {
		t.Fatalf("error count = %d, expected 1", got)
	}
}

func TestSanitizeErrorMessage(t *testing.T) {
	err := errors.New(`Post "https://api.telegram.org/bot12345:AAAbbbCCC-dd_ee/sendMessage": eof`)
	got := sanitizeErrorMessage(err)
	if strings.Contains(got, "12345:AAA") {
		t.Fatalf("token leaked: %q", got)
	}
	if !strings.Contains(got, "bot<redacted>") {
		t.Fatalf("redaction marker missing: %q", got)
	}
	if got := sanitizeErrorMessage(nil); got != "" {
		t.Fatalf("nil error rendered %q", got)
	}
}
