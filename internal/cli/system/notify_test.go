package system

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type recordingSender struct {
	messages []string
	err      error
}

func (s *recordingSender) Notify(_ context.Context, text string) error {
	s.messages = append(s.messages, text)
	return s.err
}

func TestNotifyCmd_SendsRemaining(t *testing.T) {
	ctx := newInitializedContext(t)
	sender := &recordingSender{}

	if err := (&NotifyCmd{sender: sender}).Run(ctx); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if len(sender.messages) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(sender.messages))
	}
	if !strings.Contains(sender.messages[0], "oz of water to go") {
		t.Errorf("message %q should mention water", sender.messages[0])
	}
}

func TestNotifyCmd_DisabledSendsNothing(t *testing.T) {
	ctx := newInitializedContext(t)
	ctx.Config.Notifications = false
	sender := &recordingSender{}

	if err := (&NotifyCmd{sender: sender}).Run(ctx); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if len(sender.messages) != 0 {
		t.Errorf("sent %d notifications while disabled", len(sender.messages))
	}
}

func TestNotifyCmd_DryRunDoesNotSend(t *testing.T) {
	ctx := newInitializedContext(t)
	sender := &recordingSender{}

	if err := (&NotifyCmd{DryRun: true, sender: sender}).Run(ctx); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if len(sender.messages) != 0 {
		t.Errorf("dry run sent %d notifications", len(sender.messages))
	}
}

func TestNotifyCmd_SendFailureIsNotFatal(t *testing.T) {
	ctx := newInitializedContext(t)
	sender := &recordingSender{err: errors.New("tray app not running")}

	if err := (&NotifyCmd{sender: sender}).Run(ctx); err != nil {
		t.Errorf("notify should swallow send errors, got %v", err)
	}
}
