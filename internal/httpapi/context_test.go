package httpapi

import (
	"context"
	"testing"
	"time"
)

func TestJoinContextsCancelsWhenEitherDone(t *testing.T) {
	a, cancelA := context.WithCancel(context.Background())
	b := context.Background()
	joined, cancel := joinContexts(a, b)
	defer cancel()

	cancelA()
	select {
	case <-joined.Done():
	case <-time.After(time.Second):
		t.Fatalf("joined context not canceled")
	}
}

func TestSetBaseContextNilResets(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	SetBaseContext(ctx)
	cancel()
	if serverBaseCtx.Err() == nil {
		t.Fatalf("base context should be canceled")
	}
	SetBaseContext(nil)
	if serverBaseCtx.Err() != nil {
		t.Fatalf("base context should be reset")
	}
}
