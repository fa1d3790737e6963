package jobcontext

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRunBeginCarriesMetadata(t *testing.T) {
	meetingID := uuid.New()
	ctx, cancel := RunBegin(context.Background(), meetingID, time.Minute)
	defer cancel()

	if got := GetMeetingID(ctx); got != meetingID {
		t.Errorf("GetMeetingID = %s, want %s", got, meetingID)
	}
	if got := GetStage(ctx); got != "" {
		t.Errorf("stage should start empty, got %q", got)
	}
	if Elapsed(ctx) < 0 {
		t.Error("elapsed should not be negative")
	}
}

func TestStageVisibleThroughParentContext(t *testing.T) {
	ctx, cancel := RunBegin(context.Background(), uuid.New(), time.Minute)
	defer cancel()

	// The stage set on a derived context must be readable from the run
	// context the caller kept.
	inner := WithStage(ctx, "transcribing")
	_ = WithStage(inner, "generating_report")

	if got := GetStage(ctx); got != "generating_report" {
		t.Errorf("GetStage = %q, want generating_report", got)
	}
}

func TestRunRecoversPanic(t *testing.T) {
	err := Run(context.Background(), func(context.Context) error {
		panic("boom")
	})
	if err == nil {
		t.Fatal("panic should surface as an error")
	}
}

func TestRunPropagatesError(t *testing.T) {
	want := errors.New("stage failed")
	err := Run(context.Background(), func(context.Context) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Errorf("err = %v, want %v", err, want)
	}
}

func TestRunRejectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, func(context.Context) error {
		t.Error("run func should not execute on a cancelled context")
		return nil
	})
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
