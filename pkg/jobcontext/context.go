package jobcontext

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type KeyContext string

var (
	keyMeetingID    KeyContext = "meeting_id"
	keyStage        KeyContext = "stage"
	keyRunStartTime KeyContext = "run_start_time"
)

// stageHolder lets the stage annotation set deep inside a run be visible to
// the caller holding the original run context. A run is a single goroutine,
// so no locking is needed.
type stageHolder struct {
	stage string
}

// RunMetadata holds metadata for a pipeline run
type RunMetadata struct {
	MeetingID uuid.UUID
	Stage     string
	StartTime time.Time
}

// RunBegin initializes a pipeline-run context with metadata and timeout.
// The run is detached from the triggering request, so the context derives
// from the supplied parent (normally context.Background) with a timeout
// covering transcription plus report generation.
func RunBegin(parentCtx context.Context, meetingID uuid.UUID, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parentCtx, timeout)

	ctx = context.WithValue(ctx, keyMeetingID, meetingID)
	ctx = context.WithValue(ctx, keyStage, &stageHolder{})
	ctx = context.WithValue(ctx, keyRunStartTime, time.Now())

	return ctx, cancel
}

// WithStage annotates the run with the pipeline stage currently executing
func WithStage(ctx context.Context, stage string) context.Context {
	if h, ok := ctx.Value(keyStage).(*stageHolder); ok {
		h.stage = stage
		return ctx
	}
	return context.WithValue(ctx, keyStage, &stageHolder{stage: stage})
}

// GetMeetingID returns the meeting id the run belongs to
func GetMeetingID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(keyMeetingID).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// GetStage returns the pipeline stage annotation, if any
func GetStage(ctx context.Context) string {
	if h, ok := ctx.Value(keyStage).(*stageHolder); ok {
		return h.stage
	}
	return ""
}

// Elapsed returns the time since the run began
func Elapsed(ctx context.Context) time.Duration {
	if t, ok := ctx.Value(keyRunStartTime).(time.Time); ok {
		return time.Since(t)
	}
	return 0
}

// Metadata snapshots the run metadata from the context
func Metadata(ctx context.Context) RunMetadata {
	md := RunMetadata{
		MeetingID: GetMeetingID(ctx),
		Stage:     GetStage(ctx),
	}
	if t, ok := ctx.Value(keyRunStartTime).(time.Time); ok {
		md.StartTime = t
	}
	return md
}

// Run executes the run function with panic recovery. A pipeline run is
// one-shot: there is no retry here, a failure is terminal for the run.
func Run(ctx context.Context, runFunc func(context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic recovered: %v", p)
		}
	}()

	if ctx.Err() != nil {
		return fmt.Errorf("context cancelled before run execution: %w", ctx.Err())
	}

	return runFunc(ctx)
}
