package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	h := NoopLayoutHooks{}
	h.OnLayeringStart(ctx, 10, 12)
	h.OnLayeringComplete(ctx, 4, time.Millisecond, nil)
	h.OnDecrossStart(ctx, 4)
	h.OnDecrossComplete(ctx, 2, time.Millisecond, nil)
	h.OnCoordStart(ctx, 10)
	h.OnCoordComplete(ctx, 120, 80, time.Millisecond, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Layout() should return NoopLayoutHooks by default")
	}

	custom := &testLayoutHooks{}
	SetLayoutHooks(custom)
	if Layout() != custom {
		t.Error("SetLayoutHooks should set custom hooks")
	}

	Reset()
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Reset() should restore NoopLayoutHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testLayoutHooks{}
	SetLayoutHooks(custom)

	SetLayoutHooks(nil)

	if Layout() != custom {
		t.Error("SetLayoutHooks(nil) should be ignored")
	}

	Reset()
}

func TestHooksCalledDuringPhases(t *testing.T) {
	Reset()
	defer Reset()

	rec := &recordingHooks{}
	SetLayoutHooks(rec)

	ctx := context.Background()
	Layout().OnLayeringStart(ctx, 5, 6)
	Layout().OnLayeringComplete(ctx, 3, time.Millisecond, nil)

	if !rec.layeringStarted || !rec.layeringCompleted {
		t.Error("expected both layering events to be recorded")
	}
}

type testLayoutHooks struct{ NoopLayoutHooks }

type recordingHooks struct {
	NoopLayoutHooks
	layeringStarted   bool
	layeringCompleted bool
}

func (r *recordingHooks) OnLayeringStart(context.Context, int, int) { r.layeringStarted = true }
func (r *recordingHooks) OnLayeringComplete(context.Context, int, time.Duration, error) {
	r.layeringCompleted = true
}
