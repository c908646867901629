package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Heuristic hooks
	h := NoopHeuristicHooks{}
	h.OnPhaseStart(PhaseSlide)
	h.OnPhaseComplete(PhaseSlide, time.Second)
	h.OnIteration(3, 2, 0.5, true)
	h.OnRepair(PhaseFillHoles, 4, 1)

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnRunStart(ctx, "run-1", 12)
	p.OnRunComplete(ctx, "run-1", time.Second, errors.New("boom"))

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "grid")
	c.OnCacheMiss(ctx, "grid")
	c.OnCacheSet(ctx, "grid", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Heuristic().(NoopHeuristicHooks); !ok {
		t.Error("Heuristic() should return NoopHeuristicHooks by default")
	}
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	// Set custom hooks
	customHeuristic := &testHeuristicHooks{}
	SetHeuristicHooks(customHeuristic)
	if Heuristic() != customHeuristic {
		t.Error("SetHeuristicHooks should set custom hooks")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Heuristic().(NoopHeuristicHooks); !ok {
		t.Error("Reset() should restore NoopHeuristicHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testHeuristicHooks{}
	SetHeuristicHooks(custom)

	// Setting nil should be ignored
	SetHeuristicHooks(nil)

	if Heuristic() != custom {
		t.Error("SetHeuristicHooks(nil) should be ignored")
	}

	Reset()
}

func TestCustomHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testHeuristicHooks{}
	SetHeuristicHooks(custom)

	Heuristic().OnPhaseStart(PhasePolish)
	Heuristic().OnIteration(1, 0, 0, true)
	Heuristic().OnIteration(2, 0, 0, false)

	if len(custom.phases) != 1 || custom.phases[0] != PhasePolish {
		t.Errorf("phases = %v, want [%s]", custom.phases, PhasePolish)
	}
	if custom.iterations != 2 {
		t.Errorf("iterations = %d, want 2", custom.iterations)
	}
}

// Test implementations
type testHeuristicHooks struct {
	NoopHeuristicHooks
	phases     []string
	iterations int
}

func (h *testHeuristicHooks) OnPhaseStart(phase string) { h.phases = append(h.phases, phase) }
func (h *testHeuristicHooks) OnIteration(int, float64, float64, bool) {
	h.iterations++
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
