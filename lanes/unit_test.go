package lanes

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNewRejectsInvalidWidth(t *testing.T) {
	for _, w := range []int{-4, 0, 3, 6, 12} {
		if _, err := New(w); !errors.Is(err, ErrInvalidWidth) {
			t.Errorf("New(%d): got err %v, want ErrInvalidWidth", w, err)
		}
	}
	for _, w := range []int{1, 2, 4, 64} {
		u, err := New(w)
		if err != nil {
			t.Fatalf("New(%d): %v", w, err)
		}
		if u.Width() != w {
			t.Errorf("New(%d).Width() = %d", w, u.Width())
		}
	}
}

func TestUnitsOfDifferentWidthsCoexist(t *testing.T) {
	u2 := MustNew(2)
	u16 := MustNew(16)
	if NewVec[float32](u2).NumLanes() != 2 || NewVec[float32](u16).NumLanes() != 16 {
		t.Error("vectors do not follow their unit's width")
	}
}

func TestStats(t *testing.T) {
	u := MustNew(4)
	x := NewVec[float32](u)

	Load(x, []float32{1, 2, 3}, u.MaskAll(3))
	Add(x, x, x, u.MaskAll(1))
	HorizontalAdd(x, x)
	_ = MaskNot(u.MaskAll(2)).CountTrue()

	s := u.Stats()
	if s.Instructions != 3 {
		t.Errorf("Instructions = %d, want 3", s.Instructions)
	}
	if s.TotalLanes != 12 {
		t.Errorf("TotalLanes = %d, want 12", s.TotalLanes)
	}
	if s.ActiveLanes != 3+1+4 {
		t.Errorf("ActiveLanes = %d, want 8", s.ActiveLanes)
	}
	if got, want := s.Utilization(), 8.0/12.0; got != want {
		t.Errorf("Utilization = %v, want %v", got, want)
	}
	if s.PerOp[OpLoad] != 1 || s.PerOp[OpAdd] != 1 || s.PerOp[OpHAdd] != 1 {
		t.Errorf("PerOp = %v", s.PerOp)
	}

	// The snapshot must not alias the live counters.
	s.PerOp[OpLoad] = 100
	if u.Stats().PerOp[OpLoad] != 1 {
		t.Error("Stats snapshot aliases the unit's counters")
	}

	u.ResetStats()
	if s := u.Stats(); s.Instructions != 0 || s.Utilization() != 0 {
		t.Errorf("after ResetStats: %+v", s)
	}
}

func TestStatsMerge(t *testing.T) {
	a := Stats{Instructions: 2, TotalLanes: 8, ActiveLanes: 5, PerOp: map[string]int{OpLoad: 2}}
	b := Stats{Instructions: 1, TotalLanes: 4, ActiveLanes: 4, PerOp: map[string]int{OpLoad: 1, OpMul: 1}}

	m := a.Merge(b)
	if m.Instructions != 3 || m.TotalLanes != 12 || m.ActiveLanes != 9 {
		t.Errorf("Merge: %+v", m)
	}
	if m.PerOp[OpLoad] != 3 || m.PerOp[OpMul] != 1 {
		t.Errorf("Merge PerOp: %v", m.PerOp)
	}
	if ops := m.Ops(); len(ops) != 2 || ops[0] != OpLoad || ops[1] != OpMul {
		t.Errorf("Ops = %v", ops)
	}
	if a.PerOp[OpLoad] != 2 {
		t.Error("Merge mutated its receiver")
	}
}

func TestInstructionTrace(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	u := MustNew(4, WithLogger(l))

	x := NewVec[float32](u)
	Set(x, 1, u.MaskAll(2))

	out := buf.String()
	if !strings.Contains(out, "op="+OpSet) || !strings.Contains(out, "**__") {
		t.Errorf("trace missing instruction: %q", out)
	}
}

func TestPackageLoggerDefaultsToSilent(t *testing.T) {
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("default package logger is enabled")
	}

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	u := MustNew(2)
	Set(NewVec[int32](u), 1, u.MaskOnes())
	if !strings.Contains(buf.String(), "op="+OpSet) {
		t.Errorf("package logger not used: %q", buf.String())
	}
}
