package runlog

import (
	"path/filepath"
	"testing"
	"time"
)

func TestOpenEmptyPathIsNoOp(t *testing.T) {
	s, err := Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	if s.Enabled() {
		t.Error("expected an empty path to disable the store")
	}
	if err := s.Append(Record{Tool: "trajectory"}); err != nil {
		t.Errorf("Append on a disabled store should be a no-op, got %v", err)
	}
}

func TestOpenAndAppendRecord(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	if !s.Enabled() {
		t.Fatal("expected a real path to enable the store")
	}

	rec := Record{
		Tool:       "trajectory",
		StartedAt:  time.Unix(1000, 0),
		FinishedAt: time.Unix(1010, 0),
		Params:     ParamString(map[string]string{"TRACE": "-96", "LO": "13.4"}),
		OutputPath: "traj/B20010101_00.trj",
		Status:     "ok",
	}
	if err := s.Append(rec); err != nil {
		t.Fatalf("Append: %v", err)
	}
}

func TestParamStringIsDeterministic(t *testing.T) {
	pairs := map[string]string{"B": "2", "A": "1", "C": "3"}
	got := ParamString(pairs)
	want := "A=1 B=2 C=3 "
	if got != want {
		t.Errorf("ParamString = %q, want %q", got, want)
	}
}
