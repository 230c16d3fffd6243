package session

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"abacus/abacusos/calc"
	"abacus/internal/metrics"
)

func TestPressDefaultSession(t *testing.T) {
	s := NewStore(0, metrics.New())
	snap, err := s.Press("", "2+3=")
	if err != nil {
		t.Fatalf("Press: %v", err)
	}
	want := Snapshot{
		Session:     DefaultID,
		Display:     "5",
		ClearLabel:  "C",
		First:       "5",
		Evaluations: []calc.Evaluation{{A: "2", Operator: "+", B: "3", Result: "5"}},
	}
	if diff := cmp.Diff(want, snap); diff != "" {
		t.Fatalf("snapshot (-want +got):\n%s", diff)
	}

	again, err := s.Get(DefaultID)
	if err != nil || again.Display != "5" || again.Evaluations != nil {
		t.Fatalf("Get = %+v, %v", again, err)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	s := NewStore(0, nil)
	a, err := s.Open()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Fatalf("id %q is not a uuid: %v", a, err)
	}
	b, _ := s.Open()

	if _, err := s.Press(a, "12"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Press(b, "7*"); err != nil {
		t.Fatal(err)
	}
	ga, _ := s.Get(a)
	gb, _ := s.Get(b)
	if ga.Display != "12" || gb.Display != "7" || gb.Operator != "*" {
		t.Fatalf("a = %+v, b = %+v", ga, gb)
	}

	if err := s.Close(a); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(a); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get closed = %v, want ErrNotFound", err)
	}
	if err := s.Close(a); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double Close = %v", err)
	}
}

func TestBadScriptLeavesStateAlone(t *testing.T) {
	s := NewStore(0, nil)
	if _, err := s.Press("", "12"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Press("", "3x"); err == nil {
		t.Fatal("expected parse error")
	}
	if got, _ := s.Get(""); got.Display != "12" {
		t.Fatalf("display = %q, want 12", got.Display)
	}
}

func TestIdleSessionsExpire(t *testing.T) {
	now := time.Unix(1000, 0)
	s := NewStore(time.Minute, nil)
	s.now = func() time.Time { return now }

	old, _ := s.Open()
	if _, err := s.Get(""); err != nil {
		t.Fatal(err)
	}
	now = now.Add(2 * time.Minute)
	if _, err := s.Open(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(old); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired session still present: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want default plus the new session", s.Len())
	}
}

func TestStoreLimit(t *testing.T) {
	s := NewStore(0, nil)
	for i := 0; i < maxSessions; i++ {
		if _, err := s.Open(); err != nil {
			t.Fatalf("Open %d: %v", i, err)
		}
	}
	if _, err := s.Open(); !errors.Is(err, ErrFull) {
		t.Fatalf("Open past limit = %v, want ErrFull", err)
	}
}
